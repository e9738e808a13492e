package handlers

import (
	"time"

	"playstats/internal/repository"
	"playstats/internal/services"
	"playstats/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Server struct {
	db           *gorm.DB
	logger       *logrus.Logger
	ingestor     *services.Ingestor
	tracker      *session.Tracker
	campaigns    *repository.CampaignRepository
	analytics    *repository.AnalyticsRepository
	sessions     *repository.SessionRepository
	playerCounts *repository.PlayerCountRepository
	kafkaWriter  *kafka.Writer
}

func NewServer(
	db *gorm.DB,
	logger *logrus.Logger,
	ingestor *services.Ingestor,
	tracker *session.Tracker,
	campaigns *repository.CampaignRepository,
	analytics *repository.AnalyticsRepository,
	sessions *repository.SessionRepository,
	playerCounts *repository.PlayerCountRepository,
	kafkaWriter *kafka.Writer,
) *Server {
	return &Server{
		db:           db,
		logger:       logger,
		ingestor:     ingestor,
		tracker:      tracker,
		campaigns:    campaigns,
		analytics:    analytics,
		sessions:     sessions,
		playerCounts: playerCounts,
		kafkaWriter:  kafkaWriter,
	}
}

// RegisterRoutes wires every engine operation under /api/v1.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		events := api.Group("/events")
		{
			events.POST("/join", s.PostJoin)
			events.POST("/session/start", s.PostSessionStart)
			events.POST("/session/end", s.PostSessionEnd)
			events.POST("/revenue", s.PostRevenue)
		}

		campaigns := api.Group("/campaigns")
		{
			campaigns.POST("", s.PostCampaign)
			campaigns.GET("", s.GetCampaigns)
			campaigns.GET("/:name", s.GetCampaign)
			campaigns.POST("/:name/end", s.PostCampaignEnd)
			campaigns.GET("/:name/metrics", s.GetCampaignMetrics)
			campaigns.GET("/:name/joins", s.GetCampaignJoins)
			campaigns.GET("/:name/hostnames", s.GetCampaignHostnames)
			campaigns.POST("/:name/hostnames", s.PostCampaignHostname)
			campaigns.DELETE("/:name/hostnames/:hostname", s.DeleteCampaignHostname)
		}

		stats := api.Group("/stats")
		{
			stats.GET("/platforms", s.GetPlatformStats)
			stats.GET("/countries", s.GetCountryStats)
			stats.GET("/revenue", s.GetRevenueStats)
			stats.GET("/sessions", s.GetSessionStats)
			stats.GET("/players", s.GetPlayerCountStats)
		}

		compare := api.Group("/compare")
		{
			compare.GET("/platforms", s.ComparePlatforms)
			compare.GET("/countries", s.CompareCountries)
			compare.GET("/revenue", s.CompareRevenue)
			compare.GET("/sessions", s.CompareSessions)
		}
	}

	r.GET("/health", s.Health)
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"version":   "1.0.0",
	})
}
