package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"playstats/internal/kafka"
	"playstats/internal/metrics"
	"playstats/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type JoinRequest struct {
	PlayerID    string  `json:"player_id" binding:"required"`
	Hostname    string  `json:"hostname" binding:"required"`
	ClientType  string  `json:"client_type"`
	Country     *string `json:"country"`
	CountryTier *string `json:"country_tier"`
}

type SessionRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Hostname string `json:"hostname" binding:"required"`
}

type RevenueRequest struct {
	Hostname string  `json:"hostname" binding:"required"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency" binding:"required"`
}

func (s *Server) PostJoin(c *gin.Context) {
	start := time.Now()
	defer func() {
		metrics.ResponseTime.WithLabelValues("POST", "/events/join", strconv.Itoa(c.Writer.Status())).Observe(time.Since(start).Seconds())
	}()

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	playerID, err := uuid.Parse(req.PlayerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid player_id"})
		return
	}

	if err := s.ingestor.Join(playerID, req.Hostname, req.ClientType, req.Country, req.CountryTier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Mirror the accepted event downstream for other consumers.
	if s.kafkaWriter != nil {
		env := kafka.Envelope{
			Type:        kafka.TypeJoin,
			PlayerID:    req.PlayerID,
			Hostname:    req.Hostname,
			ClientType:  req.ClientType,
			Country:     req.Country,
			CountryTier: req.CountryTier,
			Timestamp:   time.Now().Unix(),
		}
		if err := kafka.PublishEnvelope(context.Background(), s.kafkaWriter, env); err != nil {
			s.logger.WithError(err).Warn("Failed to publish join event to Kafka")
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

func (s *Server) PostSessionStart(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	playerID, err := uuid.Parse(req.PlayerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid player_id"})
		return
	}

	if err := s.ingestor.StartSession(playerID, req.Hostname); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "started"})
}

func (s *Server) PostSessionEnd(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	playerID, err := uuid.Parse(req.PlayerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid player_id"})
		return
	}

	if err := s.ingestor.EndSession(playerID, req.Hostname); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to close session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ended"})
}

func (s *Server) PostRevenue(c *gin.Context) {
	start := time.Now()
	defer func() {
		metrics.ResponseTime.WithLabelValues("POST", "/events/revenue", strconv.Itoa(c.Writer.Status())).Observe(time.Since(start).Seconds())
	}()

	var req RevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.ingestor.Revenue(req.Hostname, req.Amount, req.Currency); err != nil {
		if errors.Is(err, repository.ErrNegativeAmount) || errors.Is(err, repository.ErrEmptyHostname) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record revenue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}
