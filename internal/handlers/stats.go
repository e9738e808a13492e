package handlers

import (
	"net/http"
	"strconv"
	"time"

	"playstats/internal/format"
	"playstats/internal/metrics"
	"playstats/internal/models"
	"playstats/internal/repository"
	"playstats/internal/services"

	"github.com/gin-gonic/gin"
)

// parseDays reads the optional trailing-window query parameter. An
// absent parameter means all time; "0" means from the current instant.
func parseDays(c *gin.Context) (*int, bool) {
	daysStr := c.Query("days")
	if daysStr == "" {
		return nil, true
	}
	days, err := strconv.Atoi(daysStr)
	if err != nil || days < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days parameter"})
		return nil, false
	}
	return &days, true
}

func requireQuery(c *gin.Context, key string) (string, bool) {
	value := c.Query(key)
	if value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + key + " parameter"})
		return "", false
	}
	return value, true
}

func (s *Server) GetPlatformStats(c *gin.Context) {
	start := time.Now()
	defer func() {
		metrics.ResponseTime.WithLabelValues("GET", "/stats/platforms", strconv.Itoa(c.Writer.Status())).Observe(time.Since(start).Seconds())
	}()

	hostname, ok := requireQuery(c, "hostname")
	if !ok {
		return
	}
	days, ok := parseDays(c)
	if !ok {
		return
	}

	stats := s.analytics.PlatformStats(hostname, repository.WindowSince(days))
	c.JSON(http.StatusOK, gin.H{"hostname": hostname, "platforms": stats})
}

func (s *Server) GetCountryStats(c *gin.Context) {
	hostname, ok := requireQuery(c, "hostname")
	if !ok {
		return
	}
	days, ok := parseDays(c)
	if !ok {
		return
	}

	stats := s.analytics.CountryStats(hostname, repository.WindowSince(days))
	c.JSON(http.StatusOK, gin.H{"hostname": hostname, "tiers": stats})
}

func (s *Server) GetRevenueStats(c *gin.Context) {
	hostname, ok := requireQuery(c, "hostname")
	if !ok {
		return
	}
	days, ok := parseDays(c)
	if !ok {
		return
	}

	stats := s.analytics.RevenueStats(hostname, repository.WindowSince(days))
	c.JSON(http.StatusOK, gin.H{"hostname": hostname, "revenue": stats})
}

func (s *Server) GetSessionStats(c *gin.Context) {
	hostname, ok := requireQuery(c, "hostname")
	if !ok {
		return
	}
	days, ok := parseDays(c)
	if !ok {
		return
	}

	stats := s.sessions.Stats(hostname, repository.WindowSince(days))
	avg := s.tracker.AverageSessionTime(hostname)
	c.JSON(http.StatusOK, gin.H{
		"hostname":               hostname,
		"sessions":               stats,
		"average_time":           avg,
		"average_time_formatted": format.Duration(int64(avg)),
	})
}

func (s *Server) GetPlayerCountStats(c *gin.Context) {
	hostname := c.DefaultQuery("hostname", models.GlobalHostname)
	c.JSON(http.StatusOK, s.playerCounts.Stats(hostname))
}

func (s *Server) compareHostnames(c *gin.Context) (string, string, bool) {
	a, ok := requireQuery(c, "a")
	if !ok {
		return "", "", false
	}
	b, ok := requireQuery(c, "b")
	if !ok {
		return "", "", false
	}
	return a, b, true
}

func (s *Server) ComparePlatforms(c *gin.Context) {
	a, b, ok := s.compareHostnames(c)
	if !ok {
		return
	}
	comparison := services.ComparePlatforms(
		s.analytics.PlatformStats(a, nil),
		s.analytics.PlatformStats(b, nil),
	)
	c.JSON(http.StatusOK, comparison)
}

func (s *Server) CompareCountries(c *gin.Context) {
	a, b, ok := s.compareHostnames(c)
	if !ok {
		return
	}
	comparison := services.CompareCountries(
		s.analytics.CountryStats(a, nil),
		s.analytics.CountryStats(b, nil),
	)
	c.JSON(http.StatusOK, gin.H{"tiers": comparison})
}

func (s *Server) CompareRevenue(c *gin.Context) {
	a, b, ok := s.compareHostnames(c)
	if !ok {
		return
	}
	comparison := services.CompareRevenue(
		s.analytics.RevenueStats(a, nil),
		s.analytics.RevenueStats(b, nil),
	)
	c.JSON(http.StatusOK, comparison)
}

func (s *Server) CompareSessions(c *gin.Context) {
	a, b, ok := s.compareHostnames(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.tracker.CompareSessionTimes(a, b))
}
