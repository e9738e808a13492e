package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"playstats/internal/config"
	"playstats/internal/database"
	"playstats/internal/handlers"
	"playstats/internal/kafka"
	"playstats/internal/logger"
	"playstats/internal/middleware"
	"playstats/internal/repository"
	"playstats/internal/services"
	"playstats/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()
	log := logger.SetupLogger(cfg.LogLevel)

	db, err := database.SetupDatabase(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Repositories
	eventRepo := repository.NewEventRepository(db, log)
	revenueRepo := repository.NewRevenueRepository(db, log)
	campaignRepo := repository.NewCampaignRepository(db, log)
	sessionRepo := repository.NewSessionRepository(db, log)
	analyticsRepo := repository.NewAnalyticsRepository(db, log)
	playerCountRepo := repository.NewPlayerCountRepository(db, log)
	maintenanceRepo := repository.NewMaintenanceRepository(db, log)

	// Session tracker, seeded with persisted history
	tracker := session.NewTracker(sessionRepo, log)
	if aggregates, err := sessionRepo.HostnameAggregates(); err != nil {
		log.WithError(err).Warn("Failed to load session history, averages start empty")
	} else {
		tracker.LoadHistory(aggregates)
	}

	joinQueue := services.NewJoinQueue(eventRepo, log, 10000)
	ingestor := services.NewIngestor(tracker, joinQueue, eventRepo, revenueRepo, services.NewDefaultClassifier(), log)

	kafkaWriter := kafka.NewWriter(cfg.KafkaBroker, cfg.KafkaOutTopic)
	defer func() {
		if err := kafkaWriter.Close(); err != nil {
			log.WithError(err).Error("Failed to close Kafka writer")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background workers
	go joinQueue.StartProcessor(ctx)

	sampler := services.NewSampler(tracker, playerCountRepo, cfg.SampleInterval, log)
	go sampler.Run(ctx)

	janitor := services.NewJanitor(maintenanceRepo, cfg.RetentionDays, log)
	go janitor.Run(ctx)

	consumer := kafka.NewConsumer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaGroupID, log)
	defer consumer.Close()
	dispatcher := kafka.NewDispatcher(log)
	kafka.RegisterIngestHandlers(dispatcher, ingestor)
	go dispatcher.Run(ctx, consumer)

	// HTTP API
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(middleware.CORSMiddleware())

	server := handlers.NewServer(db, log, ingestor, tracker, campaignRepo, analyticsRepo, sessionRepo, playerCountRepo, kafkaWriter)
	server.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.WithField("port", cfg.Port).Info("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}
