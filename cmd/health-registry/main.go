package main

import (
	"Proximity_Search_Microservice/internal/health-registry/api/handler"
	"Proximity_Search_Microservice/internal/health-registry/api/routes"
	"Proximity_Search_Microservice/internal/health-registry/config"
	"Proximity_Search_Microservice/internal/health-registry/consumer"
	"Proximity_Search_Microservice/internal/health-registry/poller"
	"Proximity_Search_Microservice/internal/health-registry/registry"
	"Proximity_Search_Microservice/internal/health-registry/repository"
	"Proximity_Search_Microservice/internal/health-registry/service"
	"Proximity_Search_Microservice/pkg/infra"
	"Proximity_Search_Microservice/pkg/logger"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	appConfig, err := config.LoadConfig("./.env")
	if err != nil {
		log.Fatal(fmt.Sprintf("load config error: %v", err))
	}
	targets, err := appConfig.Poller.PollTargets()
	if err != nil {
		log.Fatal(fmt.Sprintf("load config error: %v", err))
	}

	// set up logger
	zapLogger, fileSyncer, err := logger.Setup(logger.Config{
		Level:       appConfig.Server.LogLevel,
		FilePath:    appConfig.Server.LogFile,
		ServiceName: "health-registry",
	})
	if err != nil {
		log.Fatal(fmt.Sprintf("set up logger error: %v", err))
	}
	defer zapLogger.Sync()
	stopReload := logger.ReloadOnSignal(zapLogger, fileSyncer)
	defer stopReload()

	//set up elasticsearch
	esClient, err := infra.NewElasticSearchConnection(infra.ElasticsearchConfig{
		Addresses: appConfig.Elasticsearch.Addresses,
		Username:  appConfig.Elasticsearch.Username,
		Password:  appConfig.Elasticsearch.Password,
	})
	if err != nil {
		zapLogger.Fatal("failed to connect to elasticsearch", zap.Error(err))
	} else {
		zapLogger.Info("connected to elasticsearch successfully")
	}

	// set up dependencies
	heartbeatRepo := repository.NewHeartbeatRepository(esClient, appConfig.Registry.HistoryIndex)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = heartbeatRepo.EnsureIndex(ctx)
	cancel()
	if err != nil {
		zapLogger.Fatal("failed to ensure heartbeat history index", zap.Error(err))
	}
	healthService := service.NewHealthService(registry.NewRegistry(appConfig.Registry.FreshnessWindow), heartbeatRepo, appConfig.Registry, zapLogger)
	registryHandler := handler.NewRegistryHandler(zapLogger, healthService)

	consumers := make([]consumer.HeartbeatConsumer, appConfig.Kafka.ConsumerCnt)
	for i := 0; i < appConfig.Kafka.ConsumerCnt; i++ {
		consumers[i] = consumer.NewHeartbeatConsumer(infra.NewKafkaReader(appConfig.Kafka.Brokers, appConfig.Kafka.ConsumerGroupID, appConfig.Kafka.HeartbeatTopic), healthService, zapLogger)
		consumers[i].Start()
	}

	var instancePoller poller.Poller
	if len(targets) > 0 {
		limiter := rate.NewLimiter(rate.Limit(appConfig.Poller.RateLimit), appConfig.Poller.Burst)
		instanceClient := poller.NewInstanceClient(appConfig.Poller.MaxRetries, appConfig.Poller.RequestTimeout, appConfig.Poller.InitialBackoff, limiter)
		instancePoller = poller.NewPoller(targets, appConfig.Poller, instanceClient, healthService, zapLogger)
		instancePoller.Start()
		zapLogger.Info("polling instances", zap.Int("targets", len(targets)))
	}

	// Create cronjob for pruning silent instances
	cronJob := cron.New()
	_, err = cronJob.AddFunc(appConfig.Registry.PruneSchedule, func() {
		healthService.Prune()
	})
	if err != nil {
		zapLogger.Fatal("failed to create cron job for pruning", zap.Error(err))
	}
	cronJob.Start()

	// Set up http server
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.SetUpRegistryRoutes(r, registryHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", appConfig.Server.Port),
		Handler: r,
	}
	go func() {
		zapLogger.Info(fmt.Sprintf("starting server on %s", srv.Addr))
		if e := srv.ListenAndServe(); e != nil && !errors.Is(e, http.ErrServerClosed) {
			zapLogger.Fatal("failed to start server", zap.Error(e))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("shutting down server...")
	<-cronJob.Stop().Done()
	if instancePoller != nil {
		instancePoller.Stop()
	}
	for i := 0; i < appConfig.Kafka.ConsumerCnt; i++ {
		consumers[i].Stop()
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown:", zap.Error(err))
	}
	zapLogger.Info("server exiting")
}
