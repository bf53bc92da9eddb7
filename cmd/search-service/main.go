package main

import (
	registrymodel "Proximity_Search_Microservice/internal/health-registry/model"
	"Proximity_Search_Microservice/internal/search-service/api/handler"
	"Proximity_Search_Microservice/internal/search-service/api/routes"
	"Proximity_Search_Microservice/internal/search-service/cache"
	"Proximity_Search_Microservice/internal/search-service/config"
	"Proximity_Search_Microservice/internal/search-service/fingerprint"
	"Proximity_Search_Microservice/internal/search-service/geoindex"
	"Proximity_Search_Microservice/internal/search-service/heartbeat"
	"Proximity_Search_Microservice/internal/search-service/ranking"
	"Proximity_Search_Microservice/internal/search-service/repository"
	"Proximity_Search_Microservice/internal/search-service/service"
	"Proximity_Search_Microservice/pkg/infra"
	"Proximity_Search_Microservice/pkg/logger"
	"Proximity_Search_Microservice/pkg/middleware"
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
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	appConfig, err := config.LoadConfig("./.env")
	if err != nil {
		log.Fatal(fmt.Sprintf("load config error: %v", err))
	}
	if appConfig.Server.InstanceID == "" {
		appConfig.Server.InstanceID = uuid.NewString()
	}

	// set up logger
	zapLogger, fileSyncer, err := logger.Setup(logger.Config{
		Level:       appConfig.Server.LogLevel,
		FilePath:    appConfig.Server.LogFile,
		ServiceName: "search-service",
	})
	if err != nil {
		log.Fatal(fmt.Sprintf("set up logger error: %v", err))
	}
	zapLogger = zapLogger.With(zap.String("instance.id", appConfig.Server.InstanceID))
	defer zapLogger.Sync()
	stopReload := logger.ReloadOnSignal(zapLogger, fileSyncer)
	defer stopReload()

	//set up database
	db, err := infra.NewPostgresConnection(infra.PostgresConfig{
		Host:         appConfig.Postgres.Host,
		Port:         appConfig.Postgres.Port,
		User:         appConfig.Postgres.User,
		Password:     appConfig.Postgres.Password,
		DBName:       appConfig.Postgres.DBName,
		MaxOpenConns: appConfig.Postgres.MaxOpenConns,
		MaxIdleConns: appConfig.Postgres.MaxIdleConns,
	})
	if err != nil {
		zapLogger.Fatal("failed to connect to postgres", zap.Error(err))
	} else {
		zapLogger.Info("connected to postgres successfully")
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("failed to get sql.DB from gorm:", zap.Error(err))
	}
	defer sqlDB.Close()

	// set up redis
	redisClient, err := infra.NewRedisConnection(infra.RedisConfig{
		Host:         appConfig.Redis.Host,
		Port:         appConfig.Redis.Port,
		Password:     appConfig.Redis.Password,
		DB:           appConfig.Redis.DB,
		PoolSize:     appConfig.Redis.PoolSize,
		DialTimeout:  appConfig.Cache.OperationTimeout * 5,
		ReadTimeout:  appConfig.Cache.OperationTimeout,
		WriteTimeout: appConfig.Cache.OperationTimeout,
	})
	if err != nil {
		zapLogger.Fatal("failed to connect to redis", zap.Error(err))
	} else {
		zapLogger.Info("connected to redis successfully")
	}
	defer redisClient.Close()

	// set up dependencies
	establishmentRepo := repository.NewEstablishmentRepository(db)
	index, stopIndex := newGeoIndex(appConfig, db, establishmentRepo, zapLogger)
	defer stopIndex()
	index = geoindex.NewResilientIndex(index, appConfig.GeoIndex.MaxConcurrentQueries, appConfig.GeoIndex.QueryTimeout, appConfig.GeoIndex.RetryBackoff)

	resultStore := repository.NewResultStore(redisClient, appConfig.Cache.KeyPrefix)
	resultCache := cache.NewResultCache(resultStore, appConfig.Cache, zapLogger)
	defer resultCache.Close()

	dependencies := heartbeat.NewDependencyState()
	searchService := service.NewSearchService(
		ranking.NewResolver(dependencies),
		fingerprint.NewFingerprinter(appConfig.Cache.KeyPrefix, appConfig.Search.CoordinatePrecision),
		resultCache,
		index,
		establishmentRepo,
		appConfig.Search,
		zapLogger,
	)

	tracker := middleware.NewConnectionTracker()
	emitter := heartbeat.NewEmitter(
		appConfig.Server.InstanceID,
		appConfig.Heartbeat,
		index,
		resultStore,
		dependencies,
		func() map[string]float64 {
			return map[string]float64{
				registrymodel.DiagActiveConnections: float64(tracker.Active()),
				registrymodel.DiagCacheHitRate:      resultCache.HitRate(),
				registrymodel.DiagFallbackTotal:     float64(searchService.FallbackTotal()),
			}
		},
		infra.NewKafkaWriter(appConfig.Kafka.Brokers, appConfig.Kafka.HeartbeatTopic),
		zapLogger,
	)
	emitter.Start()

	searchHandler := handler.NewSearchHandler(zapLogger, searchService)
	healthHandler := handler.NewHealthHandler(appConfig.Server.InstanceID, emitter, 2*appConfig.Heartbeat.Interval)

	// Set up http server
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Use(tracker.Track(), middleware.RequestDeadline(appConfig.Server.RequestTimeout))

	routes.SetUpSearchRoutes(r, searchHandler, healthHandler)

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
	// announce unhealthy before draining so balancers stop routing here
	emitter.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server forced to shutdown:", zap.Error(err))
	}
	zapLogger.Info("server exiting")
}

// newGeoIndex builds the configured spatial backend. The returned func releases whatever
// the backend started.
func newGeoIndex(appConfig config.AppConfig, db *gorm.DB, establishmentRepo repository.EstablishmentRepository, zapLogger *zap.Logger) (geoindex.Index, func()) {
	switch appConfig.GeoIndex.Backend {
	case geoindex.BackendElasticsearch:
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
		index := geoindex.NewElasticIndex(esClient, appConfig.GeoIndex.IndexName)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err = index.EnsureIndex(ctx); err != nil {
			zapLogger.Fatal("failed to ensure establishments index", zap.Error(err))
		}
		return index, func() {}
	case geoindex.BackendPostGIS:
		return geoindex.NewPostgisIndex(db, appConfig.GeoIndex.IndexName), func() {}
	case geoindex.BackendMemory:
		index := geoindex.NewMemoryIndex(establishmentRepo, appConfig.GeoIndex.MemoryRefreshInterval, zapLogger)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := index.Refresh(ctx); err != nil {
			zapLogger.Fatal("failed to load in-memory index", zap.Error(err))
		}
		index.Start()
		return index, index.Stop
	default:
		zapLogger.Fatal("unknown geo index backend", zap.String("backend", appConfig.GeoIndex.Backend))
		return nil, nil
	}
}
