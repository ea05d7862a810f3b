package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/adapters/in/http"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/adapters/in/rabbitmq"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/adapters/out/backend"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/adapters/out/cache"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/adapters/out/logger"
	rabbitmqout "github.com/Inovare-Grupo-8/portal-assistencia/internal/adapters/out/rabbitmq"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/adapters/out/storage"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/adapters/out/viacep"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/config"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/services/history_service"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/services/profile_service"
)

const serviceName = "portal-assistencia-bff"

func newLogger(cfg *config.Config) (out.LoggerPort, func(), error) {
	if cfg.Log.Format == "console" {
		consoleLogger, err := logger.NewConsoleLogger(cfg.App.Timezone, cfg.Log.Level)
		if err != nil {
			return nil, nil, err
		}
		return consoleLogger, func() {}, nil
	}

	zapLogger, err := logger.NewJSONLogger(cfg.Log.Level, serviceName)
	if err != nil {
		return nil, nil, err
	}
	return zapLogger, func() { _ = zapLogger.Sync() }, nil
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, syncLogger, err := newLogger(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer syncLogger()
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMq.Enabled,
		"feedbackSync":    cfg.RabbitMq.FeedbackSync,
		"redisStorage":    cfg.Storage.RedisEnabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Outbound adapters
	backendAdapter := backend.NewBackendAdapter(cfg, mainLogger)
	viaCepAdapter := viacep.NewViaCepAdapter(cfg, mainLogger)

	cacheAdapter, err := cache.NewCacheAdapter(cfg, mainLogger)
	if err != nil {
		logger.Error("app.cache.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	var storagePort out.StoragePort
	if cfg.Storage.RedisEnabled {
		redisStorage := storage.NewRedisStorage(storage.NewRedisClient(cfg), cfg.Storage.KeyPrefix, mainLogger)
		if err := redisStorage.Ping(ctx); err != nil {
			logger.Error("app.storage.redis_unavailable", out.LogFields{
				"addr":  cfg.Storage.RedisAddr,
				"error": err.Error(),
			})
			os.Exit(1)
		}
		defer redisStorage.Close()
		storagePort = redisStorage
	} else {
		memoryStorage, err := storage.NewMemoryStorage(cfg.Storage.MemorySize)
		if err != nil {
			logger.Error("app.storage.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		storagePort = memoryStorage
	}

	var feedbackSync out.FeedbackSyncPort
	if cfg.RabbitMq.FeedbackSync {
		publisher, err := rabbitmqout.NewFeedbackPublisher(cfg, mainLogger)
		if err != nil {
			logger.Error("app.rabbitmq.publisher_init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		defer publisher.Close()
		feedbackSync = publisher
	}

	// Services
	historyService := history_service.NewHistoryService(
		backendAdapter,
		cacheAdapter,
		feedbackSync,
		mainLogger,
	)
	profileService := profile_service.NewProfileService(
		backendAdapter,
		viaCepAdapter,
		cacheAdapter,
		storagePort,
		cfg,
		mainLogger,
	)

	// HTTP
	router := gin.Default()
	session := http.NewSessionMiddleware(storagePort, mainLogger)
	http.NewHealthController(cfg).RegisterRoutes(router)
	http.NewHistoryController(historyService, session, mainLogger).RegisterRoutes(router)
	http.NewProfileController(profileService, session, cfg.Photo.MaxBytes, mainLogger).RegisterRoutes(router)

	// History invalidation listener, only when RabbitMQ is enabled
	if cfg.RabbitMq.Enabled {
		listener, err := rabbitmq.NewInvalidationListener(historyService, cfg, mainLogger)
		if err != nil {
			logger.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	if cfg.IsLocal() {
		logger.Debug("app.config.debug", out.LogFields{
			"config": map[string]interface{}{
				"http": map[string]string{
					"host": cfg.HTTP.Host,
					"port": cfg.HTTP.Port,
				},
				"backend": map[string]interface{}{
					"url":     cfg.Backend.URL,
					"timeout": cfg.Backend.Timeout.String(),
				},
				"viacep": map[string]interface{}{
					"url": cfg.ViaCep.URL,
				},
				"rabbitmq": map[string]interface{}{
					"enabled":      cfg.RabbitMq.Enabled,
					"feedbackSync": cfg.RabbitMq.FeedbackSync,
					"historyQueue": cfg.RabbitMq.QueueConfig.HistoryQueueName,
				},
				"cache": map[string]interface{}{
					"enabled":      cfg.Cache.Enabled,
					"history_size": cfg.Cache.HistorySize,
					"profile_size": cfg.Cache.ProfileSize,
					"cep_size":     cfg.Cache.CepSize,
				},
			},
		})
	}
}
