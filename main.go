package main

import (
	"fmt"
	"time"

	"WaDesk/middleware"
	"WaDesk/pkg/config"
	"WaDesk/pkg/dedup"
	"WaDesk/pkg/events"
	"WaDesk/pkg/services"
	"WaDesk/pkg/store"
	"WaDesk/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.Load()

	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	mirror, err := newMirror()
	if err != nil {
		logger.Fatal("failed to open store mirror", zap.Error(err))
	}

	st := store.New(mirror, logger)
	st.Load()

	reg := events.NewRegistry(logger)

	var notifier services.Notifier
	if config.GraphAPIToken == "" {
		logger.Warn("GRAPH_API_TOKEN not set, replies are recorded locally instead of delivered")
		notifier = &services.RecordingNotifier{}
	} else {
		notifier = services.NewGraphClient(config.GraphAPIBase, config.GraphAPIToken, logger)
	}

	inbox := services.NewInbox(st, reg, notifier, logger)
	guard := dedup.New(time.Duration(config.DuplicateWindowSeconds) * time.Second)

	middleware.SetRateLimitConfig(
		time.Duration(config.RateLimitWindowSeconds)*time.Second,
		config.RateLimitCapacity,
	)

	if config.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/assets", "./public")

	routes.RegisterRoutes(r, routes.Deps{
		Store:       st,
		Registry:    reg,
		Inbox:       inbox,
		Guard:       guard,
		VerifyToken: config.VerifyToken,
		Logger:      logger,
	})

	logger.Info("listening", zap.String("port", config.Port))
	if err := r.Run(":" + config.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger() (*zap.Logger, error) {
	if config.IsProduction {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newMirror() (store.Mirror, error) {
	switch config.StoreDriver {
	case "file":
		return store.NewFileMirror(config.MessagesFile), nil
	case "sqlite", "mysql":
		return store.NewGormMirror(config.StoreDriver, config.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", config.StoreDriver)
	}
}
