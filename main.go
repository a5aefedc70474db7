package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"payflow/config"
	"payflow/handlers"
	"payflow/services"
	"payflow/store"
	"payflow/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	logger, err := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal("Failed to create logger: ", err)
	}
	defer logger.Sync()

	if cfg.EnvFile != "" {
		logger.Info("Loaded env file", zap.String("path", cfg.EnvFile))
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("Invalid timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	st, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer st.Close()

	svc := services.New(st, services.Options{
		DefaultPassword: cfg.DefaultPassword,
		JWTSecret:       cfg.JWTSecret,
		TokenExpiry:     cfg.TokenExpiry,
		Currency:        cfg.Currency,
		Clock:           func() time.Time { return time.Now().In(loc) },
	}, logger)

	app := handlers.NewApp(svc, logger)

	go func() {
		logger.Info("PayFlow API listening", zap.String("addr", cfg.ListenAddr()), zap.String("db", cfg.DBPath))
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}
