package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tapan77777/Transpera/internal/config"
	"github.com/tapan77777/Transpera/internal/notify"
	"github.com/tapan77777/Transpera/internal/server"
	"github.com/tapan77777/Transpera/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("opening store")
	}
	defer store.Close()

	var notifier *notify.Notifier
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		notifier, err = notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatal().Err(err).Msg("creating telegram notifier")
		}
		log.Info().Msg("telegram alerting enabled")
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.New(store, notifier, cfg.RateLimitRPS).Router(),
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if !cfg.UsePostgres() {
		log.Info().Msg("no database configured, using in-memory store")
		return storage.NewMemory(), nil
	}
	log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("connecting to postgres")
	return storage.NewPostgres(storage.ConnectionParams{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
}
