package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/aladhan"
	"github.com/Nixie-Tech-LLC/athan/internal/config"
	"github.com/Nixie-Tech-LLC/athan/internal/db"
	"github.com/Nixie-Tech-LLC/athan/internal/logging"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
	"github.com/Nixie-Tech-LLC/athan/internal/push"
	athanredis "github.com/Nixie-Tech-LLC/athan/internal/redis"
	"github.com/Nixie-Tech-LLC/athan/internal/timetable"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.Development())
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ttCfg := timetable.Config{
		Source:      aladhan.NewClient(cfg.AladhanBaseURL, cfg.AladhanMethod),
		Locations:   cfg.Locations(),
		StrictOrder: cfg.StrictOrder,
	}

	// initialize PostgreSQL
	if cfg.DatabaseURL != "" {
		if err := db.Init(ctx, cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("db init")
		}
		defer db.Close()
		ttCfg.Store = db.NewStore(db.DB)
	} else {
		log.Warn().Msg("DATABASE_URL not set, admin schedule endpoints are disabled")
	}

	// initialize redis
	if cfg.RedisAddress != "" {
		rdb := athanredis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddress).Msg("redis ping")
		}
		defer rdb.Close()
		ttCfg.Cache = athanredis.NewCache(rdb, cfg.CacheTTL)
	}

	svc := timetable.New(ttCfg)
	clock := prayer.SystemClock{Location: cfg.Timezone}

	if cfg.MQTTBrokerURL != "" {
		publisher, err := push.NewMQTTPublisher(cfg.MQTTBrokerURL)
		if err != nil {
			log.Fatal().Err(err).Str("broker", cfg.MQTTBrokerURL).Msg("mqtt connect")
		}
		defer publisher.Close()

		broadcaster := push.NewBroadcaster(svc, publisher, clock, cfg.MQTTTopicPrefix, cfg.PushInterval)
		go broadcaster.Run(ctx)
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestID(), logging.GinLogger())
	RegisterRoutes(r, svc, clock, cfg.PushInterval)

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.ServerAddress).Str("tz", cfg.Timezone.String()).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
