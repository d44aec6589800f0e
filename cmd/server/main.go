package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/paisabuddy/paisabuddy/internal/api"
	"github.com/paisabuddy/paisabuddy/internal/config"
	"github.com/paisabuddy/paisabuddy/internal/database"
	"github.com/paisabuddy/paisabuddy/internal/kafka"
	"github.com/paisabuddy/paisabuddy/internal/marketdata"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()

	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	defer redisClient.Close()

	var cache marketdata.PriceCache
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("redis unavailable, quotes will carry no change figures")
	} else {
		cache = marketdata.NewCache(redisClient, cfg.MarketData.CacheTTL)
	}

	var provider marketdata.Provider
	if cfg.MarketData.APIKey != "" {
		provider = marketdata.NewFMPProvider(cfg.MarketData.APIKey)
	} else {
		logger.Warn("no FMP_API_KEY configured, serving demo prices")
		provider = marketdata.NewStaticProvider()
	}
	quotes := marketdata.NewService(provider, cache, logger)

	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer producer.Close()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, db, logger)
	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.WithError(err).Error("trade journal consumer stopped")
		}
	}()

	handler := api.NewHandler(db, db, db, quotes, producer, logger)
	router := api.SetupRoutes(handler)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.WithField("addr", addr).Info("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}
