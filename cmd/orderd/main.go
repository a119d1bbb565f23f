package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/sokoide/solid-orders/config"
	"github.com/sokoide/solid-orders/domain/entity"
	"github.com/sokoide/solid-orders/domain/service"
	"github.com/sokoide/solid-orders/infra/cache"
	"github.com/sokoide/solid-orders/infra/client"
	"github.com/sokoide/solid-orders/infra/handler"
	"github.com/sokoide/solid-orders/infra/logging"
	"github.com/sokoide/solid-orders/infra/rabbitmq"
	infraredis "github.com/sokoide/solid-orders/infra/redis"
	"github.com/sokoide/solid-orders/infra/repository"
	"github.com/sokoide/solid-orders/infra/util"
	"github.com/sokoide/solid-orders/usecase"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := logging.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Setup Infrastructure
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	inventory := cache.NewInventoryCache(
		infraredis.NewRedisInventoryRepository(rdb, cfg.Redis.InventoryKey, logger),
		cfg.Inventory.CacheTTL,
	)

	conn, ch, err := rabbitmq.SetupConn(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Fatalf("Failed to setup RabbitMQ: %v", err)
	}
	defer conn.Close()
	defer ch.Close()
	messenger := rabbitmq.NewEmailPublisher(ch, cfg.RabbitMQ.Exchange, logger)

	store, closeStore, err := repository.OpenStatusStore(ctx, cfg.Store, logger)
	if err != nil {
		log.Fatalf("Failed to open status store: %v", err)
	}
	defer closeStore()

	gateway := client.NewSimulatedPaymentGateway(cfg.Payment.ApprovalLimit, logger)

	// 2. Setup Domain Services
	steps := usecase.Steps{
		Inventory: service.NewInventoryChecker(inventory),
		Payment:   service.NewPaymentProcessor(gateway, gateway),
		Status:    service.NewOrderStatusUpdater(store),
		Notifier:  service.NewCustomerNotifier(messenger),
	}

	// 3. Setup Usecases, one dispatcher per order type
	dispatchers := make(map[entity.OrderType]handler.Dispatcher)
	for t, d := range usecase.NewDispatchers(steps, otel.GetTracerProvider(), logger) {
		dispatchers[t] = d
	}

	// 4. Serve
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler.NewOrderHandler(dispatchers, store, &util.UUIDGenerator{}, logger).Register(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("order service listening", slog.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", slog.Any("error", err))
	}
	logger.Info("order service stopped")
}
