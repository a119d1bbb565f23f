package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sokoide/solid-orders/config"
	"github.com/sokoide/solid-orders/domain/entity"
	"github.com/sokoide/solid-orders/infra/logging"
	"github.com/sokoide/solid-orders/infra/rabbitmq"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	queue := flag.String("queue", "mailer", "queue to consume from")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := logging.New(cfg.Log)

	conn, ch, err := rabbitmq.SetupConn(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Fatalf("Failed to setup RabbitMQ: %v", err)
	}
	defer conn.Close()
	defer ch.Close()

	sub := rabbitmq.NewEmailSubscriber(ch, cfg.RabbitMQ.Exchange, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("mailer starting", slog.String("binding", rabbitmq.EmailBindingKey), slog.String("queue", *queue))
	err = sub.Subscribe(ctx, *queue, rabbitmq.EmailBindingKey, func(n entity.EmailNotification) error {
		logger.Info("email delivered",
			slog.String("message_id", n.ID),
			slog.String("to", n.Address),
			slog.String("body", n.Message))
		return nil
	})
	if err != nil {
		log.Fatalf("Subscriber error: %v", err)
	}

	<-ctx.Done()
	logger.Info("mailer stopped")
}
