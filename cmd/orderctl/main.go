package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/sokoide/solid-orders/config"
	"github.com/sokoide/solid-orders/domain/entity"
	"github.com/sokoide/solid-orders/domain/repository"
	"github.com/sokoide/solid-orders/domain/service"
	"github.com/sokoide/solid-orders/infra/client"
	"github.com/sokoide/solid-orders/infra/logging"
	"github.com/sokoide/solid-orders/infra/rabbitmq"
	infraredis "github.com/sokoide/solid-orders/infra/redis"
	infrarepo "github.com/sokoide/solid-orders/infra/repository"
	"github.com/sokoide/solid-orders/infra/util"
	"github.com/sokoide/solid-orders/usecase"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	cfg, err := config.Load(os.Getenv("ORDERS_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := logging.New(cfg.Log)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	inventory := infraredis.NewRedisInventoryRepository(rdb, cfg.Redis.InventoryKey, logger)

	ctx := context.Background()

	switch os.Args[1] {
	case "process":
		order, err := parseOrder(os.Args[2:], &util.UUIDGenerator{})
		if err != nil {
			fmt.Println(err)
			fmt.Println("Usage: process <standard|express> <quantity> <amount> <email> [id]")
			os.Exit(2)
		}

		conn, ch, err := rabbitmq.SetupConn(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatalf("Failed to setup RabbitMQ: %v", err)
		}
		defer conn.Close()
		defer ch.Close()

		store, closeStore, err := infrarepo.OpenStatusStore(ctx, cfg.Store, logger)
		if err != nil {
			log.Fatalf("Failed to open status store: %v", err)
		}
		defer closeStore()

		gateway := client.NewSimulatedPaymentGateway(cfg.Payment.ApprovalLimit, logger)
		steps := usecase.Steps{
			Inventory: service.NewInventoryChecker(inventory),
			Payment:   service.NewPaymentProcessor(gateway, gateway),
			Status:    service.NewOrderStatusUpdater(store),
			Notifier:  service.NewCustomerNotifier(rabbitmq.NewEmailPublisher(ch, cfg.RabbitMQ.Exchange, logger)),
		}
		dispatcher := usecase.NewDispatchers(steps, otel.GetTracerProvider(), logger)[order.Type]

		if err := dispatcher.ProcessOrder(ctx, order); err != nil {
			fmt.Printf("Order %s failed: %v\n", order.ID, err)
			os.Exit(1)
		}
		fmt.Printf("Order %s processed\n", order.ID)

	case "stock":
		if err := runStock(ctx, inventory, os.Args[2:]); err != nil {
			log.Fatal(err)
		}

	default:
		printUsage()
	}
}

type stockAdmin interface {
	repository.InventorySource
	SetLevel(ctx context.Context, level int) error
	AddStock(ctx context.Context, delta int) (int, error)
}

func runStock(ctx context.Context, inv stockAdmin, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: stock <get|set|add> [n]")
	}
	switch args[0] {
	case "get":
		level, err := inv.Level(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Inventory level: %d\n", level)
	case "set", "add":
		if len(args) != 2 {
			return fmt.Errorf("usage: stock %s <n>", args[0])
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid number %q", args[1])
		}
		if args[0] == "set" {
			if err := inv.SetLevel(ctx, n); err != nil {
				return err
			}
			fmt.Printf("Inventory level set to %d\n", n)
			return nil
		}
		level, err := inv.AddStock(ctx, n)
		if err != nil {
			return err
		}
		fmt.Printf("Inventory level is now %d\n", level)
	default:
		return fmt.Errorf("unknown stock command %q", args[0])
	}
	return nil
}

func parseOrder(args []string, idGen repository.IDGenerator) (entity.Order, error) {
	if len(args) < 4 || len(args) > 5 {
		return entity.Order{}, fmt.Errorf("%w: expected 4 or 5 arguments, got %d", entity.ErrInvalidOrder, len(args))
	}
	t := entity.OrderType(args[0])
	if !t.Valid() {
		return entity.Order{}, fmt.Errorf("%w: %q", entity.ErrUnknownOrderType, args[0])
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil || qty <= 0 {
		return entity.Order{}, fmt.Errorf("%w: quantity must be a positive integer", entity.ErrInvalidOrder)
	}
	amount, err := strconv.ParseFloat(args[2], 64)
	if err != nil || amount < 0 {
		return entity.Order{}, fmt.Errorf("%w: amount must be a non-negative number", entity.ErrInvalidOrder)
	}
	order := entity.Order{
		Type:          t,
		Quantity:      qty,
		Amount:        amount,
		CustomerEmail: args[3],
	}
	if len(args) == 5 {
		order.ID = args[4]
	} else {
		order.ID = idGen.GenerateID()
	}
	return order, nil
}

func printUsage() {
	fmt.Println("Order CLI usage:")
	fmt.Println("  process <type> <qty> <amount> <email> [id]  - Process a standard or express order")
	fmt.Println("  stock get                                    - Show the inventory level")
	fmt.Println("  stock set <n>                                - Set the inventory level")
	fmt.Println("  stock add <n>                                - Add (or remove, if negative) stock")
}
