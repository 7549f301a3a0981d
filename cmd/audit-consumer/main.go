// Command audit-consumer reads catalogue change events from RabbitMQ and
// appends one line per event to AUDIT_LOG_PATH.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/iliyamo/game-catalog/internal/config"
	"github.com/iliyamo/game-catalog/internal/queue"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := &queue.AuditConsumer{
		URL:     cfg.RabbitMQURL,
		Queue:   cfg.EventsQueue,
		LogPath: cfg.AuditLogPath,
	}
	log.Printf("catalog-audit: consuming %q into %s", cfg.EventsQueue, cfg.AuditLogPath)
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("catalog-audit: %v", err)
	}
	log.Printf("catalog-audit: stopped")
}
