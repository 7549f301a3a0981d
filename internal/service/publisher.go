// Package service provides the side channels a catalogue write notifies:
// change events published to RabbitMQ.  Publish errors are logged and
// returned so callers can ignore them without interrupting the request.
package service

import (
    "context"
    "encoding/json"
    "log"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/game-catalog/internal/queue"
)

// EventPublisher sends catalogue change events.
type EventPublisher interface {
    Publish(ctx context.Context, event queue.CatalogEvent) error
}

// NopPublisher drops every event.  It is used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, queue.CatalogEvent) error { return nil }

// AMQPPublisher publishes events to a durable queue on the default
// exchange.  The connection is opened lazily and re-opened after the broker
// closes it.
type AMQPPublisher struct {
    url   string
    queue string

    mu   sync.Mutex
    conn *amqp.Connection
    ch   *amqp.Channel
}

// NewAMQPPublisher returns a publisher for queueName at url.  No connection
// is made until the first Publish.
func NewAMQPPublisher(url, queueName string) *AMQPPublisher {
    return &AMQPPublisher{url: url, queue: queueName}
}

// Publish marshals event and sends it as a persistent message.
func (p *AMQPPublisher) Publish(ctx context.Context, event queue.CatalogEvent) error {
    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    p.mu.Lock()
    defer p.mu.Unlock()

    ch, err := p.channel()
    if err != nil {
        log.Printf("rabbitmq: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        Timestamp:    time.Now().UTC(),
        Type:         event.Type,
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx,
        "",      // default exchange
        p.queue, // routing key = queue name
        false,   // mandatory
        false,   // immediate
        pub,
    ); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        p.reset()
        return err
    }
    return nil
}

// channel returns an open channel, dialing and declaring the queue when
// needed.  p.mu must be held.
func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
    if p.conn != nil && !p.conn.IsClosed() && p.ch != nil && !p.ch.IsClosed() {
        return p.ch, nil
    }
    p.reset()

    conn, err := amqp.Dial(p.url)
    if err != nil {
        return nil, err
    }
    ch, err := conn.Channel()
    if err != nil {
        _ = conn.Close()
        return nil, err
    }
    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        p.queue, // name
        true,    // durable
        false,   // autoDelete
        false,   // exclusive
        false,   // noWait
        nil,     // args
    ); err != nil {
        _ = ch.Close()
        _ = conn.Close()
        return nil, err
    }
    p.conn, p.ch = conn, ch
    return ch, nil
}

func (p *AMQPPublisher) reset() {
    if p.ch != nil {
        _ = p.ch.Close()
        p.ch = nil
    }
    if p.conn != nil {
        _ = p.conn.Close()
        p.conn = nil
    }
}

// Close releases the broker connection.
func (p *AMQPPublisher) Close() error {
    p.mu.Lock()
    defer p.mu.Unlock()
    p.reset()
    return nil
}
