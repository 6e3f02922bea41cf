package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Publisher delivers domain events keyed by routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// LogPublisher writes events to the process log. Used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	log.Printf("event_published broker=log key=%s body=%s", routingKey, body)
	return nil
}

func (LogPublisher) Close() error { return nil }

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error { return nil }

const (
	KindLog      = "log"
	KindNone     = "none"
	KindRabbitMQ = "rabbitmq"
	KindKafka    = "kafka"
)

// Options selects and configures a publisher.
type Options struct {
	Kind         string
	AMQPURL      string
	Exchange     string
	KafkaBrokers []string
	KafkaTopic   string
}

func New(opts Options) (Publisher, error) {
	switch opts.Kind {
	case "", KindLog:
		return LogPublisher{}, nil
	case KindNone:
		return NopPublisher{}, nil
	case KindRabbitMQ:
		return NewRabbitPublisher(opts.AMQPURL, opts.Exchange)
	case KindKafka:
		return NewKafkaPublisher(opts.KafkaBrokers, opts.KafkaTopic), nil
	default:
		return nil, fmt.Errorf("unknown broker %q", opts.Kind)
	}
}
