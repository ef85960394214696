// Package kafka publishes register events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cash-register/config"
	"cash-register/internal/core/domain"
	"cash-register/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const (
	writeTimeout    = 5 * time.Second
	headerEventType = "event_type"
	headerSignature = "signature"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher with a kafka-go Writer.
// Messages are keyed by payment so one payment's events stay on one partition.
type Publisher struct {
	writer messageWriter
	topic  string
	signer ports.EventSigner
	log    zerolog.Logger
}

// NewPublisher creates a Publisher writing to cfg.Topic. A nil signer
// publishes unsigned messages.
func NewPublisher(cfg config.KafkaConfig, signer ports.EventSigner, log zerolog.Logger) *Publisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: writeTimeout,
	}
	log.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.Topic).
		Bool("signed", signer != nil).
		Msg("Kafka publisher configured")
	return newPublisher(w, cfg.Topic, signer, log)
}

func newPublisher(w messageWriter, topic string, signer ports.EventSigner, log zerolog.Logger) *Publisher {
	return &Publisher{writer: w, topic: topic, signer: signer, log: log}
}

// Publish writes event as JSON, with an HMAC signature header when a signer is set.
func (p *Publisher) Publish(ctx context.Context, event domain.RegisterEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal register event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	headers := []kafka.Header{{Key: headerEventType, Value: []byte(event.Type)}}
	if p.signer != nil {
		headers = append(headers, kafka.Header{Key: headerSignature, Value: []byte(p.signer.Sign(event, data))})
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(event.Key()),
		Value:   data,
		Time:    event.OccurredAt,
		Headers: headers,
	})
	if err != nil {
		return fmt.Errorf("kafka write %s: %w", p.topic, err)
	}

	p.log.Debug().Str("event", string(event.Type)).Str("key", event.Key()).Msg("register event published")
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ ports.EventPublisher = (*Publisher)(nil)

// HealthCheck implements ports.HealthChecker by dialing the first reachable broker.
type HealthCheck struct {
	brokers []string
	dial    func(ctx context.Context, network, address string) (*kafka.Conn, error)
}

// NewHealthCheck creates a Kafka health checker.
func NewHealthCheck(brokers []string) *HealthCheck {
	return &HealthCheck{brokers: brokers, dial: kafka.DialContext}
}

// Ping succeeds if any broker accepts a connection.
func (h *HealthCheck) Ping(ctx context.Context) error {
	var lastErr error
	for _, b := range h.brokers {
		conn, err := h.dial(ctx, "tcp", b)
		if err != nil {
			lastErr = err
			continue
		}
		return conn.Close()
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no brokers configured")
	}
	return fmt.Errorf("kafka unreachable: %w", lastErr)
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "kafka"
}
