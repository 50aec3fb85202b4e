// Package publisher announces completed verifications on Kafka.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"tradeverify/internal/verification/models"
)

// EventTypeCompleted is the type of every event this package emits.
const EventTypeCompleted = "verification.completed"

// Event is the JSON payload published for a completed verification.
type Event struct {
	EventID    string         `json:"eventId"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Result     *models.Result `json:"result"`
}

// NewEvent wraps a result in a completed event.
func NewEvent(result *models.Result) Event {
	return Event{
		EventID:    uuid.NewString(),
		Type:       EventTypeCompleted,
		OccurredAt: result.Timestamp,
		Result:     result,
	}
}

// producer is the subset of *kgo.Client used for publishing.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// Kafka publishes events keyed by invoice id so every verification of an
// invoice lands on the same partition.
type Kafka struct {
	client producer
	topic  string
}

// NewKafka connects a producer to brokers.
func NewKafka(brokers []string, topic string) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(5*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Kafka{client: client, topic: topic}, nil
}

// EnsureTopic creates the topic if it does not exist yet.
func (k *Kafka) EnsureTopic(ctx context.Context, partitions int32, replicationFactor int16) error {
	client, ok := k.client.(*kgo.Client)
	if !ok {
		return nil
	}
	resp, err := kadm.NewClient(client).CreateTopic(ctx, partitions, replicationFactor, nil, k.topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", k.topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", k.topic, resp.Err)
	}
	return nil
}

// Publish sends one verification.completed event and waits for the ack.
func (k *Kafka) Publish(ctx context.Context, result *models.Result) error {
	event := NewEvent(result)
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(result.InvoiceID),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(EventTypeCompleted)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
		Timestamp: event.OccurredAt,
	}
	if err := k.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("publish %s: %w", EventTypeCompleted, err)
	}
	return nil
}

// Close releases the underlying client.
func (k *Kafka) Close() {
	k.client.Close()
}

// Noop discards every event. It is used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, *models.Result) error { return nil }

func (Noop) Close() {}
