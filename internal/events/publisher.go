// Package events publishes domain events to Kafka for downstream consumers
// (notification fan-out, analytics). Publishing is strictly best-effort: a
// broker outage never changes the outcome of a submission.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	id "pomen/pkg/domain"
)

// Event types carried on the topic.
const (
	TypePersonCreated    = "person.created"
	TypeTributeSubmitted = "tribute.submitted"
)

// Envelope is the JSON payload produced for every event. PersonID doubles as
// the partition key so events for one person stay ordered.
type Envelope struct {
	Type       string    `json:"type"`
	PersonID   string    `json:"person_id"`
	TributeID  string    `json:"tribute_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher produces domain events. A nil *Publisher is a valid no-op, so
// callers never branch on whether Kafka is configured.
type Publisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// New connects to the brokers and ensures the topic exists. Returns an error
// only for misconfiguration; transient produce failures later are logged and
// swallowed.
func New(ctx context.Context, brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(ctx, client, topic); err != nil {
		client.Close()
		return nil, err
	}

	return &Publisher{client: client, topic: topic, logger: logger}, nil
}

// PersonCreated emits a person.created event. Best effort.
func (p *Publisher) PersonCreated(ctx context.Context, personID id.PersonID) {
	p.emit(ctx, Envelope{
		Type:       TypePersonCreated,
		PersonID:   personID.String(),
		OccurredAt: time.Now().UTC(),
	})
}

// TributeSubmitted emits a tribute.submitted event. Best effort.
func (p *Publisher) TributeSubmitted(ctx context.Context, personID id.PersonID, tributeID id.TributeID) {
	p.emit(ctx, Envelope{
		Type:       TypeTributeSubmitted,
		PersonID:   personID.String(),
		TributeID:  tributeID.String(),
		OccurredAt: time.Now().UTC(),
	})
}

// Close flushes buffered records and releases the client.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = p.client.Flush(flushCtx)
	p.client.Close()
}

func (p *Publisher) emit(ctx context.Context, env Envelope) {
	if p == nil {
		return
	}
	payload, err := json.Marshal(env)
	if err != nil {
		p.logger.WarnContext(ctx, "event marshal failed", "type", env.Type, "error", err.Error())
		return
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(env.PersonID),
		Value: payload,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Warn("event publish failed", "type", env.Type, "error", err.Error())
		}
	})
}

func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, res := range resp {
		if res.Err != nil && !errors.Is(res.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", topic, res.Err)
		}
	}
	return nil
}
