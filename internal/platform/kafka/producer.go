// Package kafka wraps a franz-go client for synchronous, keyed publishing.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Message is one record to publish. Records with the same key land on the
// same partition, which preserves per-key ordering.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer publishes messages and waits for broker acknowledgement.
type Producer struct {
	client *kgo.Client
	logger *slog.Logger
}

type Option func(*options)

type options struct {
	logger   *slog.Logger
	clientID string
	timeout  time.Duration
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithClientID(clientID string) Option {
	return func(o *options) {
		o.clientID = clientID
	}
}

// WithProduceTimeout bounds how long a record may wait for acknowledgement.
func WithProduceTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// NewProducer connects to brokers and verifies that at least one is reachable.
func NewProducer(ctx context.Context, brokers []string, opts ...Option) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one kafka broker is required")
	}
	o := options{
		logger:   slog.Default(),
		clientID: "facilities",
		timeout:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(o.clientID),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(5*time.Millisecond),
		kgo.RecordDeliveryTimeout(o.timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping kafka: %w", err)
	}
	return &Producer{client: client, logger: o.logger}, nil
}

// EnsureTopic creates topic if it does not exist yet.
func (p *Producer) EnsureTopic(ctx context.Context, topic string, partitions int32, replicationFactor int16) error {
	adm := kadm.NewClient(p.client)
	resp, err := adm.CreateTopics(ctx, partitions, replicationFactor, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Send publishes msgs to topic and blocks until every record is acknowledged
// or fails. The first failure is returned.
func (p *Producer) Send(ctx context.Context, topic string, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}
	records := make([]*kgo.Record, 0, len(msgs))
	for _, m := range msgs {
		records = append(records, toRecord(topic, m))
	}
	if err := p.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", topic, err)
	}
	p.logger.DebugContext(ctx, "kafka records produced", "topic", topic, "count", len(records))
	return nil
}

// Close flushes buffered records and closes the client.
func (p *Producer) Close(ctx context.Context) {
	if err := p.client.Flush(ctx); err != nil {
		p.logger.WarnContext(ctx, "kafka flush on close failed", "error", err)
	}
	p.client.Close()
}

func toRecord(topic string, m Message) *kgo.Record {
	rec := &kgo.Record{Topic: topic, Key: m.Key, Value: m.Value}
	for k, v := range m.Headers {
		rec.Headers = append(rec.Headers, kgo.RecordHeader{Key: k, Value: []byte(v)})
	}
	return rec
}
