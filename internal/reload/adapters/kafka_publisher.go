// Package adapters connects the reload service to outbound infrastructure.
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"facilities/internal/platform/kafka"
	"facilities/internal/reload"
)

// MessageSender is the subset of the Kafka producer the publisher needs.
type MessageSender interface {
	Send(ctx context.Context, topic string, msgs ...kafka.Message) error
}

// KafkaPublisher emits one record per facility transition, keyed by facility
// id so consumers see the changes for a facility in order.
type KafkaPublisher struct {
	sender MessageSender
	topic  string
}

func NewKafkaPublisher(sender MessageSender, topic string) (*KafkaPublisher, error) {
	if sender == nil {
		return nil, errors.New("kafka sender is required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	return &KafkaPublisher{sender: sender, topic: topic}, nil
}

// Publish implements reload.ChangePublisher.
func (p *KafkaPublisher) Publish(ctx context.Context, events []reload.ChangeEvent) error {
	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode change event for %s: %w", event.FacilityID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.FacilityID),
			Value: value,
			Headers: map[string]string{
				"change":    event.Change,
				"reload_id": event.ReloadID,
			},
		})
	}
	return p.sender.Send(ctx, p.topic, msgs...)
}
