package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"univoice/internal/model"
)

type EventPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewEventPublisher(conn *amqp.Connection, queueName string) *EventPublisher {
	return &EventPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *EventPublisher) Publish(ctx context.Context, event model.SubmissionEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	payload, err := EncodeEvent(event)
	if err != nil {
		return err
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish submission event failed: %w", err)
	}
	return nil
}

func EncodeEvent(event model.SubmissionEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal submission event failed: %w", err)
	}
	return payload, nil
}

func DecodeEvent(body []byte) (model.SubmissionEvent, error) {
	var event model.SubmissionEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return model.SubmissionEvent{}, fmt.Errorf("decode submission event failed: %w", err)
	}
	if event.Recipient == "" {
		return model.SubmissionEvent{}, fmt.Errorf("decode submission event failed: recipient is empty")
	}
	return event, nil
}
