package worker

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"univoice/internal/model"
	"univoice/internal/platform/rabbitmq"
)

// Notifier tells a teacher that a new message is waiting.
type Notifier interface {
	Notify(ctx context.Context, event model.SubmissionEvent) error
}

// NotificationWorker consumes submission events and hands them to a Notifier.
type NotificationWorker struct {
	conn      *amqp.Connection
	notifier  Notifier
	queueName string
	log       *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewNotificationWorker(conn *amqp.Connection, notifier Notifier, queueName string, log *zap.Logger) *NotificationWorker {
	return &NotificationWorker{
		conn:      conn,
		notifier:  notifier,
		queueName: queueName,
		log:       log,
	}
}

func (w *NotificationWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if _, err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.handle(workerCtx, d.Body); err != nil {
					w.log.Warn("notification dropped", zap.Error(err))
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *NotificationWorker) handle(ctx context.Context, body []byte) error {
	event, err := rabbitmq.DecodeEvent(body)
	if err != nil {
		return err
	}
	return w.notifier.Notify(ctx, event)
}

func (w *NotificationWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
