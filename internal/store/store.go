// Package store holds the append-only message log and its backends.
package store

import (
	"context"
	"errors"
	"fmt"

	"univoice/internal/model"
)

var ErrStore = errors.New("message store failure")

// MessageStore is append-only. ListAll returns messages in append order.
type MessageStore interface {
	Append(ctx context.Context, msg model.Message) error
	ListAll(ctx context.Context) ([]model.Message, error)
}

// Wrap marks err as a store failure for op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStore) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}
