package store

import (
	"context"
	"sync"

	"univoice/internal/model"
)

// MemoryStore keeps messages for the lifetime of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	messages []model.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(ctx context.Context, msg model.Message) error {
	if err := ctx.Err(); err != nil {
		return Wrap("append message", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]model.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, Wrap("list messages", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Message(nil), s.messages...), nil
}
