package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"univoice/internal/model"
)

func TestMemoryStoreOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, model.Message{Recipient: "田中先生", RewrittenText: "1"}))
	require.NoError(t, s.Append(ctx, model.Message{Recipient: "佐藤先生", RewrittenText: "2"}))

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "1", all[0].RewrittenText)
	assert.Equal(t, "2", all[1].RewrittenText)

	all[0].RewrittenText = "mutated"
	again, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", again[0].RewrittenText)
}

func TestMemoryStoreConcurrentAppend(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Append(ctx, model.Message{SubmittedAt: time.Now()})
		}()
	}
	wg.Wait()

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}

func TestMemoryStoreCancelled(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Append(ctx, model.Message{})
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, context.Canceled)

	all, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
