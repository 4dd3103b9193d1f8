package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"univoice/internal/config"
	"univoice/internal/directory"
	"univoice/internal/model"
	"univoice/internal/store"
)

type fakeRewriter struct {
	out   string
	err   error
	calls int
}

func (f *fakeRewriter) Rewrite(ctx context.Context, original, recipient string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

type failingStore struct {
	store.MemoryStore
	appendErr error
	listErr   error
}

func (s *failingStore) Append(ctx context.Context, msg model.Message) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	return s.MemoryStore.Append(ctx, msg)
}

func (s *failingStore) ListAll(ctx context.Context) ([]model.Message, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.MemoryStore.ListAll(ctx)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.SubmissionEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event model.SubmissionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

var errUpstream = errors.New("upstream unavailable")

func testDirectory(t *testing.T) *directory.Directory {
	t.Helper()
	d, err := directory.New([]config.TeacherConfig{
		{ID: "tanaka", DisplayName: "田中先生", Email: "tanaka@university.ac.jp"},
		{ID: "sato", DisplayName: "佐藤先生", Email: "sato@university.ac.jp"},
	}, "shared")
	require.NoError(t, err)
	return d
}

func listAll(t *testing.T, s store.MessageStore) []model.Message {
	t.Helper()
	all, err := s.ListAll(context.Background())
	require.NoError(t, err)
	return all
}
