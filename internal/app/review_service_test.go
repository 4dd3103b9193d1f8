package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"univoice/internal/config"
	"univoice/internal/directory"
	"univoice/internal/model"
	"univoice/internal/session"
	"univoice/internal/store"
)

func seed(t *testing.T, s store.MessageStore, msgs ...model.Message) {
	t.Helper()
	for _, m := range msgs {
		require.NoError(t, s.Append(context.Background(), m))
	}
}

func TestReviewScenario(t *testing.T) {
	messages := store.NewMemoryStore()
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	seed(t, messages,
		model.Message{SubmittedAt: base, Recipient: "田中先生", OriginalText: "授業が速い", RewrittenText: "a", Category: model.CategoryLecture},
		model.Message{SubmittedAt: base.Add(time.Hour), Recipient: "佐藤先生", OriginalText: "課題が多い", RewrittenText: "b", Category: model.CategoryAssignment},
		model.Message{SubmittedAt: base.Add(2 * time.Hour), Recipient: "田中先生", OriginalText: "成績が不公平", RewrittenText: "c", Category: model.CategoryGrading},
	)
	svc := NewReviewService(testDirectory(t), messages, 0, nil)

	result, err := svc.Review(context.Background(), session.State{Role: session.RoleTeacher, Identity: "tanaka"})
	require.NoError(t, err)

	assert.Equal(t, "田中先生", result.Teacher.DisplayName)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "c", result.Items[0].RewrittenText)
	assert.Equal(t, "a", result.Items[1].RewrittenText)
	assert.Equal(t, model.CategoryLecture, result.Summary.Mode)
}

func TestReviewNewestFirstTies(t *testing.T) {
	messages := store.NewMemoryStore()
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	seed(t, messages,
		model.Message{SubmittedAt: at, Recipient: "佐藤先生", RewrittenText: "first"},
		model.Message{SubmittedAt: at, Recipient: "佐藤先生", RewrittenText: "second"},
		model.Message{SubmittedAt: at.Add(-time.Minute), Recipient: "佐藤先生", RewrittenText: "older"},
	)
	svc := NewReviewService(testDirectory(t), messages, 0, nil)

	result, err := svc.Review(context.Background(), session.State{Role: session.RoleTeacher, Identity: "sato"})
	require.NoError(t, err)
	texts := make([]string, len(result.Items))
	for i, item := range result.Items {
		texts[i] = item.RewrittenText
	}
	assert.Equal(t, []string{"second", "first", "older"}, texts)
}

func TestReviewSharedDisplayNameNeverLeaks(t *testing.T) {
	dir, err := directory.New([]config.TeacherConfig{
		{ID: "tanaka-a", DisplayName: "田中先生"},
		{ID: "tanaka-b", DisplayName: "田中先生"},
	}, "shared")
	require.ErrorIs(t, err, directory.ErrDuplicateDisplayName)

	messages := store.NewMemoryStore()
	submissions := NewSubmissionService(dir, &fakeRewriter{out: "for A only"}, messages, nil, SubmissionOptions{}, nil)
	_, err = submissions.Submit(context.Background(), session.Anonymous(), SubmitInput{Recipient: "tanaka-a", Content: "授業が速い"})
	require.NoError(t, err)

	reviews := NewReviewService(dir, messages, 0, nil)
	result, err := reviews.Review(context.Background(), session.State{Role: session.RoleTeacher, Identity: "tanaka-a"})
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)

	_, err = reviews.Review(context.Background(), session.State{Role: session.RoleTeacher, Identity: "tanaka-b"})
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestReviewRequiresTeacher(t *testing.T) {
	svc := NewReviewService(testDirectory(t), store.NewMemoryStore(), 0, nil)
	for _, state := range []session.State{
		session.Anonymous(),
		{Role: session.RoleStudent},
		{Role: session.RoleTeacher},
		{Role: session.RoleTeacher, Identity: "ghost"},
	} {
		_, err := svc.Review(context.Background(), state)
		assert.ErrorIs(t, err, ErrLoginRequired)
	}
}

func TestReviewStoreFailure(t *testing.T) {
	svc := NewReviewService(testDirectory(t), &failingStore{listErr: errors.New("401 unauthorized")}, 0, nil)
	_, err := svc.Review(context.Background(), session.State{Role: session.RoleTeacher, Identity: "tanaka"})
	assert.ErrorIs(t, err, store.ErrStore)

	svc = NewReviewService(testDirectory(t), nil, 0, nil)
	_, err = svc.Review(context.Background(), session.State{Role: session.RoleTeacher, Identity: "tanaka"})
	assert.ErrorIs(t, err, ErrFeatureUnavailable)
}

func TestReviewEmpty(t *testing.T) {
	svc := NewReviewService(testDirectory(t), store.NewMemoryStore(), 0, nil)
	result, err := svc.Review(context.Background(), session.State{Role: session.RoleTeacher, Identity: "tanaka"})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, model.CategoryNone, result.Summary.Mode)
}
