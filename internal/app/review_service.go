package app

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"univoice/internal/classify"
	"univoice/internal/directory"
	"univoice/internal/model"
	"univoice/internal/session"
	"univoice/internal/store"
)

// ReviewItem is what a teacher sees. It has no original text field.
type ReviewItem struct {
	SubmittedAt   time.Time      `json:"submitted_at"`
	RewrittenText string         `json:"rewritten_text"`
	Category      model.Category `json:"category,omitempty"`
}

type ReviewResult struct {
	Teacher model.TeacherRecord `json:"teacher"`
	Items   []ReviewItem        `json:"items"`
	Summary classify.Summary    `json:"summary"`
}

type ReviewService struct {
	directory    *directory.Directory
	store        store.MessageStore
	storeTimeout time.Duration
	log          *zap.Logger
}

func NewReviewService(dir *directory.Directory, messageStore store.MessageStore, storeTimeout time.Duration, log *zap.Logger) *ReviewService {
	if storeTimeout <= 0 {
		storeTimeout = 15 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ReviewService{
		directory:    dir,
		store:        messageStore,
		storeTimeout: storeTimeout,
		log:          log,
	}
}

// Review lists the messages addressed to the logged-in teacher, newest first.
func (s *ReviewService) Review(ctx context.Context, state session.State) (*ReviewResult, error) {
	if !state.IsTeacher() {
		return nil, ErrLoginRequired
	}
	teacher, ok := s.directory.Lookup(state.Identity)
	if !ok {
		return nil, ErrLoginRequired
	}
	if s.store == nil {
		return nil, ErrFeatureUnavailable
	}

	listCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	all, err := s.store.ListAll(listCtx)
	cancel()
	if err != nil {
		s.log.Warn("list messages failed", zap.String("teacher", teacher.ID), zap.Error(err))
		return nil, store.Wrap("list messages", err)
	}

	var mine []model.Message
	for _, m := range all {
		if m.Recipient == teacher.DisplayName {
			mine = append(mine, m)
		}
	}
	summary := classify.Summarize(mine)

	items := make([]ReviewItem, len(mine))
	for i, m := range mine {
		// reversed so equal timestamps keep later insertions first
		items[len(mine)-1-i] = ReviewItem{
			SubmittedAt:   m.SubmittedAt,
			RewrittenText: m.RewrittenText,
			Category:      m.Category,
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SubmittedAt.After(items[j].SubmittedAt)
	})

	return &ReviewResult{Teacher: teacher, Items: items, Summary: summary}, nil
}
