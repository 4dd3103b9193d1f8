package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"univoice/internal/classify"
	"univoice/internal/directory"
	"univoice/internal/model"
	"univoice/internal/rewrite"
	"univoice/internal/session"
	"univoice/internal/store"
)

type MessageRewriter interface {
	Rewrite(ctx context.Context, original, recipient string) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event model.SubmissionEvent) error
}

type SubmissionOptions struct {
	AllowFreeTextRecipient bool
	RequireStudentLogin    bool
	MaxContentRunes        int
	RewriteTimeout         time.Duration
	StoreTimeout           time.Duration
}

// SubmissionService runs validate, rewrite, append, confirm. A nil rewriter
// or store means the feature is not configured.
type SubmissionService struct {
	directory *directory.Directory
	rewriter  MessageRewriter
	store     store.MessageStore
	publisher EventPublisher
	opts      SubmissionOptions
	log       *zap.Logger
	now       func() time.Time
}

type SubmitInput struct {
	// Recipient is a directory id or display name.
	Recipient string
	// RecipientName and RecipientEmail are the free-text fallback when
	// Recipient is empty.
	RecipientName  string
	RecipientEmail string
	Content        string
}

// SubmissionSettings tells the page which inputs the flow accepts.
type SubmissionSettings struct {
	AllowFreeTextRecipient bool `json:"allow_free_text_recipient"`
	RequireStudentLogin    bool `json:"require_student_login"`
	MaxContentRunes        int  `json:"max_content_runes,omitempty"`
}

type SubmitResult struct {
	Recipient      string         `json:"recipient"`
	RecipientEmail string         `json:"recipient_email,omitempty"`
	RewrittenText  string         `json:"rewritten_text"`
	Category       model.Category `json:"category,omitempty"`
	SubmittedAt    time.Time      `json:"submitted_at"`
}

func NewSubmissionService(
	dir *directory.Directory,
	rewriter MessageRewriter,
	messageStore store.MessageStore,
	publisher EventPublisher,
	opts SubmissionOptions,
	log *zap.Logger,
) *SubmissionService {
	if opts.RewriteTimeout <= 0 {
		opts.RewriteTimeout = 30 * time.Second
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = 15 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionService{
		directory: dir,
		rewriter:  rewriter,
		store:     messageStore,
		publisher: publisher,
		opts:      opts,
		log:       log,
		now:       time.Now,
	}
}

func (s *SubmissionService) Settings() SubmissionSettings {
	return SubmissionSettings{
		AllowFreeTextRecipient: s.opts.AllowFreeTextRecipient,
		RequireStudentLogin:    s.opts.RequireStudentLogin,
		MaxContentRunes:        s.opts.MaxContentRunes,
	}
}

func (s *SubmissionService) Submit(ctx context.Context, state session.State, input SubmitInput) (*SubmitResult, error) {
	if s.opts.RequireStudentLogin && state.Role != session.RoleStudent {
		return nil, ErrLoginRequired
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if s.opts.MaxContentRunes > 0 && utf8.RuneCountInString(content) > s.opts.MaxContentRunes {
		return nil, ErrContentTooLong
	}

	recipient, err := s.resolveRecipient(input)
	if err != nil {
		return nil, err
	}

	if s.rewriter == nil || s.store == nil {
		return nil, ErrFeatureUnavailable
	}

	rewriteCtx, cancel := context.WithTimeout(ctx, s.opts.RewriteTimeout)
	rewritten, err := s.rewriter.Rewrite(rewriteCtx, content, recipient.DisplayName)
	cancel()
	if err != nil {
		s.log.Warn("rewrite failed", zap.String("recipient", recipient.DisplayName), zap.Error(err))
		if !errors.Is(err, rewrite.ErrGeneration) {
			err = fmt.Errorf("%w: %w", rewrite.ErrGeneration, err)
		}
		return nil, err
	}

	msg := model.Message{
		SubmittedAt:   s.now(),
		Recipient:     recipient.DisplayName,
		OriginalText:  content,
		RewrittenText: rewritten,
		Category:      classify.Classify(content),
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	err = s.store.Append(storeCtx, msg)
	cancel()
	if err != nil {
		s.log.Warn("append message failed", zap.String("recipient", recipient.DisplayName), zap.Error(err))
		return nil, store.Wrap("append message", err)
	}

	s.log.Info("message submitted",
		zap.String("recipient", msg.Recipient),
		zap.String("category", string(msg.Category)),
	)
	s.notify(ctx, recipient, msg)

	return &SubmitResult{
		Recipient:      msg.Recipient,
		RecipientEmail: recipient.Email,
		RewrittenText:  msg.RewrittenText,
		Category:       msg.Category,
		SubmittedAt:    msg.SubmittedAt,
	}, nil
}

func (s *SubmissionService) resolveRecipient(input SubmitInput) (model.TeacherRecord, error) {
	key := strings.TrimSpace(input.Recipient)
	if key != "" {
		if record, ok := s.directory.Resolve(key); ok {
			return record, nil
		}
		return model.TeacherRecord{}, fmt.Errorf("%w: %s", ErrUnknownRecipient, key)
	}

	name := strings.TrimSpace(input.RecipientName)
	if !s.opts.AllowFreeTextRecipient || name == "" {
		return model.TeacherRecord{}, ErrUnknownRecipient
	}
	if record, ok := s.directory.LookupByDisplayName(name); ok {
		return record, nil
	}
	return model.TeacherRecord{DisplayName: name, Email: strings.TrimSpace(input.RecipientEmail)}, nil
}

// notify is best effort; the message is already stored.
func (s *SubmissionService) notify(ctx context.Context, recipient model.TeacherRecord, msg model.Message) {
	if s.publisher == nil {
		return
	}
	event := model.SubmissionEvent{
		RecipientID: recipient.ID,
		Recipient:   msg.Recipient,
		Category:    msg.Category,
		SubmittedAt: msg.SubmittedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("publish submission event failed", zap.Error(err))
	}
}
