package worker

import (
	"context"

	"go.uber.org/zap"

	"univoice/internal/directory"
	"univoice/internal/model"
)

// LogNotifier records a notification line with the teacher's contact address.
type LogNotifier struct {
	directory *directory.Directory
	log       *zap.Logger
}

func NewLogNotifier(dir *directory.Directory, log *zap.Logger) *LogNotifier {
	return &LogNotifier{directory: dir, log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, event model.SubmissionEvent) error {
	fields := []zap.Field{
		zap.String("recipient", event.Recipient),
		zap.String("category", string(event.Category)),
		zap.Time("submitted_at", event.SubmittedAt),
	}
	if record, ok := n.directory.Lookup(event.RecipientID); ok && record.Email != "" {
		fields = append(fields, zap.String("email", record.Email))
	}
	n.log.Info("new message waiting for review", fields...)
	return nil
}
