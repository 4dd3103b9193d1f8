package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"univoice/internal/model"
	"univoice/internal/store"
)

// messageRow is the SQL shape of a message. ID only fixes insertion order.
type messageRow struct {
	ID            uint      `gorm:"primaryKey"`
	SubmittedAt   time.Time `gorm:"not null;index"`
	Recipient     string    `gorm:"size:128;not null;index"`
	OriginalText  string    `gorm:"type:text;not null"`
	RewrittenText string    `gorm:"type:text;not null"`
	Category      string    `gorm:"size:32"`
}

func (messageRow) TableName() string {
	return "messages"
}

// MessageRepository is the SQL message store.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) AutoMigrate() error {
	if err := r.db.AutoMigrate(&messageRow{}); err != nil {
		return store.Wrap("migrate messages table", err)
	}
	return nil
}

func (r *MessageRepository) Append(ctx context.Context, msg model.Message) error {
	row := messageRow{
		SubmittedAt:   msg.SubmittedAt,
		Recipient:     msg.Recipient,
		OriginalText:  msg.OriginalText,
		RewrittenText: msg.RewrittenText,
		Category:      string(msg.Category),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return store.Wrap("create message", err)
	}
	return nil
}

func (r *MessageRepository) ListAll(ctx context.Context) ([]model.Message, error) {
	var rows []messageRow
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, store.Wrap("list messages", err)
	}

	messages := make([]model.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, model.Message{
			SubmittedAt:   row.SubmittedAt,
			Recipient:     row.Recipient,
			OriginalText:  row.OriginalText,
			RewrittenText: row.RewrittenText,
			Category:      model.Category(row.Category),
		})
	}
	return messages, nil
}
