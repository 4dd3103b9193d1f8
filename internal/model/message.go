package model

import "time"

type Category string

const (
	CategoryNone       Category = ""
	CategoryLecture    Category = "lecture"
	CategoryAssignment Category = "assignment"
	CategoryGrading    Category = "grading"
	CategoryFacility   Category = "facility"
	CategoryOther      Category = "other"
)

// Message is one submitted concern. OriginalText stays with the store and the
// sender; review projections drop it.
type Message struct {
	SubmittedAt   time.Time `json:"submitted_at"`
	Recipient     string    `json:"recipient"`
	OriginalText  string    `json:"-"`
	RewrittenText string    `json:"rewritten_text"`
	Category      Category  `json:"category,omitempty"`
}

// SubmissionEvent is published after a message is stored. It carries no text.
type SubmissionEvent struct {
	RecipientID string    `json:"recipient_id"`
	Recipient   string    `json:"recipient"`
	Category    Category  `json:"category,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}
