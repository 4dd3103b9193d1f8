package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"univoice/internal/model"
)

const (
	ColumnTimestamp     = "timestamp"
	ColumnRecipient     = "recipient"
	ColumnOriginalText  = "original_text"
	ColumnRewrittenText = "rewritten_text"
	ColumnCategory      = "category"

	sheetTimeLayout = "2006-01-02 15:04:05"
)

// DefaultHeader is written to an empty sheet.
var DefaultHeader = []string{ColumnTimestamp, ColumnRecipient, ColumnOriginalText, ColumnRewrittenText, ColumnCategory}

var requiredColumns = []string{ColumnTimestamp, ColumnRecipient, ColumnOriginalText, ColumnRewrittenText}

// Tabular is a remote sheet: one header row followed by data rows.
type Tabular interface {
	AppendRow(ctx context.Context, values []string) error
	ReadAllRows(ctx context.Context) ([][]string, error)
}

// SheetStore maps messages to rows of a Tabular. Column positions follow the
// sheet's own header once Init has read it.
type SheetStore struct {
	table    Tabular
	location *time.Location

	mu     sync.RWMutex
	header []string
}

func NewSheetStore(table Tabular, location *time.Location) *SheetStore {
	if location == nil {
		location = time.Local
	}
	return &SheetStore{
		table:    table,
		location: location,
		header:   append([]string(nil), DefaultHeader...),
	}
}

// Init writes the header to an empty sheet, or validates an existing one.
func (s *SheetStore) Init(ctx context.Context) error {
	rows, err := s.table.ReadAllRows(ctx)
	if err != nil {
		return Wrap("read sheet header", err)
	}
	if len(rows) == 0 || isBlankRow(rows[0]) {
		if err := s.table.AppendRow(ctx, DefaultHeader); err != nil {
			return Wrap("write sheet header", err)
		}
		return nil
	}

	header := normalizeHeader(rows[0])
	if err := checkHeader(header); err != nil {
		return Wrap("validate sheet header", err)
	}
	s.mu.Lock()
	s.header = header
	s.mu.Unlock()
	return nil
}

func (s *SheetStore) Append(ctx context.Context, msg model.Message) error {
	s.mu.RLock()
	header := s.header
	s.mu.RUnlock()

	row := make([]string, len(header))
	for i, col := range header {
		switch col {
		case ColumnTimestamp:
			row[i] = msg.SubmittedAt.In(s.location).Format(sheetTimeLayout)
		case ColumnRecipient:
			row[i] = msg.Recipient
		case ColumnOriginalText:
			row[i] = msg.OriginalText
		case ColumnRewrittenText:
			row[i] = msg.RewrittenText
		case ColumnCategory:
			row[i] = string(msg.Category)
		}
	}
	if err := s.table.AppendRow(ctx, row); err != nil {
		return Wrap("append sheet row", err)
	}
	return nil
}

// ListAll reads every row and parses the first as column names.
func (s *SheetStore) ListAll(ctx context.Context) ([]model.Message, error) {
	rows, err := s.table.ReadAllRows(ctx)
	if err != nil {
		return nil, Wrap("read sheet rows", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := normalizeHeader(rows[0])
	if err := checkHeader(header); err != nil {
		return nil, Wrap("validate sheet header", err)
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}
	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	messages := make([]model.Message, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		messages = append(messages, model.Message{
			SubmittedAt:   s.parseTime(cell(row, ColumnTimestamp)),
			Recipient:     strings.TrimSpace(cell(row, ColumnRecipient)),
			OriginalText:  cell(row, ColumnOriginalText),
			RewrittenText: cell(row, ColumnRewrittenText),
			Category:      model.Category(strings.TrimSpace(cell(row, ColumnCategory))),
		})
	}
	return messages, nil
}

// parseTime accepts the layout this store writes and RFC 3339. Unparseable
// cells become the zero time rather than failing the whole read.
func (s *SheetStore) parseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.ParseInLocation(sheetTimeLayout, raw, s.location); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Time{}
}

func normalizeHeader(row []string) []string {
	header := make([]string, len(row))
	for i, col := range row {
		header[i] = strings.ToLower(strings.TrimSpace(col))
	}
	return header
}

func checkHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}
	var missing []string
	for _, col := range requiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("sheet header is missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
