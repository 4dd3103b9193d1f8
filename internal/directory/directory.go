// Package directory holds the static teacher table loaded at startup.
package directory

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"univoice/internal/config"
	"univoice/internal/model"
)

var (
	ErrDuplicateTeacher     = errors.New("duplicate teacher id")
	ErrDuplicateDisplayName = errors.New("duplicate teacher display name")
)

// Directory is immutable after New.
type Directory struct {
	records        []model.TeacherRecord
	byID           map[string]int
	byDisplayName  map[string]int
	sharedPassword string
}

// New builds the directory from config rows, hashing plain passwords.
// Rows without id or display name are skipped silently. Rows repeating an id
// or a display name, or whose password cannot be hashed, are skipped and
// reported in err; the returned directory is usable either way.
func New(rows []config.TeacherConfig, sharedPassword string) (*Directory, error) {
	d := &Directory{
		records:        make([]model.TeacherRecord, 0, len(rows)),
		byID:           make(map[string]int, len(rows)),
		byDisplayName:  make(map[string]int, len(rows)),
		sharedPassword: sharedPassword,
	}
	var skipped []error
	for _, row := range rows {
		id := strings.TrimSpace(row.ID)
		name := strings.TrimSpace(row.DisplayName)
		if id == "" || name == "" {
			continue
		}
		// Messages are addressed by display name, so it must be unique too.
		if _, exists := d.byID[id]; exists {
			skipped = append(skipped, fmt.Errorf("%w: %s", ErrDuplicateTeacher, id))
			continue
		}
		if _, exists := d.byDisplayName[name]; exists {
			skipped = append(skipped, fmt.Errorf("%w: %s (%s)", ErrDuplicateDisplayName, name, id))
			continue
		}

		hash := row.PasswordHash
		if hash == "" && row.Password != "" {
			generated, err := bcrypt.GenerateFromPassword([]byte(row.Password), bcrypt.DefaultCost)
			if err != nil {
				skipped = append(skipped, fmt.Errorf("hash password for teacher %s failed: %w", id, err))
				continue
			}
			hash = string(generated)
		}

		d.byID[id] = len(d.records)
		d.byDisplayName[name] = len(d.records)
		d.records = append(d.records, model.TeacherRecord{
			ID:             id,
			DisplayName:    name,
			Email:          strings.TrimSpace(row.Email),
			CredentialHash: hash,
		})
	}
	return d, errors.Join(skipped...)
}

func (d *Directory) Lookup(id string) (model.TeacherRecord, bool) {
	idx, ok := d.byID[strings.TrimSpace(id)]
	if !ok {
		return model.TeacherRecord{}, false
	}
	return d.records[idx], true
}

func (d *Directory) LookupByDisplayName(name string) (model.TeacherRecord, bool) {
	idx, ok := d.byDisplayName[strings.TrimSpace(name)]
	if !ok {
		return model.TeacherRecord{}, false
	}
	return d.records[idx], true
}

// Resolve accepts either an identifier or a display name.
func (d *Directory) Resolve(key string) (model.TeacherRecord, bool) {
	if record, ok := d.Lookup(key); ok {
		return record, true
	}
	return d.LookupByDisplayName(key)
}

// All returns the records in configuration order.
func (d *Directory) All() []model.TeacherRecord {
	return append([]model.TeacherRecord(nil), d.records...)
}

// VerifyTeacher checks a teacher credential. A record with its own hash only
// accepts that password; otherwise the shared teacher password applies.
func (d *Directory) VerifyTeacher(id, credential string) bool {
	record, ok := d.Lookup(id)
	if !ok || credential == "" {
		return false
	}
	if record.CredentialHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(record.CredentialHash), []byte(credential)) == nil
	}
	if d.sharedPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(d.sharedPassword), []byte(credential)) == 1
}
