// Package session implements the login state machine and the token-backed
// gate that carries it between requests.
package session

import (
	"errors"
	"strings"
)

type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleStudent   Role = "student"
	RoleTeacher   Role = "teacher"
)

var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrUnknownEvent      = errors.New("unknown session event")
)

// State is the per-interaction login state. Identity is set for teachers only.
type State struct {
	Role     Role   `json:"role"`
	Identity string `json:"identity,omitempty"`
}

func Anonymous() State {
	return State{Role: RoleAnonymous}
}

func (s State) Authenticated() bool {
	return s.Role == RoleStudent || s.Role == RoleTeacher
}

func (s State) IsTeacher() bool {
	return s.Role == RoleTeacher && s.Identity != ""
}

type EventKind int

const (
	EventLogin EventKind = iota + 1
	EventLogout
)

type Event struct {
	Kind       EventKind
	Role       Role
	Identity   string
	Credential string
}

// Verifier checks credentials for a role.
type Verifier interface {
	VerifyStudent(credential string) bool
	VerifyTeacher(identity, credential string) bool
}

// Transition computes the next state. A failed login leaves the current state
// unchanged and returns ErrInvalidCredential. Logout always yields Anonymous.
func Transition(current State, ev Event, v Verifier) (State, error) {
	switch ev.Kind {
	case EventLogout:
		return Anonymous(), nil
	case EventLogin:
		identity := strings.TrimSpace(ev.Identity)
		switch ev.Role {
		case RoleStudent:
			if v.VerifyStudent(ev.Credential) {
				return State{Role: RoleStudent}, nil
			}
		case RoleTeacher:
			if identity != "" && v.VerifyTeacher(identity, ev.Credential) {
				return State{Role: RoleTeacher, Identity: identity}, nil
			}
		}
		return current, ErrInvalidCredential
	default:
		return current, ErrUnknownEvent
	}
}
