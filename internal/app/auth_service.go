package app

import (
	"context"
	"strings"

	"univoice/internal/directory"
	"univoice/internal/model"
	"univoice/internal/session"
)

type LoginInput struct {
	Role       string
	Identity   string
	Credential string
}

type AuthResult struct {
	Token   string               `json:"token,omitempty"`
	State   session.State        `json:"session"`
	Teacher *model.TeacherRecord `json:"teacher,omitempty"`
}

type AuthService struct {
	gate      *session.Gate
	directory *directory.Directory
}

func NewAuthService(gate *session.Gate, dir *directory.Directory) *AuthService {
	return &AuthService{gate: gate, directory: dir}
}

func (s *AuthService) Login(ctx context.Context, current session.State, input LoginInput) (*AuthResult, error) {
	role := session.Role(strings.ToLower(strings.TrimSpace(input.Role)))
	issued, err := s.gate.Login(ctx, current, role, input.Identity, input.Credential)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:   issued.Token,
		State:   issued.State,
		Teacher: s.teacherFor(issued.State),
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, current session.State, token string) *AuthResult {
	return &AuthResult{State: s.gate.Logout(ctx, current, token)}
}

// Current describes the state resolved for this request.
func (s *AuthService) Current(state session.State) *AuthResult {
	return &AuthResult{State: state, Teacher: s.teacherFor(state)}
}

func (s *AuthService) teacherFor(state session.State) *model.TeacherRecord {
	if !state.IsTeacher() {
		return nil
	}
	record, ok := s.directory.Lookup(state.Identity)
	if !ok {
		return nil
	}
	return &record
}
