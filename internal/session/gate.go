package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"go.uber.org/zap"

	"univoice/internal/pkg/jwtutil"
)

// TeacherVerifier is satisfied by the directory.
type TeacherVerifier interface {
	VerifyTeacher(identity, credential string) bool
}

// Credentials verifies students against one shared password and teachers
// against the directory.
type Credentials struct {
	Teachers        TeacherVerifier
	StudentPassword string
}

func (c Credentials) VerifyStudent(credential string) bool {
	if c.StudentPassword == "" || credential == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.StudentPassword), []byte(credential)) == 1
}

func (c Credentials) VerifyTeacher(identity, credential string) bool {
	if c.Teachers == nil {
		return false
	}
	return c.Teachers.VerifyTeacher(identity, credential)
}

type Issued struct {
	State     State
	Token     string
	ExpiresAt time.Time
}

// Gate runs Transition and carries the resulting state in signed tokens.
type Gate struct {
	verifier    Verifier
	secret      string
	ttl         time.Duration
	revocations Revocations
	log         *zap.Logger
}

func NewGate(verifier Verifier, secret string, ttl time.Duration, revocations Revocations, log *zap.Logger) *Gate {
	if revocations == nil {
		revocations = NewMemoryRevocations()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{
		verifier:    verifier,
		secret:      secret,
		ttl:         ttl,
		revocations: revocations,
		log:         log,
	}
}

func (g *Gate) TTL() time.Duration {
	return g.ttl
}

func (g *Gate) Login(ctx context.Context, current State, role Role, identity, credential string) (Issued, error) {
	next, err := Transition(current, Event{
		Kind:       EventLogin,
		Role:       role,
		Identity:   identity,
		Credential: credential,
	}, g.verifier)
	if err != nil {
		g.log.Info("login rejected", zap.String("role", string(role)), zap.String("identity", identity))
		return Issued{State: next}, err
	}

	token, _, err := jwtutil.GenerateToken(g.secret, g.ttl, string(next.Role), next.Identity)
	if err != nil {
		return Issued{State: current}, err
	}
	g.log.Info("login accepted", zap.String("role", string(next.Role)), zap.String("identity", next.Identity))
	return Issued{State: next, Token: token, ExpiresAt: time.Now().Add(g.ttl)}, nil
}

// Logout always returns Anonymous. A valid token is revoked for the rest of
// its lifetime; revocation failures are logged, not returned.
func (g *Gate) Logout(ctx context.Context, current State, token string) State {
	next, _ := Transition(current, Event{Kind: EventLogout}, g.verifier)
	if token == "" {
		return next
	}
	claims, err := jwtutil.ParseToken(g.secret, token)
	if err != nil {
		return next
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if err := g.revocations.Revoke(ctx, claims.ID, remaining); err != nil {
		g.log.Warn("revoke session failed", zap.Error(err))
	}
	return next
}

// Resolve maps a token to its state. Missing, invalid, expired or revoked
// tokens resolve to Anonymous.
func (g *Gate) Resolve(ctx context.Context, token string) State {
	if token == "" {
		return Anonymous()
	}
	claims, err := jwtutil.ParseToken(g.secret, token)
	if err != nil {
		if !errors.Is(err, jwtutil.ErrInvalidToken) {
			g.log.Warn("parse session token failed", zap.Error(err))
		}
		return Anonymous()
	}
	revoked, err := g.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		g.log.Warn("check revoked session failed", zap.Error(err))
		return Anonymous()
	}
	if revoked {
		return Anonymous()
	}

	state := State{Role: Role(claims.Role), Identity: claims.Identity}
	switch state.Role {
	case RoleStudent:
		return State{Role: RoleStudent}
	case RoleTeacher:
		if state.Identity != "" {
			return state
		}
	}
	return Anonymous()
}
