package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTeachers map[string]string

func (s stubTeachers) VerifyTeacher(identity, credential string) bool {
	want, ok := s[identity]
	return ok && credential != "" && want == credential
}

func testCredentials() Credentials {
	return Credentials{
		Teachers:        stubTeachers{"tanaka": "tanaka-pass", "sato": "sato-pass"},
		StudentPassword: "student-pass",
	}
}

func TestTransitionLogin(t *testing.T) {
	v := testCredentials()

	t.Run("teacher success", func(t *testing.T) {
		next, err := Transition(Anonymous(), Event{Kind: EventLogin, Role: RoleTeacher, Identity: "tanaka", Credential: "tanaka-pass"}, v)
		require.NoError(t, err)
		assert.Equal(t, State{Role: RoleTeacher, Identity: "tanaka"}, next)
		assert.True(t, next.IsTeacher())
	})

	t.Run("teacher wrong password stays anonymous", func(t *testing.T) {
		next, err := Transition(Anonymous(), Event{Kind: EventLogin, Role: RoleTeacher, Identity: "tanaka", Credential: "sato-pass"}, v)
		assert.ErrorIs(t, err, ErrInvalidCredential)
		assert.Equal(t, Anonymous(), next)
	})

	t.Run("student success", func(t *testing.T) {
		next, err := Transition(Anonymous(), Event{Kind: EventLogin, Role: RoleStudent, Credential: "student-pass"}, v)
		require.NoError(t, err)
		assert.Equal(t, State{Role: RoleStudent}, next)
		assert.True(t, next.Authenticated())
		assert.False(t, next.IsTeacher())
	})

	t.Run("anonymous role cannot log in", func(t *testing.T) {
		next, err := Transition(Anonymous(), Event{Kind: EventLogin, Role: RoleAnonymous, Credential: "student-pass"}, v)
		assert.ErrorIs(t, err, ErrInvalidCredential)
		assert.Equal(t, Anonymous(), next)
	})

	t.Run("failed relogin keeps current state", func(t *testing.T) {
		current := State{Role: RoleStudent}
		next, err := Transition(current, Event{Kind: EventLogin, Role: RoleTeacher, Identity: "sato", Credential: "nope"}, v)
		assert.ErrorIs(t, err, ErrInvalidCredential)
		assert.Equal(t, current, next)
	})
}

func TestTransitionLogout(t *testing.T) {
	for _, current := range []State{Anonymous(), {Role: RoleStudent}, {Role: RoleTeacher, Identity: "tanaka"}} {
		next, err := Transition(current, Event{Kind: EventLogout}, testCredentials())
		require.NoError(t, err)
		assert.Equal(t, Anonymous(), next)
		assert.False(t, next.Authenticated())
	}
}

func TestTransitionUnknownEvent(t *testing.T) {
	_, err := Transition(Anonymous(), Event{}, testCredentials())
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestStudentVerifierWithoutPassword(t *testing.T) {
	c := Credentials{}
	assert.False(t, c.VerifyStudent(""))
	assert.False(t, c.VerifyTeacher("tanaka", "x"))
}
