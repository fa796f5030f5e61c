package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churnmate/internal/errors"
)

func TestCreateAndGetSession(t *testing.T) {
	sm := NewSessionManager("")

	created := sm.CreateSession()
	assert.Equal(t, 1, sm.Count())

	got, err := sm.GetSession(created.ID.String())
	require.NoError(t, err)
	assert.Same(t, created, got)
}

func TestGetSessionUnknownID(t *testing.T) {
	sm := NewSessionManager("")
	sm.CreateSession()

	_, err := sm.GetSession("0191b9b2-0000-7000-8000-000000000000")
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestGetSessionMalformedID(t *testing.T) {
	sm := NewSessionManager("")

	_, err := sm.GetSession("not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestGetOrCreateSession(t *testing.T) {
	sm := NewSessionManager("")

	first := sm.GetOrCreateSession("")
	assert.Equal(t, 1, sm.Count())

	same := sm.GetOrCreateSession(first.ID.String())
	assert.Same(t, first, same)
	assert.Equal(t, 1, sm.Count())

	fresh := sm.GetOrCreateSession("0191b9b2-0000-7000-8000-000000000000")
	assert.NotSame(t, first, fresh)
	assert.Equal(t, 2, sm.Count())
}

func TestSessionsAreIsolated(t *testing.T) {
	sm := NewSessionManager("")

	a := sm.CreateSession()
	b := sm.CreateSession()
	a.AppendUser("only in a")

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 1, b.Len())
}
