package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	tok, err := manager.Issue("alice")
	require.NoError(t, err)

	username, err := manager.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := NewManager("secret-a", time.Hour).Issue("alice")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	tok, err := manager.Issue("alice")
	require.NoError(t, err)

	_, err = manager.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	_, err := manager.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
