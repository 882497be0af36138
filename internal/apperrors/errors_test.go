package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchersSeeThroughWrapping(t *testing.T) {
	base := &NotFoundError{Kind: "message", Key: "42"}
	wrapped := fmt.Errorf("load message: %w", base)

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsConflict(wrapped))
	assert.False(t, IsForbidden(wrapped))
}

func TestUnavailableUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := &UnavailableError{Op: "list users", Err: cause}

	assert.True(t, IsUnavailable(err))
	assert.ErrorIs(t, err, cause)
}

func TestMessagesCarryContext(t *testing.T) {
	assert.Contains(t, (&ConflictError{Kind: "user", Key: "alice"}).Error(), "alice")
	assert.Contains(t, (&ForbiddenError{Caller: "carol", Action: "read this message"}).Error(), "carol")
	assert.Contains(t, (&ValidationError{Field: "body", Reason: "must not be empty"}).Error(), "body")
}
