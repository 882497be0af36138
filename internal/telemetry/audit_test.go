package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/BramFam96/messagely-v1/internal/mocks"
)

func TestEmitBuildsEnvelope(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewAuditEmitter(publisher, "audit.messagely", "messagely", "test")

	publisher.On("Publish", mock.Anything, "audit.messagely", mock.MatchedBy(func(event any) bool {
		envelope, ok := event.(AuditEnvelope)
		if !ok {
			return false
		}
		return envelope.EventType == "audit_log" &&
			envelope.Service == "messagely" &&
			envelope.Username == "alice" &&
			envelope.Payload.Level == "INFO"
	})).Return(nil).Once()

	emitter.Emit(context.Background(), "INFO", "user logged in", "req-1", "alice")
	publisher.AssertExpectations(t)
}

func TestEmitNilEmitterIsSafe(t *testing.T) {
	var emitter *AuditEmitter
	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), "INFO", "noop", "req-1", "alice")
	})
}
