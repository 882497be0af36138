// Package messages implements the message ledger and its access control.
// Every operation takes the authenticated caller and decides allow/deny
// from the ownership relations before touching storage; the sender of a
// new message is always the caller, never a client-supplied field.
package messages

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BramFam96/messagely-v1/internal/apperrors"
	"github.com/BramFam96/messagely-v1/internal/models"
	"github.com/BramFam96/messagely-v1/internal/repositories"
)

// Service owns message creation, retrieval and the read-state transition.
type Service struct {
	messages repositories.MessageRepository
}

// NewService constructs a Service.
func NewService(messages repositories.MessageRepository) *Service {
	return &Service{messages: messages}
}

// Send creates a message from the caller to the named recipient.
func (s *Service) Send(ctx context.Context, caller, toUsername, body string) (models.Message, error) {
	ctx, span := otel.Tracer("messagely/messages").Start(ctx, "messages.send")
	defer span.End()
	span.SetAttributes(attribute.String("message.to", toUsername))

	if strings.TrimSpace(body) == "" {
		return models.Message{}, &apperrors.ValidationError{Field: "body", Reason: "must not be empty"}
	}
	return s.messages.Create(ctx, caller, toUsername, body)
}

// Get returns the message with both profiles expanded. Only the sender or
// the recipient may read it.
func (s *Service) Get(ctx context.Context, id int, caller string) (models.MessageDetail, error) {
	detail, err := s.messages.Get(ctx, id)
	if err != nil {
		return models.MessageDetail{}, err
	}
	if caller != detail.FromUser.Username && caller != detail.ToUser.Username {
		return models.MessageDetail{}, &apperrors.ForbiddenError{Caller: caller, Action: "read this message"}
	}
	return detail, nil
}

// ListSentBy returns the user's outgoing messages. Users may only list
// their own messages.
func (s *Service) ListSentBy(ctx context.Context, username, caller string) ([]models.SentMessage, error) {
	if caller != username {
		return nil, &apperrors.ForbiddenError{Caller: caller, Action: "list messages sent by " + username}
	}
	return s.messages.ListSentBy(ctx, username)
}

// ListReceivedBy returns the user's incoming messages. Users may only
// list their own messages.
func (s *Service) ListReceivedBy(ctx context.Context, username, caller string) ([]models.ReceivedMessage, error) {
	if caller != username {
		return nil, &apperrors.ForbiddenError{Caller: caller, Action: "list messages received by " + username}
	}
	return s.messages.ListReceivedBy(ctx, username)
}

// MarkRead transitions the message to read. Only the recipient may do so,
// and the transition happens at most once: marking an already-read message
// returns it with its original read timestamp.
func (s *Service) MarkRead(ctx context.Context, id int, caller string) (models.Message, error) {
	ctx, span := otel.Tracer("messagely/messages").Start(ctx, "messages.mark_read")
	defer span.End()

	detail, err := s.messages.Get(ctx, id)
	if err != nil {
		return models.Message{}, err
	}
	if caller != detail.ToUser.Username {
		return models.Message{}, &apperrors.ForbiddenError{Caller: caller, Action: "mark this message read"}
	}
	return s.messages.MarkRead(ctx, id)
}
