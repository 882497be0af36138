package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BramFam96/messagely-v1/internal/models"
	"github.com/BramFam96/messagely-v1/internal/repositories"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	args := m.Called(ctx, user)
	var created models.User
	if val := args.Get(0); val != nil {
		created = val.(models.User)
	}
	return created, args.Error(1)
}

func (m *UserRepositoryMock) GetUser(ctx context.Context, username string) (models.User, error) {
	args := m.Called(ctx, username)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) ListUsers(ctx context.Context) ([]models.Profile, error) {
	args := m.Called(ctx)
	var profiles []models.Profile
	if val := args.Get(0); val != nil {
		profiles = val.([]models.Profile)
	}
	return profiles, args.Error(1)
}

func (m *UserRepositoryMock) PasswordHash(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

func (m *UserRepositoryMock) TouchLogin(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Create(ctx context.Context, fromUser, toUser, body string) (models.Message, error) {
	args := m.Called(ctx, fromUser, toUser, body)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) Get(ctx context.Context, id int) (models.MessageDetail, error) {
	args := m.Called(ctx, id)
	var detail models.MessageDetail
	if val := args.Get(0); val != nil {
		detail = val.(models.MessageDetail)
	}
	return detail, args.Error(1)
}

func (m *MessageRepositoryMock) ListSentBy(ctx context.Context, username string) ([]models.SentMessage, error) {
	args := m.Called(ctx, username)
	var msgs []models.SentMessage
	if val := args.Get(0); val != nil {
		msgs = val.([]models.SentMessage)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) ListReceivedBy(ctx context.Context, username string) ([]models.ReceivedMessage, error) {
	args := m.Called(ctx, username)
	var msgs []models.ReceivedMessage
	if val := args.Get(0); val != nil {
		msgs = val.([]models.ReceivedMessage)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) MarkRead(ctx context.Context, id int) (models.Message, error) {
	args := m.Called(ctx, id)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

var _ repositories.UserRepository = (*UserRepositoryMock)(nil)
var _ repositories.MessageRepository = (*MessageRepositoryMock)(nil)
