package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BramFam96/messagely-v1/internal/accounts"
	"github.com/BramFam96/messagely-v1/internal/apperrors"
	"github.com/BramFam96/messagely-v1/internal/mocks"
	"github.com/BramFam96/messagely-v1/internal/models"
)

func setupUserRouter(users *mocks.UserRepositoryMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewUserHandler(accounts.NewService(users, bcrypt.MinCost))

	r := gin.New()
	r.GET("/users", handler.List)
	r.GET("/users/:username", handler.Get)
	return r
}

func TestListUsersSuccess(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupUserRouter(users)

	users.On("ListUsers", mock.Anything).Return([]models.Profile{
		{Username: "alice", FirstName: "Alice"},
		{Username: "bob", FirstName: "Bob"},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")
	users.AssertExpectations(t)
}

func TestListUsersEmptyDirectory(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupUserRouter(users)

	users.On("ListUsers", mock.Anything).Return([]models.Profile{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"users":[]}`, rec.Body.String())
}

func TestListUsersStorageUnavailable(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupUserRouter(users)

	users.On("ListUsers", mock.Anything).
		Return(nil, &apperrors.UnavailableError{Op: "list users", Err: errors.New("connection refused")}).Once()

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	users.AssertExpectations(t)
}

func TestGetUserNotFound(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupUserRouter(users)

	users.On("GetUser", mock.Anything, "ghost").
		Return(models.User{}, &apperrors.NotFoundError{Kind: "user", Key: "ghost"}).Once()

	req := httptest.NewRequest(http.MethodGet, "/users/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	users.AssertExpectations(t)
}
