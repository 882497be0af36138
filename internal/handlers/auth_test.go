package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BramFam96/messagely-v1/internal/accounts"
	"github.com/BramFam96/messagely-v1/internal/apperrors"
	"github.com/BramFam96/messagely-v1/internal/mocks"
	"github.com/BramFam96/messagely-v1/internal/models"
	"github.com/BramFam96/messagely-v1/internal/token"
)

func setupAuthRouter(users *mocks.UserRepositoryMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := accounts.NewService(users, bcrypt.MinCost)
	tokens := token.NewManager("test-secret", time.Hour)
	handler := NewAuthHandler(svc, tokens, nil)

	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	return r
}

func TestRegisterSuccess(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(users)

	users.On("CreateUser", mock.Anything, mock.Anything).
		Return(models.User{Username: "alice", FirstName: "Alice"}, nil).Once()
	users.On("TouchLogin", mock.Anything, "alice").Return(nil).Once()

	body := bytes.NewBufferString(`{"username":"alice","password":"pw1","first_name":"Alice","last_name":"A","phone":"555-0100"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.Token)
	assert.NotContains(t, rec.Body.String(), "password_hash")
	users.AssertExpectations(t)
}

func TestRegisterDuplicate(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(users)

	users.On("CreateUser", mock.Anything, mock.Anything).
		Return(models.User{}, &apperrors.ConflictError{Kind: "user", Key: "alice"}).Once()

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(`{"username":"alice","password":"pw2"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	users.AssertExpectations(t)
}

func TestLoginSuccess(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(users)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("PasswordHash", mock.Anything, "alice").Return(string(hash), nil).Once()
	users.On("TouchLogin", mock.Anything, "alice").Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"username":"alice","password":"pw1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp["token"])
	users.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(users)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("PasswordHash", mock.Anything, "alice").Return(string(hash), nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"username":"alice","password":"wrong"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	users.AssertNotCalled(t, "TouchLogin", mock.Anything, mock.Anything)
}

func TestLoginUnknownUserSameAsWrongPassword(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(users)

	users.On("PasswordHash", mock.Anything, "ghost").
		Return("", &apperrors.NotFoundError{Kind: "user", Key: "ghost"}).Once()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"username":"ghost","password":"pw"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	users.AssertExpectations(t)
}
