package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"strikex/internal/model"
	"strikex/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	sess := &session.Session{ID: "tok-1"}

	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, mock.MatchedBy(func(req *model.LoginRequest) bool {
		return req.Email == "jo@example.com"
	}), "tok-1").Return(&model.User{ID: 42, Email: "jo@example.com"}, nil)

	manager := newTestManager()
	h := NewAuthHandler(svc, manager, zerolog.Nop())

	body := `{"email":"jo@example.com","password":"correct-horse","redirect_uri":"/checkout/7"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := doRequest(h.Login, withSession(req, sess))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect_uri":"/checkout/7"`)
	assert.True(t, sess.LoggedIn())
	assert.Equal(t, int64(42), sess.User.ID)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	sess := &session.Session{ID: "tok-1"}

	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, mock.Anything, "tok-1").Return(nil, model.ErrBadCredentials)

	h := NewAuthHandler(svc, newTestManager(), zerolog.Nop())

	body := `{"email":"jo@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := doRequest(h.Login, withSession(req, sess))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, sess.LoggedIn())
}

func TestAuthHandler_Register(t *testing.T) {
	sess := &session.Session{ID: "tok-1"}

	svc := new(MockAuthService)
	svc.On("Register", mock.Anything, mock.Anything, mock.Anything).
		Return(&model.User{ID: 55, Email: "new@example.com"}, nil)

	h := NewAuthHandler(svc, newTestManager(), zerolog.Nop())

	body := `{"email":"new@example.com","password":"correct-horse","confirmPassword":"correct-horse","firstName":"Sam","lastName":"Day"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	w := doRequest(h.Register, withSession(req, sess))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, sess.LoggedIn())
	// The stored hash must never appear in the response.
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_Status_Anonymous(t *testing.T) {
	sess := &session.Session{ID: "tok-1"}
	h := NewAuthHandler(new(MockAuthService), newTestManager(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	w := doRequest(h.Status, withSession(req, sess))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"loggedIn":false`)
	assert.NotContains(t, w.Body.String(), `"user"`)
}

func TestAuthHandler_Status_LoggedIn(t *testing.T) {
	sess := &session.Session{ID: "tok-1"}
	sess.SetUser(&model.User{ID: 42, Email: "jo@example.com"})

	h := NewAuthHandler(new(MockAuthService), newTestManager(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/auth/register", nil)
	w := doRequest(h.Status, withSession(req, sess))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"loggedIn":true`)
	assert.Contains(t, w.Body.String(), `"jo@example.com"`)
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	sess := &session.Session{ID: "tok-1"}

	svc := new(MockAuthService)
	svc.On("Register", mock.Anything, mock.Anything, mock.Anything).Return(nil, model.ErrEmailTaken)

	h := NewAuthHandler(svc, newTestManager(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"jo@example.com"}`))
	w := doRequest(h.Register, withSession(req, sess))

	assert.Equal(t, http.StatusConflict, w.Code)
}
