package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"strikex/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]Session)}
}

func (s *memStore) Get(_ context.Context, token string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *memStore) Save(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *memStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func TestMiddleware_IssuesSessionForNewVisitor(t *testing.T) {
	store := newMemStore()
	m := NewManager(store, "sx_session", zerolog.Nop())

	var captured *Session
	h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = FromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, captured)
	assert.NotEmpty(t, captured.ID)
	assert.False(t, captured.LoggedIn())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sx_session", cookies[0].Name)
	assert.Equal(t, captured.ID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	// The new session is persisted immediately.
	stored, err := store.Get(context.Background(), captured.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestMiddleware_LoadsExistingSession(t *testing.T) {
	store := newMemStore()
	m := NewManager(store, "sx_session", zerolog.Nop())

	code := "SAVE10"
	require.NoError(t, store.Save(context.Background(), &Session{ID: "tok-1", CouponCode: &code}))

	var captured *Session
	h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sx_session", Value: "tok-1"})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.NotNil(t, captured)
	assert.Equal(t, "tok-1", captured.ID)
	require.NotNil(t, captured.CouponCode)
	assert.Equal(t, "SAVE10", *captured.CouponCode)

	// No replacement cookie when the session already exists.
	assert.Empty(t, w.Result().Cookies())
}

func TestMiddleware_ReplacesUnknownToken(t *testing.T) {
	m := NewManager(newMemStore(), "sx_session", zerolog.Nop())

	var captured *Session
	h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sx_session", Value: "expired-token"})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.NotNil(t, captured)
	assert.NotEqual(t, "expired-token", captured.ID)
	require.Len(t, w.Result().Cookies(), 1)
}

func TestSession_Owner(t *testing.T) {
	sess := &Session{ID: "tok-1"}

	owner := sess.Owner()
	assert.Nil(t, owner.UserID)
	assert.Equal(t, "tok-1", owner.SessionToken)

	sess.SetUser(&model.User{ID: 42, Email: "jo@example.com"})

	owner = sess.Owner()
	require.NotNil(t, owner.UserID)
	assert.Equal(t, int64(42), *owner.UserID)
	assert.Equal(t, "tok-1", owner.SessionToken)
}

func TestSession_SetUserCarriesRole(t *testing.T) {
	role := model.RoleAdmin
	sess := &Session{ID: "tok-1"}
	sess.SetUser(&model.User{ID: 7, Email: "staff@example.com", Auth: &role})

	assert.True(t, sess.LoggedIn())
	assert.Equal(t, model.RoleAdmin, sess.User.Auth)
}
