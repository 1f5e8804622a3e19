package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Manager resolves inbound requests to a session, generating a token and
// setting the cookie when the visitor has none yet.
type Manager struct {
	store      Store
	cookieName string
	logger     zerolog.Logger
}

// NewManager creates a session manager.
func NewManager(store Store, cookieName string, logger zerolog.Logger) *Manager {
	return &Manager{
		store:      store,
		cookieName: cookieName,
		logger:     logger.With().Str("component", "session").Logger(),
	}
}

// Middleware ensures every request carries a session: an existing one is
// loaded from the store, otherwise a new anonymous session is created and
// its token set on the response. The session is attached to the request
// context.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := m.resolve(w, r)
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), sess)))
		})
	}
}

func (m *Manager) resolve(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		sess, err := m.store.Get(r.Context(), cookie.Value)
		if err == nil && sess != nil {
			return sess
		}
		if err != nil {
			m.logger.Warn().Err(err).Msg("session lookup failed, issuing new session")
		}
	}

	sess := &Session{ID: uuid.NewString()}
	if err := m.store.Save(r.Context(), sess); err != nil {
		m.logger.Error().Err(err).Msg("failed to persist new session")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	m.logger.Debug().Str("session_id", sess.ID).Msg("new session issued")

	return sess
}

// Save persists session mutations (login, coupon changes).
func (m *Manager) Save(ctx context.Context, sess *Session) error {
	return m.store.Save(ctx, sess)
}
