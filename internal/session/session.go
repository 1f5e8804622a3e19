package session

import (
	"context"

	"strikex/internal/model"
)

// Session is the per-visitor state persisted in the session store and keyed
// by the cookie-carried token. A session exists for every visitor; User is
// only set after login or guest-checkout promotion.
type Session struct {
	ID            string   `json:"sessionID"`
	User          *UserRef `json:"user,omitempty"`
	CouponCode    *string  `json:"couponCode,omitempty"`
	CouponMessage *string  `json:"couponMessage,omitempty"`
}

// UserRef is the slice of account state carried in the session. It is a
// reference, not a copy: anything beyond identity is re-fetched from storage.
type UserRef struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Company   *string `json:"company,omitempty"`
	Auth      string  `json:"auth,omitempty"`
}

// LoggedIn reports whether the session carries an authenticated user.
func (s *Session) LoggedIn() bool {
	return s != nil && s.User != nil && s.User.ID != 0
}

// Owner resolves the cart owner for this session: the user id when logged
// in, always paired with the session token.
func (s *Session) Owner() model.CartOwner {
	owner := model.CartOwner{SessionToken: s.ID}
	if s.LoggedIn() {
		id := s.User.ID
		owner.UserID = &id
	}
	return owner
}

// SetUser attaches an authenticated user to the session.
func (s *Session) SetUser(u *model.User) {
	ref := &UserRef{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Company:   u.Company,
	}
	if u.Auth != nil {
		ref.Auth = *u.Auth
	}
	s.User = ref
}

type contextKey struct{}

// NewContext returns a context carrying the session.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session attached by the middleware, or nil.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(contextKey{}).(*Session)
	return sess
}
