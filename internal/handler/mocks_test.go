package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"

	"strikex/internal/coupon"
	"strikex/internal/model"
	"strikex/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

// MockCartService is a mock implementation of service.CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetOrCreate(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, owner model.CartOwner, productID string, quantity int) (*model.Cart, error) {
	args := m.Called(ctx, owner, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, owner model.CartOwner, productID string) (*model.Cart, error) {
	args := m.Called(ctx, owner, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) View(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) Summarize(ctx context.Context, owner model.CartOwner) model.CartSummary {
	args := m.Called(ctx, owner)
	return args.Get(0).(model.CartSummary)
}

func (m *MockCartService) AttachToUser(ctx context.Context, sessionToken string, userID int64) error {
	args := m.Called(ctx, sessionToken, userID)
	return args.Error(0)
}

// MockCheckoutService is a mock implementation of service.CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Preview(ctx context.Context, sess *session.Session, cartID int64) (*model.CheckoutPreview, error) {
	args := m.Called(ctx, sess, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutPreview), args.Error(1)
}

func (m *MockCheckoutService) CreatePaymentIntent(ctx context.Context, sess *session.Session, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, sess, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResponse), args.Error(1)
}

func (m *MockCheckoutService) Complete(ctx context.Context, orderID int64, userID *int64, paymentIntentID string) error {
	args := m.Called(ctx, orderID, userID, paymentIntentID)
	return args.Error(0)
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *model.RegisterRequest, clientIP string) (*model.User, error) {
	args := m.Called(ctx, req, clientIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *model.LoginRequest, sessionToken string) (*model.User, error) {
	args := m.Called(ctx, req, sessionToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockEvaluator is a mock implementation of coupon.Evaluator.
type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) Evaluate(ctx context.Context, code string, subtotal float64) (coupon.Result, error) {
	args := m.Called(ctx, code, subtotal)
	return args.Get(0).(coupon.Result), args.Error(1)
}

// memStore is an in-memory session store for handler tests.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*session.Session)}
}

func (s *memStore) Get(ctx context.Context, id string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id], nil
}

func (s *memStore) Save(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func newTestManager() *session.Manager {
	return session.NewManager(newMemStore(), "sx_session", zerolog.Nop())
}

// withSession attaches a session to the request context the way the
// middleware would.
func withSession(r *http.Request, sess *session.Session) *http.Request {
	return r.WithContext(session.NewContext(r.Context(), sess))
}

func doRequest(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, r)
	return w
}
