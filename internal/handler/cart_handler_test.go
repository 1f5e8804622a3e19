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
)

func TestCartHandler_Add(t *testing.T) {
	sess := &session.Session{ID: "tok-1"}

	tests := []struct {
		name           string
		body           string
		setup          func(*MockCartService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "adds item",
			body: `{"productId":"P001","quantity":2}`,
			setup: func(m *MockCartService) {
				m.On("AddItem", mock.Anything, sess.Owner(), "P001", 2).
					Return(&model.Cart{ID: 7, Items: []model.CartItem{{ProductID: "P001", Quantity: 2}}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid body",
			body:           `{not json`,
			setup:          func(m *MockCartService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  model.ErrCodeInvalidJSON,
		},
		{
			name:           "missing product id",
			body:           `{"quantity":2}`,
			setup:          func(m *MockCartService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  model.ErrCodeValidation,
		},
		{
			name: "unknown product",
			body: `{"productId":"NOPE","quantity":1}`,
			setup: func(m *MockCartService) {
				m.On("AddItem", mock.Anything, sess.Owner(), "NOPE", 1).
					Return(nil, model.ErrProductNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  model.ErrCodeProductNotFound,
		},
		{
			name: "zero quantity",
			body: `{"productId":"P001","quantity":0}`,
			setup: func(m *MockCartService) {
				m.On("AddItem", mock.Anything, sess.Owner(), "P001", 0).
					Return(nil, model.ErrInvalidQuantity)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  model.ErrCodeInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCartService)
			tt.setup(svc)

			h := NewCartHandler(svc, zerolog.Nop())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/add", strings.NewReader(tt.body))
			w := doRequest(h.Add, withSession(req, sess))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestCartHandler_Remove_MissingItem(t *testing.T) {
	sess := &session.Session{ID: "tok-1"}

	svc := new(MockCartService)
	svc.On("RemoveItem", mock.Anything, sess.Owner(), "P001").Return(nil, model.ErrItemNotFound)

	h := NewCartHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/remove", strings.NewReader(`{"productId":"P001"}`))
	w := doRequest(h.Remove, withSession(req, sess))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), model.ErrCodeItemNotFound)
}

func TestCartHandler_View_NoCart(t *testing.T) {
	sess := &session.Session{ID: "tok-1"}

	svc := new(MockCartService)
	svc.On("View", mock.Anything, sess.Owner()).Return(nil, model.ErrCartNotFound)

	h := NewCartHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/view", nil)
	w := doRequest(h.View, withSession(req, sess))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartHandler_Summary_AlwaysOK(t *testing.T) {
	sess := &session.Session{ID: "tok-1"}

	svc := new(MockCartService)
	svc.On("Summarize", mock.Anything, sess.Owner()).Return(model.CartSummary{})

	h := NewCartHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/summary", nil)
	w := doRequest(h.Summary, withSession(req, sess))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"itemCount":0`)
}

func TestCartHandler_Create(t *testing.T) {
	sess := &session.Session{ID: "tok-1"}

	svc := new(MockCartService)
	svc.On("GetOrCreate", mock.Anything, sess.Owner()).Return(&model.Cart{ID: 7}, nil)

	h := NewCartHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/create", nil)
	w := doRequest(h.Create, withSession(req, sess))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
}
