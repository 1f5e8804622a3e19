package service

import (
	"context"
	"errors"
	"testing"

	"strikex/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactService_Submit(t *testing.T) {
	notifier := &stubNotifier{}
	svc := NewContactService(notifier, stubVerifier{ok: true}, zerolog.Nop())

	err := svc.Submit(context.Background(), &model.ContactRequest{
		Name:    "Jo Bloggs",
		Email:   "jo@example.com",
		Message: "Where is my order?",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.calls)
}

func TestContactService_Submit_Validation(t *testing.T) {
	svc := NewContactService(&stubNotifier{}, stubVerifier{ok: true}, zerolog.Nop())

	tests := []struct {
		name string
		req  model.ContactRequest
	}{
		{"missing name", model.ContactRequest{Email: "jo@example.com", Message: "hi"}},
		{"missing message", model.ContactRequest{Name: "Jo", Email: "jo@example.com"}},
		{"bad email", model.ContactRequest{Name: "Jo", Email: "nope", Message: "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Submit(context.Background(), &tt.req)
			var de *model.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, model.ErrCodeValidation, de.Code)
		})
	}
}

func TestContactService_Submit_UpstreamFailure(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("webhook down")}
	svc := NewContactService(notifier, stubVerifier{ok: true}, zerolog.Nop())

	err := svc.Submit(context.Background(), &model.ContactRequest{
		Name:    "Jo Bloggs",
		Email:   "jo@example.com",
		Message: "Where is my order?",
	})
	var de *model.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, model.ErrCodeUpstream, de.Code)
}

func TestContactService_Submit_CaptchaRejected(t *testing.T) {
	notifier := &stubNotifier{}
	svc := NewContactService(notifier, stubVerifier{ok: false}, zerolog.Nop())

	err := svc.Submit(context.Background(), &model.ContactRequest{
		Name:    "Jo Bloggs",
		Email:   "jo@example.com",
		Message: "Where is my order?",
	})
	require.Error(t, err)
	assert.Equal(t, 0, notifier.calls)
}
