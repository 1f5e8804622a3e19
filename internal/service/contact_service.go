package service

import (
	"context"
	"strings"

	"strikex/internal/captcha"
	"strikex/internal/model"
	"strikex/internal/notify"

	"github.com/rs/zerolog"
)

// contactService implements ContactService.
type contactService struct {
	notifier notify.Notifier
	verifier captcha.Verifier
	logger   zerolog.Logger
}

// NewContactService creates a new contact service.
func NewContactService(notifier notify.Notifier, verifier captcha.Verifier, logger zerolog.Logger) ContactService {
	return &contactService{
		notifier: notifier,
		verifier: verifier,
		logger:   logger.With().Str("service", "contact").Logger(),
	}
}

// Submit validates and forwards a contact form submission.
func (s *contactService) Submit(ctx context.Context, req *model.ContactRequest) error {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)

	if name == "" || message == "" {
		return model.NewDomainError(model.ErrCodeValidation, "Name and message are required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return model.NewDomainError(model.ErrCodeValidation, "A valid email is required")
	}

	ok, err := s.verifier.Verify(ctx, req.CaptchaToken)
	if err != nil {
		s.logger.Error().Err(err).Msg("captcha verification failed")
		return model.NewDomainError(model.ErrCodeUpstream, "Could not verify captcha")
	}
	if !ok {
		return model.NewDomainError(model.ErrCodeValidation, "Captcha verification failed")
	}

	if err := s.notifier.ContactMessage(ctx, name, email, message); err != nil {
		s.logger.Error().Err(err).Msg("failed to forward contact message")
		return model.NewDomainError(model.ErrCodeUpstream, "Message could not be delivered")
	}

	return nil
}
