package service

import (
	"context"
	"fmt"
	"strings"

	"strikex/internal/captcha"
	"strikex/internal/model"
	"strikex/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	carts    CartService
	verifier captcha.Verifier
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	carts CartService,
	verifier captcha.Verifier,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		userRepo: userRepo,
		carts:    carts,
		verifier: verifier,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates an account after field and captcha validation.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest, clientIP string) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateRegistration(req, email); err != nil {
		return nil, err
	}

	ok, err := s.verifier.Verify(ctx, req.CaptchaToken)
	if err != nil {
		s.logger.Error().Err(err).Msg("captcha verification failed")
		return nil, model.NewDomainError(model.ErrCodeUpstream, "Could not verify captcha")
	}
	if !ok {
		return nil, model.NewDomainError(model.ErrCodeValidation, "Captcha verification failed")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:     email,
		Password:  string(hash),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	if req.AccountType == "business" && req.Company != "" {
		company := strings.TrimSpace(req.Company)
		user.Company = &company
	}
	if clientIP != "" {
		user.IPAddress = &clientIP
	}

	// Email uniqueness rides on the check above; the unique index catches
	// the rare concurrent duplicate.
	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create account")
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	user.ID = id

	s.logger.Info().Int64("user_id", id).Msg("account registered")

	return user, nil
}

// Login authenticates a user and adopts any guest cart held by the session
// token.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest, sessionToken string) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, model.ErrBadCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if user == nil {
		return nil, model.ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.logger.Debug().Str("email", email).Msg("password mismatch")
		return nil, model.ErrBadCredentials
	}

	if err := s.carts.AttachToUser(ctx, sessionToken, user.ID); err != nil {
		// Login still succeeds; the cart stays on the session token.
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to adopt guest cart")
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")

	return user, nil
}

func validateRegistration(req *model.RegisterRequest, email string) error {
	switch {
	case email == "" || !strings.Contains(email, "@"):
		return model.NewDomainError(model.ErrCodeValidation, "A valid email is required")
	case len(req.Password) < minPasswordLength:
		return model.NewDomainError(model.ErrCodeValidation, "Password must be at least 8 characters")
	case req.Password != req.ConfirmPassword:
		return model.NewDomainError(model.ErrCodeValidation, "Passwords do not match")
	case strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "":
		return model.NewDomainError(model.ErrCodeValidation, "First and last name are required")
	}
	return nil
}
