package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const verifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Verifier checks a reCAPTCHA token submitted with registration.
type Verifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// NewVerifier returns a live verifier, or a pass-through one when no
// secret is configured so local environments work without a captcha key.
func NewVerifier(secret string, logger zerolog.Logger) Verifier {
	if secret == "" {
		logger.Warn().Msg("captcha secret not configured, verification disabled")
		return nopVerifier{}
	}
	return &googleVerifier{
		endpoint: verifyURL,
		secret:   secret,
		client:   &http.Client{Timeout: 5 * time.Second},
		logger:   logger.With().Str("component", "captcha").Logger(),
	}
}

type nopVerifier struct{}

func (nopVerifier) Verify(ctx context.Context, token string) (bool, error) {
	return true, nil
}

type googleVerifier struct {
	endpoint string
	secret   string
	client   *http.Client
	logger   zerolog.Logger
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func (v *googleVerifier) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha verification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha verification service error: %s", resp.Status)
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, err
	}

	if !out.Success {
		v.logger.Debug().Strs("error_codes", out.ErrorCodes).Msg("captcha rejected")
	}

	return out.Success, nil
}
