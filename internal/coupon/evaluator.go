package coupon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"strikex/internal/model"
	"strikex/internal/repository"

	"github.com/rs/zerolog"
)

// evaluator implements Evaluator against the coupons table.
type evaluator struct {
	repo   repository.CouponRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewEvaluator creates a database-backed coupon evaluator.
func NewEvaluator(repo repository.CouponRepository, logger zerolog.Logger) Evaluator {
	return &evaluator{
		repo:   repo,
		logger: logger.With().Str("component", "coupon-evaluator").Logger(),
		now:    time.Now,
	}
}

// NewEvaluatorAt creates an evaluator with an injectable clock.
func NewEvaluatorAt(repo repository.CouponRepository, logger zerolog.Logger, now func() time.Time) Evaluator {
	return &evaluator{
		repo:   repo,
		logger: logger.With().Str("component", "coupon-evaluator").Logger(),
		now:    now,
	}
}

// Normalize canonicalises a submitted code: trimmed, uppercased.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Evaluate checks a code against a subtotal. Rejections come back as an
// invalid Result with a reason; only storage failures return an error.
func (e *evaluator) Evaluate(ctx context.Context, code string, subtotal float64) (Result, error) {
	normalized := Normalize(code)
	if normalized == "" {
		return Result{Reason: ReasonNotFound}, nil
	}

	c, err := e.repo.GetByCode(ctx, normalized)
	if err != nil {
		return Result{}, fmt.Errorf("coupon lookup failed: %w", err)
	}
	if c == nil {
		e.logger.Debug().Str("code", normalized).Msg("coupon not found")
		return Result{Reason: ReasonNotFound}, nil
	}

	if reason := e.rejectionReason(c, subtotal); reason != "" {
		e.logger.Debug().
			Str("code", c.Code).
			Str("reason", reason).
			Float64("subtotal", subtotal).
			Msg("coupon rejected")
		return Result{Reason: reason}, nil
	}

	discount := model.Round2(subtotal * c.PercentOff / 100)

	e.logger.Debug().
		Str("code", c.Code).
		Float64("discount", discount).
		Msg("coupon applied")

	return Result{Valid: true, Code: c.Code, Discount: discount}, nil
}

func (e *evaluator) rejectionReason(c *model.Coupon, subtotal float64) string {
	if !c.Active {
		return ReasonInactive
	}

	now := e.now()
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return ReasonNotStarted
	}
	if c.EndsAt != nil && now.After(*c.EndsAt) {
		return ReasonExpired
	}
	if c.UsageLimit != nil && c.TimesUsed >= *c.UsageLimit {
		return ReasonUsageLimit
	}
	if subtotal < c.MinSubtotal {
		return ReasonBelowMinimum
	}

	return ""
}
