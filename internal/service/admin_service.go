package service

import (
	"context"
	"fmt"

	"strikex/internal/model"
	"strikex/internal/repository"

	"github.com/rs/zerolog"
)

const (
	dashboardCurrency = "GBP"
	dashboardRecent   = 5
)

// adminService implements AdminService.
type adminService struct {
	adminRepo repository.AdminRepository
	userRepo  repository.UserRepository
	logger    zerolog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(
	adminRepo repository.AdminRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) AdminService {
	return &adminService{
		adminRepo: adminRepo,
		userRepo:  userRepo,
		logger:    logger.With().Str("service", "admin").Logger(),
	}
}

// Dashboard returns the staff aggregates. The role is re-read from storage
// so a revoked admin loses access immediately, whatever the session says.
func (s *adminService) Dashboard(ctx context.Context, userID int64) (*model.AdminDashboard, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || !user.IsAdmin() {
		s.logger.Warn().Int64("user_id", userID).Msg("dashboard access denied")
		return nil, model.ErrForbidden
	}

	revenue, err := s.adminRepo.PaidRevenue(ctx, dashboardCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	userCount, err := s.adminRepo.UserCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	orderCount, err := s.adminRepo.OrderCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	recentUsers, err := s.adminRepo.RecentUsers(ctx, dashboardRecent)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent users: %w", err)
	}

	recentOrders, err := s.adminRepo.RecentOrders(ctx, dashboardRecent, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}

	recentPaid, err := s.adminRepo.RecentOrders(ctx, dashboardRecent, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent paid orders: %w", err)
	}

	return &model.AdminDashboard{
		Revenue:          revenue,
		Currency:         dashboardCurrency,
		UserCount:        userCount,
		OrderCount:       orderCount,
		RecentUsers:      recentUsers,
		RecentOrders:     recentOrders,
		RecentPaidOrders: recentPaid,
	}, nil
}
