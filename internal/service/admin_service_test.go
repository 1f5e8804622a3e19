package service

import (
	"context"
	"testing"

	"strikex/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_Dashboard(t *testing.T) {
	ctx := context.Background()

	role := model.RoleAdmin
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", ctx, int64(1)).Return(&model.User{ID: 1, Auth: &role}, nil)

	adminRepo := new(MockAdminRepository)
	adminRepo.On("PaidRevenue", ctx, "GBP").Return(1234.56, nil)
	adminRepo.On("UserCount", ctx).Return(10, nil)
	adminRepo.On("OrderCount", ctx).Return(25, nil)
	adminRepo.On("RecentUsers", ctx, 5).Return([]model.User{{ID: 9}}, nil)
	adminRepo.On("RecentOrders", ctx, 5, false).Return([]model.OrderListEntry{{ID: 25}}, nil)
	adminRepo.On("RecentOrders", ctx, 5, true).Return([]model.OrderListEntry{{ID: 24}}, nil)

	svc := NewAdminService(adminRepo, userRepo, zerolog.Nop())

	dash, err := svc.Dashboard(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1234.56, dash.Revenue)
	assert.Equal(t, "GBP", dash.Currency)
	assert.Equal(t, 10, dash.UserCount)
	assert.Equal(t, 25, dash.OrderCount)
	assert.Len(t, dash.RecentOrders, 1)
	assert.Len(t, dash.RecentPaidOrders, 1)

	adminRepo.AssertExpectations(t)
}

func TestAdminService_Dashboard_NonAdminForbidden(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", ctx, int64(2)).Return(&model.User{ID: 2}, nil)

	adminRepo := new(MockAdminRepository)
	svc := NewAdminService(adminRepo, userRepo, zerolog.Nop())

	_, err := svc.Dashboard(ctx, 2)
	assert.ErrorIs(t, err, model.ErrForbidden)
	adminRepo.AssertNotCalled(t, "PaidRevenue")
}

func TestAdminService_Dashboard_MissingUserForbidden(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", ctx, int64(3)).Return(nil, nil)

	svc := NewAdminService(new(MockAdminRepository), userRepo, zerolog.Nop())

	_, err := svc.Dashboard(ctx, 3)
	assert.ErrorIs(t, err, model.ErrForbidden)
}
