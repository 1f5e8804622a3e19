package service

import (
	"context"
	"testing"

	"strikex/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountService_ListOrders(t *testing.T) {
	ctx := context.Background()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("ListForUser", ctx, int64(42), 20).Return([]model.OrderListEntry{
		{ID: 2}, {ID: 1},
	}, nil)

	svc := NewAccountService(orderRepo, new(MockAddressRepository), zerolog.Nop())

	orders, err := svc.ListOrders(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	orderRepo.AssertExpectations(t)
}

func TestAccountService_GetOrder_ForeignOrderHidden(t *testing.T) {
	ctx := context.Background()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetForUser", ctx, int64(101), int64(42)).Return(nil, nil)

	svc := NewAccountService(orderRepo, new(MockAddressRepository), zerolog.Nop())

	_, err := svc.GetOrder(ctx, 42, 101)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestAccountService_AddAddress_DuplicateIsNoOp(t *testing.T) {
	ctx := context.Background()

	existing := model.Address{
		ID:           3,
		UserID:       42,
		FullName:     "Jo Bloggs",
		AddressLine1: "1 High Street",
		City:         "London",
		PostalCode:   "N1 1AA",
	}

	addressRepo := new(MockAddressRepository)
	addressRepo.On("ListForUser", ctx, int64(42)).Return([]model.Address{existing}, nil)

	svc := NewAccountService(new(MockOrderRepository), addressRepo, zerolog.Nop())

	addr, err := svc.AddAddress(ctx, 42, &model.AddAddressRequest{
		FullName:     "Jo Bloggs",
		AddressLine1: "1 High Street",
		City:         "London",
		PostalCode:   "N1 1AA",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), addr.ID)
	addressRepo.AssertNotCalled(t, "Create")
}

func TestAccountService_AddAddress_NewDefaultClearsOld(t *testing.T) {
	ctx := context.Background()

	addressRepo := new(MockAddressRepository)
	addressRepo.On("ListForUser", ctx, int64(42)).Return([]model.Address{}, nil)
	addressRepo.On("ClearDefault", ctx, int64(42)).Return(nil)
	addressRepo.On("Create", ctx, mock.MatchedBy(func(a *model.Address) bool {
		return a.UserID == 42 && a.IsDefault
	})).Return(int64(4), nil)

	svc := NewAccountService(new(MockOrderRepository), addressRepo, zerolog.Nop())

	addr, err := svc.AddAddress(ctx, 42, &model.AddAddressRequest{
		FullName:     "Jo Bloggs",
		AddressLine1: "2 Low Street",
		City:         "London",
		PostalCode:   "N1 2BB",
		IsDefault:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), addr.ID)
	addressRepo.AssertExpectations(t)
}

func TestAccountService_AddAddress_Incomplete(t *testing.T) {
	svc := NewAccountService(new(MockOrderRepository), new(MockAddressRepository), zerolog.Nop())

	_, err := svc.AddAddress(context.Background(), 42, &model.AddAddressRequest{
		FullName: "Jo Bloggs",
	})
	var de *model.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, model.ErrCodeValidation, de.Code)
}
