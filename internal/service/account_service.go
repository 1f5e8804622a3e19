package service

import (
	"context"
	"fmt"

	"strikex/internal/model"
	"strikex/internal/repository"

	"github.com/rs/zerolog"
)

const orderHistoryLimit = 20

// accountService implements AccountService.
type accountService struct {
	orderRepo   repository.OrderRepository
	addressRepo repository.AddressRepository
	logger      zerolog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(
	orderRepo repository.OrderRepository,
	addressRepo repository.AddressRepository,
	logger zerolog.Logger,
) AccountService {
	return &accountService{
		orderRepo:   orderRepo,
		addressRepo: addressRepo,
		logger:      logger.With().Str("service", "account").Logger(),
	}
}

// ListOrders returns the user's order history, newest first.
func (s *accountService) ListOrders(ctx context.Context, userID int64) ([]model.OrderListEntry, error) {
	orders, err := s.orderRepo.ListForUser(ctx, userID, orderHistoryLimit)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns one order scoped to its owner. Foreign and missing orders
// are indistinguishable to the caller.
func (s *accountService) GetOrder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := s.orderRepo.GetForUser(ctx, orderID, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// ListAddresses returns saved addresses, default first.
func (s *accountService) ListAddresses(ctx context.Context, userID int64) ([]model.Address, error) {
	addresses, err := s.addressRepo.ListForUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list addresses")
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

// AddAddress saves a delivery address, treating an exact resubmission as a
// success without inserting a second row.
func (s *accountService) AddAddress(ctx context.Context, userID int64, req *model.AddAddressRequest) (*model.Address, error) {
	if req.FullName == "" || req.AddressLine1 == "" || req.City == "" || req.PostalCode == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "Address is incomplete")
	}

	candidate := model.Address{
		UserID:       userID,
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		Region:       req.Region,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		IsDefault:    req.IsDefault,
	}

	existing, err := s.addressRepo.ListForUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list addresses")
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	for _, addr := range existing {
		if addr.Matches(candidate) {
			s.logger.Debug().Int64("address_id", addr.ID).Msg("duplicate address submission ignored")
			return &addr, nil
		}
	}

	if req.IsDefault {
		if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to clear default address: %w", err)
		}
	}

	id, err := s.addressRepo.Create(ctx, &candidate)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to save address")
		return nil, fmt.Errorf("failed to save address: %w", err)
	}
	candidate.ID = id

	s.logger.Info().Int64("user_id", userID).Int64("address_id", id).Msg("address saved")

	return &candidate, nil
}
