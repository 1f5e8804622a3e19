package service

import (
	"context"
	"fmt"

	"strikex/internal/model"
	"strikex/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// GetOrCreate returns the owner's cart, creating an empty one when absent.
func (s *cartService) GetOrCreate(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByOwner(ctx, owner)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up cart")
		return nil, fmt.Errorf("failed to look up cart: %w", err)
	}
	if cart != nil {
		return cart, nil
	}

	cart, err = s.cartRepo.Create(ctx, owner)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create cart")
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	s.logger.Debug().Int64("cart_id", cart.ID).Msg("cart created")

	return cart, nil
}

// AddItem puts a product in the cart, merging quantity into an existing line.
func (s *cartService) AddItem(ctx context.Context, owner model.CartOwner, productID string, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to look up product")
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	unitPrice, currency, err := product.UnitPrice()
	if err != nil {
		s.logger.Warn().Str("product_id", productID).Msg("product has unusable price data")
		return nil, err
	}

	cart, err := s.GetOrCreate(ctx, owner)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, model.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			Title:     product.Name,
			UnitPrice: unitPrice,
			Currency:  currency,
			ImageURL:  product.ImageURLs()[0],
		})
	}

	if err := s.cartRepo.SaveItems(ctx, cart.ID, cart.Items); err != nil {
		s.logger.Error().Err(err).Int64("cart_id", cart.ID).Msg("failed to save cart items")
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Info().
		Int64("cart_id", cart.ID).
		Str("product_id", productID).
		Int("quantity", quantity).
		Bool("merged", merged).
		Msg("item added to cart")

	return cart, nil
}

// RemoveItem deletes a line from the cart.
func (s *cartService) RemoveItem(ctx context.Context, owner model.CartOwner, productID string) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByOwner(ctx, owner)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up cart")
		return nil, fmt.Errorf("failed to look up cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}

	kept := make([]model.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(cart.Items) {
		return nil, model.ErrItemNotFound
	}
	cart.Items = kept

	if err := s.cartRepo.SaveItems(ctx, cart.ID, cart.Items); err != nil {
		s.logger.Error().Err(err).Int64("cart_id", cart.ID).Msg("failed to save cart items")
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Info().
		Int64("cart_id", cart.ID).
		Str("product_id", productID).
		Msg("item removed from cart")

	return cart, nil
}

// View returns the stored cart lines as-is.
func (s *cartService) View(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByOwner(ctx, owner)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up cart")
		return nil, fmt.Errorf("failed to look up cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}
	return cart, nil
}

// Summarize re-prices the cart from the live catalogue. Anything that cannot
// be priced is skipped; the header badge must render regardless.
func (s *cartService) Summarize(ctx context.Context, owner model.CartOwner) model.CartSummary {
	cart, err := s.cartRepo.FindByOwner(ctx, owner)
	if err != nil || cart == nil {
		if err != nil {
			s.logger.Warn().Err(err).Msg("cart summary degraded to empty")
		}
		return model.CartSummary{}
	}
	if len(cart.Items) == 0 {
		return model.CartSummary{CartID: cart.ID}
	}

	ids := make([]string, len(cart.Items))
	for i, item := range cart.Items {
		ids[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Int64("cart_id", cart.ID).Msg("cart summary degraded to empty")
		return model.CartSummary{CartID: cart.ID}
	}

	summary := model.CartSummary{CartID: cart.ID}
	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		unitPrice, currency, err := product.UnitPrice()
		if err != nil {
			continue
		}
		summary.ItemCount += item.Quantity
		summary.Subtotal = model.Round2(summary.Subtotal + unitPrice*float64(item.Quantity))
		if summary.Currency == "" {
			summary.Currency = currency
		}
	}

	return summary
}

// AttachToUser reassigns a session-owned cart to an account on login. A user
// without a pending guest cart is not an error.
func (s *cartService) AttachToUser(ctx context.Context, sessionToken string, userID int64) error {
	cart, err := s.cartRepo.FindByOwner(ctx, model.CartOwner{SessionToken: sessionToken})
	if err != nil {
		return fmt.Errorf("failed to look up cart: %w", err)
	}
	if cart == nil || (cart.UserID != nil && *cart.UserID == userID) {
		return nil
	}

	if err := s.cartRepo.AssignUser(ctx, cart.ID, userID); err != nil {
		return fmt.Errorf("failed to assign cart: %w", err)
	}

	s.logger.Info().Int64("cart_id", cart.ID).Int64("user_id", userID).Msg("guest cart adopted")

	return nil
}
