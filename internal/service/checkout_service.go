package service

import (
	"context"
	"fmt"

	"strikex/internal/coupon"
	"strikex/internal/events"
	"strikex/internal/model"
	"strikex/internal/payment"
	"strikex/internal/repository"
	"strikex/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	addressRepo repository.AddressRepository
	couponRepo  repository.CouponRepository
	evaluator   coupon.Evaluator
	provider    payment.Provider
	publisher   events.Publisher
	logger      zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	addressRepo repository.AddressRepository,
	couponRepo repository.CouponRepository,
	evaluator coupon.Evaluator,
	provider payment.Provider,
	publisher events.Publisher,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		addressRepo: addressRepo,
		couponRepo:  couponRepo,
		evaluator:   evaluator,
		provider:    provider,
		publisher:   publisher,
		logger:      logger.With().Str("service", "checkout").Logger(),
	}
}

// pricedCart is a cart re-priced from the live catalogue at checkout time.
type pricedCart struct {
	Items    []model.CartItem
	Subtotal float64
	Currency string
}

// priceItems rebuilds every line from current catalogue data. Stored cart
// prices are only a display snapshot and are never charged.
func (s *checkoutService) priceItems(ctx context.Context, items []model.CartItem) (*pricedCart, error) {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	priced := &pricedCart{Items: make([]model.CartItem, 0, len(items))}
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			s.logger.Warn().Str("product_id", item.ProductID).Msg("cart references unknown product")
			return nil, model.ErrProductNotFound
		}

		unitPrice, currency, err := product.UnitPrice()
		if err != nil {
			s.logger.Warn().Str("product_id", item.ProductID).Msg("product has unusable price data")
			return nil, err
		}

		if priced.Currency == "" {
			priced.Currency = currency
		} else if priced.Currency != currency {
			s.logger.Warn().
				Str("currency", priced.Currency).
				Str("conflicting", currency).
				Msg("cart mixes currencies")
			return nil, model.ErrMixedCurrency
		}

		priced.Items = append(priced.Items, model.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Title:     product.Name,
			UnitPrice: unitPrice,
			Currency:  currency,
			ImageURL:  product.ImageURLs()[0],
		})
		priced.Subtotal = model.Round2(priced.Subtotal + unitPrice*float64(item.Quantity))
	}

	return priced, nil
}

// applySessionCoupon evaluates the coupon held in the session against the
// subtotal. An invalid coupon is cleared from the session with a message so
// the page can explain why it no longer applies.
func (s *checkoutService) applySessionCoupon(ctx context.Context, sess *session.Session, subtotal float64) (float64, *string, error) {
	if sess.CouponCode == nil || *sess.CouponCode == "" {
		return 0, nil, nil
	}

	result, err := s.evaluator.Evaluate(ctx, *sess.CouponCode, subtotal)
	if err != nil {
		return 0, nil, err
	}

	if !result.Valid {
		msg := fmt.Sprintf("Coupon %s no longer applies (%s)", coupon.Normalize(*sess.CouponCode), result.Reason)
		sess.CouponCode = nil
		sess.CouponMessage = &msg
		return 0, nil, nil
	}

	code := result.Code
	sess.CouponMessage = nil
	return result.Discount, &code, nil
}

// Preview builds the checkout page data for a cart the session owns.
func (s *checkoutService) Preview(ctx context.Context, sess *session.Session, cartID int64) (*model.CheckoutPreview, error) {
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}
	if !s.owns(sess, cart) {
		return nil, model.ErrForbidden
	}
	if len(cart.Items) == 0 {
		return nil, model.ErrCartEmpty
	}

	priced, err := s.priceItems(ctx, cart.Items)
	if err != nil {
		return nil, err
	}

	discount, code, err := s.applySessionCoupon(ctx, sess, priced.Subtotal)
	if err != nil {
		return nil, err
	}

	preview := &model.CheckoutPreview{
		CartID:        cart.ID,
		Items:         priced.Items,
		Subtotal:      priced.Subtotal,
		Discount:      discount,
		Shipping:      0,
		Total:         model.Round2(priced.Subtotal - discount),
		Currency:      priced.Currency,
		CouponApplied: code,
		CouponMessage: sess.CouponMessage,
		IsLoggedIn:    sess.LoggedIn(),
	}

	if sess.LoggedIn() {
		addresses, err := s.addressRepo.ListForUser(ctx, sess.User.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load addresses: %w", err)
		}
		preview.Addresses = addresses
	}

	return preview, nil
}

// owns reports whether the session may act on the cart: matching user id
// when logged in, otherwise matching session token.
func (s *checkoutService) owns(sess *session.Session, cart *model.Cart) bool {
	if sess.LoggedIn() && cart.UserID != nil && *cart.UserID == sess.User.ID {
		return true
	}
	return cart.SessionID != nil && *cart.SessionID == sess.ID
}

// CreatePaymentIntent re-prices the cart, applies the session coupon,
// persists a pending order and opens a payment intent.
func (s *checkoutService) CreatePaymentIntent(ctx context.Context, sess *session.Session, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if !req.Address.Complete() {
		return nil, model.NewDomainError(model.ErrCodeValidation, "Shipping address is incomplete")
	}

	cart, err := s.cartRepo.GetByID(ctx, req.CartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}
	if !s.owns(sess, cart) {
		return nil, model.ErrForbidden
	}
	if len(cart.Items) == 0 {
		return nil, model.ErrCartEmpty
	}

	// Ownership is settled before any account is provisioned or the cart is
	// reattached.
	user, err := s.resolveUser(ctx, sess, req, cart)
	if err != nil {
		return nil, err
	}

	priced, err := s.priceItems(ctx, cart.Items)
	if err != nil {
		return nil, err
	}

	discount, code, err := s.applySessionCoupon(ctx, sess, priced.Subtotal)
	if err != nil {
		return nil, err
	}

	total := model.Round2(priced.Subtotal - discount + 0)
	if total <= 0 {
		return nil, model.ErrInvalidTotal
	}

	customerID, err := s.ensureCustomer(ctx, user)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		UserID:          user.ID,
		CartID:          cart.ID,
		Items:           priced.Items,
		Subtotal:        priced.Subtotal,
		Discount:        discount,
		Shipping:        0,
		Total:           total,
		Currency:        priced.Currency,
		CouponCode:      code,
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusUnpaid,
		PaymentMethod:   model.PaymentMethodStripe,
		ShippingAddress: req.Address,
		CustomerNotes:   req.Notes,
	}

	orderID, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	intent, err := s.provider.CreateIntent(ctx, payment.IntentRequest{
		Amount:     model.MinorUnits(total),
		Currency:   priced.Currency,
		CustomerID: customerID,
		Metadata: map[string]string{
			"orderId": fmt.Sprintf("%d", orderID),
			"cartId":  fmt.Sprintf("%d", cart.ID),
			"userId":  fmt.Sprintf("%d", user.ID),
		},
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to create payment intent")
		return nil, model.NewDomainError(model.ErrCodeUpstream, "Payment could not be initiated")
	}

	s.publisher.Publish(ctx, events.TypeOrderCreated, events.OrderCreated{
		OrderID:  orderID,
		UserID:   &user.ID,
		Total:    total,
		Currency: priced.Currency,
	})

	s.logger.Info().
		Int64("order_id", orderID).
		Int64("cart_id", cart.ID).
		Float64("total", total).
		Str("currency", priced.Currency).
		Msg("payment intent opened")

	return &model.CheckoutResponse{
		ClientSecret: intent.ClientSecret,
		OrderID:      orderID,
		Amount:       total,
		Currency:     priced.Currency,
	}, nil
}

// resolveUser returns the paying account. Logged-in sessions use theirs;
// guests are auto-provisioned an account unless the email already has one.
// The caller has already verified the session owns the cart.
func (s *checkoutService) resolveUser(ctx context.Context, sess *session.Session, req *model.CheckoutRequest, cart *model.Cart) (*model.User, error) {
	if sess.LoggedIn() {
		user, err := s.userRepo.GetByID(ctx, sess.User.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		if user == nil {
			return nil, model.ErrUnauthorised
		}
		return user, nil
	}

	if req.Guest == nil || req.Guest.Email == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "Guest details are required")
	}

	// A guest checkout only ever adopts the session's own unattached cart.
	if cart.UserID != nil || cart.SessionID == nil || *cart.SessionID != sess.ID {
		return nil, model.ErrForbidden
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Guest.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		// Never attach a guest checkout to someone else's account.
		return nil, model.ErrAccountExists
	}

	// Unusable placeholder credential; the guest sets a real password via
	// reset. Check-then-insert window on the email is accepted, the unique
	// index is the backstop.
	placeholder, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to generate placeholder credential: %w", err)
	}

	user := &model.User{
		Email:     req.Guest.Email,
		Password:  string(placeholder),
		FirstName: req.Guest.FirstName,
		LastName:  req.Guest.LastName,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to provision guest account: %w", err)
	}
	user.ID = userID

	if err := s.cartRepo.AssignUser(ctx, cart.ID, userID); err != nil {
		return nil, fmt.Errorf("failed to assign cart: %w", err)
	}

	addr := &model.Address{
		UserID:       userID,
		FullName:     req.Address.FullName,
		PhoneNumber:  req.Address.PhoneNumber,
		AddressLine1: req.Address.AddressLine1,
		AddressLine2: req.Address.AddressLine2,
		City:         req.Address.City,
		Region:       req.Address.Region,
		PostalCode:   req.Address.PostalCode,
		Country:      req.Address.Country,
		IsDefault:    true,
	}
	if _, err := s.addressRepo.Create(ctx, addr); err != nil {
		// The checkout can proceed without the saved address.
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("failed to save guest address")
	}

	sess.SetUser(user)

	s.logger.Info().Int64("user_id", userID).Msg("guest account provisioned")

	return user, nil
}

// ensureCustomer returns the user's processor customer id, creating and
// persisting it on first checkout.
func (s *checkoutService) ensureCustomer(ctx context.Context, user *model.User) (string, error) {
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return *user.StripeCustomerID, nil
	}

	name := user.FirstName + " " + user.LastName
	customerID, err := s.provider.CreateCustomer(ctx, user.Email, name)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to create processor customer")
		return "", model.NewDomainError(model.ErrCodeUpstream, "Payment could not be initiated")
	}

	if err := s.userRepo.SetStripeCustomerID(ctx, user.ID, customerID); err != nil {
		return "", fmt.Errorf("failed to persist customer id: %w", err)
	}
	user.StripeCustomerID = &customerID

	return customerID, nil
}

// Complete transitions a confirmed order to processing/paid. The guarded
// UPDATE makes repeat calls no-ops: the coupon counter and cart deletion only
// run when this call performed the transition.
func (s *checkoutService) Complete(ctx context.Context, orderID int64, userID *int64, paymentIntentID string) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return model.ErrOrderNotFound
	}

	transitioned, err := s.orderRepo.MarkPaid(ctx, orderID, userID, paymentIntentID)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if !transitioned {
		s.logger.Debug().Int64("order_id", orderID).Msg("order already paid, nothing to do")
		return nil
	}

	if order.CouponCode != nil && *order.CouponCode != "" {
		if err := s.couponRepo.IncrementUsage(ctx, *order.CouponCode); err != nil {
			// The payment is already confirmed; log and move on.
			s.logger.Error().Err(err).Str("code", *order.CouponCode).Msg("failed to increment coupon usage")
		}
	}

	// Only the cart the order was placed from is consumed; callers never
	// choose which cart to delete.
	if err := s.cartRepo.Delete(ctx, order.CartID); err != nil {
		s.logger.Error().Err(err).Int64("cart_id", order.CartID).Msg("failed to delete consumed cart")
	}

	s.publisher.Publish(ctx, events.TypeOrderPaid, events.OrderPaid{
		OrderID:   orderID,
		PaymentID: paymentIntentID,
	})

	s.logger.Info().
		Int64("order_id", orderID).
		Str("payment_intent_id", paymentIntentID).
		Msg("order completed")

	return nil
}
