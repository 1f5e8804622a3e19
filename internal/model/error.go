package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeCartNotFound     = "CART_NOT_FOUND"
	ErrCodeCartEmpty        = "CART_EMPTY"
	ErrCodeItemNotFound     = "ITEM_NOT_FOUND"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodeInvalidPriceData = "INVALID_PRICE_DATA"
	ErrCodeMixedCurrency    = "MIXED_CURRENCY"
	ErrCodeInvalidTotal     = "INVALID_TOTAL"
	ErrCodeCouponInvalid    = "COUPON_INVALID"
	ErrCodeAccountExists    = "ACCOUNT_EXISTS_LOGIN_REQUIRED"
	ErrCodeEmailTaken       = "EMAIL_TAKEN"
	ErrCodeBadCredentials   = "INVALID_CREDENTIALS"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodeMalformedRecord  = "MALFORMED_RECORD"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeUpstream         = "UPSTREAM_ERROR"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError carries a machine-readable code alongside the message so
// handlers can map business failures onto HTTP statuses.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrCartNotFound     = NewDomainError(ErrCodeCartNotFound, "Cart not found")
	ErrCartEmpty        = NewDomainError(ErrCodeCartEmpty, "Cart is empty")
	ErrItemNotFound     = NewDomainError(ErrCodeItemNotFound, "Product not found in cart")
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrInvalidQuantity  = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidPriceData = NewDomainError(ErrCodeInvalidPriceData, "Invalid price data for product")
	ErrMixedCurrency    = NewDomainError(ErrCodeMixedCurrency, "Mixed currencies in cart")
	ErrInvalidTotal     = NewDomainError(ErrCodeInvalidTotal, "Total amount is invalid")
	ErrAccountExists    = NewDomainError(ErrCodeAccountExists, "An account with this email already exists, please log in")
	ErrEmailTaken       = NewDomainError(ErrCodeEmailTaken, "An account with this email already exists")
	ErrBadCredentials   = NewDomainError(ErrCodeBadCredentials, "Invalid email or password")
	ErrOrderNotFound    = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrMalformedRecord  = NewDomainError(ErrCodeMalformedRecord, "Stored record is malformed")
	ErrUnauthorised     = NewDomainError(ErrCodeUnauthorised, "Authentication required")
	ErrForbidden        = NewDomainError(ErrCodeForbidden, "Access denied")
)
