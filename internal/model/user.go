package model

import "time"

// RoleAdmin is the stored role flag that gates the staff dashboard.
const RoleAdmin = "admin"

// User is an account row. Password holds the bcrypt hash; guest-checkout
// accounts get a random unusable placeholder until a reset. The Stripe
// customer id is assigned lazily on first checkout.
type User struct {
	ID               int64     `json:"id" db:"id"`
	Email            string    `json:"email" db:"email"`
	Password         string    `json:"-" db:"password"`
	FirstName        string    `json:"firstName" db:"first_name"`
	LastName         string    `json:"lastName" db:"last_name"`
	Company          *string   `json:"company,omitempty" db:"company"`
	StripeCustomerID *string   `json:"-" db:"stripe_customer_id"`
	Auth             *string   `json:"-" db:"auth"`
	IPAddress        *string   `json:"-" db:"ip_address"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// IsAdmin reports whether the stored role flag grants staff access.
func (u *User) IsAdmin() bool {
	return u.Auth != nil && *u.Auth == RoleAdmin
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	AccountType     string `json:"accountType"`
	Company         string `json:"company"`
	CaptchaToken    string `json:"recaptchaToken"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	RedirectURI  string `json:"redirect_uri"`
	CaptchaToken string `json:"recaptchaToken"`
}
