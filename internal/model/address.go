package model

import "time"

// Address is a saved delivery address. At most one address per user is
// marked default; the previous default is cleared before a new one is set.
type Address struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"-" db:"user_id"`
	FullName     string    `json:"full_name" db:"full_name"`
	PhoneNumber  string    `json:"phone_number" db:"phone_number"`
	AddressLine1 string    `json:"address_line1" db:"address_line1"`
	AddressLine2 string    `json:"address_line2" db:"address_line2"`
	City         string    `json:"city" db:"city"`
	Region       string    `json:"region" db:"region"`
	PostalCode   string    `json:"postal_code" db:"postal_code"`
	Country      string    `json:"country" db:"country"`
	IsDefault    bool      `json:"is_default" db:"is_default"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Matches reports whether the stored address has the same visible fields as
// the submitted one, which is how duplicate submissions are detected.
func (a Address) Matches(b Address) bool {
	return a.FullName == b.FullName &&
		a.PhoneNumber == b.PhoneNumber &&
		a.AddressLine1 == b.AddressLine1 &&
		a.AddressLine2 == b.AddressLine2 &&
		a.City == b.City &&
		a.Region == b.Region &&
		a.PostalCode == b.PostalCode &&
		a.Country == b.Country
}

// AddAddressRequest is the payload for POST /addresses/add.
type AddAddressRequest struct {
	FullName     string `json:"full_name"`
	PhoneNumber  string `json:"phone_number"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	Region       string `json:"region"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	IsDefault    bool   `json:"is_default"`
}
