package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// DefaultImageURL is used when a product row carries no usable image data.
const DefaultImageURL = "assets/images/default.jpg"

// Product represents a catalogue row. Price and image data live in
// JSON-encoded columns (uk_price_obj, images) and are decoded on read.
type Product struct {
	ID          string    `json:"id" db:"id"`
	SKU         string    `json:"sku" db:"sku"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Status      string    `json:"status" db:"status"`
	PriceJSON   []byte    `json:"-" db:"uk_price_obj"`
	ImagesJSON  []byte    `json:"-" db:"images"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// PriceObject mirrors the uk_price_obj column:
// {"price":{"amount":"12.50","currencyCode":"GBP"}}
type PriceObject struct {
	Price Money `json:"price"`
}

// Money holds an amount (stored as a decimal string) and its currency code.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// ProductImage mirrors one element of the images column.
type ProductImage struct {
	URL string `json:"url"`
}

// UnitPrice decodes the stored price object. Malformed JSON, a missing
// currency code or a non-numeric amount surface ErrInvalidPriceData.
func (p *Product) UnitPrice() (float64, string, error) {
	var obj PriceObject
	if err := json.Unmarshal(p.PriceJSON, &obj); err != nil {
		return 0, "", ErrInvalidPriceData
	}

	if obj.Price.Amount == "" || obj.Price.CurrencyCode == "" {
		return 0, "", ErrInvalidPriceData
	}

	amount, err := strconv.ParseFloat(obj.Price.Amount, 64)
	if err != nil {
		return 0, "", ErrInvalidPriceData
	}

	return amount, obj.Price.CurrencyCode, nil
}

// ImageURLs decodes the stored image list. Unlike prices, image data degrades
// gracefully: malformed or empty JSON yields the default placeholder.
func (p *Product) ImageURLs() []string {
	var images []ProductImage
	if err := json.Unmarshal(p.ImagesJSON, &images); err != nil || len(images) == 0 {
		return []string{DefaultImageURL}
	}

	urls := make([]string, 0, len(images))
	for _, img := range images {
		if img.URL != "" {
			urls = append(urls, img.URL)
		}
	}
	if len(urls) == 0 {
		return []string{DefaultImageURL}
	}
	return urls
}

// ProductView is the decoded, client-facing projection of a product.
type ProductView struct {
	ID          string   `json:"id"`
	SKU         string   `json:"sku"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Price       Money    `json:"price"`
	Available   bool     `json:"availableForSale"`
}
