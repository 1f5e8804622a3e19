package model

// APIKeyStatusExpired marks a revoked partner key.
const APIKeyStatusExpired = "expired"

// APIKey is a partner bearer key restricted to an allowlist of URLs, stored
// in the api_keys table with the allowlist JSON-encoded.
type APIKey struct {
	ID             int64    `json:"id" db:"id"`
	Access         string   `json:"-" db:"access"`
	Status         string   `json:"status" db:"status"`
	AuthorisedURLs []string `json:"authorisedUrls" db:"authorised_urls"`
}

// Authorised reports whether the key may access the given request path.
func (k *APIKey) Authorised(path string) bool {
	if k.Status == APIKeyStatusExpired {
		return false
	}
	for _, u := range k.AuthorisedURLs {
		if u == path {
			return true
		}
	}
	return false
}
