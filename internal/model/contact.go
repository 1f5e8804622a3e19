package model

// ContactRequest is the payload for POST /api/v1/contact.
type ContactRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Message      string `json:"message"`
	CaptchaToken string `json:"recaptchaToken"`
}
