package handler

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"strikex/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Int("status", status).Str("error", message).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// respondError maps a service error onto an HTTP status. Domain errors keep
// their code and message; anything else is an opaque 500.
func respondError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if !errors.As(err, &de) {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "Something went wrong", logger)
		return
	}

	writeError(w, statusFor(de.Code), de.Code, de.Message, logger)
}

func statusFor(code string) int {
	switch code {
	case model.ErrCodeCartNotFound, model.ErrCodeOrderNotFound, model.ErrCodeProductNotFound,
		model.ErrCodeItemNotFound:
		return http.StatusNotFound
	case model.ErrCodeUnauthorised, model.ErrCodeBadCredentials:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeAccountExists, model.ErrCodeEmailTaken:
		return http.StatusConflict
	case model.ErrCodeCartEmpty, model.ErrCodeInvalidQuantity, model.ErrCodeMixedCurrency,
		model.ErrCodeInvalidTotal, model.ErrCodeCouponInvalid, model.ErrCodeValidation,
		model.ErrCodeInvalidJSON:
		return http.StatusBadRequest
	case model.ErrCodeUpstream, model.ErrCodeInvalidPriceData, model.ErrCodeMalformedRecord:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a request body, rejecting unparseable payloads.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "Invalid request body")
	}
	return nil
}

// clientIP extracts the caller address, preferring the forwarding header set
// by the edge proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
