package handler

import (
	"net/http"

	"strikex/internal/model"
	"strikex/internal/service"
	"strikex/internal/session"

	"github.com/rs/zerolog"
)

// AuthHandler handles registration and login HTTP requests.
type AuthHandler struct {
	service  service.AuthService
	sessions *session.Manager
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, sessions *session.Manager, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		sessions: sessions,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

// Status handles GET /auth/login and GET /auth/register requests. The pages
// fetch it to decide whether to render the form or send the visitor on.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r, h.logger)
	if sess == nil {
		return
	}

	resp := map[string]interface{}{"loggedIn": sess.LoggedIn()}
	if sess.LoggedIn() {
		resp["user"] = sess.User
	}

	writeJSON(w, http.StatusOK, resp)
}

// Register handles POST /auth/register requests. A successful registration
// logs the new account in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r, h.logger)
	if sess == nil {
		return
	}

	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	user, err := h.service.Register(r.Context(), &req, clientIP(r))
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	sess.SetUser(user)
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /auth/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r, h.logger)
	if sess == nil {
		return
	}

	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	user, err := h.service.Login(r.Context(), &req, sess.ID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	sess.SetUser(user)
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		respondError(w, err, h.logger)
		return
	}

	resp := map[string]interface{}{"user": user}
	if req.RedirectURI != "" {
		resp["redirect_uri"] = req.RedirectURI
	}

	writeJSON(w, http.StatusOK, resp)
}
