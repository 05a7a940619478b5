package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/tanviarora/moodlog-backend/internal/middleware"
	"github.com/tanviarora/moodlog-backend/internal/repo"
	"github.com/tanviarora/moodlog-backend/internal/services"
	"github.com/tanviarora/moodlog-backend/pkg/utils"
)

// AuthHandler serves registration, login, logout and the session probe.
type AuthHandler struct {
	Users    *repo.UserRepo
	Sessions *services.SessionStore
	// SecureCookies marks session cookies Secure; enable in production.
	SecureCookies bool
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account. 409 when the username is taken.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateUsername(req.Username); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Password) < 8 {
		JSONError(w, "password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	username := utils.NormalizeUsername(req.Username)

	_, err := h.Users.GetByUsername(r.Context(), username)
	if err == nil {
		JSONError(w, "username is already taken", http.StatusConflict)
		return
	}
	if err != sql.ErrNoRows {
		slog.Error("register: lookup failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		slog.Error("register: hash failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.Users.Create(r.Context(), username, hash)
	if err != nil {
		// A concurrent registration can slip past the lookup above; the
		// unique constraint is the authority.
		if repo.IsUniqueViolation(err) {
			JSONError(w, "username is already taken", http.StatusConflict)
			return
		}
		slog.Error("register: insert failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":         user.ID,
		"username":   user.Username,
		"created_at": user.CreatedAt,
	})
}

// Login verifies credentials and establishes a session cookie.
// Unknown username and wrong password return the same 401 body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		JSONError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), utils.NormalizeUsername(req.Username))
	if err == sql.ErrNoRows {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		slog.Error("login: lookup failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	ok, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.Sessions.Create(r.Context(), user.ID)
	if err != nil {
		slog.Error("login: session create failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(services.SessionDuration),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Logout invalidates the current session and redirects to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		if err := h.Sessions.Invalidate(r.Context(), token); err != nil {
			slog.Warn("logout: session invalidate failed", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Me returns the authenticated user's identity. Requires a session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	user, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		slog.Error("me: lookup failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
	})
}
