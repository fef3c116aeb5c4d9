package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/skillsage/internal/logger"
	"github.com/jonathan/skillsage/internal/server/middleware"
	"github.com/jonathan/skillsage/internal/session"
	"github.com/jonathan/skillsage/internal/types"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	sessions    session.Store
	validator   *validator.Validate
	log         *logger.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService, sessions session.Store, log *logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		sessions:    sessions,
		validator:   types.NewValidator(),
		log:         log,
	}
}

// Register creates an account, starts a session seeded with the user's name
// and email, and returns a token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, map[string]string{"error": extractValidationErrors(err)})
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	h.issue(w, r, http.StatusCreated, user)
}

// Login verifies credentials, merges the account's name and email into the
// session profile, and returns a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, map[string]string{"error": extractValidationErrors(err)})
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		var invalid *ErrInvalidCredentials
		if errors.As(err, &invalid) {
			h.log.Warn("login rejected", "email", req.Email)
		}
		writeError(w, h.log, err)
		return
	}

	h.issue(w, r, http.StatusOK, user)
}

// issue seeds the session profile and writes the token response.
func (h *AuthHandler) issue(w http.ResponseWriter, r *http.Request, status int, user *types.User) {
	name, email := user.Name, user.Email
	if _, err := h.sessions.Update(r.Context(), user.ID, func(s *session.Session) error {
		s.MergeProfile(types.ProfilePatch{Name: &name, Email: &email})
		return nil
	}); err != nil {
		writeError(w, h.log, fmt.Errorf("failed to start session: %w", err))
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	h.log.Info("session started", "user_id", user.ID)
	writeJSON(w, h.log, status, types.LoginResponse{User: user, Token: token})
}

// Logout discards the session: profile, questions and dashboard.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeJSON(w, h.log, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	if err := h.sessions.Delete(r.Context(), userID); err != nil {
		writeError(w, h.log, fmt.Errorf("failed to end session: %w", err))
		return
	}

	h.log.Info("session ended", "user_id", userID)
	writeJSON(w, h.log, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeJSON(w, h.log, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, user)
}

// UpdatePassword changes the authenticated user's password.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeJSON(w, h.log, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}
	h.UpdatePasswordWithUserID(w, r, userID)
}

// UpdatePasswordWithUserID handles password update requests with an explicit user ID.
func (h *AuthHandler) UpdatePasswordWithUserID(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req types.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, map[string]string{"error": extractValidationErrors(err)})
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		// first error only
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}

// validationError converts validator output into an ErrValidation.
func validationError(err error) *ErrValidation {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: ve.Tag()}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}
