package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateUserRequest represents the request to create a new user with password authentication.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User represents a user account for API responses (avoids import cycle with db package).
type User struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PasswordSet bool      `json:"password_set"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoginResponse represents the login/register response with user data and authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpdatePasswordRequest represents a password update request.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// AnswersRequest records questionnaire answers keyed by question id.
type AnswersRequest struct {
	Answers map[int]string `json:"answers" validate:"required,min=1,dive,required"`
}

// NewValidator returns a validator with the catalog tags ("branch", "year") registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("branch", func(fl validator.FieldLevel) bool {
		return IsBranch(fl.Field().String())
	})
	_ = v.RegisterValidation("year", func(fl validator.FieldLevel) bool {
		return IsYear(fl.Field().String())
	})
	return v
}

var validate = NewValidator()

// Validate checks the registration fields.
func (r *CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

// Validate checks the login fields.
func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

func (r *UpdatePasswordRequest) Validate() error {
	return validate.Struct(r)
}

// Validate requires at least one non-empty answer.
func (r *AnswersRequest) Validate() error {
	return validate.Struct(r)
}

// Validate checks the patch's enum fields against the catalog.
func (p *ProfilePatch) Validate() error {
	return validate.Struct(p)
}
