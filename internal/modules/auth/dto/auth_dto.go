package dto

import "pkfit.com.br/pkfitsystem/internal/entity"

type CheckEmailInput struct {
	Email string `json:"email" binding:"required,email"`
}

type CreatePasswordInput struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CheckEmailResult is the read-only outcome of the wizard's first step.
type CheckEmailResult struct {
	Exists      bool
	HasPassword bool
	User        *entity.User
}

// UserPreview is the subset of the user shown before authentication.
type UserPreview struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  entity.Role `json:"role"`
}

type AuthResponse struct {
	User      *entity.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expires_at"`
	HomeRoute string       `json:"home_route"`
}
