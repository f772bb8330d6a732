package auth

import (
	"github.com/phonedesk/phonedesk-backend/internal/users"
)

// RegisterRequest contains the payload required for onboarding a shop owner.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Mobile   string  `json:"mobile" validate:"required,min=7,max=15"`
	ShopName string  `json:"shopName" validate:"required,min=2,max=200"`
	Address  *string `json:"address,omitempty"`
	GSTIN    *string `json:"gstNumber,omitempty"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair bundles the freshly minted access and refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterResponse returns the created owner account and their first session.
type RegisterResponse struct {
	TokenPair
	User *users.UserDTO `json:"user"`
}

// LoginResponse contains the tokens and user produced by a successful login.
type LoginResponse struct {
	TokenPair
	User *users.UserDTO `json:"user"`
}

// UpdateProfileRequest carries the mutable owner profile fields.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	ShopName *string `json:"shopName,omitempty" validate:"omitempty,min=2,max=200"`
	Address  *string `json:"address,omitempty"`
	GSTIN    *string `json:"gstNumber,omitempty"`
}

// ChangePasswordRequest carries the credential rotation payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}
