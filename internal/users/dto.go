package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/phonedesk/phonedesk-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Mobile      string     `json:"mobile"`
	ShopName    string     `json:"shopName"`
	Address     *string    `json:"address,omitempty"`
	GSTNumber   *string    `json:"gstNumber,omitempty"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new owner account.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Mobile       string
	ShopName     string
	Address      *string
	GSTNumber    *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Mobile:      u.Mobile,
		ShopName:    u.ShopName,
		Address:     u.Address,
		GSTNumber:   u.GSTNumber,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Mobile:       c.Mobile,
		ShopName:     c.ShopName,
		Address:      c.Address,
		GSTNumber:    c.GSTNumber,
		IsActive:     true,
	}
}
