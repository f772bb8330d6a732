package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an owner account; every phone belongs to exactly one user.
type User struct {
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`

	Name         string `gorm:"column:name;not null"`
	Email        string `gorm:"column:email;not null;uniqueIndex:uq_users_email"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Mobile       string `gorm:"column:mobile;not null;uniqueIndex:uq_users_mobile"`

	ShopName  string  `gorm:"column:shop_name"`
	Address   *string `gorm:"column:address"`
	GSTNumber *string `gorm:"column:gst_number"`

	IsActive    bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name.
func (User) TableName() string {
	return "users"
}
