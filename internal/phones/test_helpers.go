package phones

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/phonedesk/phonedesk-backend/pkg/db/models"
	"github.com/phonedesk/phonedesk-backend/pkg/enums"
)

func mustCreateTestOwner(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Repo Tester",
		Email:        fmt.Sprintf("pd_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		Mobile:       uuid.NewString()[:12],
		ShopName:     "Repo Mobiles",
		IsActive:     true,
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create owner: %v", err)
	}
	return user
}

func mustCreateTestPhone(t *testing.T, tx *gorm.DB, ownerID uuid.UUID, mutate func(*models.Phone)) *models.Phone {
	t.Helper()
	phone := &models.Phone{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		ModelNo:       "GALAXY S24",
		IMEI1:         randomIMEI(),
		Color:         "Black",
		PurchasePrice: decimal.NewFromInt(30000),
		SalePrice:     decimal.Zero,
		Profit:        decimal.Zero,
		SupplierName:  "Acme Distributors",
		Status:        enums.PhoneStatusInStock,
		PurchaseDate:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		SerialNumber:  fmt.Sprintf("PH-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:5]),
	}
	if mutate != nil {
		mutate(phone)
	}
	if err := tx.Create(phone).Error; err != nil {
		t.Fatalf("create phone: %v", err)
	}
	return phone
}

func randomIMEI() string {
	id := uuid.New()
	digits := make([]byte, 15)
	for i := range digits {
		digits[i] = '0' + id[i]%10
	}
	return string(digits)
}
