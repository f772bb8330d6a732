package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phonedesk/phonedesk-backend/pkg/db/types"
	"github.com/phonedesk/phonedesk-backend/pkg/enums"
)

// Phone represents one physical unit tracked from purchase to sale.
type Phone struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index"`

	ModelNo string  `gorm:"column:model_no;not null;index"`
	IMEI1   string  `gorm:"column:imei1;not null;uniqueIndex:uq_phones_imei1"`
	IMEI2   *string `gorm:"column:imei2"`
	Color   string  `gorm:"column:color;not null"`

	PurchasePrice decimal.Decimal `gorm:"column:purchase_price;type:numeric(12,2);not null"`
	SalePrice     decimal.Decimal `gorm:"column:sale_price;type:numeric(12,2);not null"`
	Profit        decimal.Decimal `gorm:"column:profit;type:numeric(12,2);not null;default:0"`

	SupplierName string  `gorm:"column:supplier_name;not null"`
	Description  *string `gorm:"column:description"`

	Status       enums.PhoneStatus `gorm:"column:status;not null;default:in_stock;index"`
	PurchaseDate time.Time         `gorm:"column:purchase_date;not null"`
	SoldDate     *time.Time        `gorm:"column:sold_date;index"`
	Buyer        *types.BuyerInfo  `gorm:"column:buyer_info;type:jsonb"`

	SerialNumber string `gorm:"column:serial_number;not null;uniqueIndex:uq_phones_serial_number"`

	Images []PhoneImage `gorm:"foreignKey:PhoneID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name used across raw scopes.
func (Phone) TableName() string {
	return "phones"
}
