package phones

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phonedesk/phonedesk-backend/pkg/db/models"
	dbtypes "github.com/phonedesk/phonedesk-backend/pkg/db/types"
	"github.com/phonedesk/phonedesk-backend/pkg/enums"
	"github.com/phonedesk/phonedesk-backend/pkg/pagination"
)

// CreatePhoneRequest is the payload for registering a purchased unit.
type CreatePhoneRequest struct {
	ModelNo       string           `json:"modelNo" validate:"required,min=2,max=100"`
	IMEI1         string           `json:"imei1" validate:"required,imei"`
	IMEI2         *string          `json:"imei2,omitempty" validate:"omitempty,imei"`
	Color         string           `json:"color" validate:"required,min=2,max=50"`
	PurchasePrice decimal.Decimal  `json:"purchasePrice"`
	SalePrice     *decimal.Decimal `json:"salePrice,omitempty"`
	SupplierName  string           `json:"supplierName" validate:"required,min=2,max=150"`
	Description   *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	PurchaseDate  *time.Time       `json:"purchaseDate,omitempty"`
	SerialNumber  *string          `json:"serialNumber,omitempty"`
}

// UpdatePhoneRequest carries the mutable fields; nil means "leave alone".
type UpdatePhoneRequest struct {
	ModelNo       *string            `json:"modelNo,omitempty" validate:"omitempty,min=2,max=100"`
	IMEI2         *string            `json:"imei2,omitempty" validate:"omitempty,imei"`
	Color         *string            `json:"color,omitempty" validate:"omitempty,min=2,max=50"`
	PurchasePrice *decimal.Decimal   `json:"purchasePrice,omitempty"`
	SalePrice     *decimal.Decimal   `json:"salePrice,omitempty"`
	SupplierName  *string            `json:"supplierName,omitempty" validate:"omitempty,min=2,max=150"`
	Description   *string            `json:"description,omitempty" validate:"omitempty,max=500"`
	PurchaseDate  *time.Time         `json:"purchaseDate,omitempty"`
	Buyer         *dbtypes.BuyerInfo `json:"buyerInfo,omitempty"`
}

// SellPhoneRequest is the lifecycle transition payload.
type SellPhoneRequest struct {
	SalePrice *decimal.Decimal   `json:"salePrice,omitempty"`
	SoldDate  *time.Time         `json:"soldDate,omitempty"`
	Buyer     *dbtypes.BuyerInfo `json:"buyerInfo,omitempty"`
}

// PhoneImageDTO is the transport shape of one stored attachment.
type PhoneImageDTO struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	OriginalName string    `json:"originalName,omitempty"`
	MimeType     string    `json:"mimeType,omitempty"`
	SizeBytes    int64     `json:"sizeBytes,omitempty"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// PhoneDTO is the transport shape of one tracked unit.
type PhoneDTO struct {
	ID            uuid.UUID          `json:"id"`
	ModelNo       string             `json:"modelNo"`
	IMEI1         string             `json:"imei1"`
	IMEI2         *string            `json:"imei2,omitempty"`
	Color         string             `json:"color"`
	PurchasePrice decimal.Decimal    `json:"purchasePrice"`
	SalePrice     decimal.Decimal    `json:"salePrice"`
	Profit        decimal.Decimal    `json:"profit"`
	SupplierName  string             `json:"supplierName"`
	Description   *string            `json:"description,omitempty"`
	Status        enums.PhoneStatus  `json:"status"`
	PurchaseDate  time.Time          `json:"purchaseDate"`
	SoldDate      *time.Time         `json:"soldDate,omitempty"`
	Buyer         *dbtypes.BuyerInfo `json:"buyerInfo,omitempty"`
	SerialNumber  string             `json:"serialNumber"`
	Images        []PhoneImageDTO    `json:"images,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// ListFilters describe the supported filter knobs for phone listings.
type ListFilters struct {
	Status           *enums.PhoneStatus
	ModelNo          string
	Color            string
	Customer         string
	Query            string
	MinPurchasePrice *decimal.Decimal
	MaxPurchasePrice *decimal.Decimal
	MinProfit        *decimal.Decimal
	MaxProfit        *decimal.Decimal
	PurchasedFrom    *time.Time
	PurchasedTo      *time.Time
	SoldFrom         *time.Time
	SoldTo           *time.Time
}

// ListPhonesInput captures the inputs needed to paginate/filter phones.
type ListPhonesInput struct {
	Filters    ListFilters
	Sort       SortSpec
	Pagination pagination.Params
}

// ListPhonesResult bundles a page of phones with its pagination metadata.
type ListPhonesResult struct {
	Phones     []PhoneDTO
	Pagination pagination.Meta
}

// StatusGroup is the per-status slice of an owner's inventory.
type StatusGroup struct {
	Count         int64           `json:"count"`
	TotalPurchase decimal.Decimal `json:"totalPurchase"`
	TotalSale     decimal.Decimal `json:"totalSale"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
}

// StatusSummary reports stock counts and money totals per lifecycle status.
type StatusSummary struct {
	Total      int64                             `json:"total"`
	ByStatus   map[enums.PhoneStatus]StatusGroup `json:"byStatus"`
	StockValue decimal.Decimal                   `json:"stockValue"`
}

func FromModel(p *models.Phone) *PhoneDTO {
	if p == nil {
		return nil
	}

	images := make([]PhoneImageDTO, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, PhoneImageDTO{
			ID:           img.ID,
			URL:          img.URL,
			OriginalName: img.OriginalName,
			MimeType:     img.MimeType,
			SizeBytes:    img.SizeBytes,
			UploadedAt:   img.UploadedAt,
		})
	}

	return &PhoneDTO{
		ID:            p.ID,
		ModelNo:       p.ModelNo,
		IMEI1:         p.IMEI1,
		IMEI2:         p.IMEI2,
		Color:         p.Color,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Profit:        p.Profit,
		SupplierName:  p.SupplierName,
		Description:   p.Description,
		Status:        p.Status,
		PurchaseDate:  p.PurchaseDate,
		SoldDate:      p.SoldDate,
		Buyer:         p.Buyer,
		SerialNumber:  p.SerialNumber,
		Images:        images,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func fromModels(rows []models.Phone) []PhoneDTO {
	out := make([]PhoneDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func (c CreatePhoneRequest) toModel(ownerID uuid.UUID, now time.Time) *models.Phone {
	purchaseDate := now
	if c.PurchaseDate != nil {
		purchaseDate = *c.PurchaseDate
	}
	salePrice := decimal.Zero
	if c.SalePrice != nil {
		salePrice = *c.SalePrice
	}
	serial := ""
	if c.SerialNumber != nil {
		serial = strings.TrimSpace(*c.SerialNumber)
	}

	return &models.Phone{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		ModelNo:       normalizeModelNo(c.ModelNo),
		IMEI1:         strings.TrimSpace(c.IMEI1),
		IMEI2:         trimmedPtr(c.IMEI2),
		Color:         strings.TrimSpace(c.Color),
		PurchasePrice: c.PurchasePrice,
		SalePrice:     salePrice,
		Profit:        decimal.Zero,
		SupplierName:  strings.TrimSpace(c.SupplierName),
		Description:   c.Description,
		Status:        enums.PhoneStatusInStock,
		PurchaseDate:  purchaseDate,
		SerialNumber:  serial,
	}
}

func normalizeModelNo(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func trimmedPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
