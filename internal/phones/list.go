package phones

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	pkgerrors "github.com/phonedesk/phonedesk-backend/pkg/errors"
)

// SortSpec names the column to order by and the direction.
type SortSpec struct {
	Field string
	Desc  bool
}

// DefaultSort orders newest purchases first.
var DefaultSort = SortSpec{Field: "createdAt", Desc: true}

var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"purchaseDate":  "purchase_date",
	"soldDate":      "sold_date",
	"purchasePrice": "purchase_price",
	"salePrice":     "sale_price",
	"profit":        "profit",
	"modelNo":       "model_no",
}

// ParseSort resolves a user-provided sort key ("-profit", "modelNo") into a SortSpec.
func ParseSort(raw string) (SortSpec, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return DefaultSort, nil
	}
	desc := false
	if strings.HasPrefix(value, "-") {
		desc = true
		value = value[1:]
	}
	if _, ok := sortColumns[value]; !ok {
		return SortSpec{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown sort field %q", value)).
			WithDetails(map[string]string{"field": "sort"})
	}
	return SortSpec{Field: value, Desc: desc}, nil
}

func (s SortSpec) orderClause() string {
	column, ok := sortColumns[s.Field]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return column + " " + direction
}

// applyFilters translates normalized filters into gorm conditions. All
// range bounds are inclusive.
func applyFilters(tx *gorm.DB, f ListFilters) *gorm.DB {
	if f.Status != nil {
		tx = tx.Where("status = ?", *f.Status)
	}
	if model := normalizeModelNo(f.ModelNo); model != "" {
		tx = tx.Where("UPPER(model_no) LIKE ?", "%"+model+"%")
	}
	if color := strings.TrimSpace(f.Color); color != "" {
		tx = tx.Where("LOWER(color) LIKE ?", "%"+strings.ToLower(color)+"%")
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := "%" + strings.ToUpper(q) + "%"
		tx = tx.Where(
			"UPPER(model_no) LIKE ? OR imei1 LIKE ? OR imei2 LIKE ? OR UPPER(supplier_name) LIKE ? OR UPPER(serial_number) LIKE ? OR UPPER(CAST(buyer_info AS TEXT)) LIKE ?",
			pattern, "%"+q+"%", "%"+q+"%", pattern, pattern, pattern,
		)
	}
	if customer := strings.TrimSpace(f.Customer); customer != "" {
		// buyer_info is a JSON column; a cast keeps the match portable
		// between postgres and the sqlite test store.
		tx = tx.Where("UPPER(CAST(buyer_info AS TEXT)) LIKE ?", "%"+strings.ToUpper(customer)+"%")
	}
	if f.MinPurchasePrice != nil {
		tx = tx.Where("purchase_price >= ?", *f.MinPurchasePrice)
	}
	if f.MaxPurchasePrice != nil {
		tx = tx.Where("purchase_price <= ?", *f.MaxPurchasePrice)
	}
	if f.MinProfit != nil {
		tx = tx.Where("profit >= ?", *f.MinProfit)
	}
	if f.MaxProfit != nil {
		tx = tx.Where("profit <= ?", *f.MaxProfit)
	}
	if f.PurchasedFrom != nil {
		tx = tx.Where("purchase_date >= ?", *f.PurchasedFrom)
	}
	if f.PurchasedTo != nil {
		tx = tx.Where("purchase_date <= ?", *f.PurchasedTo)
	}
	if f.SoldFrom != nil {
		tx = tx.Where("sold_date >= ?", *f.SoldFrom)
	}
	if f.SoldTo != nil {
		tx = tx.Where("sold_date <= ?", *f.SoldTo)
	}
	return tx
}
