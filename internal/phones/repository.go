package phones

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/phonedesk/phonedesk-backend/pkg/db/models"
	"github.com/phonedesk/phonedesk-backend/pkg/enums"
	"github.com/phonedesk/phonedesk-backend/pkg/pagination"
)

// Repository wires together phone persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ownerScope partitions every owner-facing query. Public read paths do
// not use it on purpose.
func ownerScope(ownerID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("owner_id = ?", ownerID)
	}
}

// Create inserts a new phone row.
func (r *Repository) Create(ctx context.Context, phone *models.Phone) (*models.Phone, error) {
	if err := r.db.WithContext(ctx).Create(phone).Error; err != nil {
		return nil, err
	}
	return phone, nil
}

// FindByID loads a phone with its images, regardless of owner.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Phone, error) {
	var phone models.Phone
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("uploaded_at ASC")
		}).
		First(&phone, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &phone, nil
}

// FindForOwner loads a phone restricted to the owner's partition.
func (r *Repository) FindForOwner(ctx context.Context, ownerID, id uuid.UUID) (*models.Phone, error) {
	var phone models.Phone
	err := r.db.WithContext(ctx).
		Scopes(ownerScope(ownerID)).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("uploaded_at ASC")
		}).
		First(&phone, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &phone, nil
}

// UpdateFields applies column updates within the owner's partition and
// reports how many rows matched.
func (r *Repository) UpdateFields(ctx context.Context, ownerID, id uuid.UUID, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Phone{}).
		Scopes(ownerScope(ownerID)).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// MarkSold flips status atomically: the update only lands when the row
// is still in stock, so concurrent sellers cannot both win.
func (r *Repository) MarkSold(ctx context.Context, ownerID, id uuid.UUID, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Phone{}).
		Scopes(ownerScope(ownerID)).
		Where("id = ? AND status = ?", id, enums.PhoneStatusInStock).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// Delete removes a phone within the owner's partition.
func (r *Repository) Delete(ctx context.Context, ownerID, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(ownerScope(ownerID)).
		Where("id = ?", id).
		Delete(&models.Phone{})
	return res.RowsAffected, res.Error
}

// List returns one page of phones plus the unpaginated total.
func (r *Repository) List(ctx context.Context, ownerID *uuid.UUID, input ListPhonesInput) ([]models.Phone, int64, error) {
	params := pagination.Normalize(input.Pagination)

	base := r.db.WithContext(ctx).Model(&models.Phone{})
	if ownerID != nil {
		base = base.Scopes(ownerScope(*ownerID))
	}
	base = applyFilters(base, input.Filters)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Phone
	err := base.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("uploaded_at ASC")
		}).
		Order(input.Sort.orderClause()).
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Search performs a capped substring search over model and IMEI fields.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]models.Phone, error) {
	var rows []models.Phone
	err := applyFilters(r.db.WithContext(ctx).Model(&models.Phone{}), ListFilters{Query: query}).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

// CountByStatus aggregates per-status counts and money totals plus the
// purchase value still held in stock. Profit is reported only for the
// sold group; other statuses always show zero.
func (r *Repository) CountByStatus(ctx context.Context, ownerID uuid.UUID) (*StatusSummary, error) {
	type statusRow struct {
		Status        enums.PhoneStatus
		Count         int64
		TotalPurchase decimal.NullDecimal
		TotalSale     decimal.NullDecimal
		TotalProfit   decimal.NullDecimal
	}
	var rows []statusRow
	err := r.db.WithContext(ctx).
		Model(&models.Phone{}).
		Scopes(ownerScope(ownerID)).
		Select("status, COUNT(*) AS count, " +
			"COALESCE(SUM(purchase_price), 0) AS total_purchase, " +
			"COALESCE(SUM(sale_price), 0) AS total_sale, " +
			"COALESCE(SUM(profit), 0) AS total_profit").
		Group("status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	summary := &StatusSummary{
		ByStatus:   make(map[enums.PhoneStatus]StatusGroup, len(rows)),
		StockValue: decimal.Zero,
	}
	for _, row := range rows {
		group := StatusGroup{
			Count:         row.Count,
			TotalPurchase: nullDecimalOrZero(row.TotalPurchase),
			TotalSale:     nullDecimalOrZero(row.TotalSale),
			TotalProfit:   decimal.Zero,
		}
		if row.Status == enums.PhoneStatusSold {
			group.TotalProfit = nullDecimalOrZero(row.TotalProfit)
		}
		if row.Status == enums.PhoneStatusInStock {
			summary.StockValue = group.TotalPurchase
		}
		summary.ByStatus[row.Status] = group
		summary.Total += row.Count
	}
	return summary, nil
}

func nullDecimalOrZero(d decimal.NullDecimal) decimal.Decimal {
	if d.Valid {
		return d.Decimal
	}
	return decimal.Zero
}

// ListSold returns the owner's sold phones matching the filters, ordered
// by sold date descending, newest first.
func (r *Repository) ListSold(ctx context.Context, ownerID uuid.UUID, filters ListFilters, params pagination.Params) ([]models.Phone, int64, error) {
	sold := enums.PhoneStatusSold
	filters.Status = &sold

	base := applyFilters(
		r.db.WithContext(ctx).Model(&models.Phone{}).Scopes(ownerScope(ownerID)),
		filters,
	)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params = pagination.Normalize(params)
	var rows []models.Phone
	err := base.
		Order("sold_date DESC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// AllSold fetches the owner's entire sold set within the optional bounds,
// oldest sale first. The aggregation engine reduces it in memory.
func (r *Repository) AllSold(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]models.Phone, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Phone{}).
		Scopes(ownerScope(ownerID)).
		Where("status = ?", enums.PhoneStatusSold)
	if from != nil {
		tx = tx.Where("sold_date >= ?", *from)
	}
	if to != nil {
		tx = tx.Where("sold_date <= ?", *to)
	}

	var rows []models.Phone
	err := tx.Order("sold_date ASC, created_at ASC").Find(&rows).Error
	return rows, err
}

// AddImages appends attachment rows for a phone.
func (r *Repository) AddImages(ctx context.Context, images []models.PhoneImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

// FindImage loads one attachment row, verifying it belongs to the phone.
func (r *Repository) FindImage(ctx context.Context, phoneID, imageID uuid.UUID) (*models.PhoneImage, error) {
	var image models.PhoneImage
	err := r.db.WithContext(ctx).
		First(&image, "id = ? AND phone_id = ?", imageID, phoneID).
		Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// DeleteImage removes one attachment row.
func (r *Repository) DeleteImage(ctx context.Context, phoneID, imageID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND phone_id = ?", imageID, phoneID).
		Delete(&models.PhoneImage{})
	return res.RowsAffected, res.Error
}
