package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/phonedesk/phonedesk-backend/internal/phones"
	"github.com/phonedesk/phonedesk-backend/pkg/db"
	"github.com/phonedesk/phonedesk-backend/pkg/db/models"
	"github.com/phonedesk/phonedesk-backend/pkg/enums"
	pkgerrors "github.com/phonedesk/phonedesk-backend/pkg/errors"
	"github.com/phonedesk/phonedesk-backend/pkg/logger"
	"github.com/phonedesk/phonedesk-backend/pkg/pagination"
)

const (
	msgSaleMissing = "sale not found"
	msgNotSold     = "phone is not sold"
)

// Service exposes the sold-item views and the post-sale correction path.
type Service interface {
	ListSales(ctx context.Context, ownerID uuid.UUID, input ListSalesInput) (*ListSalesResult, error)
	GetSale(ctx context.Context, ownerID, id uuid.UUID) (*phones.PhoneDTO, error)
	UpdateSale(ctx context.Context, ownerID, id uuid.UUID, req UpdateSaleRequest) (*phones.PhoneDTO, error)
}

type repository interface {
	FindForOwner(ctx context.Context, ownerID, id uuid.UUID) (*models.Phone, error)
	UpdateFields(ctx context.Context, ownerID, id uuid.UUID, updates map[string]any) (int64, error)
	ListSold(ctx context.Context, ownerID uuid.UUID, filters phones.ListFilters, params pagination.Params) ([]models.Phone, int64, error)
}

type service struct {
	repo repository
	logg *logger.Logger
}

// ServiceParams bundles the dependencies required to build a sales service.
type ServiceParams struct {
	Repo   repository
	Logger *logger.Logger
}

// NewService constructs the sales service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("phone repository is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) ListSales(ctx context.Context, ownerID uuid.UUID, input ListSalesInput) (*ListSalesResult, error) {
	input.Pagination = pagination.Normalize(input.Pagination)

	rows, total, err := s.repo.ListSold(ctx, ownerID, input.Filters, input.Pagination)
	if err != nil {
		return nil, mapStoreError(err, "db: list sales")
	}

	summary := PageSummary{
		PhonesSold:  int64(len(rows)),
		TotalSales:  decimal.Zero,
		TotalProfit: decimal.Zero,
	}
	dtos := make([]phones.PhoneDTO, 0, len(rows))
	for i := range rows {
		summary.TotalSales = summary.TotalSales.Add(rows[i].SalePrice)
		summary.TotalProfit = summary.TotalProfit.Add(rows[i].Profit)
		dtos = append(dtos, *phones.FromModel(&rows[i]))
	}

	return &ListSalesResult{
		Sales:      dtos,
		Summary:    summary,
		Pagination: pagination.MetaFor(input.Pagination, total),
	}, nil
}

func (s *service) GetSale(ctx context.Context, ownerID, id uuid.UUID) (*phones.PhoneDTO, error) {
	phone, err := s.loadSold(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return phones.FromModel(phone), nil
}

func (s *service) UpdateSale(ctx context.Context, ownerID, id uuid.UUID, req UpdateSaleRequest) (*phones.PhoneDTO, error) {
	if err := phones.ValidateSell(phones.SellPhoneRequest{
		SalePrice: req.SalePrice,
		SoldDate:  req.SoldDate,
		Buyer:     req.Buyer,
	}); err != nil {
		return nil, err
	}

	phone, err := s.repo.FindForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	if phone.Status != enums.PhoneStatusSold {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, msgNotSold).
			WithDetails(map[string]string{"status": phone.Status.String()})
	}

	updates := map[string]any{}
	if req.SalePrice != nil {
		updates["sale_price"] = *req.SalePrice
		updates["profit"] = phones.ComputeProfit(*req.SalePrice, phone.PurchasePrice)
	}
	if req.SoldDate != nil {
		updates["sold_date"] = req.SoldDate.UTC()
	}
	if req.Buyer != nil {
		buyer := *req.Buyer
		if phone.Buyer != nil {
			buyer = phone.Buyer.Merge(*req.Buyer)
		}
		updates["buyer_info"] = &buyer
	}
	if len(updates) == 0 {
		return phones.FromModel(phone), nil
	}

	if _, err := s.repo.UpdateFields(ctx, ownerID, id, updates); err != nil {
		return nil, mapStoreError(err, "db: update sale")
	}

	updated, err := s.loadSold(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithPhoneID(ctx, id.String()), "sale updated")
	}
	return phones.FromModel(updated), nil
}

// loadSold fetches an owner's phone and hides anything not sold behind
// the same not-found answer, so the sales surface never leaks stock.
func (s *service) loadSold(ctx context.Context, ownerID, id uuid.UUID) (*models.Phone, error) {
	phone, err := s.repo.FindForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	if phone.Status != enums.PhoneStatusSold {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgSaleMissing)
	}
	return phone, nil
}

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgSaleMissing)
	}
	return mapStoreError(err, "db: load sale")
}

func mapStoreError(err error, message string) error {
	if db.IsUnavailable(err) {
		return pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}
