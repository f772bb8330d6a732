package phones

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phonedesk/phonedesk-backend/pkg/db"
	"github.com/phonedesk/phonedesk-backend/pkg/db/models"
	"github.com/phonedesk/phonedesk-backend/pkg/enums"
	pkgerrors "github.com/phonedesk/phonedesk-backend/pkg/errors"
	"github.com/phonedesk/phonedesk-backend/pkg/logger"
	"github.com/phonedesk/phonedesk-backend/pkg/pagination"
)

// SearchLimit caps the quick-search result set.
const SearchLimit = 20

// Service defines the behavior needed by the phone controllers.
type Service interface {
	CreatePhone(ctx context.Context, ownerID uuid.UUID, req CreatePhoneRequest) (*PhoneDTO, error)
	GetPhone(ctx context.Context, id uuid.UUID) (*PhoneDTO, error)
	GetOwnedPhone(ctx context.Context, ownerID, id uuid.UUID) (*PhoneDTO, error)
	UpdatePhone(ctx context.Context, ownerID, id uuid.UUID, req UpdatePhoneRequest) (*PhoneDTO, error)
	DeletePhone(ctx context.Context, ownerID, id uuid.UUID) error
	SellPhone(ctx context.Context, ownerID, id uuid.UUID, req SellPhoneRequest) (*PhoneDTO, error)
	ListPhones(ctx context.Context, input ListPhonesInput) (*ListPhonesResult, error)
	ListOwnedPhones(ctx context.Context, ownerID uuid.UUID, input ListPhonesInput) (*ListPhonesResult, error)
	SearchPhones(ctx context.Context, query string) ([]PhoneDTO, error)
	StatusSummary(ctx context.Context, ownerID uuid.UUID) (*StatusSummary, error)
}

type repository interface {
	Create(ctx context.Context, phone *models.Phone) (*models.Phone, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Phone, error)
	FindForOwner(ctx context.Context, ownerID, id uuid.UUID) (*models.Phone, error)
	UpdateFields(ctx context.Context, ownerID, id uuid.UUID, updates map[string]any) (int64, error)
	MarkSold(ctx context.Context, ownerID, id uuid.UUID, updates map[string]any) (int64, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (int64, error)
	List(ctx context.Context, ownerID *uuid.UUID, input ListPhonesInput) ([]models.Phone, int64, error)
	Search(ctx context.Context, query string, limit int) ([]models.Phone, error)
	CountByStatus(ctx context.Context, ownerID uuid.UUID) (*StatusSummary, error)
}

type service struct {
	repo repository
	logg *logger.Logger
}

// ServiceParams bundles the dependencies required to build a phone service.
type ServiceParams struct {
	Repo   repository
	Logger *logger.Logger
}

// NewService constructs the phone service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("phone repository is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) CreatePhone(ctx context.Context, ownerID uuid.UUID, req CreatePhoneRequest) (*PhoneDTO, error) {
	if err := ValidateCreate(req); err != nil {
		return nil, err
	}

	phone := req.toModel(ownerID, time.Now().UTC())
	if err := AssignSerialIfMissing(phone, time.Now().UTC()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assign serial")
	}

	created, err := s.repo.Create(ctx, phone)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_phones_imei1") {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateKey, "imei1 already registered").
				WithDetails(map[string]string{"field": "imei1"})
		}
		if db.IsUniqueViolation(err, "uq_phones_serial_number") {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateKey, "serial number already registered").
				WithDetails(map[string]string{"field": "serialNumber"})
		}
		return nil, mapStoreError(err, "db: create phone")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithPhoneID(ctx, created.ID.String()), "phone registered")
	}
	return FromModel(created), nil
}

func (s *service) GetPhone(ctx context.Context, id uuid.UUID) (*PhoneDTO, error) {
	phone, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return FromModel(phone), nil
}

func (s *service) GetOwnedPhone(ctx context.Context, ownerID, id uuid.UUID) (*PhoneDTO, error) {
	phone, err := s.repo.FindForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return FromModel(phone), nil
}

func (s *service) UpdatePhone(ctx context.Context, ownerID, id uuid.UUID, req UpdatePhoneRequest) (*PhoneDTO, error) {
	if err := ValidateUpdate(req); err != nil {
		return nil, err
	}

	phone, err := s.repo.FindForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, mapLookupError(err)
	}

	updates := map[string]any{}
	if req.ModelNo != nil {
		updates["model_no"] = normalizeModelNo(*req.ModelNo)
	}
	if req.IMEI2 != nil {
		updates["imei2"] = trimmedPtr(req.IMEI2)
	}
	if req.Color != nil {
		updates["color"] = strings.TrimSpace(*req.Color)
	}
	if req.SupplierName != nil {
		updates["supplier_name"] = strings.TrimSpace(*req.SupplierName)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PurchaseDate != nil {
		updates["purchase_date"] = *req.PurchaseDate
	}
	if req.PurchasePrice != nil {
		updates["purchase_price"] = *req.PurchasePrice
	}
	if req.SalePrice != nil {
		updates["sale_price"] = *req.SalePrice
	}
	// Price changes on a sold unit keep the derived profit consistent.
	if phone.Status == enums.PhoneStatusSold && (req.SalePrice != nil || req.PurchasePrice != nil) {
		sale := phone.SalePrice
		if req.SalePrice != nil {
			sale = *req.SalePrice
		}
		purchase := phone.PurchasePrice
		if req.PurchasePrice != nil {
			purchase = *req.PurchasePrice
		}
		updates["profit"] = ComputeProfit(sale, purchase)
	}
	if req.Buyer != nil {
		buyer := *req.Buyer
		if phone.Buyer != nil {
			buyer = phone.Buyer.Merge(*req.Buyer)
		}
		updates["buyer_info"] = &buyer
	}
	if len(updates) == 0 {
		return FromModel(phone), nil
	}

	if _, err := s.repo.UpdateFields(ctx, ownerID, id, updates); err != nil {
		return nil, mapStoreError(err, "db: update phone")
	}

	updated, err := s.repo.FindForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return FromModel(updated), nil
}

func (s *service) DeletePhone(ctx context.Context, ownerID, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return mapStoreError(err, "db: delete phone")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgPhoneMissing)
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithPhoneID(ctx, id.String()), "phone deleted")
	}
	return nil
}

func (s *service) ListPhones(ctx context.Context, input ListPhonesInput) (*ListPhonesResult, error) {
	return s.list(ctx, nil, input)
}

func (s *service) ListOwnedPhones(ctx context.Context, ownerID uuid.UUID, input ListPhonesInput) (*ListPhonesResult, error) {
	return s.list(ctx, &ownerID, input)
}

func (s *service) list(ctx context.Context, ownerID *uuid.UUID, input ListPhonesInput) (*ListPhonesResult, error) {
	if input.Sort.Field == "" {
		input.Sort = DefaultSort
	}
	input.Pagination = pagination.Normalize(input.Pagination)

	rows, total, err := s.repo.List(ctx, ownerID, input)
	if err != nil {
		return nil, mapStoreError(err, "db: list phones")
	}
	return &ListPhonesResult{
		Phones:     fromModels(rows),
		Pagination: pagination.MetaFor(input.Pagination, total),
	}, nil
}

func (s *service) SearchPhones(ctx context.Context, query string) ([]PhoneDTO, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required").
			WithDetails(map[string]string{"field": "query"})
	}
	rows, err := s.repo.Search(ctx, trimmed, SearchLimit)
	if err != nil {
		return nil, mapStoreError(err, "db: search phones")
	}
	return fromModels(rows), nil
}

func (s *service) StatusSummary(ctx context.Context, ownerID uuid.UUID) (*StatusSummary, error) {
	summary, err := s.repo.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, mapStoreError(err, "db: status summary")
	}
	return summary, nil
}
