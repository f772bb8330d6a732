package phones

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/phonedesk/phonedesk-backend/pkg/db"
	"github.com/phonedesk/phonedesk-backend/pkg/db/models"
	"github.com/phonedesk/phonedesk-backend/pkg/enums"
	pkgerrors "github.com/phonedesk/phonedesk-backend/pkg/errors"
)

const (
	msgAlreadySold  = "phone already sold"
	msgNotSellable  = "phone must be in stock to sell"
	msgPhoneMissing = "phone not found"
)

// ComputeProfit derives profit from the two price points.
func ComputeProfit(salePrice, purchasePrice decimal.Decimal) decimal.Decimal {
	return salePrice.Sub(purchasePrice)
}

// AssignSerialIfMissing fills in a generated serial when the caller
// supplied none. Invoked explicitly, never from persistence hooks.
func AssignSerialIfMissing(phone *models.Phone, now time.Time) error {
	if phone.SerialNumber != "" {
		return nil
	}
	serial, err := GenerateSerialNumber(now)
	if err != nil {
		return err
	}
	phone.SerialNumber = serial
	return nil
}

// SellPhone performs the in_stock -> sold transition. The underlying
// update is conditional on the current status so racing sellers settle
// on exactly one winner.
func (s *service) SellPhone(ctx context.Context, ownerID, id uuid.UUID, req SellPhoneRequest) (*PhoneDTO, error) {
	if err := ValidateSell(req); err != nil {
		return nil, err
	}

	phone, err := s.repo.FindForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	if err := sellableState(phone.Status); err != nil {
		return nil, err
	}

	salePrice := phone.SalePrice
	if req.SalePrice != nil {
		salePrice = *req.SalePrice
	}
	soldDate := time.Now().UTC()
	if req.SoldDate != nil {
		soldDate = req.SoldDate.UTC()
	}

	updates := map[string]any{
		"status":     enums.PhoneStatusSold,
		"sold_date":  soldDate,
		"sale_price": salePrice,
		"profit":     ComputeProfit(salePrice, phone.PurchasePrice),
	}
	if req.Buyer != nil {
		buyer := *req.Buyer
		if phone.Buyer != nil {
			buyer = phone.Buyer.Merge(*req.Buyer)
		}
		updates["buyer_info"] = &buyer
	}

	affected, err := s.repo.MarkSold(ctx, ownerID, id, updates)
	if err != nil {
		return nil, mapStoreError(err, "db: mark phone sold")
	}
	if affected == 0 {
		// Lost a race: re-read to report the state we lost to.
		current, err := s.repo.FindForOwner(ctx, ownerID, id)
		if err != nil {
			return nil, mapLookupError(err)
		}
		if err := sellableState(current.Status); err != nil {
			return nil, err
		}
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, msgNotSellable)
	}

	updated, err := s.repo.FindForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return FromModel(updated), nil
}

func sellableState(status enums.PhoneStatus) error {
	switch status {
	case enums.PhoneStatusInStock:
		return nil
	case enums.PhoneStatusSold:
		return pkgerrors.New(pkgerrors.CodeStateConflict, msgAlreadySold).
			WithDetails(map[string]string{"reason": "AlreadySold"})
	default:
		return pkgerrors.New(pkgerrors.CodeStateConflict, msgNotSellable).
			WithDetails(map[string]string{"reason": "InvalidTransition", "status": status.String()})
	}
}

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgPhoneMissing)
	}
	return mapStoreError(err, "db: load phone")
}

func mapStoreError(err error, message string) error {
	if db.IsUnavailable(err) {
		return pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}
