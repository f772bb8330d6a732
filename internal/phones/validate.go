package phones

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	pkgerrors "github.com/phonedesk/phonedesk-backend/pkg/errors"
)

// FieldViolation names one invalid field and why it was rejected.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (v FieldViolation) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

// ValidateCreate checks every field of a create payload and reports all
// violations at once rather than stopping at the first.
func ValidateCreate(req CreatePhoneRequest) error {
	var errs error

	if strings.TrimSpace(req.ModelNo) == "" {
		errs = multierr.Append(errs, FieldViolation{Field: "modelNo", Reason: "is required"})
	}
	errs = multierr.Append(errs, checkIMEI("imei1", req.IMEI1, true))
	if req.IMEI2 != nil {
		errs = multierr.Append(errs, checkIMEI("imei2", *req.IMEI2, false))
	}
	if strings.TrimSpace(req.Color) == "" {
		errs = multierr.Append(errs, FieldViolation{Field: "color", Reason: "is required"})
	}
	if strings.TrimSpace(req.SupplierName) == "" {
		errs = multierr.Append(errs, FieldViolation{Field: "supplierName", Reason: "is required"})
	}
	errs = multierr.Append(errs, checkNonNegative("purchasePrice", &req.PurchasePrice))
	if req.SalePrice == nil {
		errs = multierr.Append(errs, FieldViolation{Field: "salePrice", Reason: "is required"})
	} else {
		errs = multierr.Append(errs, checkNonNegative("salePrice", req.SalePrice))
	}
	if req.SerialNumber != nil && strings.TrimSpace(*req.SerialNumber) != "" && !IsSerialNumber(strings.TrimSpace(*req.SerialNumber)) {
		errs = multierr.Append(errs, FieldViolation{Field: "serialNumber", Reason: "must match PH-<millis>-<suffix>"})
	}
	errs = multierr.Append(errs, checkDescription(req.Description))

	return violationsError(errs)
}

// ValidateUpdate checks the provided (non-nil) fields of a partial update.
func ValidateUpdate(req UpdatePhoneRequest) error {
	var errs error

	if req.ModelNo != nil && strings.TrimSpace(*req.ModelNo) == "" {
		errs = multierr.Append(errs, FieldViolation{Field: "modelNo", Reason: "must not be empty"})
	}
	if req.IMEI2 != nil {
		errs = multierr.Append(errs, checkIMEI("imei2", *req.IMEI2, false))
	}
	if req.Color != nil && strings.TrimSpace(*req.Color) == "" {
		errs = multierr.Append(errs, FieldViolation{Field: "color", Reason: "must not be empty"})
	}
	if req.SupplierName != nil && strings.TrimSpace(*req.SupplierName) == "" {
		errs = multierr.Append(errs, FieldViolation{Field: "supplierName", Reason: "must not be empty"})
	}
	errs = multierr.Append(errs, checkNonNegative("purchasePrice", req.PurchasePrice))
	errs = multierr.Append(errs, checkNonNegative("salePrice", req.SalePrice))
	errs = multierr.Append(errs, checkDescription(req.Description))

	return violationsError(errs)
}

// ValidateSell checks the sell transition payload. A sold row must
// always carry its buyer, so the buyer name, mobile, and sale price
// are mandatory here even though they are optional elsewhere.
func ValidateSell(req SellPhoneRequest) error {
	var errs error
	if req.SalePrice == nil {
		errs = multierr.Append(errs, FieldViolation{Field: "salePrice", Reason: "is required"})
	} else {
		errs = multierr.Append(errs, checkNonNegative("salePrice", req.SalePrice))
	}
	if req.Buyer == nil {
		errs = multierr.Append(errs, FieldViolation{Field: "buyerInfo", Reason: "is required"})
		return violationsError(errs)
	}
	if strings.TrimSpace(req.Buyer.CustomerName) == "" {
		errs = multierr.Append(errs, FieldViolation{Field: "buyerInfo.customerName", Reason: "is required"})
	}
	if strings.TrimSpace(req.Buyer.CustomerMobile) == "" {
		errs = multierr.Append(errs, FieldViolation{Field: "buyerInfo.customerMobile", Reason: "is required"})
	}
	if req.Buyer.PaymentMethod != "" && !req.Buyer.PaymentMethod.IsValid() {
		errs = multierr.Append(errs, FieldViolation{Field: "buyerInfo.paymentMethod", Reason: "must be online or cash"})
	}
	errs = multierr.Append(errs, checkNonNegative("buyerInfo.exchangePrice", req.Buyer.ExchangePrice))
	errs = multierr.Append(errs, checkNonNegative("buyerInfo.cashAmount", req.Buyer.CashAmount))
	errs = multierr.Append(errs, checkNonNegative("buyerInfo.onlineAmount", req.Buyer.OnlineAmount))
	return violationsError(errs)
}

// IsValidIMEI reports whether the value is exactly 15 digits.
func IsValidIMEI(value string) bool {
	if len(value) != 15 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func checkIMEI(field, value string, required bool) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if required {
			return FieldViolation{Field: field, Reason: "is required"}
		}
		return nil
	}
	if !IsValidIMEI(trimmed) {
		return FieldViolation{Field: field, Reason: "must be exactly 15 digits"}
	}
	return nil
}

const descriptionMaxLen = 500

func checkDescription(value *string) error {
	if value == nil {
		return nil
	}
	if utf8.RuneCountInString(*value) > descriptionMaxLen {
		return FieldViolation{Field: "description", Reason: fmt.Sprintf("must be at most %d characters", descriptionMaxLen)}
	}
	return nil
}

func checkNonNegative(field string, value *decimal.Decimal) error {
	if value == nil {
		return nil
	}
	if value.IsNegative() {
		return FieldViolation{Field: field, Reason: "must not be negative"}
	}
	return nil
}

func violationsError(errs error) error {
	if errs == nil {
		return nil
	}
	all := multierr.Errors(errs)
	violations := make([]FieldViolation, 0, len(all))
	for _, err := range all {
		if v, ok := err.(FieldViolation); ok {
			violations = append(violations, v)
		} else {
			violations = append(violations, FieldViolation{Field: "", Reason: err.Error()})
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid phone payload").WithDetails(violations)
}
