package phones

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	dbtypes "github.com/phonedesk/phonedesk-backend/pkg/db/types"
	pkgerrors "github.com/phonedesk/phonedesk-backend/pkg/errors"
)

func TestValidateCreateAccumulatesViolations(t *testing.T) {
	negative := decimal.NewFromInt(-1)
	badIMEI := "12345"
	err := ValidateCreate(CreatePhoneRequest{
		ModelNo:       "PIXEL 9",
		IMEI1:         "abc",
		IMEI2:         &badIMEI,
		Color:         "Obsidian",
		PurchasePrice: negative,
		SupplierName:  "Metro Wholesale",
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	violations, ok := pkgerrors.As(err).Details().([]FieldViolation)
	if !ok {
		t.Fatalf("expected field violations, got %v", pkgerrors.As(err).Details())
	}
	fields := map[string]bool{}
	for _, v := range violations {
		fields[v.Field] = true
	}
	for _, want := range []string{"imei1", "imei2", "purchasePrice", "salePrice"} {
		if !fields[want] {
			t.Fatalf("expected violation for %s, got %v", want, violations)
		}
	}
}

func TestValidateCreateAcceptsCleanPayload(t *testing.T) {
	listPrice := decimal.NewFromInt(75000)
	err := ValidateCreate(CreatePhoneRequest{
		ModelNo:       "PIXEL 9",
		IMEI1:         "356938035643809",
		Color:         "Obsidian",
		PurchasePrice: decimal.NewFromInt(60000),
		SalePrice:     &listPrice,
		SupplierName:  "Metro Wholesale",
	})
	if err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestValidateSellRequiresBuyerAndPrice(t *testing.T) {
	err := ValidateSell(SellPhoneRequest{})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := violationFields(t, err)
	if !fields["salePrice"] || !fields["buyerInfo"] {
		t.Fatalf("expected salePrice and buyerInfo violations, got %v", fields)
	}

	salePrice := decimal.NewFromInt(25000)
	err = ValidateSell(SellPhoneRequest{
		SalePrice: &salePrice,
		Buyer:     &dbtypes.BuyerInfo{CustomerAddress: "12 MG Road"},
	})
	fields = violationFields(t, err)
	if !fields["buyerInfo.customerName"] || !fields["buyerInfo.customerMobile"] {
		t.Fatalf("expected buyer name and mobile violations, got %v", fields)
	}
}

func TestValidateSellAcceptsCompletePayload(t *testing.T) {
	salePrice := decimal.NewFromInt(25000)
	err := ValidateSell(SellPhoneRequest{
		SalePrice: &salePrice,
		Buyer:     &dbtypes.BuyerInfo{CustomerName: "Asha", CustomerMobile: "9876543210"},
	})
	if err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestValidateSellRejectsBadPayment(t *testing.T) {
	salePrice := decimal.NewFromInt(25000)
	err := ValidateSell(SellPhoneRequest{
		SalePrice: &salePrice,
		Buyer:     &dbtypes.BuyerInfo{CustomerName: "Asha", CustomerMobile: "9876543210", PaymentMethod: "barter"},
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateSellRejectsNegativeAmounts(t *testing.T) {
	negative := decimal.NewFromInt(-100)
	err := ValidateSell(SellPhoneRequest{
		SalePrice: &negative,
		Buyer:     &dbtypes.BuyerInfo{CustomerName: "Asha", CustomerMobile: "9876543210", CashAmount: &negative},
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	violations, ok := pkgerrors.As(err).Details().([]FieldViolation)
	if !ok || len(violations) != 2 {
		t.Fatalf("expected two violations, got %v", pkgerrors.As(err).Details())
	}
}

func TestValidateDescriptionLength(t *testing.T) {
	listPrice := decimal.NewFromInt(75000)
	base := CreatePhoneRequest{
		ModelNo:       "PIXEL 9",
		IMEI1:         "356938035643809",
		Color:         "Obsidian",
		PurchasePrice: decimal.NewFromInt(60000),
		SalePrice:     &listPrice,
		SupplierName:  "Metro Wholesale",
	}

	atLimit := strings.Repeat("a", 500)
	base.Description = &atLimit
	if err := ValidateCreate(base); err != nil {
		t.Fatalf("500-character description should pass, got %v", err)
	}

	tooLong := strings.Repeat("a", 501)
	base.Description = &tooLong
	err := ValidateCreate(base)
	if !violationFields(t, err)["description"] {
		t.Fatalf("expected description violation, got %v", err)
	}

	err = ValidateUpdate(UpdatePhoneRequest{Description: &tooLong})
	if !violationFields(t, err)["description"] {
		t.Fatalf("expected description violation on update, got %v", err)
	}
}

func violationFields(t *testing.T, err error) map[string]bool {
	t.Helper()
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	violations, ok := pkgerrors.As(err).Details().([]FieldViolation)
	if !ok {
		t.Fatalf("expected field violations, got %v", pkgerrors.As(err).Details())
	}
	fields := map[string]bool{}
	for _, v := range violations {
		fields[v.Field] = true
	}
	return fields
}

func TestIsValidIMEI(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"356938035643809", true},
		{"35693803564380", false},
		{"3569380356438090", false},
		{"35693803564380a", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := IsValidIMEI(tc.value); got != tc.want {
			t.Fatalf("IsValidIMEI(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
