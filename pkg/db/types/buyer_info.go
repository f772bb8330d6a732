package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/phonedesk/phonedesk-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// BuyerInfo captures who bought a phone and how the sale was settled.
// It is stored as a single JSON column on the phone row; sub-fields are
// merged on update, never dropped.
type BuyerInfo struct {
	CustomerName    string              `json:"customerName,omitempty"`
	CustomerMobile  string              `json:"customerMobile,omitempty"`
	CustomerAddress string              `json:"customerAddress,omitempty"`
	PaymentMethod   enums.PaymentMethod `json:"paymentMethod,omitempty"`

	ExchangeModel string           `json:"exchangeModel,omitempty"`
	ExchangeIMEI  string           `json:"exchangeIMEI,omitempty"`
	ExchangePrice *decimal.Decimal `json:"exchangePrice,omitempty"`

	CashAmount   *decimal.Decimal `json:"cashAmount,omitempty"`
	OnlineAmount *decimal.Decimal `json:"onlineAmount,omitempty"`
}

// Merge overlays the non-zero fields of other onto a copy of b.
func (b BuyerInfo) Merge(other BuyerInfo) BuyerInfo {
	merged := b
	if other.CustomerName != "" {
		merged.CustomerName = other.CustomerName
	}
	if other.CustomerMobile != "" {
		merged.CustomerMobile = other.CustomerMobile
	}
	if other.CustomerAddress != "" {
		merged.CustomerAddress = other.CustomerAddress
	}
	if other.PaymentMethod != "" {
		merged.PaymentMethod = other.PaymentMethod
	}
	if other.ExchangeModel != "" {
		merged.ExchangeModel = other.ExchangeModel
	}
	if other.ExchangeIMEI != "" {
		merged.ExchangeIMEI = other.ExchangeIMEI
	}
	if other.ExchangePrice != nil {
		merged.ExchangePrice = other.ExchangePrice
	}
	if other.CashAmount != nil {
		merged.CashAmount = other.CashAmount
	}
	if other.OnlineAmount != nil {
		merged.OnlineAmount = other.OnlineAmount
	}
	return merged
}

// Value marshals BuyerInfo into its JSON column representation.
func (b BuyerInfo) Value() (driver.Value, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("buyer info: marshal: %w", err)
	}
	return string(raw), nil
}

// Scan decodes the JSON column back into BuyerInfo.
func (b *BuyerInfo) Scan(value interface{}) error {
	if value == nil {
		*b = BuyerInfo{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("buyer info: unsupported scan type %T", value)
	}

	if len(raw) == 0 {
		*b = BuyerInfo{}
		return nil
	}
	return json.Unmarshal(raw, b)
}
