package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/phonedesk/phonedesk-backend/internal/phones"
	dbtypes "github.com/phonedesk/phonedesk-backend/pkg/db/types"
	"github.com/phonedesk/phonedesk-backend/pkg/pagination"
)

// UpdateSaleRequest carries the correctable fields of a completed sale.
// A sale-price change recomputes the stored profit.
type UpdateSaleRequest struct {
	SalePrice *decimal.Decimal   `json:"salePrice,omitempty"`
	SoldDate  *time.Time         `json:"soldDate,omitempty"`
	Buyer     *dbtypes.BuyerInfo `json:"buyerInfo,omitempty"`
}

// ListSalesInput captures the filter and paging knobs of the sold-item
// listing. Status is forced to sold downstream.
type ListSalesInput struct {
	Filters    phones.ListFilters
	Pagination pagination.Params
}

// PageSummary totals the sales on the returned page.
type PageSummary struct {
	PhonesSold  int64           `json:"phonesSold"`
	TotalSales  decimal.Decimal `json:"totalSales"`
	TotalProfit decimal.Decimal `json:"totalProfit"`
}

// ListSalesResult bundles a page of sold phones with its totals block
// and pagination metadata.
type ListSalesResult struct {
	Sales      []phones.PhoneDTO
	Summary    PageSummary
	Pagination pagination.Meta
}
