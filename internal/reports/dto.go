package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange optionally bounds a report by sold date. End is inclusive
// and extends to the end of its UTC day before querying.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// OverallSummary is the single-row aggregate over the sold set. Every
// field is zero when no sale matches; the row itself is always present.
type OverallSummary struct {
	TotalSales    decimal.Decimal `json:"totalSales"`
	TotalPurchase decimal.Decimal `json:"totalPurchase"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	PhonesSold    int64           `json:"phonesSold"`
	AvgSalePrice  decimal.Decimal `json:"avgSalePrice"`
	AvgProfit     decimal.Decimal `json:"avgProfit"`
	MaxProfit     decimal.Decimal `json:"maxProfit"`
	MinProfit     decimal.Decimal `json:"minProfit"`
}

// DailyBucket is one calendar day (UTC) of the sales trend.
type DailyBucket struct {
	Date        string          `json:"date"`
	DailySales  decimal.Decimal `json:"dailySales"`
	DailyProfit decimal.Decimal `json:"dailyProfit"`
	PhonesSold  int64           `json:"phonesSold"`
}

// MonthlyBucket is one calendar month (UTC) of the sales trend.
type MonthlyBucket struct {
	Month         string          `json:"month"`
	MonthlySales  decimal.Decimal `json:"monthlySales"`
	MonthlyProfit decimal.Decimal `json:"monthlyProfit"`
	PhonesSold    int64           `json:"phonesSold"`
}

// ModelStat is the per-model rollup entry.
type ModelStat struct {
	ModelNo      string          `json:"modelNo"`
	PhonesSold   int64           `json:"phonesSold"`
	TotalSales   decimal.Decimal `json:"totalSales"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
	AvgSalePrice decimal.Decimal `json:"avgSalePrice"`
	AvgProfit    decimal.Decimal `json:"avgProfit"`
}

// CustomerStat ranks a buyer by how much they spent. Sales without a
// recorded buyer name share the empty-name bucket instead of being
// dropped.
type CustomerStat struct {
	CustomerName string          `json:"customerName"`
	PhonesBought int64           `json:"phonesBought"`
	TotalSpent   decimal.Decimal `json:"totalSpent"`
	LastPurchase time.Time       `json:"lastPurchase"`
}

// SalesReport is the full aggregation response. Every sub-report is
// computed independently over the same snapshot; if any of them cannot
// be produced the whole report fails.
type SalesReport struct {
	Overall      OverallSummary  `json:"overall"`
	Daily        []DailyBucket   `json:"daily"`
	ByModel      []ModelStat     `json:"byModel"`
	TopCustomers []CustomerStat  `json:"topCustomers"`
	Monthly      []MonthlyBucket `json:"monthly"`
}
