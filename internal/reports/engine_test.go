package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phonedesk/phonedesk-backend/pkg/db/models"
	dbtypes "github.com/phonedesk/phonedesk-backend/pkg/db/types"
)

func soldRow(model string, sale, profit int64, soldAt time.Time, buyer string) models.Phone {
	row := models.Phone{
		ModelNo:       model,
		SalePrice:     decimal.NewFromInt(sale),
		PurchasePrice: decimal.NewFromInt(sale - profit),
		Profit:        decimal.NewFromInt(profit),
		SoldDate:      &soldAt,
	}
	if buyer != "" {
		row.Buyer = &dbtypes.BuyerInfo{CustomerName: buyer}
	}
	return row
}

func TestSummarizeEmptySetIsZeroRow(t *testing.T) {
	summary := summarize(nil)
	if summary.PhonesSold != 0 {
		t.Fatalf("expected zero count, got %d", summary.PhonesSold)
	}
	for name, value := range map[string]decimal.Decimal{
		"totalSales":    summary.TotalSales,
		"totalPurchase": summary.TotalPurchase,
		"totalProfit":   summary.TotalProfit,
		"avgSalePrice":  summary.AvgSalePrice,
		"avgProfit":     summary.AvgProfit,
		"maxProfit":     summary.MaxProfit,
		"minProfit":     summary.MinProfit,
	} {
		if !value.IsZero() {
			t.Fatalf("expected %s to be zero, got %s", name, value)
		}
	}
}

func TestSummarizeComputesAllFields(t *testing.T) {
	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []models.Phone{
		soldRow("GALAXY S24", 25000, 7000, day, "Asha"),
		soldRow("PIXEL 9", 30000, 12000, day, "Ravi"),
		soldRow("PIXEL 9", 20000, 2000, day, ""),
	}

	summary := summarize(rows)
	if summary.PhonesSold != 3 {
		t.Fatalf("expected 3 sold, got %d", summary.PhonesSold)
	}
	if !summary.TotalSales.Equal(decimal.NewFromInt(75000)) {
		t.Fatalf("expected total sales 75000, got %s", summary.TotalSales)
	}
	if !summary.TotalProfit.Equal(decimal.NewFromInt(21000)) {
		t.Fatalf("expected total profit 21000, got %s", summary.TotalProfit)
	}
	if !summary.TotalPurchase.Equal(decimal.NewFromInt(54000)) {
		t.Fatalf("expected total purchase 54000, got %s", summary.TotalPurchase)
	}
	if !summary.AvgSalePrice.Equal(decimal.NewFromInt(25000)) {
		t.Fatalf("expected avg sale 25000, got %s", summary.AvgSalePrice)
	}
	if !summary.AvgProfit.Equal(decimal.NewFromInt(7000)) {
		t.Fatalf("expected avg profit 7000, got %s", summary.AvgProfit)
	}
	if !summary.MaxProfit.Equal(decimal.NewFromInt(12000)) {
		t.Fatalf("expected max profit 12000, got %s", summary.MaxProfit)
	}
	if !summary.MinProfit.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected min profit 2000, got %s", summary.MinProfit)
	}
}

func TestDailyTrendBucketsAndOrders(t *testing.T) {
	jan5a := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	jan5b := time.Date(2026, 1, 5, 18, 30, 0, 0, time.UTC)
	jan7 := time.Date(2026, 1, 7, 11, 0, 0, 0, time.UTC)
	rows := []models.Phone{
		soldRow("A", 1000, 100, jan5a, ""),
		soldRow("B", 2000, 200, jan5b, ""),
		soldRow("C", 5000, 500, jan7, ""),
	}

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
	buckets := dailyTrend(rows, from, to)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Date != "2026-01-05" || buckets[1].Date != "2026-01-07" {
		t.Fatalf("expected ascending dates, got %s then %s", buckets[0].Date, buckets[1].Date)
	}
	if !buckets[0].DailySales.Equal(decimal.NewFromInt(3000)) || buckets[0].PhonesSold != 2 {
		t.Fatalf("expected jan 5 bucket 3000/2, got %s/%d", buckets[0].DailySales, buckets[0].PhonesSold)
	}
	if !buckets[0].DailyProfit.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected jan 5 profit 300, got %s", buckets[0].DailyProfit)
	}
}

func TestDailyTrendHonorsWindow(t *testing.T) {
	inside := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	outside := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	rows := []models.Phone{
		soldRow("A", 1000, 100, outside, ""),
		soldRow("B", 2000, 200, inside, ""),
	}

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	buckets := dailyTrend(rows, from, to)
	if len(buckets) != 1 || buckets[0].Date != "2026-01-20" {
		t.Fatalf("expected only the in-window day, got %+v", buckets)
	}
}

func TestMonthlyTrendBuckets(t *testing.T) {
	rows := []models.Phone{
		soldRow("A", 1000, 100, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), ""),
		soldRow("B", 2000, 200, time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC), ""),
		soldRow("C", 4000, 400, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), ""),
	}

	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	buckets := monthlyTrend(rows, from, to)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 months, got %d", len(buckets))
	}
	if buckets[0].Month != "2026-01" || buckets[1].Month != "2026-03" {
		t.Fatalf("expected ascending months, got %s then %s", buckets[0].Month, buckets[1].Month)
	}
	if !buckets[0].MonthlySales.Equal(decimal.NewFromInt(3000)) || buckets[0].PhonesSold != 2 {
		t.Fatalf("unexpected january bucket %+v", buckets[0])
	}
}

func TestRollupByModelRanksAndCaps(t *testing.T) {
	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := []models.Phone{
		soldRow("PIXEL 9", 30000, 12000, day, ""),
		soldRow("GALAXY S24", 25000, 7000, day, ""),
		soldRow("PIXEL 9", 28000, 10000, day, ""),
		soldRow("IPHONE 16", 80000, 15000, day, ""),
	}

	stats := rollupByModel(rows, 2)
	if len(stats) != 2 {
		t.Fatalf("expected capped rollup of 2, got %d", len(stats))
	}
	if stats[0].ModelNo != "PIXEL 9" || stats[0].PhonesSold != 2 {
		t.Fatalf("expected PIXEL 9 first, got %+v", stats[0])
	}
	if !stats[0].TotalSales.Equal(decimal.NewFromInt(58000)) {
		t.Fatalf("expected pixel total 58000, got %s", stats[0].TotalSales)
	}
	if !stats[0].AvgProfit.Equal(decimal.NewFromInt(11000)) {
		t.Fatalf("expected pixel avg profit 11000, got %s", stats[0].AvgProfit)
	}
	// Equal counts keep first-seen order.
	if stats[1].ModelNo != "GALAXY S24" {
		t.Fatalf("expected first-seen tie-break, got %s", stats[1].ModelNo)
	}
}

func TestTopCustomersRanksAndKeepsUnnamed(t *testing.T) {
	d1 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []models.Phone{
		soldRow("A", 20000, 2000, d1, "Asha"),
		soldRow("B", 15000, 1500, d2, ""),
		soldRow("C", 25000, 2500, d3, "Asha"),
		soldRow("D", 30000, 3000, d2, "Ravi"),
	}

	stats := topCustomers(rows, 10)
	if len(stats) != 3 {
		t.Fatalf("expected 3 customer buckets, got %d", len(stats))
	}
	if stats[0].CustomerName != "Asha" || !stats[0].TotalSpent.Equal(decimal.NewFromInt(45000)) {
		t.Fatalf("expected Asha first with 45000, got %+v", stats[0])
	}
	if stats[0].PhonesBought != 2 || !stats[0].LastPurchase.Equal(d3) {
		t.Fatalf("unexpected Asha stats %+v", stats[0])
	}
	if stats[1].CustomerName != "Ravi" {
		t.Fatalf("expected Ravi second, got %s", stats[1].CustomerName)
	}

	// The unnamed bucket survives as its own entry.
	if stats[2].CustomerName != "" || !stats[2].TotalSpent.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("expected empty-name bucket last, got %+v", stats[2])
	}
}

func TestTopCustomersCap(t *testing.T) {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]models.Phone, 0, 12)
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	for i, name := range names {
		rows = append(rows, soldRow("M", int64(1000*(i+1)), 100, day, name))
	}

	stats := topCustomers(rows, 10)
	if len(stats) != 10 {
		t.Fatalf("expected top 10, got %d", len(stats))
	}
	if stats[0].CustomerName != "l" {
		t.Fatalf("expected biggest spender first, got %s", stats[0].CustomerName)
	}
}
