package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phonedesk/phonedesk-backend/pkg/db/models"
)

// All bucketing uses UTC calendar days and months. Rows arrive ordered
// by sold date ascending, so grouped buckets come out ascending too and
// ranked rollups break ties by first sale seen.

const (
	dayKeyLayout   = "2006-01-02"
	monthKeyLayout = "2006-01"
)

// moneyPlaces is the rounding applied to derived averages.
const moneyPlaces = 2

func summarize(rows []models.Phone) OverallSummary {
	summary := OverallSummary{
		TotalSales:    decimal.Zero,
		TotalPurchase: decimal.Zero,
		TotalProfit:   decimal.Zero,
		AvgSalePrice:  decimal.Zero,
		AvgProfit:     decimal.Zero,
		MaxProfit:     decimal.Zero,
		MinProfit:     decimal.Zero,
	}
	if len(rows) == 0 {
		return summary
	}

	for i := range rows {
		row := &rows[i]
		summary.TotalSales = summary.TotalSales.Add(row.SalePrice)
		summary.TotalPurchase = summary.TotalPurchase.Add(row.PurchasePrice)
		summary.TotalProfit = summary.TotalProfit.Add(row.Profit)
		if summary.PhonesSold == 0 {
			summary.MaxProfit = row.Profit
			summary.MinProfit = row.Profit
		} else {
			if row.Profit.GreaterThan(summary.MaxProfit) {
				summary.MaxProfit = row.Profit
			}
			if row.Profit.LessThan(summary.MinProfit) {
				summary.MinProfit = row.Profit
			}
		}
		summary.PhonesSold++
	}

	count := decimal.NewFromInt(summary.PhonesSold)
	summary.AvgSalePrice = summary.TotalSales.Div(count).Round(moneyPlaces)
	summary.AvgProfit = summary.TotalProfit.Div(count).Round(moneyPlaces)
	return summary
}

func dailyTrend(rows []models.Phone, from, to time.Time) []DailyBucket {
	index := map[string]int{}
	buckets := []DailyBucket{}

	for i := range rows {
		row := &rows[i]
		if row.SoldDate == nil {
			continue
		}
		soldAt := row.SoldDate.UTC()
		if soldAt.Before(from) || soldAt.After(to) {
			continue
		}
		key := soldAt.Format(dayKeyLayout)
		at, ok := index[key]
		if !ok {
			at = len(buckets)
			index[key] = at
			buckets = append(buckets, DailyBucket{
				Date:        key,
				DailySales:  decimal.Zero,
				DailyProfit: decimal.Zero,
			})
		}
		buckets[at].DailySales = buckets[at].DailySales.Add(row.SalePrice)
		buckets[at].DailyProfit = buckets[at].DailyProfit.Add(row.Profit)
		buckets[at].PhonesSold++
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })
	return buckets
}

func monthlyTrend(rows []models.Phone, from, to time.Time) []MonthlyBucket {
	index := map[string]int{}
	buckets := []MonthlyBucket{}

	for i := range rows {
		row := &rows[i]
		if row.SoldDate == nil {
			continue
		}
		soldAt := row.SoldDate.UTC()
		if soldAt.Before(from) || soldAt.After(to) {
			continue
		}
		key := soldAt.Format(monthKeyLayout)
		at, ok := index[key]
		if !ok {
			at = len(buckets)
			index[key] = at
			buckets = append(buckets, MonthlyBucket{
				Month:         key,
				MonthlySales:  decimal.Zero,
				MonthlyProfit: decimal.Zero,
			})
		}
		buckets[at].MonthlySales = buckets[at].MonthlySales.Add(row.SalePrice)
		buckets[at].MonthlyProfit = buckets[at].MonthlyProfit.Add(row.Profit)
		buckets[at].PhonesSold++
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Month < buckets[j].Month })
	return buckets
}

func rollupByModel(rows []models.Phone, topN int) []ModelStat {
	index := map[string]int{}
	stats := []ModelStat{}

	for i := range rows {
		row := &rows[i]
		at, ok := index[row.ModelNo]
		if !ok {
			at = len(stats)
			index[row.ModelNo] = at
			stats = append(stats, ModelStat{
				ModelNo:     row.ModelNo,
				TotalSales:  decimal.Zero,
				TotalProfit: decimal.Zero,
			})
		}
		stats[at].PhonesSold++
		stats[at].TotalSales = stats[at].TotalSales.Add(row.SalePrice)
		stats[at].TotalProfit = stats[at].TotalProfit.Add(row.Profit)
	}

	for i := range stats {
		count := decimal.NewFromInt(stats[i].PhonesSold)
		stats[i].AvgSalePrice = stats[i].TotalSales.Div(count).Round(moneyPlaces)
		stats[i].AvgProfit = stats[i].TotalProfit.Div(count).Round(moneyPlaces)
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].PhonesSold > stats[j].PhonesSold })
	if topN > 0 && len(stats) > topN {
		stats = stats[:topN]
	}
	return stats
}

func topCustomers(rows []models.Phone, topN int) []CustomerStat {
	index := map[string]int{}
	stats := []CustomerStat{}

	for i := range rows {
		row := &rows[i]
		name := ""
		if row.Buyer != nil {
			name = row.Buyer.CustomerName
		}
		at, ok := index[name]
		if !ok {
			at = len(stats)
			index[name] = at
			stats = append(stats, CustomerStat{
				CustomerName: name,
				TotalSpent:   decimal.Zero,
			})
		}
		stats[at].PhonesBought++
		stats[at].TotalSpent = stats[at].TotalSpent.Add(row.SalePrice)
		if row.SoldDate != nil && row.SoldDate.UTC().After(stats[at].LastPurchase) {
			stats[at].LastPurchase = row.SoldDate.UTC()
		}
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].TotalSpent.GreaterThan(stats[j].TotalSpent) })
	if topN > 0 && len(stats) > topN {
		stats = stats[:topN]
	}
	return stats
}
