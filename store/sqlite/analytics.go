/*
analytics.go - Purchase-history aggregation queries

PURPOSE:
  Insight queries over the purchase_history table plus the reference
  tables: spending breakdowns, vendor performance rankings, margin
  analysis against competitor anchors, savings detection, and price
  trends. These only exist on the SQLite store; the in-memory catalog
  carries no history.

QUERY SHAPE:
  Aggregation happens in SQL (GROUP BY + SUM/AVG); Go only rounds,
  ranks, and assembles the result structs. Every query returns empty
  collections, not errors, when the tables are empty.

SEE ALSO:
  - sqlite.go: Store, schema, ingestion
  - api/handlers.go: HTTP exposure of these queries
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/warp/procure-engine/engine"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// SpendFilter narrows spending queries. Zero values mean no filter.
type SpendFilter struct {
	Category string
	VendorID engine.VendorID
}

type CategorySpend struct {
	Category     string
	OrderCount   int
	TotalUnits   int
	TotalSpend   decimal.Decimal
	AvgUnitPrice decimal.Decimal
}

type VendorSpend struct {
	VendorID    engine.VendorID
	VendorName  string
	OrderCount  int
	TotalSpend  decimal.Decimal
	AvgDaysLate float64
}

type SpendTotals struct {
	TotalOrders   int
	TotalSpend    decimal.Decimal
	AvgOrderValue decimal.Decimal
}

type SpendingSummary struct {
	ByCategory []CategorySpend
	ByVendor   []VendorSpend
	Totals     SpendTotals
	Filter     SpendFilter
}

type VendorMetrics struct {
	VendorID         engine.VendorID
	VendorName       string
	Rating           float64
	ReliabilityScore int
	TotalOrders      int
	TotalSpend       decimal.Decimal
	AvgUnitPrice     decimal.Decimal
	AvgDaysLate      float64
	OnTimePct        float64
}

// VendorPerformance ranks vendors by spend, on-time delivery, and
// rating. The Top lists carry the first three names per criterion.
type VendorPerformance struct {
	Vendors          []VendorMetrics
	TopBySpend       []string
	TopByReliability []string
	TopByRating      []string
}

// ItemMargin is the margin we would achieve selling one item at the
// competitor average. Pointer fields are nil when the underlying data
// (cost basis or competitor sample) is missing.
type ItemMargin struct {
	SKU                engine.SKU
	Name               string
	Category           string
	UnitCost           *decimal.Decimal
	CostType           engine.CostType
	AvgCompetitorPrice *decimal.Decimal
	CompetitorCount    int
	DemandSignal       string
	PotentialMarginPct *float64
	VsMarketPct        *float64
}

type MarginSummary struct {
	TotalItems             int
	ItemsWithMarketData    int
	AveragePotentialMargin float64
}

type MarginAnalysis struct {
	Items    []ItemMargin
	Summary  MarginSummary
	Category string
}

// SavingsOpportunity flags an item whose recorded cost exceeds the best
// available vendor price by more than the threshold.
type SavingsOpportunity struct {
	SKU                 engine.SKU
	Name                string
	Category            string
	OurCost             decimal.Decimal
	CostType            engine.CostType
	BestVendorPrice     decimal.Decimal
	BestVendorName      string
	PotentialSavingsPct float64
	SavingsPerUnit      decimal.Decimal
}

// MarketInsight flags an item whose recorded cost exceeds the
// competitor average, regardless of threshold.
type MarketInsight struct {
	SKU            engine.SKU
	Name           string
	Category       string
	OurCost        decimal.Decimal
	MarketAvgPrice decimal.Decimal
	MarketMinPrice decimal.Decimal
}

type SavingsSummary struct {
	ItemsWithSavings    int
	ThresholdPct        float64
	TotalSavingsPerUnit decimal.Decimal
}

type SavingsReport struct {
	VendorOpportunities []SavingsOpportunity
	MarketInsights      []MarketInsight
	Summary             SavingsSummary
}

// PurchasePoint is one historical purchase of a specific item.
type PurchasePoint struct {
	ItemSKU    engine.SKU
	ItemName   string
	OrderDate  string
	VendorID   engine.VendorID
	VendorName string
	UnitPrice  decimal.Decimal
	Quantity   int
}

// ItemPriceTrend classifies an item's price movement over its purchase
// history: increasing above +2%, decreasing below -2%, stable between,
// or "insufficient data" with fewer than two purchases.
type ItemPriceTrend struct {
	SKU       engine.SKU
	Purchases []PurchasePoint
	Trend     string
	TrendPct  float64
}

type TrendStat struct {
	ItemSKU          engine.SKU
	ItemName         string
	PurchaseCount    int
	AvgPrice         decimal.Decimal
	MinPrice         decimal.Decimal
	MaxPrice         decimal.Decimal
	PriceVariancePct float64
}

type PriceTrendOverview struct {
	ItemsAnalyzed int
	Trends        []TrendStat
}

// =============================================================================
// SPENDING SUMMARY
// =============================================================================

// SpendingSummary aggregates purchase history by category and vendor.
func (s *Store) SpendingSummary(ctx context.Context, filter SpendFilter) (*SpendingSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	whereSQL := ""
	var params []any
	switch {
	case filter.Category != "" && filter.VendorID != "":
		whereSQL = "WHERE category = ? AND vendor_id = ?"
		params = []any{filter.Category, string(filter.VendorID)}
	case filter.Category != "":
		whereSQL = "WHERE category = ?"
		params = []any{filter.Category}
	case filter.VendorID != "":
		whereSQL = "WHERE vendor_id = ?"
		params = []any{string(filter.VendorID)}
	}

	summary := &SpendingSummary{Filter: filter}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT category,
		       COUNT(*) AS order_count,
		       SUM(quantity) AS total_units,
		       SUM(total_amount) AS total_spend,
		       AVG(unit_price) AS avg_unit_price
		FROM purchase_history
		%s
		GROUP BY category
		ORDER BY total_spend DESC
	`, whereSQL), params...)
	if err != nil {
		return nil, fmt.Errorf("failed to query spending by category: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c CategorySpend
		var spend, avgPrice float64
		if err := rows.Scan(&c.Category, &c.OrderCount, &c.TotalUnits, &spend, &avgPrice); err != nil {
			return nil, fmt.Errorf("failed to scan category spend: %w", err)
		}
		c.TotalSpend = decimal.NewFromFloat(spend).Round(2)
		c.AvgUnitPrice = decimal.NewFromFloat(avgPrice).Round(2)
		summary.ByCategory = append(summary.ByCategory, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	vrows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT ph.vendor_id, COALESCE(v.name, ph.vendor_id) AS vendor_name,
		       COUNT(*) AS order_count,
		       SUM(ph.total_amount) AS total_spend,
		       AVG(ph.days_late) AS avg_days_late
		FROM purchase_history ph
		LEFT JOIN vendors v ON v.vendor_id = ph.vendor_id
		%s
		GROUP BY ph.vendor_id
		ORDER BY total_spend DESC
	`, whereSQL), params...)
	if err != nil {
		return nil, fmt.Errorf("failed to query spending by vendor: %w", err)
	}
	defer vrows.Close()
	for vrows.Next() {
		var v VendorSpend
		var spend float64
		if err := vrows.Scan(&v.VendorID, &v.VendorName, &v.OrderCount, &spend, &v.AvgDaysLate); err != nil {
			return nil, fmt.Errorf("failed to scan vendor spend: %w", err)
		}
		v.TotalSpend = decimal.NewFromFloat(spend).Round(2)
		v.AvgDaysLate = round1(v.AvgDaysLate)
		summary.ByVendor = append(summary.ByVendor, v)
	}
	if err := vrows.Err(); err != nil {
		return nil, err
	}

	var totalSpend, avgOrder sql.NullFloat64
	err = s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT COUNT(*), SUM(total_amount), AVG(total_amount)
		FROM purchase_history
		%s
	`, whereSQL), params...).Scan(&summary.Totals.TotalOrders, &totalSpend, &avgOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to query spending totals: %w", err)
	}
	summary.Totals.TotalSpend = decimal.NewFromFloat(totalSpend.Float64).Round(2)
	summary.Totals.AvgOrderValue = decimal.NewFromFloat(avgOrder.Float64).Round(2)

	return summary, nil
}

// =============================================================================
// VENDOR PERFORMANCE
// =============================================================================

// VendorPerformance ranks vendors on historical order data.
func (s *Store) VendorPerformance(ctx context.Context) (*VendorPerformance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT ph.vendor_id, v.name, v.rating, v.reliability_score,
		       COUNT(DISTINCT ph.po_id) AS total_orders,
		       SUM(ph.total_amount) AS total_spend,
		       AVG(ph.unit_price) AS avg_unit_price,
		       AVG(ph.days_late) AS avg_days_late,
		       SUM(CASE WHEN ph.days_late = 0 THEN 1 ELSE 0 END) * 100.0 / COUNT(*) AS on_time_pct
		FROM purchase_history ph
		JOIN vendors v ON v.vendor_id = ph.vendor_id
		GROUP BY ph.vendor_id
		ORDER BY total_spend DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor performance: %w", err)
	}
	defer rows.Close()

	perf := &VendorPerformance{}
	for rows.Next() {
		var m VendorMetrics
		var spend, avgPrice float64
		if err := rows.Scan(&m.VendorID, &m.VendorName, &m.Rating, &m.ReliabilityScore,
			&m.TotalOrders, &spend, &avgPrice, &m.AvgDaysLate, &m.OnTimePct); err != nil {
			return nil, fmt.Errorf("failed to scan vendor metrics: %w", err)
		}
		m.TotalSpend = decimal.NewFromFloat(spend).Round(2)
		m.AvgUnitPrice = decimal.NewFromFloat(avgPrice).Round(2)
		m.AvgDaysLate = round1(m.AvgDaysLate)
		m.OnTimePct = round1(m.OnTimePct)
		perf.Vendors = append(perf.Vendors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	perf.TopBySpend = topNames(perf.Vendors, func(a, b VendorMetrics) bool {
		return a.TotalSpend.GreaterThan(b.TotalSpend)
	})
	perf.TopByReliability = topNames(perf.Vendors, func(a, b VendorMetrics) bool {
		return a.OnTimePct > b.OnTimePct
	})
	perf.TopByRating = topNames(perf.Vendors, func(a, b VendorMetrics) bool {
		return a.Rating > b.Rating
	})
	return perf, nil
}

func topNames(vendors []VendorMetrics, less func(a, b VendorMetrics) bool) []string {
	ranked := make([]VendorMetrics, len(vendors))
	copy(ranked, vendors)
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })

	names := make([]string, 0, 3)
	for _, v := range ranked[:min(len(ranked), 3)] {
		names = append(names, v.VendorName)
	}
	return names
}

// =============================================================================
// MARGIN ANALYSIS
// =============================================================================

// MarginAnalysis computes the margin achievable selling each item at
// the competitor average price.
func (s *Store) MarginAnalysis(ctx context.Context, category string) (*MarginAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	whereSQL := ""
	var params []any
	if category != "" {
		whereSQL = "WHERE i.category = ?"
		params = []any{category}
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT i.sku, i.name, i.category,
		       cb.unit_cost, cb.cost_type,
		       (SELECT AVG(cp.price) FROM competitor_prices cp WHERE cp.sku = i.sku) AS avg_competitor_price,
		       (SELECT COUNT(*) FROM competitor_prices cp WHERE cp.sku = i.sku) AS competitor_count,
		       COALESCE(dn.signal, '') AS demand_signal
		FROM items i
		LEFT JOIN cost_basis cb ON cb.sku = i.sku
		LEFT JOIN demand_notes dn ON dn.sku = i.sku
		%s
		ORDER BY i.category, i.name
	`, whereSQL), params...)
	if err != nil {
		return nil, fmt.Errorf("failed to query margin analysis: %w", err)
	}
	defer rows.Close()

	analysis := &MarginAnalysis{Category: category}
	var marginSum float64
	for rows.Next() {
		var item ItemMargin
		var unitCost, avgCompetitor sql.NullFloat64
		var costType sql.NullString
		if err := rows.Scan(&item.SKU, &item.Name, &item.Category,
			&unitCost, &costType, &avgCompetitor, &item.CompetitorCount, &item.DemandSignal); err != nil {
			return nil, fmt.Errorf("failed to scan item margin: %w", err)
		}
		if unitCost.Valid {
			d := decimal.NewFromFloat(unitCost.Float64)
			item.UnitCost = &d
			item.CostType = engine.CostType(costType.String)
		}
		if avgCompetitor.Valid {
			d := decimal.NewFromFloat(avgCompetitor.Float64).Round(2)
			item.AvgCompetitorPrice = &d
		}
		if unitCost.Valid && avgCompetitor.Valid && avgCompetitor.Float64 != 0 {
			potential := round1((avgCompetitor.Float64 - unitCost.Float64) / avgCompetitor.Float64 * 100)
			vsMarket := round1((avgCompetitor.Float64 - unitCost.Float64) / unitCost.Float64 * 100)
			item.PotentialMarginPct = &potential
			item.VsMarketPct = &vsMarket
			marginSum += potential
			analysis.Summary.ItemsWithMarketData++
		}
		analysis.Items = append(analysis.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	analysis.Summary.TotalItems = len(analysis.Items)
	if analysis.Summary.ItemsWithMarketData > 0 {
		analysis.Summary.AveragePotentialMargin = round1(marginSum / float64(analysis.Summary.ItemsWithMarketData))
	}
	return analysis, nil
}

// =============================================================================
// SAVINGS OPPORTUNITIES
// =============================================================================

// SavingsOpportunities finds items where the recorded cost exceeds the
// best vendor price by more than thresholdPct percent, plus items
// priced above the competitor average.
func (s *Store) SavingsOpportunities(ctx context.Context, thresholdPct float64) (*SavingsReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT i.sku, i.name, i.category,
		       cb.unit_cost AS our_cost, cb.cost_type,
		       MIN(pl.base_price) AS best_vendor_price,
		       (SELECT v.name FROM vendors v WHERE v.vendor_id =
		           (SELECT pl2.vendor_id FROM price_lists pl2
		            WHERE pl2.item_sku = i.sku ORDER BY pl2.base_price LIMIT 1)
		       ) AS best_vendor_name
		FROM items i
		JOIN cost_basis cb ON cb.sku = i.sku
		JOIN price_lists pl ON pl.item_sku = i.sku
		GROUP BY i.sku
		HAVING our_cost > best_vendor_price * (1 + ? / 100)
	`, thresholdPct)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings opportunities: %w", err)
	}
	defer rows.Close()

	report := &SavingsReport{Summary: SavingsSummary{ThresholdPct: thresholdPct}}
	totalSavings := decimal.Zero
	for rows.Next() {
		var o SavingsOpportunity
		var ourCost, bestPrice float64
		var bestName sql.NullString
		if err := rows.Scan(&o.SKU, &o.Name, &o.Category, &ourCost, &o.CostType, &bestPrice, &bestName); err != nil {
			return nil, fmt.Errorf("failed to scan savings opportunity: %w", err)
		}
		o.OurCost = decimal.NewFromFloat(ourCost)
		o.BestVendorPrice = decimal.NewFromFloat(bestPrice)
		o.BestVendorName = bestName.String
		o.PotentialSavingsPct = round1((ourCost - bestPrice) / ourCost * 100)
		o.SavingsPerUnit = o.OurCost.Sub(o.BestVendorPrice).Round(2)
		totalSavings = totalSavings.Add(o.SavingsPerUnit)
		report.VendorOpportunities = append(report.VendorOpportunities, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(report.VendorOpportunities, func(i, j int) bool {
		return report.VendorOpportunities[i].PotentialSavingsPct > report.VendorOpportunities[j].PotentialSavingsPct
	})

	mrows, err := s.db.QueryContext(ctx, `
		SELECT i.sku, i.name, i.category,
		       cb.unit_cost AS our_cost,
		       AVG(cp.price) AS market_avg_price,
		       MIN(cp.price) AS market_min_price
		FROM items i
		JOIN cost_basis cb ON cb.sku = i.sku
		JOIN competitor_prices cp ON cp.sku = i.sku
		GROUP BY i.sku
		HAVING our_cost > market_avg_price
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query market insights: %w", err)
	}
	defer mrows.Close()
	for mrows.Next() {
		var in MarketInsight
		var ourCost, avgPrice, minPrice float64
		if err := mrows.Scan(&in.SKU, &in.Name, &in.Category, &ourCost, &avgPrice, &minPrice); err != nil {
			return nil, fmt.Errorf("failed to scan market insight: %w", err)
		}
		in.OurCost = decimal.NewFromFloat(ourCost)
		in.MarketAvgPrice = decimal.NewFromFloat(avgPrice).Round(2)
		in.MarketMinPrice = decimal.NewFromFloat(minPrice)
		report.MarketInsights = append(report.MarketInsights, in)
	}
	if err := mrows.Err(); err != nil {
		return nil, err
	}

	report.Summary.ItemsWithSavings = len(report.VendorOpportunities)
	report.Summary.TotalSavingsPerUnit = totalSavings
	return report, nil
}

// =============================================================================
// PRICE TRENDS
// =============================================================================

// PriceTrend returns the purchase sequence for one SKU and classifies
// the first-to-last price movement.
func (s *Store) PriceTrend(ctx context.Context, sku engine.SKU) (*ItemPriceTrend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT ph.item_sku, i.name, ph.order_date, ph.vendor_id, v.name, ph.unit_price, ph.quantity
		FROM purchase_history ph
		JOIN items i ON i.sku = ph.item_sku
		JOIN vendors v ON v.vendor_id = ph.vendor_id
		WHERE ph.item_sku = ?
		ORDER BY ph.order_date
	`, string(sku))
	if err != nil {
		return nil, fmt.Errorf("failed to query price trend: %w", err)
	}
	defer rows.Close()

	trend := &ItemPriceTrend{SKU: sku}
	for rows.Next() {
		var p PurchasePoint
		var price float64
		if err := rows.Scan(&p.ItemSKU, &p.ItemName, &p.OrderDate, &p.VendorID, &p.VendorName, &price, &p.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan purchase point: %w", err)
		}
		p.UnitPrice = decimal.NewFromFloat(price)
		trend.Purchases = append(trend.Purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(trend.Purchases) < 2 {
		trend.Trend = "insufficient data"
		return trend, nil
	}

	first := trend.Purchases[0].UnitPrice.InexactFloat64()
	last := trend.Purchases[len(trend.Purchases)-1].UnitPrice.InexactFloat64()
	pct := (last - first) / first * 100
	trend.TrendPct = round1(pct)
	switch {
	case pct > 2:
		trend.Trend = "increasing"
	case pct < -2:
		trend.Trend = "decreasing"
	default:
		trend.Trend = "stable"
	}
	return trend, nil
}

// PriceTrends summarizes price dispersion for every item purchased at
// least twice, most-purchased first.
func (s *Store) PriceTrends(ctx context.Context) (*PriceTrendOverview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT ph.item_sku, i.name,
		       COUNT(*) AS purchase_count,
		       AVG(ph.unit_price) AS avg_price,
		       MIN(ph.unit_price) AS min_price,
		       MAX(ph.unit_price) AS max_price,
		       (MAX(ph.unit_price) - MIN(ph.unit_price)) / AVG(ph.unit_price) * 100 AS price_variance_pct
		FROM purchase_history ph
		JOIN items i ON i.sku = ph.item_sku
		GROUP BY ph.item_sku
		HAVING purchase_count >= 2
		ORDER BY purchase_count DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query price trends: %w", err)
	}
	defer rows.Close()

	overview := &PriceTrendOverview{}
	for rows.Next() {
		var t TrendStat
		var avgPrice, minPrice, maxPrice float64
		if err := rows.Scan(&t.ItemSKU, &t.ItemName, &t.PurchaseCount, &avgPrice, &minPrice, &maxPrice, &t.PriceVariancePct); err != nil {
			return nil, fmt.Errorf("failed to scan trend stat: %w", err)
		}
		t.AvgPrice = decimal.NewFromFloat(avgPrice).Round(2)
		t.MinPrice = decimal.NewFromFloat(minPrice)
		t.MaxPrice = decimal.NewFromFloat(maxPrice)
		t.PriceVariancePct = round1(t.PriceVariancePct)
		overview.Trends = append(overview.Trends, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	overview.ItemsAnalyzed = len(overview.Trends)
	return overview, nil
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
