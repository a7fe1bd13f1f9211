/*
Package sqlite provides a SQLite-backed catalog and purchase-history store.

PURPOSE:
  Implements engine.Catalog on top of SQLite so the demo server can run
  against a persistent reference dataset, and adds the analytics queries
  (spending, vendor performance, margins, savings, price trends) that
  only make sense over a purchase-history table. In production, the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  engine.Catalog: Reference data lookups (items, vendors, price lists,
                  cost basis, competitor prices, demand signals)
  Analytics:      Purchase-history aggregation (see analytics.go)

KEY TABLES:
  items:             Catalog items keyed by SKU
  vendors:           Vendor master data (region, rating, reliability)
  price_lists:       Commercial terms per (vendor, item)
  cost_basis:        Our recorded unit cost per SKU
  competitor_prices: Observed market anchors, many rows per SKU
  demand_notes:      One free-text demand signal per SKU
  purchase_history:  Historical purchase orders for analytics

MONEY COLUMNS:
  Stored as REAL and converted to decimal.Decimal at the boundary. The
  analytics queries aggregate in SQL (SUM/AVG), which TEXT-encoded
  decimals cannot do; amounts are rounded to cents on the way out.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/procurement.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  eng := engine.New(store)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/catalog.go: Interface definition and record types
  - engine/store/memory.go: In-memory implementation for testing
  - analytics.go: Purchase-history aggregation queries
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/procure-engine/engine"
)

// Store implements engine.Catalog and Analytics using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Catalog items
	CREATE TABLE IF NOT EXISTS items (
		sku TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_items_category
		ON items(category);

	-- Vendor master data
	CREATE TABLE IF NOT EXISTS vendors (
		vendor_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		region TEXT NOT NULL,
		rating REAL NOT NULL,
		reliability_score INTEGER NOT NULL,
		typical_lead_time_days INTEGER NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_vendors_region
		ON vendors(region);

	-- Commercial terms per (vendor, item)
	CREATE TABLE IF NOT EXISTS price_lists (
		vendor_id TEXT NOT NULL,
		item_sku TEXT NOT NULL,
		base_price REAL NOT NULL,
		moq INTEGER NOT NULL DEFAULT 1,
		volume_discount_threshold INTEGER NOT NULL DEFAULT 0,
		volume_discount_pct REAL NOT NULL DEFAULT 0,
		rush_surcharge_pct REAL NOT NULL DEFAULT 0,
		lead_time_days INTEGER NOT NULL,
		PRIMARY KEY (vendor_id, item_sku)
	);

	-- Quote synthesis fetches every entry for one SKU (hot path)
	CREATE INDEX IF NOT EXISTS idx_price_lists_item
		ON price_lists(item_sku);

	-- Our recorded unit cost per SKU
	CREATE TABLE IF NOT EXISTS cost_basis (
		sku TEXT PRIMARY KEY,
		unit_cost REAL NOT NULL,
		cost_type TEXT NOT NULL,
		currency TEXT NOT NULL DEFAULT 'USD',
		last_updated TEXT NOT NULL
	);

	-- Observed market anchors, one row per (sku, competitor)
	CREATE TABLE IF NOT EXISTS competitor_prices (
		sku TEXT NOT NULL,
		competitor TEXT NOT NULL,
		price REAL NOT NULL,
		currency TEXT NOT NULL DEFAULT 'USD',
		source TEXT NOT NULL DEFAULT '',
		observed_date TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (sku, competitor)
	);

	CREATE INDEX IF NOT EXISTS idx_competitor_prices_sku
		ON competitor_prices(sku);

	-- One free-text demand signal per SKU
	CREATE TABLE IF NOT EXISTS demand_notes (
		sku TEXT PRIMARY KEY,
		signal TEXT NOT NULL
	);

	-- Historical purchase orders (analytics only)
	CREATE TABLE IF NOT EXISTS purchase_history (
		po_id TEXT PRIMARY KEY,
		item_sku TEXT NOT NULL,
		vendor_id TEXT NOT NULL,
		category TEXT NOT NULL,
		order_date TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		unit_price REAL NOT NULL,
		total_amount REAL NOT NULL,
		days_late INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_purchase_history_item_date
		ON purchase_history(item_sku, order_date);
	CREATE INDEX IF NOT EXISTS idx_purchase_history_vendor
		ON purchase_history(vendor_id);
	CREATE INDEX IF NOT EXISTS idx_purchase_history_category
		ON purchase_history(category);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CATALOG - engine.Catalog implementation
// =============================================================================

func (s *Store) Item(ctx context.Context, sku engine.SKU) (*engine.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var item engine.Item
	err := s.db.QueryRowContext(ctx,
		`SELECT sku, name, category, description FROM items WHERE sku = ?`,
		string(sku),
	).Scan(&item.SKU, &item.Name, &item.Category, &item.Description)
	if err == sql.ErrNoRows {
		return nil, &engine.ItemNotFoundError{SKU: sku}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query item: %w", err)
	}
	return &item, nil
}

func (s *Store) SearchItems(ctx context.Context, query string, limit int) ([]engine.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	// Relevance mirrors the in-memory catalog: name 3, category 2,
	// description 1, additive; ties broken by name.
	rows, err := s.db.QueryContext(ctx, `
		SELECT sku, name, category, description FROM (
			SELECT sku, name, category, description,
				(CASE WHEN instr(lower(name), lower(?1)) > 0 THEN 3 ELSE 0 END) +
				(CASE WHEN instr(lower(category), lower(?1)) > 0 THEN 2 ELSE 0 END) +
				(CASE WHEN instr(lower(description), lower(?1)) > 0 THEN 1 ELSE 0 END) AS relevance
			FROM items
		)
		WHERE relevance > 0
		ORDER BY relevance DESC, name ASC
		LIMIT ?2
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	defer rows.Close()

	var items []engine.Item
	for rows.Next() {
		var item engine.Item
		if err := rows.Scan(&item.SKU, &item.Name, &item.Category, &item.Description); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) VendorsForRegion(ctx context.Context, region string) ([]engine.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT vendor_id, name, region, rating, reliability_score, typical_lead_time_days
		FROM vendors
		WHERE region = ? OR region = ?
		ORDER BY created_at, vendor_id
	`, region, engine.RegionGlobal)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}
	defer rows.Close()

	var vendors []engine.Vendor
	for rows.Next() {
		var v engine.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Region, &v.Rating, &v.ReliabilityScore, &v.TypicalLeadTimeDays); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (s *Store) PriceList(ctx context.Context, sku engine.SKU) ([]engine.PriceListEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT vendor_id, item_sku, base_price, moq, volume_discount_threshold,
		       volume_discount_pct, rush_surcharge_pct, lead_time_days
		FROM price_lists
		WHERE item_sku = ?
		ORDER BY vendor_id
	`, string(sku))
	if err != nil {
		return nil, fmt.Errorf("failed to query price list: %w", err)
	}
	defer rows.Close()

	var entries []engine.PriceListEntry
	for rows.Next() {
		var e engine.PriceListEntry
		var basePrice float64
		if err := rows.Scan(&e.VendorID, &e.ItemSKU, &basePrice, &e.MOQ,
			&e.VolumeDiscountThreshold, &e.VolumeDiscountPct, &e.RushSurchargePct, &e.LeadTimeDays); err != nil {
			return nil, fmt.Errorf("failed to scan price list entry: %w", err)
		}
		e.BasePrice = decimal.NewFromFloat(basePrice)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) CostBasis(ctx context.Context, sku engine.SKU) (*engine.CostBasis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cb engine.CostBasis
	var unitCost float64
	var lastUpdated string
	err := s.db.QueryRowContext(ctx, `
		SELECT cb.sku, COALESCE(i.name, cb.sku), cb.unit_cost, cb.cost_type, cb.currency, cb.last_updated
		FROM cost_basis cb
		LEFT JOIN items i ON i.sku = cb.sku
		WHERE cb.sku = ?
	`, string(sku)).Scan(&cb.SKU, &cb.ItemName, &unitCost, &cb.CostType, &cb.Currency, &lastUpdated)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("cost basis for %q: %w", sku, engine.ErrCostBasisNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cost basis: %w", err)
	}
	cb.UnitCost = decimal.NewFromFloat(unitCost)
	cb.LastUpdated = parseDate(lastUpdated)
	return &cb, nil
}

func (s *Store) CompetitorPrices(ctx context.Context, sku engine.SKU) ([]engine.CompetitorPrice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT sku, competitor, price, currency, source, observed_date
		FROM competitor_prices
		WHERE sku = ?
		ORDER BY price ASC, competitor ASC
	`, string(sku))
	if err != nil {
		return nil, fmt.Errorf("failed to query competitor prices: %w", err)
	}
	defer rows.Close()

	var prices []engine.CompetitorPrice
	for rows.Next() {
		var cp engine.CompetitorPrice
		var price float64
		if err := rows.Scan(&cp.SKU, &cp.CompetitorName, &price, &cp.Currency, &cp.Source, &cp.ObservedDate); err != nil {
			return nil, fmt.Errorf("failed to scan competitor price: %w", err)
		}
		cp.Price = decimal.NewFromFloat(price)
		prices = append(prices, cp)
	}
	return prices, rows.Err()
}

func (s *Store) DemandSignal(ctx context.Context, sku engine.SKU) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var signal string
	err := s.db.QueryRowContext(ctx,
		`SELECT signal FROM demand_notes WHERE sku = ?`, string(sku),
	).Scan(&signal)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query demand signal: %w", err)
	}
	return signal, nil
}

// =============================================================================
// LOADERS - Reference data ingestion (seeding)
// =============================================================================

func (s *Store) InsertItem(ctx context.Context, item engine.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO items (sku, name, category, description)
		VALUES (?, ?, ?, ?)
	`, string(item.SKU), item.Name, item.Category, item.Description)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

func (s *Store) InsertVendor(ctx context.Context, v engine.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO vendors
		(vendor_id, name, region, rating, reliability_score, typical_lead_time_days)
		VALUES (?, ?, ?, ?, ?, ?)
	`, string(v.ID), v.Name, v.Region, v.Rating, v.ReliabilityScore, v.TypicalLeadTimeDays)
	if err != nil {
		return fmt.Errorf("failed to insert vendor: %w", err)
	}
	return nil
}

func (s *Store) InsertPriceListEntry(ctx context.Context, e engine.PriceListEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO price_lists
		(vendor_id, item_sku, base_price, moq, volume_discount_threshold,
		 volume_discount_pct, rush_surcharge_pct, lead_time_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, string(e.VendorID), string(e.ItemSKU), e.BasePrice.InexactFloat64(), e.MOQ,
		e.VolumeDiscountThreshold, e.VolumeDiscountPct, e.RushSurchargePct, e.LeadTimeDays)
	if err != nil {
		return fmt.Errorf("failed to insert price list entry: %w", err)
	}
	return nil
}

func (s *Store) InsertCostBasis(ctx context.Context, cb engine.CostBasis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	currency := cb.Currency
	if currency == "" {
		currency = engine.DefaultCurrency
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO cost_basis (sku, unit_cost, cost_type, currency, last_updated)
		VALUES (?, ?, ?, ?, ?)
	`, string(cb.SKU), cb.UnitCost.InexactFloat64(), string(cb.CostType), currency,
		cb.LastUpdated.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("failed to insert cost basis: %w", err)
	}
	return nil
}

func (s *Store) InsertCompetitorPrice(ctx context.Context, cp engine.CompetitorPrice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	currency := cp.Currency
	if currency == "" {
		currency = engine.DefaultCurrency
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO competitor_prices (sku, competitor, price, currency, source, observed_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`, string(cp.SKU), cp.CompetitorName, cp.Price.InexactFloat64(), currency, cp.Source, cp.ObservedDate)
	if err != nil {
		return fmt.Errorf("failed to insert competitor price: %w", err)
	}
	return nil
}

func (s *Store) InsertDemandNote(ctx context.Context, sku engine.SKU, signal string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO demand_notes (sku, signal) VALUES (?, ?)
	`, string(sku), signal)
	if err != nil {
		return fmt.Errorf("failed to insert demand note: %w", err)
	}
	return nil
}

// InsertPurchase records a historical purchase order for analytics.
func (s *Store) InsertPurchase(ctx context.Context, p Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO purchase_history
		(po_id, item_sku, vendor_id, category, order_date, quantity, unit_price, total_amount, days_late)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.POID, string(p.ItemSKU), string(p.VendorID), p.Category, p.OrderDate,
		p.Quantity, p.UnitPrice.InexactFloat64(), p.TotalAmount.InexactFloat64(), p.DaysLate)
	if err != nil {
		return fmt.Errorf("failed to insert purchase: %w", err)
	}
	return nil
}

// parseDate accepts the date formats the seed data uses; a zero time
// means the stored value was unparseable, which only affects display.
func parseDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Purchase is one historical purchase order row.
type Purchase struct {
	POID        string
	ItemSKU     engine.SKU
	VendorID    engine.VendorID
	Category    string
	OrderDate   string // YYYY-MM-DD
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal
	DaysLate    int
}
