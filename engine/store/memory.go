// Package store provides Catalog implementations.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/warp/procure-engine/engine"
)

// =============================================================================
// MEMORY CATALOG - In-memory implementation (for testing/embedding)
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	items       []engine.Item
	vendors     []engine.Vendor
	priceLists  map[engine.SKU][]engine.PriceListEntry
	costs       map[engine.SKU]engine.CostBasis
	competitors map[engine.SKU][]engine.CompetitorPrice
	demand      map[engine.SKU]string
}

func NewMemory() *Memory {
	return &Memory{
		priceLists:  make(map[engine.SKU][]engine.PriceListEntry),
		costs:       make(map[engine.SKU]engine.CostBasis),
		competitors: make(map[engine.SKU][]engine.CompetitorPrice),
		demand:      make(map[engine.SKU]string),
	}
}

// =============================================================================
// LOADERS - Populate reference data before handing the catalog out
// =============================================================================

func (m *Memory) AddItem(item engine.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, item)
}

func (m *Memory) AddVendor(v engine.Vendor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vendors = append(m.vendors, v)
}

func (m *Memory) AddPriceListEntry(entry engine.PriceListEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.priceLists[entry.ItemSKU] = append(m.priceLists[entry.ItemSKU], entry)
}

func (m *Memory) SetCostBasis(cb engine.CostBasis) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.costs[cb.SKU] = cb
}

func (m *Memory) AddCompetitorPrice(cp engine.CompetitorPrice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.competitors[cp.SKU] = append(m.competitors[cp.SKU], cp)
}

func (m *Memory) SetDemandSignal(sku engine.SKU, signal string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.demand[sku] = signal
}

// =============================================================================
// CATALOG IMPLEMENTATION
// =============================================================================

func (m *Memory) Item(_ context.Context, sku engine.SKU) (*engine.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.items {
		if m.items[i].SKU == sku {
			item := m.items[i]
			return &item, nil
		}
	}
	return nil, &engine.ItemNotFoundError{SKU: sku}
}

func (m *Memory) SearchItems(_ context.Context, query string, limit int) ([]engine.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q := strings.ToLower(query)
	type scored struct {
		item  engine.Item
		score int
	}
	var matches []scored
	for _, item := range m.items {
		score := 0
		if strings.Contains(strings.ToLower(item.Name), q) {
			score += 3
		}
		if strings.Contains(strings.ToLower(item.Category), q) {
			score += 2
		}
		if strings.Contains(strings.ToLower(item.Description), q) {
			score++
		}
		if score > 0 {
			matches = append(matches, scored{item: item, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].item.Name < matches[j].item.Name
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]engine.Item, len(matches))
	for i, m := range matches {
		out[i] = m.item
	}
	return out, nil
}

func (m *Memory) VendorsForRegion(_ context.Context, region string) ([]engine.Vendor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.Vendor
	for _, v := range m.vendors {
		if v.Region == region || v.Region == engine.RegionGlobal {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *Memory) PriceList(_ context.Context, sku engine.SKU) ([]engine.PriceListEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]engine.PriceListEntry, len(m.priceLists[sku]))
	copy(entries, m.priceLists[sku])
	return entries, nil
}

func (m *Memory) CostBasis(_ context.Context, sku engine.SKU) (*engine.CostBasis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cb, ok := m.costs[sku]
	if !ok {
		return nil, engine.ErrCostBasisNotFound
	}
	return &cb, nil
}

func (m *Memory) CompetitorPrices(_ context.Context, sku engine.SKU) ([]engine.CompetitorPrice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	prices := make([]engine.CompetitorPrice, len(m.competitors[sku]))
	copy(prices, m.competitors[sku])
	sort.SliceStable(prices, func(i, j int) bool {
		return prices[i].Price.LessThan(prices[j].Price)
	})
	return prices, nil
}

func (m *Memory) DemandSignal(_ context.Context, sku engine.SKU) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.demand[sku], nil
}
