package cart

import (
	"context"
	"encoding/json"
	"math"

	"go.uber.org/zap"

	"github.com/AlejandroCopponi/esencia-retro/internal/domain/cart"
	"github.com/AlejandroCopponi/esencia-retro/internal/session"
)

// Manager holds one session's line items in memory and mirrors every
// mutation to the durable session store. Identity of a line item is the
// (product id, size) pair: adding the same pair again bumps quantity.
type Manager struct {
	store    session.Store
	sid      string
	items    []cart.LineItem
	hydrated bool
}

func NewManager(store session.Store, sessionID string) *Manager {
	return &Manager{store: store, sid: sessionID}
}

// Hydrate loads the saved snapshot. A read or parse failure degrades to
// an empty cart rather than surfacing an error to the shopper.
func (m *Manager) Hydrate(ctx context.Context) {
	m.items = nil
	m.hydrated = true

	raw, err := m.store.Load(ctx, m.sid)
	if err != nil {
		zap.L().Warn("cart: load failed, starting empty", zap.Error(err))
		return
	}
	if len(raw) == 0 {
		return
	}
	var items []cart.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		zap.L().Warn("cart: corrupt snapshot, starting empty", zap.Error(err))
		return
	}
	m.items = items
}

func (m *Manager) Hydrated() bool { return m.hydrated }

// Items reports empty until Hydrate has run, so callers never render a
// half-loaded cart.
func (m *Manager) Items() []cart.LineItem {
	if !m.hydrated {
		return nil
	}
	return m.items
}

// Add merges into an existing (product, size) line or appends a new one
// with the price captured as-is. Non-finite or negative prices coerce
// to 0, quantities below 1 to 1.
func (m *Manager) Add(ctx context.Context, item cart.LineItem, qty int) error {
	if qty < 1 {
		qty = 1
	}
	if item.Price < 0 || math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
		item.Price = 0
	}
	for i := range m.items {
		if m.items[i].ProductID == item.ProductID && m.items[i].Size == item.Size {
			m.items[i].Quantity += qty
			return m.persist(ctx)
		}
	}
	item.Quantity = qty
	m.items = append(m.items, item)
	return m.persist(ctx)
}

// Remove deletes the matching line item; absent pairs are a no-op.
func (m *Manager) Remove(ctx context.Context, productID int64, size string) error {
	kept := m.items[:0]
	for _, it := range m.items {
		if it.ProductID == productID && it.Size == size {
			continue
		}
		kept = append(kept, it)
	}
	m.items = kept
	return m.persist(ctx)
}

func (m *Manager) Increase(ctx context.Context, productID int64, size string) error {
	for i := range m.items {
		if m.items[i].ProductID == productID && m.items[i].Size == size {
			m.items[i].Quantity++
			break
		}
	}
	return m.persist(ctx)
}

// Decrease floors at 1; dropping a line is only ever the explicit
// Remove action.
func (m *Manager) Decrease(ctx context.Context, productID int64, size string) error {
	for i := range m.items {
		if m.items[i].ProductID == productID && m.items[i].Size == size {
			if m.items[i].Quantity > 1 {
				m.items[i].Quantity--
			}
			break
		}
	}
	return m.persist(ctx)
}

func (m *Manager) Clear(ctx context.Context) error {
	m.items = nil
	return m.store.Delete(ctx, m.sid)
}

func (m *Manager) Total() float64 {
	var total float64
	for _, it := range m.items {
		total += it.Subtotal()
	}
	return total
}

func (m *Manager) persist(ctx context.Context) error {
	data, err := json.Marshal(m.items)
	if err != nil {
		return err
	}
	return m.store.Save(ctx, m.sid, data)
}
