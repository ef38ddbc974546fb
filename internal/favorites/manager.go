package favorites

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/AlejandroCopponi/esencia-retro/internal/domain/favorite"
	"github.com/AlejandroCopponi/esencia-retro/internal/session"
)

// Manager mirrors the cart manager's persistence contract for the
// simpler liked-products set.
type Manager struct {
	store    session.Store
	sid      string
	entries  []favorite.Entry
	hydrated bool
}

func NewManager(store session.Store, sessionID string) *Manager {
	return &Manager{store: store, sid: sessionID}
}

func (m *Manager) Hydrate(ctx context.Context) {
	m.entries = nil
	m.hydrated = true

	raw, err := m.store.Load(ctx, m.sid)
	if err != nil {
		zap.L().Warn("favorites: load failed, starting empty", zap.Error(err))
		return
	}
	if len(raw) == 0 {
		return
	}
	var entries []favorite.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		zap.L().Warn("favorites: corrupt snapshot, starting empty", zap.Error(err))
		return
	}
	m.entries = entries
}

func (m *Manager) Hydrated() bool { return m.hydrated }

func (m *Manager) Entries() []favorite.Entry {
	if !m.hydrated {
		return nil
	}
	return m.entries
}

// Toggle removes the product if present, otherwise stores its snapshot.
// Returns whether the product is a favorite afterwards.
func (m *Manager) Toggle(ctx context.Context, entry favorite.Entry) (bool, error) {
	for i, e := range m.entries {
		if e.ProductID == entry.ProductID {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return false, m.persist(ctx)
		}
	}
	m.entries = append(m.entries, entry)
	return true, m.persist(ctx)
}

func (m *Manager) IsFavorite(productID int64) bool {
	for _, e := range m.entries {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

func (m *Manager) persist(ctx context.Context) error {
	data, err := json.Marshal(m.entries)
	if err != nil {
		return err
	}
	return m.store.Save(ctx, m.sid, data)
}
