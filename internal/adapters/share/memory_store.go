package share

import (
	"context"
	"fmt"
	"sync"
	"venue-finder-service/internal/domain"
	"venue-finder-service/internal/ports"
)

// MemoryStore keeps encoded snapshots in process memory. Saved bytes are
// private copies, so later mutation by the caller cannot leak in.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (m *MemoryStore) Save(ctx context.Context, snapshot domain.ShareSnapshot) error {
	snapshot, err := prepare(snapshot)
	if err != nil {
		return err
	}
	b := encode(snapshot)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[snapshot.ID]; ok {
		return fmt.Errorf("save snapshot %q: %w", snapshot.ID, ErrDuplicateID)
	}
	m.data[snapshot.ID] = b
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, id string) (domain.ShareSnapshot, error) {
	m.mu.RLock()
	b, ok := m.data[id]
	m.mu.RUnlock()
	if !ok {
		return domain.ShareSnapshot{}, fmt.Errorf("load snapshot %q: %w", id, domain.ErrShareLinkNotFound)
	}
	return decode(id, b)
}

// Len reports the number of stored snapshots.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

var _ ports.ShareStore = (*MemoryStore)(nil)
