// Package memory holds mutex guarded in-process repositories used for development and
// tests.
package memory

import (
	"sync"

	"github.com/spec-kit/hr-service/internal/repository"
)

// table keeps records by id and remembers insertion order. Values are copied in and out
// through clone so callers never share state with the store.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]T
	order []string
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{rows: make(map[string]T), clone: clone}
}

func (t *table[T]) insert(id string, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; ok {
		return repository.ErrDuplicate
	}
	t.rows[id] = t.clone(v)
	t.order = append(t.order, id)
	return nil
}

func (t *table[T]) replace(id string, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	t.rows[id] = t.clone(v)
	return nil
}

func (t *table[T]) remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, repository.ErrNotFound
	}
	return t.clone(v), nil
}

func (t *table[T]) scan(match func(*T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []T
	for _, id := range t.order {
		v := t.rows[id]
		if match == nil || match(&v) {
			out = append(out, t.clone(v))
		}
	}
	return out
}

// NewStore returns empty in-memory repositories.
func NewStore() repository.Store {
	return repository.Store{
		Users:      NewUserRepository(),
		Leaves:     NewLeaveRepository(),
		Timesheets: NewTimesheetRepository(),
	}
}
