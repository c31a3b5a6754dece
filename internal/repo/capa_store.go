package repo

import (
	"errors"
	"strings"
	"sync"

	"github.com/regsight/regsight-core/internal/models"
)

// ErrCAPANotFound is returned by Update when the target record no longer
// exists in the register.
var ErrCAPANotFound = errors.New("capa not found")

// CAPAStore is the in-memory corrective-action register. Writes replace the
// backing slice wholesale under the mutex, so a reader that has already taken
// a snapshot keeps iterating a consistent view while writers proceed.
type CAPAStore struct {
	mu      sync.RWMutex
	records []*models.CAPA
}

// NewCAPAStore returns an empty register.
func NewCAPAStore() *CAPAStore {
	return &CAPAStore{records: []*models.CAPA{}}
}

// Load replaces the register contents. Intended for seeding at startup and
// for tests.
func (s *CAPAStore) Load(records []*models.CAPA) {
	next := make([]*models.CAPA, len(records))
	copy(next, records)
	s.mu.Lock()
	s.records = next
	s.mu.Unlock()
}

func (s *CAPAStore) snapshot() []*models.CAPA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Insert prepends the record so the newest action surfaces first, matching
// register review order.
func (s *CAPAStore) Insert(record *models.CAPA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]*models.CAPA, 0, len(s.records)+1)
	next = append(next, record)
	next = append(next, s.records...)
	s.records = next
}

// Replace swaps the record with the given id for the updated one, keeping its
// position. Returns ErrCAPANotFound when the id is unknown.
func (s *CAPAStore) Replace(id string, record *models.CAPA) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, r := range s.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCAPANotFound
	}
	next := make([]*models.CAPA, len(s.records))
	copy(next, s.records)
	next[idx] = record
	s.records = next
	return nil
}

// Delete removes the record with the given id. Deleting an unknown id is a
// no-op, so the operation is idempotent.
func (s *CAPAStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]*models.CAPA, 0, len(s.records))
	for _, r := range s.records {
		if r.ID != id {
			next = append(next, r)
		}
	}
	s.records = next
}

// Get returns the record with the given id, or nil when unknown.
func (s *CAPAStore) Get(id string) *models.CAPA {
	for _, r := range s.snapshot() {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// List returns records matching the optional status and free-text filters,
// in register order. The free-text filter searches the narrative fields only
// (root cause, action plan).
func (s *CAPAStore) List(req models.CAPAListRequest) []*models.CAPA {
	q := strings.ToLower(req.Query)
	records := s.snapshot()
	out := make([]*models.CAPA, 0, len(records))
	for _, r := range records {
		if req.Status != "" && req.Status != "All" && string(r.Status) != req.Status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(r.RootCause), q) &&
			!strings.Contains(strings.ToLower(r.ActionPlan), q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ListByRPI returns every record attached to the given indicator.
func (s *CAPAStore) ListByRPI(rpiID string) []*models.CAPA {
	records := s.snapshot()
	out := make([]*models.CAPA, 0, len(records))
	for _, r := range records {
		if r.RPIID == rpiID {
			out = append(out, r)
		}
	}
	return out
}

// CountByStatus tallies the register by lifecycle status.
func (s *CAPAStore) CountByStatus() map[models.CAPAStatus]int {
	counts := make(map[models.CAPAStatus]int)
	for _, r := range s.snapshot() {
		counts[r.Status]++
	}
	return counts
}

// Len returns the register size.
func (s *CAPAStore) Len() int {
	return len(s.snapshot())
}
