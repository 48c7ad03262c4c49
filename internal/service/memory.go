package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nurture-ai/network-agent/internal/model"
)

// MemoryContactStore keeps saved contacts in memory. It stands in for the
// Airtable-backed store in development and tests.
type MemoryContactStore struct {
	mu       sync.RWMutex
	contacts map[string]*model.ContactRecord
}

// NewMemoryContactStore creates an empty in-memory contact store.
func NewMemoryContactStore() *MemoryContactStore {
	return &MemoryContactStore{
		contacts: make(map[string]*model.ContactRecord),
	}
}

// Save assigns an id and stores a copy of the record.
func (s *MemoryContactStore) Save(ctx context.Context, record *model.ContactRecord) (*model.ContactRecord, error) {
	stored := *record
	stored.ID = uuid.Must(uuid.NewV7()).String()
	stored.CreatedAt = time.Now()

	s.mu.Lock()
	s.contacts[stored.ID] = &stored
	s.mu.Unlock()

	return &stored, nil
}

// Get retrieves a saved contact by id.
func (s *MemoryContactStore) Get(id string) (*model.ContactRecord, error) {
	s.mu.RLock()
	record, exists := s.contacts[id]
	s.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("contact not found")
	}
	return record, nil
}

// Len reports the number of saved contacts.
func (s *MemoryContactStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contacts)
}
