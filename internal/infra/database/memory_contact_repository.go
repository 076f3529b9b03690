package database

import (
	"context"
	"sort"
	"sync"

	"birthday_greeting_bot/internal/domain/contact"
)

// MemoryContactRepository is an in-memory contact.Repository. It backs the
// tests and lets the service run without a database in degraded mode. It
// lives in infra next to the postgres repository so both share the same
// sentinel errors.
type MemoryContactRepository struct {
	mu       sync.Mutex
	contacts map[string]contact.Contact
}

func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{contacts: make(map[string]contact.Contact)}
}

func (r *MemoryContactRepository) Create(_ context.Context, c *contact.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.contacts[c.ID]; exists {
		return ErrDuplicateContact
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = nowUTC()
	}
	r.contacts[c.ID] = *c
	return nil
}

func (r *MemoryContactRepository) GetByID(_ context.Context, id string) (*contact.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[id]
	if !ok {
		return nil, ErrContactNotFound
	}
	out := c
	return &out, nil
}

func (r *MemoryContactRepository) List(_ context.Context) ([]*contact.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contacts := make([]*contact.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		out := c
		contacts = append(contacts, &out)
	}
	// Same enumeration order as the postgres repository.
	sort.Slice(contacts, func(i, j int) bool {
		if contacts[i].Name != contacts[j].Name {
			return contacts[i].Name < contacts[j].Name
		}
		return contacts[i].CreatedAt.Before(contacts[j].CreatedAt)
	})
	return contacts, nil
}

func (r *MemoryContactRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[id]; !ok {
		return ErrContactNotFound
	}
	delete(r.contacts, id)
	return nil
}
