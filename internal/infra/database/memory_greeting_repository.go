package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"birthday_greeting_bot/internal/domain/greeting"
)

func nowUTC() time.Time { return time.Now().UTC() }

// MemoryGreetingRepository is an in-memory greeting.Repository with the
// same claim and cascade-cancel semantics as the postgres implementation.
type MemoryGreetingRepository struct {
	mu        sync.Mutex
	greetings map[string]greeting.Greeting
}

func NewMemoryGreetingRepository() *MemoryGreetingRepository {
	return &MemoryGreetingRepository{greetings: make(map[string]greeting.Greeting)}
}

func (r *MemoryGreetingRepository) Create(_ context.Context, g *greeting.Greeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = nowUTC()
	}
	r.greetings[g.ID] = *g
	return nil
}

func (r *MemoryGreetingRepository) GetByID(_ context.Context, id string) (*greeting.Greeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.greetings[id]
	if !ok {
		return nil, ErrGreetingNotFound
	}
	out := g
	return &out, nil
}

func (r *MemoryGreetingRepository) List(_ context.Context) ([]*greeting.Greeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	greetings := make([]*greeting.Greeting, 0, len(r.greetings))
	for _, g := range r.greetings {
		out := g
		greetings = append(greetings, &out)
	}
	sort.Slice(greetings, func(i, j int) bool {
		if !greetings[i].CreatedAt.Equal(greetings[j].CreatedAt) {
			return greetings[i].CreatedAt.Before(greetings[j].CreatedAt)
		}
		return greetings[i].ID < greetings[j].ID
	})
	return greetings, nil
}

func (r *MemoryGreetingRepository) FindScheduled(_ context.Context, contactID string, year int) (*greeting.Greeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.greetings {
		if g.ContactID == contactID && g.Year == year && g.Status == greeting.StatusScheduled {
			out := g
			return &out, nil
		}
	}
	return nil, ErrGreetingNotFound
}

func (r *MemoryGreetingRepository) Update(_ context.Context, g *greeting.Greeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.greetings[g.ID]
	if !ok {
		return nil // no-op per contract
	}
	stored.Status = g.Status
	stored.ProviderID = g.ProviderID
	stored.ErrorText = g.ErrorText
	stored.SentAt = g.SentAt
	stored.DeliveredAt = g.DeliveredAt
	r.greetings[g.ID] = stored
	return nil
}

func (r *MemoryGreetingRepository) Claim(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.greetings[id]
	if !ok || g.Status != greeting.StatusScheduled {
		return false, nil
	}
	g.Status = greeting.StatusSending
	r.greetings[id] = g
	return true, nil
}

func (r *MemoryGreetingRepository) CancelScheduled(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.greetings[id]
	if !ok || g.Status != greeting.StatusScheduled {
		return false, nil
	}
	g.Status = greeting.StatusCancelled
	r.greetings[id] = g
	return true, nil
}

func (r *MemoryGreetingRepository) CancelScheduledByContact(_ context.Context, contactID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cancelled int64
	for id, g := range r.greetings {
		if g.ContactID == contactID && g.Status == greeting.StatusScheduled {
			g.Status = greeting.StatusCancelled
			r.greetings[id] = g
			cancelled++
		}
	}
	return cancelled, nil
}
