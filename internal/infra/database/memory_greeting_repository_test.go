package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"birthday_greeting_bot/internal/domain/greeting"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduledGreeting(contactID string, year int) *greeting.Greeting {
	return &greeting.Greeting{
		ID:        uuid.NewString(),
		ContactID: contactID,
		Year:      year,
		SendAt:    time.Date(year, time.March, 15, 9, 0, 0, 0, time.UTC),
		Status:    greeting.StatusScheduled,
	}
}

func TestClaim_ExactlyOneWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryGreetingRepository()
	g := newScheduledGreeting("contact-1", 2024)
	require.NoError(t, repo.Create(ctx, g))

	const claimants = 16
	var wg sync.WaitGroup
	wins := make(chan bool, claimants)
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			claimed, err := repo.Claim(ctx, g.ID)
			assert.NoError(t, err)
			wins <- claimed
		}()
	}
	wg.Wait()
	close(wins)

	var winners int
	for won := range wins {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners)

	stored, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, greeting.StatusSending, stored.Status)
}

func TestClaim_UnknownOrNonScheduled(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryGreetingRepository()

	claimed, err := repo.Claim(ctx, "no-such-id")
	require.NoError(t, err)
	assert.False(t, claimed)

	g := newScheduledGreeting("contact-1", 2024)
	g.Status = greeting.StatusDelivered
	require.NoError(t, repo.Create(ctx, g))
	claimed, err = repo.Claim(ctx, g.ID)
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestFindScheduled_MatchesContactYearAndStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryGreetingRepository()

	match := newScheduledGreeting("contact-1", 2024)
	otherYear := newScheduledGreeting("contact-1", 2025)
	otherContact := newScheduledGreeting("contact-2", 2024)
	cancelled := newScheduledGreeting("contact-1", 2024)
	cancelled.Status = greeting.StatusCancelled
	for _, g := range []*greeting.Greeting{otherYear, otherContact, cancelled, match} {
		require.NoError(t, repo.Create(ctx, g))
	}

	got, err := repo.FindScheduled(ctx, "contact-1", 2024)
	require.NoError(t, err)
	assert.Equal(t, match.ID, got.ID)

	_, err = repo.FindScheduled(ctx, "contact-3", 2024)
	assert.ErrorIs(t, err, ErrGreetingNotFound)
}

func TestUpdate_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryGreetingRepository()

	g := newScheduledGreeting("contact-1", 2024)
	// Never created; update must not error and must not insert.
	require.NoError(t, repo.Update(ctx, g))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCancelScheduledByContact_LeavesOtherStatesAlone(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryGreetingRepository()

	scheduled := newScheduledGreeting("contact-1", 2024)
	delivered := newScheduledGreeting("contact-1", 2023)
	delivered.Status = greeting.StatusDelivered
	other := newScheduledGreeting("contact-2", 2024)
	for _, g := range []*greeting.Greeting{scheduled, delivered, other} {
		require.NoError(t, repo.Create(ctx, g))
	}

	cancelled, err := repo.CancelScheduledByContact(ctx, "contact-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), cancelled)

	s, _ := repo.GetByID(ctx, scheduled.ID)
	assert.Equal(t, greeting.StatusCancelled, s.Status)
	d, _ := repo.GetByID(ctx, delivered.ID)
	assert.Equal(t, greeting.StatusDelivered, d.Status)
	o, _ := repo.GetByID(ctx, other.ID)
	assert.Equal(t, greeting.StatusScheduled, o.Status)
}
