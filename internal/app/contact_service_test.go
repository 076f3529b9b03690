package app

import (
	"context"
	"testing"
	"time"

	"birthday_greeting_bot/internal/domain/greeting"
	idb "birthday_greeting_bot/internal/infra/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminID int64 = 42

func newTestContactService(cr *idb.MemoryContactRepository, gr *idb.MemoryGreetingRepository) *ContactService {
	scheduleSvc := NewScheduleService(cr, gr, testLogger())
	scheduleSvc.now = func() time.Time { return fixedNow }
	return NewContactService(cr, gr, scheduleSvc, adminID, testLogger())
}

func TestAddContact_CreatesAndArmsGreeting(t *testing.T) {
	ctx := context.Background()
	contactRepo, greetingRepo := newTestRepos()
	svc := newTestContactService(contactRepo, greetingRepo)

	c, err := svc.AddContact(ctx, adminID, "Alice", "+15550001111", time.March, 15)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.NotEmpty(t, c.ID)

	g, err := greetingRepo.FindScheduled(ctx, c.ID, fixedNow.Year())
	require.NoError(t, err)
	assert.Equal(t, greeting.StatusScheduled, g.Status)
	assert.Equal(t, "Alice", g.ContactName)
}

func TestAddContact_Validation(t *testing.T) {
	ctx := context.Background()
	contactRepo, greetingRepo := newTestRepos()
	svc := newTestContactService(contactRepo, greetingRepo)

	_, err := svc.AddContact(ctx, adminID, "Alice", "+15550001111", 13, 15)
	assert.ErrorIs(t, err, ErrInvalidBirthday)

	_, err = svc.AddContact(ctx, adminID, "Alice", "+15550001111", time.March, 0)
	assert.ErrorIs(t, err, ErrInvalidBirthday)

	_, err = svc.AddContact(ctx, adminID, "  <> ", "+15550001111", time.March, 15)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestContactService_RejectsNonAdmin(t *testing.T) {
	ctx := context.Background()
	contactRepo, greetingRepo := newTestRepos()
	svc := newTestContactService(contactRepo, greetingRepo)

	_, err := svc.AddContact(ctx, adminID+1, "Alice", "+15550001111", time.March, 15)
	assert.ErrorIs(t, err, ErrAdminNotAuthorized)

	_, err = svc.RemoveContact(ctx, adminID+1, "some-id")
	assert.ErrorIs(t, err, ErrAdminNotAuthorized)

	_, err = svc.ListContacts(ctx, adminID+1)
	assert.ErrorIs(t, err, ErrAdminNotAuthorized)
}

func TestRemoveContact_CascadeCancelsOnlyOwnScheduled(t *testing.T) {
	ctx := context.Background()
	contactRepo, greetingRepo := newTestRepos()
	svc := newTestContactService(contactRepo, greetingRepo)

	alice, err := svc.AddContact(ctx, adminID, "Alice", "+15550001111", time.March, 15)
	require.NoError(t, err)
	bob, err := svc.AddContact(ctx, adminID, "Bob", "+15550002222", time.June, 1)
	require.NoError(t, err)

	aliceGreeting, err := greetingRepo.FindScheduled(ctx, alice.ID, fixedNow.Year())
	require.NoError(t, err)

	cancelled, err := svc.RemoveContact(ctx, adminID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cancelled)

	// Alice's greeting is cancelled, never deleted.
	stored, err := greetingRepo.GetByID(ctx, aliceGreeting.ID)
	require.NoError(t, err)
	assert.Equal(t, greeting.StatusCancelled, stored.Status)

	// Alice is gone; Bob and his greeting are untouched.
	_, err = contactRepo.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, idb.ErrContactNotFound)
	bobGreeting, err := greetingRepo.FindScheduled(ctx, bob.ID, fixedNow.Year())
	require.NoError(t, err)
	assert.Equal(t, greeting.StatusScheduled, bobGreeting.Status)
}

func TestRemoveContact_UnknownContact(t *testing.T) {
	ctx := context.Background()
	contactRepo, greetingRepo := newTestRepos()
	svc := newTestContactService(contactRepo, greetingRepo)

	_, err := svc.RemoveContact(ctx, adminID, "no-such-id")
	assert.ErrorIs(t, err, idb.ErrContactNotFound)
}
