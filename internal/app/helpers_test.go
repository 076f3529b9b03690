package app

import (
	"context"
	"io"
	"sync"
	"time"

	"birthday_greeting_bot/internal/domain/contact"
	idb "birthday_greeting_bot/internal/infra/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l.WithField("component", "test")
}

// fakeGateway records sends and returns a canned result.
type fakeGateway struct {
	mu         sync.Mutex
	providerID string
	err        error
	calls      []string // phone numbers in send order
}

func (f *fakeGateway) Send(_ context.Context, phoneNumber, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, phoneNumber)
	if f.err != nil {
		return "", f.err
	}
	return f.providerID, nil
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestContact(name string, month time.Month, day int) *contact.Contact {
	return &contact.Contact{
		ID:            uuid.NewString(),
		Name:          name,
		PhoneNumber:   "+15550001111",
		BirthdayMonth: month,
		BirthdayDay:   day,
	}
}

func newTestRepos() (*idb.MemoryContactRepository, *idb.MemoryGreetingRepository) {
	return idb.NewMemoryContactRepository(), idb.NewMemoryGreetingRepository()
}
