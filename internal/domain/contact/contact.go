package contact

import "time"

// Contact is a person we send a yearly birthday greeting to.
// A contact is immutable once created; the only lifecycle operation is
// deletion, which cascade-cancels any still-scheduled greetings.
type Contact struct {
	ID            string // opaque UUID
	Name          string
	PhoneNumber   string
	BirthdayMonth time.Month
	BirthdayDay   int
	CreatedAt     time.Time
}
