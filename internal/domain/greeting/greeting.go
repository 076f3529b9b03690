package greeting

import (
	"database/sql"
	"time"
)

// Greeting is one scheduled birthday message for a specific calendar year.
// ContactName and PhoneNumber are snapshots taken at creation time so that
// a later contact deletion does not corrupt delivery history.
type Greeting struct {
	ID          string // opaque UUID
	ContactID   string
	ContactName string
	PhoneNumber string
	Body        string
	SendAt      time.Time
	Year        int // calendar year of SendAt; dedup key together with ContactID
	Status      Status
	ProviderID  sql.NullString
	ErrorText   sql.NullString
	SentAt      sql.NullTime
	DeliveredAt sql.NullTime
	CreatedAt   time.Time
}
