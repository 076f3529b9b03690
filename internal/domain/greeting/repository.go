package greeting

import "context"

// Repository defines operations for persisting and retrieving Greeting records.
// The store is the single source of truth for greeting state: dispatch
// re-reads it every cycle and never caches records across cycles.
type Repository interface {
	Create(ctx context.Context, g *Greeting) error
	GetByID(ctx context.Context, id string) (*Greeting, error)
	List(ctx context.Context) ([]*Greeting, error)

	// FindScheduled returns the SCHEDULED greeting for (contactID, year),
	// the dedup key enforced by the scheduler before creation.
	FindScheduled(ctx context.Context, contactID string, year int) (*Greeting, error)

	// Update persists the mutable fields of g (status, provider id, error
	// text, sent/delivered timestamps). Updating an unknown id is a no-op.
	Update(ctx context.Context, g *Greeting) error

	// Claim atomically flips the greeting from SCHEDULED to SENDING and
	// reports whether this caller won the claim. Exactly one of any number
	// of concurrent claimants succeeds.
	Claim(ctx context.Context, id string) (bool, error)

	// CancelScheduled transitions one greeting from SCHEDULED to CANCELLED
	// and reports whether it did. Like Claim it is a compare-and-swap on
	// status: a greeting already claimed for sending cannot be cancelled.
	CancelScheduled(ctx context.Context, id string) (bool, error)

	// CancelScheduledByContact transitions all SCHEDULED greetings of the
	// contact to CANCELLED and returns how many were cancelled. Records in
	// any other state are left untouched.
	CancelScheduledByContact(ctx context.Context, contactID string) (int64, error)
}
