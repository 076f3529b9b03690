package database

import (
	"context"
	"database/sql"
	"fmt"

	"birthday_greeting_bot/internal/domain/greeting"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrGreetingNotFound = fmt.Errorf("greeting not found")

type PostgresGreetingRepository struct {
	db *sql.DB
}

func NewPostgresGreetingRepository(db *sql.DB) *PostgresGreetingRepository {
	return &PostgresGreetingRepository{db: db}
}

const greetingColumns = `id, contact_id, contact_name, phone_number, body, send_at, year,
               status, provider_id, error_text, sent_at, delivered_at, created_at`

func (r *PostgresGreetingRepository) Create(ctx context.Context, g *greeting.Greeting) error {
	query := `INSERT INTO greetings (id, contact_id, contact_name, phone_number, body, send_at, year, status)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
               RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		g.ID, g.ContactID, g.ContactName, g.PhoneNumber, g.Body, g.SendAt, g.Year, g.Status,
	).Scan(&g.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating greeting: %w", err)
	}
	return nil
}

func scanGreeting(row *sql.Row) (*greeting.Greeting, error) {
	g := &greeting.Greeting{}
	err := row.Scan(
		&g.ID, &g.ContactID, &g.ContactName, &g.PhoneNumber, &g.Body, &g.SendAt, &g.Year,
		&g.Status, &g.ProviderID, &g.ErrorText, &g.SentAt, &g.DeliveredAt, &g.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrGreetingNotFound
		}
		return nil, fmt.Errorf("error scanning greeting row: %w", err)
	}
	return g, nil
}

func (r *PostgresGreetingRepository) GetByID(ctx context.Context, id string) (*greeting.Greeting, error) {
	query := `SELECT ` + greetingColumns + ` FROM greetings WHERE id = $1`
	return scanGreeting(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresGreetingRepository) FindScheduled(ctx context.Context, contactID string, year int) (*greeting.Greeting, error) {
	query := `SELECT ` + greetingColumns + ` FROM greetings
               WHERE contact_id = $1 AND year = $2 AND status = $3
               ORDER BY created_at DESC LIMIT 1`
	return scanGreeting(r.db.QueryRowContext(ctx, query, contactID, year, greeting.StatusScheduled))
}

func (r *PostgresGreetingRepository) List(ctx context.Context) ([]*greeting.Greeting, error) {
	query := `SELECT ` + greetingColumns + ` FROM greetings ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing greetings: %w", err)
	}
	defer rows.Close()

	greetings := make([]*greeting.Greeting, 0)
	for rows.Next() {
		g := &greeting.Greeting{}
		if err := rows.Scan(
			&g.ID, &g.ContactID, &g.ContactName, &g.PhoneNumber, &g.Body, &g.SendAt, &g.Year,
			&g.Status, &g.ProviderID, &g.ErrorText, &g.SentAt, &g.DeliveredAt, &g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning greeting: %w", err)
		}
		greetings = append(greetings, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating greetings: %w", err)
	}
	return greetings, nil
}

// Update persists the mutable lifecycle fields. Unknown ids are a no-op per
// the repository contract.
func (r *PostgresGreetingRepository) Update(ctx context.Context, g *greeting.Greeting) error {
	query := `UPDATE greetings
               SET status = $1, provider_id = $2, error_text = $3, sent_at = $4, delivered_at = $5
               WHERE id = $6`
	_, err := r.db.ExecContext(ctx, query, g.Status, g.ProviderID, g.ErrorText, g.SentAt, g.DeliveredAt, g.ID)
	if err != nil {
		return fmt.Errorf("error updating greeting: %w", err)
	}
	return nil
}

// Claim is the atomic compare-and-swap that promotes a greeting out of
// SCHEDULED. The WHERE clause on status guarantees that of any number of
// concurrent claimants exactly one sees an affected row.
func (r *PostgresGreetingRepository) Claim(ctx context.Context, id string) (bool, error) {
	query := `UPDATE greetings SET status = $1 WHERE id = $2 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, greeting.StatusSending, id, greeting.StatusScheduled)
	if err != nil {
		return false, fmt.Errorf("error claiming greeting: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error checking claimed greeting rows: %w", err)
	}
	return affected == 1, nil
}

func (r *PostgresGreetingRepository) CancelScheduled(ctx context.Context, id string) (bool, error) {
	query := `UPDATE greetings SET status = $1 WHERE id = $2 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, greeting.StatusCancelled, id, greeting.StatusScheduled)
	if err != nil {
		return false, fmt.Errorf("error cancelling greeting: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error checking cancelled greeting rows: %w", err)
	}
	return affected == 1, nil
}

func (r *PostgresGreetingRepository) CancelScheduledByContact(ctx context.Context, contactID string) (int64, error) {
	query := `UPDATE greetings SET status = $1 WHERE contact_id = $2 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, greeting.StatusCancelled, contactID, greeting.StatusScheduled)
	if err != nil {
		return 0, fmt.Errorf("error cancelling scheduled greetings: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error checking cancelled greeting rows: %w", err)
	}
	return affected, nil
}
