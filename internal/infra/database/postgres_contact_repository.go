package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"birthday_greeting_bot/internal/domain/contact"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrContactNotFound = fmt.Errorf("contact not found")
var ErrDuplicateContact = fmt.Errorf("contact with this id already exists")

type PostgresContactRepository struct {
	db *sql.DB
}

func NewPostgresContactRepository(db *sql.DB) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

func (r *PostgresContactRepository) Create(ctx context.Context, c *contact.Contact) error {
	query := `INSERT INTO contacts (id, name, phone_number, birthday_month, birthday_day)
               VALUES ($1, $2, $3, $4, $5)
               RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, c.ID, c.Name, c.PhoneNumber, int(c.BirthdayMonth), c.BirthdayDay).Scan(&c.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "contacts_pkey") {
			return ErrDuplicateContact
		}
		return fmt.Errorf("error creating contact: %w", err)
	}
	return nil
}

func (r *PostgresContactRepository) GetByID(ctx context.Context, id string) (*contact.Contact, error) {
	query := `SELECT id, name, phone_number, birthday_month, birthday_day, created_at
               FROM contacts WHERE id = $1`
	c := &contact.Contact{}
	var month int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.PhoneNumber, &month, &c.BirthdayDay, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("error getting contact by ID: %w", err)
	}
	c.BirthdayMonth = time.Month(month)
	return c, nil
}

func (r *PostgresContactRepository) List(ctx context.Context) ([]*contact.Contact, error) {
	query := `SELECT id, name, phone_number, birthday_month, birthday_day, created_at
               FROM contacts ORDER BY name, created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]*contact.Contact, 0)
	for rows.Next() {
		c := &contact.Contact{}
		var month int
		if err := rows.Scan(&c.ID, &c.Name, &c.PhoneNumber, &month, &c.BirthdayDay, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning contact: %w", err)
		}
		c.BirthdayMonth = time.Month(month)
		contacts = append(contacts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}
	return contacts, nil
}

func (r *PostgresContactRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting contact: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted contact rows: %w", err)
	}
	if affected == 0 {
		return ErrContactNotFound
	}
	return nil
}
