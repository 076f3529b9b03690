package app

import (
	"context"
	"fmt"
	"time"

	"birthday_greeting_bot/internal/domain/contact"
	"birthday_greeting_bot/internal/domain/greeting"
	idb "birthday_greeting_bot/internal/infra/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Custom application-level errors for contact administration
var ErrAdminNotAuthorized = fmt.Errorf("performing user is not authorized as an admin")
var ErrInvalidBirthday = fmt.Errorf("birthday must be a valid month (1-12) and day (1-31)")
var ErrEmptyName = fmt.Errorf("contact name cannot be empty")

// ContactService handles the admin-facing contact lifecycle.
type ContactService struct {
	contactRepo     contact.Repository
	greetingRepo    greeting.Repository
	scheduleSvc     *ScheduleService
	adminTelegramID int64
	logger          *logrus.Entry
}

func NewContactService(
	cr contact.Repository,
	gr greeting.Repository,
	ss *ScheduleService,
	adminID int64,
	logger *logrus.Entry,
) *ContactService {
	return &ContactService{
		contactRepo:     cr,
		greetingRepo:    gr,
		scheduleSvc:     ss,
		adminTelegramID: adminID,
		logger:          logger,
	}
}

// AddContact creates a contact and immediately arms its first greeting.
func (s *ContactService) AddContact(ctx context.Context, performingAdminID int64, name, phoneNumber string, month time.Month, day int) (*contact.Contact, error) {
	if performingAdminID != s.adminTelegramID {
		return nil, ErrAdminNotAuthorized
	}
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return nil, ErrInvalidBirthday
	}
	if greeting.SanitizeName(name) == "" {
		return nil, ErrEmptyName
	}

	c := &contact.Contact{
		ID:            uuid.NewString(),
		Name:          name,
		PhoneNumber:   phoneNumber,
		BirthdayMonth: month,
		BirthdayDay:   day,
	}
	if err := s.contactRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"contact_id": c.ID,
		"birthday":   fmt.Sprintf("%02d-%02d", int(month), day),
	}).Info("Contact added")

	// Arming failure is recoverable (daily sweep catches it), so it does
	// not fail the add.
	if _, err := s.scheduleSvc.EnsureScheduled(ctx, c.ID); err != nil {
		s.logger.WithError(err).WithField("contact_id", c.ID).Error("Failed to arm first greeting for new contact")
	}
	return c, nil
}

// RemoveContact deletes the contact and cascade-cancels its SCHEDULED
// greetings. Cancelled greetings stay in history; greetings in any other
// state are untouched. Returns how many greetings were cancelled.
func (s *ContactService) RemoveContact(ctx context.Context, performingAdminID int64, contactID string) (int64, error) {
	if performingAdminID != s.adminTelegramID {
		return 0, ErrAdminNotAuthorized
	}

	if _, err := s.contactRepo.GetByID(ctx, contactID); err != nil {
		if err == idb.ErrContactNotFound {
			return 0, idb.ErrContactNotFound
		}
		return 0, fmt.Errorf("failed to get contact for removal: %w", err)
	}

	// Cancel first so there is no window where a deleted contact still has
	// a live scheduled greeting.
	cancelled, err := s.greetingRepo.CancelScheduledByContact(ctx, contactID)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel scheduled greetings: %w", err)
	}

	if err := s.contactRepo.Delete(ctx, contactID); err != nil {
		return cancelled, fmt.Errorf("failed to delete contact: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"contact_id":          contactID,
		"cancelled_greetings": cancelled,
	}).Info("Contact removed")
	return cancelled, nil
}

// ListContacts returns all contacts for the admin overview.
func (s *ContactService) ListContacts(ctx context.Context, performingAdminID int64) ([]*contact.Contact, error) {
	if performingAdminID != s.adminTelegramID {
		return nil, ErrAdminNotAuthorized
	}
	return s.contactRepo.List(ctx)
}
