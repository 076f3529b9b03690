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

// Custom application-level errors for scheduling
var ErrGreetingNotResendable = fmt.Errorf("only failed greetings can be resent")
var ErrGreetingNotCancellable = fmt.Errorf("greeting is not in a cancellable state")
var ErrGreetingAlreadyScheduled = fmt.Errorf("a scheduled greeting already exists for this contact and year")

// ScheduleService arms yearly greetings: one SCHEDULED greeting per
// (contact, year), created lazily and re-armed after each delivery.
type ScheduleService struct {
	contactRepo  contact.Repository
	greetingRepo greeting.Repository
	logger       *logrus.Entry
	now          func() time.Time
}

func NewScheduleService(cr contact.Repository, gr greeting.Repository, logger *logrus.Entry) *ScheduleService {
	return &ScheduleService{
		contactRepo:  cr,
		greetingRepo: gr,
		logger:       logger,
		now:          time.Now,
	}
}

// EnsureScheduled guarantees a SCHEDULED greeting exists for the contact's
// next birthday. It returns the existing greeting unchanged when one is
// already armed (idempotent), and (nil, nil) when the contact no longer
// exists — a normal race with deletion, not an error.
func (s *ScheduleService) EnsureScheduled(ctx context.Context, contactID string) (*greeting.Greeting, error) {
	c, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		if err == idb.ErrContactNotFound {
			s.logger.WithField("contact_id", contactID).Info("Contact no longer exists; nothing to schedule")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contact %s: %w", contactID, err)
	}

	sendAt := greeting.NextSendTime(c.BirthdayMonth, c.BirthdayDay, s.now())
	year := sendAt.Year()

	existing, err := s.greetingRepo.FindScheduled(ctx, c.ID, year)
	if err == nil {
		s.logger.WithFields(logrus.Fields{
			"contact_id":  c.ID,
			"greeting_id": existing.ID,
			"year":        year,
		}).Debug("Greeting already scheduled; skipping creation")
		return existing, nil
	}
	if err != idb.ErrGreetingNotFound {
		return nil, fmt.Errorf("failed to check existing greeting for contact %s: %w", c.ID, err)
	}

	g := &greeting.Greeting{
		ID:          uuid.NewString(),
		ContactID:   c.ID,
		ContactName: c.Name,
		PhoneNumber: c.PhoneNumber,
		Body:        greeting.Render("", c.Name),
		SendAt:      sendAt,
		Year:        year,
		Status:      greeting.StatusScheduled,
	}
	if err := s.greetingRepo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create greeting for contact %s: %w", c.ID, err)
	}

	s.logger.WithFields(logrus.Fields{
		"contact_id":  c.ID,
		"greeting_id": g.ID,
		"send_at":     g.SendAt.Format(time.RFC3339),
	}).Info("Greeting scheduled")
	return g, nil
}

// ScheduleAll applies EnsureScheduled to every known contact. Used at
// process start and as the daily sweep; per-contact failures are logged
// and do not stop the sweep.
func (s *ScheduleService) ScheduleAll(ctx context.Context) ([]*greeting.Greeting, error) {
	contacts, err := s.contactRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	greetings := make([]*greeting.Greeting, 0, len(contacts))
	for _, c := range contacts {
		g, err := s.EnsureScheduled(ctx, c.ID)
		if err != nil {
			s.logger.WithError(err).WithField("contact_id", c.ID).Error("Failed to schedule greeting")
			continue
		}
		if g != nil {
			greetings = append(greetings, g)
		}
	}
	s.logger.WithField("count", len(greetings)).Info("Scheduling sweep complete")
	return greetings, nil
}

// Cancel transitions a single SCHEDULED greeting to CANCELLED. Once the
// dispatcher has claimed it the in-flight send runs to completion and the
// cancel is rejected.
func (s *ScheduleService) Cancel(ctx context.Context, greetingID string) error {
	cancelled, err := s.greetingRepo.CancelScheduled(ctx, greetingID)
	if err != nil {
		return fmt.Errorf("failed to cancel greeting %s: %w", greetingID, err)
	}
	if !cancelled {
		if _, err := s.greetingRepo.GetByID(ctx, greetingID); err != nil {
			return err
		}
		return ErrGreetingNotCancellable
	}
	s.logger.WithField("greeting_id", greetingID).Info("Greeting cancelled")
	return nil
}

// Resend creates a fresh greeting, due immediately, from a failed one.
// Failed greetings are terminal; their id is never reused.
func (s *ScheduleService) Resend(ctx context.Context, greetingID string) (*greeting.Greeting, error) {
	failed, err := s.greetingRepo.GetByID(ctx, greetingID)
	if err != nil {
		return nil, err
	}
	if failed.Status != greeting.StatusFailed {
		return nil, ErrGreetingNotResendable
	}

	now := s.now()
	if _, err := s.greetingRepo.FindScheduled(ctx, failed.ContactID, now.Year()); err == nil {
		return nil, ErrGreetingAlreadyScheduled
	} else if err != idb.ErrGreetingNotFound {
		return nil, fmt.Errorf("failed to check existing greeting for contact %s: %w", failed.ContactID, err)
	}

	g := &greeting.Greeting{
		ID:          uuid.NewString(),
		ContactID:   failed.ContactID,
		ContactName: failed.ContactName,
		PhoneNumber: failed.PhoneNumber,
		Body:        failed.Body,
		SendAt:      now,
		Year:        now.Year(),
		Status:      greeting.StatusScheduled,
	}
	if err := s.greetingRepo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create resend greeting: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"failed_greeting_id": failed.ID,
		"new_greeting_id":    g.ID,
	}).Info("Failed greeting queued for resend")
	return g, nil
}
