package app

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"birthday_greeting_bot/internal/domain/gateway"
	"birthday_greeting_bot/internal/domain/greeting"

	"github.com/sirupsen/logrus"
)

// DispatchService drives the delivery state machine. One cycle scans the
// store for due SCHEDULED greetings, claims them one at a time, sends
// through the injected gateway client, and re-arms next year's greeting
// after a delivered send.
type DispatchService struct {
	greetingRepo greeting.Repository
	gatewayCli   gateway.Client
	scheduleSvc  *ScheduleService
	logger       *logrus.Entry
	confirmDelay time.Duration // stand-in for a real delivery receipt
	now          func() time.Time

	// mu makes cycles single-flight: an overlapping tick is skipped
	// instead of racing the running cycle over the same greetings.
	mu sync.Mutex
}

func NewDispatchService(
	gr greeting.Repository,
	gc gateway.Client,
	ss *ScheduleService,
	logger *logrus.Entry,
	confirmDelay time.Duration,
) *DispatchService {
	return &DispatchService{
		greetingRepo: gr,
		gatewayCli:   gc,
		scheduleSvc:  ss,
		logger:       logger,
		confirmDelay: confirmDelay,
		now:          time.Now,
	}
}

// RunCycle executes one dispatch cycle. Greetings are processed
// sequentially in store enumeration order; per-greeting send failures are
// recorded on the greeting itself and never abort the cycle. Only store
// errors are returned.
func (s *DispatchService) RunCycle(ctx context.Context) error {
	if !s.mu.TryLock() {
		s.logger.Warn("Previous dispatch cycle still running; skipping this tick")
		return nil
	}
	defer s.mu.Unlock()

	greetings, err := s.greetingRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list greetings: %w", err)
	}

	now := s.now()
	for _, g := range greetings {
		if g.Status != greeting.StatusScheduled || g.SendAt.After(now) {
			continue
		}
		if err := s.dispatchOne(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

func (s *DispatchService) dispatchOne(ctx context.Context, g *greeting.Greeting) error {
	logCtx := s.logger.WithFields(logrus.Fields{
		"greeting_id": g.ID,
		"contact_id":  g.ContactID,
	})

	// Claim before sending: a crash mid-send leaves a visible SENDING
	// record instead of a greeting that silently re-queues.
	claimed, err := s.greetingRepo.Claim(ctx, g.ID)
	if err != nil {
		return fmt.Errorf("failed to claim greeting %s: %w", g.ID, err)
	}
	if !claimed {
		logCtx.Debug("Greeting claimed elsewhere; skipping")
		return nil
	}
	g.Status = greeting.StatusSending

	providerID, sendErr := s.gatewayCli.Send(ctx, g.PhoneNumber, g.Body)
	if sendErr != nil {
		g.Status = greeting.StatusFailed
		g.ErrorText = sql.NullString{String: sendErr.Error(), Valid: true}
		if err := s.greetingRepo.Update(ctx, g); err != nil {
			return fmt.Errorf("failed to record send failure for greeting %s: %w", g.ID, err)
		}
		logCtx.WithField("error_text", sendErr.Error()).Error("Greeting send failed; marked FAILED")
		return nil
	}

	g.Status = greeting.StatusSent
	g.ProviderID = sql.NullString{String: providerID, Valid: true}
	g.SentAt = sql.NullTime{Time: s.now(), Valid: true}
	if err := s.greetingRepo.Update(ctx, g); err != nil {
		return fmt.Errorf("failed to record sent greeting %s: %w", g.ID, err)
	}
	logCtx.WithField("provider_id", providerID).Info("Greeting sent")

	if err := s.waitConfirmDelay(ctx); err != nil {
		return err
	}

	g.Status = greeting.StatusDelivered
	g.DeliveredAt = sql.NullTime{Time: s.now(), Valid: true}
	if err := s.greetingRepo.Update(ctx, g); err != nil {
		return fmt.Errorf("failed to record delivered greeting %s: %w", g.ID, err)
	}
	logCtx.Info("Greeting delivered")

	// Re-arm next year's greeting right away instead of waiting for the
	// daily sweep.
	if _, err := s.scheduleSvc.EnsureScheduled(ctx, g.ContactID); err != nil {
		logCtx.WithError(err).Error("Failed to re-arm next greeting after delivery")
	}
	return nil
}

// waitConfirmDelay pauses before the SENT -> DELIVERED transition. This is
// a placeholder for a real delivery receipt; the transition itself is a
// plain repository update so an inbound receipt event can drive it later.
func (s *DispatchService) waitConfirmDelay(ctx context.Context) error {
	if s.confirmDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.confirmDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
