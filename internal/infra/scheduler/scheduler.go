package scheduler

import (
	"context"
	"time"

	"birthday_greeting_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// GreetingScheduler wires the dispatch cycle and the daily scheduling
// sweep onto cron triggers. Job errors are logged and swallowed so a bad
// cycle never kills the timer.
type GreetingScheduler struct {
	cronEngine       *cron.Cron
	dispatchSvc      *app.DispatchService
	scheduleSvc      *app.ScheduleService
	logger           *logrus.Entry
	cronSpecDispatch string
	cronSpecSweep    string
}

func NewGreetingScheduler(
	dispatchSvc *app.DispatchService,
	scheduleSvc *app.ScheduleService,
	logger *logrus.Entry,
	cronSpecDispatch string, // e.g. "@every 1m"
	cronSpecSweep string, // e.g. "0 8 * * *" (08:00 daily)
) *GreetingScheduler {
	return &GreetingScheduler{
		cronEngine:       cron.New(cron.WithLocation(time.Local)),
		dispatchSvc:      dispatchSvc,
		scheduleSvc:      scheduleSvc,
		logger:           logger,
		cronSpecDispatch: cronSpecDispatch,
		cronSpecSweep:    cronSpecSweep,
	}
}

func (s *GreetingScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpecDispatch, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := s.dispatchSvc.RunCycle(ctx); err != nil {
			s.logger.WithError(err).Error("Dispatch cycle failed")
		}
	})
	if err != nil {
		return err
	}

	_, err = s.cronEngine.AddFunc(s.cronSpecSweep, func() {
		s.logger.Info("Daily scheduling sweep triggered")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := s.scheduleSvc.ScheduleAll(ctx); err != nil {
			s.logger.WithError(err).Error("Daily scheduling sweep failed")
		}
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.WithFields(logrus.Fields{
		"dispatch_spec": s.cronSpecDispatch,
		"sweep_spec":    s.cronSpecSweep,
	}).Info("Greeting scheduler started")
	return nil
}

func (s *GreetingScheduler) Stop() {
	s.logger.Info("Stopping greeting scheduler...")
	ctx := s.cronEngine.Stop() // waits for running jobs
	<-ctx.Done()
	s.logger.Info("Greeting scheduler stopped")
}
