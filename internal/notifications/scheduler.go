package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"io.winapps.moodjournal/internal/config"
	"io.winapps.moodjournal/internal/journal"
	journalmodels "io.winapps.moodjournal/internal/models/journal"
)

const jobTimeout = 30 * time.Second

var dailyPrompts = []string{
	"How are you feeling today? Take a minute to write it down.",
	"What was the best moment of your day?",
	"Is anything weighing on you today? Writing it down can help.",
	"What are you grateful for today?",
	"What gave you energy today, and what drained it?",
	"Describe today in a few sentences.",
	"What would make tomorrow a little better?",
}

// promptFor picks the reminder text for a calendar day
func promptFor(day time.Time) string {
	return dailyPrompts[day.YearDay()%len(dailyPrompts)]
}

// Scheduler runs the daily reminder and the weekly digest on cron schedules
type Scheduler struct {
	cron     *cron.Cron
	notifier Notifier
	tokens   *TokenStore
	entries  *journal.Store
	location *time.Location
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewScheduler(cfg config.NotificationsConfig, notifier Notifier, tokens *TokenStore, entries *journal.Store, logger *zap.SugaredLogger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	loc := cfg.Timezone
	if loc == nil {
		loc = time.UTC
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		notifier: notifier,
		tokens:   tokens,
		entries:  entries,
		location: loc,
		logger:   logger,
		now:      time.Now,
	}

	if _, err := s.cron.AddFunc(cfg.DailyReminderSpec, s.runJob("daily_reminder", s.SendDailyReminder)); err != nil {
		return nil, fmt.Errorf("invalid daily reminder schedule %q: %w", cfg.DailyReminderSpec, err)
	}
	if _, err := s.cron.AddFunc(cfg.WeeklyDigestSpec, s.runJob("weekly_digest", s.SendWeeklyDigest)); err != nil {
		return nil, fmt.Errorf("invalid weekly digest schedule %q: %w", cfg.WeeklyDigestSpec, err)
	}

	return s, nil
}

func (s *Scheduler) runJob(name string, job func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		err := job(ctx)
		switch {
		case errors.Is(err, ErrNoPushToken):
			s.logger.Infow("no push token registered, skipping notification", "job", name)
		case err != nil:
			s.logger.Errorw("notification job failed", "job", name, "error", err)
		}
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Infow("notification scheduler started", "timezone", s.location.String(), "jobs", len(s.cron.Entries()))
}

// Stop halts the schedule and waits for running jobs or ctx, whichever ends first
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warnw("notification scheduler stop timed out")
	}
}

// SendDailyReminder nudges the user to write, unless today's entry already exists
func (s *Scheduler) SendDailyReminder(ctx context.Context) error {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		return err
	}

	loc := s.deviceLocation(token.Timezone)
	today := s.now().In(loc)
	if wroteOn(s.entries.LoadAll(ctx), today) {
		s.logger.Infow("entry already written today, skipping reminder")
		return nil
	}

	prompt := promptFor(today)
	return s.notifier.Send(ctx, token.Target(), Notification{
		Title:     "Daily Mood Check-in",
		Body:      prompt,
		ChannelID: "reminders",
		Data: map[string]string{
			"type":   "daily_reminder",
			"prompt": prompt,
			"date":   today.Format("2006-01-02"),
		},
	})
}

// SendWeeklyDigest pushes the weekly trend sentence
func (s *Scheduler) SendWeeklyDigest(ctx context.Context) error {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		return err
	}

	stats := journal.Weekly(s.entries.LoadAll(ctx), s.now())
	return s.notifier.Send(ctx, token.Target(), Notification{
		Title:     "Your Week in Moods",
		Body:      stats.Sentence(),
		ChannelID: "digests",
		Data: map[string]string{
			"type":  "weekly_digest",
			"trend": string(stats.Trend),
		},
	})
}

// deviceLocation resolves the timezone the device registered with, falling
// back to the scheduler's own location
func (s *Scheduler) deviceLocation(name string) *time.Location {
	if name == "" {
		return s.location
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		s.logger.Warnw("unknown device timezone, using scheduler timezone", "timezone", name, "error", err)
		return s.location
	}
	return loc
}

// wroteOn reports whether an entry exists on day's calendar date in day's location
func wroteOn(entries []journalmodels.Entry, day time.Time) bool {
	loc := day.Location()
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	for _, e := range entries {
		created, err := e.CreatedAt()
		if err != nil {
			continue
		}
		local := created.In(loc)
		cy, cm, cd := local.Date()
		if cy == y && cm == m && cd == d {
			return true
		}
		// Entries are newest first; anything older than the day ends the scan
		if local.Before(start) {
			return false
		}
	}
	return false
}
