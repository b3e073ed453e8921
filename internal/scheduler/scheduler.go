// Package scheduler runs the polling loop that delivers event reminders
// and start notifications.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aokisa/guild-reminder/internal/model"
)

//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler/mocks.go -package=mocks
type eventStore interface {
	LoadAll(ctx context.Context) ([]model.Event, error)
	SaveAll(ctx context.Context, events []model.Event) error
}

type notifier interface {
	ResolveChannel(ctx context.Context, channelID string) (string, error)
	Send(ctx context.Context, channelID, text string) error
}

// Config controls the polling loop timing.
type Config struct {
	// Interval between ticks.
	Interval time.Duration
	// Tolerance is the acceptable lateness of a reminder. Delivery is
	// never skipped for lateness; a reminder delivered more than
	// Tolerance after its threshold is logged as late. Must be at least
	// Interval.
	Tolerance time.Duration
	// SendTimeout bounds each notifier call so one unreachable channel
	// cannot stall the whole tick.
	SendTimeout time.Duration
}

// Scheduler polls the event store on a fixed interval and notifies once
// per reminder threshold and once at event start. Sent thresholds are
// recorded back into the store, which makes redelivery after a missed
// write possible: delivery is at-least-once, not exactly-once.
type Scheduler struct {
	store    eventStore
	notifier notifier
	cfg      Config
	strategy retry.Strategy
	now      func() time.Time
}

// New creates a scheduler. The retry strategy is applied to each
// individual notifier send within a tick; a send that still fails is
// retried on the next tick.
func New(store eventStore, n notifier, cfg Config, strategy retry.Strategy) *Scheduler {
	return &Scheduler{
		store:    store,
		notifier: n,
		cfg:      cfg,
		strategy: strategy,
		now:      time.Now,
	}
}

// Run polls until ctx is cancelled. The first tick happens immediately.
func (s *Scheduler) Run(ctx context.Context) {
	zlog.Logger.Info().Dur("interval", s.cfg.Interval).Msg("event scheduler started")

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			zlog.Logger.Info().Msg("event scheduler stopped")
			return
		}

		s.tick(ctx)

		select {
		case <-ctx.Done():
			zlog.Logger.Info().Msg("event scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}

// tick evaluates every stored event against a single time snapshot and
// writes the retained set back. Events whose start notification has been
// delivered are dropped from the retained set.
func (s *Scheduler) tick(ctx context.Context) {
	now := s.now().UTC()

	events, err := s.store.LoadAll(ctx)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to load events, skipping tick")
		return
	}

	retained := make([]model.Event, 0, len(events))
	for i := range events {
		ev := events[i]
		if s.process(ctx, now, &ev) {
			retained = append(retained, ev)
		}
	}

	if err := s.store.SaveAll(ctx, retained); err != nil {
		// Flags set this tick are lost; the affected notifications will
		// be delivered again next tick.
		zlog.Logger.Error().Err(err).Msg("failed to persist events after tick")
	}
}

// process handles one event and reports whether it should be retained.
// It never lets an event-level failure abort the tick.
func (s *Scheduler) process(ctx context.Context, now time.Time, ev *model.Event) (keep bool) {
	defer func() {
		if r := recover(); r != nil {
			zlog.Logger.Error().Interface("panic", r).Str("event_id", ev.ID.String()).Msg("panic while processing event")
			keep = true
		}
	}()

	resolveCtx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
	defer cancel()

	if _, err := s.notifier.ResolveChannel(resolveCtx, ev.ChannelID); err != nil {
		zlog.Logger.Warn().Err(err).
			Str("event_id", ev.ID.String()).
			Str("channel_id", ev.ChannelID).
			Msg("channel unresolvable, retrying next tick")
		return true
	}

	for _, idx := range ev.DueReminders(now) {
		r := &ev.Reminders[idx]

		if err := s.send(ctx, ev.ChannelID, reminderMessage(ev, r.Offset)); err != nil {
			zlog.Logger.Warn().Err(err).
				Str("event_id", ev.ID.String()).
				Dur("offset", r.Offset).
				Msg("failed to send reminder, retrying next tick")
			continue
		}

		r.Fired = true
		if late := now.Sub(ev.FireAt.Add(-r.Offset)); late > s.cfg.Tolerance {
			zlog.Logger.Warn().
				Str("event_id", ev.ID.String()).
				Dur("offset", r.Offset).
				Dur("late", late).
				Msg("reminder delivered late")
		}
	}

	if !ev.Started(now) {
		return true
	}

	if !ev.Fired {
		if err := s.send(ctx, ev.ChannelID, startMessage(ev)); err != nil {
			zlog.Logger.Warn().Err(err).
				Str("event_id", ev.ID.String()).
				Msg("failed to send start notification, retrying next tick")
			return true
		}
		ev.Fired = true
		zlog.Logger.Info().Str("event_id", ev.ID.String()).Str("title", ev.Title).Msg("event started")
	}

	return false
}

// send delivers one message with a bounded timeout and the configured
// in-tick retry strategy.
func (s *Scheduler) send(ctx context.Context, channelID, text string) error {
	sendCtx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
	defer cancel()

	return retry.Do(func() error {
		select {
		case <-sendCtx.Done():
			return sendCtx.Err()
		default:
			return s.notifier.Send(sendCtx, channelID, text)
		}
	}, s.strategy)
}

func reminderMessage(ev *model.Event, offset time.Duration) string {
	return fmt.Sprintf("⏰ Event **%s** starts in %s!\n%s\nTime: <t:%d:F>",
		ev.Title, offset, ev.Body, ev.FireAt.Unix())
}

func startMessage(ev *model.Event) string {
	return fmt.Sprintf("📢 **Event started!** 📢\n**%s**\n%s\nTime: <t:%d:F>",
		ev.Title, ev.Body, ev.FireAt.Unix())
}
