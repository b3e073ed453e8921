package event

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/aokisa/guild-reminder/internal/model"
	repository "github.com/aokisa/guild-reminder/internal/repository/event"
)

var (
	// ErrUnknownTimezone is returned when the declared source time zone
	// is not a known IANA zone name.
	ErrUnknownTimezone = errors.New("unknown time zone")
	// ErrInvalidFireAt is returned when the local fire time cannot be parsed.
	ErrInvalidFireAt = errors.New("invalid fire time")
	// ErrPastEvent is returned for past fire times when rollover is disabled.
	ErrPastEvent = errors.New("event time is in the past")
)

// fireAtLayouts are the accepted wall-clock formats for AddEvent.
var fireAtLayouts = []string{time.DateTime, "2006-01-02 15:04"}

//go:generate mockgen -source=service.go -destination=../../mocks/service/event/mocks.go -package=mocks
type eventRepo interface {
	LoadGuild(ctx context.Context, guildID string) ([]model.Event, error)
	Add(ctx context.Context, guildID string, ev model.Event) error
	RemoveByOrdinal(ctx context.Context, guildID string, ordinal int) (model.Event, error)
}

// AddEventInput carries the user-supplied parameters for a new event.
// FireAt is a wall-clock time in Timezone, not an absolute instant.
type AddEventInput struct {
	GuildID   string
	ChannelID string
	Title     string
	Body      string
	FireAt    string
	Timezone  string
	Reminders []time.Duration
}

// Service exposes the user-facing event operations: add, list, delete.
type Service struct {
	repo             eventRepo
	rolloverPast     bool
	defaultReminders []time.Duration
	now              func() time.Time
}

// NewService creates the event service. When rolloverPast is true, a fire
// time already in the past is moved to the same wall-clock time one year
// later; otherwise it is rejected. defaultReminders are applied when a
// request specifies none.
func NewService(repo eventRepo, rolloverPast bool, defaultReminders []time.Duration) *Service {
	return &Service{
		repo:             repo,
		rolloverPast:     rolloverPast,
		defaultReminders: defaultReminders,
		now:              time.Now,
	}
}

// AddEvent converts the wall-clock fire time to a UTC instant in the
// declared zone and persists the new event under its guild.
func (s *Service) AddEvent(ctx context.Context, in AddEventInput) (model.Event, error) {
	loc, err := time.LoadLocation(in.Timezone)
	if err != nil {
		return model.Event{}, fmt.Errorf("%w: %q", ErrUnknownTimezone, in.Timezone)
	}

	var local time.Time
	parsed := false
	for _, layout := range fireAtLayouts {
		if local, err = time.ParseInLocation(layout, in.FireAt, loc); err == nil {
			parsed = true
			break
		}
	}
	if !parsed {
		return model.Event{}, fmt.Errorf("%w: %q", ErrInvalidFireAt, in.FireAt)
	}

	now := s.now().In(loc)
	if local.Before(now) {
		if !s.rolloverPast {
			return model.Event{}, fmt.Errorf("%w: %s", ErrPastEvent, local.Format(time.DateTime))
		}
		// Same month, day and time one year later.
		local = time.Date(local.Year()+1, local.Month(), local.Day(),
			local.Hour(), local.Minute(), local.Second(), 0, loc)
	}

	offsets := in.Reminders
	if offsets == nil {
		offsets = s.defaultReminders
	}
	reminders := make([]model.Reminder, 0, len(offsets))
	for _, off := range offsets {
		if off < 0 {
			return model.Event{}, fmt.Errorf("%w: negative reminder offset %s", ErrInvalidFireAt, off)
		}
		reminders = append(reminders, model.Reminder{Offset: off})
	}

	ev := model.Event{
		ID:        uuid.New(),
		GuildID:   in.GuildID,
		ChannelID: in.ChannelID,
		Title:     in.Title,
		Body:      in.Body,
		FireAt:    local.UTC(),
		Reminders: reminders,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Add(ctx, in.GuildID, ev); err != nil {
		return model.Event{}, fmt.Errorf("add event: %w", err)
	}

	return ev, nil
}

func chronological(events []model.Event) []model.Event {
	sorted := make([]model.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].FireAt.Before(sorted[b].FireAt)
	})

	return sorted
}

// ListEvents returns a guild's events in chronological order. Ordinals
// shown to users (and accepted by DeleteEvent) refer to this order.
func (s *Service) ListEvents(ctx context.Context, guildID string) ([]model.Event, error) {
	events, err := s.repo.LoadGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return chronological(events), nil
}

// DeleteEvent removes the ordinal-th event (1-based, in listing order) of
// a guild and returns it. The listing is chronological while the store
// keeps insertion order, so the ordinal is translated before the store
// removal.
func (s *Service) DeleteEvent(ctx context.Context, guildID string, ordinal int) (model.Event, error) {
	events, err := s.repo.LoadGuild(ctx, guildID)
	if err != nil {
		return model.Event{}, fmt.Errorf("delete event: %w", err)
	}

	if len(events) == 0 {
		return model.Event{}, repository.ErrEmptyCollection
	}
	if ordinal < 1 || ordinal > len(events) {
		return model.Event{}, fmt.Errorf("%w: %d of %d", repository.ErrOutOfRange, ordinal, len(events))
	}

	target := chronological(events)[ordinal-1]
	for i, ev := range events {
		if ev.ID == target.ID {
			removed, err := s.repo.RemoveByOrdinal(ctx, guildID, i+1)
			if err != nil {
				return model.Event{}, fmt.Errorf("delete event: %w", err)
			}
			return removed, nil
		}
	}

	return model.Event{}, repository.ErrOutOfRange
}
