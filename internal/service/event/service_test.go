package event

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mocks "github.com/aokisa/guild-reminder/internal/mocks/service/event"
	"github.com/aokisa/guild-reminder/internal/model"
	repository "github.com/aokisa/guild-reminder/internal/repository/event"
)

func newTestService(t *testing.T, rollover bool, now time.Time) (*Service, *mocks.MockeventRepo) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockeventRepo(ctrl)

	svc := NewService(repoMock, rollover, []time.Duration{30 * time.Minute, 20 * time.Minute, 10 * time.Minute})
	svc.now = func() time.Time { return now }

	return svc, repoMock
}

func TestService_AddEvent_ConvertsLocalToUTC(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc, repoMock := newTestService(t, true, now)

	var added model.Event
	repoMock.EXPECT().Add(gomock.Any(), "guild-a", gomock.AssignableToTypeOf(model.Event{})).DoAndReturn(
		func(_ context.Context, _ string, ev model.Event) error {
			added = ev
			return nil
		},
	)

	ev, err := svc.AddEvent(context.Background(), AddEventInput{
		GuildID:   "guild-a",
		ChannelID: "chan-1",
		Title:     "raid night",
		Body:      "bring potions",
		FireAt:    "2025-07-01 21:00",
		Timezone:  "Asia/Tokyo",
		Reminders: []time.Duration{15 * time.Minute},
	})
	require.NoError(t, err)

	// 21:00 JST is 12:00 UTC.
	want := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, ev.FireAt.Equal(want), "got %s, want %s", ev.FireAt, want)
	assert.Equal(t, time.UTC, ev.FireAt.Location())
	assert.NotEqual(t, uuid.Nil, ev.ID)
	require.Len(t, ev.Reminders, 1)
	assert.Equal(t, 15*time.Minute, ev.Reminders[0].Offset)
	assert.False(t, ev.Reminders[0].Fired)
	assert.Equal(t, ev, added)
}

func TestService_AddEvent_PastDateRollsOverOneYear(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc, repoMock := newTestService(t, true, now)

	repoMock.EXPECT().Add(gomock.Any(), "guild-a", gomock.Any()).Return(nil)

	ev, err := svc.AddEvent(context.Background(), AddEventInput{
		GuildID:   "guild-a",
		ChannelID: "chan-1",
		Title:     "anniversary",
		FireAt:    "2025-01-15 09:00",
		Timezone:  "Asia/Tokyo",
		Reminders: []time.Duration{},
	})
	require.NoError(t, err)

	// Same month, day and wall-clock time, one year later, still in JST.
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	want := time.Date(2026, 1, 15, 9, 0, 0, 0, loc).UTC()
	assert.True(t, ev.FireAt.Equal(want), "got %s, want %s", ev.FireAt, want)
}

func TestService_AddEvent_PastDateRejectedWithoutRollover(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, false, now)

	_, err := svc.AddEvent(context.Background(), AddEventInput{
		GuildID:   "guild-a",
		ChannelID: "chan-1",
		Title:     "too late",
		FireAt:    "2025-01-15 09:00",
		Timezone:  "UTC",
	})
	assert.ErrorIs(t, err, ErrPastEvent)
}

func TestService_AddEvent_UnknownTimezone(t *testing.T) {
	svc, _ := newTestService(t, true, time.Now())

	_, err := svc.AddEvent(context.Background(), AddEventInput{
		GuildID:   "guild-a",
		ChannelID: "chan-1",
		Title:     "x",
		FireAt:    "2025-07-01 21:00",
		Timezone:  "Mars/Olympus_Mons",
	})
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}

func TestService_AddEvent_MalformedFireAt(t *testing.T) {
	svc, _ := newTestService(t, true, time.Now())

	_, err := svc.AddEvent(context.Background(), AddEventInput{
		GuildID:   "guild-a",
		ChannelID: "chan-1",
		Title:     "x",
		FireAt:    "next tuesday",
		Timezone:  "UTC",
	})
	assert.ErrorIs(t, err, ErrInvalidFireAt)
}

func TestService_AddEvent_DefaultRemindersApplied(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc, repoMock := newTestService(t, true, now)

	repoMock.EXPECT().Add(gomock.Any(), "guild-a", gomock.Any()).Return(nil)

	ev, err := svc.AddEvent(context.Background(), AddEventInput{
		GuildID:   "guild-a",
		ChannelID: "chan-1",
		Title:     "defaults",
		FireAt:    "2025-07-01 21:00",
		Timezone:  "UTC",
	})
	require.NoError(t, err)

	require.Len(t, ev.Reminders, 3)
	assert.Equal(t, 30*time.Minute, ev.Reminders[0].Offset)
	assert.Equal(t, 20*time.Minute, ev.Reminders[1].Offset)
	assert.Equal(t, 10*time.Minute, ev.Reminders[2].Offset)
}

func TestService_ListEvents_Chronological(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc, repoMock := newTestService(t, true, now)

	later := model.Event{ID: uuid.New(), GuildID: "guild-a", FireAt: now.Add(2 * time.Hour)}
	sooner := model.Event{ID: uuid.New(), GuildID: "guild-a", FireAt: now.Add(time.Hour)}

	repoMock.EXPECT().LoadGuild(gomock.Any(), "guild-a").Return([]model.Event{later, sooner}, nil)

	events, err := svc.ListEvents(context.Background(), "guild-a")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, sooner.ID, events[0].ID)
	assert.Equal(t, later.ID, events[1].ID)
}

func TestService_DeleteEvent_TranslatesListingOrdinal(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc, repoMock := newTestService(t, true, now)

	// Stored order is insertion order; the listing is chronological, so
	// listing ordinal 1 addresses the second stored event here.
	later := model.Event{ID: uuid.New(), GuildID: "guild-a", FireAt: now.Add(2 * time.Hour)}
	sooner := model.Event{ID: uuid.New(), GuildID: "guild-a", FireAt: now.Add(time.Hour)}

	repoMock.EXPECT().LoadGuild(gomock.Any(), "guild-a").Return([]model.Event{later, sooner}, nil)
	repoMock.EXPECT().RemoveByOrdinal(gomock.Any(), "guild-a", 2).Return(sooner, nil)

	removed, err := svc.DeleteEvent(context.Background(), "guild-a", 1)
	require.NoError(t, err)
	assert.Equal(t, sooner.ID, removed.ID)
}

func TestService_DeleteEvent_Bounds(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc, repoMock := newTestService(t, true, now)

	repoMock.EXPECT().LoadGuild(gomock.Any(), "guild-a").Return([]model.Event{}, nil)

	_, err := svc.DeleteEvent(context.Background(), "guild-a", 1)
	assert.ErrorIs(t, err, repository.ErrEmptyCollection)

	only := model.Event{ID: uuid.New(), GuildID: "guild-a", FireAt: now.Add(time.Hour)}
	repoMock.EXPECT().LoadGuild(gomock.Any(), "guild-a").Return([]model.Event{only}, nil).Times(2)

	_, err = svc.DeleteEvent(context.Background(), "guild-a", 0)
	assert.ErrorIs(t, err, repository.ErrOutOfRange)

	_, err = svc.DeleteEvent(context.Background(), "guild-a", 2)
	assert.ErrorIs(t, err, repository.ErrOutOfRange)
}
