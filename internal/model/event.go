package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the version of the persisted event record layout.
// It is written into every stored record so a future layout change can
// migrate old files instead of silently misreading them.
const SchemaVersion = 1

// Reminder is a single pre-notification threshold for an event: a duration
// before the event's fire time, plus a flag recording that it has been sent.
// The flag is monotonic; it is never reset once true.
type Reminder struct {
	Offset time.Duration `json:"offset"`
	Fired  bool          `json:"fired"`
}

// Event is one scheduled occurrence owned by exactly one guild.
// FireAt is always stored as a UTC instant.
type Event struct {
	ID        uuid.UUID  `json:"id"`
	GuildID   string     `json:"guild_id"`
	ChannelID string     `json:"channel_id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	FireAt    time.Time  `json:"fire_at"`
	Reminders []Reminder `json:"reminders"`
	Fired     bool       `json:"fired"`
	CreatedAt time.Time  `json:"created_at"`
}

// Started reports whether the event's fire time has been reached.
func (e *Event) Started(now time.Time) bool {
	return !now.Before(e.FireAt)
}

// DueReminders returns the indexes of all reminders whose threshold has
// passed but have not been sent, farthest offset first. Reminders stop
// being due once the event itself has started; at that point the start
// notification supersedes them.
func (e *Event) DueReminders(now time.Time) []int {
	if e.Started(now) {
		return nil
	}

	var due []int
	for i, r := range e.Reminders {
		if r.Fired {
			continue
		}
		if !now.Before(e.FireAt.Add(-r.Offset)) {
			due = append(due, i)
		}
	}

	sort.SliceStable(due, func(a, b int) bool {
		return e.Reminders[due[a]].Offset > e.Reminders[due[b]].Offset
	})

	return due
}
