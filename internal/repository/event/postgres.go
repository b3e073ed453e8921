package event

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/wb-go/wbf/dbpg"

	"github.com/aokisa/guild-reminder/internal/model"
)

// PostgresRepository stores events in the events table (see migrations).
// It keeps the same whole-set replace contract as the file backend: saves
// delete and re-insert rather than update in place, and no transaction
// spans a load/save pair.
type PostgresRepository struct {
	db *dbpg.DB
}

// NewPostgresRepository creates a repository over an open connection pool.
func NewPostgresRepository(db *dbpg.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanEvents(rows *sql.Rows) ([]model.Event, error) {
	events := []model.Event{}
	for rows.Next() {
		var (
			ev        model.Event
			reminders []byte
		)
		if err := rows.Scan(&ev.ID, &ev.GuildID, &ev.ChannelID, &ev.Title, &ev.Body, &ev.FireAt, &reminders, &ev.Fired, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if err := json.Unmarshal(reminders, &ev.Reminders); err != nil {
			return nil, fmt.Errorf("decode reminders: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

// LoadAll returns every stored event, per-guild insertion order preserved.
func (r *PostgresRepository) LoadAll(ctx context.Context) ([]model.Event, error) {
	query := `
		SELECT id, guild_id, channel_id, title, body, fire_at, reminders, fired, created_at
		FROM events
		ORDER BY guild_id, position;
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// LoadGuild returns one guild's events in insertion order.
func (r *PostgresRepository) LoadGuild(ctx context.Context, guildID string) ([]model.Event, error) {
	query := `
		SELECT id, guild_id, channel_id, title, body, fire_at, reminders, fired, created_at
		FROM events
		WHERE guild_id = $1
		ORDER BY position;
    `

	rows, err := r.db.QueryContext(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("load guild events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *PostgresRepository) insert(ctx context.Context, events []model.Event) error {
	query := `
		INSERT INTO events (
		    id, guild_id, channel_id, title, body, fire_at, reminders, fired, created_at, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `

	for i, ev := range events {
		reminders, err := json.Marshal(ev.Reminders)
		if err != nil {
			return fmt.Errorf("encode reminders: %w", err)
		}

		_, err = r.db.ExecContext(
			ctx, query,
			ev.ID, ev.GuildID, ev.ChannelID, ev.Title, ev.Body, ev.FireAt, reminders, ev.Fired, ev.CreatedAt, i,
		)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	return nil
}

// SaveAll replaces the entire stored collection with events.
func (r *PostgresRepository) SaveAll(ctx context.Context, events []model.Event) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events;`); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}

	return r.insert(ctx, events)
}

// SaveGuild replaces one guild's events without touching other guilds.
func (r *PostgresRepository) SaveGuild(ctx context.Context, guildID string, events []model.Event) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE guild_id = $1;`, guildID); err != nil {
		return fmt.Errorf("clear guild events: %w", err)
	}

	return r.insert(ctx, events)
}

// Add appends one event to a guild's collection.
func (r *PostgresRepository) Add(ctx context.Context, guildID string, ev model.Event) error {
	guild, err := r.LoadGuild(ctx, guildID)
	if err != nil {
		return err
	}

	guild = append(guild, ev)

	return r.SaveGuild(ctx, guildID, guild)
}

// RemoveByOrdinal removes the ordinal-th event (1-based) of a guild's
// current listing and returns it.
func (r *PostgresRepository) RemoveByOrdinal(ctx context.Context, guildID string, ordinal int) (model.Event, error) {
	guild, err := r.LoadGuild(ctx, guildID)
	if err != nil {
		return model.Event{}, err
	}

	if len(guild) == 0 {
		return model.Event{}, ErrEmptyCollection
	}
	if ordinal < 1 || ordinal > len(guild) {
		return model.Event{}, fmt.Errorf("%w: %d of %d", ErrOutOfRange, ordinal, len(guild))
	}

	removed := guild[ordinal-1]
	guild = append(guild[:ordinal-1], guild[ordinal:]...)

	if err := r.SaveGuild(ctx, guildID, guild); err != nil {
		return model.Event{}, err
	}

	return removed, nil
}
