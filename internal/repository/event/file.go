// Package event provides durable storage for guild events.
//
// Two backends implement the same contract: a JSON file that is rewritten
// whole on every mutation, and a Postgres table. Neither backend guards
// against concurrent writers; every mutation is a full read-modify-write
// and the last writer wins.
package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wb-go/wbf/zlog"

	"github.com/aokisa/guild-reminder/internal/model"
)

var (
	// ErrOutOfRange is returned when an ordinal does not address an event.
	ErrOutOfRange = errors.New("event ordinal out of range")
	// ErrEmptyCollection is returned when a guild has no events at all.
	ErrEmptyCollection = errors.New("no events for guild")
)

// record is the on-disk envelope for the whole event collection.
type record struct {
	Schema int           `json:"schema"`
	Events []model.Event `json:"events"`
}

// FileRepository stores all events of all guilds in a single JSON file.
type FileRepository struct {
	path string
}

// NewFileRepository creates a repository backed by the JSON file at path.
// The file and its directory are created on first save.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// LoadAll returns every stored event in stored order.
//
// Load failures are soft: a missing, unreadable or corrupt file yields an
// empty collection and a logged warning, never an error. Callers cannot
// distinguish "no events" from "store unreadable".
func (r *FileRepository) LoadAll(_ context.Context) ([]model.Event, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			zlog.Logger.Warn().Err(err).Str("path", r.path).Msg("failed to read event store, treating as empty")
		}
		return []model.Event{}, nil
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		zlog.Logger.Warn().Err(err).Str("path", r.path).Msg("failed to decode event store, treating as empty")
		return []model.Event{}, nil
	}

	return rec.Events, nil
}

// LoadGuild returns the events belonging to one guild, preserving their
// relative stored order.
func (r *FileRepository) LoadGuild(ctx context.Context, guildID string) ([]model.Event, error) {
	all, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	guild := make([]model.Event, 0, len(all))
	for _, ev := range all {
		if ev.GuildID == guildID {
			guild = append(guild, ev)
		}
	}

	return guild, nil
}

// SaveAll replaces the entire stored collection with events.
func (r *FileRepository) SaveAll(_ context.Context, events []model.Event) error {
	if events == nil {
		events = []model.Event{}
	}

	data, err := json.MarshalIndent(record{Schema: model.SchemaVersion, Events: events}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode event store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create event store directory: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write event store: %w", err)
	}

	return nil
}

// SaveGuild replaces one guild's events, leaving every other guild's
// events untouched: the whole collection is reloaded, the guild's old
// events are stripped, and the replacements appended. An interleaved write
// between the reload and the write here is silently lost.
func (r *FileRepository) SaveGuild(ctx context.Context, guildID string, events []model.Event) error {
	all, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}

	merged := make([]model.Event, 0, len(all)+len(events))
	for _, ev := range all {
		if ev.GuildID != guildID {
			merged = append(merged, ev)
		}
	}
	merged = append(merged, events...)

	return r.SaveAll(ctx, merged)
}

// Add appends one event to a guild's collection.
func (r *FileRepository) Add(ctx context.Context, guildID string, ev model.Event) error {
	guild, err := r.LoadGuild(ctx, guildID)
	if err != nil {
		return err
	}

	guild = append(guild, ev)

	return r.SaveGuild(ctx, guildID, guild)
}

// RemoveByOrdinal removes the ordinal-th event (1-based) of a guild's
// current listing and returns it.
func (r *FileRepository) RemoveByOrdinal(ctx context.Context, guildID string, ordinal int) (model.Event, error) {
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
