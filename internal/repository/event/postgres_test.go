package event

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aokisa/guild-reminder/internal/model"
)

func setupMockDB(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}

	wrappedDB := &dbpg.DB{Master: db}
	repo := NewPostgresRepository(wrappedDB)

	return repo, mock
}

func eventColumns() []string {
	return []string{"id", "guild_id", "channel_id", "title", "body", "fire_at", "reminders", "fired", "created_at"}
}

func eventRow(rows *sqlmock.Rows, ev model.Event) *sqlmock.Rows {
	reminders, _ := json.Marshal(ev.Reminders)
	return rows.AddRow(ev.ID, ev.GuildID, ev.ChannelID, ev.Title, ev.Body, ev.FireAt, reminders, ev.Fired, ev.CreatedAt)
}

func TestPostgresRepository_LoadAll(t *testing.T) {
	repo, mock := setupMockDB(t)

	ev := makeEvent("guild-a", "first")

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, guild_id, channel_id, title, body, fire_at, reminders, fired, created_at
		FROM events
		ORDER BY guild_id, position;
    `)).
		WillReturnRows(eventRow(sqlmock.NewRows(eventColumns()), ev))

	events, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ev.ID, events[0].ID)
	assert.Equal(t, ev.Reminders, events[0].Reminders)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_LoadGuild(t *testing.T) {
	repo, mock := setupMockDB(t)

	ev := makeEvent("guild-a", "first")

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, guild_id, channel_id, title, body, fire_at, reminders, fired, created_at
		FROM events
		WHERE guild_id = $1
		ORDER BY position;
    `)).
		WithArgs("guild-a").
		WillReturnRows(eventRow(sqlmock.NewRows(eventColumns()), ev))

	events, err := repo.LoadGuild(context.Background(), "guild-a")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "guild-a", events[0].GuildID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_SaveGuild_ReplacesOnlyThatGuild(t *testing.T) {
	repo, mock := setupMockDB(t)

	ev := makeEvent("guild-a", "replacement")
	reminders, _ := json.Marshal(ev.Reminders)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM events WHERE guild_id = $1;`)).
		WithArgs("guild-a").
		WillReturnResult(sqlmock.NewResult(0, 2))

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO events (
		    id, guild_id, channel_id, title, body, fire_at, reminders, fired, created_at, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `)).
		WithArgs(ev.ID, ev.GuildID, ev.ChannelID, ev.Title, ev.Body, ev.FireAt, reminders, ev.Fired, ev.CreatedAt, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveGuild(context.Background(), "guild-a", []model.Event{ev})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_RemoveByOrdinal_Bounds(t *testing.T) {
	repo, mock := setupMockDB(t)

	query := regexp.QuoteMeta(`
		SELECT id, guild_id, channel_id, title, body, fire_at, reminders, fired, created_at
		FROM events
		WHERE guild_id = $1
		ORDER BY position;
    `)

	mock.ExpectQuery(query).WithArgs("guild-a").WillReturnRows(sqlmock.NewRows(eventColumns()))

	_, err := repo.RemoveByOrdinal(context.Background(), "guild-a", 1)
	assert.ErrorIs(t, err, ErrEmptyCollection)

	ev := makeEvent("guild-a", "only")
	mock.ExpectQuery(query).WithArgs("guild-a").
		WillReturnRows(eventRow(sqlmock.NewRows(eventColumns()), ev))

	_, err = repo.RemoveByOrdinal(context.Background(), "guild-a", 2)
	assert.ErrorIs(t, err, ErrOutOfRange)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_RemoveByOrdinal(t *testing.T) {
	repo, mock := setupMockDB(t)

	query := regexp.QuoteMeta(`
		SELECT id, guild_id, channel_id, title, body, fire_at, reminders, fired, created_at
		FROM events
		WHERE guild_id = $1
		ORDER BY position;
    `)

	first := makeEvent("guild-a", "first")
	second := makeEvent("guild-a", "second")
	secondReminders, _ := json.Marshal(second.Reminders)

	rows := sqlmock.NewRows(eventColumns())
	eventRow(rows, first)
	eventRow(rows, second)
	mock.ExpectQuery(query).WithArgs("guild-a").WillReturnRows(rows)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM events WHERE guild_id = $1;`)).
		WithArgs("guild-a").
		WillReturnResult(sqlmock.NewResult(0, 2))

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO events (
		    id, guild_id, channel_id, title, body, fire_at, reminders, fired, created_at, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `)).
		WithArgs(second.ID, second.GuildID, second.ChannelID, second.Title, second.Body, second.FireAt, secondReminders, second.Fired, second.CreatedAt, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := repo.RemoveByOrdinal(context.Background(), "guild-a", 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, removed.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
