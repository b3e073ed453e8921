package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/aokisa/guild-reminder/internal/api/dto"
	"github.com/aokisa/guild-reminder/internal/api/respond"
	"github.com/aokisa/guild-reminder/internal/model"
	repository "github.com/aokisa/guild-reminder/internal/repository/event"
	eventsvc "github.com/aokisa/guild-reminder/internal/service/event"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/event/mocks.go -package=mocks
type eventService interface {
	AddEvent(ctx context.Context, in eventsvc.AddEventInput) (model.Event, error)
	ListEvents(ctx context.Context, guildID string) ([]model.Event, error)
	DeleteEvent(ctx context.Context, guildID string, ordinal int) (model.Event, error)
}

type Handler struct {
	service   eventService
	validator *validator.Validate
}

func NewHandler(s eventService, v *validator.Validate) *Handler {
	return &Handler{service: s, validator: v}
}

func (h *Handler) Create(c *ginext.Context) {
	guildID := c.Param("guild_id")

	var req dto.CreateEventRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	var reminders []time.Duration
	if req.ReminderMinutes != nil {
		reminders = make([]time.Duration, 0, len(req.ReminderMinutes))
		for _, m := range req.ReminderMinutes {
			reminders = append(reminders, time.Duration(m)*time.Minute)
		}
	}

	ev, err := h.service.AddEvent(c.Request.Context(), eventsvc.AddEventInput{
		GuildID:   guildID,
		ChannelID: req.ChannelID,
		Title:     req.Title,
		Body:      req.Body,
		FireAt:    req.FireAt,
		Timezone:  req.Timezone,
		Reminders: reminders,
	})
	if err != nil {
		if errors.Is(err, eventsvc.ErrUnknownTimezone) ||
			errors.Is(err, eventsvc.ErrInvalidFireAt) ||
			errors.Is(err, eventsvc.ErrPastEvent) {
			zlog.Logger.Warn().Err(err).Str("guild_id", guildID).Msg("rejected event creation")
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Str("guild_id", guildID).Msg("failed to create event")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, ev)
}

func (h *Handler) List(c *ginext.Context) {
	guildID := c.Param("guild_id")

	events, err := h.service.ListEvents(c.Request.Context(), guildID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("guild_id", guildID).Msg("failed to list events")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, events)
}

func (h *Handler) Delete(c *ginext.Context) {
	guildID := c.Param("guild_id")

	ordinal, err := strconv.Atoi(c.Param("ordinal"))
	if err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to parse ordinal")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid ordinal"))
		return
	}

	removed, err := h.service.DeleteEvent(c.Request.Context(), guildID, ordinal)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmptyCollection):
			zlog.Logger.Warn().Str("guild_id", guildID).Msg("no events to delete")
			respond.Fail(c.Writer, http.StatusNotFound, repository.ErrEmptyCollection)
		case errors.Is(err, repository.ErrOutOfRange):
			zlog.Logger.Warn().Err(err).Str("guild_id", guildID).Int("ordinal", ordinal).Msg("ordinal out of range")
			respond.Fail(c.Writer, http.StatusBadRequest, err)
		default:
			zlog.Logger.Error().Err(err).Str("guild_id", guildID).Msg("failed to delete event")
			respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		}
		return
	}

	respond.OK(c.Writer, removed)
}
