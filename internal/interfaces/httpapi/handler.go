package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/scorelinehq/sportsfeed/internal/domain/event"
	"github.com/scorelinehq/sportsfeed/internal/platform/logging"
	"github.com/scorelinehq/sportsfeed/internal/usecase"
)

// EventsService is the orchestration surface the API exposes.
type EventsService interface {
	GetEvents(ctx context.Context, query usecase.EventsQuery) ([]event.Event, error)
	GetTodaysEvents(ctx context.Context, query usecase.EventsQuery) ([]event.Event, error)
	GetLiveEvents(ctx context.Context, sports []string) ([]event.Event, error)
	ProviderHealth() []usecase.ProviderHealth
	ResetProvider(name string) error
}

type Handler struct {
	events    EventsService
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(events EventsService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		events:    events,
		logger:    logger,
		validator: validator.New(),
	}
}

type eventsParams struct {
	Date       string `validate:"omitempty,len=8,numeric"`
	Week       int    `validate:"omitempty,min=1,max=30"`
	Conference string `validate:"omitempty,max=64"`
	Team       string `validate:"omitempty,max=64"`
	Provider   string `validate:"omitempty,max=32"`
}

type eventsDTO struct {
	Sport  string        `json:"sport"`
	Count  int           `json:"count"`
	Events []event.Event `json:"events"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListEventsBySport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEventsBySport")
	defer span.End()

	sport := r.PathValue("sport")
	params, err := h.parseEventsParams(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	events, err := h.events.GetEvents(ctx, queryFromParams(sport, params))
	if err != nil {
		h.logger.WarnContext(ctx, "list events failed", "sport", sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventsDTO{
		Sport:  event.NormalizeSport(sport),
		Count:  len(events),
		Events: events,
	})
}

func (h *Handler) ListTodaysEventsBySport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTodaysEventsBySport")
	defer span.End()

	sport := r.PathValue("sport")
	params, err := h.parseEventsParams(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	events, err := h.events.GetTodaysEvents(ctx, queryFromParams(sport, params))
	if err != nil {
		h.logger.WarnContext(ctx, "list todays events failed", "sport", sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventsDTO{
		Sport:  event.NormalizeSport(sport),
		Count:  len(events),
		Events: events,
	})
}

func (h *Handler) ListLiveEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveEvents")
	defer span.End()

	var sports []string
	if raw := strings.TrimSpace(r.URL.Query().Get("sports")); raw != "" {
		for _, sport := range strings.Split(raw, ",") {
			if sport = strings.TrimSpace(sport); sport != "" {
				sports = append(sports, sport)
			}
		}
	}

	events, err := h.events.GetLiveEvents(ctx, sports)
	if err != nil {
		h.logger.WarnContext(ctx, "list live events failed", "sports", sports, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventsDTO{
		Sport:  "live",
		Count:  len(events),
		Events: events,
	})
}

func (h *Handler) GetProviderHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProviderHealth")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.events.ProviderHealth())
}

func (h *Handler) ResetProvider(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetProvider")
	defer span.End()

	name := strings.TrimSpace(r.PathValue("provider"))
	if err := h.events.ResetProvider(name); err != nil {
		h.logger.WarnContext(ctx, "reset provider failed", "provider", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "provider circuit reset via api", "provider", name)
	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"provider": strings.ToLower(name),
		"status":   "reset",
	})
}

func (h *Handler) parseEventsParams(r *http.Request) (eventsParams, error) {
	query := r.URL.Query()

	params := eventsParams{
		Date:       strings.TrimSpace(query.Get("date")),
		Conference: strings.TrimSpace(query.Get("conference")),
		Team:       strings.TrimSpace(query.Get("team")),
		Provider:   strings.TrimSpace(query.Get("provider")),
	}

	if raw := strings.TrimSpace(query.Get("week")); raw != "" {
		week, err := strconv.Atoi(raw)
		if err != nil {
			return eventsParams{}, fmt.Errorf("%w: week must be a number, got %q", usecase.ErrInvalidInput, raw)
		}
		params.Week = week
	}

	if err := h.validator.Struct(params); err != nil {
		return eventsParams{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return params, nil
}

func queryFromParams(sport string, params eventsParams) usecase.EventsQuery {
	return usecase.EventsQuery{
		Sport: sport,
		Filters: event.Filters{
			Date:       params.Date,
			Week:       params.Week,
			Conference: params.Conference,
			TeamID:     params.Team,
		},
		PreferredProvider: params.Provider,
	}
}
