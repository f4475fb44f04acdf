// Package http exposes the contest read API over chi.
package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/123jlee/dfsanalyzer/internal/errors"
	"github.com/123jlee/dfsanalyzer/internal/services"
	"github.com/123jlee/dfsanalyzer/internal/store"
)

const formatCSV = "csv"

// DataHandler handles contest data HTTP requests
type DataHandler struct {
	service *services.DataService
	logger  *slog.Logger
}

// NewDataHandler creates a new data handler
func NewDataHandler(service *services.DataService, logger *slog.Logger) *DataHandler {
	return &DataHandler{
		service: service,
		logger:  logger.With(slog.String("component", "data_handler")),
	}
}

// Routes returns the data routes
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Use(h.SnapshotCtx)

	r.Get("/tables", h.GetTables)
	r.Get("/entries", h.GetEntries)
	r.Get("/combos", h.GetCombos)
	r.Get("/stacks", h.GetStacks)
	r.Get("/exposure", h.GetExposure)
	r.Get("/users/{username}/combos", h.GetUserCombos)
	r.Get("/field", h.GetField)
	r.Get("/unmatched", h.GetUnmatched)

	return r
}

// SnapshotCtx rejects requests until a contest snapshot is loaded
func (h *DataHandler) SnapshotCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.service.Loaded() {
			apierrors.WriteError(w, apierrors.ErrSnapshotNotFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetTables handles GET /api/tables
func (h *DataHandler) GetTables(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"meta":   h.service.Meta(),
		"tables": h.service.TableCounts(),
	})
}

// GetEntries handles GET /api/entries
func (h *DataHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	filter, apiErr := parseEntryFilter(r)
	if apiErr != nil {
		apierrors.WriteError(w, apiErr)
		return
	}

	entries := h.service.Entries(filter)
	if wantsCSV(r) {
		h.writeCSV(w, r, "entries.csv", func(out io.Writer) error {
			return store.WriteEntriesCSV(out, entries)
		})
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"count":   len(entries),
		"entries": entries,
	})
}

// GetCombos handles GET /api/combos
func (h *DataHandler) GetCombos(w http.ResponseWriter, r *http.Request) {
	filter, apiErr := parseEntryFilter(r)
	if apiErr != nil {
		apierrors.WriteError(w, apiErr)
		return
	}
	size, apiErr := parseIntParam(r, "size", 2)
	if apiErr != nil {
		apierrors.WriteError(w, apiErr)
		return
	}
	topN, apiErr := parseIntParam(r, "top", 0)
	if apiErr != nil {
		apierrors.WriteError(w, apiErr)
		return
	}

	combos := h.service.Combos(size, filter, topN)
	if wantsCSV(r) {
		h.writeCSV(w, r, fmt.Sprintf("combos_%d.csv", size), func(out io.Writer) error {
			return store.WriteCombosCSV(out, combos)
		})
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"size":   size,
		"count":  len(combos),
		"combos": combos,
	})
}

// GetStacks handles GET /api/stacks
func (h *DataHandler) GetStacks(w http.ResponseWriter, r *http.Request) {
	filter, apiErr := parseEntryFilter(r)
	if apiErr != nil {
		apierrors.WriteError(w, apiErr)
		return
	}
	size, apiErr := parseIntParam(r, "size", 0)
	if apiErr != nil {
		apierrors.WriteError(w, apiErr)
		return
	}
	topN, apiErr := parseIntParam(r, "top", 0)
	if apiErr != nil {
		apierrors.WriteError(w, apiErr)
		return
	}

	kind := services.StackKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = services.StackKindTeam
	}

	switch kind {
	case services.StackKindTeam:
		stacks := h.service.TeamStacks(size, filter, topN)
		if wantsCSV(r) {
			h.writeCSV(w, r, "team_stacks.csv", func(out io.Writer) error {
				return store.WriteTeamStacksCSV(out, stacks)
			})
			return
		}
		render.JSON(w, r, map[string]interface{}{
			"kind":   kind,
			"count":  len(stacks),
			"stacks": stacks,
		})
	case services.StackKindGame:
		stacks := h.service.GameStacks(size, filter, topN)
		if wantsCSV(r) {
			h.writeCSV(w, r, "game_stacks.csv", func(out io.Writer) error {
				return store.WriteGameStacksCSV(out, stacks)
			})
			return
		}
		render.JSON(w, r, map[string]interface{}{
			"kind":   kind,
			"count":  len(stacks),
			"stacks": stacks,
		})
	default:
		apierrors.WriteError(w, apierrors.InvalidParameterError("kind", "must be team or game"))
	}
}

// GetExposure handles GET /api/exposure
func (h *DataHandler) GetExposure(w http.ResponseWriter, r *http.Request) {
	filter, apiErr := parseEntryFilter(r)
	if apiErr != nil {
		apierrors.WriteError(w, apiErr)
		return
	}
	username := r.URL.Query().Get("username")

	records := h.service.Exposure(filter, username)
	if wantsCSV(r) {
		h.writeCSV(w, r, "user_exposure.csv", func(out io.Writer) error {
			return store.WriteExposureCSV(out, records)
		})
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"count":    len(records),
		"exposure": records,
	})
}

// GetUserCombos handles GET /api/users/{username}/combos
func (h *DataHandler) GetUserCombos(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	filter, apiErr := parseEntryFilter(r)
	if apiErr != nil {
		apierrors.WriteError(w, apiErr)
		return
	}
	topN, apiErr := parseIntParam(r, "top", 0)
	if apiErr != nil {
		apierrors.WriteError(w, apiErr)
		return
	}

	combos := h.service.UserCombos(username, filter, topN)
	if wantsCSV(r) {
		h.writeCSV(w, r, fmt.Sprintf("combos_%s.csv", username), func(out io.Writer) error {
			return store.WriteCombosCSV(out, combos)
		})
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"username": username,
		"count":    len(combos),
		"combos":   combos,
	})
}

// GetField handles GET /api/field
func (h *DataHandler) GetField(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	players := h.service.Field(search)
	if wantsCSV(r) {
		h.writeCSV(w, r, "field_players.csv", func(out io.Writer) error {
			return store.WriteFieldPlayersCSV(out, players)
		})
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"count":   len(players),
		"players": players,
	})
}

// GetUnmatched handles GET /api/unmatched
func (h *DataHandler) GetUnmatched(w http.ResponseWriter, r *http.Request) {
	players := h.service.Unmatched()
	if players == nil {
		players = []string{}
	}
	if wantsCSV(r) {
		h.writeCSV(w, r, "unmatched_players.csv", func(out io.Writer) error {
			return store.WriteUnmatchedCSV(out, players)
		})
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"count":   len(players),
		"players": players,
	})
}

func (h *DataHandler) writeCSV(w http.ResponseWriter, r *http.Request, filename string, write func(io.Writer) error) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := write(w); err != nil {
		h.logger.ErrorContext(r.Context(), "csv export failed",
			slog.String("filename", filename),
			slog.String("error", err.Error()))
	}
}

func wantsCSV(r *http.Request) bool {
	return r.URL.Query().Get("format") == formatCSV
}

func parseEntryFilter(r *http.Request) (services.EntryFilter, *apierrors.APIError) {
	var filter services.EntryFilter

	if raw := r.URL.Query().Get("percentile"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 || value > 100 {
			return filter, apierrors.InvalidParameterError("percentile", "must be a number between 0 and 100")
		}
		filter.MaxPercentile = &value
	}
	if raw := r.URL.Query().Get("rank"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return filter, apierrors.InvalidParameterError("rank", "must be a positive integer")
		}
		filter.MaxRank = &value
	}
	return filter, nil
}

func parseIntParam(r *http.Request, name string, fallback int) (int, *apierrors.APIError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, apierrors.InvalidParameterError(name, "must be a non-negative integer")
	}
	return value, nil
}
