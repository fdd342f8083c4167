// Package handlers serves the JSON API over the derived player table.
package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"strings"

	app "github.com/preston-bernstein/nba-draft-roi/internal/app/players"
	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
	"github.com/preston-bernstein/nba-draft-roi/internal/export"
	"github.com/preston-bernstein/nba-draft-roi/internal/http/requestutil"
	"github.com/preston-bernstein/nba-draft-roi/internal/logging"
	"github.com/preston-bernstein/nba-draft-roi/internal/valuation"
)

// Defaults are applied when a request omits a size parameter.
type Defaults struct {
	TopN          int
	MinTeamPicks  int
	ExplorerLimit int
	HistogramBins int
}

// Handler wires HTTP routes to the query service.
type Handler struct {
	svc      *app.Service
	defaults Defaults
	logger   *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(svc *app.Service, defaults Defaults, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, defaults: defaults, logger: logger}
}

type playersResponse struct {
	Count   int              `json:"count"`
	Total   int              `json:"total"`
	Players []players.Valued `json:"players"`
}

type rankedResponse struct {
	N       int              `json:"n"`
	Players []players.Ranked `json:"players"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.allowGet(w, r) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether a non-empty dataset was loaded.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.allowGet(w, r) {
		return
	}
	report := h.svc.LoadReport()
	if report.Loaded == 0 {
		writeError(w, r, nethttp.StatusServiceUnavailable, "dataset is empty", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"status":  "ready",
		"source":  report.Source,
		"rows":    report.Rows,
		"loaded":  report.Loaded,
		"dropped": report.Dropped,
	}, h.logger)
}

// Players lists derived rows matching the filter, capped by limit.
func (h *Handler) Players(w nethttp.ResponseWriter, r *nethttp.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	limit, err := requestutil.IntParam(r.URL.Query(), "limit", h.defaults.ExplorerLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rows, err := h.svc.Players(f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	total := len(rows)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	writeJSON(w, nethttp.StatusOK, playersResponse{Count: len(rows), Total: total, Players: rows}, h.logger)
}

// Player returns one derived row by full name, taken from the {name} path segment.
func (h *Handler) Player(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.allowGet(w, r) {
		return
	}
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		writeError(w, r, nethttp.StatusBadRequest, "player name is required", h.logger)
		return
	}
	p, ok := h.svc.Player(name)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "player not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, p, h.logger)
}

// TopROI ranks players by draft ROI.
func (h *Handler) TopROI(w nethttp.ResponseWriter, r *nethttp.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	n, err := requestutil.IntParam(r.URL.Query(), "n", h.defaults.TopN)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	position := f.Position
	f.Position = ""
	ranked, err := h.svc.TopROI(f, n, position)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, rankedResponse{N: n, Players: ranked}, h.logger)
}

// TopValue ranks players by value score.
func (h *Handler) TopValue(w nethttp.ResponseWriter, r *nethttp.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	n, err := requestutil.IntParam(r.URL.Query(), "n", h.defaults.TopN)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ranked, err := h.svc.TopValue(f, n)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, rankedResponse{N: n, Players: ranked}, h.logger)
}

// AverageROIByRound returns round -> average ROI.
func (h *Handler) AverageROIByRound(w nethttp.ResponseWriter, r *nethttp.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	avg, err := h.svc.AverageROIByRound(f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"rounds": avg}, h.logger)
}

// RoundBreakdown returns per-round ROI statistics.
func (h *Handler) RoundBreakdown(w nethttp.ResponseWriter, r *nethttp.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	rounds, err := h.svc.RoundBreakdown(f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"rounds": rounds}, h.logger)
}

// TeamDrafting returns the team drafting table.
func (h *Handler) TeamDrafting(w nethttp.ResponseWriter, r *nethttp.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	minPicks, err := requestutil.IntParam(r.URL.Query(), "min_picks", h.defaults.MinTeamPicks)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	teams, err := h.svc.TeamDrafting(f, minPicks)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"minPicks": minPicks, "teams": teams}, h.logger)
}

// TeamEfficiency returns the team draft efficiency table.
func (h *Handler) TeamEfficiency(w nethttp.ResponseWriter, r *nethttp.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	minPicks, err := requestutil.IntParam(r.URL.Query(), "min_picks", h.defaults.MinTeamPicks)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	teams, err := h.svc.TeamEfficiency(f, minPicks)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"minPicks": minPicks, "teams": teams}, h.logger)
}

// Categories returns the draft category breakdown.
func (h *Handler) Categories(w nethttp.ResponseWriter, r *nethttp.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	cats, err := h.svc.Categories(f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"categories": cats}, h.logger)
}

// Summary returns the executive summary.
func (h *Handler) Summary(w nethttp.ResponseWriter, r *nethttp.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	summary, err := h.svc.Summary(f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, summary, h.logger)
}

// Distribution returns the value score histogram.
func (h *Handler) Distribution(w nethttp.ResponseWriter, r *nethttp.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	bins, err := requestutil.IntParam(r.URL.Query(), "bins", h.defaults.HistogramBins)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	dist, err := h.svc.Distribution(f, bins)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, dist, h.logger)
}

// Steals returns late-round picks with high value scores.
func (h *Handler) Steals(w nethttp.ResponseWriter, r *nethttp.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	n, err := requestutil.IntParam(r.URL.Query(), "n", h.defaults.TopN)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	steals, err := h.svc.Steals(f, n)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"players": steals}, h.logger)
}

// ExportCSV streams the filtered rows as a CSV download.
func (h *Handler) ExportCSV(w nethttp.ResponseWriter, r *nethttp.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	rows, err := h.svc.Players(f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="nba_draft_roi.csv"`)
	if err := export.WriteCSV(w, rows); err != nil {
		logging.Error(loggerFromContext(r, h.logger), "csv export failed", err)
	}
}

func (h *Handler) allowGet(w nethttp.ResponseWriter, r *nethttp.Request) bool {
	if r.Method != nethttp.MethodGet && r.Method != nethttp.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return false
	}
	return true
}

// filter checks the method and parses the shared filter parameters, writing
// the error response itself when either fails.
func (h *Handler) filter(w nethttp.ResponseWriter, r *nethttp.Request) (valuation.Filter, bool) {
	if !h.allowGet(w, r) {
		return valuation.Filter{}, false
	}
	f, err := requestutil.Filter(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return valuation.Filter{}, false
	}
	return f, true
}

func (h *Handler) fail(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	if errors.Is(err, valuation.ErrInvalidFilter) {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	logging.Error(loggerFromContext(r, h.logger), "query failed", err)
	writeError(w, r, nethttp.StatusInternalServerError, "internal error", h.logger)
}
