package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/nba-draft-roi/internal/http/handlers"
)

// NewRouter registers the API routes and, when dash is non-nil, the dashboard pages.
func NewRouter(h *handlers.Handler, dash nethttp.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/ready", h.Ready)
	mux.HandleFunc("/api/players", h.Players)
	mux.HandleFunc("/api/players/top-roi", h.TopROI)
	mux.HandleFunc("/api/players/top-value", h.TopValue)
	mux.HandleFunc("/api/players/{name}", h.Player)
	mux.HandleFunc("/api/rounds/average-roi", h.AverageROIByRound)
	mux.HandleFunc("/api/rounds/breakdown", h.RoundBreakdown)
	mux.HandleFunc("/api/teams/drafting", h.TeamDrafting)
	mux.HandleFunc("/api/teams/efficiency", h.TeamEfficiency)
	mux.HandleFunc("/api/categories", h.Categories)
	mux.HandleFunc("/api/summary", h.Summary)
	mux.HandleFunc("/api/distribution", h.Distribution)
	mux.HandleFunc("/api/steals", h.Steals)
	mux.HandleFunc("/api/export.csv", h.ExportCSV)
	if dash != nil {
		mux.Handle("/", dash)
	}
	return mux
}
