// Package dashboard renders the HTML summary, explorer and team efficiency pages
// over the query service.
package dashboard

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/a-h/templ"

	app "github.com/preston-bernstein/nba-draft-roi/internal/app/players"
	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
	"github.com/preston-bernstein/nba-draft-roi/internal/http/requestutil"
	"github.com/preston-bernstein/nba-draft-roi/internal/logging"
	"github.com/preston-bernstein/nba-draft-roi/internal/valuation"
)

// Options sizes the charts and tables.
type Options struct {
	TopN          int
	MinTeamPicks  int
	ExplorerLimit int
	HistogramBins int
}

// Handler serves "/", "/explorer" and "/efficiency".
type Handler struct {
	svc    *app.Service
	opts   Options
	logger *slog.Logger
	form   FilterForm
}

// New builds a dashboard handler. The sidebar choices are taken from the full
// table once, since it never changes after load.
func New(svc *app.Service, opts Options, logger *slog.Logger) (*Handler, error) {
	all, err := svc.Players(valuation.Filter{})
	if err != nil {
		return nil, err
	}
	return &Handler{svc: svc, opts: opts, logger: logger, form: formOptions(all)}, nil
}

func formOptions(all []players.Valued) FilterForm {
	var form FilterForm
	positions := map[string]struct{}{}
	rounds := map[int]struct{}{}
	for _, p := range all {
		if p.Position != "" {
			positions[p.Position] = struct{}{}
		}
		if p.DraftRound != nil {
			rounds[*p.DraftRound] = struct{}{}
		}
		if p.DraftYear != nil {
			y := *p.DraftYear
			if form.MinYear == nil || y < *form.MinYear {
				form.MinYear = players.Int(y)
			}
			if form.MaxYear == nil || y > *form.MaxYear {
				form.MaxYear = players.Int(y)
			}
		}
	}
	for pos := range positions {
		form.Positions = append(form.Positions, pos)
	}
	sort.Strings(form.Positions)
	for r := range rounds {
		form.RoundOptions = append(form.RoundOptions, r)
	}
	sort.Ints(form.RoundOptions)
	return form
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		h.render(w, r, http.StatusMethodNotAllowed, ErrorPage("Method not allowed", "Only GET is supported."))
		return
	}
	switch r.URL.Path {
	case pathSummary:
		h.summary(w, r)
	case pathExplorer:
		h.explorer(w, r)
	case pathEfficiency:
		h.efficiency(w, r)
	default:
		h.render(w, r, http.StatusNotFound, ErrorPage("Not found", "No page at "+r.URL.Path+"."))
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	f, form, ok := h.filter(w, r)
	if !ok {
		return
	}
	data := SummaryData{Filter: form, MinTeamPicks: h.opts.MinTeamPicks}
	var err error
	if data.Summary, err = h.svc.Summary(f); err != nil {
		h.fail(w, r, err)
		return
	}
	if data.TopROI, err = h.svc.TopROI(f, h.opts.TopN, f.Position); err != nil {
		h.fail(w, r, err)
		return
	}
	if data.RoundAverages, err = h.svc.AverageROIByRound(f); err != nil {
		h.fail(w, r, err)
		return
	}
	if data.Rounds, err = h.svc.RoundBreakdown(f); err != nil {
		h.fail(w, r, err)
		return
	}
	if data.Teams, err = h.svc.TeamDrafting(f, h.opts.MinTeamPicks); err != nil {
		h.fail(w, r, err)
		return
	}
	if data.Drafted, err = h.svc.Players(f); err != nil {
		h.fail(w, r, err)
		return
	}
	if data.Distribution, err = h.svc.Distribution(f, h.opts.HistogramBins); err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, SummaryPage(data))
}

func (h *Handler) explorer(w http.ResponseWriter, r *http.Request) {
	f, form, ok := h.filter(w, r)
	if !ok {
		return
	}
	query := f.Query
	f.Query = ""
	rows, err := h.svc.Search(f, query, 0)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data := ExplorerData{Filter: form, Total: len(rows), ExportURL: exportURL(r.URL.Query())}
	if h.opts.ExplorerLimit > 0 && len(rows) > h.opts.ExplorerLimit {
		rows = rows[:h.opts.ExplorerLimit]
	}
	data.Rows = rows
	h.render(w, r, http.StatusOK, ExplorerPage(data))
}

func (h *Handler) efficiency(w http.ResponseWriter, r *http.Request) {
	f, form, ok := h.filter(w, r)
	if !ok {
		return
	}
	data := EfficiencyData{Filter: form, MinTeamPicks: h.opts.MinTeamPicks, TopN: h.opts.TopN}
	var err error
	if data.Teams, err = h.svc.TeamEfficiency(f, h.opts.MinTeamPicks); err != nil {
		h.fail(w, r, err)
		return
	}
	if data.Categories, err = h.svc.Categories(f); err != nil {
		h.fail(w, r, err)
		return
	}
	if data.Steals, err = h.svc.Steals(f, h.opts.TopN); err != nil {
		h.fail(w, r, err)
		return
	}
	if data.TopValue, err = h.svc.TopValue(f, h.opts.TopN); err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, EfficiencyPage(data))
}

// filter parses the sidebar parameters and echoes them back into the form.
func (h *Handler) filter(w http.ResponseWriter, r *http.Request) (valuation.Filter, FilterForm, bool) {
	q := r.URL.Query()
	f, err := requestutil.Filter(q)
	if err != nil {
		h.fail(w, r, err)
		return valuation.Filter{}, FilterForm{}, false
	}
	form := h.form
	form.Position = f.Position
	form.Query = f.Query
	form.Rounds = f.Rounds
	form.YearFrom = q.Get("draft_year_from")
	form.YearTo = q.Get("draft_year_to")
	return f, form, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, valuation.ErrInvalidFilter) {
		h.render(w, r, http.StatusBadRequest, ErrorPage("Invalid filter", err.Error()))
		return
	}
	logging.Error(logging.FromContext(r.Context(), h.logger), "dashboard query failed", err)
	h.render(w, r, http.StatusInternalServerError, ErrorPage("Something went wrong", "The page could not be rendered."))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	templ.Handler(c, templ.WithStatus(status)).ServeHTTP(w, r)
}
