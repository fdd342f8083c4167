// Package players is the query facade over the derived player table. The HTTP
// handlers, the dashboard and the report command all go through it.
package players

import (
	"fmt"

	"github.com/preston-bernstein/nba-draft-roi/internal/analysis"
	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
	"github.com/preston-bernstein/nba-draft-roi/internal/loader"
	"github.com/preston-bernstein/nba-draft-roi/internal/metrics"
	"github.com/preston-bernstein/nba-draft-roi/internal/valuation"
)

// Query names recorded in telemetry.
const (
	QueryPlayers        = "players"
	QueryPlayer         = "player"
	QuerySearch         = "search"
	QueryTopROI         = "top_roi"
	QueryTopValue       = "top_value"
	QueryAverageByRound = "average_roi_by_round"
	QueryRoundBreakdown = "round_breakdown"
	QueryTeamDrafting   = "team_drafting"
	QueryTeamEfficiency = "team_efficiency"
	QueryCategories     = "categories"
	QuerySummary        = "summary"
	QueryDistribution   = "distribution"
	QuerySteals         = "steals"
)

// Store defines the read contract of the derived table.
type Store interface {
	ListPlayers() []players.Valued
	GetPlayer(name string) (players.Valued, bool)
}

// Service answers read-only queries against a Store.
type Service struct {
	store    Store
	report   loader.Report
	recorder *metrics.Recorder
}

// NewService constructs a Service. report describes the load that filled store.
func NewService(store Store, report loader.Report, recorder *metrics.Recorder) *Service {
	return &Service{store: store, report: report, recorder: recorder}
}

// LoadReport returns the counts from the dataset load.
func (s *Service) LoadReport() loader.Report {
	return s.report
}

// Players returns the derived rows matching f, in table order.
func (s *Service) Players(f valuation.Filter) ([]players.Valued, error) {
	out, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	s.record(QueryPlayers, len(out))
	return out, nil
}

// Player returns a single player by full name.
func (s *Service) Player(name string) (players.Valued, bool) {
	p, ok := s.store.GetPlayer(name)
	if ok {
		s.record(QueryPlayer, 1)
	} else {
		s.record(QueryPlayer, 0)
	}
	return p, ok
}

// Search looks players up by name within the rows matching f.
func (s *Service) Search(f valuation.Filter, query string, limit int) ([]players.Valued, error) {
	rows, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	out := analysis.Search(rows, query, limit)
	s.record(QuerySearch, len(out))
	return out, nil
}

// TopROI ranks the rows matching f by ROI.
func (s *Service) TopROI(f valuation.Filter, n int, position string) ([]players.Ranked, error) {
	rows, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	out := valuation.TopROI(valuation.Records(rows), n, position)
	s.record(QueryTopROI, len(out))
	return out, nil
}

// TopValue ranks the rows matching f by value score.
func (s *Service) TopValue(f valuation.Filter, n int) ([]players.Ranked, error) {
	rows, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	out := valuation.TopValue(valuation.Records(rows), n)
	s.record(QueryTopValue, len(out))
	return out, nil
}

// AverageROIByRound averages ROI per draft round over the rows matching f.
func (s *Service) AverageROIByRound(f valuation.Filter) (map[int]float64, error) {
	rows, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	out := valuation.AverageROIByDraftRound(valuation.Records(rows))
	s.record(QueryAverageByRound, len(out))
	return out, nil
}

// RoundBreakdown returns per-round ROI statistics.
func (s *Service) RoundBreakdown(f valuation.Filter) ([]analysis.RoundStat, error) {
	rows, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	out := analysis.RoundBreakdown(rows)
	s.record(QueryRoundBreakdown, len(out))
	return out, nil
}

// TeamDrafting returns the team drafting table.
func (s *Service) TeamDrafting(f valuation.Filter, minPicks int) ([]analysis.TeamDraft, error) {
	rows, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	out := analysis.TeamDrafting(rows, minPicks)
	s.record(QueryTeamDrafting, len(out))
	return out, nil
}

// TeamEfficiency returns the team draft efficiency table.
func (s *Service) TeamEfficiency(f valuation.Filter, minPicks int) ([]analysis.TeamEfficiencyRow, error) {
	rows, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	out := analysis.TeamEfficiency(rows, minPicks)
	s.record(QueryTeamEfficiency, len(out))
	return out, nil
}

// Categories returns the draft category breakdown.
func (s *Service) Categories(f valuation.Filter) ([]analysis.CategoryStat, error) {
	rows, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	out := analysis.CategoryBreakdown(rows, valuation.Categories)
	s.record(QueryCategories, len(out))
	return out, nil
}

// Summary returns the executive summary.
func (s *Service) Summary(f valuation.Filter) (analysis.Summary, error) {
	rows, err := s.filtered(f)
	if err != nil {
		return analysis.Summary{}, err
	}
	out := analysis.Summarize(rows)
	s.record(QuerySummary, out.TotalPlayers)
	return out, nil
}

// Distribution returns the value score histogram. A bin count above
// analysis.MaxBins is rejected as an invalid filter.
func (s *Service) Distribution(f valuation.Filter, bins int) (analysis.Distribution, error) {
	if bins > analysis.MaxBins {
		return analysis.Distribution{}, fmt.Errorf("%w: bins must be at most %d (got %d)", valuation.ErrInvalidFilter, analysis.MaxBins, bins)
	}
	rows, err := s.filtered(f)
	if err != nil {
		return analysis.Distribution{}, err
	}
	out := analysis.ValueDistribution(rows, bins)
	s.record(QueryDistribution, out.Count)
	return out, nil
}

// Steals returns late-round picks that outperformed their slot.
func (s *Service) Steals(f valuation.Filter, n int) ([]players.Valued, error) {
	rows, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	out := analysis.LateRoundSteals(rows, n)
	s.record(QuerySteals, len(out))
	return out, nil
}

func (s *Service) filtered(f valuation.Filter) ([]players.Valued, error) {
	return valuation.FilterValued(s.store.ListPlayers(), f)
}

func (s *Service) record(query string, results int) {
	s.recorder.RecordQuery(query, results)
}
