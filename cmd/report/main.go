// Command report prints the draft ROI tables for the configured dataset and
// optionally writes CSV and SQLite exports.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	app "github.com/preston-bernstein/nba-draft-roi/internal/app/players"
	"github.com/preston-bernstein/nba-draft-roi/internal/config"
	"github.com/preston-bernstein/nba-draft-roi/internal/domain/players"
	"github.com/preston-bernstein/nba-draft-roi/internal/export"
	"github.com/preston-bernstein/nba-draft-roi/internal/logging"
	"github.com/preston-bernstein/nba-draft-roi/internal/server"
	"github.com/preston-bernstein/nba-draft-roi/internal/store"
	"github.com/preston-bernstein/nba-draft-roi/internal/valuation"
)

type options struct {
	csvPath    string
	sqlitePath string
	topN       int
	minPicks   int
	position   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.StringVar(&opts.csvPath, "csv", "", "write the derived table to this CSV file")
	fs.StringVar(&opts.sqlitePath, "sqlite", "", "write the derived table to this SQLite file")
	fs.IntVar(&opts.topN, "n", cfg.Query.TopN, "rows in the ranking tables")
	fs.IntVar(&opts.minPicks, "min-picks", cfg.Query.MinTeamPicks, "minimum eligible picks for a team to be listed")
	fs.StringVar(&opts.position, "position", "", "limit the ROI ranking to one position")
	fs.StringVar(&cfg.Dataset.Path, "dataset", cfg.Dataset.Path, "CSV dataset path (implies -source csv)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.topN < 0 || opts.minPicks < 0 {
		return fmt.Errorf("-n and -min-picks must be non-negative")
	}
	if cfg.Dataset.Path != "" {
		cfg.Dataset.Source = "csv"
	}

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "nba-draft-roi-report",
		Output:  stderr,
	})

	vals, report, err := server.LoadDataset(ctx, cfg.Dataset, logger, nil)
	if err != nil {
		return err
	}
	svc := app.NewService(store.NewMemoryStore(vals), report, nil)

	if err := printReport(stdout, svc, opts); err != nil {
		return err
	}
	return writeExports(ctx, stdout, svc, opts)
}

func printReport(w io.Writer, svc *app.Service, opts options) error {
	all := valuation.Filter{}
	report := svc.LoadReport()
	fmt.Fprintf(w, "Loaded %s players from %s (%s rows dropped)\n\n",
		humanize.Comma(int64(report.Loaded)), report.Source, humanize.Comma(int64(report.Dropped)))

	top, err := svc.TopROI(all, opts.topN, opts.position)
	if err != nil {
		return err
	}
	title := "Top players by draft ROI"
	if opts.position != "" {
		title += " (" + opts.position + ")"
	}
	if err := rankedTable(w, title, top); err != nil {
		return err
	}

	topValue, err := svc.TopValue(all, opts.topN)
	if err != nil {
		return err
	}
	if err := rankedTable(w, "Top players by value score", topValue); err != nil {
		return err
	}

	rounds, err := svc.AverageROIByRound(all)
	if err != nil {
		return err
	}
	keys := make([]int, 0, len(rounds))
	for round := range rounds {
		keys = append(keys, round)
	}
	sort.Ints(keys)
	tw := section(w, "Average ROI by draft round")
	fmt.Fprintln(tw, "Round\tAvg ROI")
	for _, round := range keys {
		fmt.Fprintf(tw, "%d\t%s\n", round, num(rounds[round]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	teams, err := svc.TeamDrafting(all, opts.minPicks)
	if err != nil {
		return err
	}
	tw = section(w, fmt.Sprintf("Team drafting (at least %d picks)", opts.minPicks))
	fmt.Fprintln(tw, "Team\tPicks\tAvg ROI\tMedian ROI\tAvg value\tAvg pick")
	for _, t := range teams {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n", t.Team, t.Players, num(t.AvgROI), num(t.MedianROI), num(t.AvgValue), num(t.AvgDraftPosition))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	summary, err := svc.Summary(all)
	if err != nil {
		return err
	}
	tw = section(w, "Summary")
	fmt.Fprintf(tw, "Players\t%s\n", humanize.Comma(int64(summary.TotalPlayers)))
	fmt.Fprintf(tw, "ROI eligible\t%s (%s%%)\n", humanize.Comma(int64(summary.ROIEligible)), humanize.FormatFloat("#.#", summary.ROIEligibleShare))
	fmt.Fprintf(tw, "Average ROI\t%s\n", optional(summary.AverageROI))
	fmt.Fprintf(tw, "Average value score\t%s\n", num(summary.AverageValueScore))
	fmt.Fprintf(tw, "Average career\t%s years\n", num(summary.AverageCareerLength))
	return tw.Flush()
}

// rankedTable prints ROI as n/a for undrafted players.
func rankedTable(w io.Writer, title string, rows []players.Ranked) error {
	tw := section(w, title)
	fmt.Fprintln(tw, "#\tPlayer\tTeam\tROI\tValue")
	for i, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, r.Name, r.Record.Team, optional(r.ROI), num(r.ValueScore))
	}
	return tw.Flush()
}

func section(w io.Writer, title string) *tabwriter.Writer {
	fmt.Fprintf(w, "\n%s\n", title)
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func writeExports(ctx context.Context, w io.Writer, svc *app.Service, opts options) error {
	if opts.csvPath == "" && opts.sqlitePath == "" {
		return nil
	}
	rows, err := svc.Players(valuation.Filter{})
	if err != nil {
		return err
	}
	if opts.csvPath != "" {
		f, err := os.Create(opts.csvPath)
		if err != nil {
			return fmt.Errorf("create csv export: %w", err)
		}
		if err := export.WriteCSV(f, rows); err != nil {
			_ = f.Close()
			return fmt.Errorf("write csv export: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close csv export: %w", err)
		}
		fmt.Fprintf(w, "\nWrote %s rows to %s\n", humanize.Comma(int64(len(rows))), opts.csvPath)
	}
	if opts.sqlitePath != "" {
		rounds, err := svc.AverageROIByRound(valuation.Filter{})
		if err != nil {
			return err
		}
		if err := export.WriteSQLite(ctx, opts.sqlitePath, rows, rounds); err != nil {
			return err
		}
		fmt.Fprintf(w, "\nWrote %s rows to %s\n", humanize.Comma(int64(len(rows))), opts.sqlitePath)
	}
	return nil
}

func num(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func optional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return num(*v)
}
