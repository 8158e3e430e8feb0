package cli

import (
	"errors"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"seqtrader/internal/journal"
	"seqtrader/internal/logging"
	"seqtrader/internal/models"
)

// errNoJournal is returned when neither an argument nor journal.path names a log.
var errNoJournal = errors.New("no trade log given: pass a file or set journal.path in config.toml")

// addJournalCommands adds journal commands.
func addJournalCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Trading journal analytics",
		Long: `Review an exported trade journal.

The file may be .csv, .json or .yaml. When no file is given, journal.path
from config.toml (or SEQTRADER_JOURNAL) is used.`,
	}

	cmd.AddCommand(newJournalStatsCmd(app))
	cmd.AddCommand(newJournalInsightsCmd(app))

	rootCmd.AddCommand(cmd)
}

// journalPath resolves the trade log for a journal command.
func (app *App) journalPath(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if app.Config != nil && app.Config.Journal.Path != "" {
		return app.Config.Journal.Path, nil
	}
	return "", errNoJournal
}

// loadJournal reads and aggregates the trade log named by args.
func (app *App) loadJournal(cmd *cobra.Command, args []string) ([]models.TradeRecord, journal.Aggregates, error) {
	path, err := app.journalPath(args)
	if err != nil {
		return nil, journal.Aggregates{}, err
	}
	logger := logging.WithSource(logging.FromContext(cmd.Context()), path)

	records, err := app.Loader.LoadFile(path)
	if err != nil {
		logging.LogIngest(logger, path, err)
		return nil, journal.Aggregates{}, err
	}

	start := time.Now()
	agg := journal.Aggregate(records)
	logging.LogAggregation(logger, agg.Totals.Records, agg.Totals.Settled, agg.Totals.Pending, time.Since(start))

	return records, agg, nil
}

func newJournalStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Show win rates by session, zone, emotion and pattern",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, agg, err := app.loadJournal(cmd, args)
			if err != nil {
				return err
			}

			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(agg)
			}

			renderStats(output, records, agg, app.Config.Insights.Thresholds())
			return nil
		},
	}
}

func renderStats(output *Output, records []models.TradeRecord, agg journal.Aggregates, th journal.Thresholds) {
	t := agg.Totals
	first, last := period(records)

	output.Box("Trading Journal", []string{
		"Period:     " + FormatDate(first) + " to " + FormatDate(last),
		"Trades:     " + strconv.Itoa(t.Records) + " (" + strconv.Itoa(t.Pending) + " pending)",
		"Results:    " + output.Green(strconv.Itoa(t.Wins)+"W") + " " + output.Red(strconv.Itoa(t.Losses)+"L") + " " + strconv.Itoa(t.Breakevens) + "BE",
		"Win Rate:   " + FormatWinRate(t),
		"Discipline: " + FormatDiscipline(agg),
	})

	for _, dim := range agg.Dimensions {
		output.Println()
		output.Bold("%s", FormatDimensionName(dim.Name))
		if len(dim.Buckets) == 0 {
			output.Dim("  No settled trades")
			continue
		}
		table := NewTable(output, "Value", "Win Rate")
		for _, b := range dim.Buckets {
			table.AddRow(b.Key, output.Rate(dim.Name, b, th))
		}
		table.Render()
	}

	output.Println()
	output.Bold("Plan Adherence")
	if agg.PlanAdherence == nil {
		output.Dim("  No settled trades followed the plan")
	} else {
		output.Printf("  When following the plan: %s\n", output.PlanRate(*agg.PlanAdherence, th))
	}
}

// period returns the earliest and latest timestamps in records, ignoring
// records without one.
func period(records []models.TradeRecord) (time.Time, time.Time) {
	var first, last time.Time
	for _, r := range records {
		if r.LoggedAt.IsZero() {
			continue
		}
		if first.IsZero() || r.LoggedAt.Before(first) {
			first = r.LoggedAt
		}
		if r.LoggedAt.After(last) {
			last = r.LoggedAt
		}
	}
	return first, last
}

func newJournalInsightsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "insights [file]",
		Short: "Show coaching insights from the journal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, agg, err := app.loadJournal(cmd, args)
			if err != nil {
				return err
			}

			insights := app.Generator.Generate(agg, len(records))
			logging.LogInsights(app.Logger, len(insights))

			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"records":  len(records),
					"settled":  agg.Totals.Settled,
					"insights": insights,
				})
			}

			if len(insights) == 0 {
				floor := app.Config.Insights.MinSettled
				if agg.Totals.Settled < floor || len(records) < floor {
					output.Info("Not enough settled trades for insights yet (need at least %d).", floor)
				} else {
					output.Info("No notable patterns yet.")
				}
				return nil
			}

			output.Bold("Insights (%d settled trades)", agg.Totals.Settled)
			for _, in := range insights {
				output.Printf("  %s %s\n", output.Tone(in.Tone), in.Text)
			}
			return nil
		},
	}
}
