package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"seqtrader/internal/logging"
	"seqtrader/internal/models"
	"seqtrader/internal/sequence"
	"seqtrader/pkg/utils"
)

// ClassificationResult is the JSON shape of one classification.
type ClassificationResult struct {
	Answers models.AnswerSet `json:"answers"`
	Rule    string           `json:"rule"`
	sequence.Description
}

// addClassifyCommands adds the sequence wizard commands.
func addClassifyCommands(rootCmd *cobra.Command, app *App) {
	cmd := newClassifyCmd(app)
	cmd.AddCommand(newClassifyMatrixCmd(app))
	cmd.AddCommand(newClassifyRulesCmd(app))
	rootCmd.AddCommand(cmd)
}

func newClassifyCmd(app *App) *cobra.Command {
	var prior, position, lifecycle, confirmation, narrative string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a candle setup from the wizard answers",
		Long: `Classify a candle setup from the four wizard answers.

  --prior         clean | weak | none
  --position      insideSwing | awayFromSwing | noReference
  --lifecycle     justOpened | formingSwing | postSwing | expanded | expandedRetracing
  --confirmation  freshReversal | inherited | realigned | forming | none
  --narrative     bullish | bearish | ranging | unclear (optional, shown only)`,
		Example: "  seqtrader classify --prior clean --position insideSwing --lifecycle justOpened --confirmation inherited",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := parseAnswers(prior, position, lifecycle, confirmation, narrative)
			if err != nil {
				return err
			}

			label, rule := app.Classifier.ClassifyTrace(answers)
			logging.LogClassification(app.Logger, string(label), rule)

			result := ClassificationResult{
				Answers:     answers,
				Rule:        rule,
				Description: sequence.Describe(label),
			}

			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(result)
			}
			renderClassification(output, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&prior, "prior", "", "prior swing quality")
	cmd.Flags().StringVar(&position, "position", "", "current open position relative to the swing")
	cmd.Flags().StringVar(&lifecycle, "lifecycle", "", "candle lifecycle state")
	cmd.Flags().StringVar(&confirmation, "confirmation", "", "confirmation source")
	cmd.Flags().StringVar(&narrative, "narrative", "", "HTF narrative (advisory)")
	for _, name := range []string{"prior", "position", "lifecycle", "confirmation"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func parseAnswers(prior, position, lifecycle, confirmation, narrative string) (models.AnswerSet, error) {
	var (
		a   models.AnswerSet
		err error
	)
	if a.PriorSwing, err = models.ParsePriorSwingQuality(prior); err != nil {
		return a, err
	}
	if a.Position, err = models.ParseOpenPosition(position); err != nil {
		return a, err
	}
	if a.Lifecycle, err = models.ParseCandleLifecycle(lifecycle); err != nil {
		return a, err
	}
	if a.Confirmation, err = models.ParseConfirmationSource(confirmation); err != nil {
		return a, err
	}
	if a.Narrative, err = models.ParseHTFNarrative(narrative); err != nil {
		return a, err
	}
	return a, nil
}

func renderClassification(output *Output, r ClassificationResult) {
	lines := []string{
		fmt.Sprintf("Label:     %s", output.Label(r.Label)),
		fmt.Sprintf("Tradeable: %s", yesNo(output, r.Tradeable)),
		fmt.Sprintf("Rule:      %s", r.Rule),
	}
	if r.Answers.Narrative != "" {
		lines = append(lines, fmt.Sprintf("Narrative: %s", r.Answers.Narrative))
	}
	output.Box(r.Title, lines)
	output.Println()
	output.Println(r.Summary)
}

func yesNo(output *Output, ok bool) string {
	if ok {
		return output.Green("yes")
	}
	return output.Yellow("no")
}

func newClassifyMatrixCmd(app *App) *cobra.Command {
	var only string

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Classify every combination of answers",
		Long:  "Print the label for all 225 combinations of the four decision answers.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var results []ClassificationResult
			counts := make(map[sequence.Label]int)

			for _, answers := range sequence.AllAnswerSets() {
				label, rule := app.Classifier.ClassifyTrace(answers)
				counts[label]++
				if only != "" && string(label) != only {
					continue
				}
				results = append(results, ClassificationResult{
					Answers:     answers,
					Rule:        rule,
					Description: sequence.Describe(label),
				})
			}

			output := app.output(cmd)
			if output.IsJSON() {
				if results == nil {
					results = []ClassificationResult{}
				}
				return output.JSON(results)
			}

			table := NewTable(output, "Prior", "Position", "Lifecycle", "Confirmation", "Label", "Rule")
			for _, r := range results {
				table.AddRow(
					string(r.Answers.PriorSwing),
					string(r.Answers.Position),
					string(r.Answers.Lifecycle),
					string(r.Answers.Confirmation),
					output.Label(r.Label),
					r.Rule,
				)
			}
			table.Render()

			output.Println()
			output.Bold("Label counts")
			for _, label := range sequence.Labels {
				output.Printf("  %s %s\n", utils.PadRight(string(label), 22), strconv.Itoa(counts[label]))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&only, "label", "", "only show combinations with this label")
	return cmd
}

func newClassifyRulesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the classification rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type ruleView struct {
				Order     int            `json:"order"`
				Name      string         `json:"name"`
				Label     sequence.Label `json:"label"`
				Tradeable bool           `json:"tradeable"`
			}

			var views []ruleView
			for i, r := range sequence.Rules() {
				views = append(views, ruleView{Order: i + 1, Name: r.Name, Label: r.Label, Tradeable: r.Label.Tradeable()})
			}
			views = append(views, ruleView{Order: len(views) + 1, Name: sequence.FallbackRule, Label: sequence.LabelUnclear})

			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(views)
			}

			output.Dim("Rules are checked top-down; the first match wins.")
			table := NewTable(output, "#", "Rule", "Label", "Summary")
			for _, v := range views {
				table.AddRow(
					strconv.Itoa(v.Order),
					v.Name,
					output.Label(v.Label),
					utils.TruncateString(sequence.Describe(v.Label).Summary, 60),
				)
			}
			table.Render()
			return nil
		},
	}
}
