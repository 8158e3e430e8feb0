// Package cli provides the command-line interface for seqtrader.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"seqtrader/internal/config"
	"seqtrader/internal/ingest"
	"seqtrader/internal/journal"
	"seqtrader/internal/logging"
	"seqtrader/internal/sequence"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-10-01"
)

// App holds the application dependencies.
type App struct {
	Config     *config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Classifier *sequence.Classifier
	Generator  *journal.Generator
	Loader     *ingest.Loader
}

// NewRootCmd creates the root command for the CLI. A nil cfg means the
// configuration is loaded from --config when a command runs.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "seqtrader",
		Short: "Trade sequence classifier and journal insights",
		Long: `seqtrader classifies a candle setup from four wizard answers into a
continuation, reversal or aligned sequence, or tells you to wait.

It also reads an exported trade journal (.csv, .json or .yaml), reports win
rates by session, HTF zone, emotional state and pattern, and turns them into
short coaching insights.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.load(cmd); err != nil {
				return err
			}

			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				app.Logger = logging.SetDebugLevel(app.Logger)
			}
			app.Logger = logging.WithCommand(app.Logger, cmd.CommandPath())
			app.wire()

			cmd.SetContext(logging.WithLogger(cmd.Context(), app.Logger))
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/seqtrader)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addClassifyCommands(rootCmd, app)
	addJournalCommands(rootCmd, app)

	return rootCmd
}

// load reads configuration and builds the logger unless both were injected.
func (app *App) load(cmd *cobra.Command) error {
	dir, _ := cmd.Flags().GetString("config")
	if dir == "" {
		dir = config.DefaultConfigDir()
	}
	if app.ConfigDir == "" {
		app.ConfigDir = dir
	}
	if app.Config != nil {
		return nil
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	app.Config = cfg
	app.Logger = logging.NewLoggerWithConfig(cfg.Log.Logging(dir))
	app.Logger.Debug().Str("config", cfg.Source).Msg("Configuration loaded")
	return nil
}

// wire builds the engines from the loaded configuration.
func (app *App) wire() {
	app.Classifier = sequence.NewClassifier(app.Logger)
	app.Generator = journal.NewGenerator(app.Config.Insights.Thresholds(), app.Logger)
	app.Loader = ingest.NewLoader(app.Logger)
}

// output creates an Output honouring the UI colour setting.
func (app *App) output(cmd *cobra.Command) *Output {
	return NewOutput(cmd, app.Config == nil || app.Config.UI.ColorEnabled)
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			}
			output.Printf("seqtrader v%s\n", Version)
			output.Dim("Build date: %s", BuildDate)
			return nil
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and check the configuration in use.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": app.ConfigDir})
			}
			output.Println(app.ConfigDir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"valid": true})
			}
			output.Success("✓ Configuration is valid")
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	source := cfg.Source
	if source == "" {
		source = "(defaults)"
	}
	output.Dim("Source: %s", source)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:            %s\n", cfg.Log.Level)
	output.Printf("  Console:          %v\n", cfg.Log.Console)
	output.Printf("  File:             %v\n", cfg.Log.File)
	output.Println()

	in := cfg.Insights
	output.Bold("Insights")
	output.Printf("  Min Settled:      %d\n", in.MinSettled)
	output.Printf("  Min Bucket:       %d\n", in.MinBucket)
	output.Printf("  Positive Rate:    %.2f\n", in.PositiveRate)
	output.Printf("  Caution Rate:     %.2f\n", in.CautionRate)
	output.Printf("  Emotion Caution:  %.2f\n", in.EmotionCautionRate)
	output.Printf("  Discipline Bands: %.1f / %.1f\n", in.WeakDiscipline, in.StrongDiscipline)
	output.Printf("  Plan Positive:    %.2f\n", in.PlanPositiveRate)
	output.Printf("  Desirable States: %v\n", in.DesirableStates)
	output.Println()

	journalPath := cfg.Journal.Path
	if journalPath == "" {
		journalPath = "(none)"
	}
	output.Bold("Journal")
	output.Printf("  Path:             %s\n", journalPath)
}
