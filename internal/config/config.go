// Package config provides configuration management for seqtrader.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "seqtrader/internal/errors"
	"seqtrader/internal/journal"
	"seqtrader/internal/logging"
	"seqtrader/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Log      LogConfig     `mapstructure:"log" json:"log"`
	Insights InsightConfig `mapstructure:"insights" json:"insights"`
	Journal  JournalConfig `mapstructure:"journal" json:"journal"`
	UI       UIConfig      `mapstructure:"ui" json:"ui"`

	// Source is the config file that was read, empty when running on defaults.
	Source string `mapstructure:"-" json:"source,omitempty"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level" json:"level" default:"info"`
	Console    bool   `mapstructure:"console" json:"console" default:"true"`
	File       bool   `mapstructure:"file" json:"file" default:"false"`
	FilePath   string `mapstructure:"file_path" json:"file_path"`
	MaxSize    int    `mapstructure:"max_size" json:"max_size" default:"100"` // megabytes
	MaxBackups int    `mapstructure:"max_backups" json:"max_backups" default:"7"`
	MaxAge     int    `mapstructure:"max_age" json:"max_age" default:"30"` // days
}

// InsightConfig holds the insight gates. Rates are 0-1 ratios.
type InsightConfig struct {
	MinSettled         int      `mapstructure:"min_settled" json:"min_settled" default:"3"`
	MinBucket          int      `mapstructure:"min_bucket" json:"min_bucket" default:"2"`
	PositiveRate       float64  `mapstructure:"positive_rate" json:"positive_rate" default:"0.70"`
	CautionRate        float64  `mapstructure:"caution_rate" json:"caution_rate" default:"0.40"`
	EmotionCautionRate float64  `mapstructure:"emotion_caution_rate" json:"emotion_caution_rate" default:"0.35"`
	StrongDiscipline   float64  `mapstructure:"strong_discipline" json:"strong_discipline" default:"4.0"`
	WeakDiscipline     float64  `mapstructure:"weak_discipline" json:"weak_discipline" default:"2.5"`
	PlanPositiveRate   float64  `mapstructure:"plan_positive_rate" json:"plan_positive_rate" default:"0.70"`
	DesirableStates    []string `mapstructure:"desirable_states" json:"desirable_states" default:"[\"calm\",\"focused\"]"`
}

// JournalConfig holds trade-log settings.
type JournalConfig struct {
	// Path is the trade log used when a journal command gets no file argument.
	Path string `mapstructure:"path" json:"path"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled" json:"color_enabled" default:"true"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/seqtrader"
	}
	return filepath.Join(home, ".config", "seqtrader")
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	// Tags are static; Set only fails on malformed tags.
	if err := defaults.Set(cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config.toml is replaced by a commented template and defaults are used.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	loadDotEnv(configDir)

	cfg := Default()

	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, apperrors.Wrap(err, "loading config.toml")
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(err, "validating config")
	}

	return cfg, nil
}

// loadDotEnv loads .env from the working directory, then the config
// directory. Variables already set in the environment win.
func loadDotEnv(configDir string) {
	for _, path := range []string{".env", filepath.Join(configDir, ".env")} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
		}
	}
}

func loadConfigFile(configDir, name string, cfg *Config) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return createTemplateConfig(configDir, name)
		}
		return err
	}

	if err := v.Unmarshal(cfg); err != nil {
		return err
	}
	cfg.Source = v.ConfigFileUsed()
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SEQTRADER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SEQTRADER_JOURNAL"); v != "" {
		cfg.Journal.Path = v
	}
	if v := os.Getenv("SEQTRADER_NO_COLOR"); v != "" {
		if off, err := strconv.ParseBool(v); err == nil && off {
			cfg.UI.ColorEnabled = false
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return apperrors.NewConfigError("log.level", "must be debug, info, warn or error")
	}

	in := c.Insights
	rates := []struct {
		key  string
		rate float64
	}{
		{"insights.positive_rate", in.PositiveRate},
		{"insights.caution_rate", in.CautionRate},
		{"insights.emotion_caution_rate", in.EmotionCautionRate},
		{"insights.plan_positive_rate", in.PlanPositiveRate},
	}
	for _, r := range rates {
		if r.rate < 0 || r.rate > 1 {
			return apperrors.NewConfigError(r.key, "must be between 0 and 1")
		}
	}
	if in.CautionRate >= in.PositiveRate {
		return apperrors.NewConfigError("insights.caution_rate", "must be below positive_rate")
	}
	if in.EmotionCautionRate >= in.PositiveRate {
		return apperrors.NewConfigError("insights.emotion_caution_rate", "must be below positive_rate")
	}
	if in.WeakDiscipline >= in.StrongDiscipline {
		return apperrors.NewConfigError("insights.weak_discipline", "must be below strong_discipline")
	}
	if in.MinSettled < 1 {
		return apperrors.NewConfigError("insights.min_settled", "must be at least 1")
	}
	if in.MinBucket < 1 {
		return apperrors.NewConfigError("insights.min_bucket", "must be at least 1")
	}
	for _, s := range in.DesirableStates {
		if !models.NormalizeEmotion(s).Known() {
			return apperrors.NewConfigError("insights.desirable_states", fmt.Sprintf("unknown emotional state %q", s))
		}
	}

	return nil
}

// Thresholds converts the insight settings for the journal engine.
func (ic InsightConfig) Thresholds() journal.Thresholds {
	desirable := make([]models.EmotionalState, 0, len(ic.DesirableStates))
	for _, s := range ic.DesirableStates {
		desirable = append(desirable, models.NormalizeEmotion(s))
	}
	return journal.Thresholds{
		MinSettled:       ic.MinSettled,
		MinBucket:        ic.MinBucket,
		Positive:         ic.PositiveRate,
		Caution:          ic.CautionRate,
		EmotionCaution:   ic.EmotionCautionRate,
		StrongDiscipline: ic.StrongDiscipline,
		WeakDiscipline:   ic.WeakDiscipline,
		PlanPositive:     ic.PlanPositiveRate,
		Desirable:        desirable,
	}
}

// Logging converts the log settings for the logging package.
func (lc LogConfig) Logging(configDir string) logging.LogConfig {
	out := logging.DefaultLogConfig()
	out.Level = lc.Level
	out.Console = lc.Console
	out.File = lc.File
	out.MaxSize = lc.MaxSize
	out.MaxBackups = lc.MaxBackups
	out.MaxAge = lc.MaxAge
	if lc.FilePath != "" {
		out.FilePath = lc.FilePath
	} else if configDir != "" {
		out.FilePath = filepath.Join(configDir, "logs", "seqtrader.log")
	}
	return out
}
