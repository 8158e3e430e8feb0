// Package ingest reads trade logs exported by the journal into TradeRecords.
package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	apperrors "seqtrader/internal/errors"
	"seqtrader/internal/models"
)

// Format is a supported trade-log encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, filepath.Ext(path))
}

// recordRow is the on-disk shape of one trade.
type recordRow struct {
	ID               string `csv:"id" json:"id" yaml:"id"`
	LoggedAt         string `csv:"logged_at" json:"logged_at" yaml:"logged_at"`
	Outcome          string `csv:"outcome" json:"outcome" yaml:"outcome" validate:"required,oneof=win loss breakeven pending"`
	SessionPhase     string `csv:"session_phase" json:"session_phase" yaml:"session_phase" validate:"required,oneof=H1 H2 H3 H4 outside"`
	HTFZone          string `csv:"htf_zone" json:"htf_zone" yaml:"htf_zone" validate:"required,oneof=premium discount equilibrium"`
	EmotionalState   string `csv:"emotional_state" json:"emotional_state" yaml:"emotional_state" default:"neutral"`
	PatternConfirmed string `csv:"pattern_confirmed" json:"pattern_confirmed" yaml:"pattern_confirmed" default:"none"`
	DisciplineScore  int    `csv:"discipline_score" json:"discipline_score" yaml:"discipline_score" validate:"min=1,max=5"`
	FollowedPlan     string `csv:"followed_plan" json:"followed_plan" yaml:"followed_plan" default:"yes" validate:"oneof=yes partial no"`
}

// document lets JSON and YAML logs wrap the rows in a "trades" key.
type document struct {
	Trades []recordRow `json:"trades" yaml:"trades"`
}

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"}

// Loader decodes and validates trade logs.
type Loader struct {
	validate *validator.Validate
	logger   zerolog.Logger
	newID    func() string
}

// NewLoader creates a loader that logs through logger.
func NewLoader(logger zerolog.Logger) *Loader {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Loader{
		validate: v,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// LoadFile reads a trade log using a loader with no logging.
func LoadFile(path string) ([]models.TradeRecord, error) {
	return NewLoader(zerolog.Nop()).LoadFile(path)
}

// LoadFile reads the trade log at path, choosing the decoder by extension.
func (l *Loader) LoadFile(path string) ([]models.TradeRecord, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, apperrors.NewIngestError(path, 0, err)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewIngestError(path, 0, apperrors.ErrFileNotFound)
		}
		return nil, apperrors.NewIngestError(path, 0, err)
	}
	defer f.Close()

	return l.Decode(format, f, path)
}

// Decode reads records in the given format. source names the input in errors.
func (l *Loader) Decode(format Format, r io.Reader, source string) ([]models.TradeRecord, error) {
	start := time.Now()

	rows, err := decodeRows(format, r)
	if err != nil {
		return nil, apperrors.NewIngestError(source, 0, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewIngestError(source, 0, apperrors.ErrEmptyJournal)
	}

	records := make([]models.TradeRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := l.convert(row)
		if err != nil {
			return nil, apperrors.NewIngestError(source, i+1, err)
		}
		records = append(records, rec)
	}

	l.logger.Debug().
		Str("event", "ingest").
		Str("source", source).
		Str("format", string(format)).
		Int("records", len(records)).
		Dur("duration", time.Since(start)).
		Msg("Trade log loaded")

	return records, nil
}

func decodeRows(format Format, r io.Reader) ([]recordRow, error) {
	var rows []recordRow

	switch format {
	case FormatCSV:
		if err := gocsv.Unmarshal(r, &rows); err != nil {
			return nil, apperrors.Wrapf(err, "decoding %s", format)
		}
		return rows, nil

	case FormatJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		data = bytes.TrimSpace(data)
		if len(data) > 0 && data[0] == '{' {
			var doc document
			if err := json.Unmarshal(data, &doc); err != nil {
				return nil, apperrors.Wrapf(err, "decoding %s", format)
			}
			return doc.Trades, nil
		}
		if len(data) == 0 {
			return nil, nil
		}
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, apperrors.Wrapf(err, "decoding %s", format)
		}
		return rows, nil

	case FormatYAML:
		var node yaml.Node
		if err := yaml.NewDecoder(r).Decode(&node); err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, apperrors.Wrapf(err, "decoding %s", format)
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.MappingNode {
			var doc document
			if err := node.Decode(&doc); err != nil {
				return nil, apperrors.Wrapf(err, "decoding %s", format)
			}
			return doc.Trades, nil
		}
		if err := node.Decode(&rows); err != nil {
			return nil, apperrors.Wrapf(err, "decoding %s", format)
		}
		return rows, nil
	}

	return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, format)
}

// convert normalises, defaults and validates one row.
func (l *Loader) convert(row recordRow) (models.TradeRecord, error) {
	row.Outcome = strings.ToLower(strings.TrimSpace(row.Outcome))
	row.SessionPhase = normalizeSession(row.SessionPhase)
	row.HTFZone = strings.ToLower(strings.TrimSpace(row.HTFZone))
	row.FollowedPlan = strings.ToLower(strings.TrimSpace(row.FollowedPlan))
	row.EmotionalState = string(models.NormalizeEmotion(row.EmotionalState))
	row.PatternConfirmed = string(models.NormalizePattern(row.PatternConfirmed))

	if err := defaults.Set(&row); err != nil {
		return models.TradeRecord{}, err
	}

	if err := l.validate.Struct(row); err != nil {
		return models.TradeRecord{}, validationError(err)
	}

	loggedAt, err := parseTime(row.LoggedAt)
	if err != nil {
		return models.TradeRecord{}, apperrors.NewValidationError("logged_at", row.LoggedAt, "unrecognised timestamp")
	}

	id := strings.TrimSpace(row.ID)
	if id == "" {
		id = l.newID()
	}

	return models.TradeRecord{
		ID:               id,
		LoggedAt:         loggedAt,
		Outcome:          models.Outcome(row.Outcome),
		SessionPhase:     models.SessionPhase(row.SessionPhase),
		HTFZone:          models.HTFZone(row.HTFZone),
		EmotionalState:   models.EmotionalState(row.EmotionalState),
		PatternConfirmed: models.Pattern(row.PatternConfirmed),
		DisciplineScore:  row.DisciplineScore,
		FollowedPlan:     models.PlanAdherence(row.FollowedPlan),
	}, nil
}

func normalizeSession(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(models.SessionOutside)) {
		return string(models.SessionOutside)
	}
	return strings.ToUpper(s)
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// validationError converts the first validator failure into a domain error.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !apperrors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return apperrors.NewValidationError(fe.Field(), fe.Value(), fieldMessage(fe))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
