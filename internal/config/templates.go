package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# seqtrader configuration

[log]
# Level: debug, info, warn, error
level = "info"
# Write human-readable logs to stderr
console = true
# Also write JSON logs to a rotating file
file = false
# Defaults to <config dir>/logs/seqtrader.log
file_path = ""
max_size = 100
max_backups = 7
max_age = 30

[insights]
# Minimum settled (non-pending) trades before any insight is shown
min_settled = 3
# Minimum settled trades in a bucket before it can produce an insight
min_bucket = 2
# Win rate at or above which a bucket is called out as a strength
positive_rate = 0.70
# Win rate at or below which a session or zone is flagged
caution_rate = 0.40
# Stricter flag for emotional states
emotion_caution_rate = 0.35
# Average discipline score (1-5) bands
strong_discipline = 4.0
weak_discipline = 2.5
# Win rate when following the plan that earns a callout
plan_positive_rate = 0.70
# Emotional states never flagged as a problem
desirable_states = ["calm", "focused"]

[journal]
# Trade log used when no file is given (.csv, .json, .yaml)
path = ""

[ui]
# Enable colored output
color_enabled = true
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
