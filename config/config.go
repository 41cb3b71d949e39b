package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/miosa/tunes/ui/window"
)

// Config holds persistent settings stored at <profileDir>/tunes.toml.
type Config struct {
	Theme      string `toml:"theme,omitempty"`
	LibraryDir string `toml:"library_dir,omitempty"`
	ServerURL  string `toml:"server_url,omitempty"`
	Token      string `toml:"token,omitempty"`
	LogLevel   string `toml:"log_level,omitempty"`
	Lists      Lists  `toml:"lists"`
}

// Lists tunes the windowing of each list.
type Lists struct {
	Albums  ListTuning `toml:"albums"`
	Tracks  ListTuning `toml:"tracks"`
	Liked   ListTuning `toml:"liked"`
	Gallery ListTuning `toml:"gallery"`
}

// ListTuning is the on-disk form of window.Config. Zero fields keep the
// built-in value, except the row buffers where zero is a real setting and
// only an absent key keeps the default.
type ListTuning struct {
	Threshold      int      `toml:"threshold,omitempty"`
	OverscanRows   *int     `toml:"overscan_rows,omitempty"`
	RetentionRows  *int     `toml:"retention_rows,omitempty"`
	InitialWindow  int      `toml:"initial_window,omitempty"`
	MinWindow      int      `toml:"min_window,omitempty"`
	MinRowHeight   int      `toml:"min_row_height,omitempty"`
	ResetWindow    Duration `toml:"reset_window,omitempty"`
	ResetThreshold int      `toml:"reset_threshold,omitempty"`
}

// WindowConfig overlays t on the window defaults.
func (t ListTuning) WindowConfig() window.Config {
	cfg := window.DefaultConfig()
	set := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	set(&cfg.Threshold, t.Threshold)
	if t.OverscanRows != nil {
		cfg.OverscanRows = max(*t.OverscanRows, 0)
	}
	if t.RetentionRows != nil {
		cfg.RetentionRows = max(*t.RetentionRows, 0)
	}
	set(&cfg.InitialWindow, t.InitialWindow)
	set(&cfg.MinWindow, t.MinWindow)
	set(&cfg.MinRowHeight, t.MinRowHeight)
	set(&cfg.ResetThreshold, t.ResetThreshold)
	if t.ResetWindow > 0 {
		cfg.ResetWindow = time.Duration(t.ResetWindow)
	}
	cfg.DefaultRowHeight = max(cfg.DefaultRowHeight, cfg.MinRowHeight)
	return cfg
}

// Duration is a time.Duration written as "5s" in the settings file.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("duration %q: %w", b, err)
	}
	*d = Duration(v)
	return nil
}

const filename = "tunes.toml"

// Path returns the settings file inside profileDir.
func Path(profileDir string) string { return filepath.Join(profileDir, filename) }

// Load reads <profileDir>/tunes.toml and returns the parsed Config.
// If the file is absent or unreadable, a default Config is returned.
func Load(profileDir string) Config {
	cfg := Defaults()
	data, err := os.ReadFile(Path(profileDir))
	if err != nil {
		return cfg
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Defaults()
	}
	return cfg
}

// Save writes cfg to <profileDir>/tunes.toml, creating the directory if needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	if err := os.WriteFile(Path(profileDir), data, 0o644); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Defaults returns the settings used without a file. Grid lists keep a
// smaller overscan since each row holds several tiles.
// An empty theme means "follow the terminal background".
func Defaults() Config {
	grid := func() ListTuning {
		return ListTuning{
			Threshold:     120,
			OverscanRows:  Rows(2),
			RetentionRows: Rows(1),
			InitialWindow: 48,
			MinWindow:     24,
			MinRowHeight:  3,
		}
	}
	flat := func() ListTuning {
		return ListTuning{
			Threshold:     120,
			OverscanRows:  Rows(8),
			RetentionRows: Rows(4),
			InitialWindow: 60,
			MinWindow:     40,
			MinRowHeight:  1,
		}
	}
	return Config{
		LogLevel: "info",
		Lists: Lists{
			Albums:  grid(),
			Tracks:  flat(),
			Liked:   flat(),
			Gallery: grid(),
		},
	}
}

// Rows returns a row count for the optional ListTuning fields.
func Rows(n int) *int { return &n }
