package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/tempo/pkg/timegrid"
)

// DefaultSaveDebounce is how long board edits settle before being written.
const DefaultSaveDebounce = 750 * time.Millisecond

// Config locates the data directory.
type Config interface {
	BasePath() string
}

// Settings is the resolved configuration.
type Settings struct {
	Path         string        `json:"path"`
	SaveDebounce time.Duration `json:"saveDebounce"`
	WeekStartsOn time.Weekday  `json:"weekStartsOn"`
	LogLevel     string        `json:"logLevel"`
	LogFormat    string        `json:"logFormat"`
	LogFile      string        `json:"logFile"`
}

// BasePath implements Config.
func (s *Settings) BasePath() string {
	return s.Path
}

// LoadConfig reads .tempo.yaml from $TEMPO_CONFIG_PATH or the working
// directory, overlaid with TEMPO_* environment variables.
func LoadConfig() (*Settings, error) {
	v := viper.New()
	v.SetDefault("path", "~/.tempo.db")
	v.SetDefault("save_debounce", DefaultSaveDebounce)
	v.SetDefault("week_starts_on", "monday")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetConfigName(".tempo") // .yaml is implicit
	v.SetEnvPrefix("TEMPO")
	v.AutomaticEnv()

	if override := os.Getenv("TEMPO_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	weekday, err := timegrid.ParseWeekday(v.GetString("week_starts_on"))
	if err != nil {
		return nil, err
	}
	debounce := v.GetDuration("save_debounce")
	if debounce <= 0 {
		debounce = DefaultSaveDebounce
	}
	logFile := v.GetString("log.file")
	if logFile == "" {
		logFile = filepath.Join(path, "tempo.log")
	}
	logFile, err = homedir.Expand(logFile)
	if err != nil {
		return nil, fmt.Errorf("store: expand log file: %w", err)
	}

	return &Settings{
		Path:         path,
		SaveDebounce: debounce,
		WeekStartsOn: weekday,
		LogLevel:     v.GetString("log.level"),
		LogFormat:    v.GetString("log.format"),
		LogFile:      logFile,
	}, nil
}
