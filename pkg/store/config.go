package store

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config exposes the settings read from .petsit.yaml and PETSIT_* env vars.
type Config interface {
	BasePath() string
	View() string
	PageSize() int
	LogFile() string
	LogLevel() string
	Location() *time.Location
}

// LoadConfig reads configuration from the working directory, from
// $PETSIT_CONFIG_PATH and from the environment.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.petsit.db")
	v.SetDefault("view", "list")
	v.SetDefault("page_size", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("timezone", "Local")
	v.SetConfigName(".petsit") // .yaml is implicit
	v.SetEnvPrefix("PETSIT")
	v.AutomaticEnv()

	if override := os.Getenv("PETSIT_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	logFile := v.GetString("log.file")
	if logFile != "" {
		if logFile, err = homedir.Expand(logFile); err != nil {
			return nil, fmt.Errorf("store: expand log file: %w", err)
		}
	}
	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("store: timezone: %w", err)
	}

	return &fileConfig{
		Path:     path,
		ViewMode: v.GetString("view"),
		Size:     v.GetInt("page_size"),
		Log:      logFile,
		Level:    v.GetString("log.level"),
		loc:      loc,
		Used:     v.ConfigFileUsed(),
	}, nil
}

type fileConfig struct {
	Path     string `json:"path"`
	ViewMode string `json:"view"`
	Size     int    `json:"page_size"`
	Log      string `json:"log_file,omitempty"`
	Level    string `json:"log_level"`
	Used     string `json:"config_file,omitempty"`
	loc      *time.Location
}

func (f *fileConfig) BasePath() string { return f.Path }

func (f *fileConfig) View() string { return f.ViewMode }

func (f *fileConfig) PageSize() int { return f.Size }

func (f *fileConfig) LogFile() string { return f.Log }

func (f *fileConfig) LogLevel() string { return f.Level }

func (f *fileConfig) Location() *time.Location { return f.loc }

// ConfigFile returns the config file viper read, or "" when none was found.
func ConfigFile(cfg Config) string {
	if fc, ok := cfg.(*fileConfig); ok {
		return fc.Used
	}
	return ""
}
