package store

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config tells persistence where to keep its files.
type Config interface {
	BasePath() string
}

// Defaults for keys that are not set in the config file or environment.
const (
	DefaultPath    = "~/.roadmap.db"
	DefaultRoadmap = "Roadmap"
)

// FileConfig is the resolved .roadmap.yaml plus ROADMAP_* overrides.
type FileConfig struct {
	Path        string `json:"path"`
	Roadmap     string `json:"roadmap"`
	Year        int    `json:"year"`
	SortByStart bool   `json:"sortByStart"`
	LogLevel    string `json:"logLevel"`
	LogFile     string `json:"logFile"`
}

func (f *FileConfig) BasePath() string {
	return f.Path
}

// LoadConfig walks the usual places for a .roadmap.yaml and resolves the
// settings. A missing file is not an error.
func LoadConfig() (*FileConfig, error) {
	viper.SetDefault("path", DefaultPath)
	viper.SetDefault("roadmap", DefaultRoadmap)
	viper.SetDefault("year", time.Now().Year())
	viper.SetDefault("layout.sort_by_start", false)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
	viper.SetConfigName(".roadmap") // .yaml is implicit
	viper.SetEnvPrefix("ROADMAP")
	viper.AutomaticEnv()

	if override := os.Getenv("ROADMAP_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expanding path: %w", err)
	}
	logFile := viper.GetString("log.file")
	if logFile != "" {
		if logFile, err = homedir.Expand(logFile); err != nil {
			return nil, fmt.Errorf("store: expanding log file: %w", err)
		}
	}

	return &FileConfig{
		Path:        path,
		Roadmap:     viper.GetString("roadmap"),
		Year:        viper.GetInt("year"),
		SortByStart: viper.GetBool("layout.sort_by_start"),
		LogLevel:    viper.GetString("log.level"),
		LogFile:     logFile,
	}, nil
}
