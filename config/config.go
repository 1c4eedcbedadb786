// Package config loads the runtime tunables that back the engine but are
// never part of the query semantics themselves: worker counts, the reply
// graph's monotone window, Q4's search strategy, and morsel sizing.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config stores all configuration of the graphcore engine. Values are read
// by viper from an optional YAML file, then overridden by environment
// variables prefixed GRAPHCORE_.
type Config struct {
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	Q4        Q4Config        `mapstructure:"q4"`
	Diag      DiagConfig      `mapstructure:"diag"`
}

type SchedulerConfig struct {
	Workers int `mapstructure:"workers"`
}

type IngestConfig struct {
	ReplyWindow int `mapstructure:"replyWindow"`
}

type Q4Config struct {
	Levels         int    `mapstructure:"levels"`
	MorselSize     int    `mapstructure:"morselSize"`
	BatchWidth     int    `mapstructure:"batchWidth"`
	SearchStrategy string `mapstructure:"searchStrategy"` // "direct" or "expbackoff"
}

type DiagConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads configuration from configPath; when configPath is empty it
// looks for graphcore.yaml in the working directory. If the file does not
// exist, only defaults + environment apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("graphcore")
		v.SetConfigType("yaml")
	}

	v.SetDefault("scheduler.workers", runtime.NumCPU())
	v.SetDefault("ingest.replyWindow", 128)
	v.SetDefault("q4.levels", 12)
	v.SetDefault("q4.morselSize", 128)
	v.SetDefault("q4.batchWidth", 64)
	v.SetDefault("q4.searchStrategy", "direct")
	v.SetDefault("diag.path", "")

	v.SetEnvPrefix("GRAPHCORE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.Scheduler.Workers <= 0 {
		cfg.Scheduler.Workers = runtime.NumCPU()
	}
	return &cfg, nil
}
