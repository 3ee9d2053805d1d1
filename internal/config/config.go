package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from flags, files and
// environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BoardsFile    string `mapstructure:"boards_file"`
	NotifiersFile string `mapstructure:"notifiers_file"`

	StateType string `mapstructure:"state_type"`
	StatePath string `mapstructure:"state_path"`

	FetchTimeoutSeconds int64         `mapstructure:"fetch_timeout_seconds"`
	FetchTimeout        time.Duration `mapstructure:"-"`
	UserAgent           string        `mapstructure:"user_agent"`

	MonitorIntervalSeconds int64         `mapstructure:"monitor_interval"`
	MonitorInterval        time.Duration `mapstructure:"-"`

	DryRun       bool `mapstructure:"dry_run"`
	InspectItems bool `mapstructure:"inspect_items"`
	InspectLimit int  `mapstructure:"inspect_limit"`
}

// Load reads configuration from command-line flags, environment variables and
// config files. args is the raw argument list after the program name.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "board-monitor")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("boards_file", "./configs/boards.yaml")
	v.SetDefault("notifiers_file", "./configs/notifiers.yaml")
	v.SetDefault("state_type", "json")
	v.SetDefault("state_path", "./data/board_state.json")
	v.SetDefault("fetch_timeout_seconds", 15)
	v.SetDefault("user_agent", "board-monitor/0.1 (+https://github.com/samvad-hq/board-monitor)")
	v.SetDefault("monitor_interval", 0) // seconds; 0 runs a single pass
	v.SetDefault("inspect_limit", 10)

	flags := pflag.NewFlagSet("board-monitor", pflag.ContinueOnError)
	flags.String("config", "", "path to boards YAML/JSON config")
	flags.String("state", "", "path to the persisted state file")
	flags.Bool("dry-run", false, "render results and log only, do not notify")
	flags.Bool("inspect-items", false, "print extracted items for max_items verification (no state/notify update)")
	flags.Int("inspect-limit", 10, "how many extracted items to print in inspect mode")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	bindings := map[string]string{
		"boards_file":   "config",
		"state_path":    "state",
		"dry_run":       "dry-run",
		"inspect_items": "inspect-items",
		"inspect_limit": "inspect-limit",
	}
	for key, flagName := range bindings {
		f := flags.Lookup(flagName)
		if f == nil {
			continue
		}
		if f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", flagName, err)
			}
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.FetchTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid fetch_timeout_seconds (must be positive seconds)")
	}
	cfg.FetchTimeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second

	if cfg.MonitorIntervalSeconds < 0 {
		return nil, fmt.Errorf("invalid monitor_interval (must be zero or positive seconds)")
	}
	cfg.MonitorInterval = time.Duration(cfg.MonitorIntervalSeconds) * time.Second

	if cfg.InspectLimit <= 0 {
		cfg.InspectLimit = 10
	}

	return &cfg, nil
}
