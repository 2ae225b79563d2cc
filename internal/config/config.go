package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration. Everything is static at
// startup; the scan loop never re-reads it.
type Config struct {
	Monitoring    MonitoringConfig   `mapstructure:"monitoring"`
	Classifier    ClassifierConfig   `mapstructure:"classifier"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	History       HistoryConfig      `mapstructure:"history"`
	API           APIConfig          `mapstructure:"api"`
}

type MonitoringConfig struct {
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	CPUThreshold    float64       `mapstructure:"cpu_threshold"`
	DurationSeconds float64       `mapstructure:"duration_seconds"`
	TopN            int           `mapstructure:"top_n"`
}

type ClassifierConfig struct {
	Keywords []string `mapstructure:"keywords"`
}

type NotificationConfig struct {
	AlertCSV     string `mapstructure:"alert_csv"`
	LogFile      string `mapstructure:"log_file"`
	Verbose      bool   `mapstructure:"verbose"`
	ColorEnabled bool   `mapstructure:"color_enabled"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

type APIConfig struct {
	Listen string `mapstructure:"listen"`
}

func setDefaults() {
	viper.SetDefault("monitoring.poll_interval", "2s")
	viper.SetDefault("monitoring.cpu_threshold", 20.0)
	viper.SetDefault("monitoring.duration_seconds", 10.0)
	viper.SetDefault("monitoring.top_n", 30)

	viper.SetDefault("classifier.keywords", []string{
		"update", "updater", "helper", "telemetry", "tracker",
		"installer", "toolbar", "assistant", "scheduler", "maintenance",
	})

	viper.SetDefault("notifications.alert_csv", "roast-alerts.csv")
	viper.SetDefault("notifications.log_file", "procroast.log")
	viper.SetDefault("notifications.verbose", false)
	viper.SetDefault("notifications.color_enabled", true)

	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.db_path", "procroast.db")

	viper.SetDefault("api.listen", ":8077")
}

// Load reads configuration from file, environment, and defaults.
func Load(configPath string) (*Config, error) {
	setDefaults()

	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("PROCROAST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		// Search in current dir, home dir, /etc
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".procroast"))
		}
		viper.AddConfigPath("/etc/procroast")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK — we use defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects fatal misconfiguration before the scan loop starts.
func (c *Config) Validate() error {
	m := c.Monitoring
	if m.CPUThreshold <= 0 || m.CPUThreshold > 100 {
		return fmt.Errorf("cpu_threshold must be in (0, 100], got %.1f", m.CPUThreshold)
	}
	if m.DurationSeconds <= 0 {
		return fmt.Errorf("duration_seconds must be positive, got %.1f", m.DurationSeconds)
	}
	if m.PollInterval < 100*time.Millisecond {
		return fmt.Errorf("poll_interval must be at least 100ms, got %s", m.PollInterval)
	}
	if m.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", m.TopN)
	}
	return nil
}

// Global holds the current loaded configuration.
var Global *Config
