package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ClusterMode selects how the streaming cluster is deployed.
type ClusterMode string

const (
	// ModeSession runs a long-lived cluster that jobs are submitted to.
	ModeSession ClusterMode = "session"

	// ModeApplication runs a dedicated cluster per job.
	ModeApplication ClusterMode = "application"
)

const (
	// DefaultEntryPath is the entrypoint script of the official runtime
	// images, used as the container command of standalone pods.
	DefaultEntryPath = "/docker-entrypoint.sh"

	// DefaultTelemetryNamespace prefixes every metric the autoscaler
	// registers.
	DefaultTelemetryNamespace = "autoscaler"

	// EnvPrefix is the prefix of environment variable overrides, e.g.
	// AUTOSCALER_CLUSTER_MODE.
	EnvPrefix = "AUTOSCALER"
)

// ErrUnknownClusterMode is returned when the configured cluster mode is not
// one of the supported modes.
var ErrUnknownClusterMode = errors.New("unknown cluster mode")

// Config is the operator-wide configuration, loaded once at startup.
type Config struct {
	Cluster    ClusterConfig
	Kubernetes KubernetesConfig
	Telemetry  TelemetryConfig
	Logging    LoggingConfig
}

// ClusterConfig holds deployment-mode settings.
type ClusterConfig struct {
	Mode ClusterMode
}

// KubernetesConfig holds settings for the pods the operator assembles.
type KubernetesConfig struct {
	// EntryPath is the entrypoint script invoked as the main container
	// command.
	EntryPath string
}

// TelemetryConfig holds metric registration settings.
type TelemetryConfig struct {
	// Namespace prefixes every registered metric name.
	Namespace string
}

// LoggingConfig holds logger setup, consumed by logging.Setup.
type LoggingConfig struct {
	Level string
	Dev   bool
}

// Load reads the configuration from the YAML file at path, applies
// AUTOSCALER_* environment overrides and fills in defaults. An empty path
// skips the file and loads from environment and defaults alone.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("cluster.mode", string(ModeSession))
	v.SetDefault("kubernetes.entrypath", DefaultEntryPath)
	v.SetDefault("telemetry.namespace", DefaultTelemetryNamespace)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.dev", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Cluster: ClusterConfig{
			Mode: ClusterMode(strings.ToLower(v.GetString("cluster.mode"))),
		},
		Kubernetes: KubernetesConfig{
			EntryPath: v.GetString("kubernetes.entrypath"),
		},
		Telemetry: TelemetryConfig{
			Namespace: v.GetString("telemetry.namespace"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("logging.level"),
			Dev:   v.GetBool("logging.dev"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks for invalid configuration values.
func (c *Config) Validate() error {
	switch c.Cluster.Mode {
	case ModeSession, ModeApplication:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownClusterMode, c.Cluster.Mode)
	}
	if c.Kubernetes.EntryPath == "" {
		return fmt.Errorf("kubernetes entrypath must not be empty")
	}
	if c.Telemetry.Namespace == "" {
		return fmt.Errorf("telemetry namespace must not be empty")
	}
	return nil
}
