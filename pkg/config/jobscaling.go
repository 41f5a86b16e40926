package config

import (
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/bjhaid/flink-kubernetes-operator/internal/logging"
)

const (
	// DefaultJobScalingConfigMapName is the default name of the ConfigMap
	// that stores per-job scaling configuration.
	DefaultJobScalingConfigMapName = "job-scaling-config"

	// GlobalDefaultsKey is the ConfigMap entry holding defaults for all
	// jobs.
	GlobalDefaultsKey = "default"
)

// Fallback tuning values, applied when neither a job override nor the
// global defaults set a knob.
const (
	DefaultMetricsWindow         = 10 * time.Minute
	DefaultStabilizationInterval = 5 * time.Minute
	DefaultCatchUpDuration       = 15 * time.Minute
	DefaultRestartTime           = 5 * time.Minute
	DefaultScaleUpGracePeriod    = time.Hour
	DefaultTargetUtilization     = 0.7
	DefaultUtilizationBoundary   = 0.3
)

// JobScalingConfig represents the scaling configuration for a single job.
type JobScalingConfig struct {
	// JobID is the job identifier (only used in override entries).
	JobID string `yaml:"job_id,omitempty" json:"job_id,omitempty"`

	// Namespace is the namespace for this override (only used in override
	// entries).
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty"`

	// Enabled turns autoscaling for the job on or off. Use pointer to
	// allow omitting this field and inheriting from global defaults; a job
	// with no setting anywhere is autoscaled.
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`

	// MetricsWindow is the duration metrics are aggregated over before a
	// scaling evaluation, as a duration string (e.g. "10m").
	MetricsWindow string `yaml:"metricsWindow,omitempty" json:"metricsWindow,omitempty"`

	// StabilizationInterval is the minimum time between two scaling
	// operations of the same job.
	StabilizationInterval string `yaml:"stabilizationInterval,omitempty" json:"stabilizationInterval,omitempty"`

	// TargetUtilization is the utilization the evaluator aims each vertex
	// at (0.0-1.0).
	TargetUtilization float64 `yaml:"targetUtilization,omitempty" json:"targetUtilization,omitempty"`

	// UtilizationBoundary is the tolerated deviation around the target
	// before a rescale is considered.
	UtilizationBoundary float64 `yaml:"utilizationBoundary,omitempty" json:"utilizationBoundary,omitempty"`

	// ScaleUpGracePeriod is how long a vertex is protected from scale-down
	// after it was scaled up.
	ScaleUpGracePeriod string `yaml:"scaleUpGracePeriod,omitempty" json:"scaleUpGracePeriod,omitempty"`

	// CatchUpDuration is the time budget for working off backlog after a
	// rescale.
	CatchUpDuration string `yaml:"catchUpDuration,omitempty" json:"catchUpDuration,omitempty"`

	// RestartTime is the expected downtime of a rescale, budgeted into the
	// catch-up rate.
	RestartTime string `yaml:"restartTime,omitempty" json:"restartTime,omitempty"`
}

// JobScalingConfigData holds pre-read scaling configuration for all jobs.
// Maps job ID to its configuration; GlobalDefaultsKey maps the defaults.
type JobScalingConfigData map[string]JobScalingConfig

// Validate checks for invalid configuration values.
func (c *JobScalingConfig) Validate() error {
	if c.TargetUtilization < 0 || c.TargetUtilization > 1 {
		return fmt.Errorf("targetUtilization must be between 0 and 1, got %.2f", c.TargetUtilization)
	}
	if c.UtilizationBoundary < 0 {
		return fmt.Errorf("utilizationBoundary must be >= 0, got %.2f", c.UtilizationBoundary)
	}
	if c.TargetUtilization != 0 && c.TargetUtilization+c.UtilizationBoundary > 1 {
		return fmt.Errorf("targetUtilization (%.2f) plus utilizationBoundary (%.2f) must not exceed 1",
			c.TargetUtilization, c.UtilizationBoundary)
	}
	for name, value := range map[string]string{
		"metricsWindow":         c.MetricsWindow,
		"stabilizationInterval": c.StabilizationInterval,
		"scaleUpGracePeriod":    c.ScaleUpGracePeriod,
		"catchUpDuration":       c.CatchUpDuration,
		"restartTime":           c.RestartTime,
	} {
		if value == "" {
			continue
		}
		if _, err := parseDuration(name, value); err != nil {
			return err
		}
	}
	return nil
}

// ParseJobScalingConfigMap parses scaling configuration from a ConfigMap's
// data. The ConfigMap format:
//   - "default": global defaults for all jobs
//   - "<override-name>": per-job configuration with job_id field
func ParseJobScalingConfigMap(data map[string]string) JobScalingConfigData {
	if data == nil {
		return make(JobScalingConfigData)
	}

	out := make(JobScalingConfigData)
	jobIDToKeys := make(map[string][]string)

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		configStr := data[key]

		var config JobScalingConfig
		if err := yaml.Unmarshal([]byte(configStr), &config); err != nil {
			ctrl.Log.Info("Failed to parse job scaling config entry, skipping",
				"key", key,
				"error", err)
			continue
		}

		if err := config.Validate(); err != nil {
			ctrl.Log.Info("Invalid job scaling config entry, skipping",
				"key", key,
				"error", err)
			continue
		}

		if key == GlobalDefaultsKey {
			out[GlobalDefaultsKey] = config
			continue
		}

		if config.JobID == "" {
			ctrl.Log.Info("Skipping job scaling config without job_id field",
				"key", key)
			continue
		}

		if existingKeys, exists := jobIDToKeys[config.JobID]; exists {
			ctrl.Log.Info("Duplicate job_id found in job-scaling ConfigMap - first key wins",
				"job_id", config.JobID,
				"winningKey", existingKeys[0],
				"duplicateKey", key)
			continue
		}
		jobIDToKeys[config.JobID] = append(jobIDToKeys[config.JobID], key)

		out[config.JobID] = config
	}

	ctrl.Log.V(logging.DEBUG).Info("Parsed job scaling config",
		"jobCount", len(out))

	return out
}

// GetJobConfig returns the effective configuration for a specific job. It
// merges the job-specific config with global defaults.
func (data JobScalingConfigData) GetJobConfig(jobID string) JobScalingConfig {
	defaults := data[GlobalDefaultsKey]
	jobConfig, hasJob := data[jobID]

	if !hasJob {
		return defaults
	}

	// Merge: job-specific values override defaults.
	result := defaults

	if jobConfig.JobID != "" {
		result.JobID = jobConfig.JobID
	}
	if jobConfig.Namespace != "" {
		result.Namespace = jobConfig.Namespace
	}
	if jobConfig.Enabled != nil {
		result.Enabled = jobConfig.Enabled
	}
	if jobConfig.MetricsWindow != "" {
		result.MetricsWindow = jobConfig.MetricsWindow
	}
	if jobConfig.StabilizationInterval != "" {
		result.StabilizationInterval = jobConfig.StabilizationInterval
	}
	if jobConfig.TargetUtilization != 0 {
		result.TargetUtilization = jobConfig.TargetUtilization
	}
	if jobConfig.UtilizationBoundary != 0 {
		result.UtilizationBoundary = jobConfig.UtilizationBoundary
	}
	if jobConfig.ScaleUpGracePeriod != "" {
		result.ScaleUpGracePeriod = jobConfig.ScaleUpGracePeriod
	}
	if jobConfig.CatchUpDuration != "" {
		result.CatchUpDuration = jobConfig.CatchUpDuration
	}
	if jobConfig.RestartTime != "" {
		result.RestartTime = jobConfig.RestartTime
	}

	return result
}

// IsEnabledForJob determines if autoscaling is enabled for a specific job.
// Jobs are autoscaled unless explicitly disabled.
func (data JobScalingConfigData) IsEnabledForJob(jobID string) bool {
	config := data.GetJobConfig(jobID)
	if config.Enabled != nil {
		return *config.Enabled
	}
	return true
}

// GetMetricsWindowForJob returns the metrics aggregation window for a job.
func (data JobScalingConfigData) GetMetricsWindowForJob(jobID string) time.Duration {
	return durationOrDefault(data.GetJobConfig(jobID).MetricsWindow, DefaultMetricsWindow)
}

// GetStabilizationIntervalForJob returns the minimum interval between
// scalings of a job.
func (data JobScalingConfigData) GetStabilizationIntervalForJob(jobID string) time.Duration {
	return durationOrDefault(data.GetJobConfig(jobID).StabilizationInterval, DefaultStabilizationInterval)
}

// GetCatchUpDurationForJob returns the backlog catch-up budget for a job.
func (data JobScalingConfigData) GetCatchUpDurationForJob(jobID string) time.Duration {
	return durationOrDefault(data.GetJobConfig(jobID).CatchUpDuration, DefaultCatchUpDuration)
}

// GetRestartTimeForJob returns the expected rescale downtime for a job.
func (data JobScalingConfigData) GetRestartTimeForJob(jobID string) time.Duration {
	return durationOrDefault(data.GetJobConfig(jobID).RestartTime, DefaultRestartTime)
}

// GetScaleUpGracePeriodForJob returns the scale-down protection window for
// a job.
func (data JobScalingConfigData) GetScaleUpGracePeriodForJob(jobID string) time.Duration {
	return durationOrDefault(data.GetJobConfig(jobID).ScaleUpGracePeriod, DefaultScaleUpGracePeriod)
}

// GetUtilizationTargetsForJob returns the utilization target and boundary
// for a job.
func (data JobScalingConfigData) GetUtilizationTargetsForJob(jobID string) (target, boundary float64) {
	config := data.GetJobConfig(jobID)
	target = config.TargetUtilization
	if target == 0 {
		target = DefaultTargetUtilization
	}
	boundary = config.UtilizationBoundary
	if boundary == 0 {
		boundary = DefaultUtilizationBoundary
	}
	return target, boundary
}

func parseDuration(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, d)
	}
	return d, nil
}

func durationOrDefault(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
