// Package config provides configuration management for the autoscaler.
//
// Two surfaces live here:
//
//   - Operator configuration (Config): process-wide settings loaded once at
//     startup from an optional YAML file with environment overrides.
//     Covers the cluster deployment mode, the container entry path used
//     when assembling standalone pods, the telemetry namespace and the
//     logging setup.
//   - Per-job scaling configuration (JobScalingConfigData): tuning knobs of
//     the scaling decision engine, read from a ConfigMap whose entries are
//     YAML documents. A "default" entry sets global defaults; other entries
//     override them for a single job selected by its job_id field.
//
// Configuration sources, in priority order:
//
//  1. Environment variables (AUTOSCALER_ prefix, dots become underscores)
//  2. YAML config file
//  3. Default values
//
// Example usage:
//
//	cfg, err := config.Load(os.Getenv("AUTOSCALER_CONFIG"))
//	if err != nil {
//	    setupLog.Error(err, "unable to load configuration")
//	    os.Exit(1)
//	}
//	logging.Setup(cfg.Logging.Level, cfg.Logging.Dev)
//
//	scaling := config.ParseJobScalingConfigMap(configMap.Data)
//	window := scaling.GetMetricsWindowForJob("a1b2c3")
//
// All values are validated at load time: the cluster mode must be a known
// mode, numeric ranges are enforced and duration strings must parse.
// Invalid ConfigMap entries are skipped with a log line rather than
// failing the load, so one bad override cannot take down scaling for every
// job.
package config
