package kubeclient

import (
	"github.com/bjhaid/flink-kubernetes-operator/pkg/config"
)

// JobManagerParameters exposes the settings jobmanager decorators need.
type JobManagerParameters struct {
	cfg *config.Config
}

// NewJobManagerParameters returns a parameter view over cfg.
func NewJobManagerParameters(cfg *config.Config) *JobManagerParameters {
	return &JobManagerParameters{cfg: cfg}
}

// EntryPath returns the entrypoint script used as the container command.
func (p *JobManagerParameters) EntryPath() string {
	return p.cfg.Kubernetes.EntryPath
}

// ClusterMode returns the configured deployment mode.
func (p *JobManagerParameters) ClusterMode() config.ClusterMode {
	return p.cfg.Cluster.Mode
}

// TaskManagerParameters exposes the settings taskmanager decorators need.
type TaskManagerParameters struct {
	cfg *config.Config
}

// NewTaskManagerParameters returns a parameter view over cfg.
func NewTaskManagerParameters(cfg *config.Config) *TaskManagerParameters {
	return &TaskManagerParameters{cfg: cfg}
}

// EntryPath returns the entrypoint script used as the container command.
func (p *TaskManagerParameters) EntryPath() string {
	return p.cfg.Kubernetes.EntryPath
}
