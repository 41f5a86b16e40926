// Package component provides utilities for detecting the cluster component
// role of standalone deployment resources. Detection checks pod or pod
// template labels against a label config, matching how the operator labels
// the jobmanager and taskmanager workloads it creates.
package component

// Role represents the cluster component a pod or deployment belongs to.
type Role string

const (
	// RoleJobManager indicates a jobmanager workload, the coordinating
	// process of a standalone cluster.
	RoleJobManager Role = "jobmanager"
	// RoleTaskManager indicates a taskmanager workload, a worker process
	// executing job vertices.
	RoleTaskManager Role = "taskmanager"
	// RoleUnknown indicates the component role could not be determined.
	RoleUnknown Role = "unknown"

	// DefaultComponentLabel is the well-known label key carrying the
	// component role on operator-managed pods.
	DefaultComponentLabel = "component"
)

// RoleLabelConfig describes how to detect component roles from labels. The
// LabelKey specifies which label to inspect, and the value slices define
// which label values correspond to which role.
type RoleLabelConfig struct {
	// LabelKey is the label key to check for the component role.
	LabelKey string
	// JobManagerValues are label values that indicate a jobmanager.
	JobManagerValues []string
	// TaskManagerValues are label values that indicate a taskmanager.
	TaskManagerValues []string
}

// DefaultRoleLabelConfig returns the standard component label configuration
// used by operator-managed resources.
func DefaultRoleLabelConfig() RoleLabelConfig {
	return RoleLabelConfig{
		LabelKey:          DefaultComponentLabel,
		JobManagerValues:  []string{"jobmanager"},
		TaskManagerValues: []string{"taskmanager"},
	}
}
