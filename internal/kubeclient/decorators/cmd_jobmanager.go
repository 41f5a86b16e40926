package decorators

import (
	"github.com/bjhaid/flink-kubernetes-operator/internal/kubeclient"
	"github.com/bjhaid/flink-kubernetes-operator/pkg/config"
)

const (
	// JobManagerEntrypointArg starts the entrypoint as a session
	// jobmanager.
	JobManagerEntrypointArg = "jobmanager"

	// ApplicationModeArg starts the entrypoint as a jobmanager running a
	// single bundled job.
	ApplicationModeArg = "standalone-job"
)

// CmdJobManagerDecorator sets the main container command of a jobmanager
// pod: the configured entrypoint script, with the argument selected by
// cluster mode.
type CmdJobManagerDecorator struct {
	params *kubeclient.JobManagerParameters
}

// NewCmdJobManagerDecorator returns a decorator reading its settings from
// params.
func NewCmdJobManagerDecorator(params *kubeclient.JobManagerParameters) *CmdJobManagerDecorator {
	return &CmdJobManagerDecorator{params: params}
}

// Decorate implements PodDecorator.
func (d *CmdJobManagerDecorator) Decorate(pod kubeclient.Pod) kubeclient.Pod {
	pod.MainContainer.Command = []string{d.params.EntryPath()}
	if d.params.ClusterMode() == config.ModeApplication {
		pod.MainContainer.Args = []string{ApplicationModeArg}
	} else {
		pod.MainContainer.Args = []string{JobManagerEntrypointArg}
	}
	return pod
}
