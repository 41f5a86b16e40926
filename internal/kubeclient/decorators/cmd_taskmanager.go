package decorators

import (
	"github.com/bjhaid/flink-kubernetes-operator/internal/kubeclient"
)

// TaskManagerEntrypointArg starts the entrypoint as a taskmanager.
const TaskManagerEntrypointArg = "taskmanager"

// CmdTaskManagerDecorator sets the main container command of a taskmanager
// pod. Taskmanagers start the same way in every cluster mode.
type CmdTaskManagerDecorator struct {
	params *kubeclient.TaskManagerParameters
}

// NewCmdTaskManagerDecorator returns a decorator reading its settings from
// params.
func NewCmdTaskManagerDecorator(params *kubeclient.TaskManagerParameters) *CmdTaskManagerDecorator {
	return &CmdTaskManagerDecorator{params: params}
}

// Decorate implements PodDecorator.
func (d *CmdTaskManagerDecorator) Decorate(pod kubeclient.Pod) kubeclient.Pod {
	pod.MainContainer.Command = []string{d.params.EntryPath()}
	pod.MainContainer.Args = []string{TaskManagerEntrypointArg}
	return pod
}
