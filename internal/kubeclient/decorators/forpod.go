package decorators

import (
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/bjhaid/flink-kubernetes-operator/internal/kubeclient"
	"github.com/bjhaid/flink-kubernetes-operator/internal/logging"
	"github.com/bjhaid/flink-kubernetes-operator/internal/utils/component"
	"github.com/bjhaid/flink-kubernetes-operator/pkg/config"
)

// ForPod returns the command decorator matching the pod's component label.
// The second return is false when the pod carries no recognized component
// label; such pods are left without command decoration.
func ForPod(pod kubeclient.Pod, cfg *config.Config) (PodDecorator, bool) {
	switch component.GetPodRole(&pod.Pod, component.DefaultRoleLabelConfig()) {
	case component.RoleJobManager:
		return NewCmdJobManagerDecorator(kubeclient.NewJobManagerParameters(cfg)), true
	case component.RoleTaskManager:
		return NewCmdTaskManagerDecorator(kubeclient.NewTaskManagerParameters(cfg)), true
	default:
		ctrl.Log.V(logging.DEBUG).Info("No command decorator for pod without component label",
			"pod", pod.Pod.Name)
		return nil, false
	}
}
