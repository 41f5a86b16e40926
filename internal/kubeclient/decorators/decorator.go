// Package decorators assembles standalone cluster pods step by step. Each
// decorator augments one aspect of a pod specification; a chain of
// decorators produces the final pod.
package decorators

import (
	"github.com/bjhaid/flink-kubernetes-operator/internal/kubeclient"
)

// PodDecorator transforms a pod specification.
type PodDecorator interface {
	// Decorate returns a copy of pod with this decorator's aspect applied.
	Decorate(pod kubeclient.Pod) kubeclient.Pod
}
