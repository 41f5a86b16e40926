// Package kubeclient holds the pod model the operator assembles for
// standalone clusters, plus the parameter views decorators read their
// settings from.
package kubeclient

import (
	corev1 "k8s.io/api/core/v1"
)

// Pod pairs a pod specification with its main container, the container
// running the cluster component. Decorators receive a Pod by value, adjust
// the fields of their aspect and return the result, leaving the input
// untouched.
type Pod struct {
	Pod           corev1.Pod
	MainContainer corev1.Container
}
