package component

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
)

// GetDeploymentRole determines the component role of a deployment by
// checking its pod template labels against the provided labelConfig.
//
// This is label-only detection: the operator stamps the component label on
// every workload it creates, and names are free-form, so names are never
// consulted. Returns RoleUnknown if the deployment has no matching label.
func GetDeploymentRole(deploy *appsv1.Deployment, labelConfig RoleLabelConfig) Role {
	if deploy == nil {
		return RoleUnknown
	}
	return detectFromLabels(deploy.Spec.Template.Labels, labelConfig)
}

// GetPodRole determines the component role of a pod from its labels.
// Returns RoleUnknown if the pod has no matching label.
func GetPodRole(pod *corev1.Pod, labelConfig RoleLabelConfig) Role {
	if pod == nil {
		return RoleUnknown
	}
	return detectFromLabels(pod.Labels, labelConfig)
}

// detectFromLabels checks a label set against the label config.
func detectFromLabels(labels map[string]string, config RoleLabelConfig) Role {
	if config.LabelKey == "" {
		return RoleUnknown
	}
	if labels == nil {
		return RoleUnknown
	}

	value, exists := labels[config.LabelKey]
	if !exists {
		return RoleUnknown
	}

	return matchLabelValue(value, config)
}

// matchLabelValue matches a label value against the config's role value
// lists.
func matchLabelValue(value string, config RoleLabelConfig) Role {
	for _, v := range config.JobManagerValues {
		if value == v {
			return RoleJobManager
		}
	}
	for _, v := range config.TaskManagerValues {
		if value == v {
			return RoleTaskManager
		}
	}
	return RoleUnknown
}
