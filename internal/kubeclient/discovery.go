package kubeclient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/bjhaid/flink-kubernetes-operator/internal/logging"
	"github.com/bjhaid/flink-kubernetes-operator/pkg/config"
)

var (
	errNoServiceSelector = errors.New("service has no selector")
	errNoDeploymentFound = errors.New("no deployment matches the service selector")
	errNoConfigMapFound  = errors.New("no scaling ConfigMap mounted in the deployment")
)

// JobScalingDiscovery is the result of discovering per-job scaling
// configuration from a running cluster.
type JobScalingDiscovery struct {
	// Configs holds the parsed scaling configuration, keyed by job ID.
	Configs config.JobScalingConfigData

	// Found reports whether a scaling ConfigMap with at least one valid
	// entry was located. When false, callers fall back to the built-in
	// defaults.
	Found bool
}

// DiscoverJobScalingConfig locates the per-job scaling configuration of a
// cluster by inspecting the jobmanager deployment behind its REST service.
//
// Discovery chain:
//  1. Look up the REST service and read its selector
//  2. Find the jobmanager deployment via selector matching
//  3. Find the scaling ConfigMap among the deployment's volumes
//  4. Parse the ConfigMap data as per-job scaling entries
//
// Returns an error when the chain hits a Kubernetes API failure or the
// deployment mounts no scaling ConfigMap. An empty restServiceName is a
// non-error condition and reports Found=false.
func DiscoverJobScalingConfig(
	ctx context.Context,
	k8sClient client.Client,
	namespace, restServiceName string,
) (JobScalingDiscovery, error) {
	logger := ctrl.LoggerFrom(ctx)

	notFound := JobScalingDiscovery{Found: false}

	if restServiceName == "" {
		logger.V(logging.DEBUG).Info("No REST service provided, job scaling config not discovered")
		return notFound, nil
	}

	// Step 1: Find the jobmanager deployment from the REST service
	deploy, err := findJobManagerDeployment(ctx, k8sClient, namespace, restServiceName)
	if err != nil {
		return notFound, fmt.Errorf("finding jobmanager deployment for service %s/%s: %w",
			namespace, restServiceName, err)
	}

	// Step 2: Find the scaling ConfigMap from the deployment volumes
	data, err := findScalingConfigData(ctx, k8sClient, deploy)
	if err != nil {
		return notFound, fmt.Errorf("finding scaling config from deployment %s/%s: %w",
			deploy.Namespace, deploy.Name, err)
	}

	// Step 3: Parse the per-job entries
	configs := config.ParseJobScalingConfigMap(data)
	if len(configs) == 0 {
		logger.V(logging.DEBUG).Info("Scaling ConfigMap holds no valid entries",
			"deployment", deploy.Name,
			"namespace", deploy.Namespace)
		return notFound, nil
	}

	logger.V(logging.DEBUG).Info("Discovered job scaling config",
		"deployment", deploy.Name,
		"namespace", deploy.Namespace,
		"entries", len(configs))
	return JobScalingDiscovery{Configs: configs, Found: true}, nil
}

// findJobManagerDeployment finds the jobmanager deployment by looking up the
// REST service and matching deployments by the service's selector labels.
func findJobManagerDeployment(ctx context.Context, k8sClient client.Client, namespace, serviceName string) (*appsv1.Deployment, error) {
	svc := &corev1.Service{}
	if err := k8sClient.Get(ctx, client.ObjectKey{Namespace: namespace, Name: serviceName}, svc); err != nil {
		return nil, err
	}

	if len(svc.Spec.Selector) == 0 {
		return nil, errNoServiceSelector
	}

	deployList := &appsv1.DeploymentList{}
	if err := k8sClient.List(ctx, deployList,
		client.InNamespace(namespace),
		client.MatchingLabels(svc.Spec.Selector),
	); err != nil {
		return nil, err
	}

	if len(deployList.Items) == 0 {
		return nil, errNoDeploymentFound
	}

	return &deployList.Items[0], nil
}

// findScalingConfigData returns the data of the first scaling ConfigMap
// mounted as a volume in the deployment.
func findScalingConfigData(ctx context.Context, k8sClient client.Client, deploy *appsv1.Deployment) (map[string]string, error) {
	for _, vol := range deploy.Spec.Template.Spec.Volumes {
		if vol.ConfigMap == nil || !isScalingConfigMapName(vol.ConfigMap.Name) {
			continue
		}

		cm := &corev1.ConfigMap{}
		if err := k8sClient.Get(ctx, client.ObjectKey{
			Namespace: deploy.Namespace,
			Name:      vol.ConfigMap.Name,
		}, cm); err != nil {
			continue // Try next volume
		}

		return cm.Data, nil
	}

	return nil, errNoConfigMapFound
}

// isScalingConfigMapName checks if a ConfigMap name likely holds per-job
// scaling configuration.
func isScalingConfigMapName(name string) bool {
	lower := strings.ToLower(name)
	return lower == config.DefaultJobScalingConfigMapName ||
		strings.HasSuffix(lower, "-scaling-config") ||
		strings.Contains(lower, "autoscaler-config")
}
