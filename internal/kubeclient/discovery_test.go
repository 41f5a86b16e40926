package kubeclient

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"github.com/bjhaid/flink-kubernetes-operator/pkg/config"
)

const testNamespace = "test-ns"

func newScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	_ = clientgoscheme.AddToScheme(scheme)
	return scheme
}

func makeRestService(name, namespace string, selector map[string]string) *corev1.Service {
	return &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Spec: corev1.ServiceSpec{
			Selector: selector,
			Ports:    []corev1.ServicePort{{Name: "rest", Port: 8081}},
		},
	}
}

func makeJobManagerDeployment(name, namespace string, labels map[string]string, configMapNames ...string) *appsv1.Deployment {
	deploy := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    labels,
		},
		Spec: appsv1.DeploymentSpec{
			Selector: &metav1.LabelSelector{MatchLabels: labels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec:       corev1.PodSpec{},
			},
		},
	}
	for _, cmName := range configMapNames {
		deploy.Spec.Template.Spec.Volumes = append(deploy.Spec.Template.Spec.Volumes, corev1.Volume{
			Name: cmName,
			VolumeSource: corev1.VolumeSource{
				ConfigMap: &corev1.ConfigMapVolumeSource{
					LocalObjectReference: corev1.LocalObjectReference{Name: cmName},
				},
			},
		})
	}
	return deploy
}

func makeScalingConfigMap(name, namespace string, data map[string]string) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Data:       data,
	}
}

var _ = Describe("DiscoverJobScalingConfig", func() {
	var (
		ctx      context.Context
		jmLabels map[string]string
	)

	BeforeEach(func() {
		ctx = context.Background()
		jmLabels = map[string]string{"app": "stream-pipeline", "component": "jobmanager"}
	})

	Context("full chain with a mounted scaling ConfigMap", func() {
		It("should return the parsed per-job entries", func() {
			objects := []client.Object{
				makeRestService("stream-pipeline-rest", testNamespace, jmLabels),
				makeJobManagerDeployment("stream-pipeline", testNamespace, jmLabels, "job-scaling-config"),
				makeScalingConfigMap("job-scaling-config", testNamespace, map[string]string{
					"default":  "metricsWindow: 15m\ntargetUtilization: 0.6",
					"payments": "job_id: payments\nstabilizationInterval: 2m",
				}),
			}
			k8sClient := fake.NewClientBuilder().WithScheme(newScheme()).WithObjects(objects...).Build()

			result, err := DiscoverJobScalingConfig(ctx, k8sClient, testNamespace, "stream-pipeline-rest")

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Found).To(BeTrue())
			Expect(result.Configs).To(HaveKey(config.GlobalDefaultsKey))
			Expect(result.Configs).To(HaveKey("payments"))
			Expect(result.Configs.GetMetricsWindowForJob("payments")).To(Equal(15 * time.Minute))
			Expect(result.Configs.GetStabilizationIntervalForJob("payments")).To(Equal(2 * time.Minute))
		})

		It("should skip volumes of unrelated ConfigMaps", func() {
			objects := []client.Object{
				makeRestService("stream-pipeline-rest", testNamespace, jmLabels),
				makeJobManagerDeployment("stream-pipeline", testNamespace, jmLabels,
					"flink-config", "job-scaling-config"),
				makeScalingConfigMap("flink-config", testNamespace, map[string]string{
					"flink-conf.yaml": "jobmanager.memory.process.size: 1600m",
				}),
				makeScalingConfigMap("job-scaling-config", testNamespace, map[string]string{
					"default": "targetUtilization: 0.5",
				}),
			}
			k8sClient := fake.NewClientBuilder().WithScheme(newScheme()).WithObjects(objects...).Build()

			result, err := DiscoverJobScalingConfig(ctx, k8sClient, testNamespace, "stream-pipeline-rest")

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Found).To(BeTrue())
			target, _ := result.Configs.GetUtilizationTargetsForJob("any-job")
			Expect(target).To(Equal(0.5))
		})
	})

	Context("fallback scenarios (Found=false, no error)", func() {
		It("should report not found when no REST service name is given", func() {
			k8sClient := fake.NewClientBuilder().WithScheme(newScheme()).Build()
			result, err := DiscoverJobScalingConfig(ctx, k8sClient, testNamespace, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Found).To(BeFalse())
		})

		It("should report not found when the ConfigMap holds only invalid entries", func() {
			objects := []client.Object{
				makeRestService("stream-pipeline-rest", testNamespace, jmLabels),
				makeJobManagerDeployment("stream-pipeline", testNamespace, jmLabels, "job-scaling-config"),
				makeScalingConfigMap("job-scaling-config", testNamespace, map[string]string{
					"broken": "{unclosed",
				}),
			}
			k8sClient := fake.NewClientBuilder().WithScheme(newScheme()).WithObjects(objects...).Build()

			result, err := DiscoverJobScalingConfig(ctx, k8sClient, testNamespace, "stream-pipeline-rest")

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Found).To(BeFalse())
		})
	})

	Context("error scenarios", func() {
		It("should return error when the service is missing", func() {
			k8sClient := fake.NewClientBuilder().WithScheme(newScheme()).Build()
			result, err := DiscoverJobScalingConfig(ctx, k8sClient, testNamespace, "nonexistent")
			Expect(err).To(HaveOccurred())
			Expect(result.Found).To(BeFalse())
		})

		It("should return error when the service has no selector", func() {
			svc := &corev1.Service{
				ObjectMeta: metav1.ObjectMeta{Name: "stream-pipeline-rest", Namespace: testNamespace},
				Spec:       corev1.ServiceSpec{Ports: []corev1.ServicePort{{Name: "rest", Port: 8081}}},
			}
			k8sClient := fake.NewClientBuilder().WithScheme(newScheme()).WithObjects(svc).Build()
			result, err := DiscoverJobScalingConfig(ctx, k8sClient, testNamespace, "stream-pipeline-rest")
			Expect(err).To(HaveOccurred())
			Expect(result.Found).To(BeFalse())
		})

		It("should return error when no deployment matches the selector", func() {
			objects := []client.Object{
				makeRestService("stream-pipeline-rest", testNamespace, jmLabels),
			}
			k8sClient := fake.NewClientBuilder().WithScheme(newScheme()).WithObjects(objects...).Build()
			result, err := DiscoverJobScalingConfig(ctx, k8sClient, testNamespace, "stream-pipeline-rest")
			Expect(err).To(HaveOccurred())
			Expect(result.Found).To(BeFalse())
		})

		It("should return error when no scaling ConfigMap is mounted", func() {
			objects := []client.Object{
				makeRestService("stream-pipeline-rest", testNamespace, jmLabels),
				makeJobManagerDeployment("stream-pipeline", testNamespace, jmLabels),
			}
			k8sClient := fake.NewClientBuilder().WithScheme(newScheme()).WithObjects(objects...).Build()
			result, err := DiscoverJobScalingConfig(ctx, k8sClient, testNamespace, "stream-pipeline-rest")
			Expect(err).To(HaveOccurred())
			Expect(result.Found).To(BeFalse())
		})

		It("should return error when the mounted scaling ConfigMap does not exist", func() {
			objects := []client.Object{
				makeRestService("stream-pipeline-rest", testNamespace, jmLabels),
				makeJobManagerDeployment("stream-pipeline", testNamespace, jmLabels, "job-scaling-config"),
			}
			k8sClient := fake.NewClientBuilder().WithScheme(newScheme()).WithObjects(objects...).Build()
			result, err := DiscoverJobScalingConfig(ctx, k8sClient, testNamespace, "stream-pipeline-rest")
			Expect(err).To(HaveOccurred())
			Expect(result.Found).To(BeFalse())
		})
	})
})

var _ = Describe("isScalingConfigMapName", func() {
	DescribeTable("should correctly identify scaling ConfigMaps",
		func(name string, expected bool) {
			Expect(isScalingConfigMapName(name)).To(Equal(expected))
		},
		Entry("default name", "job-scaling-config", true),
		Entry("default name uppercased", "JOB-SCALING-CONFIG", true),
		Entry("cluster-prefixed name", "stream-pipeline-scaling-config", true),
		Entry("autoscaler config name", "flink-autoscaler-config", true),
		Entry("flink config", "flink-config", false),
		Entry("hadoop config", "hadoop-config", false),
		Entry("bare scaling", "scaling", false),
	)
})
