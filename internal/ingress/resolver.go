// Package ingress resolves the externally reachable IP of the OpenStack
// ingress load balancer.
package ingress

import (
	"context"
	"errors"
	"fmt"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	_ "k8s.io/client-go/plugin/pkg/client/auth" // Important for various auth providers
	"k8s.io/client-go/tools/clientcmd"

	"osctl/internal/kube"
	"osctl/pkg/logging"
)

const logSubsystem = "Ingress"

// DefaultService is the ingress service name in the control plane namespace.
const DefaultService = "ingress"

// jsonPathIngressIP is the projection used on the kubectl fallback path.
const jsonPathIngressIP = "{.status.loadBalancer.ingress[0].ip}"

// ErrNoIngressIP reports that the service exists but carries no load-balancer
// IP yet.
var ErrNoIngressIP = errors.New("ingress service has no load balancer IP")

// NewClientsetForKubeconfig builds a clientset from a kubeconfig file.
// Package-level variable, exported for overriding in tests.
var NewClientsetForKubeconfig = func(kubeconfigPath string) (kubernetes.Interface, error) {
	restConfig, err := clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build REST config from %s: %w", kubeconfigPath, err)
	}
	return kubernetes.NewForConfig(restConfig)
}

// Resolver reads the load-balancer IP of the ingress service, preferring the
// Kubernetes API and degrading to a kubectl jsonpath query when no API client
// can be built.
type Resolver struct {
	Kubeconfig string
	Namespace  string
	Service    string

	// Exec is the fallback path; may be nil, in which case a client build
	// failure is terminal.
	Exec kube.Executor
}

// NewResolver returns a Resolver for the given kubeconfig and namespace.
func NewResolver(kubeconfigPath, namespace string, exec kube.Executor) *Resolver {
	return &Resolver{
		Kubeconfig: kubeconfigPath,
		Namespace:  namespace,
		Service:    DefaultService,
		Exec:       exec,
	}
}

// Resolve returns the trimmed ingress IP.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	if err := kube.CheckKubeconfig(r.Kubeconfig); err != nil {
		return "", err
	}

	clientset, err := NewClientsetForKubeconfig(r.Kubeconfig)
	if err != nil {
		if r.Exec == nil {
			return "", fmt.Errorf("failed to create Kubernetes client: %w", err)
		}
		logging.Warn(logSubsystem, "Falling back to kubectl for ingress lookup: %v", err)
		return r.resolveWithKubectl(ctx)
	}

	svc, err := clientset.CoreV1().Services(r.Namespace).Get(ctx, r.Service, metav1.GetOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get service %s/%s: %w", r.Namespace, r.Service, err)
	}

	for _, ing := range svc.Status.LoadBalancer.Ingress {
		if ing.IP != "" {
			return ing.IP, nil
		}
	}
	return "", fmt.Errorf("service %s/%s: %w", r.Namespace, r.Service, ErrNoIngressIP)
}

func (r *Resolver) resolveWithKubectl(ctx context.Context) (string, error) {
	out, err := r.Exec.ServiceJSONPath(ctx, r.Namespace, r.Service, jsonPathIngressIP)
	if err != nil {
		return "", fmt.Errorf("failed to query ingress IP via kubectl: %w", err)
	}
	ip := strings.TrimSpace(out)
	if ip == "" {
		return "", fmt.Errorf("service %s/%s: %w", r.Namespace, r.Service, ErrNoIngressIP)
	}
	return ip, nil
}
