package kube

import (
	"errors"
	"fmt"
	"os"

	"k8s.io/client-go/tools/clientcmd"

	"osctl/pkg/logging"
)

const logSubsystem = "Kube"

// ErrKubeconfigNotFound reports a missing or unset kubeconfig. Callers branch
// on it with errors.Is.
var ErrKubeconfigNotFound = errors.New("kubeconfig not found")

// CheckKubeconfig verifies that path names an existing, parseable kubeconfig.
// An empty or missing path returns ErrKubeconfigNotFound (wrapped with the
// offending path when present); any other parse problem is its own error.
func CheckKubeconfig(path string) error {
	if path == "" {
		return fmt.Errorf("KUBECONFIG is not set: %w", ErrKubeconfigNotFound)
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("kubeconfig file %s does not exist: %w", path, ErrKubeconfigNotFound)
		}
		return fmt.Errorf("failed to stat kubeconfig %s: %w", path, err)
	}

	cfg, err := clientcmd.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse kubeconfig %s: %w", path, err)
	}
	logging.Debug(logSubsystem, "kubeconfig %s loaded, current context %q", path, cfg.CurrentContext)
	return nil
}
