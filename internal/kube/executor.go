package kube

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Executor is the cluster command execution seam. One capability: run a
// remote command, return captured output or failure.
type Executor interface {
	// Exec runs command inside target (a pod or workload reference such as
	// "deploy/keystone-client") in namespace and returns its stdout.
	Exec(ctx context.Context, namespace, target string, command ...string) (string, error)

	// ServiceJSONPath reads a jsonpath projection from a namespaced service.
	ServiceJSONPath(ctx context.Context, namespace, service, path string) (string, error)
}

// KubectlExecutor implements Executor by invoking a kubectl binary with a
// fixed kubeconfig.
type KubectlExecutor struct {
	// Bin is the kubectl binary path, as resolved by the locator.
	Bin string
	// Kubeconfig is passed to every invocation via the child environment.
	Kubeconfig string
}

// NewKubectlExecutor returns an Executor backed by the given kubectl binary
// and kubeconfig path.
func NewKubectlExecutor(bin, kubeconfig string) (*KubectlExecutor, error) {
	if err := CheckKubeconfig(kubeconfig); err != nil {
		return nil, err
	}
	return &KubectlExecutor{Bin: bin, Kubeconfig: kubeconfig}, nil
}

// Exec implements Executor.
func (e *KubectlExecutor) Exec(ctx context.Context, namespace, target string, command ...string) (string, error) {
	args := append([]string{"exec", "-n", namespace, target, "--"}, command...)
	return e.run(ctx, args...)
}

// ServiceJSONPath implements Executor.
func (e *KubectlExecutor) ServiceJSONPath(ctx context.Context, namespace, service, path string) (string, error) {
	out, err := e.run(ctx, "get", "service", "-n", namespace, service, "-o", "jsonpath="+path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// run executes kubectl with the configured kubeconfig, capturing stdout and
// stderr. A non-zero exit folds the captured stderr into the error.
func (e *KubectlExecutor) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, e.Bin, args...)

	env := os.Environ()
	if e.Kubeconfig != "" {
		abs, err := filepath.Abs(e.Kubeconfig)
		if err != nil {
			abs = e.Kubeconfig
		}
		env = append(env, "KUBECONFIG="+abs)
	}
	cmd.Env = env

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if err := cmd.Run(); err != nil {
		return stdoutBuf.String(), fmt.Errorf("failed to execute '%s %s': %w. Stderr: %s",
			e.Bin, strings.Join(args, " "), err, stderrBuf.String())
	}
	return stdoutBuf.String(), nil
}
