// Package kube provides the narrow cluster access layer for osctl.
//
// All cluster interaction funnels through the Executor interface: run a
// command inside a pod, or project a field out of a service object. The
// production implementation shells out to the located kubectl binary with
// the configured kubeconfig injected into the child environment; tests use
// a fake Executor instead of a real cluster.
//
// The package also owns kubeconfig preflight checking. A missing kubeconfig
// is a typed error (ErrKubeconfigNotFound) so callers can branch on it
// deliberately instead of discovering the problem through a downstream
// failure.
package kube
