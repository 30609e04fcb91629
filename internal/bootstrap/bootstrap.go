// Package bootstrap runs the fixed workstation setup sequence: package
// environment, CLI clients, kubectl, cloud credentials, hosts entries and
// the activation script.
package bootstrap

import (
	"context"
	"fmt"

	"osctl/internal/activate"
	"osctl/internal/clouds"
	"osctl/internal/config"
	"osctl/internal/hosts"
	"osctl/internal/ingress"
	"osctl/internal/kube"
	"osctl/internal/kubectl"
	"osctl/internal/venv"
)

// provisionerAPI is the slice of the venv provisioner the sequence uses.
type provisionerAPI interface {
	Ensure(ctx context.Context) error
	InstallDependencies(ctx context.Context) error
	OpenStack(ctx context.Context, args ...string) (string, error)
}

// locatorAPI resolves the kubectl binary.
type locatorAPI interface {
	Locate(ctx context.Context) (string, error)
}

// credentialFetcherAPI fetches and persists the cloud credential document.
type credentialFetcherAPI interface {
	Fetch(ctx context.Context) (adminYAML string, path string, err error)
}

// ingressResolverAPI resolves the ingress load-balancer IP.
type ingressResolverAPI interface {
	Resolve(ctx context.Context) (string, error)
}

// hostsPatcherAPI rewrites the hosts file for a resolved IP.
type hostsPatcherAPI interface {
	Patch(ip string) error
}

// scriptWriterAPI writes the activation script for a credential file path.
type scriptWriterAPI func(cloudsPath string) error

// Bootstrapper wires the components and runs them in order. The constructor
// fields exist so tests can substitute fakes for the cluster-facing pieces.
type Bootstrapper struct {
	Config   config.Config
	Reporter StepReporter

	provisioner provisionerAPI
	locator     locatorAPI
	newExecutor func(bin, kubeconfig string) (kube.Executor, error)
	newFetcher  func(exec kube.Executor) credentialFetcherAPI
	newResolver func(exec kube.Executor) ingressResolverAPI
	patcher     hostsPatcherAPI
	writeScript scriptWriterAPI
}

// New returns a Bootstrapper with the production component wiring for cfg.
func New(cfg config.Config, reporter StepReporter) *Bootstrapper {
	b := &Bootstrapper{
		Config:      cfg,
		Reporter:    reporter,
		provisioner: venv.NewProvisioner(cfg.VenvDir, cfg.RequirementsFile, cfg.Python, nil),
		locator:     kubectl.NewLocator(cfg.KubectlPath),
		newExecutor: func(bin, kubeconfig string) (kube.Executor, error) {
			exec, err := kube.NewKubectlExecutor(bin, kubeconfig)
			if err != nil {
				return nil, err
			}
			return exec, nil
		},
		patcher: hosts.NewPatcher(cfg.HostsFile, cfg.HostsBackup, cfg.Domain),
	}
	b.newFetcher = func(exec kube.Executor) credentialFetcherAPI {
		f := clouds.NewFetcher(exec, cfg.Namespace, cfg.CloudsFile)
		f.AuthURL = "https://keystone" + cfg.Domain
		return f
	}
	b.newResolver = func(exec kube.Executor) ingressResolverAPI {
		return ingress.NewResolver(cfg.KubeconfigPath, cfg.Namespace, exec)
	}
	b.writeScript = func(cloudsPath string) error {
		w := &activate.Writer{
			VenvDir:    cfg.VenvDir,
			CloudsPath: cloudsPath,
			Kubeconfig: cfg.KubeconfigPath,
		}
		return w.Write(cfg.ActivationScript)
	}
	return b
}

// step runs fn under the given name, reporting progress; the first failure
// aborts the sequence with the step name wrapped into the error.
func (b *Bootstrapper) step(name string, fn func() error) error {
	b.Reporter.Step(name)
	if err := fn(); err != nil {
		b.Reporter.Fail(name, err)
		return fmt.Errorf("%s: %w", name, err)
	}
	b.Reporter.Done(name)
	return nil
}

// Run executes the full bootstrap sequence once. Steps run sequentially and
// each depends on its predecessors; there is no partial-completion recovery
// beyond the steps that are naturally idempotent.
func (b *Bootstrapper) Run(ctx context.Context) error {
	if err := b.step("create package environment", func() error {
		return b.provisioner.Ensure(ctx)
	}); err != nil {
		return err
	}

	if err := b.step("install OpenStack clients", func() error {
		return b.provisioner.InstallDependencies(ctx)
	}); err != nil {
		return err
	}

	var bin string
	if err := b.step("locate kubectl", func() error {
		var err error
		bin, err = b.locator.Locate(ctx)
		return err
	}); err != nil {
		return err
	}

	var exec kube.Executor
	if err := b.step("check kubeconfig", func() error {
		var err error
		exec, err = b.newExecutor(bin, b.Config.KubeconfigPath)
		return err
	}); err != nil {
		return err
	}

	var cloudsPath string
	if err := b.step("fetch cloud credentials", func() error {
		var err error
		_, cloudsPath, err = b.newFetcher(exec).Fetch(ctx)
		return err
	}); err != nil {
		return err
	}

	var ip string
	if err := b.step("resolve ingress IP", func() error {
		var err error
		ip, err = b.newResolver(exec).Resolve(ctx)
		return err
	}); err != nil {
		return err
	}

	if err := b.step("patch hosts file", func() error {
		return b.patcher.Patch(ip)
	}); err != nil {
		return err
	}

	if err := b.step("verify endpoint list", func() error {
		_, err := b.provisioner.OpenStack(ctx, "endpoint", "list")
		return err
	}); err != nil {
		return err
	}

	if err := b.step("write activation script", func() error {
		return b.writeScript(cloudsPath)
	}); err != nil {
		return err
	}

	b.Reporter.Banner(
		"Setup complete!",
		"To use the OpenStack CLI run",
		"   source "+b.Config.ActivationScript,
	)
	return nil
}
