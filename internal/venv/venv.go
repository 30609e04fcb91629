// Package venv provisions the isolated Python package environment that hosts
// the OpenStack CLI clients.
package venv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"osctl/pkg/logging"
)

const logSubsystem = "Venv"

// ClientPackages is the fixed set of OpenStack client packages installed into
// the environment.
var ClientPackages = []string{
	"python-openstackclient",
	"python-masakariclient",
	"python-cinderclient",
	"python-heatclient",
	"python-glanceclient",
	"python-neutronclient",
	"python-octaviaclient",
}

// Provisioner creates the package environment and installs the CLI clients.
type Provisioner struct {
	// Dir is the environment directory, created if absent.
	Dir string
	// Requirements is the path the package manifest is written to.
	Requirements string
	// Python is the interpreter used to create the environment.
	Python string

	runner CommandRunner
}

// NewProvisioner returns a Provisioner using the given runner for external
// commands. A nil runner defaults to ExecRunner.
func NewProvisioner(dir, requirements, python string, runner CommandRunner) *Provisioner {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Provisioner{
		Dir:          dir,
		Requirements: requirements,
		Python:       python,
		runner:       runner,
	}
}

// Ensure creates the package environment if it does not exist yet. An
// existing directory is left untouched.
func (p *Provisioner) Ensure(ctx context.Context) error {
	if _, err := os.Stat(p.Dir); err == nil {
		logging.Info(logSubsystem, "Package environment already exists at %s", p.Dir)
		return nil
	}
	logging.Info(logSubsystem, "Creating package environment at %s", p.Dir)
	if _, _, err := p.runner.Run(ctx, p.Python, "-m", "venv", p.Dir); err != nil {
		return fmt.Errorf("failed to create package environment at %s: %w", p.Dir, err)
	}
	return nil
}

// WriteRequirements writes the fixed client package list to the requirements
// file, one package per line.
func (p *Provisioner) WriteRequirements() error {
	content := strings.Join(ClientPackages, "\n")
	if err := os.WriteFile(p.Requirements, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write requirements file %s: %w", p.Requirements, err)
	}
	return nil
}

// InstallDependencies invokes the environment's pip against the requirements
// file. Any non-zero exit aborts the run.
func (p *Provisioner) InstallDependencies(ctx context.Context) error {
	if err := p.WriteRequirements(); err != nil {
		return err
	}
	pip := filepath.Join(p.Dir, "bin", "pip")
	logging.Info(logSubsystem, "Installing OpenStack clients from %s", p.Requirements)
	if _, _, err := p.runner.Run(ctx, pip, "install", "-r", p.Requirements); err != nil {
		return fmt.Errorf("failed to install dependencies: %w", err)
	}
	return nil
}

// OpenStack runs the environment's openstack CLI with the given arguments and
// returns its stdout. Used for the post-install sanity check. The CLI picks
// up clouds.yaml from the working directory, so no extra environment is set.
func (p *Provisioner) OpenStack(ctx context.Context, args ...string) (string, error) {
	bin := filepath.Join(p.Dir, "bin", "openstack")
	stdout, _, err := p.runner.Run(ctx, bin, args...)
	if err != nil {
		return stdout, fmt.Errorf("openstack %s failed: %w", strings.Join(args, " "), err)
	}
	return stdout, nil
}

// BinDir returns the environment's binary directory.
func (p *Provisioner) BinDir() string {
	return filepath.Join(p.Dir, "bin")
}
