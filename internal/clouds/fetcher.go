package clouds

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/natefinch/atomic"

	"osctl/internal/kube"
	"osctl/pkg/logging"
)

const logSubsystem = "Clouds"

const (
	// DefaultTarget is the workload the credential document is read from.
	DefaultTarget = "deploy/keystone-client"

	// DefaultRemotePath is where the pod keeps its clouds.yaml.
	DefaultRemotePath = "/etc/openstack/clouds.yaml"

	// DefaultAuthURL is the external-facing Keystone endpoint written into
	// the admin profile.
	DefaultAuthURL = "https://keystone.it.just.works"
)

// Fetcher reads the cluster's clouds.yaml, rewrites the admin profile for
// external access, and persists the result locally.
type Fetcher struct {
	Exec       kube.Executor
	Namespace  string
	Target     string
	RemotePath string
	AuthURL    string

	// OutputPath is where the rewritten document lands. A relative path is
	// resolved against the working directory.
	OutputPath string
}

// NewFetcher returns a Fetcher with the production defaults for the given
// executor, namespace and output path.
func NewFetcher(exec kube.Executor, namespace, outputPath string) *Fetcher {
	return &Fetcher{
		Exec:       exec,
		Namespace:  namespace,
		Target:     DefaultTarget,
		RemotePath: DefaultRemotePath,
		AuthURL:    DefaultAuthURL,
		OutputPath: outputPath,
	}
}

// Fetch retrieves, rewrites and persists the credential document. It returns
// the serialized admin profile and the absolute output path. Each run
// overwrites the previous file; versions are never merged.
func (f *Fetcher) Fetch(ctx context.Context) (string, string, error) {
	raw, err := f.Exec.Exec(ctx, f.Namespace, f.Target, "cat", f.RemotePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s from %s: %w", f.RemotePath, f.Target, err)
	}

	doc, err := Parse([]byte(raw))
	if err != nil {
		return "", "", err
	}

	admin, err := doc.Profile(AdminProfile)
	if err != nil {
		return "", "", err
	}
	if err := admin.RewriteForPublicAccess(f.AuthURL); err != nil {
		return "", "", fmt.Errorf("failed to rewrite admin profile: %w", err)
	}

	// Persist only the admin profile, wrapped in the original container.
	out := &Document{Clouds: map[string]Cloud{AdminProfile: admin}}
	data, err := out.Marshal()
	if err != nil {
		return "", "", err
	}

	path, err := filepath.Abs(f.OutputPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve output path %s: %w", f.OutputPath, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return "", "", fmt.Errorf("failed to write credential file %s: %w", path, err)
	}
	logging.Info(logSubsystem, "Wrote credential file %s", path)

	adminYAML, err := MarshalProfile(admin)
	if err != nil {
		return "", "", err
	}
	return adminYAML, path, nil
}
