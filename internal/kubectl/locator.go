// Package kubectl locates or installs the kubectl binary the bootstrapper
// drives the cluster with.
package kubectl

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"osctl/pkg/logging"
)

const logSubsystem = "KubectlLocator"

const (
	// DefaultSeedPath is the well-known kubectl location on seed nodes.
	DefaultSeedPath = "/home/ubuntu/bootstrap/dev/bin/kubectl"

	// DefaultStableURL serves the current stable release version as text.
	DefaultStableURL = "https://dl.k8s.io/release/stable.txt"

	// DefaultReleaseURLBase is the release download root.
	DefaultReleaseURLBase = "https://dl.k8s.io/release"

	// FallbackVersion is used when the stable version cannot be determined.
	FallbackVersion = "v1.27.0"
)

// For mocking in tests
var execLookPath = exec.LookPath
var osUserHomeDir = os.UserHomeDir

// Locator resolves a usable kubectl binary. The resolution order is:
// explicit override, seed node path, system PATH, fresh download.
type Locator struct {
	// Override short-circuits the chain when non-empty (environment or
	// config supplied path). The path is returned as-is.
	Override string

	// SeedPath is a fixed filesystem location checked before PATH.
	SeedPath string

	// InstallDir is where a downloaded binary is placed.
	InstallDir string

	// StableURL and ReleaseURLBase parameterize the download endpoints so
	// tests can point them at local servers.
	StableURL      string
	ReleaseURLBase string

	// OS and Arch identify the platform of the downloaded binary. Empty
	// values default to the running platform.
	OS   string
	Arch string

	client *retryablehttp.Client
}

// NewLocator returns a Locator with the production defaults. override may be
// empty.
func NewLocator(override string) *Locator {
	client := retryablehttp.NewClient()
	client.Logger = nil // retry noise goes through our logging instead
	return &Locator{
		Override:       override,
		SeedPath:       DefaultSeedPath,
		StableURL:      DefaultStableURL,
		ReleaseURLBase: DefaultReleaseURLBase,
		client:         client,
	}
}

// NormalizeArch maps a machine architecture label onto the two supported
// release labels. Unknown values fall back to amd64 rather than failing.
func NormalizeArch(arch string) string {
	switch arch {
	case "x86_64", "amd64":
		return "amd64"
	case "aarch64", "arm64":
		return "arm64"
	default:
		return "amd64"
	}
}

// Locate resolves the kubectl binary path, downloading one as a last resort.
func (l *Locator) Locate(ctx context.Context) (string, error) {
	if l.Override != "" {
		logging.Debug(logSubsystem, "Using kubectl override: %s", l.Override)
		return l.Override, nil
	}

	if l.SeedPath != "" {
		if _, err := os.Stat(l.SeedPath); err == nil {
			logging.Debug(logSubsystem, "Using seed node kubectl: %s", l.SeedPath)
			return l.SeedPath, nil
		}
	}

	if path, err := execLookPath("kubectl"); err == nil {
		logging.Info(logSubsystem, "kubectl already installed: %s", path)
		return path, nil
	}

	return l.download(ctx)
}

// stableVersion queries the stable release endpoint. Any failure degrades to
// the pinned fallback version with a warning.
func (l *Locator) stableVersion(ctx context.Context) string {
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", l.StableURL, nil)
	if err != nil {
		logging.Warn(logSubsystem, "Could not build stable version request, using fallback %s: %v", FallbackVersion, err)
		return FallbackVersion
	}
	resp, err := l.httpClient().Do(req)
	if err != nil {
		logging.Warn(logSubsystem, "Could not get stable version, using fallback %s: %v", FallbackVersion, err)
		return FallbackVersion
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		logging.Warn(logSubsystem, "Stable version endpoint returned %d, using fallback %s", resp.StatusCode, FallbackVersion)
		return FallbackVersion
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logging.Warn(logSubsystem, "Could not read stable version, using fallback %s: %v", FallbackVersion, err)
		return FallbackVersion
	}
	version := strings.TrimSpace(string(body))
	if version == "" {
		return FallbackVersion
	}
	return version
}

// download fetches a kubectl binary for the target platform into InstallDir
// (default ~/.local/bin) and marks it executable. No checksum verification is
// performed. A failed download is fatal to the caller.
func (l *Locator) download(ctx context.Context) (string, error) {
	installDir := l.InstallDir
	if installDir == "" {
		home, err := osUserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine home directory for kubectl install: %w", err)
		}
		installDir = filepath.Join(home, ".local", "bin")
	}
	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create install directory %s: %w", installDir, err)
	}

	goos := l.OS
	if goos == "" {
		goos = runtime.GOOS
	}
	arch := l.Arch
	if arch == "" {
		arch = runtime.GOARCH
	}
	arch = NormalizeArch(arch)

	version := l.stableVersion(ctx)
	downloadURL := fmt.Sprintf("%s/%s/bin/%s/%s/kubectl", l.ReleaseURLBase, version, goos, arch)
	target := filepath.Join(installDir, "kubectl")

	logging.Info(logSubsystem, "Downloading kubectl from %s", downloadURL)

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", downloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build kubectl download request: %w", err)
	}
	resp, err := l.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download kubectl from %s: %w", downloadURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("kubectl download from %s returned status %d", downloadURL, resp.StatusCode)
	}

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", target, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return "", fmt.Errorf("failed to write kubectl to %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", target, err)
	}
	if err := os.Chmod(target, 0o755); err != nil {
		return "", fmt.Errorf("failed to mark %s executable: %w", target, err)
	}

	logging.Info(logSubsystem, "kubectl installed at %s", target)
	return target, nil
}

func (l *Locator) httpClient() *retryablehttp.Client {
	if l.client == nil {
		l.client = retryablehttp.NewClient()
		l.client.Logger = nil
	}
	return l.client
}
