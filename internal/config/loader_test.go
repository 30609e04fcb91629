package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, filename string, content Config) string {
	t.Helper()
	tempFilePath := filepath.Join(dir, filename)
	data, err := yaml.Marshal(&content)
	assert.NoError(t, err)
	err = os.WriteFile(tempFilePath, data, 0644)
	assert.NoError(t, err)
	return tempFilePath
}

func withMockedEnv(t *testing.T, env map[string]string) {
	t.Helper()
	original := osGetenv
	t.Cleanup(func() { osGetenv = original })
	osGetenv = func(key string) string {
		return env[key]
	}
}

func withMockedUserConfigPath(t *testing.T, path string) {
	t.Helper()
	original := getUserConfigPath
	t.Cleanup(func() { getUserConfigPath = original })
	getUserConfigPath = func() (string, error) {
		return path, nil
	}
}

func TestLoad_DefaultsOnly(t *testing.T) {
	tempDir := t.TempDir()
	withMockedUserConfigPath(t, filepath.Join(tempDir, "non-existent-config.yaml"))
	withMockedEnv(t, nil)

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UserOverride(t *testing.T) {
	tempDir := t.TempDir()
	userCfg := Config{
		Namespace: "osh-infra",
		VenvDir:   "/opt/osctl/venv",
	}
	path := createTempConfigFile(t, tempDir, "config.yaml", userCfg)
	withMockedUserConfigPath(t, path)
	withMockedEnv(t, nil)

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "osh-infra", cfg.Namespace)
	assert.Equal(t, "/opt/osctl/venv", cfg.VenvDir)
	// Untouched fields keep defaults.
	assert.Equal(t, Default().Domain, cfg.Domain)
	assert.Equal(t, Default().HostsFile, cfg.HostsFile)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	tempDir := t.TempDir()
	userCfg := Config{
		KubeconfigPath: "/from/file/kubeconfig",
		KubectlPath:    "/from/file/kubectl",
	}
	path := createTempConfigFile(t, tempDir, "config.yaml", userCfg)
	withMockedUserConfigPath(t, path)
	withMockedEnv(t, map[string]string{
		"KUBECONFIG":         "/from/env/kubeconfig",
		"OSCTL_KUBECTL_PATH": "/from/env/kubectl",
	})

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "/from/env/kubeconfig", cfg.KubeconfigPath)
	assert.Equal(t, "/from/env/kubectl", cfg.KubectlPath)
}

func TestLoad_LegacyKubectlPathVariable(t *testing.T) {
	tempDir := t.TempDir()
	withMockedUserConfigPath(t, filepath.Join(tempDir, "missing.yaml"))
	withMockedEnv(t, map[string]string{
		"KUBECTL_PATH": "/legacy/kubectl",
	})

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "/legacy/kubectl", cfg.KubectlPath)
}

func TestLoad_MissingKubeconfigIsNotFatal(t *testing.T) {
	tempDir := t.TempDir()
	withMockedUserConfigPath(t, filepath.Join(tempDir, "missing.yaml"))
	withMockedEnv(t, nil)

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Empty(t, cfg.KubeconfigPath)
}

func TestLoad_MalformedUserConfig(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("{not valid yaml: ["), 0644))
	withMockedUserConfigPath(t, path)
	withMockedEnv(t, nil)

	_, err := Load()
	assert.Error(t, err)
}
