package kube

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalKubeconfig = `apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://127.0.0.1:6443
  name: test
contexts:
- context:
    cluster: test
    user: test
  name: test
current-context: test
users:
- name: test
  user: {}
`

func writeKubeconfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kubeconfig")
	require.NoError(t, os.WriteFile(path, []byte(minimalKubeconfig), 0o600))
	return path
}

func TestCheckKubeconfigValid(t *testing.T) {
	assert.NoError(t, CheckKubeconfig(writeKubeconfig(t)))
}

func TestCheckKubeconfigUnset(t *testing.T) {
	err := CheckKubeconfig("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrKubeconfigNotFound))
}

func TestCheckKubeconfigMissingFile(t *testing.T) {
	err := CheckKubeconfig(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrKubeconfigNotFound))
	assert.Contains(t, err.Error(), "does not exist")
}

func TestCheckKubeconfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kubeconfig")
	require.NoError(t, os.WriteFile(path, []byte("{not: [valid"), 0o600))

	err := CheckKubeconfig(path)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrKubeconfigNotFound))
}

func TestNewKubectlExecutorRejectsMissingKubeconfig(t *testing.T) {
	_, err := NewKubectlExecutor("/usr/bin/kubectl", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrKubeconfigNotFound))
}

func TestNewKubectlExecutorAcceptsValidKubeconfig(t *testing.T) {
	path := writeKubeconfig(t)
	e, err := NewKubectlExecutor("/usr/bin/kubectl", path)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/kubectl", e.Bin)
	assert.Equal(t, path, e.Kubeconfig)
}
