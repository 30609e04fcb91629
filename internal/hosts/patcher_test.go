package hosts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDomain = ".it.just.works"

func newTestPatcher(t *testing.T, content string) *Patcher {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "hosts")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return NewPatcher(path, filepath.Join(dir, "hosts.bak"), testDomain)
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestPatchPreservesUnrelatedLinesAndAppendsEntries(t *testing.T) {
	original := "127.0.0.1 localhost\n" +
		"::1 ip6-localhost\n" +
		"10.1.2.3 keystone.it.just.works\n" +
		"192.168.1.10 fileserver.lan\n" +
		"10.1.2.3 nova.it.just.works\n"
	p := newTestPatcher(t, original)

	require.NoError(t, p.Patch("10.0.0.5"))

	lines := readLines(t, p.Path)
	// 5 original lines, 2 contained the domain: 3 survivors + 17 entries.
	require.Len(t, lines, 3+len(Services))
	assert.Equal(t, "127.0.0.1 localhost", lines[0])
	assert.Equal(t, "::1 ip6-localhost", lines[1])
	assert.Equal(t, "192.168.1.10 fileserver.lan", lines[2])

	for i, svc := range Services {
		assert.Equal(t, fmt.Sprintf("10.0.0.5 %s%s", svc, testDomain), lines[3+i])
	}
}

func TestPatchWritesBackup(t *testing.T) {
	original := "127.0.0.1 localhost\n"
	p := newTestPatcher(t, original)

	require.NoError(t, p.Patch("10.0.0.5"))

	backup, err := os.ReadFile(p.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, original, string(backup))
}

func TestPatchIsIdempotentForSameIP(t *testing.T) {
	p := newTestPatcher(t, "127.0.0.1 localhost\n")

	require.NoError(t, p.Patch("10.0.0.5"))
	first, err := os.ReadFile(p.Path)
	require.NoError(t, err)

	require.NoError(t, p.Patch("10.0.0.5"))
	second, err := os.ReadFile(p.Path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))

	count := strings.Count(string(second), testDomain)
	assert.Equal(t, len(Services), count, "no duplicate domain entries after a second run")
}

func TestPatchReplacesStaleIP(t *testing.T) {
	p := newTestPatcher(t, "127.0.0.1 localhost\n")
	require.NoError(t, p.Patch("10.0.0.5"))
	require.NoError(t, p.Patch("10.9.9.9"))

	data, err := os.ReadFile(p.Path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "10.0.0.5")
	assert.Contains(t, string(data), "10.9.9.9 keystone"+testDomain)
}

func TestPatchRejectsEmptyIP(t *testing.T) {
	p := newTestPatcher(t, "127.0.0.1 localhost\n")
	require.Error(t, p.Patch(""))

	// The live file is untouched.
	data, err := os.ReadFile(p.Path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1 localhost\n", string(data))
}

func TestPatchMissingHostsFile(t *testing.T) {
	dir := t.TempDir()
	p := NewPatcher(filepath.Join(dir, "nope"), filepath.Join(dir, "nope.bak"), testDomain)
	err := p.Patch("10.0.0.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read hosts file")
}

func TestServiceListShape(t *testing.T) {
	assert.Len(t, Services, 17)
	assert.Contains(t, Services, "glance")
	assert.Contains(t, Services, "glance-api")

	p := NewPatcher("/etc/hosts", "/etc/hosts.bak", testDomain)
	entries := p.Entries("10.0.0.5")
	require.Len(t, entries, 17)
	assert.Equal(t, "10.0.0.5 horizon.it.just.works", entries[0])
	assert.Equal(t, "10.0.0.5 glance-api.it.just.works", entries[16])
}
