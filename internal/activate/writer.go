// Package activate generates the shell snippet operators source to use the
// installed OpenStack CLI environment.
package activate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"osctl/pkg/logging"
)

const logSubsystem = "Activate"

var scriptTemplate = template.Must(template.New("activate").Parse(`#!/bin/bash
source "{{.VenvDir}}/bin/activate"
export OS_CLIENT_CONFIG_FILE="{{.CloudsPath}}"
export KUBECONFIG="{{.Kubeconfig}}"
echo "OpenStack environment activated."
echo "KUBECONFIG set to {{.Kubeconfig}}"
echo "Now you can use the 'openstack' CLI and kubectl."
`))

// Writer renders the activation script. Regenerated fully on each run; there
// is no state beyond the file itself.
type Writer struct {
	// VenvDir is the package environment the script activates.
	VenvDir string
	// CloudsPath is exported as OS_CLIENT_CONFIG_FILE.
	CloudsPath string
	// Kubeconfig is exported as KUBECONFIG, resolved to an absolute path.
	Kubeconfig string
}

// Render returns the script contents.
func (w *Writer) Render() (string, error) {
	kubeconfig := w.Kubeconfig
	if abs, err := filepath.Abs(kubeconfig); err == nil {
		kubeconfig = abs
	}

	var buf bytes.Buffer
	err := scriptTemplate.Execute(&buf, struct {
		VenvDir    string
		CloudsPath string
		Kubeconfig string
	}{w.VenvDir, w.CloudsPath, kubeconfig})
	if err != nil {
		return "", fmt.Errorf("failed to render activation script: %w", err)
	}
	return buf.String(), nil
}

// Write renders the script to path and marks it executable.
func (w *Writer) Write(path string) error {
	content, err := w.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		return fmt.Errorf("failed to write activation script %s: %w", path, err)
	}
	logging.Info(logSubsystem, "Created activation script: %s", path)
	return nil
}
