package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmdHasExpectedSubcommands(t *testing.T) {
	expected := []string{"setup", "kubectl", "credentials", "hosts", "activate", "version", "self-update"}

	for _, name := range expected {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestRootCmdSilencesUsage(t *testing.T) {
	if !rootCmd.SilenceUsage {
		t.Error("expected SilenceUsage to be true")
	}
}

func TestVersionTemplate(t *testing.T) {
	original := rootCmd.Version
	defer func() { rootCmd.Version = original }()

	SetVersion("1.2.3")
	rootCmd.SetVersionTemplate(`{{printf "osctl version %s\n" .Version}}`)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"--version"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "osctl version 1.2.3") {
		t.Errorf("unexpected version output: %s", buf.String())
	}
}

func TestSetupCmdRejectsArguments(t *testing.T) {
	setupCmd := newSetupCmd()
	setupCmd.SetArgs([]string{"unexpected"})
	var buf bytes.Buffer
	setupCmd.SetOut(&buf)
	setupCmd.SetErr(&buf)

	if err := setupCmd.Execute(); err == nil {
		t.Error("expected an error for unexpected arguments")
	}
}
