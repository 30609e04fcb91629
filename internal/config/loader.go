package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetenv = os.Getenv

const (
	userConfigDir  = ".config/osctl"
	configFileName = "config.yaml"
)

// Load builds the effective configuration by layering, in order: built-in
// defaults, the optional user config file, and environment variables.
func Load() (Config, error) {
	cfg := Default()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional; a missing home directory is not fatal.
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else {
		if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
			userCfg, err := loadConfigFromFile(userConfigPath)
			if err != nil {
				return Config{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
			}
			cfg = merge(cfg, userCfg)
		}
	}

	applyEnv(&cfg)

	return cfg, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

// loadConfigFromFile loads a Config from a YAML file.
func loadConfigFromFile(filePath string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// merge merges 'overlay' config into 'base' config. Only non-empty overlay
// fields override.
func merge(base, overlay Config) Config {
	merged := base
	if overlay.KubeconfigPath != "" {
		merged.KubeconfigPath = overlay.KubeconfigPath
	}
	if overlay.KubectlPath != "" {
		merged.KubectlPath = overlay.KubectlPath
	}
	if overlay.VenvDir != "" {
		merged.VenvDir = overlay.VenvDir
	}
	if overlay.RequirementsFile != "" {
		merged.RequirementsFile = overlay.RequirementsFile
	}
	if overlay.Python != "" {
		merged.Python = overlay.Python
	}
	if overlay.Namespace != "" {
		merged.Namespace = overlay.Namespace
	}
	if overlay.Domain != "" {
		merged.Domain = overlay.Domain
	}
	if overlay.CloudsFile != "" {
		merged.CloudsFile = overlay.CloudsFile
	}
	if overlay.HostsFile != "" {
		merged.HostsFile = overlay.HostsFile
	}
	if overlay.HostsBackup != "" {
		merged.HostsBackup = overlay.HostsBackup
	}
	if overlay.ActivationScript != "" {
		merged.ActivationScript = overlay.ActivationScript
	}
	if overlay.LogLevel != "" {
		merged.LogLevel = overlay.LogLevel
	}
	return merged
}

// applyEnv resolves the environment-sourced fields. Environment variables win
// over both defaults and the user config file.
func applyEnv(cfg *Config) {
	if v := osGetenv("KUBECONFIG"); v != "" {
		cfg.KubeconfigPath = v
	}
	if v := osGetenv("OSCTL_KUBECTL_PATH"); v != "" {
		cfg.KubectlPath = v
	} else if v := osGetenv("KUBECTL_PATH"); v != "" {
		cfg.KubectlPath = v
	}
	if v := osGetenv("OSCTL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
