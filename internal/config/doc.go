// Package config defines and loads the osctl configuration.
//
// Configuration is layered: built-in defaults, then an optional user config
// file at ~/.config/osctl/config.yaml, then environment variables
// (KUBECONFIG, OSCTL_KUBECTL_PATH / KUBECTL_PATH, OSCTL_LOG_LEVEL).
// The resulting Config value is passed explicitly into every component;
// nothing below the cmd layer reads the process environment.
package config
