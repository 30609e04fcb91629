package config

// Config is the top-level configuration structure for osctl.
//
// Every path the bootstrapper touches is carried here explicitly so that the
// components receive configuration as values instead of reading ambient
// process state. The kubeconfig path in particular is resolved once during
// Load and passed down; an unset KUBECONFIG becomes an empty field that the
// cluster-facing components turn into a typed error, not a startup crash.
type Config struct {
	// KubeconfigPath is the kubeconfig used for all cluster operations.
	// Resolved from the KUBECONFIG environment variable unless overridden.
	KubeconfigPath string `yaml:"kubeconfigPath,omitempty"`

	// KubectlPath, when set, short-circuits the kubectl locator chain.
	// Resolved from OSCTL_KUBECTL_PATH or the legacy KUBECTL_PATH variable.
	KubectlPath string `yaml:"kubectlPath,omitempty"`

	// VenvDir is the isolated package environment directory.
	VenvDir string `yaml:"venvDir,omitempty"`

	// RequirementsFile is where the OpenStack client package list is written.
	RequirementsFile string `yaml:"requirementsFile,omitempty"`

	// Python is the interpreter used to create the package environment.
	Python string `yaml:"python,omitempty"`

	// Namespace is the cluster namespace hosting the OpenStack control plane.
	Namespace string `yaml:"namespace,omitempty"`

	// Domain is the managed service domain suffix for hosts entries.
	Domain string `yaml:"domain,omitempty"`

	// CloudsFile is the output path of the rewritten credential document.
	CloudsFile string `yaml:"cloudsFile,omitempty"`

	// HostsFile and HostsBackup are the live hosts file and its backup copy.
	HostsFile   string `yaml:"hostsFile,omitempty"`
	HostsBackup string `yaml:"hostsBackup,omitempty"`

	// ActivationScript is the generated shell snippet path.
	ActivationScript string `yaml:"activationScript,omitempty"`

	// LogLevel is the textual logging level ("debug", "info", "warn", "error").
	LogLevel string `yaml:"logLevel,omitempty"`
}

const (
	// DefaultNamespace is the namespace the OpenStack control plane runs in.
	DefaultNamespace = "openstack"

	// DefaultDomain is the managed domain suffix for all service subdomains.
	DefaultDomain = ".it.just.works"
)

// Default returns the built-in configuration. Relative paths are resolved
// against the working directory at the time the components use them.
func Default() Config {
	return Config{
		VenvDir:          ".venv",
		RequirementsFile: "requirements.txt",
		Python:           "python3",
		Namespace:        DefaultNamespace,
		Domain:           DefaultDomain,
		CloudsFile:       "clouds.yaml",
		HostsFile:        "/etc/hosts",
		HostsBackup:      "/etc/hosts.bak",
		ActivationScript: "activate_openstack.sh",
		LogLevel:         "info",
	}
}
