package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"osctl/pkg/logging"
)

var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "osctl",
	Short: "Prepare a workstation to operate an OpenStack control plane on Kubernetes",
	Long: `osctl bootstraps a local workstation for operating an OpenStack control
plane that runs inside a Kubernetes cluster. It installs the OpenStack CLI
clients into an isolated package environment, locates or installs kubectl,
pulls the cloud credentials from the in-cluster Keystone client, points the
service domains at the cluster ingress, and writes an activation script for
the operator's shell.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. failed cluster calls, missing kubeconfig)
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logging.ParseLevel(logLevel), os.Stderr)
	},
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "osctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newSetupCmd())
	rootCmd.AddCommand(newKubectlCmd())
	rootCmd.AddCommand(newCredentialsCmd())
	rootCmd.AddCommand(newHostsCmd())
	rootCmd.AddCommand(newActivateCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
