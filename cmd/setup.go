package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"osctl/internal/bootstrap"
	"osctl/internal/config"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Run the full workstation bootstrap sequence",
		Long: `Runs every bootstrap step in order: create the package environment,
install the OpenStack CLI clients, locate or install kubectl, fetch and
rewrite the cloud credentials from the cluster, patch the hosts file with the
ingress IP, verify the endpoint listing, and write the activation script.

Patching the hosts file writes to /etc/hosts and normally requires elevated
privileges. The first failing step aborts the run; the hosts file is only
ever replaced atomically, so a failed run never leaves it half-written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			b := bootstrap.New(cfg, bootstrap.NewConsoleReporter(os.Stdout))
			return b.Run(cmd.Context())
		},
	}
}
