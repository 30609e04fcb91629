package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"osctl/internal/config"
	"osctl/internal/kubectl"
)

func newKubectlCmd() *cobra.Command {
	kubectlCmd := &cobra.Command{
		Use:   "kubectl",
		Short: "Manage the kubectl binary used by osctl",
	}
	kubectlCmd.AddCommand(newKubectlLocateCmd())
	return kubectlCmd
}

func newKubectlLocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "Resolve the kubectl binary, downloading one if necessary",
		Long: `Resolves a usable kubectl binary and prints its path. The resolution
order is: the OSCTL_KUBECTL_PATH / KUBECTL_PATH override, the seed node path,
the system PATH, and finally a fresh download of the current stable release
into ~/.local/bin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			path, err := kubectl.NewLocator(cfg.KubectlPath).Locate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
