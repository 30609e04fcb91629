package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"osctl/internal/clouds"
	"osctl/internal/config"
	"osctl/internal/kube"
	"osctl/internal/kubectl"
)

func newCredentialsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "credentials",
		Short: "Fetch the cloud credentials from the cluster and rewrite them for external access",
		Long: `Reads clouds.yaml from the Keystone client pod, rewrites the admin
profile to point at the external Keystone endpoint (TLS verification off,
public interface), and writes the result to the local clouds.yaml. Any
previous credential file is overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			bin, err := kubectl.NewLocator(cfg.KubectlPath).Locate(cmd.Context())
			if err != nil {
				return err
			}
			exec, err := kube.NewKubectlExecutor(bin, cfg.KubeconfigPath)
			if err != nil {
				return err
			}
			fetcher := clouds.NewFetcher(exec, cfg.Namespace, cfg.CloudsFile)
			fetcher.AuthURL = "https://keystone" + cfg.Domain
			_, path, err := fetcher.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
