package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"osctl/internal/activate"
	"osctl/internal/config"
)

func newActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate",
		Short: "Regenerate the activation script for the operator's shell",
		Long: `Writes the activation script that sources the package environment and
exports OS_CLIENT_CONFIG_FILE and KUBECONFIG. The script is regenerated in
full on every run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cloudsPath, err := filepath.Abs(cfg.CloudsFile)
			if err != nil {
				return err
			}
			w := &activate.Writer{
				VenvDir:    cfg.VenvDir,
				CloudsPath: cloudsPath,
				Kubeconfig: cfg.KubeconfigPath,
			}
			if err := w.Write(cfg.ActivationScript); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.ActivationScript)
			return nil
		},
	}
}
