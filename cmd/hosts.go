package cmd

import (
	"github.com/spf13/cobra"

	"osctl/internal/config"
	"osctl/internal/hosts"
	"osctl/internal/ingress"
	"osctl/internal/kube"
	"osctl/internal/kubectl"
)

func newHostsCmd() *cobra.Command {
	hostsCmd := &cobra.Command{
		Use:   "hosts",
		Short: "Manage the hosts file entries for the OpenStack service domains",
	}
	hostsCmd.AddCommand(newHostsPatchCmd())
	return hostsCmd
}

func newHostsPatchCmd() *cobra.Command {
	var ip string
	var hostsFile string
	var backupFile string

	patchCmd := &cobra.Command{
		Use:   "patch",
		Short: "Point the service domains at the cluster ingress IP",
		Long: `Rewrites the hosts file so every OpenStack service subdomain resolves
to the cluster's ingress load-balancer IP. The original file is backed up
first and the replacement is atomic. Unless --ip is given, the IP is resolved
from the ingress service in the control plane namespace.

Writing /etc/hosts normally requires elevated privileges.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if hostsFile != "" {
				cfg.HostsFile = hostsFile
			}
			if backupFile != "" {
				cfg.HostsBackup = backupFile
			}

			if ip == "" {
				bin, err := kubectl.NewLocator(cfg.KubectlPath).Locate(cmd.Context())
				if err != nil {
					return err
				}
				exec, err := kube.NewKubectlExecutor(bin, cfg.KubeconfigPath)
				if err != nil {
					return err
				}
				ip, err = ingress.NewResolver(cfg.KubeconfigPath, cfg.Namespace, exec).Resolve(cmd.Context())
				if err != nil {
					return err
				}
			}

			return hosts.NewPatcher(cfg.HostsFile, cfg.HostsBackup, cfg.Domain).Patch(ip)
		},
	}

	patchCmd.Flags().StringVar(&ip, "ip", "", "ingress IP to map (resolved from the cluster when omitted)")
	patchCmd.Flags().StringVar(&hostsFile, "hosts-file", "", "hosts file to patch (default /etc/hosts)")
	patchCmd.Flags().StringVar(&backupFile, "backup-file", "", "backup destination (default /etc/hosts.bak)")
	return patchCmd
}
