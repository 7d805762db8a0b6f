package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katyella/kubex/internal/k8s"
)

func newVersionCmd(a *app) *cobra.Command {
	var clientOnly bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(w, "Client Version: %s\n", a.opts.Version); err != nil {
				return err
			}
			if clientOnly {
				return nil
			}

			s, err := a.connect()
			if err != nil {
				return err
			}
			info, err := k8s.GetServerInfo(cmd.Context(), s.clients.Discovery, s.clients.Host, a.cfg.RetryPolicy())
			if err != nil {
				return remoteError("failed to reach the API server", err)
			}
			_, err = fmt.Fprintf(w, "Server Version: %s\n", info)
			return err
		},
	}

	cmd.Flags().BoolVar(&clientOnly, "client", false, "Print only the client version")

	return cmd
}
