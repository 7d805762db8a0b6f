package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katyella/kubex/internal/k8s"
)

func newContextCmd(a *app) *cobra.Command {
	var current, check bool

	cmd := &cobra.Command{
		Use:     "context",
		Aliases: []string{"ctx"},
		Short:   "Show kubeconfig contexts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			if current {
				kubeContext, err := a.reader.DetermineContext(a.cfg.Context)
				if err != nil {
					return err
				}
				namespace := a.reader.DetermineNamespace(a.cfg.Namespace, kubeContext)
				if _, err := fmt.Fprintf(w, "%s\t%s\n", kubeContext, namespace); err != nil {
					return err
				}
				if !check {
					return nil
				}

				s, err := a.connect()
				if err != nil {
					return err
				}
				if err := k8s.CheckConnection(cmd.Context(), s.clients.Discovery, a.cfg.RetryPolicy()); err != nil {
					return remoteError(fmt.Sprintf("context %q is unreachable", kubeContext), err)
				}
				return nil
			}

			contexts, err := a.reader.Contexts()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(contexts))
			for _, c := range contexts {
				marker := ""
				if c.Current {
					marker = "*"
				}
				rows = append(rows, []string{marker, c.Name, c.Cluster, c.Namespace})
			}
			return renderTable(w, []string{"CURRENT", "NAME", "CLUSTER", "NAMESPACE"}, rows)
		},
	}

	cmd.Flags().BoolVar(&current, "current", false, "Print only the context and namespace in use")
	cmd.Flags().BoolVar(&check, "check", false, "With --current, also verify the API server is reachable")

	return cmd
}
