package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katyella/kubex/internal/k8s"
	"github.com/katyella/kubex/internal/k8s/discovery"
)

func newAPIResourcesCmd(a *app) *cobra.Command {
	var (
		refresh bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "api-resources",
		Short: "List the resources served by the cluster",
		Long: `List the preferred version of every resource served by the cluster.

A cached list younger than discovery.cache-ttl is used without contacting the
server. Use --refresh to force live discovery and update the cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(output, outputTable, outputJSON, outputYAML); err != nil {
				return err
			}

			descriptors, err := a.allResources(cmd, refresh)
			if err != nil {
				return err
			}

			if output != outputTable {
				return printStructured(cmd.OutOrStdout(), output, descriptors)
			}
			return printAPIResources(cmd, descriptors)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Ignore the discovery cache and query the server")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json or yaml")

	return cmd
}

// allResources returns every resource of the current context, from a fresh
// cache when possible.
func (a *app) allResources(cmd *cobra.Command, refresh bool) ([]discovery.Descriptor, error) {
	ctx := cmd.Context()

	if !refresh {
		kubeContext, err := a.reader.DetermineContext(a.cfg.Context)
		if err != nil {
			return nil, err
		}
		if path, err := a.discoverer.CachePathFor(kubeContext); err == nil {
			cached, err := discovery.ResolveFromCacheOnly(discovery.All(), path, a.discoverer.TTL())
			if err == nil {
				return cached, nil
			}
			a.logger.Debug("discovery cache not usable", "path", path, "error", err)
		}
	}

	s, err := a.connect()
	if err != nil {
		return nil, err
	}
	return a.discoverer.Refresh(ctx, s.kubeContext, s.live)
}

func printAPIResources(cmd *cobra.Command, descriptors []discovery.Descriptor) error {
	rows := make([][]string, 0, len(descriptors))
	for _, d := range descriptors {
		rows = append(rows, []string{
			d.Name,
			strings.Join(d.ShortNames, ","),
			d.APIVersion(),
			strconv.FormatBool(d.Namespaced),
			d.Kind,
		})
	}

	w := cmd.OutOrStdout()
	if err := renderTable(w, []string{"NAME", "SHORTNAMES", "APIVERSION", "NAMESPACED", "KIND"}, rows); err != nil {
		return err
	}

	info := k8s.DetectClusterType(descriptors)
	summary := fmt.Sprintf("%s cluster, %d resources in %d API groups", info.Type, info.ResourceCount, len(info.APIGroups))
	if info.HasOLM {
		summary += ", Operator Lifecycle Manager installed"
	}
	_, err := fmt.Fprintln(w, dimStyle.Render(summary))
	return err
}
