package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/katyella/kubex/internal/errors"
	"github.com/katyella/kubex/internal/k8s/discovery"
)

func newResolveCmd(a *app) *cobra.Command {
	var (
		anyOf     bool
		cacheOnly bool
		output    string
	)

	cmd := &cobra.Command{
		Use:   "resolve TOKEN...",
		Short: "Resolve resource names, short names or kinds",
		Long: `Resolve each TOKEN to the API resource it names. A token may be a plural
name, a singular name, a short name or a group-qualified plural name such as
deployments.apps.

By default every token must resolve. With --any, tokens that match nothing
are ignored.`,
		Example: `  kubex resolve po deploy
  kubex resolve --any pods widgets.example.com
  kubex resolve --cache-only -o yaml ingress`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: a.completeResourceTokens,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output, outputTable, outputJSON, outputYAML); err != nil {
				return err
			}

			tokens := splitTokens(args)
			spec := discovery.AllOf(tokens...)
			if anyOf {
				spec = discovery.AnyOf(tokens...)
			}

			var (
				descriptors []discovery.Descriptor
				err         error
			)
			if cacheOnly {
				descriptors, err = a.resolveCached(spec)
			} else {
				descriptors, err = a.resolveLive(cmd, spec)
			}
			if err != nil {
				return err
			}

			if output != outputTable {
				return printStructured(cmd.OutOrStdout(), output, descriptors)
			}
			return printResolved(cmd, descriptors)
		},
	}

	cmd.Flags().BoolVar(&anyOf, "any", false, "Succeed when at least one token resolves")
	cmd.Flags().BoolVar(&cacheOnly, "cache-only", false, "Resolve from the discovery cache without contacting the server")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json or yaml")

	return cmd
}

// resolveCached resolves spec from the cache file of the current context,
// regardless of its age.
func (a *app) resolveCached(spec discovery.TargetSpec) ([]discovery.Descriptor, error) {
	kubeContext, err := a.reader.DetermineContext(a.cfg.Context)
	if err != nil {
		return nil, err
	}
	path, err := a.discoverer.CachePathFor(kubeContext)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrorCache, "failed to locate discovery cache", err)
	}

	descriptors, err := discovery.ResolveFromCacheOnly(spec, path, 0)
	if err != nil {
		return nil, resolutionError(err)
	}
	return descriptors, nil
}

// resolveLive resolves spec using the cache when fresh and live discovery
// otherwise.
func (a *app) resolveLive(cmd *cobra.Command, spec discovery.TargetSpec) ([]discovery.Descriptor, error) {
	s, err := a.connect()
	if err != nil {
		return nil, err
	}

	if !spec.IsAnyOf() {
		descriptors, err := a.discoverer.ResolveRequestedResources(cmd.Context(), spec.Tokens(), s.kubeContext, s.live)
		if err != nil {
			return nil, resolutionError(err)
		}
		return descriptors, nil
	}

	if path, err := a.discoverer.CachePathFor(s.kubeContext); err == nil {
		cached, err := discovery.ResolveFromCacheOnly(spec, path, a.discoverer.TTL())
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	all, err := a.discoverer.Refresh(cmd.Context(), s.kubeContext, s.live)
	if err != nil {
		return nil, err
	}
	descriptors, err := discovery.Resolve(spec, all)
	if err != nil {
		return nil, resolutionError(err)
	}
	return descriptors, nil
}

// splitTokens accepts both "a b" and "a,b".
func splitTokens(args []string) []string {
	var tokens []string
	for _, arg := range args {
		for _, token := range strings.Split(arg, ",") {
			if token = strings.TrimSpace(token); token != "" {
				tokens = append(tokens, token)
			}
		}
	}
	return tokens
}

// resolutionError tags resolver failures so the CLI prints them as such.
func resolutionError(err error) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return apperrors.NewResolutionError("failed to resolve resources", err)
}

func printResolved(cmd *cobra.Command, descriptors []discovery.Descriptor) error {
	rows := make([][]string, 0, len(descriptors))
	for _, d := range descriptors {
		rows = append(rows, []string{
			d.QualifiedName(),
			d.APIVersion(),
			d.Kind,
			strconv.FormatBool(d.Namespaced),
			strings.Join(d.Verbs, ","),
		})
	}
	return renderTable(cmd.OutOrStdout(), []string{"RESOURCE", "APIVERSION", "KIND", "NAMESPACED", "VERBS"}, rows)
}
