package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/cli-runtime/pkg/printers"

	"github.com/katyella/kubex/internal/constants"
	apperrors "github.com/katyella/kubex/internal/errors"
	"github.com/katyella/kubex/internal/k8s/discovery"
	"github.com/katyella/kubex/internal/k8s/resources"
	"github.com/katyella/kubex/internal/k8s/retry"
)

type getOptions struct {
	allNamespaces bool
	selector      string
	output        string
	watch         bool
}

func newGetCmd(a *app) *cobra.Command {
	var o getOptions

	cmd := &cobra.Command{
		Use:   "get TOKEN...",
		Short: "List objects of one or more resources",
		Long: `List objects of every resource named by the tokens. Tokens are resolved
the same way as in "kubex resolve" and all of them must resolve.

Table output only fetches object metadata. Use -o json or -o yaml for full
objects.`,
		Example: `  kubex get pods
  kubex get deploy,svc -n web
  kubex get nodes -o name
  kubex get pods -A -w`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: a.completeResourceTokens,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGet(cmd, splitTokens(args), o)
		},
	}

	cmd.Flags().BoolVarP(&o.allNamespaces, "all-namespaces", "A", false, "List objects across all namespaces")
	cmd.Flags().StringVarP(&o.selector, "selector", "l", "", "Label selector to filter on")
	cmd.Flags().StringVarP(&o.output, "output", "o", outputTable, "Output format: table, name, json or yaml")
	cmd.Flags().BoolVarP(&o.watch, "watch", "w", false, "Watch for changes after listing (single resource only)")

	return cmd
}

func (a *app) runGet(cmd *cobra.Command, tokens []string, o getOptions) error {
	if err := validateOutput(o.output, outputTable, outputName, outputJSON, outputYAML); err != nil {
		return err
	}

	s, err := a.connect()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	descriptors, err := a.discoverer.ResolveRequestedResources(ctx, tokens, s.kubeContext, s.live)
	if err != nil {
		return resolutionError(err)
	}
	for _, d := range descriptors {
		if !d.SupportsVerb("list") {
			return apperrors.NewResolutionError(fmt.Sprintf("resource %s does not support list", d.QualifiedName()), nil)
		}
	}
	if o.watch && len(descriptors) != 1 {
		return apperrors.NewResolutionError("--watch requires exactly one resource", nil)
	}

	opts := resources.ListOptions{LabelSelector: o.selector}
	if !o.allNamespaces {
		opts.Namespace = a.reader.DetermineNamespace(a.cfg.Namespace, s.kubeContext)
	}

	client := a.resourceClient(s)
	w := cmd.OutOrStdout()

	if o.output == outputTable {
		lists, err := listMetadata(ctx, client, descriptors, opts)
		if err != nil {
			return err
		}
		if err := printMetadataTables(w, descriptors, lists, opts.Namespace, time.Now()); err != nil {
			return err
		}
	} else {
		lists, err := listObjects(ctx, client, descriptors, opts)
		if err != nil {
			return err
		}
		if err := printObjects(w, o.output, descriptors, lists); err != nil {
			return err
		}
	}

	if o.watch {
		return watchResource(ctx, w, client.For(descriptors[0]), descriptors[0].QualifiedName(), opts)
	}
	return nil
}

// listObjects fetches every page of every resource, at most
// MaxConcurrentLists at a time. Results keep the order of descriptors.
func listObjects(ctx context.Context, client *resources.Client, descriptors []discovery.Descriptor, opts resources.ListOptions) ([][]unstructured.Unstructured, error) {
	results := make([][]unstructured.Unstructured, len(descriptors))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.MaxConcurrentLists)
	for i, d := range descriptors {
		g.Go(func() error {
			pageOpts := opts
			for {
				list, err := client.For(d).List(gctx, pageOpts)
				if err != nil {
					return remoteError(fmt.Sprintf("failed to list %s", d.QualifiedName()), err)
				}
				results[i] = append(results[i], list.Items...)
				if list.GetContinue() == "" {
					return nil
				}
				pageOpts.Continue = list.GetContinue()
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func listMetadata(ctx context.Context, client *resources.Client, descriptors []discovery.Descriptor, opts resources.ListOptions) ([][]metav1.PartialObjectMetadata, error) {
	results := make([][]metav1.PartialObjectMetadata, len(descriptors))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.MaxConcurrentLists)
	for i, d := range descriptors {
		g.Go(func() error {
			pageOpts := opts
			for {
				list, err := client.For(d).ListMetadata(gctx, pageOpts)
				if err != nil {
					return remoteError(fmt.Sprintf("failed to list %s", d.QualifiedName()), err)
				}
				results[i] = append(results[i], list.Items...)
				if list.Continue == "" {
					return nil
				}
				pageOpts.Continue = list.Continue
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// remoteError reports failures the retry policy would have retried as
// network errors and everything else as API errors.
func remoteError(message string, err error) error {
	if retry.DefaultClassifier(err) {
		return apperrors.NewNetworkError(message, err)
	}
	return apperrors.NewRemoteError(message, err)
}

func printMetadataTables(w io.Writer, descriptors []discovery.Descriptor, lists [][]metav1.PartialObjectMetadata, namespace string, now time.Time) error {
	for i, d := range descriptors {
		if len(descriptors) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, headerStyle.Render(d.QualifiedName()))
		}

		items := lists[i]
		if len(items) == 0 {
			fmt.Fprintln(w, dimStyle.Render(noResourcesMessage(d, namespace)))
			continue
		}

		showNamespace := d.Namespaced && namespace == ""
		headers := []string{"NAME", "AGE"}
		if showNamespace {
			headers = []string{"NAMESPACE", "NAME", "AGE"}
		}

		typeMeta := metav1.TypeMeta{Kind: d.Kind, APIVersion: d.APIVersion()}
		rows := make([][]string, 0, len(items))
		for j := range items {
			info := resources.NewResourceInfo(typeMeta, &items[j], now)
			if showNamespace {
				rows = append(rows, []string{info.Namespace, info.Name, info.Age})
			} else {
				rows = append(rows, []string{info.Name, info.Age})
			}
		}
		if err := renderTable(w, headers, rows); err != nil {
			return err
		}
	}
	return nil
}

func noResourcesMessage(d discovery.Descriptor, namespace string) string {
	if d.Namespaced && namespace != "" {
		return fmt.Sprintf("No %s found in %s namespace.", d.Name, namespace)
	}
	return fmt.Sprintf("No %s found.", d.Name)
}

func printObjects(w io.Writer, format string, descriptors []discovery.Descriptor, lists [][]unstructured.Unstructured) error {
	all := &unstructured.UnstructuredList{Object: map[string]any{
		"apiVersion": "v1",
		"kind":       "List",
		"metadata":   map[string]any{"resourceVersion": ""},
	}}
	for i, d := range descriptors {
		for _, item := range lists[i] {
			if item.GetKind() == "" {
				item.SetGroupVersionKind(d.GroupVersionKind())
			}
			all.Items = append(all.Items, item)
		}
	}

	switch format {
	case outputName:
		printer := &printers.NamePrinter{}
		for i := range all.Items {
			if err := printer.PrintObj(&all.Items[i], w); err != nil {
				return err
			}
		}
		return nil
	case outputJSON:
		return (&printers.JSONPrinter{}).PrintObj(all, w)
	default:
		return (&printers.YAMLPrinter{}).PrintObj(all, w)
	}
}

// watchResource prints one line per change until ctx ends or the server
// closes the watch.
func watchResource(ctx context.Context, w io.Writer, r resources.ResourceClient, resource string, opts resources.ListOptions) error {
	watcher, err := r.Watch(ctx, opts)
	if err != nil {
		return remoteError("failed to watch "+resource, err)
	}
	defer watcher.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.ResultChan():
			if !ok {
				return nil
			}
			if event.Type == watch.Error {
				return apperrors.NewRemoteError("watch failed", apierrors.FromObject(event.Object))
			}

			accessor, err := meta.Accessor(event.Object)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrorInternal, "unexpected watch object", err)
			}
			name := accessor.GetName()
			if ns := accessor.GetNamespace(); ns != "" {
				name = ns + "/" + name
			}
			fmt.Fprintf(w, "%-10s %s\n", event.Type, name)
		}
	}
}
