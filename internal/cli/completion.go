package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/katyella/kubex/internal/k8s/discovery"
)

// completeResourceTokens offers resource names from the discovery cache of
// the current context. It never contacts the server, so stale or missing
// caches just yield fewer suggestions.
func (a *app) completeResourceTokens(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if err := a.load(cmd); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	kubeContext, err := a.reader.DetermineContext(a.cfg.Context)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	path, err := a.discoverer.CachePathFor(kubeContext)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	descriptors, err := discovery.ResolveFromCacheOnly(discovery.All(), path, 0)
	if err != nil {
		a.logger.Debug("no completion candidates", "path", path, "error", err)
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	prefix := toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[i+1:]
	}
	head := toComplete[:len(toComplete)-len(prefix)]

	seen := make(map[string]bool)
	var candidates []string
	for _, d := range descriptors {
		names := []string{d.Name, d.QualifiedName()}
		if d.SingularName != "" {
			names = append(names, d.SingularName)
		}
		names = append(names, d.ShortNames...)
		for _, name := range names {
			if seen[name] || !strings.HasPrefix(name, prefix) {
				continue
			}
			seen[name] = true
			candidates = append(candidates, head+name+"\t"+d.Kind+" ("+d.APIVersion()+")")
		}
	}
	return candidates, cobra.ShellCompDirectiveNoFileComp
}

// completeContexts offers kubeconfig contexts, current one first.
func (a *app) completeContexts(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if err := a.load(cmd); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	contexts, err := a.reader.Contexts()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var candidates []string
	for _, c := range contexts {
		if !strings.HasPrefix(c.Name, toComplete) {
			continue
		}
		if desc := c.Description(); desc != "" {
			candidates = append(candidates, c.Name+"\t"+desc)
		} else {
			candidates = append(candidates, c.Name)
		}
	}
	return candidates, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveKeepOrder
}
