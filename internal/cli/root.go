package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/katyella/kubex/internal/config"
	"github.com/katyella/kubex/internal/constants"
	apperrors "github.com/katyella/kubex/internal/errors"
	"github.com/katyella/kubex/internal/metrics"
)

// NewRootCmd builds the kubex command tree.
func NewRootCmd(opts Options) *cobra.Command {
	return newRootCmd(newApp(opts))
}

func newRootCmd(a *app) *cobra.Command {
	opts := a.opts
	rootCmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "kubex - resolve and query Kubernetes resources by name",
		Long: `kubex resolves plural, singular and short resource names against the API
server's discovery data, caching it per context so repeated lookups and shell
completion work without a round trip.`,
		Version:       opts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	rootCmd.SetOut(opts.Out)
	rootCmd.SetErr(opts.ErrOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Path to config file (defaults to <user config dir>/kubex/config.yaml)")
	flags.String(config.KeyKubeconfig, "", "Path to kubeconfig file (defaults to $KUBECONFIG or $HOME/.kube/config)")
	flags.String(config.KeyContext, "", "Kubeconfig context to use (defaults to the current context)")
	flags.StringP(config.KeyNamespace, "n", "", "Namespace to use (defaults to the context namespace)")
	flags.BoolP(config.KeyDebug, "d", false, "Enable debug logging on stderr")
	flags.String(config.KeyMetricsFile, "", "Write Prometheus metrics to this file on exit")

	for _, key := range []string{
		config.KeyKubeconfig,
		config.KeyContext,
		config.KeyNamespace,
		config.KeyDebug,
		config.KeyMetricsFile,
	} {
		_ = a.viper.BindPFlag(key, flags.Lookup(key))
	}

	_ = rootCmd.RegisterFlagCompletionFunc(config.KeyContext, a.completeContexts)

	rootCmd.AddCommand(
		newAPIResourcesCmd(a),
		newResolveCmd(a),
		newGetCmd(a),
		newContextCmd(a),
		newVersionCmd(a),
	)

	return rootCmd
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, opts Options, args []string) int {
	a := newApp(opts)
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)

	if a.cfg != nil && a.cfg.MetricsFile != "" {
		if writeErr := metrics.WriteTextfile(a.cfg.MetricsFile); writeErr != nil {
			a.logger.Warn("failed to write metrics file", "path", a.cfg.MetricsFile, "error", writeErr)
		}
	}

	if err != nil {
		printError(rootCmd, err)
		return 1
	}
	return 0
}

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(constants.ColorRed)).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(constants.ColorDimGray))
)

func printError(cmd *cobra.Command, err error) {
	w := cmd.ErrOrStderr()

	appErr, ok := apperrors.As(err)
	if !ok {
		fmt.Fprintln(w, errorStyle.Render("Error:"), err)
		return
	}

	fmt.Fprintln(w, errorStyle.Render(appErr.GetTypeString()+":"), appErr.Error())
	if appErr.IsRecoverable() {
		fmt.Fprintln(w, hintStyle.Render("The cluster may be temporarily unavailable. Retry later or use --debug for details."))
	}
}
