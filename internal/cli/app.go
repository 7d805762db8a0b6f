// Package cli implements the kubex command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	clientdiscovery "k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/metadata"

	"github.com/katyella/kubex/internal/config"
	"github.com/katyella/kubex/internal/k8s"
	"github.com/katyella/kubex/internal/k8s/discovery"
	"github.com/katyella/kubex/internal/k8s/kubeconfig"
	"github.com/katyella/kubex/internal/k8s/resources"
	"github.com/katyella/kubex/internal/logging"
)

// Clients are the API clients commands use for one context.
type Clients struct {
	Host      string
	Discovery clientdiscovery.DiscoveryInterface
	Dynamic   dynamic.Interface
	Metadata  metadata.Interface
}

// ClientsFunc builds Clients for kubeContext.
type ClientsFunc func(reader *kubeconfig.Reader, kubeContext string) (*Clients, error)

// NewClusterClients builds Clients from the kubeconfig.
func NewClusterClients(reader *kubeconfig.Reader, kubeContext string) (*Clients, error) {
	factory := k8s.NewClientFactory(reader)
	if err := factory.Initialize(kubeContext); err != nil {
		return nil, err
	}
	return &Clients{
		Host:      factory.GetConfig().Host,
		Discovery: factory.Discovery(),
		Dynamic:   factory.Dynamic(),
		Metadata:  factory.Metadata(),
	}, nil
}

// Options configures the command tree.
type Options struct {
	Out     io.Writer
	ErrOut  io.Writer
	Clients ClientsFunc
	Version string
}

// app is the state shared by every command of one invocation.
type app struct {
	opts       Options
	viper      *viper.Viper
	configFile string

	cfg        *config.Config
	logger     *slog.Logger
	reader     *kubeconfig.Reader
	discoverer *discovery.Discoverer
}

func newApp(opts Options) *app {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	if opts.Clients == nil {
		opts.Clients = NewClusterClients
	}
	return &app{opts: opts, viper: config.New()}
}

// load reads configuration once. Completion functions call it directly
// because cobra skips the persistent hooks for them.
func (a *app) load(cmd *cobra.Command) error {
	if a.cfg != nil {
		return nil
	}

	cfg, err := config.Load(a.viper, a.configFile)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.SetupLogger(a.opts.ErrOut, cfg.Debug)
	a.reader = kubeconfig.NewReader(cfg.Kubeconfig)
	a.discoverer = discovery.NewDiscoverer(cfg.DiscovererOptions()...)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.IntoContext(ctx, a.logger))

	a.logger.Debug("configuration loaded",
		"kubeconfig", a.reader.Path(),
		"retry", cfg.RetryPolicy().String(),
		"cacheTTL", cfg.Discovery.CacheTTL)
	return nil
}

// session is a resolved context with its clients.
type session struct {
	kubeContext string
	clients     *Clients
	live        discovery.LiveDiscoverFunc
}

func (a *app) connect() (*session, error) {
	kubeContext, err := a.reader.DetermineContext(a.cfg.Context)
	if err != nil {
		return nil, err
	}

	clients, err := a.opts.Clients(a.reader, kubeContext)
	if err != nil {
		return nil, fmt.Errorf("failed to create clients for context %q: %w", kubeContext, err)
	}

	live := discovery.NewLiveDiscoverer(clients.Discovery, a.cfg.RetryPolicy())
	return &session{kubeContext: kubeContext, clients: clients, live: live.Discover}, nil
}

func (a *app) resourceClient(s *session) *resources.Client {
	return resources.NewClient(s.clients.Dynamic, s.clients.Metadata, a.cfg.RetryPolicy())
}
