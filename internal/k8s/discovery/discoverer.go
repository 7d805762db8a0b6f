package discovery

import (
	"context"
	"time"

	"github.com/katyella/kubex/internal/constants"
	apperrors "github.com/katyella/kubex/internal/errors"
	"github.com/katyella/kubex/internal/logging"
	"github.com/katyella/kubex/internal/metrics"
)

// LiveDiscoverFunc fetches the current resource list from the API server.
type LiveDiscoverFunc func(ctx context.Context) ([]Descriptor, error)

// Discoverer resolves resource tokens against the cached or live resource
// list of a context.
type Discoverer struct {
	store    *Store
	cacheDir string
	ttl      time.Duration
}

// DiscovererOption configures a Discoverer.
type DiscovererOption func(*Discoverer)

// WithStore replaces the default wall-clock Store.
func WithStore(store *Store) DiscovererOption {
	return func(d *Discoverer) {
		d.store = store
	}
}

// WithCacheDir stores cache files in dir instead of DefaultCacheDir.
func WithCacheDir(dir string) DiscovererOption {
	return func(d *Discoverer) {
		d.cacheDir = dir
	}
}

// WithTTL sets how long a snapshot is served without live discovery.
func WithTTL(ttl time.Duration) DiscovererOption {
	return func(d *Discoverer) {
		d.ttl = ttl
	}
}

// NewDiscoverer returns a Discoverer with a ten minute ttl.
func NewDiscoverer(opts ...DiscovererOption) *Discoverer {
	d := &Discoverer{ttl: constants.DefaultDiscoveryCacheTTL}
	for _, opt := range opts {
		opt(d)
	}
	if d.store == nil {
		d.store = NewStore(nil)
	}
	return d
}

// TTL returns the freshness window of cached snapshots.
func (d *Discoverer) TTL() time.Duration {
	return d.ttl
}

// CachePathFor returns the cache file used for kubeContext.
func (d *Discoverer) CachePathFor(kubeContext string) (string, error) {
	dir := d.cacheDir
	if dir == "" {
		var err error
		if dir, err = DefaultCacheDir(); err != nil {
			return "", err
		}
	}
	return CachePath(dir, kubeContext), nil
}

// ResolveRequestedResources resolves every token in targets for kubeContext.
//
// A fresh snapshot that resolves all targets is used without contacting the
// server. Otherwise live runs and its result replaces the snapshot. When live
// fails, a stale snapshot is used if it resolves the targets; if not, the
// discovery error is returned.
func (d *Discoverer) ResolveRequestedResources(ctx context.Context, targets []string, kubeContext string, live LiveDiscoverFunc) ([]Descriptor, error) {
	if len(targets) == 0 {
		return []Descriptor{}, nil
	}

	logger := logging.FromContext(ctx).With("context", kubeContext)
	spec := AllOf(targets...)

	path, cached := d.loadCache(ctx, kubeContext)
	if cached != nil && cached.IsFresh(d.store.Now(), d.ttl) {
		if resolved, err := Resolve(spec, cached.Resources); err == nil {
			metrics.DiscoveryCacheLookups.WithLabelValues(metrics.CacheFreshHit).Inc()
			logger.Debug("resolved resources from discovery cache", "path", path)
			return resolved, nil
		}
		logger.Debug("discovery cache does not know every requested resource", "path", path)
	}

	descriptors, err := live(ctx)
	if err != nil {
		if cached != nil {
			if resolved, resolveErr := Resolve(spec, cached.Resources); resolveErr == nil {
				metrics.DiscoveryCacheLookups.WithLabelValues(metrics.CacheFallback).Inc()
				logger.Warn("live discovery failed, using stale discovery cache",
					"path", path, "age", cached.Age(d.store.Now()).Round(time.Second), "error", err)
				return resolved, nil
			}
		}
		return nil, apperrors.NewDiscoveryError(constants.ErrDiscoveryFailed, err).
			WithContext("context", kubeContext)
	}

	if cached != nil {
		metrics.DiscoveryCacheLookups.WithLabelValues(metrics.CacheStaleRefresh).Inc()
	} else {
		metrics.DiscoveryCacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
	}
	d.persist(ctx, path, descriptors)

	return Resolve(spec, descriptors)
}

// Refresh always runs live discovery for kubeContext and stores the result.
// If live fails and a snapshot exists, the snapshot is returned instead.
func (d *Discoverer) Refresh(ctx context.Context, kubeContext string, live LiveDiscoverFunc) ([]Descriptor, error) {
	logger := logging.FromContext(ctx).With("context", kubeContext)
	path, cached := d.loadCache(ctx, kubeContext)

	descriptors, err := live(ctx)
	if err != nil {
		if cached != nil {
			metrics.DiscoveryCacheLookups.WithLabelValues(metrics.CacheFallback).Inc()
			logger.Warn("live discovery failed, using stale discovery cache", "path", path, "error", err)
			return cached.Resources, nil
		}
		return nil, apperrors.NewDiscoveryError(constants.ErrDiscoveryFailed, err).
			WithContext("context", kubeContext)
	}

	d.persist(ctx, path, descriptors)
	return descriptors, nil
}

// ResolveFromCacheOnly resolves spec against the cache at cachePath without
// network access. A ttl above zero rejects older snapshots with
// *CacheExpiredError.
func (s *Store) ResolveFromCacheOnly(spec TargetSpec, cachePath string, ttl time.Duration) ([]Descriptor, error) {
	cache, err := s.LoadStrict(cachePath)
	if err != nil {
		return nil, err
	}
	if !cache.IsFresh(s.Now(), ttl) {
		return nil, &CacheExpiredError{Path: cachePath, Age: cache.Age(s.Now()), TTL: ttl}
	}
	return Resolve(spec, cache.Resources)
}

// ResolveFromCacheOnly is Store.ResolveFromCacheOnly on the wall clock.
func ResolveFromCacheOnly(spec TargetSpec, cachePath string, ttl time.Duration) ([]Descriptor, error) {
	return NewStore(nil).ResolveFromCacheOnly(spec, cachePath, ttl)
}

func (d *Discoverer) loadCache(ctx context.Context, kubeContext string) (string, *CacheFile) {
	path, err := d.CachePathFor(kubeContext)
	if err != nil {
		logging.FromContext(ctx).Debug("discovery cache disabled", "error", err)
		return "", nil
	}
	cached, ok := d.store.Load(path)
	if !ok {
		return path, nil
	}
	return path, cached
}

func (d *Discoverer) persist(ctx context.Context, path string, descriptors []Descriptor) {
	if path == "" {
		return
	}
	if err := d.store.Save(path, descriptors); err != nil {
		metrics.DiscoveryCacheWriteErrors.Inc()
		logging.FromContext(ctx).Warn("failed to update discovery cache", "error", err)
	}
}
