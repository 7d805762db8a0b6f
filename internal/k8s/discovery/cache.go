package discovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"k8s.io/utils/clock"

	"github.com/katyella/kubex/internal/constants"
)

// CacheFile is the on-disk discovery snapshot of one context.
type CacheFile struct {
	UpdatedAt time.Time    `json:"updated_at"`
	Resources []Descriptor `json:"resources"`
}

// Age returns how long ago the snapshot was taken.
func (c *CacheFile) Age(now time.Time) time.Duration {
	return now.Sub(c.UpdatedAt)
}

// IsFresh reports whether the snapshot is younger than ttl. A ttl of zero
// or less disables expiry.
func (c *CacheFile) IsFresh(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return true
	}
	return c.Age(now) <= ttl
}

// Store reads and writes discovery cache files.
type Store struct {
	clock clock.PassiveClock
}

// NewStore returns a Store timestamping and aging snapshots with c.
// A nil clock uses the wall clock.
func NewStore(c clock.PassiveClock) *Store {
	if c == nil {
		c = clock.RealClock{}
	}
	return &Store{clock: c}
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// Load reads the cache at path. Missing or corrupt files are reported as
// absent rather than as errors.
func (s *Store) Load(path string) (*CacheFile, bool) {
	cache, err := s.LoadStrict(path)
	if err != nil {
		return nil, false
	}
	return cache, true
}

// LoadStrict reads the cache at path and reports why it could not be used.
func (s *Store) LoadStrict(path string) (*CacheFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CacheUnreadableError{Path: path, Err: err}
	}

	var cache CacheFile
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, &CacheUnreadableError{Path: path, Err: fmt.Errorf("failed to parse: %w", err)}
	}
	if cache.UpdatedAt.IsZero() {
		return nil, &CacheUnreadableError{Path: path, Err: errors.New("missing updated_at timestamp")}
	}
	return &cache, nil
}

// Save replaces the cache at path with resources stamped with the current
// time. Readers never observe a partially written file.
func (s *Store) Save(path string, resources []Descriptor) error {
	if resources == nil {
		resources = []Descriptor{}
	}
	data, err := json.Marshal(CacheFile{UpdatedAt: s.clock.Now().UTC(), Resources: resources})
	if err != nil {
		return &CachePersistError{Path: path, Err: err}
	}

	if err := writeFileAtomic(path, data); err != nil {
		return &CachePersistError{Path: path, Err: err}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DiscoveryCacheDirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpName, constants.DiscoveryCacheFilePermissions); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// DefaultCacheDir returns <user config dir>/kubex.
func DefaultCacheDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", constants.ErrNoConfigDir, err)
	}
	return filepath.Join(configDir, constants.AppName), nil
}

// CachePath returns the cache file for kubeContext inside dir.
func CachePath(dir, kubeContext string) string {
	return filepath.Join(dir, SanitizeContextName(kubeContext)+constants.DiscoveryCacheExt)
}

// SanitizeContextName turns a context name into a safe file name by
// replacing every rune outside [A-Za-z0-9_-] with '_'.
func SanitizeContextName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
