package discovery

import (
	"fmt"
	"strings"
	"time"
)

// CacheUnreadableError is returned by strict loads when the cache file is
// missing or cannot be decoded.
type CacheUnreadableError struct {
	Path string
	Err  error
}

func (e *CacheUnreadableError) Error() string {
	return fmt.Sprintf("discovery cache %s is unreadable: %v", e.Path, e.Err)
}

func (e *CacheUnreadableError) Unwrap() error {
	return e.Err
}

// CacheExpiredError is returned when a cache-only lookup finds a snapshot
// older than the allowed ttl.
type CacheExpiredError struct {
	Path string
	Age  time.Duration
	TTL  time.Duration
}

func (e *CacheExpiredError) Error() string {
	return fmt.Sprintf("discovery cache %s expired: age %s exceeds ttl %s",
		e.Path, e.Age.Round(time.Second), e.TTL)
}

// CachePersistError reports a failed cache save.
type CachePersistError struct {
	Path string
	Err  error
}

func (e *CachePersistError) Error() string {
	return fmt.Sprintf("failed to write discovery cache %s: %v", e.Path, e.Err)
}

func (e *CachePersistError) Unwrap() error {
	return e.Err
}

// UnresolvedResourcesError lists the tokens that matched no resource when
// every token was required. Tokens are sorted and de-duplicated.
type UnresolvedResourcesError struct {
	Tokens []string
}

func (e *UnresolvedResourcesError) Error() string {
	return fmt.Sprintf("the server doesn't have a resource type %s", quoteJoin(e.Tokens))
}

// NoResourcesResolvedError is returned when none of the tokens of an
// any-of request matched.
type NoResourcesResolvedError struct {
	Tokens []string
}

func (e *NoResourcesResolvedError) Error() string {
	return fmt.Sprintf("none of the requested resource types were found: %s", quoteJoin(e.Tokens))
}

func quoteJoin(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return strings.Join(quoted, ", ")
}
