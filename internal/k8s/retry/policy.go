package retry

import (
	"fmt"
	"time"

	"k8s.io/utils/clock"

	"github.com/katyella/kubex/internal/constants"
)

// Limit bounds the number of attempts, counting the first call.
// The zero value is unlimited.
type Limit struct {
	attempts int
}

// Unlimited returns a Limit that never exhausts.
func Unlimited() Limit {
	return Limit{}
}

// Attempts returns a Limit of n total attempts. Values below 1 are raised to 1.
func Attempts(n int) Limit {
	if n < 1 {
		n = 1
	}
	return Limit{attempts: n}
}

// IsUnlimited reports whether the limit never exhausts.
func (l Limit) IsUnlimited() bool {
	return l.attempts == 0
}

// Max returns the attempt count and false for unlimited limits.
func (l Limit) Max() (int, bool) {
	return l.attempts, l.attempts != 0
}

// exhausted reports whether no attempt may follow attempt number n.
func (l Limit) exhausted(n int) bool {
	return l.attempts != 0 && n >= l.attempts
}

func (l Limit) String() string {
	if l.IsUnlimited() {
		return "unlimited"
	}
	return fmt.Sprintf("%d", l.attempts)
}

// Policy describes how failed operations are retried.
type Policy struct {
	limit          Limit
	initialBackoff time.Duration
	maxBackoff     time.Duration
	multiplier     float64
	classifier     Classifier
	clock          clock.Clock
}

// Option configures a Policy.
type Option func(*Policy)

// WithLimit sets the attempt limit.
func WithLimit(limit Limit) Option {
	return func(p *Policy) {
		p.limit = limit
	}
}

// WithMaxAttempts limits the policy to n total attempts.
func WithMaxAttempts(n int) Option {
	return WithLimit(Attempts(n))
}

// WithUnlimitedAttempts retries retryable failures forever.
func WithUnlimitedAttempts() Option {
	return WithLimit(Unlimited())
}

// WithInitialBackoff sets the wait after the first failure.
func WithInitialBackoff(d time.Duration) Option {
	return func(p *Policy) {
		p.initialBackoff = d
	}
}

// WithMaxBackoff caps every wait.
func WithMaxBackoff(d time.Duration) Option {
	return func(p *Policy) {
		p.maxBackoff = d
	}
}

// WithMultiplier sets the backoff growth factor. Values below 1.0 are clamped.
func WithMultiplier(m float64) Option {
	return func(p *Policy) {
		p.multiplier = m
	}
}

// WithClassifier replaces DefaultClassifier.
func WithClassifier(c Classifier) Option {
	return func(p *Policy) {
		p.classifier = c
	}
}

// WithClock sets the clock used for backoff waits.
func WithClock(c clock.Clock) Option {
	return func(p *Policy) {
		p.clock = c
	}
}

// NewPolicy builds a Policy from DefaultPolicy with opts applied.
func NewPolicy(opts ...Option) Policy {
	p := DefaultPolicy()
	for _, opt := range opts {
		opt(&p)
	}
	return p.normalize()
}

// normalize clamps out-of-range values so the zero Policy is usable.
func (p Policy) normalize() Policy {
	if p.multiplier < constants.MinBackoffMultiplier {
		p.multiplier = constants.MinBackoffMultiplier
	}
	if p.initialBackoff < 0 {
		p.initialBackoff = 0
	}
	if p.maxBackoff < 0 {
		p.maxBackoff = 0
	}
	if p.classifier == nil {
		p.classifier = DefaultClassifier
	}
	if p.clock == nil {
		p.clock = clock.RealClock{}
	}
	return p
}

// DefaultPolicy allows 5 attempts with waits of 200ms doubling up to 5s.
func DefaultPolicy() Policy {
	return Policy{
		limit:          Attempts(constants.DefaultRetryAttempts),
		initialBackoff: constants.DefaultInitialBackoff,
		maxBackoff:     constants.DefaultMaxBackoff,
		multiplier:     constants.DefaultBackoffMultiplier,
		classifier:     DefaultClassifier,
		clock:          clock.RealClock{},
	}
}

// Limit returns the attempt limit.
func (p Policy) Limit() Limit {
	return p.limit
}

// InitialBackoff returns the first wait, already capped at MaxBackoff.
func (p Policy) InitialBackoff() time.Duration {
	return min(p.initialBackoff, p.maxBackoff)
}

// MaxBackoff returns the cap applied to every wait.
func (p Policy) MaxBackoff() time.Duration {
	return p.maxBackoff
}

// Multiplier returns the backoff growth factor.
func (p Policy) Multiplier() float64 {
	return p.multiplier
}

// Classifier returns the function deciding whether a failure is retried.
func (p Policy) Classifier() Classifier {
	return p.classifier
}

// NextBackoff returns the wait that follows current.
func (p Policy) NextBackoff(current time.Duration) time.Duration {
	next := float64(current) * p.multiplier
	if next >= float64(p.maxBackoff) {
		return p.maxBackoff
	}
	return time.Duration(next)
}

func (p Policy) String() string {
	return fmt.Sprintf("attempts=%s initial=%s max=%s multiplier=%g",
		p.limit, p.initialBackoff, p.maxBackoff, p.multiplier)
}
