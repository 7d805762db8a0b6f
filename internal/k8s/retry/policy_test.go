package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicy(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	n, finite := p.Limit().Max()
	assert.True(t, finite)
	assert.Equal(t, 5, n)
	assert.Equal(t, 200*time.Millisecond, p.InitialBackoff())
	assert.Equal(t, 5*time.Second, p.MaxBackoff())
	assert.InDelta(t, 2.0, p.Multiplier(), 0.0001)
}

func TestNextBackoffSequence(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	want := []time.Duration{
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1600 * time.Millisecond,
		3200 * time.Millisecond,
		5 * time.Second,
		5 * time.Second,
	}

	got := make([]time.Duration, 0, len(want))
	backoff := p.InitialBackoff()
	for range want {
		got = append(got, backoff)
		backoff = p.NextBackoff(backoff)
	}
	assert.Equal(t, want, got)
}

func TestNewPolicyClampsValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		opts           []Option
		wantMultiplier float64
		wantInitial    time.Duration
	}{
		{
			name:           "multiplier below one is clamped",
			opts:           []Option{WithMultiplier(0.5)},
			wantMultiplier: 1.0,
			wantInitial:    200 * time.Millisecond,
		},
		{
			name:           "initial backoff is capped at max",
			opts:           []Option{WithInitialBackoff(10 * time.Second), WithMaxBackoff(time.Second)},
			wantMultiplier: 2.0,
			wantInitial:    time.Second,
		},
		{
			name:           "negative initial backoff becomes zero",
			opts:           []Option{WithInitialBackoff(-time.Second)},
			wantMultiplier: 2.0,
			wantInitial:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewPolicy(tt.opts...)
			assert.InDelta(t, tt.wantMultiplier, p.Multiplier(), 0.0001)
			assert.Equal(t, tt.wantInitial, p.InitialBackoff())
		})
	}
}

func TestClampedMultiplierKeepsBackoffConstant(t *testing.T) {
	t.Parallel()

	p := NewPolicy(WithMultiplier(0.1), WithInitialBackoff(300*time.Millisecond))
	assert.Equal(t, 300*time.Millisecond, p.NextBackoff(p.InitialBackoff()))
}

func TestLimit(t *testing.T) {
	t.Parallel()

	assert.True(t, Unlimited().IsUnlimited())
	assert.False(t, Unlimited().exhausted(1_000_000))
	assert.Equal(t, "unlimited", Unlimited().String())

	three := Attempts(3)
	assert.False(t, three.IsUnlimited())
	assert.False(t, three.exhausted(2))
	assert.True(t, three.exhausted(3))
	assert.Equal(t, "3", three.String())

	n, finite := Attempts(0).Max()
	assert.True(t, finite)
	assert.Equal(t, 1, n)
}

func TestZeroPolicyIsUsable(t *testing.T) {
	t.Parallel()

	p := Policy{}.normalize()
	assert.True(t, p.Limit().IsUnlimited())
	assert.NotNil(t, p.Classifier())
	assert.InDelta(t, 1.0, p.Multiplier(), 0.0001)
}
