package matrix

import "sync"

// BoundsPolicy selects what At and Set do with an out-of-range index.
type BoundsPolicy int

const (
	// BoundsFail returns a BoundsError. This is the default.
	BoundsFail BoundsPolicy = iota
	// BoundsClamp clamps each index into range and emits a ClampWarning.
	// An empty matrix still fails.
	BoundsClamp
)

// String returns the policy name.
func (p BoundsPolicy) String() string {
	switch p {
	case BoundsFail:
		return "fail"
	case BoundsClamp:
		return "clamp"
	default:
		return "unknown"
	}
}

// Config holds process-wide settings for the matrix package.
type Config struct {
	// Bounds is the out-of-range policy for At and Set.
	Bounds BoundsPolicy
	// ParallelThreshold is the element count above which element-wise and
	// scalar kernels split work across goroutines. 0 disables splitting.
	ParallelThreshold int
	// DivisionEpsilon is the divisor magnitude at or below which DivScalar
	// treats a float divisor as zero.
	DivisionEpsilon float64
}

// Option is a function that configures Config
type Option func(*Config)

// WithBoundsPolicy sets the out-of-range policy
func WithBoundsPolicy(p BoundsPolicy) Option {
	return func(c *Config) {
		c.Bounds = p
	}
}

// WithParallelThreshold sets the element count above which kernels run in parallel
func WithParallelThreshold(n int) Option {
	return func(c *Config) {
		c.ParallelThreshold = n
	}
}

// WithDivisionEpsilon sets the near-zero divisor tolerance for DivScalar
func WithDivisionEpsilon(eps float64) Option {
	return func(c *Config) {
		c.DivisionEpsilon = eps
	}
}

// DefaultConfig returns the settings the package starts with.
func DefaultConfig() Config {
	return Config{
		Bounds:            BoundsFail,
		ParallelThreshold: 1 << 14,
		DivisionEpsilon:   0,
	}
}

var (
	configMu sync.RWMutex
	config   = DefaultConfig()
)

// Configure applies opts on top of the current settings and returns the
// settings that were in effect before, so callers can restore them:
//
//	defer matrix.SetConfig(matrix.Configure(matrix.WithBoundsPolicy(matrix.BoundsClamp)))
func Configure(opts ...Option) Config {
	configMu.Lock()
	defer configMu.Unlock()
	prev := config
	for _, opt := range opts {
		opt(&config)
	}
	return prev
}

// SetConfig replaces the current settings.
func SetConfig(c Config) {
	configMu.Lock()
	defer configMu.Unlock()
	config = c
}

// CurrentConfig returns a copy of the current settings.
func CurrentConfig() Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return config
}

// ResetConfig restores DefaultConfig.
func ResetConfig() {
	SetConfig(DefaultConfig())
}
