package kdtree

import (
	"fmt"
	"math"
	"runtime"
)

// Ownership selects whether an index borrows the caller's point storage or
// keeps its own copy.
type Ownership int

const (
	// Borrowed indexes the caller's storage in place. The caller must keep it
	// unchanged until the next rebuild.
	Borrowed Ownership = iota

	// Copied snapshots the points on every build.
	Copied
)

func (o Ownership) String() string {
	switch o {
	case Borrowed:
		return "borrowed"
	case Copied:
		return "copied"
	default:
		return fmt.Sprintf("Ownership(%d)", int(o))
	}
}

// DefaultLeafSize is the leaf size used when Config.LeafSize is zero.
const DefaultLeafSize = 10

// Config controls index construction and querying.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// LeafSize is the maximum number of points stored in a leaf. Smaller
	// leaves make deeper trees with tighter pruning. Must be >= 1. Default: 10.
	LeafSize int

	// Dims fixes the dimensionality of indexed points and query targets.
	// 0 means it is taken from the first non-empty point set. Must be >= 0.
	Dims int

	// Metric is the distance used by every query.
	// Built-in: EuclideanMetric, ManhattanMetric, ChebyshevMetric,
	// MinkowskiMetric. Default: EuclideanMetric.
	Metric DistanceMetric

	// Ownership chooses between borrowing the caller's points and copying
	// them on every build. Default: Borrowed.
	Ownership Ownership

	// Workers bounds the goroutines used by batch queries. 0 means
	// runtime.NumCPU(). 1 runs batches sequentially.
	Workers int

	// Logger receives build and query diagnostics. Default: NoopLogger().
	Logger *Logger
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		LeafSize: DefaultLeafSize,
		Metric:   EuclideanMetric{},
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.LeafSize == 0 {
		cfg.LeafSize = DefaultLeafSize
	}
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = NoopLogger()
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if cfg.LeafSize < 1 {
		return fmt.Errorf("kdtree: LeafSize must be >= 1, got %d", cfg.LeafSize)
	}
	if cfg.Dims < 0 {
		return fmt.Errorf("kdtree: Dims must be >= 0, got %d", cfg.Dims)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("kdtree: Workers must be >= 0, got %d", cfg.Workers)
	}
	switch cfg.Ownership {
	case Borrowed, Copied:
	default:
		return fmt.Errorf("kdtree: invalid Ownership %v", cfg.Ownership)
	}
	var p float64
	switch m := cfg.Metric.(type) {
	case MinkowskiMetric:
		p = m.P
	case *MinkowskiMetric:
		if m == nil {
			return fmt.Errorf("kdtree: Metric is a nil *MinkowskiMetric")
		}
		p = m.P
	default:
		return nil
	}
	if !(p >= 1) || math.IsInf(p, 1) {
		return fmt.Errorf("kdtree: MinkowskiMetric.P must be finite and >= 1, got %v", p)
	}
	return nil
}
