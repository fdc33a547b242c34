// Package limits bounds the resources a single parse may consume.
package limits

import (
	"errors"
	"fmt"
)

var (
	// ErrLimit is the common sentinel wrapped by every specific limit error.
	ErrLimit = errors.New("limit exceeded")

	ErrDepth     = fmt.Errorf("%w: nesting depth", ErrLimit)
	ErrSize      = fmt.Errorf("%w: input size", ErrLimit)
	ErrStringLen = fmt.Errorf("%w: string length", ErrLimit)
	ErrEntries   = fmt.Errorf("%w: container entries", ErrLimit)
)

// Config caps nesting depth, total input size, per-string length and
// per-container entry counts. Zero values fall back to the defaults.
type Config struct {
	MaxDepth     int
	MaxSize      int
	MaxStringLen int
	MaxEntries   int
}

const (
	DefaultMaxDepth     = 128
	DefaultMaxSize      = 10 << 20
	DefaultMaxStringLen = 1 << 20
	DefaultMaxEntries   = 10000
)

// Default returns the shipped limit configuration.
func Default() *Config {
	return &Config{
		MaxDepth:     DefaultMaxDepth,
		MaxSize:      DefaultMaxSize,
		MaxStringLen: DefaultMaxStringLen,
		MaxEntries:   DefaultMaxEntries,
	}
}

func (c *Config) norm() Config {
	res := *c
	if res.MaxDepth == 0 {
		res.MaxDepth = DefaultMaxDepth
	}
	if res.MaxSize == 0 {
		res.MaxSize = DefaultMaxSize
	}
	if res.MaxStringLen == 0 {
		res.MaxStringLen = DefaultMaxStringLen
	}
	if res.MaxEntries == 0 {
		res.MaxEntries = DefaultMaxEntries
	}
	return res
}

// Guard counts resource use during a single parse against a Config.
// It does no I/O; parsers must check every call's result and stop at
// the first violation.
type Guard struct {
	cfg   Config
	depth int
}

func NewGuard(cfg *Config) *Guard {
	if cfg == nil {
		cfg = Default()
	}
	return &Guard{cfg: cfg.norm()}
}

func (g *Guard) Config() Config {
	return g.cfg
}

// EnterDepth records descent into a container. It must be called before
// recursing, never after.
func (g *Guard) EnterDepth() error {
	if g.depth >= g.cfg.MaxDepth {
		return fmt.Errorf("%w (max %d)", ErrDepth, g.cfg.MaxDepth)
	}
	g.depth++
	return nil
}

func (g *Guard) ExitDepth() {
	if g.depth > 0 {
		g.depth--
	}
}

// CheckSize verifies a total input size up front.
func (g *Guard) CheckSize(n int) error {
	if n > g.cfg.MaxSize {
		return fmt.Errorf("%w (%d > max %d)", ErrSize, n, g.cfg.MaxSize)
	}
	return nil
}

// AddString checks a single decoded string's length.
func (g *Guard) AddString(n int) error {
	if n > g.cfg.MaxStringLen {
		return fmt.Errorf("%w (max %d)", ErrStringLen, g.cfg.MaxStringLen)
	}
	return nil
}

// AddEntry records one entry in a container holding n so far.
func (g *Guard) AddEntry(n int) error {
	if n >= g.cfg.MaxEntries {
		return fmt.Errorf("%w (max %d)", ErrEntries, g.cfg.MaxEntries)
	}
	return nil
}
