// Package weather runs the garden's rain cycle. It knows nothing about
// sessions; readers see only whether it is raining.
package weather

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"
)

// Config shapes the cycle: wait a random time in [MinWait, MaxWait], then
// start rain with probability RainChance for a random time in
// [MinRain, MaxRain], then wait again.
type Config struct {
	MinWait    time.Duration
	MaxWait    time.Duration
	RainChance float64
	MinRain    time.Duration
	MaxRain    time.Duration
}

func DefaultConfig() Config {
	return Config{
		MinWait:    time.Minute,
		MaxWait:    5 * time.Minute,
		RainChance: 0.3,
		MinRain:    30 * time.Second,
		MaxRain:    90 * time.Second,
	}
}

type Scheduler struct {
	cfg     Config
	random  func() float64
	after   func(time.Duration) <-chan time.Time
	logger  *slog.Logger
	raining atomic.Bool
}

type Option func(*Scheduler)

func WithConfig(cfg Config) Option {
	return func(s *Scheduler) { s.cfg = cfg }
}

// WithRandom replaces the source of uniform values in [0, 1).
func WithRandom(f func() float64) Option {
	return func(s *Scheduler) {
		if f != nil {
			s.random = f
		}
	}
}

// WithTimer replaces time.After.
func WithTimer(after func(time.Duration) <-chan time.Time) Option {
	return func(s *Scheduler) {
		if after != nil {
			s.after = after
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		cfg:    DefaultConfig(),
		random: rand.Float64,
		after:  time.After,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Raining reports whether rain is falling right now.
func (s *Scheduler) Raining() bool {
	return s.raining.Load()
}

// Start runs the cycle in a new goroutine until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	go func() { _ = s.Run(ctx) }()
}

// Run drives the cycle until ctx is done, then stops any rain and returns
// ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	defer s.setRaining(ctx, false)
	for {
		if !s.sleep(ctx, s.between(s.cfg.MinWait, s.cfg.MaxWait)) {
			return ctx.Err()
		}
		if s.random() >= s.cfg.RainChance {
			continue
		}

		s.setRaining(ctx, true)
		if !s.sleep(ctx, s.between(s.cfg.MinRain, s.cfg.MaxRain)) {
			return ctx.Err()
		}
		s.setRaining(ctx, false)
	}
}

func (s *Scheduler) between(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(float64(hi-lo)*s.random())
}

func (s *Scheduler) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-s.after(d):
		return true
	}
}

func (s *Scheduler) setRaining(ctx context.Context, on bool) {
	if s.raining.Swap(on) == on {
		return
	}
	if on {
		s.logger.DebugContext(ctx, "it's starting to rain")
	} else {
		s.logger.DebugContext(ctx, "the rain is stopping")
	}
}
