package app

import (
	"log/slog"
	"time"

	"github.com/thenoetrevino/tandem/internal/policy"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	policy policy.Policy
	logger *slog.Logger
	clock  func() time.Time
	atomic bool
}

// WithPolicy sets the authorization policy every service consults
func WithPolicy(p policy.Policy) Option {
	return func(cfg *appConfig) {
		cfg.policy = policy.OrAllowAll(p)
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithClock overrides the time source used for created_at, updated_at and assigned_at
func WithClock(clock func() time.Time) Option {
	return func(cfg *appConfig) {
		cfg.clock = clock
	}
}

// WithAtomicAssignments selects transactional (true) or sequential (false) assignment replacement
func WithAtomicAssignments(atomic bool) Option {
	return func(cfg *appConfig) {
		cfg.atomic = atomic
	}
}
