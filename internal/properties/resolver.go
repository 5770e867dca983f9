package properties

import (
	"go.uber.org/zap"

	"github.com/eugenenazirov/envprops/internal/metrics"
)

// Resolver looks a key up in the local overrides first and the environment second.
// It holds no state of its own and performs no locking; sources are read as-is.
type Resolver struct {
	sources []Source
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records resolution outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// New creates a Resolver. A nil source is skipped.
func New(overrides, env Source, opts ...Option) *Resolver {
	r := &Resolver{logger: zap.NewNop()}
	for _, src := range []Source{overrides, env} {
		if src != nil {
			r.sources = append(r.sources, src)
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the value for key. A missing value is not an error;
// malformed keys fail with an error wrapping ErrInvalidKey.
func (r *Resolver) Resolve(key string) (string, bool, error) {
	prop, found, err := r.Lookup(key)
	if err != nil || !found {
		return "", false, err
	}
	return prop.Value, true, nil
}

// Lookup is Resolve that also reports which source supplied the value.
func (r *Resolver) Lookup(key string) (Property, bool, error) {
	r.logger.Debug("resolving property", zap.String("key", key))

	if err := ValidateKey(key); err != nil {
		r.metrics.ObserveResolution("", metrics.OutcomeInvalid)
		return Property{}, false, err
	}

	for _, src := range r.sources {
		value, ok := src.Lookup(key)
		if !ok {
			continue
		}
		r.logger.Info("property resolved",
			zap.String("key", key),
			zap.String("source", src.Name()),
		)
		r.logger.Debug("property value", zap.String("key", key), zap.String("value", value))
		r.metrics.ObserveResolution(src.Name(), metrics.OutcomeFound)
		return Property{Key: key, Value: value, Source: src.Name()}, true, nil
	}

	r.logger.Info("property not found", zap.String("key", key))
	r.metrics.ObserveResolution("", metrics.OutcomeMissing)
	return Property{}, false, nil
}
