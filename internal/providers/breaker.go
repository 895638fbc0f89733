package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/haguru/kakashi/internal/interfaces"
)

const (
	MetricProviderRequests = "provider_requests_total"
	MetricProviderDuration = "provider_request_duration_seconds"
	MetricBreakerState     = "provider_circuit_breaker_state"

	// consecutive failures before the circuit opens
	tripAfter = 5
	// how long an open circuit rejects calls before probing again
	openTimeout = 30 * time.Second
)

// RegisterMetrics registers the provider metrics. Safe to call more than once.
func RegisterMetrics(m interfaces.Metrics) {
	m.RegisterCounterVec(MetricProviderRequests, "Provider calls by outcome", []string{"provider", "outcome"})
	m.RegisterHistogramVec(MetricProviderDuration, "Provider call latency in seconds", nil, []string{"provider"})
	m.RegisterGaugeVec(MetricBreakerState, "Circuit breaker state (0 closed, 1 half-open, 2 open)", []string{"provider"})
}

// Breaker guards one provider with a circuit breaker and records call metrics.
// It never retries: a rejected call fails immediately with NetworkFailure.
type Breaker struct {
	name    string
	cb      *gobreaker.CircuitBreaker[interface{}]
	metrics interfaces.Metrics
	logger  interfaces.Logger
}

// NewBreaker creates the breaker for provider. metrics may be nil.
func NewBreaker(provider string, metrics interfaces.Metrics, logger interfaces.Logger) *Breaker {
	b := &Breaker{
		name:    provider,
		metrics: metrics,
		logger:  logger.WithContext(map[string]interface{}{"provider": provider}),
	}
	if metrics != nil {
		RegisterMetrics(metrics)
		metrics.SetGaugeVec(MetricBreakerState, stateToFloat(gobreaker.StateClosed), provider)
	}

	b.cb = gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        provider,
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.logger.Warn("Circuit breaker state transition", "from", stateToString(from), "to", stateToString(to))
			if b.metrics != nil {
				b.metrics.SetGaugeVec(MetricBreakerState, stateToFloat(to), name)
			}
		},
	})
	return b
}

// Name returns the guarded provider's name.
func (b *Breaker) Name() string {
	return b.name
}

// State returns "closed", "half-open" or "open".
func (b *Breaker) State() string {
	return stateToString(b.cb.State())
}

// isSuccessful keeps caller side outcomes from tripping the breaker: a
// missing key, an empty result or a cancelled request says nothing about
// the provider's health.
func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, ErrAuthFailure) ||
		errors.Is(err, ErrNoResults) ||
		errors.Is(err, context.Canceled)
}

// Call runs fn through b. A nil breaker calls fn directly.
func Call[T any](ctx context.Context, b *Breaker, fn func(ctx context.Context) (T, error)) (T, error) {
	if b == nil {
		return fn(ctx)
	}

	start := time.Now()
	result, err := b.cb.Execute(func() (interface{}, error) {
		return fn(ctx)
	})
	b.observe(start, err)

	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, NewError(b.name, KindNetworkFailure, fmt.Errorf("circuit %s: %w", b.State(), err))
		}
		return zero, err
	}
	return castResult[T](result)
}

func (b *Breaker) observe(start time.Time, err error) {
	if b.metrics == nil {
		return
	}
	outcome := "success"
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		outcome = "rejected"
	case err != nil:
		if kind, ok := KindOf(err); ok {
			outcome = kind.String()
		} else {
			outcome = "error"
		}
	}
	b.metrics.IncCounterVec(MetricProviderRequests, b.name, outcome)
	b.metrics.ObserveHistogramVec(MetricProviderDuration, time.Since(start).Seconds(), b.name)
}

// castResult type-asserts the breaker's untyped result.
func castResult[T any](result interface{}) (T, error) {
	typed, ok := result.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
