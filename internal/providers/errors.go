// Package providers holds what the metadata, web search and language model
// clients share: the error taxonomy, the HTTP helpers and the circuit breaker.
package providers

import (
	"errors"
	"fmt"
)

// Kind classifies a provider failure.
type Kind int

const (
	KindNetworkFailure Kind = iota + 1
	KindAuthFailure
	KindUpstreamError
	KindTimeout
)

var (
	ErrNetworkFailure = errors.New("network failure")
	ErrAuthFailure    = errors.New("authentication failure")
	ErrUpstream       = errors.New("upstream error")
	ErrTimeout        = errors.New("timeout")

	// ErrNoResults is wrapped by an UpstreamError when a lookup matched nothing.
	ErrNoResults = errors.New("no results")
	// ErrMissingCredential is wrapped by an AuthFailure raised before any request is made.
	ErrMissingCredential = errors.New("credential is not configured")
)

func (k Kind) sentinel() error {
	switch k {
	case KindNetworkFailure:
		return ErrNetworkFailure
	case KindAuthFailure:
		return ErrAuthFailure
	case KindTimeout:
		return ErrTimeout
	default:
		return ErrUpstream
	}
}

// String is used as the metrics outcome label.
func (k Kind) String() string {
	switch k {
	case KindNetworkFailure:
		return "network_failure"
	case KindAuthFailure:
		return "auth_failure"
	case KindTimeout:
		return "timeout"
	default:
		return "upstream_error"
	}
}

// Error is returned by every provider client. errors.Is matches both the
// kind sentinel (ErrAuthFailure, ...) and the wrapped cause.
type Error struct {
	Provider string
	Kind     Kind
	Err      error
}

func NewError(provider string, kind Kind, err error) *Error {
	return &Error{Provider: provider, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Provider, e.Kind.sentinel())
	}
	return fmt.Sprintf("%s: %v: %v", e.Provider, e.Kind.sentinel(), e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// KindOf returns the kind of a provider error and false for any other error.
func KindOf(err error) (Kind, bool) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind, true
	}
	return 0, false
}

// MissingCredential is the AuthFailure for a client whose key is not set.
func MissingCredential(provider, name string) *Error {
	return NewError(provider, KindAuthFailure, fmt.Errorf("%s: %w", name, ErrMissingCredential))
}
