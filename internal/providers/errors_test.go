package providers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		matches  []error
		excludes []error
	}{
		{
			name:     "auth failure",
			err:      NewError("tmdb", KindAuthFailure, errors.New("401")),
			matches:  []error{ErrAuthFailure},
			excludes: []error{ErrNetworkFailure, ErrUpstream, ErrTimeout},
		},
		{
			name:     "no results is an upstream error",
			err:      NewError("tmdb", KindUpstreamError, ErrNoResults),
			matches:  []error{ErrUpstream, ErrNoResults},
			excludes: []error{ErrAuthFailure},
		},
		{
			name:    "missing credential",
			err:     MissingCredential("serpapi", "SERPAPI_KEY"),
			matches: []error{ErrAuthFailure, ErrMissingCredential},
		},
		{
			name:    "wrapped again",
			err:     fmt.Errorf("lookup: %w", NewError("bedrock", KindTimeout, nil)),
			matches: []error{ErrTimeout},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, target := range tt.matches {
				assert.ErrorIs(t, tt.err, target)
			}
			for _, target := range tt.excludes {
				assert.NotErrorIs(t, tt.err, target)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("x: %w", NewError("tmdb", KindNetworkFailure, nil)))
	assert.True(t, ok)
	assert.Equal(t, KindNetworkFailure, kind)
	assert.Equal(t, "network_failure", kind.String())

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestError_Message(t *testing.T) {
	err := NewError("serpapi", KindUpstreamError, errors.New("status 500"))
	assert.Equal(t, "serpapi: upstream error: status 500", err.Error())
	assert.Equal(t, "bedrock: timeout", NewError("bedrock", KindTimeout, nil).Error())
}
