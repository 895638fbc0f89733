package providers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth", MissingCredential("tmdb", "TMDB_API_KEY"), "Movie database service is not configured"},
		{"timeout", NewError("bedrock", KindTimeout, errors.New("deadline")), "Language model service timed out"},
		{"network", NewError("serpapi", KindNetworkFailure, errors.New("refused")), "Could not reach Web search service"},
		{"upstream", NewError("serpapi", KindUpstreamError, errors.New("500")), "Could not reach Web search service"},
		{"no results", NewError("tmdb", KindUpstreamError, ErrNoResults), "No results found"},
		{"unknown provider", NewError("omdb", KindUpstreamError, nil), "Could not reach omdb service"},
		{"not a provider error", errors.New("boom"), "Unexpected error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}
