package providers

import (
	"errors"
	"fmt"
)

var displayNames = map[string]string{
	"tmdb":    "Movie database",
	"serpapi": "Web search",
	"bedrock": "Language model",
}

// DisplayName returns the user facing name of a provider.
func DisplayName(provider string) string {
	if name, ok := displayNames[provider]; ok {
		return name
	}
	return provider
}

// Message renders err for an end user. Provider details such as response
// bodies are left out.
func Message(err error) string {
	var perr *Error
	if !errors.As(err, &perr) {
		return "Unexpected error"
	}
	name := DisplayName(perr.Provider)

	switch {
	case errors.Is(err, ErrNoResults):
		return "No results found"
	case perr.Kind == KindAuthFailure:
		return fmt.Sprintf("%s service is not configured", name)
	case perr.Kind == KindTimeout:
		return fmt.Sprintf("%s service timed out", name)
	default:
		return fmt.Sprintf("Could not reach %s service", name)
	}
}
