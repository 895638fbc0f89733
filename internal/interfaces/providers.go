package interfaces

import (
	"context"

	"github.com/haguru/kakashi/internal/models"
)

// MetadataClient looks up movie records.
type MetadataClient interface {
	FetchMovie(ctx context.Context, query string) (*models.Movie, error)
}

// SearchClient returns web search result snippets for a query.
type SearchClient interface {
	Snippets(ctx context.Context, query string) ([]string, error)
}

// LanguageModel answers a single prompt.
type LanguageModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
