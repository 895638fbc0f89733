package interfaces

import (
	"context"

	"github.com/haguru/kakashi/internal/models"
)

type AccountService interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) (*models.Identity, error)
}

type WatchlistService interface {
	Add(ctx context.Context, owner string, entry models.WatchlistEntry) error
	List(ctx context.Context, owner string) ([]models.WatchlistEntry, error)
	Remove(ctx context.Context, owner, movieRef string) error
	Clear(ctx context.Context, owner string) (int64, error)
	Contains(ctx context.Context, owner, movieRef string) (bool, error)
}

// AssistantService runs the provider backed actions: search, availability,
// recommendations and summaries.
type AssistantService interface {
	MovieInfo(ctx context.Context, title string) (*models.MovieInfo, error)
	Availability(ctx context.Context, title string) ([]models.StreamingSource, error)
	Recommend(ctx context.Context, mood string) ([]string, error)
	Summarize(ctx context.Context, text string) (string, error)
	PersonalRecommendations(ctx context.Context, titles []string) ([]string, error)
}
