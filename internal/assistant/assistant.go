// Package assistant combines the metadata, web search and language model
// clients into the actions offered to a signed in user.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/haguru/kakashi/internal/interfaces"
	"github.com/haguru/kakashi/internal/models"
	"github.com/haguru/kakashi/internal/providers"
	"github.com/haguru/kakashi/pkg/helper"
)

type Service struct {
	Metadata interfaces.MetadataClient
	Search   interfaces.SearchClient
	Model    interfaces.LanguageModel
	Logger   interfaces.Logger
}

func NewService(metadata interfaces.MetadataClient, search interfaces.SearchClient, model interfaces.LanguageModel, logger interfaces.Logger) *Service {
	return &Service{
		Metadata: metadata,
		Search:   search,
		Model:    model,
		Logger:   logger,
	}
}

// MovieInfo looks up title and where it can be streamed. A failed
// availability lookup does not fail the search; the reason is returned in
// AvailabilityError instead.
func (s *Service) MovieInfo(ctx context.Context, title string) (*models.MovieInfo, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "title", title)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidInput
	}

	movie, err := s.Metadata.FetchMovie(ctx, title)
	if err != nil {
		s.Logger.Error(ErrFailedToFetchMovie, "func", funcName, "title", title, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToFetchMovie, err)
	}

	info := &models.MovieInfo{Movie: movie, Availability: []models.StreamingSource{}}
	sources, err := s.Availability(ctx, movie.Title)
	if err != nil {
		s.Logger.Warn("streaming availability unavailable", "func", funcName, "title", movie.Title, "error", err)
		info.AvailabilityError = providers.Message(err)
		return info, nil
	}
	info.Availability = sources
	return info, nil
}

// Availability asks the language model to pick the streaming services out
// of web search snippets about title. "Not found" yields an empty list.
func (s *Service) Availability(ctx context.Context, title string) ([]models.StreamingSource, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "title", title)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidInput
	}

	snippets, err := s.Search.Snippets(ctx, fmt.Sprintf(streamingQuery, title))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToGetAvailability, err)
	}
	joined := strings.Join(snippets, "\n")
	if joined == "" {
		joined = noSnippets
	}

	reply, err := s.Model.Complete(ctx, fmt.Sprintf(streamingPrompt, title, joined))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToGetAvailability, err)
	}

	services := splitTitles(reply)
	sources := make([]models.StreamingSource, 0, len(services))
	for _, name := range services {
		sources = append(sources, models.StreamingSource{Service: name, Available: true})
	}
	return sources, nil
}

// Recommend returns movie titles matching a mood, genre or theme.
func (s *Service) Recommend(ctx context.Context, mood string) ([]string, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "mood", mood)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	mood = strings.TrimSpace(mood)
	if mood == "" {
		return nil, ErrInvalidInput
	}

	reply, err := s.Model.Complete(ctx, fmt.Sprintf(genrePrompt, mood))
	if err != nil {
		s.Logger.Error(ErrFailedToRecommend, "func", funcName, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToRecommend, err)
	}
	return splitTitles(reply), nil
}

// PersonalRecommendations suggests titles based on titles already saved.
// No saved titles means no suggestions, and the model is not called.
func (s *Service) PersonalRecommendations(ctx context.Context, titles []string) ([]string, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "saved", len(titles))
	defer s.Logger.Debug("Exiting function", "func", funcName)

	saved := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = strings.TrimSpace(t); t != "" {
			saved = append(saved, t)
		}
	}
	if len(saved) == 0 {
		return []string{}, nil
	}

	reply, err := s.Model.Complete(ctx, fmt.Sprintf(personalPrompt, strings.Join(saved, ", ")))
	if err != nil {
		s.Logger.Error(ErrFailedToRecommend, "func", funcName, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToRecommend, err)
	}
	return splitTitles(reply), nil
}

func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "length", len(text))
	defer s.Logger.Debug("Exiting function", "func", funcName)

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrInvalidInput
	}

	summary, err := s.Model.Complete(ctx, fmt.Sprintf(summaryPrompt, text))
	if err != nil {
		s.Logger.Error(ErrFailedToSummarize, "func", funcName, "error", err)
		return "", fmt.Errorf("%s: %w", ErrFailedToSummarize, err)
	}
	return strings.TrimSpace(summary), nil
}

// splitTitles splits a comma separated model reply. A reply of "Not found"
// becomes an empty list.
func splitTitles(reply string) []string {
	titles := helper.SplitList(reply)
	if len(titles) == 1 && strings.EqualFold(strings.TrimSuffix(titles[0], "."), notFound) {
		return []string{}
	}
	return titles
}
