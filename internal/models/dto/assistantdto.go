package dto

import "github.com/haguru/kakashi/internal/models"

type SearchResponseDTO struct {
	models.MovieInfo
	InWatchlist bool `json:"in_watchlist"`
}

type RecommendRequestDTO struct {
	Mood string `json:"mood" validate:"required,max=200"`
}

type SummarizeRequestDTO struct {
	Text string `json:"text" validate:"required,max=20000"`
}

type TitlesResponseDTO struct {
	Titles []string `json:"titles"`
}

type SummaryResponseDTO struct {
	Summary string `json:"summary"`
}
