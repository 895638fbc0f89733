package dto

import "github.com/haguru/kakashi/internal/models"

// AddWatchlistRequestDTO carries the entry payload as shown in a search result.
type AddWatchlistRequestDTO struct {
	Title       string   `json:"title" validate:"required,max=300"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=10"`
	Summary     string   `json:"summary" validate:"max=5000"`
	PosterURL   string   `json:"poster_url" validate:"omitempty,url"`
	AvailableOn []string `json:"available_on" validate:"max=20,dive,max=100"`
}

type WatchlistResponseDTO struct {
	Entries []models.WatchlistEntry `json:"entries"`
}

type ClearWatchlistResponseDTO struct {
	Message string `json:"message"`
	Removed int64  `json:"removed"`
}
