package watchlistservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/haguru/kakashi/internal/interfaces"
	"github.com/haguru/kakashi/internal/models"
	"github.com/haguru/kakashi/pkg/helper"
)

// WatchlistService manages each user's saved movies. Every call reads or
// writes the store directly; nothing is cached.
type WatchlistService struct {
	WatchlistRepo interfaces.WatchlistRepository
	Logger        interfaces.Logger
}

func NewWatchlistService(repo interfaces.WatchlistRepository, logger interfaces.Logger) *WatchlistService {
	return &WatchlistService{
		WatchlistRepo: repo,
		Logger:        logger,
	}
}

// Add saves entry for owner. Saving the same movie twice is rejected with ErrDuplicateEntry.
func (s *WatchlistService) Add(ctx context.Context, owner string, entry models.WatchlistEntry) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", owner, "movie", entry.MovieRef)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", owner)

	entry.Owner = owner
	entry.MovieRef = strings.TrimSpace(entry.MovieRef)
	if owner == "" || entry.MovieRef == "" {
		return ErrInvalidEntry
	}

	if _, err := s.WatchlistRepo.AddEntry(ctx, entry); err != nil {
		if errors.Is(err, interfaces.ErrDuplicateKey) {
			s.Logger.Warn(ErrDuplicateEntry.Error(), "func", funcName, "user", owner, "movie", entry.MovieRef)
			return ErrDuplicateEntry
		}
		s.Logger.Error(ErrFailedToAddEntry, "func", funcName, "user", owner, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToAddEntry, err)
	}

	s.Logger.Info("Added to watchlist", "func", funcName, "user", owner, "movie", entry.MovieRef)
	return nil
}

// List returns the owner's entries in the order they were added.
func (s *WatchlistService) List(ctx context.Context, owner string) ([]models.WatchlistEntry, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", owner)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", owner)

	entries, err := s.WatchlistRepo.ListEntries(ctx, owner)
	if err != nil {
		s.Logger.Error(ErrFailedToListEntries, "func", funcName, "user", owner, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToListEntries, err)
	}
	return entries, nil
}

// Remove deletes one entry; ErrEntryNotFound when the owner never saved it.
func (s *WatchlistService) Remove(ctx context.Context, owner, movieRef string) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", owner, "movie", movieRef)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", owner)

	movieRef = strings.TrimSpace(movieRef)
	if owner == "" || movieRef == "" {
		return ErrInvalidEntry
	}

	n, err := s.WatchlistRepo.DeleteEntry(ctx, owner, movieRef)
	if err != nil {
		s.Logger.Error(ErrFailedToRemoveEntry, "func", funcName, "user", owner, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToRemoveEntry, err)
	}
	if n == 0 {
		return ErrEntryNotFound
	}

	s.Logger.Info("Removed from watchlist", "func", funcName, "user", owner, "movie", movieRef)
	return nil
}

// Clear removes every entry of owner and returns how many were removed.
func (s *WatchlistService) Clear(ctx context.Context, owner string) (int64, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", owner)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", owner)

	if owner == "" {
		return 0, ErrInvalidEntry
	}

	n, err := s.WatchlistRepo.DeleteAllEntries(ctx, owner)
	if err != nil {
		s.Logger.Error(ErrFailedToClear, "func", funcName, "user", owner, "error", err)
		return 0, fmt.Errorf("%s: %w", ErrFailedToClear, err)
	}

	s.Logger.Info("Watchlist cleared", "func", funcName, "user", owner, "removed", n)
	return n, nil
}

// Contains reports whether owner has saved movieRef.
func (s *WatchlistService) Contains(ctx context.Context, owner, movieRef string) (bool, error) {
	_, err := s.WatchlistRepo.FindEntry(ctx, owner, strings.TrimSpace(movieRef))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, interfaces.ErrNoDocuments):
		return false, nil
	default:
		return false, err
	}
}
