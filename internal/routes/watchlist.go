package routes

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/haguru/kakashi/internal/auth"
	"github.com/haguru/kakashi/internal/models"
	"github.com/haguru/kakashi/internal/models/dto"
)

// Watchlist lists (GET), adds to (POST) and removes from (DELETE ?title=)
// the session user's watchlist.
func (r *Route) Watchlist(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodGet, http.MethodPost, http.MethodDelete) {
		return
	}
	session, ok := r.session(w, req)
	if !ok {
		return
	}

	switch req.Method {
	case http.MethodGet:
		r.listWatchlist(w, req, session)
	case http.MethodPost:
		r.addToWatchlist(w, req, session)
	case http.MethodDelete:
		r.removeFromWatchlist(w, req, session)
	}
}

func (r *Route) listWatchlist(w http.ResponseWriter, req *http.Request, session *auth.Session) {
	start := time.Now()
	entries, err := r.WatchlistService.List(req.Context(), session.Username)
	if err != nil {
		r.observeAction(ActionWatchlistList, r.serviceError(w, err), start)
		return
	}
	if entries == nil {
		entries = []models.WatchlistEntry{}
	}

	r.writeJSON(w, http.StatusOK, &dto.WatchlistResponseDTO{Entries: entries})
	r.observeAction(ActionWatchlistList, http.StatusOK, start)
}

func (r *Route) addToWatchlist(w http.ResponseWriter, req *http.Request, session *auth.Session) {
	start := time.Now()
	body := &dto.AddWatchlistRequestDTO{}
	if !r.decodeRequest(w, req, body) {
		r.observeAction(ActionWatchlistAdd, http.StatusBadRequest, start)
		return
	}

	entry := models.WatchlistEntry{
		MovieRef:    body.Title,
		Rating:      body.Rating,
		Summary:     body.Summary,
		PosterURL:   body.PosterURL,
		AvailableOn: body.AvailableOn,
	}
	if err := r.WatchlistService.Add(req.Context(), session.Username, entry); err != nil {
		r.observeAction(ActionWatchlistAdd, r.serviceError(w, err), start)
		return
	}

	r.writeJSON(w, http.StatusCreated, &dto.MessageResponseDTO{Message: MsgAddedToWatchlist})
	r.observeAction(ActionWatchlistAdd, http.StatusCreated, start)
}

func (r *Route) removeFromWatchlist(w http.ResponseWriter, req *http.Request, session *auth.Session) {
	start := time.Now()
	title := strings.TrimSpace(req.URL.Query().Get(TitleQueryParam))
	if title == "" {
		r.errorResponse(w, http.StatusBadRequest, errors.New("missing title"), MsgTitleRequired)
		r.observeAction(ActionWatchlistRemove, http.StatusBadRequest, start)
		return
	}

	if err := r.WatchlistService.Remove(req.Context(), session.Username, title); err != nil {
		r.observeAction(ActionWatchlistRemove, r.serviceError(w, err), start)
		return
	}

	r.writeJSON(w, http.StatusOK, &dto.MessageResponseDTO{Message: MsgRemovedFromWatchlist})
	r.observeAction(ActionWatchlistRemove, http.StatusOK, start)
}

// ClearWatchlist removes every entry of the session user.
func (r *Route) ClearWatchlist(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodDelete) {
		return
	}
	session, ok := r.session(w, req)
	if !ok {
		return
	}

	start := time.Now()
	removed, err := r.WatchlistService.Clear(req.Context(), session.Username)
	if err != nil {
		r.observeAction(ActionWatchlistClear, r.serviceError(w, err), start)
		return
	}

	r.writeJSON(w, http.StatusOK, &dto.ClearWatchlistResponseDTO{Message: MsgWatchlistCleared, Removed: removed})
	r.observeAction(ActionWatchlistClear, http.StatusOK, start)
}
