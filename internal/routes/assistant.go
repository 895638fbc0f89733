package routes

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/haguru/kakashi/internal/models/dto"
)

// Search looks up ?title= and reports where it streams and whether the
// user has already saved it.
func (r *Route) Search(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodGet) {
		return
	}
	session, ok := r.session(w, req)
	if !ok {
		return
	}

	start := time.Now()
	title := strings.TrimSpace(req.URL.Query().Get(TitleQueryParam))
	if title == "" {
		r.errorResponse(w, http.StatusBadRequest, errors.New("missing title"), MsgTitleRequired)
		r.observeAction(ActionSearch, http.StatusBadRequest, start)
		return
	}

	info, err := r.Assistant.MovieInfo(req.Context(), title)
	if err != nil {
		r.observeAction(ActionSearch, r.serviceError(w, err), start)
		return
	}

	inWatchlist, err := r.WatchlistService.Contains(req.Context(), session.Username, info.Movie.Title)
	if err != nil {
		r.Logger.Warn("failed to check watchlist", "user", session.Username, "movie", info.Movie.Title, "error", err)
	}

	r.writeJSON(w, http.StatusOK, &dto.SearchResponseDTO{MovieInfo: *info, InWatchlist: inWatchlist})
	r.observeAction(ActionSearch, http.StatusOK, start)
}

// Recommend suggests movies for the mood in the request body.
func (r *Route) Recommend(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodPost) {
		return
	}
	if _, ok := r.session(w, req); !ok {
		return
	}

	start := time.Now()
	body := &dto.RecommendRequestDTO{}
	if !r.decodeRequest(w, req, body) {
		r.observeAction(ActionRecommend, http.StatusBadRequest, start)
		return
	}

	titles, err := r.Assistant.Recommend(req.Context(), body.Mood)
	if err != nil {
		r.observeAction(ActionRecommend, r.serviceError(w, err), start)
		return
	}

	r.writeJSON(w, http.StatusOK, &dto.TitlesResponseDTO{Titles: titles})
	r.observeAction(ActionRecommend, http.StatusOK, start)
}

// PersonalRecommend suggests movies based on the user's watchlist.
func (r *Route) PersonalRecommend(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodGet) {
		return
	}
	session, ok := r.session(w, req)
	if !ok {
		return
	}

	start := time.Now()
	entries, err := r.WatchlistService.List(req.Context(), session.Username)
	if err != nil {
		r.observeAction(ActionPersonalRecommend, r.serviceError(w, err), start)
		return
	}

	saved := make([]string, 0, len(entries))
	for _, e := range entries {
		saved = append(saved, e.MovieRef)
	}

	titles, err := r.Assistant.PersonalRecommendations(req.Context(), saved)
	if err != nil {
		r.observeAction(ActionPersonalRecommend, r.serviceError(w, err), start)
		return
	}

	r.writeJSON(w, http.StatusOK, &dto.TitlesResponseDTO{Titles: titles})
	r.observeAction(ActionPersonalRecommend, http.StatusOK, start)
}

func (r *Route) Summarize(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodPost) {
		return
	}
	if _, ok := r.session(w, req); !ok {
		return
	}

	start := time.Now()
	body := &dto.SummarizeRequestDTO{}
	if !r.decodeRequest(w, req, body) {
		r.observeAction(ActionSummarize, http.StatusBadRequest, start)
		return
	}

	summary, err := r.Assistant.Summarize(req.Context(), body.Text)
	if err != nil {
		r.observeAction(ActionSummarize, r.serviceError(w, err), start)
		return
	}

	r.writeJSON(w, http.StatusOK, &dto.SummaryResponseDTO{Summary: summary})
	r.observeAction(ActionSummarize, http.StatusOK, start)
}
