package assistant

import "errors"

const (
	streamingQuery = "Where can I watch %s streaming"
	noSnippets     = "No useful search results found."
	notFound       = "not found"

	streamingPrompt = "Based on these web search snippets, where can I stream or watch the movie or tv show '%s'?\n\n" +
		"%s\n\n" +
		"List only the streaming platforms or services. If unknown, say 'Not found'."
	genrePrompt = "List 5 great movies in the genre or theme: '%s'. " +
		"Return only the movie titles, comma-separated."
	personalPrompt = "The user has saved these movies to their watchlist: %s. " +
		"Based on their taste, recommend 5 more movies. Return only the movie titles, comma-separated."
	summaryPrompt = "Summarize the following text in two or three sentences. " +
		"Return only the summary.\n\n%s"
)

const (
	ErrFailedToFetchMovie      = "failed to fetch movie"
	ErrFailedToGetAvailability = "failed to get streaming availability"
	ErrFailedToRecommend       = "failed to get recommendations"
	ErrFailedToSummarize       = "failed to summarize text"
)

var ErrInvalidInput = errors.New("input must not be empty")
