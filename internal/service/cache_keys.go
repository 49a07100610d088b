package service

// Cache key prefixes for query results
const (
	// PrefixShows is the prefix for list queries (search, similar, listing)
	PrefixShows = "shows:"

	// PrefixShow is the prefix for single show detail queries
	PrefixShow = "show:"
)

// RefreshPrefixes returns the prefixes dropped by a manual refresh. Details
// change rarely, so only lists are refreshed.
func RefreshPrefixes() []string {
	return []string{PrefixShows}
}
