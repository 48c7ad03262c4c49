package model

// SearchResult is one hit from the external people-lookup tool. The session
// caches the most recent query and its results so follow-up turns ("the
// second one", "add her") can refer back to them.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// StoreSearchRequest is the request to cache the latest search results on a
// session. The cache is replaced wholesale on each call.
type StoreSearchRequest struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}
