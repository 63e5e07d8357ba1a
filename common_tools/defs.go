package common_tools

// Search_Result is a single parsed web search hit.
type Search_Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Search_Response pairs the query with its ordered results. Results has length
// at most the requested count and may be empty; it is never nil on the happy
// path but callers must tolerate zero results.
type Search_Response struct {
	Query   string          `json:"query"`
	Results []Search_Result `json:"results"`
}
