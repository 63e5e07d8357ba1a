package common_tools

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

//go:generate ../../gen_schema -func=Search_Web -file=search_web.go -out=../schemas/cached_schemas

const (
	DefaultNumResults = 5
	MaxNumResults     = 10

	searchTimeout = 10 * time.Second
)

// Overridable in tests.
var searchBaseURL = "https://html.duckduckgo.com/html/"

// DuckDuckGo's HTML results page: anchor with the result link and title,
// followed by the snippet anchor.
var resultPattern = regexp.MustCompile(`<a[^>]*class="result__a"[^>]*href="([^"]*)"[^>]*>([^<]*)</a>[\s\S]*?<a[^>]*class="result__snippet"[^>]*>([^<]*)</a>`)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Search_Web is a tool to search the web. It performs a single request to
// DuckDuckGo's HTML endpoint and extracts up to numResults well-formed hits.
// It never returns an error: an unreachable backend, a non-success status, or
// an unparseable page all yield an empty result list.
func Search_Web(ctx context.Context, query string, numResults int) Search_Response {
	if numResults <= 0 {
		numResults = DefaultNumResults
	}
	if numResults > MaxNumResults {
		numResults = MaxNumResults
	}

	response := Search_Response{Query: query, Results: []Search_Result{}}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	searchURL := searchBaseURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		log.Printf("Web search error: %v", err)
		return response
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; LuxbinAI/1.0)")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("Web search error: %v", err)
		return response
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Web search failed: status %d", resp.StatusCode)
		return response
	}

	html, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Web search error reading body: %v", err)
		return response
	}

	response.Results = parseSearchResults(string(html), numResults)
	return response
}

// parseSearchResults extracts well-formed results from the markup, stopping
// once numResults have been collected.
func parseSearchResults(html string, numResults int) []Search_Result {
	results := []Search_Result{}

	for _, match := range resultPattern.FindAllStringSubmatch(html, -1) {
		if len(results) >= numResults {
			break
		}

		rawURL, err := url.QueryUnescape(match[1])
		if err != nil {
			rawURL = match[1]
		}
		title := strings.TrimSpace(match[2])
		snippet := strings.TrimSpace(tagPattern.ReplaceAllString(match[3], ""))

		if rawURL == "" || title == "" || snippet == "" {
			continue
		}

		results = append(results, Search_Result{
			Title:   title,
			Snippet: snippet,
			URL:     rawURL,
		})
	}

	return results
}

// Format_Search_Results renders a result set into a single text block for
// re-injection into the conversation.
func Format_Search_Results(response Search_Response) string {
	if len(response.Results) == 0 {
		return fmt.Sprintf("No web results found for: %q", response.Query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Web search results for: %q\n\n", response.Query)
	for i, result := range response.Results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, result.Title)
		fmt.Fprintf(&b, "   %s\n", result.Snippet)
		fmt.Fprintf(&b, "   Source: %s\n\n", result.URL)
	}
	return b.String()
}
