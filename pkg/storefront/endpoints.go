// Package storefront builds the outbound request shape for the public app
// storefront's JSON endpoints and defines the typed DTOs their responses
// decode into.
package storefront

import "fmt"

const (
	searchBaseURL  = "https://itunes.apple.com/search"
	reviewsBaseURL = "https://itunes.apple.com/WebObjects/MZStore.woa/wa/userReviewsRow"
)

// SearchParams builds the query parameters for the app-data search
// endpoint: GET /search?media=software&genreId=<id>&term=app&country=us&
// lang=en-us&explicit=yes&limit=<L>&offset=<page*L>.
func SearchParams(genreID string, page, limit int) (baseURL string, params map[string]string) {
	return searchBaseURL, map[string]string{
		"media":    "software",
		"genreId":  genreID,
		"term":     "app",
		"country":  "us",
		"lang":     "en-us",
		"explicit": "yes",
		"limit":    fmt.Sprintf("%d", limit),
		"offset":   fmt.Sprintf("%d", page*limit),
	}
}

// ReviewParams builds the query parameters for the review endpoint:
// GET /userReviewsRow?id=<app_id>&displayable-kind=11&startIndex=<s>&
// endIndex=<e>&sort=1.
func ReviewParams(appID string, startIndex, endIndex int) (baseURL string, params map[string]string) {
	return reviewsBaseURL, map[string]string{
		"id":               appID,
		"displayable-kind": "11",
		"startIndex":       fmt.Sprintf("%d", startIndex),
		"endIndex":         fmt.Sprintf("%d", endIndex),
		"sort":             "1",
	}
}
