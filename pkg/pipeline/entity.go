// Package pipeline implements the ETL triple (Extract/Transform/Load) that
// a Task runs over one request batch: dispatch through the session,
// validate and map storefront JSON into typed entities, then hand the
// result to a repository.
package pipeline

import "github.com/appvocai/acquire/pkg/identity"

// DataType distinguishes the two storefront artifact kinds the pipeline
// maps: app metadata and app reviews.
type DataType string

const (
	DataTypeAppData   DataType = "appdata"
	DataTypeAppReview DataType = "review"
)

// AppData is the typed entity TransformStage maps a search-endpoint result
// into, stamped with its artifact lineage.
type AppData struct {
	Passport identity.ArtifactPassport

	TrackID                           int64
	TrackName                         string
	TrackCensoredName                 string
	BundleID                          string
	Description                       string
	PrimaryGenreID                    int
	PrimaryGenreName                  string
	AverageUserRating                 float64
	AverageUserRatingForCurrentVersion float64
	UserRatingCount                   int64
	UserRatingCountForCurrentVersion  int64
	ArtistID                          int64
	ArtistName                        string
	ReleaseDate                       string
	CurrentVersionReleaseDate         string
	Price                             float64
	Currency                          string
	GenreIDs                          []string
	ArtistViewURL                     string
	SellerName                        string
	SellerURL                         string
	TrackContentRating                string
	ContentAdvisoryRating             string
	FileSizeBytes                     string
	MinimumOsVersion                  string
	Version                           string
	ReleaseNotes                      string
	ArtworkURL100                     string
	TrackViewURL                      string
	ArtworkURL512                     string
	ArtworkURL60                      string
	IpadScreenshotURLs                []string
	ScreenshotURLs                    []string
	SupportedDevices                  []string
}

// AppReview is the typed entity TransformStage maps a review-endpoint row
// into, stamped with its artifact lineage.
type AppReview struct {
	Passport identity.ArtifactPassport

	ReviewID string
	AppID    string
	Author   map[string]any
	Title    string
	Body     string
	Rating   string
	Date     string
}
