package storefront

// SearchResponse is the app-data search endpoint's decoded JSON body.
type SearchResponse struct {
	ResultCount int          `json:"resultCount"`
	Results     []AppDataDTO `json:"results"`
}

// AppDataDTO is one app record from the search endpoint. Fields marked
// optional in the endpoint contract are plain Go zero-value fields rather
// than pointers: the transform stage treats an empty/zero value as "not
// provided" rather than distinguishing it from an explicit zero.
type AppDataDTO struct {
	TrackID                           int64    `json:"trackId"`
	TrackName                         string   `json:"trackName"`
	TrackCensoredName                 string   `json:"trackCensoredName"`
	BundleID                          string   `json:"bundleId"`
	Description                       string   `json:"description"`
	PrimaryGenreID                    int      `json:"primaryGenreId"`
	PrimaryGenreName                  string   `json:"primaryGenreName"`
	AverageUserRating                 float64  `json:"averageUserRating"`
	AverageUserRatingForCurrentVersion float64 `json:"averageUserRatingForCurrentVersion"`
	UserRatingCount                   int64    `json:"userRatingCount"`
	UserRatingCountForCurrentVersion  int64    `json:"userRatingCountForCurrentVersion"`
	ArtistID                          int64    `json:"artistId"`
	ArtistName                        string   `json:"artistName"`
	ReleaseDate                       string   `json:"releaseDate"`
	CurrentVersionReleaseDate         string   `json:"currentVersionReleaseDate"`
	Price                             float64  `json:"price"`
	Currency                          string   `json:"currency"`
	GenreIDs                          []string `json:"genreIds,omitempty"`
	ArtistViewURL                     string   `json:"artistViewUrl,omitempty"`
	SellerName                        string   `json:"sellerName,omitempty"`
	SellerURL                         string   `json:"sellerUrl,omitempty"`
	TrackContentRating                string   `json:"trackContentRating,omitempty"`
	ContentAdvisoryRating             string   `json:"contentAdvisoryRating,omitempty"`
	FileSizeBytes                     string   `json:"fileSizeBytes,omitempty"`
	MinimumOsVersion                  string   `json:"minimumOsVersion,omitempty"`
	Version                           string   `json:"version,omitempty"`
	ReleaseNotes                      string   `json:"releaseNotes,omitempty"`
	ArtworkURL100                     string   `json:"artworkUrl100,omitempty"`
	TrackViewURL                      string   `json:"trackViewUrl,omitempty"`
	ArtworkURL512                     string   `json:"artworkUrl512,omitempty"`
	ArtworkURL60                      string   `json:"artworkUrl60,omitempty"`
	IpadScreenshotURLs                []string `json:"ipadScreenshotUrls,omitempty"`
	ScreenshotURLs                    []string `json:"screenshotUrls,omitempty"`
	SupportedDevices                  []string `json:"supportedDevices,omitempty"`
}

// ReviewsResponse is the userReviewsRow endpoint's decoded JSON body.
type ReviewsResponse struct {
	UserReviewList []AppReviewDTO `json:"userReviewList"`
}

// AppReviewDTO is one review row from the review endpoint. The upstream
// schema is loosely typed (string ratings, nested author blocks); callers
// in pkg/pipeline map this into the typed AppReview entity.
type AppReviewDTO struct {
	ID     string         `json:"id"`
	Author map[string]any `json:"author"`
	Title  string         `json:"title"`
	Body   string         `json:"body"`
	Rating string         `json:"rating"`
	Date   string         `json:"date"`
}
