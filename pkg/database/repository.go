package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appvocai/acquire/pkg/monitor"
	"github.com/appvocai/acquire/pkg/pipeline"
	"github.com/lib/pq"
)

// Client implements pkg/pipeline.Repository and pkg/monitor.MetricsSink
// directly against Postgres, upserting on the natural key of each entity
// (track_id for app data, review_id for reviews). ErrorSink below adapts
// Client to pkg/monitor.ErrorSink.

// UpsertAppData writes apps, inserting new track_ids and overwriting
// existing ones.
func (c *Client) UpsertAppData(ctx context.Context, apps []pipeline.AppData) (inserted, updated int, err error) {
	if len(apps) == 0 {
		return 0, 0, nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("upsert app data: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const stmt = `
INSERT INTO app_data (
	track_id, track_name, track_censored_name, bundle_id, description,
	primary_genre_id, primary_genre_name,
	average_user_rating, average_user_rating_for_current_version,
	user_rating_count, user_rating_count_for_current_version,
	artist_id, artist_name, release_date, current_version_release_date,
	price, currency, genre_ids,
	artist_view_url, seller_name, seller_url,
	track_content_rating, content_advisory_rating, file_size_bytes,
	minimum_os_version, version, release_notes,
	artwork_url_100, track_view_url, artwork_url_512, artwork_url_60,
	ipad_screenshot_urls, screenshot_urls, supported_devices,
	artifact_id, operation_id, task_id, job_id, project_id, category, environment, creator,
	created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
	$19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34,
	$35, $36, $37, $38, $39, $40, $41, $42, now(), now()
)
ON CONFLICT (track_id) DO UPDATE SET
	track_name = EXCLUDED.track_name,
	track_censored_name = EXCLUDED.track_censored_name,
	bundle_id = EXCLUDED.bundle_id,
	description = EXCLUDED.description,
	primary_genre_id = EXCLUDED.primary_genre_id,
	primary_genre_name = EXCLUDED.primary_genre_name,
	average_user_rating = EXCLUDED.average_user_rating,
	average_user_rating_for_current_version = EXCLUDED.average_user_rating_for_current_version,
	user_rating_count = EXCLUDED.user_rating_count,
	user_rating_count_for_current_version = EXCLUDED.user_rating_count_for_current_version,
	artist_id = EXCLUDED.artist_id,
	artist_name = EXCLUDED.artist_name,
	release_date = EXCLUDED.release_date,
	current_version_release_date = EXCLUDED.current_version_release_date,
	price = EXCLUDED.price,
	currency = EXCLUDED.currency,
	genre_ids = EXCLUDED.genre_ids,
	artist_view_url = EXCLUDED.artist_view_url,
	seller_name = EXCLUDED.seller_name,
	seller_url = EXCLUDED.seller_url,
	track_content_rating = EXCLUDED.track_content_rating,
	content_advisory_rating = EXCLUDED.content_advisory_rating,
	file_size_bytes = EXCLUDED.file_size_bytes,
	minimum_os_version = EXCLUDED.minimum_os_version,
	version = EXCLUDED.version,
	release_notes = EXCLUDED.release_notes,
	artwork_url_100 = EXCLUDED.artwork_url_100,
	track_view_url = EXCLUDED.track_view_url,
	artwork_url_512 = EXCLUDED.artwork_url_512,
	artwork_url_60 = EXCLUDED.artwork_url_60,
	ipad_screenshot_urls = EXCLUDED.ipad_screenshot_urls,
	screenshot_urls = EXCLUDED.screenshot_urls,
	supported_devices = EXCLUDED.supported_devices,
	artifact_id = EXCLUDED.artifact_id,
	operation_id = EXCLUDED.operation_id,
	task_id = EXCLUDED.task_id,
	job_id = EXCLUDED.job_id,
	project_id = EXCLUDED.project_id,
	category = EXCLUDED.category,
	environment = EXCLUDED.environment,
	creator = EXCLUDED.creator,
	updated_at = now()
RETURNING (xmax = 0) AS inserted`

	prepared, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return 0, 0, fmt.Errorf("upsert app data: prepare: %w", err)
	}
	defer prepared.Close()

	for _, a := range apps {
		var wasInsert bool
		err := prepared.QueryRowContext(ctx,
			a.TrackID, a.TrackName, a.TrackCensoredName, a.BundleID, a.Description,
			a.PrimaryGenreID, a.PrimaryGenreName,
			a.AverageUserRating, a.AverageUserRatingForCurrentVersion,
			a.UserRatingCount, a.UserRatingCountForCurrentVersion,
			a.ArtistID, a.ArtistName, a.ReleaseDate, a.CurrentVersionReleaseDate,
			a.Price, a.Currency, pq.Array(a.GenreIDs),
			a.ArtistViewURL, a.SellerName, a.SellerURL,
			a.TrackContentRating, a.ContentAdvisoryRating, a.FileSizeBytes,
			a.MinimumOsVersion, a.Version, a.ReleaseNotes,
			a.ArtworkURL100, a.TrackViewURL, a.ArtworkURL512, a.ArtworkURL60,
			pq.Array(a.IpadScreenshotURLs), pq.Array(a.ScreenshotURLs), pq.Array(a.SupportedDevices),
			a.Passport.ArtifactID, a.Passport.OperationID, a.Passport.TaskID,
			a.Passport.JobID, a.Passport.ProjectID, a.Passport.Category,
			a.Passport.Environment, a.Passport.Creator,
		).Scan(&wasInsert)
		if err != nil {
			return inserted, updated, fmt.Errorf("upsert app data: track_id %d: %w", a.TrackID, err)
		}
		if wasInsert {
			inserted++
		} else {
			updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("upsert app data: commit: %w", err)
	}
	return inserted, updated, nil
}

// UpsertAppReviews writes reviews, inserting new review_ids and overwriting
// existing ones.
func (c *Client) UpsertAppReviews(ctx context.Context, reviews []pipeline.AppReview) (inserted, updated int, err error) {
	if len(reviews) == 0 {
		return 0, 0, nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("upsert app reviews: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const stmt = `
INSERT INTO app_reviews (
	review_id, app_id, author, title, body, rating, review_date,
	artifact_id, operation_id, task_id, job_id, project_id, category, environment, creator,
	created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now()
)
ON CONFLICT (review_id) DO UPDATE SET
	app_id = EXCLUDED.app_id,
	author = EXCLUDED.author,
	title = EXCLUDED.title,
	body = EXCLUDED.body,
	rating = EXCLUDED.rating,
	review_date = EXCLUDED.review_date,
	artifact_id = EXCLUDED.artifact_id,
	operation_id = EXCLUDED.operation_id,
	task_id = EXCLUDED.task_id,
	job_id = EXCLUDED.job_id,
	project_id = EXCLUDED.project_id,
	category = EXCLUDED.category,
	environment = EXCLUDED.environment,
	creator = EXCLUDED.creator,
	updated_at = now()
RETURNING (xmax = 0) AS inserted`

	prepared, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return 0, 0, fmt.Errorf("upsert app reviews: prepare: %w", err)
	}
	defer prepared.Close()

	for _, r := range reviews {
		author, err := json.Marshal(r.Author)
		if err != nil {
			return inserted, updated, fmt.Errorf("upsert app reviews: review_id %s: marshal author: %w", r.ReviewID, err)
		}

		var wasInsert bool
		err = prepared.QueryRowContext(ctx,
			r.ReviewID, r.AppID, author, r.Title, r.Body, r.Rating, r.Date,
			r.Passport.ArtifactID, r.Passport.OperationID, r.Passport.TaskID,
			r.Passport.JobID, r.Passport.ProjectID, r.Passport.Category, r.Passport.Environment, r.Passport.Creator,
		).Scan(&wasInsert)
		if err != nil {
			return inserted, updated, fmt.Errorf("upsert app reviews: review_id %s: %w", r.ReviewID, err)
		}
		if wasInsert {
			inserted++
		} else {
			updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("upsert app reviews: commit: %w", err)
	}
	return inserted, updated, nil
}

// Add appends one ExtractMetrics record, satisfying monitor.MetricsSink.
func (c *Client) Add(ctx context.Context, m monitor.ExtractMetrics) error {
	const stmt = `
INSERT INTO metrics (
	project_id, job_id, task_id, stage_type,
	requests, dt_started, dt_ended, duration_ns,
	latency_min, latency_avg, latency_median, latency_max, latency_std,
	throughput_min, throughput_avg, throughput_median, throughput_max, throughput_std,
	speedup, size_bytes
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20
)`
	_, err := c.db.ExecContext(ctx, stmt,
		m.ProjectID, m.JobID, m.TaskID, m.StageType,
		m.Requests, m.DtStarted, m.DtEnded, m.Duration.Nanoseconds(),
		m.LatencyMin, m.LatencyAvg, m.LatencyMedian, m.LatencyMax, m.LatencyStd,
		m.ThroughputMin, m.ThroughputAvg, m.ThroughputMedian, m.ThroughputMax, m.ThroughputStd,
		m.Speedup, m.Size,
	)
	if err != nil {
		return fmt.Errorf("insert metrics: %w", err)
	}
	return nil
}

// addErrorLog appends one ErrorLog record.
func (c *Client) addErrorLog(ctx context.Context, e monitor.ErrorLog) error {
	const stmt = `
INSERT INTO error_log (
	project_id, job_id, task_id, data_type, stage_type,
	error_type, error_code, error_description, dt_error
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9
)`
	_, err := c.db.ExecContext(ctx, stmt,
		e.ProjectID, e.JobID, e.TaskID, e.DataType, e.StageType,
		e.ErrorType, e.ErrorCode, e.ErrorDescription, e.DtError,
	)
	if err != nil {
		return fmt.Errorf("insert error_log: %w", err)
	}
	return nil
}

// ErrorSink adapts Client to monitor.ErrorSink. Client.Add is already taken
// by monitor.MetricsSink's signature, so the error-log append lives on this
// thin wrapper instead of colliding with it on the same type.
type ErrorSink struct {
	client *Client
}

// NewErrorSink returns a monitor.ErrorSink backed by client.
func NewErrorSink(client *Client) *ErrorSink {
	return &ErrorSink{client: client}
}

// Add appends one ErrorLog record, satisfying monitor.ErrorSink.
func (s *ErrorSink) Add(ctx context.Context, e monitor.ErrorLog) error {
	return s.client.addErrorLog(ctx, e)
}
