package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/appvocai/acquire/pkg/acqresponse"
	"github.com/appvocai/acquire/pkg/identity"
	"github.com/appvocai/acquire/pkg/monitor"
	"github.com/appvocai/acquire/pkg/storefront"
	"github.com/appvocai/acquire/pkg/taxonomy"
)

// TransformResult is TransformStage's output: the typed entities mapped
// from a batch's valid responses, tagged with how many responses failed
// validation.
type TransformResult struct {
	AppData    []AppData
	AppReviews []AppReview
	ErrorCount int
}

// TransformStage validates each response body against the expected
// storefront schema and maps it into typed entities. Per-response
// validation failures are counted and logged, not fatal, unless the whole
// batch yields zero valid records.
type TransformStage struct {
	dataType  DataType
	appID     string // set for DataTypeAppReview; the app the batch's reviews belong to
	gen       *identity.Generator
	op        identity.OperationPassport
	errorSink monitor.ErrorSink
	identity  Identity
}

// Identity carries the lineage fields stamped onto every ErrorLog
// TransformStage emits.
type Identity struct {
	ProjectID string
	JobID     string
	TaskID    string
}

// NewTransformStage constructs a TransformStage for dataType. op is the
// operation passport each mapped entity's artifact is chained from; appID
// is required (and only meaningful) for DataTypeAppReview.
func NewTransformStage(dataType DataType, appID string, gen *identity.Generator, op identity.OperationPassport, errorSink monitor.ErrorSink, id Identity) *TransformStage {
	return &TransformStage{dataType: dataType, appID: appID, gen: gen, op: op, errorSink: errorSink, identity: id}
}

// Run maps batch's valid responses into typed entities.
func (s *TransformStage) Run(ctx context.Context, batch acqresponse.Batch) (TransformResult, error) {
	var result TransformResult
	valid := batch.Valid()

	for _, r := range valid {
		switch s.dataType {
		case DataTypeAppData:
			items, err := s.transformAppData(r)
			if err != nil {
				result.ErrorCount++
				s.logError(ctx, err)
				continue
			}
			result.AppData = append(result.AppData, items...)
		case DataTypeAppReview:
			items, err := s.transformAppReview(r)
			if err != nil {
				result.ErrorCount++
				s.logError(ctx, err)
				continue
			}
			result.AppReviews = append(result.AppReviews, items...)
		default:
			result.ErrorCount++
			s.logError(ctx, fmt.Errorf("%w: unknown data type %q", taxonomy.ErrValidation, s.dataType))
		}
	}

	if len(valid) > 0 && len(result.AppData) == 0 && len(result.AppReviews) == 0 {
		return result, fmt.Errorf("pipeline: transform stage: %w: all %d responses failed validation", taxonomy.ErrValidation, len(valid))
	}
	return result, nil
}

func (s *TransformStage) transformAppData(r *acqresponse.Response) ([]AppData, error) {
	var body storefront.SearchResponse
	if err := remarshal(r.Content, &body); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %v", taxonomy.ErrValidation, err)
	}

	out := make([]AppData, 0, len(body.Results))
	for _, dto := range body.Results {
		artifact, err := identity.NewArtifactPassport(s.gen, s.op, "TransformStage")
		if err != nil {
			return nil, err
		}
		out = append(out, AppData{
			Passport:                           artifact,
			TrackID:                            dto.TrackID,
			TrackName:                          dto.TrackName,
			TrackCensoredName:                  dto.TrackCensoredName,
			BundleID:                           dto.BundleID,
			Description:                        dto.Description,
			PrimaryGenreID:                     dto.PrimaryGenreID,
			PrimaryGenreName:                   dto.PrimaryGenreName,
			AverageUserRating:                  dto.AverageUserRating,
			AverageUserRatingForCurrentVersion: dto.AverageUserRatingForCurrentVersion,
			UserRatingCount:                    dto.UserRatingCount,
			UserRatingCountForCurrentVersion:   dto.UserRatingCountForCurrentVersion,
			ArtistID:                           dto.ArtistID,
			ArtistName:                         dto.ArtistName,
			ReleaseDate:                        dto.ReleaseDate,
			CurrentVersionReleaseDate:          dto.CurrentVersionReleaseDate,
			Price:                              dto.Price,
			Currency:                           dto.Currency,
			GenreIDs:                           dto.GenreIDs,
			ArtistViewURL:                      dto.ArtistViewURL,
			SellerName:                         dto.SellerName,
			SellerURL:                          dto.SellerURL,
			TrackContentRating:                 dto.TrackContentRating,
			ContentAdvisoryRating:              dto.ContentAdvisoryRating,
			FileSizeBytes:                      dto.FileSizeBytes,
			MinimumOsVersion:                   dto.MinimumOsVersion,
			Version:                            dto.Version,
			ReleaseNotes:                       dto.ReleaseNotes,
			ArtworkURL100:                      dto.ArtworkURL100,
			TrackViewURL:                       dto.TrackViewURL,
			ArtworkURL512:                      dto.ArtworkURL512,
			ArtworkURL60:                       dto.ArtworkURL60,
			IpadScreenshotURLs:                 dto.IpadScreenshotURLs,
			ScreenshotURLs:                     dto.ScreenshotURLs,
			SupportedDevices:                   dto.SupportedDevices,
		})
	}
	return out, nil
}

func (s *TransformStage) transformAppReview(r *acqresponse.Response) ([]AppReview, error) {
	var body storefront.ReviewsResponse
	if err := remarshal(r.Content, &body); err != nil {
		return nil, fmt.Errorf("%w: decode reviews response: %v", taxonomy.ErrValidation, err)
	}

	out := make([]AppReview, 0, len(body.UserReviewList))
	for _, dto := range body.UserReviewList {
		artifact, err := identity.NewArtifactPassport(s.gen, s.op, "TransformStage")
		if err != nil {
			return nil, err
		}
		out = append(out, AppReview{
			Passport: artifact,
			ReviewID: dto.ID,
			AppID:    s.appID,
			Author:   dto.Author,
			Title:    dto.Title,
			Body:     dto.Body,
			Rating:   dto.Rating,
			Date:     dto.Date,
		})
	}
	return out, nil
}

func (s *TransformStage) logError(ctx context.Context, err error) {
	if s.errorSink == nil {
		return
	}
	_ = s.errorSink.Add(ctx, monitor.ErrorLog{
		ProjectID:        s.identity.ProjectID,
		JobID:            s.identity.JobID,
		TaskID:           s.identity.TaskID,
		DataType:         string(s.dataType),
		StageType:        "transform",
		ErrorType:        "validation",
		ErrorDescription: err.Error(),
		DtError:          time.Now(),
	})
}

// remarshal round-trips content (decoded generically as any by the
// session) through JSON into a typed destination, the Go equivalent of the
// source's Pydantic model validation.
func remarshal(content any, dst any) error {
	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}
