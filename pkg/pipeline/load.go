package pipeline

import "context"

// Repository is the out-of-scope relational persistence layer LoadStage
// upserts into. An app's categories (its genre IDs) travel with the app
// record, so each upsert replaces them wholesale.
type Repository interface {
	UpsertAppData(ctx context.Context, apps []AppData) (inserted, updated int, err error)
	UpsertAppReviews(ctx context.Context, reviews []AppReview) (inserted, updated int, err error)
}

// LoadResult reports how many records LoadStage wrote.
type LoadResult struct {
	Inserted int
	Updated  int
}

// LoadStage batch-upserts TransformStage's output into a Repository.
type LoadStage struct {
	repo Repository
}

// NewLoadStage constructs a LoadStage writing into repo.
func NewLoadStage(repo Repository) *LoadStage {
	return &LoadStage{repo: repo}
}

// Run upserts whichever of result.AppData/result.AppReviews is populated.
func (s *LoadStage) Run(ctx context.Context, result TransformResult) (LoadResult, error) {
	var total LoadResult

	if len(result.AppData) > 0 {
		ins, upd, err := s.repo.UpsertAppData(ctx, result.AppData)
		if err != nil {
			return total, err
		}
		total.Inserted += ins
		total.Updated += upd
	}

	if len(result.AppReviews) > 0 {
		ins, upd, err := s.repo.UpsertAppReviews(ctx, result.AppReviews)
		if err != nil {
			return total, err
		}
		total.Inserted += ins
		total.Updated += upd
	}

	return total, nil
}
