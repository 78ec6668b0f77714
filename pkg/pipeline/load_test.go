package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	appDataCalls    int
	appReviewsCalls int
}

func (f *fakeRepository) UpsertAppData(ctx context.Context, apps []AppData) (int, int, error) {
	f.appDataCalls++
	return len(apps), 0, nil
}

func (f *fakeRepository) UpsertAppReviews(ctx context.Context, reviews []AppReview) (int, int, error) {
	f.appReviewsCalls++
	return 0, len(reviews), nil
}

func TestLoadStage_UpsertsAppDataOnly(t *testing.T) {
	repo := &fakeRepository{}
	stage := NewLoadStage(repo)

	result, err := stage.Run(context.Background(), TransformResult{AppData: []AppData{{}, {}}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 1, repo.appDataCalls)
	assert.Equal(t, 0, repo.appReviewsCalls)
}

func TestLoadStage_UpsertsBothWhenPresent(t *testing.T) {
	repo := &fakeRepository{}
	stage := NewLoadStage(repo)

	result, err := stage.Run(context.Background(), TransformResult{
		AppData:    []AppData{{}},
		AppReviews: []AppReview{{}, {}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 2, result.Updated)
}
