package database

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/appvocai/acquire/pkg/identity"
	"github.com/appvocai/acquire/pkg/monitor"
	"github.com/appvocai/acquire/pkg/pipeline"
	testutil "github.com/appvocai/acquire/test/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient carves an isolated schema out of the shared test Postgres
// container, applies embedded migrations scoped to it, and returns a Client.
// Using a shared container with per-test schema isolation instead of a fresh
// container per test keeps the suite from paying startup cost test-by-test.
func newTestClient(t *testing.T) *Client {
	ctx := context.Background()

	connStr := testutil.NewIsolatedSchema(t)
	u, err := url.Parse(connStr)
	require.NoError(t, err)

	password, _ := u.User.Password()
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	cfg := Config{
		Host:            u.Hostname(),
		Port:            port,
		User:            u.User.Username(),
		Password:        password,
		Database:        strings.TrimPrefix(u.Path, "/"),
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 15 * time.Minute,
		SearchPath:      u.Query().Get("search_path"),
	}

	client, err := NewClient(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func testArtifactPassport(t *testing.T) identity.ArtifactPassport {
	t.Helper()
	dir := t.TempDir()
	gen := identity.NewGenerator(identity.NewCounter(dir+"/counter.json"), "test")

	project, err := identity.NewProjectPassport(gen, "productivity")
	require.NoError(t, err)
	job, err := identity.NewJobPassport(gen, project, string(pipeline.DataTypeAppData))
	require.NoError(t, err)
	task, err := identity.NewTaskPassport(gen, job)
	require.NoError(t, err)
	op, err := identity.NewOperationPassport(gen, task, "transform")
	require.NoError(t, err)
	artifact, err := identity.NewArtifactPassport(gen, op, "TransformStage")
	require.NoError(t, err)
	return artifact
}

func TestDatabaseClient_ConnectionPool(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	err := client.DB().PingContext(ctx)
	require.NoError(t, err)

	health, err := Health(ctx, client.DB())
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.Greater(t, health.MaxOpenConns, 0)
}

func TestClient_UpsertAppData_InsertThenUpdate(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	passport := testArtifactPassport(t)

	app := pipeline.AppData{
		Passport:    passport,
		TrackID:     12345,
		TrackName:   "Example App",
		Description: "an example app",
		GenreIDs:    []string{"6007", "6000"},
	}

	inserted, updated, err := client.UpsertAppData(ctx, []pipeline.AppData{app})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 0, updated)

	app.TrackName = "Example App Renamed"
	inserted, updated, err = client.UpsertAppData(ctx, []pipeline.AppData{app})
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	assert.Equal(t, 1, updated)

	var name string
	err = client.DB().QueryRowContext(ctx, `SELECT track_name FROM app_data WHERE track_id = $1`, app.TrackID).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "Example App Renamed", name)
}

func TestClient_UpsertAppReviews(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	passport := testArtifactPassport(t)

	review := pipeline.AppReview{
		Passport: passport,
		ReviewID: "review-1",
		AppID:    "12345",
		Author:   map[string]any{"name": "alice"},
		Title:    "great app",
		Body:     "does what it says",
		Rating:   "5",
		Date:     "2026-01-01",
	}

	inserted, updated, err := client.UpsertAppReviews(ctx, []pipeline.AppReview{review})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 0, updated)
}

func TestClient_MetricsSink(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	m := monitor.ExtractMetrics{
		ProjectID: "Project-productivity-20260101-test-1",
		JobID:     "Job-appdata-20260101-test-1",
		TaskID:    "Task-appdata-20260101-test-1",
		StageType: "extract",
		Requests:  10,
		DtStarted: time.Now().UTC(),
		DtEnded:   time.Now().UTC(),
		Duration:  time.Second,
	}

	err := client.Add(ctx, m)
	require.NoError(t, err)

	var count int
	err = client.DB().QueryRowContext(ctx, `SELECT count(*) FROM metrics WHERE job_id = $1`, m.JobID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestErrorSink_Add(t *testing.T) {
	client := newTestClient(t)
	sink := NewErrorSink(client)
	ctx := context.Background()

	e := monitor.ErrorLog{
		ProjectID: "Project-productivity-20260101-test-1",
		JobID:     "Job-appdata-20260101-test-1",
		TaskID:    "Task-appdata-20260101-test-1",
		DataType:  "appdata",
		StageType: "transform",
		ErrorType: "validation",
		DtError:   time.Now().UTC(),
	}

	err := sink.Add(ctx, e)
	require.NoError(t, err)

	var count int
	err = client.DB().QueryRowContext(ctx, `SELECT count(*) FROM error_log WHERE job_id = $1`, e.JobID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				Host: "localhost", Port: 5432, User: "test", Password: "test",
				Database: "test", SSLMode: "disable", MaxOpenConns: 10, MaxIdleConns: 5,
			},
			wantErr: false,
		},
		{
			name: "missing password",
			cfg: Config{
				Host: "localhost", Port: 5432, User: "test", Password: "",
				Database: "test", MaxOpenConns: 10, MaxIdleConns: 5,
			},
			wantErr: true,
		},
		{
			name: "idle conns exceed max conns",
			cfg: Config{
				Host: "localhost", Port: 5432, User: "test", Password: "test",
				Database: "test", MaxOpenConns: 5, MaxIdleConns: 10,
			},
			wantErr: true,
		},
		{
			name: "zero max open conns",
			cfg: Config{
				Host: "localhost", Port: 5432, User: "test", Password: "test",
				Database: "test", MaxOpenConns: 0, MaxIdleConns: 0,
			},
			wantErr: true,
		},
		{
			name: "negative idle conns",
			cfg: Config{
				Host: "localhost", Port: 5432, User: "test", Password: "test",
				Database: "test", MaxOpenConns: 10, MaxIdleConns: -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
