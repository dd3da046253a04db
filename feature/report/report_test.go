package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"catalog-sync/core/database"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage/mocks"
	"catalog-sync/feature/report"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleReport(dryRun bool) *reconcile.RunReport {
	create := reconcile.NewCreate(reconcile.SourceRecord{Key: "A", Name: "Watch", Price: decimal.NewFromInt(100), Stock: 5})
	update := reconcile.NewUpdatePrice(
		reconcile.MarketplaceRecord{Key: "B", MarketplaceID: "mp-B", Price: decimal.NewFromInt(10), Stock: 1},
		reconcile.SourceRecord{Key: "B", Price: decimal.NewFromInt(12), Stock: 1},
	)

	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r := &reconcile.RunReport{
		RunID:      uuid.New(),
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		DryRun:     dryRun,
		Plan:       []reconcile.Action{create, update},
		Outcomes:   []reconcile.Outcome{},
		Rejected:   []reconcile.MalformedRecordError{{Line: 3, Key: "C", Field: "price", Reason: "not a number"}},
		Summary:    reconcile.PlanSummary{Total: 2, Creates: 1, PriceUpdates: 1},
	}
	if !dryRun {
		r.Outcomes = []reconcile.Outcome{
			{Action: create, Status: reconcile.StatusSuccess, MarketplaceID: "mp-A", Duration: 15 * time.Millisecond},
			{Action: update, Status: reconcile.StatusFailure, Kind: reconcile.KindClientFailure, Reason: "500"},
		}
		r.Execution = reconcile.SummarizeOutcomes(r.Outcomes)
	}
	return r
}

func TestFromReport(t *testing.T) {
	r := sampleReport(false)
	run := report.FromReport(r, "storage:catalog/feeds/stock.csv", "memory")

	assert.Equal(t, r.RunID.String(), run.ID)
	assert.Equal(t, 1, run.Rejected)
	assert.Equal(t, 1, run.Succeeded)
	assert.Equal(t, 1, run.Failed)
	assert.False(t, run.Complete)

	require.Len(t, run.Outcomes, 2)
	assert.Equal(t, "create", run.Outcomes[0].Action)
	assert.Equal(t, "mp-A", run.Outcomes[0].MarketplaceID)
	assert.Equal(t, int64(15), run.Outcomes[0].DurationMs)
	assert.Equal(t, "failure", run.Outcomes[1].Status)
	assert.Equal(t, "client_failure", run.Outcomes[1].Kind)
	assert.Equal(t, "10", run.Outcomes[1].PreviousPrice)
}

func TestFromReport_DryRun(t *testing.T) {
	run := report.FromReport(sampleReport(true), "feed", "memory")

	assert.True(t, run.DryRun)
	for _, o := range run.Outcomes {
		assert.Equal(t, report.StatusPlanned, o.Status)
	}
}

func newRepository(t *testing.T) *report.Repository {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	repo := report.NewRepository(db)
	require.NoError(t, repo.Migrate())
	return repo
}

func TestRepository_SaveAndGet(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	run := report.FromReport(sampleReport(false), "feed", "memory")
	require.NoError(t, repo.Save(ctx, run))

	loaded, err := repo.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "feed", loaded.Feed)
	assert.Equal(t, 2, loaded.Total)
	require.Len(t, loaded.Outcomes, 2)
	assert.Equal(t, 0, loaded.Outcomes[0].Position)
	assert.Equal(t, "A", loaded.Outcomes[0].ItemKey)
	assert.Equal(t, "B", loaded.Outcomes[1].ItemKey)
}

func TestRepository_GetNotFound(t *testing.T) {
	repo := newRepository(t)

	_, err := repo.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, report.ErrNotFound)
}

func TestRepository_List(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		r := sampleReport(true)
		r.StartedAt = r.StartedAt.Add(time.Duration(i) * time.Hour)
		run := report.FromReport(r, "feed", "memory")
		require.NoError(t, repo.Save(ctx, run))
		ids = append(ids, run.ID)
	}

	runs, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID, "newest first")
	assert.Equal(t, ids[1], runs[1].ID)
	assert.Empty(t, runs[0].Outcomes)

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestArchiver_Archive(t *testing.T) {
	client := new(mocks.Client)
	archiver := report.NewArchiver(client, "catalog", "")
	r := sampleReport(false)

	var uploaded []byte
	client.On("PutObject", mock.Anything, "catalog", "reports/"+r.RunID.String()+".json", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			uploaded, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	name, err := archiver.Archive(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "reports/"+r.RunID.String()+".json", name)

	var decoded reconcile.RunReport
	require.NoError(t, json.Unmarshal(uploaded, &decoded))
	assert.Equal(t, r.RunID, decoded.RunID)
	assert.Len(t, decoded.Outcomes, 2)
}

func TestArchiver_ArchiveError(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("bucket missing"))

	_, err := report.NewArchiver(client, "catalog", "archive").Archive(context.Background(), sampleReport(true))
	assert.ErrorContains(t, err, "bucket missing")
}

func TestArchiver_Load(t *testing.T) {
	client := new(mocks.Client)
	archiver := report.NewArchiver(client, "catalog", "archive")
	r := sampleReport(false)
	data, err := json.Marshal(r)
	require.NoError(t, err)

	client.On("GetObject", mock.Anything, "catalog", "archive/"+r.RunID.String()+".json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(data)), nil)
	client.On("GetObject", mock.Anything, "catalog", mock.Anything, mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

	loaded, err := archiver.Load(context.Background(), r.RunID.String())
	require.NoError(t, err)
	assert.Equal(t, r.RunID, loaded.RunID)
	assert.True(t, loaded.Plan[0].Price.Equal(decimal.NewFromInt(100)))

	_, err = archiver.Load(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, report.ErrNotFound)
}

func TestArchiver_LoadRejectsNonRunIDs(t *testing.T) {
	client := new(mocks.Client)
	archiver := report.NewArchiver(client, "catalog", "reports/")

	for _, id := range []string{"../feeds/stock", "missing", "", "reports/x"} {
		_, err := archiver.Load(context.Background(), id)
		assert.ErrorIs(t, err, report.ErrNotFound, id)
	}
	client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
