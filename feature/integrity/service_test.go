package integrity

import (
	"context"
	"testing"
	"time"

	"catalog-sync/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func emptyListing() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func TestService_Structure(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "catalog").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "catalog", mock.Anything).Return(emptyListing())

	svc := NewService(mockClient, "catalog", zap.NewNop(), nil, Options{FeedObject: "feeds/stock.csv", ReportPrefix: "reports/"})

	missing, err := svc.CheckStructure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"feeds", "reports"}, missing)
}

func TestService_CheckFeed(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mockClient := new(mocks.Client)
	mockClient.On("StatObject", mock.Anything, "catalog", "feeds/stock.csv", mock.Anything).
		Return(minio.ObjectInfo{Size: 10, LastModified: now.Add(-2 * time.Hour)}, nil)

	svc := NewService(mockClient, "catalog", zap.NewNop(), nil, Options{FeedObject: "feeds/stock.csv", FeedMaxAge: time.Hour})
	svc.now = func() time.Time { return now }

	feed, err := svc.CheckFeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stale", feed.Status)
	assert.Equal(t, int64(7200), feed.AgeSeconds)

	skipped := NewService(mockClient, "catalog", zap.NewNop(), nil, Options{})
	feed, err = skipped.CheckFeed(context.Background())
	require.NoError(t, err)
	assert.Nil(t, feed)
}

func TestService_CheckDatabase(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	cols := []string{"Field", "Type", "Null", "Key", "Default", "Extra"}
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `sync_runs`").WillReturnRows(sqlmock.NewRows(cols))
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `sync_outcomes`").WillReturnRows(sqlmock.NewRows(cols))

	svc := NewService(new(mocks.Client), "catalog", zap.NewNop(), db, Options{})

	report, err := svc.CheckDatabase()
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "missing_table", report.Tables["sync_runs"].Status)
	assert.Equal(t, "missing_table", report.Tables["sync_outcomes"].Status)
	assert.NoError(t, sqlMock.ExpectationsWereMet())

	_, err = NewService(new(mocks.Client), "catalog", zap.NewNop(), nil, Options{}).CheckDatabase()
	assert.Error(t, err)
}
