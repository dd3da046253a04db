package checks

import (
	"context"
	"errors"
	"testing"

	"catalog-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func objectChan(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestFolders(t *testing.T) {
	assert.Equal(t, []string{"feeds", "reports"}, Folders("feeds/stock.csv", "reports/"))
	assert.Equal(t, []string{"reports"}, Folders("stock.csv", "/reports"))
	assert.Equal(t, []string{"data/in", "data"}, Folders("data/in/stock.csv", "data"))
	assert.Empty(t, Folders("", ""))
}

func TestCheckStructure(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, "catalog", []string{"feeds"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("Bucket Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(false, errors.New("timeout"))

		_, err := CheckStructure(context.Background(), mockClient, "catalog", nil)
		assert.ErrorContains(t, err, "timeout")
	})

	t.Run("Partially Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "catalog", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
			return o.Prefix == "feeds/"
		})).Return(objectChan(minio.ObjectInfo{Key: "feeds/stock.csv"}))
		mockClient.On("ListObjects", mock.Anything, "catalog", mock.Anything).Return(objectChan())

		missing, err := CheckStructure(context.Background(), mockClient, "catalog", []string{"feeds", "reports"})
		require.NoError(t, err)
		assert.Equal(t, []string{"reports"}, missing)
	})
}

func TestFixStructure(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "catalog", "reports/", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	err := FixStructure(context.Background(), mockClient, "catalog", zap.NewNop(), []string{"reports"})
	require.NoError(t, err)
	mockClient.AssertExpectations(t)

	failing := new(mocks.Client)
	failing.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("denied"))
	assert.Error(t, FixStructure(context.Background(), failing, "catalog", zap.NewNop(), []string{"feeds"}))
}
