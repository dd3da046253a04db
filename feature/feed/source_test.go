package feed

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "Код,Модель,Цена,Количество\nA1,Watch,100,5\nB2,Clock,250,0\n"

func TestStorageSource_Fetch(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "catalog", "feeds/stock.csv", minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader(sampleCSV)), nil)

	src := NewStorageSource(client, "catalog", "feeds/stock.csv", DecodeOptions{Columns: defaultColumns()})
	assert.Equal(t, "storage:catalog/feeds/stock.csv", src.Name())

	rows, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	set, rejected := reconcile.Normalize(rows, reconcile.DefaultNormalizeOptions())
	assert.Empty(t, rejected)
	assert.Equal(t, []reconcile.ItemKey{"A1", "B2"}, set.Keys())
}

func TestStorageSource_FetchError(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "catalog", "feeds/stock.csv", mock.Anything).
		Return(nil, errors.New("connection refused"))

	src := NewStorageSource(client, "catalog", "feeds/stock.csv", DecodeOptions{Columns: defaultColumns()})
	_, err := src.Fetch(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestHTTPSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stock.csv" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/stock.csv", 0, DecodeOptions{Columns: defaultColumns()})
	rows, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	missing := NewHTTPSource(srv.URL+"/missing.csv", 0, DecodeOptions{Columns: defaultColumns()})
	_, err = missing.Fetch(context.Background())
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestNew(t *testing.T) {
	client := new(mocks.Client)

	t.Run("storage", func(t *testing.T) {
		src, err := New(Config{Source: SourceStorage, Object: "feeds/stock.json"}, client, "catalog")
		require.NoError(t, err)
		s, ok := src.(*StorageSource)
		require.True(t, ok)
		assert.Equal(t, FormatJSON, s.opts.Format)
	})

	t.Run("storage without client", func(t *testing.T) {
		_, err := New(Config{Source: SourceStorage, Object: "x.csv"}, nil, "catalog")
		assert.Error(t, err)
	})

	t.Run("http", func(t *testing.T) {
		src, err := New(Config{Source: SourceHTTP, URL: "https://example.com/stock.csv", Delimiter: ";"}, nil, "")
		require.NoError(t, err)
		h, ok := src.(*HTTPSource)
		require.True(t, ok)
		assert.Equal(t, ';', h.opts.Delimiter)
	})

	t.Run("http without url", func(t *testing.T) {
		_, err := New(Config{Source: SourceHTTP}, nil, "")
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New(Config{Source: "ftp"}, nil, "")
		assert.ErrorContains(t, err, "unknown feed source")
	})
}

func TestConfig_NormalizeOptions(t *testing.T) {
	opts := Config{OverflowStock: 50, ReserveStock: 1, TruncatePrice: true}.NormalizeOptions()
	assert.Equal(t, 50, opts.OverflowStock)
	assert.Equal(t, 1, opts.ReserveStock)
	assert.True(t, opts.TruncatePrice)
}
