package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageSource reads the feed from an object in the storage bucket.
type StorageSource struct {
	client storage.Client
	bucket string
	object string
	opts   DecodeOptions
}

// NewStorageSource creates a feed source backed by an object storage object.
func NewStorageSource(client storage.Client, bucket, object string, opts DecodeOptions) *StorageSource {
	if opts.Format == "" {
		opts.Format = DetectFormat(object)
	}
	return &StorageSource{client: client, bucket: bucket, object: object, opts: opts}
}

// Name returns the object location.
func (s *StorageSource) Name() string {
	return fmt.Sprintf("storage:%s/%s", s.bucket, s.object)
}

// Fetch downloads and decodes the feed object.
func (s *StorageSource) Fetch(ctx context.Context) ([]reconcile.RawRow, error) {
	reader, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get feed object: %w", err)
	}
	defer reader.Close()

	rows, err := Decode(reader, s.opts)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("feed object %s not found: %w", s.object, err)
		}
		return nil, err
	}
	return rows, nil
}

// HTTPSource downloads the feed from a URL.
type HTTPSource struct {
	url    string
	client *http.Client
	opts   DecodeOptions
}

// NewHTTPSource creates a feed source that downloads url with the given timeout.
func NewHTTPSource(url string, timeout time.Duration, opts DecodeOptions) *HTTPSource {
	if opts.Format == "" {
		opts.Format = DetectFormat(url)
	}
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
		opts:   opts,
	}
}

// Name returns the feed URL.
func (s *HTTPSource) Name() string {
	return "http:" + s.url
}

// Fetch downloads and decodes the feed.
func (s *HTTPSource) Fetch(ctx context.Context) ([]reconcile.RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("failed to download feed: unexpected status %d", resp.StatusCode)
	}

	return Decode(resp.Body, s.opts)
}

// New builds the configured feed source.
func New(cfg Config, client storage.Client, bucket string) (reconcile.FeedSource, error) {
	opts := DecodeOptions{
		Format:    cfg.Format,
		Columns:   cfg.Columns(),
		Delimiter: parseDelimiter(cfg.Delimiter),
		SkipRows:  cfg.SkipRows,
	}

	switch cfg.Source {
	case SourceStorage, "":
		if client == nil {
			return nil, fmt.Errorf("storage feed source requires a storage client")
		}
		if cfg.Object == "" {
			return nil, fmt.Errorf("storage feed source requires an object name")
		}
		return NewStorageSource(client, bucket, cfg.Object, opts), nil
	case SourceHTTP:
		if cfg.URL == "" {
			return nil, fmt.Errorf("http feed source requires a url")
		}
		return NewHTTPSource(cfg.URL, cfg.Timeout(), opts), nil
	default:
		return nil, fmt.Errorf("unknown feed source: %s", cfg.Source)
	}
}

// NormalizeOptions returns the reconcile normalization options for this feed.
func (c Config) NormalizeOptions() reconcile.NormalizeOptions {
	return reconcile.NormalizeOptions{
		OverflowStock: c.OverflowStock,
		ReserveStock:  c.ReserveStock,
		TruncatePrice: c.TruncatePrice,
	}
}
