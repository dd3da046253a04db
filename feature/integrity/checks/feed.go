package checks

import (
	"context"
	"fmt"
	"time"

	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// FeedReport describes the feed object in the bucket.
type FeedReport struct {
	Object       string    `json:"object"`
	Exists       bool      `json:"exists"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified,omitempty"`
	AgeSeconds   int64     `json:"age_seconds"`
	Stale        bool      `json:"stale"`
	Status       string    `json:"status"` // "ok", "missing", "empty", "stale"
}

// CheckFeed inspects the feed object. A feed older than maxAge is stale; zero disables that check.
func CheckFeed(ctx context.Context, client storage.Client, bucket, object string, maxAge time.Duration, now time.Time) (*FeedReport, error) {
	report := &FeedReport{Object: object, Status: "ok"}

	info, err := client.StatObject(ctx, bucket, object, minio.StatObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			report.Status = "missing"
			return report, nil
		}
		return nil, fmt.Errorf("failed to stat feed %s: %w", object, err)
	}

	report.Exists = true
	report.Size = info.Size
	report.LastModified = info.LastModified
	report.AgeSeconds = int64(now.Sub(info.LastModified).Seconds())

	switch {
	case info.Size == 0:
		report.Status = "empty"
	case maxAge > 0 && now.Sub(info.LastModified) > maxAge:
		report.Stale = true
		report.Status = "stale"
	}
	return report, nil
}
