package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// Archiver writes full run reports as JSON objects.
type Archiver struct {
	client storage.Client
	bucket string
	prefix string
}

// NewArchiver creates an archiver writing to bucket under prefix.
func NewArchiver(client storage.Client, bucket, prefix string) *Archiver {
	if prefix == "" {
		prefix = "reports/"
	}
	return &Archiver{client: client, bucket: bucket, prefix: prefix}
}

// ObjectName returns the object holding the report of runID.
func (a *Archiver) ObjectName(runID string) string {
	return path.Join(a.prefix, runID+".json")
}

// Archive uploads the report and returns its object name.
func (a *Archiver) Archive(ctx context.Context, r *reconcile.RunReport) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode run report: %w", err)
	}

	name := a.ObjectName(r.RunID.String())
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload run report %s: %w", name, err)
	}
	return name, nil
}

// Load downloads an archived report. Ids that are not run ids are reported as not found, so
// only objects under the report prefix can be read.
func (a *Archiver) Load(ctx context.Context, runID string) (*reconcile.RunReport, error) {
	id, err := uuid.Parse(runID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}

	name := a.ObjectName(id.String())
	obj, err := a.client.GetObject(ctx, a.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, fmt.Errorf("failed to get run report %s: %w", name, err)
	}
	defer obj.Close()

	var r reconcile.RunReport
	if err := json.NewDecoder(obj).Decode(&r); err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, fmt.Errorf("failed to decode run report %s: %w", name, err)
	}
	return &r, nil
}
