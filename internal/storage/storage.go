// Package storage keeps attachment payloads in an S3-compatible bucket for the "s3" backend.
// Payloads are streamed; nothing touches local disk.
package storage

import (
	"context"
	"io"
	"mime"
	"time"
)

// Object describes one stored attachment payload.
// Size is the exact byte count, or -1 when unknown.
type Object struct {
	Key         string
	Size        int64
	ContentType string
	Filename    string
}

// Storage is the attachment payload store.
type Storage interface {
	Put(ctx context.Context, obj Object, r io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, Object, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that serves the payload inline under filename.
	PresignGet(ctx context.Context, key, filename string, expiry time.Duration) (string, error)
}

// ContentDisposition is the header value that shows a payload inline under its submitted name.
func ContentDisposition(filename string) string {
	if filename == "" {
		return "inline"
	}
	if v := mime.FormatMediaType("inline", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "inline"
}
