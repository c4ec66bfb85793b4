package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"relatosapi/internal/config"
)

// filenameMeta is the user metadata key holding the submitted filename.
// MinIO returns user metadata keys in canonical header form.
const filenameMeta = "Original-Filename"

var (
	errEndpointRequired    = errors.New("minio endpoint is required")
	errCredentialsRequired = errors.New("minio credentials are required")
	errBucketRequired      = errors.New("minio bucket is required")
)

// minioStorage stores payloads in a single bucket. Safe for concurrent use.
type minioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIO connects to the configured endpoint and creates the bucket when missing.
func NewMinIO(cfg config.MinIOConfig) (Storage, error) {
	switch {
	case cfg.Endpoint == "":
		return nil, errEndpointRequired
	case cfg.AccessKey == "" || cfg.SecretKey == "":
		return nil, errCredentialsRequired
	case cfg.Bucket == "":
		return nil, errBucketRequired
	}

	transport, err := minio.DefaultTransport(cfg.UseSSL)
	if err != nil {
		return nil, fmt.Errorf("create minio transport: %w", err)
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Transport: tracedTransport(transport),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &minioStorage{client: cli, bucket: cfg.Bucket}, nil
}

// tracedTransport wraps rt so object storage calls show up as client spans.
func tracedTransport(rt http.RoundTripper) http.RoundTripper {
	return otelhttp.NewTransport(rt,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "minio " + r.Method
		}),
	)
}

func (m *minioStorage) Put(ctx context.Context, obj Object, r io.Reader) error {
	_, err := m.client.PutObject(ctx, m.bucket, obj.Key, r, obj.Size, minio.PutObjectOptions{
		ContentType:  obj.ContentType,
		UserMetadata: map[string]string{filenameMeta: obj.Filename},
	})
	return err
}

func (m *minioStorage) Get(ctx context.Context, key string) (io.ReadCloser, Object, error) {
	rc, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, Object{}, err
	}
	// GetObject is lazy; Stat surfaces a missing key before the caller starts reading.
	st, err := rc.Stat()
	if err != nil {
		rc.Close()
		return nil, Object{}, err
	}
	return rc, objectFromInfo(st), nil
}

func (m *minioStorage) Delete(ctx context.Context, key string) error {
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}

func (m *minioStorage) PresignGet(ctx context.Context, key, filename string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, expiry, presignParams(filename))
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// presignParams asks the bucket to serve the payload inline under filename.
func presignParams(filename string) url.Values {
	params := url.Values{}
	if filename != "" {
		params.Set("response-content-disposition", ContentDisposition(filename))
	}
	return params
}

func objectFromInfo(st minio.ObjectInfo) Object {
	return Object{
		Key:         st.Key,
		Size:        st.Size,
		ContentType: st.ContentType,
		Filename:    st.UserMetadata[filenameMeta],
	}
}
