package storage

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relatosapi/internal/config"
)

func TestNewMinIO_RequiresSettings(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MinIOConfig
		wantErr error
	}{
		{name: "endpoint", cfg: config.MinIOConfig{}, wantErr: errEndpointRequired},
		{name: "credentials", cfg: config.MinIOConfig{Endpoint: "minio:9000"}, wantErr: errCredentialsRequired},
		{
			name:    "bucket",
			cfg:     config.MinIOConfig{Endpoint: "minio:9000", AccessKey: "a", SecretKey: "s"},
			wantErr: errBucketRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(tt.cfg)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, s)
		})
	}
}

func TestTracedTransport_PassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := &http.Client{Transport: tracedTransport(http.DefaultTransport)}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestPresignParams(t *testing.T) {
	assert.Empty(t, presignParams(""))
	assert.Equal(t, `inline; filename=foto.jpg`, presignParams("foto.jpg").Get("response-content-disposition"))
	assert.Equal(t, `inline; filename="nota fiscal.pdf"`, presignParams("nota fiscal.pdf").Get("response-content-disposition"))
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t, "inline", ContentDisposition(""))
	assert.Equal(t, "inline; filename=mapa.png", ContentDisposition("mapa.png"))
	assert.Equal(t, "inline; filename*=utf-8''%C3%B4nibus.jpg", ContentDisposition("ônibus.jpg"))
}

func TestObjectFromInfo(t *testing.T) {
	obj := objectFromInfo(minio.ObjectInfo{
		Key:          "anexos/x.jpg",
		Size:         3,
		ContentType:  "image/jpeg",
		UserMetadata: minio.StringMap{filenameMeta: "foto.jpg"},
	})

	assert.Equal(t, Object{Key: "anexos/x.jpg", Size: 3, ContentType: "image/jpeg", Filename: "foto.jpg"}, obj)
}
