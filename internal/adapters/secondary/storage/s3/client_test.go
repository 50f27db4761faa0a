package s3

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuilGrafit/astroX/internal/ports/storage"
)

const noSuchKeyXML = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`

// fakeS3 отдаёт объекты бакета horoscope по path-style адресам
func fakeS3(t *testing.T, objects map[string]string) *minio.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(r.URL.Path, "/horoscope/")
		body, ok := objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, noSuchKeyXML)
			return
		}
		// minio-go разбирает метаданные объекта из заголовков ответа
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		w.Header().Set("ETag", `"`+strconv.Itoa(len(body))+`-etag"`)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	client, err := minio.New(strings.TrimPrefix(srv.URL, "http://"), &minio.Options{
		Creds:        credentials.NewStaticV4("key", "secret", ""),
		Region:       "us-east-1",
		BucketLookup: minio.BucketLookupPath,
	})
	require.NoError(t, err)
	return client
}

func TestBucket_Fetch(t *testing.T) {
	client := fakeS3(t, map[string]string{"ruleset/ruleset.yaml": "version: custom\n"})
	bucket := NewBucket(client, "horoscope", slog.New(slog.NewTextHandler(io.Discard, nil)))

	data, err := bucket.Fetch(context.Background(), "ruleset/ruleset.yaml")
	require.NoError(t, err)
	assert.Equal(t, "version: custom\n", string(data))

	_, err = bucket.Fetch(context.Background(), "ruleset/missing.yaml")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestBucket_FetchTooLarge(t *testing.T) {
	client := fakeS3(t, map[string]string{"big": strings.Repeat("x", maxObjectSize+1)})
	bucket := NewBucket(client, "horoscope", slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := bucket.Fetch(context.Background(), "big")
	assert.ErrorContains(t, err, "exceeds")
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, (*Config)(nil).Enabled())
	assert.False(t, (&Config{Bucket: "horoscope"}).Enabled())
	assert.True(t, (&Config{Host: "localhost:9000"}).Enabled())
}
