package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/QuilGrafit/astroX/internal/ports/storage"
	"github.com/minio/minio-go/v7"
)

// maxObjectSize наборы текстов - небольшие yaml, всё крупнее считаем ошибкой загрузки
const maxObjectSize = 4 << 20

type Bucket struct {
	client *minio.Client
	name   string
	log    *slog.Logger
}

func NewBucket(client *minio.Client, name string, log *slog.Logger) *Bucket {
	return &Bucket{client: client, name: name, log: log}
}

var _ storage.IObjectStorage = (*Bucket)(nil)

func (b *Bucket) Fetch(ctx context.Context, key string) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.name, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s/%s: %w", b.name, key, err)
	}
	defer obj.Close()

	// GetObject ленивый, реальный запрос уходит на первом чтении
	data, err := io.ReadAll(io.LimitReader(obj, maxObjectSize+1))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s/%s", storage.ErrObjectNotFound, b.name, key)
		}
		return nil, fmt.Errorf("read object %s/%s: %w", b.name, key, err)
	}
	if len(data) > maxObjectSize {
		return nil, fmt.Errorf("object %s/%s exceeds %d bytes", b.name, key, maxObjectSize)
	}

	b.log.Debug("object fetched", "bucket", b.name, "key", key, "size", len(data))
	return data, nil
}

func isNotFound(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey" || resp.StatusCode == 404
	}
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
