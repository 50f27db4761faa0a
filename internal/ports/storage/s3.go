package storage

import (
	"context"
	"errors"
)

var ErrObjectNotFound = errors.New("object not found")

// IObjectStorage чтение объектов из S3-совместимого хранилища
type IObjectStorage interface {
	// Fetch содержимое объекта целиком; ErrObjectNotFound, если ключа нет
	Fetch(ctx context.Context, key string) ([]byte, error)
}
