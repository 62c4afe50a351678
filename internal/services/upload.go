package services

import (
	"context"
	"log/slog"

	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/storage"
)

// Uploader stores user-supplied files. *storage.Storage satisfies it.
type Uploader interface {
	Upload(ctx context.Context, file storage.File) (storage.Object, error)
	Remove(ctx context.Context, key string) error
}

func upload(ctx context.Context, uploader Uploader, file *storage.File) (storage.Object, error) {
	if file == nil {
		return storage.Object{}, nil
	}
	if uploader == nil {
		return storage.Object{}, ErrUploadUnavailable
	}
	return uploader.Upload(ctx, *file)
}

// discard removes an object whose owning write failed.
func discard(ctx context.Context, uploader Uploader, object storage.Object) {
	if uploader == nil || object.Key == "" {
		return
	}
	if err := uploader.Remove(ctx, object.Key); err != nil {
		slog.WarnContext(ctx, "failed to remove orphaned upload", "key", object.Key, "error", err)
	}
}
