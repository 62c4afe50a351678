package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/yogesh1825/CareerConnect-Job-Portal/config"
)

// MaxUploadBytes caps the size of a single uploaded file.
const MaxUploadBytes = 10 << 20

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	// Put stores data under key and returns the public URL of the object.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// File is an uploaded file as received from a client.
type File struct {
	Name string
	Data []byte
}

// Object describes a stored upload.
type Object struct {
	Key         string
	URL         string
	ContentType string
}

// Storage wraps an ObjectStorage backend with a stable API.
type Storage struct {
	backend ObjectStorage
	folder  string
}

// NewStorage constructs a Storage wrapper for the provided backend. Objects
// are keyed under folder.
func NewStorage(backend ObjectStorage, folder string) *Storage {
	return &Storage{backend: backend, folder: strings.Trim(folder, "/")}
}

// New builds the backend selected by cfg. It returns nil when no backend is
// configured.
func New(ctx context.Context, cfg config.StorageConfig) (*Storage, error) {
	var (
		backend ObjectStorage
		err     error
	)
	switch cfg.Backend {
	case "":
		return nil, nil
	case "minio":
		backend, err = NewMinioClient(cfg.Minio)
	case "gcs":
		backend, err = NewGCSClient(ctx, cfg.GCS)
	case "cloudinary":
		backend, err = NewCloudinaryClient(cfg.Cloudinary)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return NewStorage(backend, cfg.Folder), nil
}

// EnsureBucket ensures the configured bucket exists.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// Upload stores file under a fresh key and returns the stored object.
func (s *Storage) Upload(ctx context.Context, file File) (Object, error) {
	if len(file.Data) == 0 {
		return Object{}, errors.New("empty upload")
	}
	if len(file.Data) > MaxUploadBytes {
		return Object{}, errors.New("uploaded file too large")
	}

	detected := mimetype.Detect(file.Data)
	key := s.objectKey(file.Name, detected.Extension())
	url, err := s.backend.Put(ctx, key, file.Data, detected.String())
	if err != nil {
		return Object{}, fmt.Errorf("put %s: %w", key, err)
	}
	return Object{Key: key, URL: url, ContentType: detected.String()}, nil
}

// Remove deletes a previously uploaded object.
func (s *Storage) Remove(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, key)
}

// Bucket returns the configured bucket name.
func (s *Storage) Bucket() string {
	return s.backend.Bucket()
}

func (s *Storage) objectKey(filename, detectedExt string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = detectedExt
	}
	name := uuid.NewString() + ext
	if s.folder == "" {
		return name
	}
	return s.folder + "/" + name
}

func newReader(data []byte) *bytes.Reader {
	return bytes.NewReader(data)
}
