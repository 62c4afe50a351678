package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yogesh1825/CareerConnect-Job-Portal/config"
)

type memoryBackend struct {
	objects map[string][]byte
	types   map[string]string
	failPut bool
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{objects: map[string][]byte{}, types: map[string]string{}}
}

func (b *memoryBackend) EnsureBucket(ctx context.Context) error { return nil }

func (b *memoryBackend) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if b.failPut {
		return "", errors.New("backend unavailable")
	}
	b.objects[key] = data
	b.types[key] = contentType
	return "https://files.test/" + key, nil
}

func (b *memoryBackend) Delete(ctx context.Context, key string) error {
	delete(b.objects, key)
	return nil
}

func (b *memoryBackend) Bucket() string { return "uploads" }

func TestUploadKeysUnderFolder(t *testing.T) {
	backend := newMemoryBackend()
	s := NewStorage(backend, "/careerconnect/")

	object, err := s.Upload(context.Background(), File{Name: "Resume.PDF", Data: []byte("%PDF-1.4\n")})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(object.Key, "careerconnect/"))
	assert.True(t, strings.HasSuffix(object.Key, ".pdf"))
	assert.Equal(t, "https://files.test/"+object.Key, object.URL)
	assert.Equal(t, "application/pdf", object.ContentType)
	assert.Equal(t, "application/pdf", backend.types[object.Key])

	require.NoError(t, s.Remove(context.Background(), object.Key))
	assert.Empty(t, backend.objects)
	assert.Equal(t, "uploads", s.Bucket())
}

func TestUploadUsesDetectedExtension(t *testing.T) {
	s := NewStorage(newMemoryBackend(), "")

	object, err := s.Upload(context.Background(), File{Name: "photo", Data: []byte("\x89PNG\r\n\x1a\n")})
	require.NoError(t, err)
	assert.NotContains(t, object.Key, "/")
	assert.True(t, strings.HasSuffix(object.Key, ".png"))
}

func TestUploadRejectsInvalidFiles(t *testing.T) {
	backend := newMemoryBackend()
	s := NewStorage(backend, "x")

	_, err := s.Upload(context.Background(), File{Name: "empty.txt"})
	assert.Error(t, err)

	_, err = s.Upload(context.Background(), File{Name: "big.bin", Data: make([]byte, MaxUploadBytes+1)})
	assert.Error(t, err)

	backend.failPut = true
	_, err = s.Upload(context.Background(), File{Name: "cv.pdf", Data: []byte("%PDF-1.4\n")})
	assert.ErrorContains(t, err, "backend unavailable")
}

func TestNewWithoutBackend(t *testing.T) {
	s, err := New(context.Background(), configWithBackend(""))
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = New(context.Background(), configWithBackend("ftp"))
	assert.Error(t, err)
}

func TestDataURI(t *testing.T) {
	uri := DataURI([]byte("%PDF-1.4\n"))
	assert.Equal(t, "data:application/pdf;base64,JVBERi0xLjQK", uri)
}

func configWithBackend(backend string) config.StorageConfig {
	return config.StorageConfig{Backend: backend}
}
