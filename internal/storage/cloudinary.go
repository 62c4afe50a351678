package storage

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/yogesh1825/CareerConnect-Job-Portal/config"
)

// CloudinaryClient uploads files to Cloudinary as data URIs.
type CloudinaryClient struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryClient constructs a Cloudinary client from a CLOUDINARY_URL.
func NewCloudinaryClient(cfg config.CloudinaryConfig) (*CloudinaryClient, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("cloudinary url is required")
	}
	cld, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryClient{cld: cld}, nil
}

// EnsureBucket is a no-op; Cloudinary accounts have no buckets to create.
func (c *CloudinaryClient) EnsureBucket(ctx context.Context) error {
	return nil
}

// Put uploads data and returns the secure delivery URL.
func (c *CloudinaryClient) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	result, err := c.cld.Upload.Upload(ctx, DataURI(data), uploader.UploadParams{
		PublicID:     publicID(key),
		ResourceType: "auto",
	})
	if err != nil {
		return "", err
	}
	if result.Error.Message != "" {
		return "", errors.New(result.Error.Message)
	}
	return result.SecureURL, nil
}

// Delete destroys the asset uploaded under key.
func (c *CloudinaryClient) Delete(ctx context.Context, key string) error {
	result, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID(key)})
	if err != nil {
		return err
	}
	if result.Error.Message != "" {
		return errors.New(result.Error.Message)
	}
	return nil
}

// Bucket returns the Cloudinary cloud name.
func (c *CloudinaryClient) Bucket() string {
	return c.cld.Config.Cloud.CloudName
}

func publicID(key string) string {
	return strings.TrimSuffix(key, path.Ext(key))
}
