package storage

import (
	"encoding/base64"

	"github.com/gabriel-vasile/mimetype"
)

// DataURI encodes data as a base64 data URI using its sniffed content type.
func DataURI(data []byte) string {
	contentType := mimetype.Detect(data).String()
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
