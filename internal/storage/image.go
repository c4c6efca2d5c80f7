// Package storage persists uploaded report images on local disk or S3.
package storage

import (
	"context"
	"fmt"
	"path"
	"time"

	appErrors "lost-and-found/pkg/errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxImageBytes is the default upload ceiling.
const MaxImageBytes = 5 << 20

var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

// ImageStore saves an object under key and returns its public URL.
type ImageStore interface {
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Image is an upload that passed content sniffing.
type Image struct {
	Data        []byte
	ContentType string
	Extension   string
}

// DetectImage sniffs data and accepts only PNG or JPEG within maxBytes.
func DetectImage(data []byte, maxBytes int64) (*Image, error) {
	if len(data) == 0 {
		return nil, appErrors.ErrImageMissing
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, appErrors.ErrImageTooLarge
	}

	mtype := mimetype.Detect(data)
	for contentType, ext := range allowedImageTypes {
		if mtype.Is(contentType) {
			return &Image{Data: data, ContentType: contentType, Extension: ext}, nil
		}
	}
	return nil, appErrors.ErrImageType
}

// ObjectKey builds a unique key such as "lost/42/20240102-<uuid>.png".
func ObjectKey(kind string, reportID uint, ext string) string {
	name := fmt.Sprintf("%s-%s%s", time.Now().UTC().Format("20060102"), uuid.NewString(), ext)
	return path.Join(kind, fmt.Sprint(reportID), name)
}
