package domain

import (
	"context"
	"io"
)

// ImageUpload carries the raw bytes of an image attached to a post request.
type ImageUpload struct {
	Reader   io.Reader
	Filename string
}

// ImageRef points at a stored image.
type ImageRef struct {
	URL      string // delivery URL
	PublicID string // storage handle, needed to destroy the image later
}

// ImageStore is the external media storage a post's image lives in.
type ImageStore interface {
	Upload(ctx context.Context, img *ImageUpload) (ImageRef, error)

	// Destroy removes a stored image. Destroying an already-removed image
	// is not an error.
	Destroy(ctx context.Context, publicID string) error
}
