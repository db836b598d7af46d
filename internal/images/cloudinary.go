// Package images stores uploaded photos in Cloudinary and hands back public
// URLs. The rest of the system only ever sees opaque URL strings.
package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ErrNotConfigured is returned when no Cloudinary URL was provided; the
// sqlite-backed deployment can run without an image backend.
var ErrNotConfigured = errors.New("image storage is not configured")

// Service uploads review and month photos.
type Service struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// New builds the service from a cloudinary:// URL. An empty URL yields a
// disabled service that reports ErrNotConfigured on every upload.
func New(cloudinaryURL, folder string) (*Service, error) {
	folder = strings.TrimSpace(folder)
	if folder == "" {
		folder = "reviews"
	}
	if strings.TrimSpace(cloudinaryURL) == "" {
		return &Service{folder: folder}, nil
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Service{cld: cld, folder: folder}, nil
}

// Enabled reports whether uploads will be accepted.
func (s *Service) Enabled() bool {
	return s.cld != nil
}

// Upload pushes a single file and returns its public https URL.
func (s *Service) Upload(ctx context.Context, file io.Reader) (string, error) {
	if s.cld == nil {
		return "", ErrNotConfigured
	}
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: s.folder})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}
