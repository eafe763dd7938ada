package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lumina-app/lumina/internal/pkg/unsplash"
)

// GalleryService proxies the external image catalog. Image IDs flow from
// here into the interaction store as opaque keys.
type GalleryService struct {
	catalog Catalog
	logger  zerolog.Logger
}

// NewGalleryService creates a new GalleryService
func NewGalleryService(catalog Catalog, logger zerolog.Logger) *GalleryService {
	return &GalleryService{catalog: catalog, logger: logger}
}

// GetPage fetches one catalog page. An empty slice means the catalog has
// no more pages.
func (s *GalleryService) GetPage(ctx context.Context, page int) ([]unsplash.Image, error) {
	if page < 1 {
		page = 1
	}
	return s.catalog.FetchPage(ctx, page)
}
