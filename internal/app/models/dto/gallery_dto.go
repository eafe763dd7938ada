package dto

import "github.com/lumina-app/lumina/internal/pkg/unsplash"

// GalleryImageResponse represents one catalog image
type GalleryImageResponse struct {
	ID               string `json:"id"`
	Description      string `json:"description"`
	URL              string `json:"url"`
	FullURL          string `json:"fullUrl"`
	ThumbURL         string `json:"thumbUrl"`
	Color            string `json:"color"`
	Likes            int    `json:"likes"`
	PhotographerName string `json:"photographerName"`
	PhotographerURL  string `json:"photographerUrl"`
}

// GalleryPageResponse represents one page of catalog images
type GalleryPageResponse struct {
	Page   int                    `json:"page"`
	Images []GalleryImageResponse `json:"images"`
}

// ToGalleryImageResponse maps a catalog image to its API shape
func ToGalleryImageResponse(img *unsplash.Image) GalleryImageResponse {
	return GalleryImageResponse{
		ID:               img.ID,
		Description:      img.Description,
		URL:              img.URL,
		FullURL:          img.FullURL,
		ThumbURL:         img.ThumbURL,
		Color:            img.Color,
		Likes:            img.Likes,
		PhotographerName: img.Photographer.Name,
		PhotographerURL:  img.Photographer.ProfileURL,
	}
}

// ToGalleryPageResponse maps one catalog page to its API shape
func ToGalleryPageResponse(page int, images []unsplash.Image) GalleryPageResponse {
	responses := make([]GalleryImageResponse, 0, len(images))
	for i := range images {
		responses = append(responses, ToGalleryImageResponse(&images[i]))
	}
	return GalleryPageResponse{Page: page, Images: responses}
}
