// Package unsplash is the narrow collaborator interface to the external
// image catalog. The rest of the service treats image IDs as opaque keys;
// nothing here feeds back into the interaction store.
package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/lumina-app/lumina/internal/pkg/apperrors"
)

// Photographer credits the image author
type Photographer struct {
	Name       string `json:"name"`
	Username   string `json:"username"`
	ProfileURL string `json:"profileUrl"`
}

// Image is one catalog entry in the shape the API exposes to clients
type Image struct {
	ID           string       `json:"id"`
	URL          string       `json:"url"`
	FullURL      string       `json:"fullUrl"`
	ThumbURL     string       `json:"thumbUrl"`
	Description  string       `json:"description"`
	Photographer Photographer `json:"photographer"`
	Color        string       `json:"color"`
	Likes        int          `json:"likes"`
	DownloadURL  string       `json:"downloadUrl"`
}

// Config holds the Unsplash API settings
type Config struct {
	BaseURL   string
	AccessKey string
	PerPage   int
}

// Client fetches pages from the Unsplash photos endpoint
type Client struct {
	config Config
	http   *http.Client
	logger zerolog.Logger
}

// NewClient creates a catalog client
func NewClient(config Config, logger zerolog.Logger) *Client {
	if config.PerPage <= 0 {
		config.PerPage = 12
	}
	return &Client{
		config: config,
		http:   &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

// photo mirrors the subset of the Unsplash photo payload we consume
type photo struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	Color          string `json:"color"`
	Likes          int    `json:"likes"`
	URLs           struct {
		Regular string `json:"regular"`
		Full    string `json:"full"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
	User struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Links    struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
	Links struct {
		Download string `json:"download"`
	} `json:"links"`
}

// FetchPage retrieves one page of popular photos. An empty result slice
// signals the end of the catalog.
func (c *Client) FetchPage(ctx context.Context, page int) ([]Image, error) {
	if page < 1 {
		page = 1
	}

	endpoint := fmt.Sprintf("%s/photos", c.config.BaseURL)
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(c.config.PerPage))
	q.Set("order_by", "popular")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.config.AccessKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Int("page", page).Msg("Image catalog request failed")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().Int("status", resp.StatusCode).Int("page", page).Msg("Image catalog returned an error status")
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrCatalogUnavailable, resp.StatusCode)
	}

	var photos []photo
	if err := json.NewDecoder(resp.Body).Decode(&photos); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	images := make([]Image, 0, len(photos))
	for _, p := range photos {
		images = append(images, toImage(p))
	}
	return images, nil
}

func toImage(p photo) Image {
	description := p.Description
	if description == "" {
		description = p.AltDescription
	}
	if description == "" {
		description = "Untitled"
	}
	return Image{
		ID:          p.ID,
		URL:         p.URLs.Regular,
		FullURL:     p.URLs.Full,
		ThumbURL:    p.URLs.Thumb,
		Description: description,
		Photographer: Photographer{
			Name:       p.User.Name,
			Username:   p.User.Username,
			ProfileURL: p.User.Links.HTML,
		},
		Color:       p.Color,
		Likes:       p.Likes,
		DownloadURL: p.Links.Download,
	}
}
