package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/url"

	"eventize/api"
	"eventize/models"

	"github.com/disintegration/imaging"
)

const imageServiceCaller = "ImageService"

var ErrEventHasNoImage = errors.New("event has no image")

// ImageService loads event artwork for the HTTP layer.
type ImageService struct {
	httpClient *api.HTTPClient
}

func NewImageService(httpClient *api.HTTPClient) *ImageService {
	return &ImageService{httpClient: httpClient}
}

// EventImage fetches the event's image and scales it down to maxWidth,
// keeping the aspect ratio. maxWidth <= 0 keeps the original size.
func (s *ImageService) EventImage(ctx context.Context, e models.Event, maxWidth int) (image.Image, error) {
	if e.Content.ImageURL == nil || *e.Content.ImageURL == "" {
		return nil, fmt.Errorf("%w: %s", ErrEventHasNoImage, e.EventUUID)
	}
	u, err := url.Parse(*e.Content.ImageURL)
	if err == nil && u.Scheme != "http" && u.Scheme != "https" {
		err = fmt.Errorf("unsupported image url scheme %q", u.Scheme)
	}
	if err != nil {
		return nil, NewEventFetchError(&api.NetworkError{Kind: api.InvalidURL, Err: err})
	}

	img, err := api.FetchImage(ctx, s.httpClient, u, imageServiceCaller)
	if err != nil {
		return nil, NewEventFetchError(err)
	}
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}
	return img, nil
}
