package api

import (
	"bytes"
	"context"
	"image"
	"net/url"

	"github.com/disintegration/imaging"
)

// FetchImage fetches u and decodes the body as an image (JPEG, PNG, GIF, BMP, TIFF).
func FetchImage(ctx context.Context, c *HTTPClient, u *url.URL, caller string) (image.Image, error) {
	body, err := c.get(ctx, u, caller)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, logged(caller, newError(InvalidResponse, err))
	}
	return img, nil
}
