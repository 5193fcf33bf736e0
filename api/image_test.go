package api

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.Set(1, 1, color.RGBA{R: 255, A: 255})
	var pngBytes bytes.Buffer
	require.NoError(t, png.Encode(&pngBytes, src))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/banner.png" {
			w.Header().Set("Content-Type", "image/png")
			w.Write(pngBytes.Bytes())
			return
		}
		w.Write([]byte("definitely not an image"))
	}))
	defer srv.Close()
	client := NewHTTPClient(srv.URL)

	t.Run("decodes png", func(t *testing.T) {
		img, err := FetchImage(context.Background(), client, mustURL(t, srv.URL+"/banner.png"), "NetworkImageView")

		require.NoError(t, err)
		assert.Equal(t, 4, img.Bounds().Dx())
		assert.Equal(t, 3, img.Bounds().Dy())
	})

	t.Run("rejects non-image bytes", func(t *testing.T) {
		captureLog(t)
		_, err := FetchImage(context.Background(), client, mustURL(t, srv.URL+"/text"), "NetworkImageView")

		assert.True(t, errors.Is(err, ErrInvalidResponse))
	})
}
