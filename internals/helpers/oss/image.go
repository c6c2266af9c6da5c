package helper

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	xwebp "golang.org/x/image/webp"
)

const (
	// thumbnails never exceed this on either side
	MaxThumbnailSide = 1280
	MaxUploadSize    = int64(5 * 1024 * 1024)
	webpQuality      = float32(80)
)

var ErrUnsupportedImage = errors.New("format d'image non supporté (jpg/png/webp)")

// decodeImage sniffs the first 512 bytes, then falls back to the extension.
func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, errors.New("fichier vide")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	kind := http.DetectContentType(head)
	if !strings.HasPrefix(kind, "image/") {
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".jpg", ".jpeg":
			kind = "image/jpeg"
		case ".png":
			kind = "image/png"
		case ".webp":
			kind = "image/webp"
		}
	}

	r := bytes.NewReader(all)
	switch {
	case strings.Contains(kind, "jpeg"):
		return jpeg.Decode(r)
	case strings.Contains(kind, "png"):
		return png.Decode(r)
	case strings.Contains(kind, "webp"):
		return xwebp.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, kind)
	}
}

// ToThumbnailWebP downscales (keep aspect, never upscales) and re-encodes as
// lossy WebP. Decoding stays pure Go; only the encoder needs cgo.
func ToThumbnailWebP(data []byte, filename string) ([]byte, error) {
	img, err := decodeImage(data, filename)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() > MaxThumbnailSide || b.Dy() > MaxThumbnailSide {
		img = imaging.Fit(img, MaxThumbnailSide, MaxThumbnailSide, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
