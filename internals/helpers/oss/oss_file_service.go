package helper

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// UploadThumbnail validates the multipart file, re-encodes it as WebP and
// stores it under dir. Errors are fiber errors ready for the caller.
func UploadThumbnail(ctx context.Context, store ThumbnailStore, dir string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Fichier manquant")
	}
	if fh.Size > MaxUploadSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Fichier trop volumineux (max 5 Mo)")
	}
	src, err := fh.Open()
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Impossible de lire le fichier")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Impossible de lire le fichier")
	}
	if int64(len(data)) > MaxUploadSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Fichier trop volumineux (max 5 Mo)")
	}

	encoded, err := ToThumbnailWebP(data, fh.Filename)
	if err != nil {
		if errors.Is(err, ErrUnsupportedImage) {
			return "", fiber.NewError(fiber.StatusUnsupportedMediaType, ErrUnsupportedImage.Error())
		}
		return "", fiber.NewError(fiber.StatusBadRequest, "Image invalide: "+err.Error())
	}

	key := BuildObjectKey(dir, fh.Filename, "webp", time.Now())
	url, err := store.Put(ctx, key, encoded, "image/webp")
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadGateway, "Échec de l'envoi de la miniature")
	}
	return url, nil
}

// IsMultipart reports a multipart/form-data request.
func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, "multipart/form-data")
}
