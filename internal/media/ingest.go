// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package media resolves an image URL for a publication or banner slide,
// either by uploading a submitted file to object storage or by accepting
// a manually pasted URL. The manual URL always wins: it exists so a slow
// or broken upload path never blocks an admin from saving.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register WebP decoder
)

var (
	// ErrNoImage is returned when neither a file nor a manual URL was
	// supplied. Whether that is an error is the caller's decision: a
	// fresh publication needs an image, an edit does not.
	ErrNoImage = errors.New("media: no image supplied")

	// ErrUploadFailed wraps every failure on the upload path so callers
	// get a definite signal instead of an empty URL. The admin UI reacts
	// by offering the paste-a-URL escape hatch.
	ErrUploadFailed = errors.New("media: upload failed")
)

const (
	// largeFileBytes flags uploads worth keeping an eye on. Large files
	// are allowed — flagged, not rejected.
	largeFileBytes = 5 << 20

	// maxImagePixels caps decoded size to prevent memory bombs.
	// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
	maxImagePixels = 100_000_000
)

// allowedImageTypes defines MIME types accepted for upload.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Uploader is the slice of the storage client the ingestor needs.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	FileURL(key string) string
}

// Ingestor turns an uploaded file or a manual URL into a public image URL.
type Ingestor struct {
	storage Uploader
}

// NewIngestor creates an Ingestor. storage may be nil when S3 is not
// configured; manual URLs still work, file uploads fail.
func NewIngestor(storage Uploader) *Ingestor {
	return &Ingestor{storage: storage}
}

// Ingest resolves an image URL. A non-empty manualURL takes precedence
// unconditionally — the file is not touched, let alone uploaded. With
// only a file, the image is validated, stored under a collision-resistant
// key, and its public URL returned. Any upload-path failure comes back
// wrapped in ErrUploadFailed; with neither input the result is ErrNoImage.
func (i *Ingestor) Ingest(ctx context.Context, file multipart.File, header *multipart.FileHeader, manualURL string) (string, error) {
	if manualURL = strings.TrimSpace(manualURL); manualURL != "" {
		return manualURL, nil
	}
	if file == nil || header == nil {
		return "", ErrNoImage
	}

	if i.storage == nil {
		return "", fmt.Errorf("%w: object storage is not configured", ErrUploadFailed)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("%w: read file: %v", ErrUploadFailed, err)
	}

	contentType, err := validateImage(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	if len(data) > largeFileBytes {
		slog.Warn("large image upload",
			"filename", header.Filename,
			"size_bytes", len(data),
		)
	}

	key := buildKey(header.Filename, contentType)
	if err := i.storage.Upload(ctx, key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return i.storage.FileURL(key), nil
}

// validateImage sniffs the payload's content type and decode-checks the
// header. Returns the detected MIME type.
func validateImage(data []byte) (string, error) {
	contentType := http.DetectContentType(data)
	if !allowedImageTypes[contentType] {
		return "", fmt.Errorf("file type %q is not allowed", contentType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %v", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return "", fmt.Errorf("image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, maxImagePixels)
	}

	return contentType, nil
}

// buildKey generates a collision-resistant storage key: date prefix for
// bucket browsability, unix time plus a UUID for uniqueness, and the
// original extension so the URL hints at the format.
func buildKey(filename, contentType string) string {
	now := time.Now()
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	return fmt.Sprintf("uploads/%d/%02d/%d-%s%s", now.Year(), now.Month(), now.Unix(), uuid.New().String(), ext)
}

// extensionFromType returns a file extension for known MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
