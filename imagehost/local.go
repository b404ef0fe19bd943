package imagehost

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const thumbWidth = 300

var extByMime = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	"image/bmp":  ".bmp",
	"image/tiff": ".tiff",
}

// Local stores images on disk and serves them via the static file routes.
// Used when no Cloudinary credentials are configured (development).
type Local struct {
	Dir     string // filesystem root, e.g. static/uploads
	BaseURL string // public prefix, e.g. http://localhost:5000
}

func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Local{Dir: dir, BaseURL: baseURL}, nil
}

func (l *Local) Upload(_ context.Context, data []byte, mimeType, folder string) (string, error) {
	ext, ok := extByMime[mimeType]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", mimeType)
	}

	destDir := filepath.Join(l.Dir, folder)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	id := uuid.New().String()
	name := id + ext
	if err := os.WriteFile(filepath.Join(destDir, name), data, 0644); err != nil {
		return "", err
	}

	// Thumbnail alongside the original; skip silently if undecodable
	// (animated webp etc.) since the original was already stored.
	if img, err := imaging.Decode(bytes.NewReader(data)); err == nil {
		thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
		_ = imaging.Save(thumb, filepath.Join(destDir, id+"_thumb"+ext))
	}

	return fmt.Sprintf("%s/static/uploads/%s/%s", l.BaseURL, folder, name), nil
}
