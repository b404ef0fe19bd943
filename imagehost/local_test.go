package imagehost

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestLocalUpload(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "http://localhost:5000")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	url, err := l.Upload(context.Background(), tinyPNG(t), "image/png", "itineraries/days")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	prefix := "http://localhost:5000/static/uploads/itineraries/days/"
	if !strings.HasPrefix(url, prefix) || !strings.HasSuffix(url, ".png") {
		t.Fatalf("url = %q", url)
	}

	name := strings.TrimPrefix(url, prefix)
	stored := filepath.Join(dir, "itineraries/days", name)
	if _, err := os.Stat(stored); err != nil {
		t.Errorf("stored file missing: %v", err)
	}

	thumb := strings.TrimSuffix(stored, ".png") + "_thumb.png"
	if _, err := os.Stat(thumb); err != nil {
		t.Errorf("thumbnail missing: %v", err)
	}
}

func TestLocalUploadUndecodableSkipsThumbnail(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "http://localhost:5000")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	url, err := l.Upload(context.Background(), []byte("not a real image"), "image/png", "f")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	name := filepath.Base(url)
	if _, err := os.Stat(filepath.Join(dir, "f", name)); err != nil {
		t.Errorf("original should still be stored: %v", err)
	}
	thumb := strings.TrimSuffix(name, ".png") + "_thumb.png"
	if _, err := os.Stat(filepath.Join(dir, "f", thumb)); !os.IsNotExist(err) {
		t.Errorf("thumbnail should not exist for undecodable data, stat err = %v", err)
	}
}

func TestLocalUploadUnsupportedMime(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "http://localhost:5000")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	if _, err := l.Upload(context.Background(), []byte("x"), "application/pdf", "f"); err == nil {
		t.Fatal("expected error for unsupported mime type")
	}
}
