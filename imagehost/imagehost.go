// Package imagehost is the gateway to durable image storage: raw bytes in,
// public URL out. Handlers never talk to the image host directly.
package imagehost

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"yatra/utils"
)

// Uploader stores raw image bytes and returns a durable public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, mimeType, folder string) (string, error)
}

// DataURIPrefix marks inline base64 image payloads in request bodies.
const DataURIPrefix = "data:image/"

// IsDataURI reports whether s is an inline base64 image payload.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, DataURIPrefix)
}

// UploadFile reads one multipart file and pushes it through the gateway.
func UploadFile(ctx context.Context, up Uploader, header *multipart.FileHeader, folder string) (string, error) {
	if !utils.IsSupportedImageType(header) {
		return "", fmt.Errorf("unsupported image type %q", header.Header.Get("Content-Type"))
	}

	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return up.Upload(ctx, data, header.Header.Get("Content-Type"), folder)
}

// UploadDataURI decodes a data:image/...;base64 payload and uploads it.
func UploadDataURI(ctx context.Context, up Uploader, uri, folder string) (string, error) {
	if !IsDataURI(uri) {
		return "", fmt.Errorf("not a base64 image data URI")
	}
	rest := strings.TrimPrefix(uri, "data:")
	semi := strings.Index(rest, ";base64,")
	if semi < 0 {
		return "", fmt.Errorf("malformed data URI")
	}
	mimeType := rest[:semi]
	data, err := base64.StdEncoding.DecodeString(rest[semi+len(";base64,"):])
	if err != nil {
		return "", fmt.Errorf("malformed base64 payload: %w", err)
	}
	return up.Upload(ctx, data, mimeType, folder)
}
