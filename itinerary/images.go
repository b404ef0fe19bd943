package itinerary

import (
	"encoding/json"
	"fmt"
	"strings"

	"yatra/imagehost"
)

// Request bodies carry image entries in several shapes: bare URL strings,
// inline base64 data URIs, {imageUrl} objects, or garbage. Everything is
// resolved through one tagged union so handlers never re-inspect types.
type entryKind int

const (
	invalidShape entryKind = iota
	rawURLString
	dataURIString
	imageObject
)

type imageEntry struct {
	kind entryKind
	// value is the URL or data URI; empty for invalidShape.
	value string
}

// isDataURI reports whether the entry carries inline base64 data, whatever
// its outer shape.
func (e imageEntry) isDataURI() bool {
	return imagehost.IsDataURI(e.value)
}

// resolveImageEntry classifies one raw JSON array element.
func resolveImageEntry(raw json.RawMessage) imageEntry {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if imagehost.IsDataURI(s) {
			return imageEntry{kind: dataURIString, value: s}
		}
		return imageEntry{kind: rawURLString, value: s}
	}

	var obj struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.ImageURL != "" {
		return imageEntry{kind: imageObject, value: obj.ImageURL}
	}

	return imageEntry{kind: invalidShape}
}

// parseImageList accepts a JSON array, or a JSON-encoded string containing
// one, and returns the raw elements. Multipart form fields arrive as the
// string form; JSON bodies as the array form.
func parseImageList(value, fieldName string) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}

	// A doubly-encoded string: unwrap once and retry.
	if strings.HasPrefix(trimmed, `"`) {
		var inner string
		if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
			return nil, fmt.Errorf("invalid JSON in %s", fieldName)
		}
		trimmed = strings.TrimSpace(inner)
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil, fmt.Errorf("%s must be an array or JSON string", fieldName)
	}
	return items, nil
}

// parseURLList parses a keep_images/remove_images style field: an array
// whose entries must all be strings.
func parseURLList(value, fieldName string) ([]string, error) {
	items, err := parseImageList(value, fieldName)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(items))
	for _, raw := range items {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%s entries must be strings", fieldName)
		}
		urls = append(urls, s)
	}
	return urls, nil
}

// isValidURL accepts only resolved http(s) URLs.
func isValidURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// containsBase64 scans a raw field value for inline base64 data in any
// accepted shape: a bare data URI, or an array holding data-URI strings or
// {imageUrl} objects pointing at data URIs.
func containsBase64(value string) bool {
	if value == "" {
		return false
	}
	if imagehost.IsDataURI(value) {
		return true
	}

	items, err := parseImageList(value, "")
	if err != nil {
		return false
	}
	for _, raw := range items {
		if e := resolveImageEntry(raw); e.isDataURI() {
			return true
		}
	}
	return false
}
