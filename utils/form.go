package utils

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
)

// Upload limits, applied to every multipart request.
const (
	MaxFileSize  = 40 << 20 // per file
	MaxFiles     = 10
	MaxFields    = 50       // non-file fields
	maxFormStash = 32 << 20 // in-memory before spilling to disk
)

// Form is the normalized request body handed to handlers: the same accessors
// work whether the client sent multipart/form-data or a JSON object. JSON
// values that are not strings are exposed as their raw JSON text, so a field
// holding an array reads the same as a multipart field holding a
// JSON-encoded array.
type Form struct {
	values map[string]string
	files  map[string][]*multipart.FileHeader
}

// ParseForm reads the request body into a Form, enforcing the upload limits.
func ParseForm(r *http.Request) (*Form, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		return parseMultipart(r)
	}
	return parseJSONBody(r)
}

func parseMultipart(r *http.Request) (*Form, error) {
	if err := r.ParseMultipartForm(maxFormStash); err != nil {
		return nil, fmt.Errorf("invalid form data")
	}

	f := &Form{values: map[string]string{}, files: map[string][]*multipart.FileHeader{}}

	fieldCount := 0
	for key, vals := range r.MultipartForm.Value {
		fieldCount += len(vals)
		if len(vals) > 0 {
			f.values[key] = vals[0]
		}
	}
	if fieldCount > MaxFields {
		return nil, fmt.Errorf("too many form fields (max %d)", MaxFields)
	}

	fileCount := 0
	for key, headers := range r.MultipartForm.File {
		fileCount += len(headers)
		for _, h := range headers {
			if h.Size > MaxFileSize {
				return nil, fmt.Errorf("file %q exceeds the 40MB limit", h.Filename)
			}
		}
		f.files[key] = headers
	}
	if fileCount > MaxFiles {
		return nil, fmt.Errorf("too many files (max %d)", MaxFiles)
	}

	return f, nil
}

func parseJSONBody(r *http.Request) (*Form, error) {
	f := &Form{values: map[string]string{}, files: map[string][]*multipart.FileHeader{}}
	if r.Body == nil || r.ContentLength == 0 {
		return f, nil
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid request payload")
	}

	for key, raw := range body {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			f.values[key] = s
			continue
		}
		if string(raw) == "null" {
			continue
		}
		f.values[key] = string(raw)
	}
	return f, nil
}

// Has reports whether the field was present in the request at all.
func (f *Form) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Value returns the field's value, or "" when absent.
func (f *Form) Value(key string) string {
	return f.values[key]
}

// Files returns the uploaded files for the field, if any.
func (f *Form) Files(key string) []*multipart.FileHeader {
	return f.files[key]
}
