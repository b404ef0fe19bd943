package utils

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseFormJSON(t *testing.T) {
	body := `{
		"title": "Druk Path Trek",
		"day_number": 3,
		"images": ["https://a", "https://b"],
		"meta": {"nested": true},
		"missing": null
	}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	f, err := ParseForm(r)
	if err != nil {
		t.Fatalf("ParseForm: %v", err)
	}

	if got := f.Value("title"); got != "Druk Path Trek" {
		t.Errorf("title = %q", got)
	}
	// non-string values surface as their raw JSON text
	if got := f.Value("day_number"); got != "3" {
		t.Errorf("day_number = %q", got)
	}
	if got := f.Value("images"); got != `["https://a", "https://b"]` {
		t.Errorf("images = %q", got)
	}
	if !f.Has("meta") {
		t.Error("meta should be present")
	}
	if f.Has("missing") {
		t.Error("null fields should read as absent")
	}
	if f.Has("never_sent") {
		t.Error("unknown field should be absent")
	}
}

func TestParseFormJSONEmptyBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	f, err := ParseForm(r)
	if err != nil {
		t.Fatalf("ParseForm: %v", err)
	}
	if f.Has("anything") {
		t.Error("empty body should produce an empty form")
	}
}

func TestParseFormJSONInvalid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	r.Header.Set("Content-Type", "application/json")
	if _, err := ParseForm(r); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func multipartRequest(t *testing.T, build func(mw *multipart.Writer)) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	build(mw)
	mw.Close()

	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestParseFormMultipart(t *testing.T) {
	r := multipartRequest(t, func(mw *multipart.Writer) {
		mw.WriteField("title", "Day one")
		mw.WriteField("images", `["https://a"]`)
		fw, _ := mw.CreateFormFile("cover_image", "cover.png")
		fw.Write([]byte("png bytes"))
	})

	f, err := ParseForm(r)
	if err != nil {
		t.Fatalf("ParseForm: %v", err)
	}
	if got := f.Value("title"); got != "Day one" {
		t.Errorf("title = %q", got)
	}
	if got := f.Value("images"); got != `["https://a"]` {
		t.Errorf("images = %q", got)
	}
	files := f.Files("cover_image")
	if len(files) != 1 || files[0].Filename != "cover.png" {
		t.Fatalf("files = %v", files)
	}
}

func TestParseFormMultipartTooManyFields(t *testing.T) {
	r := multipartRequest(t, func(mw *multipart.Writer) {
		for i := 0; i <= MaxFields; i++ {
			mw.WriteField(fmt.Sprintf("field%d", i), "v")
		}
	})

	if _, err := ParseForm(r); err == nil {
		t.Fatal("expected error above the field limit")
	}
}

func TestParseFormMultipartTooManyFiles(t *testing.T) {
	r := multipartRequest(t, func(mw *multipart.Writer) {
		for i := 0; i <= MaxFiles; i++ {
			fw, _ := mw.CreateFormFile("images", fmt.Sprintf("f%d.png", i))
			fw.Write([]byte("x"))
		}
	})

	if _, err := ParseForm(r); err == nil {
		t.Fatal("expected error above the file limit")
	}
}
