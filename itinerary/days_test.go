package itinerary

import (
	"encoding/json"
	"strings"
	"testing"

	"yatra/models"
)

func day(id string, n int) models.ItineraryDay {
	return models.ItineraryDay{DayID: id, DayNumber: n, Description: "desc " + id}
}

func TestRemoveDayRenumbers(t *testing.T) {
	days := []models.ItineraryDay{day("a", 1), day("b", 2), day("c", 3), day("d", 4)}

	got, found := removeDayByID(days, "b")
	if !found {
		t.Fatal("expected day b to be found")
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 days, got %d", len(got))
	}
	for i, d := range got {
		if d.DayNumber != i+1 {
			t.Errorf("day %d: dayNumber = %d, want %d", i, d.DayNumber, i+1)
		}
	}
	if got[0].DayID != "a" || got[1].DayID != "c" || got[2].DayID != "d" {
		t.Errorf("unexpected order after removal: %v", got)
	}
}

func TestRemoveDayMissing(t *testing.T) {
	days := []models.ItineraryDay{day("a", 1)}
	got, found := removeDayByID(days, "nope")
	if found {
		t.Fatal("did not expect a match")
	}
	if len(got) != 1 {
		t.Fatalf("expected untouched list, got %d days", len(got))
	}
}

func TestReconcileDayImagesKeepAndRemove(t *testing.T) {
	final, err := reconcileDayImages(
		[]string{"https://a", "https://b"},
		[]string{"https://a"},
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(final) != 1 || final[0].ImageURL != "https://b" {
		t.Fatalf("expected exactly [https://b], got %v", final)
	}
}

func TestReconcileDayImagesAppendsUploads(t *testing.T) {
	final, err := reconcileDayImages(
		[]string{"https://keep"},
		nil,
		[]string{"https://new1", "https://new2"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"https://keep", "https://new1", "https://new2"}
	if len(final) != len(want) {
		t.Fatalf("expected %d images, got %d", len(want), len(final))
	}
	for i, u := range want {
		if final[i].ImageURL != u {
			t.Errorf("image %d = %q, want %q", i, final[i].ImageURL, u)
		}
	}
}

func TestReconcileDayImagesRejectsBadURLs(t *testing.T) {
	if _, err := reconcileDayImages([]string{"ftp://x"}, nil, nil); err == nil {
		t.Error("expected error for non-http keep_images entry")
	}
	if _, err := reconcileDayImages(nil, []string{"not-a-url"}, nil); err == nil {
		t.Error("expected error for malformed remove_images entry")
	}
}

func TestValidateReorderDaysMixedInput(t *testing.T) {
	items := []json.RawMessage{
		json.RawMessage(`{"description":"d1"}`),
		json.RawMessage(`"data:image/png;base64,xxxx"`),
		json.RawMessage(`{"description":"d2"}`),
	}

	valid, rejected := validateReorderDays(items)
	if len(valid) != 2 || len(rejected) != 1 {
		t.Fatalf("valid=%d rejected=%d, want 2/1", len(valid), len(rejected))
	}
	if valid[0].Description != "d1" || valid[0].DayNumber != 1 {
		t.Errorf("first valid day = %+v", valid[0])
	}
	if valid[1].Description != "d2" || valid[1].DayNumber != 2 {
		t.Errorf("second valid day = %+v", valid[1])
	}
	if rejected[0].Index != 1 || rejected[0].Reason != "Base64 image string detected" {
		t.Errorf("rejection = %+v", rejected[0])
	}
}

func TestValidateReorderDaysRejectionReasons(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
		kind   string
	}{
		{"short string", `"hello"`, "String value not allowed", "string"},
		{"long string", `"` + strings.Repeat("x", 101) + `"`, "Base64 image string detected", "string"},
		{"number", `42`, "Must be an object", "number"},
		{"array", `[1,2]`, "Must be an object", "array"},
		{"null", `null`, "Must be an object", "null"},
		{"missing description", `{"title":"t"}`, "Missing required field: description", ""},
		{"non-string description", `{"description":7}`, "Missing required field: description", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, rejected := validateReorderDays([]json.RawMessage{json.RawMessage(tt.raw)})
			if len(valid) != 0 || len(rejected) != 1 {
				t.Fatalf("valid=%d rejected=%d, want 0/1", len(valid), len(rejected))
			}
			if rejected[0].Reason != tt.reason {
				t.Errorf("reason = %q, want %q", rejected[0].Reason, tt.reason)
			}
			if rejected[0].Type != tt.kind {
				t.Errorf("type = %q, want %q", rejected[0].Type, tt.kind)
			}
		})
	}
}

func TestValidateReorderDaysNormalization(t *testing.T) {
	items := []json.RawMessage{
		json.RawMessage(`{"_id":"keep-me","description":"d","images":[{"imageUrl":"https://a"}]}`),
		json.RawMessage(`{"description":"no id, no images"}`),
	}

	valid, rejected := validateReorderDays(items)
	if len(rejected) != 0 {
		t.Fatalf("unexpected rejections: %v", rejected)
	}

	if valid[0].DayID != "keep-me" {
		t.Errorf("existing id not preserved: %q", valid[0].DayID)
	}
	if len(valid[0].Images) != 1 || valid[0].Images[0].ImageURL != "https://a" {
		t.Errorf("images not carried: %v", valid[0].Images)
	}

	if valid[1].DayID == "" {
		t.Error("expected a fresh id for the new day")
	}
	if valid[1].Images == nil || len(valid[1].Images) != 0 {
		t.Errorf("images should default to empty, got %v", valid[1].Images)
	}
	if valid[1].Title != "" || valid[1].Location != "" {
		t.Errorf("title/location should default to empty strings")
	}
}
