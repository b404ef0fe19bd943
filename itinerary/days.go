package itinerary

import (
	"encoding/json"
	"fmt"

	"yatra/imagehost"
	"yatra/models"
	"yatra/utils"
)

// renumber rewrites dayNumber to 1..N in current array order. Every day
// mutation ends here so the contiguity invariant holds no matter what the
// request did.
func renumber(days []models.ItineraryDay) {
	for i := range days {
		days[i].DayNumber = i + 1
	}
}

// removeDayByID filters out the matching day and renumbers the remainder.
// The second return reports whether the day existed.
func removeDayByID(days []models.ItineraryDay, dayID string) ([]models.ItineraryDay, bool) {
	kept := make([]models.ItineraryDay, 0, len(days))
	found := false
	for _, d := range days {
		if d.DayID == dayID {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	renumber(kept)
	return kept, found
}

// reconcileDayImages builds a day's replacement image list: start from the
// retained URLs, drop the removed ones, append freshly uploaded URLs. Both
// input lists must contain only resolved http(s) URLs.
func reconcileDayImages(keep, remove, uploaded []string) ([]models.DayImage, error) {
	for _, u := range keep {
		if !isValidURL(u) {
			return nil, fmt.Errorf("invalid URL in keep_images: %s", u)
		}
	}
	for _, u := range remove {
		if !isValidURL(u) {
			return nil, fmt.Errorf("invalid URL in remove_images: %s", u)
		}
	}

	removed := make(map[string]bool, len(remove))
	for _, u := range remove {
		removed[u] = true
	}

	final := make([]models.DayImage, 0, len(keep)+len(uploaded))
	for _, u := range keep {
		if !removed[u] {
			final = append(final, models.DayImage{ImageURL: u})
		}
	}
	for _, u := range uploaded {
		final = append(final, models.DayImage{ImageURL: u})
	}
	return final, nil
}

// rejectedItem records one element of a reorder request that failed
// validation, with enough detail for the caller to fix its payload.
type rejectedItem struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
	Type   string `json:"type,omitempty"`
}

// suspectBase64Length: a bare string this long inside a days array is almost
// certainly a pasted base64 image rather than anything meaningful.
const suspectBase64Length = 100

// reorderElement is the shape each valid days entry must decode to.
type reorderElement struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Location    string          `json:"location"`
	Images      json.RawMessage `json:"images"`
}

// validateReorderDays checks every element of a reorder request, collecting
// rejections instead of aborting. Valid elements come back normalized and
// renumbered 1..N in their filtered order.
func validateReorderDays(items []json.RawMessage) ([]models.ItineraryDay, []rejectedItem) {
	valid := make([]models.ItineraryDay, 0, len(items))
	rejected := []rejectedItem{}

	for i, raw := range items {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if imageEntryLooksLikeBase64(s) {
				rejected = append(rejected, rejectedItem{Index: i, Reason: "Base64 image string detected", Type: "string"})
			} else {
				rejected = append(rejected, rejectedItem{Index: i, Reason: "String value not allowed", Type: "string"})
			}
			continue
		}

		if kind := jsonKind(raw); kind != "object" {
			rejected = append(rejected, rejectedItem{Index: i, Reason: "Must be an object", Type: kind})
			continue
		}

		var elem reorderElement
		if err := json.Unmarshal(raw, &elem); err != nil || elem.Description == nil || *elem.Description == "" {
			rejected = append(rejected, rejectedItem{Index: i, Reason: "Missing required field: description"})
			continue
		}

		day := models.ItineraryDay{
			DayID:       elem.ID,
			Title:       elem.Title,
			Description: *elem.Description,
			Location:    elem.Location,
			Images:      []models.DayImage{},
		}
		if day.DayID == "" {
			day.DayID = utils.GetUUID()
		}
		// images default to empty unless a well-formed array was sent
		var imgs []models.DayImage
		if elem.Images != nil && json.Unmarshal(elem.Images, &imgs) == nil && imgs != nil {
			day.Images = imgs
		}

		valid = append(valid, day)
	}

	renumber(valid)
	return valid, rejected
}

func imageEntryLooksLikeBase64(s string) bool {
	return len(s) > suspectBase64Length || imagehost.IsDataURI(s)
}

// jsonKind names the JSON type of a raw value, for rejection reports.
func jsonKind(raw json.RawMessage) string {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return "invalid"
	}
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return "unknown"
	}
}
