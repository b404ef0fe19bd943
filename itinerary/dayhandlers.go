package itinerary

import (
	"log"
	"net/http"
	"strconv"

	"yatra/imagehost"
	"yatra/models"
	"yatra/utils"

	"github.com/julienschmidt/httprouter"
)

// POST /api/itineraries/:id/days
func (h *Handlers) AddDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it, err := h.findItinerary(r.Context(), ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}

	form, err := utils.ParseForm(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if form.Value("description") == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Description is required for adding a day")
		return
	}

	finalImages := []models.DayImage{}

	// Uploaded files win outright: if any file produced an image, body-supplied
	// entries are ignored entirely.
	for _, file := range form.Files("images") {
		url, err := imagehost.UploadFile(r.Context(), h.Images, file, dayFolder)
		if err != nil {
			log.Printf("day image upload error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload image")
			return
		}
		finalImages = append(finalImages, models.DayImage{ImageURL: url})
	}

	if len(finalImages) == 0 && form.Has("images") {
		entries, err := parseImageList(form.Value("images"), "images")
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		for _, raw := range entries {
			entry := resolveImageEntry(raw)
			switch {
			case entry.kind == invalidShape:
				// unrecognized shapes are skipped, not fatal
			case entry.isDataURI():
				url, err := imagehost.UploadDataURI(r.Context(), h.Images, entry.value, dayFolder)
				if err != nil {
					log.Printf("base64 image upload error: %v", err)
					utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload base64 image")
					return
				}
				finalImages = append(finalImages, models.DayImage{ImageURL: url})
			default:
				finalImages = append(finalImages, models.DayImage{ImageURL: entry.value})
			}
		}
	}

	dayNumber := len(it.Days) + 1
	if v := form.Value("day_number"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			dayNumber = n
		}
	}

	it.Days = append(it.Days, models.ItineraryDay{
		DayID:       utils.GetUUID(),
		DayNumber:   dayNumber,
		Title:       form.Value("title"),
		Description: form.Value("description"),
		Location:    form.Value("location"),
		Images:      finalImages,
	})

	if err := h.save(r.Context(), it); err != nil {
		log.Printf("add day error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add day")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, it)
}

// PUT /api/itineraries/:id/days/:dayId
//
// Image contract: keep_images/remove_images carry resolved URLs to retain or
// drop, new files arrive as uploads. Inline base64 anywhere is rejected
// before any mutation.
func (h *Handlers) UpdateDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it, err := h.findItinerary(r.Context(), ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}

	day := it.DayByID(ps.ByName("dayId"))
	if day == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Day not found")
		return
	}

	form, err := utils.ParseForm(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if containsBase64(form.Value("keep_images")) ||
		containsBase64(form.Value("remove_images")) ||
		containsBase64(form.Value("images")) {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"error":   "Base64 images are not allowed when updating a day",
			"message": "Please upload images as files or provide resolved URLs only",
		})
		return
	}

	var keep, remove []string
	keepPresent, removePresent := false, false

	if v := form.Value("keep_images"); v != "" {
		if keep, err = parseURLList(v, "keep_images"); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		keepPresent = true
	}
	if v := form.Value("remove_images"); v != "" {
		if remove, err = parseURLList(v, "remove_images"); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		removePresent = true
	}

	files := form.Files("images")
	if keepPresent || removePresent || len(files) > 0 {
		// Validate and build the retained list before touching the image
		// host, so a bad URL never leaves orphaned uploads behind.
		finalImages, err := reconcileDayImages(keep, remove, nil)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		for _, file := range files {
			url, uploadErr := imagehost.UploadFile(r.Context(), h.Images, file, dayFolder)
			if uploadErr != nil {
				log.Printf("day image upload error: %v", uploadErr)
				utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload image")
				return
			}
			finalImages = append(finalImages, models.DayImage{ImageURL: url})
		}

		// The day's image list is replaced exactly once per call.
		day.Images = finalImages
	}

	if form.Has("title") {
		day.Title = form.Value("title")
	}
	if form.Has("description") {
		day.Description = form.Value("description")
	}
	if form.Has("location") {
		day.Location = form.Value("location")
	}

	if err := h.save(r.Context(), it); err != nil {
		log.Printf("update day error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update day")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"day":     day,
		"images":  day.Images,
		"message": "Day updated successfully",
	})
}

// DELETE /api/itineraries/:id/days/:dayId
func (h *Handlers) RemoveDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it, err := h.findItinerary(r.Context(), ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}

	days, found := removeDayByID(it.Days, ps.ByName("dayId"))
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Day not found")
		return
	}
	it.Days = days

	if err := h.save(r.Context(), it); err != nil {
		log.Printf("remove day error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove day")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, it)
}

// PUT /api/itineraries/:id/days/reorder
//
// Individual malformed elements are reported under `rejected`, not fatal;
// the request only fails when nothing validates.
func (h *Handlers) ReorderDays(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	form, err := utils.ParseForm(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	raw := form.Value("days")
	items, parseErr := parseImageList(raw, "days")
	if !form.Has("days") || parseErr != nil || items == nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"error":    "Request must include 'days' as an array",
			"received": jsonKind([]byte(raw)),
		})
		return
	}

	it, err := h.findItinerary(r.Context(), ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}

	valid, rejected := validateReorderDays(items)
	if len(valid) == 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"error":    "No valid day objects found in request",
			"rejected": rejected,
			"hint":     "Send an array of day objects with structure: { _id, title, description, location, images }",
		})
		return
	}
	if len(rejected) > 0 {
		log.Printf("reorder days: %d invalid items rejected", len(rejected))
	}

	// Wholesale replacement of the day sequence.
	it.Days = valid

	if err := h.save(r.Context(), it); err != nil {
		log.Printf("reorder days error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reorder days")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":   true,
		"itinerary": it,
		"processed": utils.M{
			"total":    len(items),
			"valid":    len(valid),
			"rejected": len(rejected),
		},
	})
}

// UpdateDayOrReorder multiplexes PUT /api/itineraries/:id/days/:dayId.
// httprouter cannot register a static "reorder" segment alongside the
// :dayId parameter, so the literal is dispatched here.
func (h *Handlers) UpdateDayOrReorder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("dayId") == "reorder" {
		h.ReorderDays(w, r, ps)
		return
	}
	h.UpdateDay(w, r, ps)
}
