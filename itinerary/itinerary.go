package itinerary

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"yatra/db"
	"yatra/imagehost"
	"yatra/models"
	"yatra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Image host folders, matching where the previous deployment stored media.
const (
	coverFolder = "itineraries"
	dayFolder   = "itineraries/days"
)

// Handlers owns itinerary CRUD and the embedded day manager.
type Handlers struct {
	DB     *db.DB
	Images imagehost.Uploader
}

func NewHandlers(database *db.DB, images imagehost.Uploader) *Handlers {
	return &Handlers{DB: database, Images: images}
}

// POST /api/itineraries
func (h *Handlers) CreateItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	form, err := utils.ParseForm(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	it := models.Itinerary{
		ItineraryID: utils.GenerateRandomString(13),
		Title:       form.Value("title"),
		ShortDesc:   form.Value("short_desc"),
		LongDesc:    form.Value("long_desc"),
		Location:    form.Value("location"),
		Difficulty:  form.Value("difficulty"),
		Status:      "Draft",
		IsCoverImg:  form.Value("is_cover_img") == "true",
		Days:        []models.ItineraryDay{},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if it.Title == "" || it.Location == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "title and location are required")
		return
	}
	if !contains(models.Difficulties, it.Difficulty) {
		utils.RespondWithError(w, http.StatusBadRequest, "difficulty must be one of Easy, Medium, Hard")
		return
	}

	// Exactly one of category/tour_type; category wins when both are sent.
	switch {
	case form.Value("category") != "":
		category := form.Value("category")
		if !contains(models.Categories, category) {
			utils.RespondWithError(w, http.StatusBadRequest, "category must be one of Culture, Festival")
			return
		}
		it.Category = &category
	case form.Value("tour_type") != "":
		tourType := form.Value("tour_type")
		if !contains(models.TourTypes, tourType) {
			utils.RespondWithError(w, http.StatusBadRequest, "tour_type must be one of Trekking, Walking, Adventure")
			return
		}
		it.TourType = &tourType
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "one of category or tour_type is required")
		return
	}

	if s := form.Value("status"); s != "" {
		if !contains(models.Statuses, s) {
			utils.RespondWithError(w, http.StatusBadRequest, "status must be one of Draft, Published, Archived")
			return
		}
		it.Status = s
	}

	if it.StartDate, err = parseOptionalDate(form.Value("start_date")); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid start_date")
		return
	}
	if it.EndDate, err = parseOptionalDate(form.Value("end_date")); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid end_date")
		return
	}

	price := 0.0
	if v := form.Value("price"); v != "" {
		price, _ = strconv.ParseFloat(v, 64)
	}
	it.Pricing = mapPricingTiers(parsePricingTiers(form.Value("pricing_tiers")), models.Pricing{TourCost: price})

	if files := form.Files("cover_image"); len(files) > 0 {
		url, err := imagehost.UploadFile(r.Context(), h.Images, files[0], coverFolder)
		if err != nil {
			log.Printf("cover image upload error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload cover image")
			return
		}
		it.CoverImageURL = url
	}

	if _, err := h.DB.Itineraries.InsertOne(r.Context(), it); err != nil {
		log.Printf("create itinerary error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create itinerary")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, it)
}

// GET /api/itineraries
func (h *Handlers) GetItineraries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	itineraries, err := utils.FindAndDecode[models.Itinerary](ctx, h.DB.Itineraries, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching itineraries")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, itineraries)
}

// GET /api/itineraries/:id
func (h *Handlers) GetItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it, err := h.findItinerary(r.Context(), ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, it)
}

// PUT /api/itineraries/:id
// Partial update: only fields present in the request change.
func (h *Handlers) UpdateItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	if files := form.Files("cover_image"); len(files) > 0 {
		url, err := imagehost.UploadFile(r.Context(), h.Images, files[0], coverFolder)
		if err != nil {
			log.Printf("cover image upload error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload cover image")
			return
		}
		it.CoverImageURL = url
	}

	if form.Has("title") {
		it.Title = form.Value("title")
	}
	if form.Has("short_desc") {
		it.ShortDesc = form.Value("short_desc")
	}
	if form.Has("long_desc") {
		it.LongDesc = form.Value("long_desc")
	}
	if form.Has("location") {
		it.Location = form.Value("location")
	}
	if form.Has("difficulty") {
		if !contains(models.Difficulties, form.Value("difficulty")) {
			utils.RespondWithError(w, http.StatusBadRequest, "difficulty must be one of Easy, Medium, Hard")
			return
		}
		it.Difficulty = form.Value("difficulty")
	}
	if form.Has("status") {
		if !contains(models.Statuses, form.Value("status")) {
			utils.RespondWithError(w, http.StatusBadRequest, "status must be one of Draft, Published, Archived")
			return
		}
		it.Status = form.Value("status")
	}
	if form.Has("is_cover_img") {
		it.IsCoverImg = form.Value("is_cover_img") == "true"
	}

	// category/tour_type are presence-toggled: setting one clears the other.
	// When both appear in one request, tour_type is applied last and wins.
	if form.Has("category") {
		if v := form.Value("category"); v != "" {
			if !contains(models.Categories, v) {
				utils.RespondWithError(w, http.StatusBadRequest, "category must be one of Culture, Festival")
				return
			}
			it.Category = &v
		} else {
			it.Category = nil
		}
		it.TourType = nil
	}
	if form.Has("tour_type") {
		if v := form.Value("tour_type"); v != "" {
			if !contains(models.TourTypes, v) {
				utils.RespondWithError(w, http.StatusBadRequest, "tour_type must be one of Trekking, Walking, Adventure")
				return
			}
			it.TourType = &v
		} else {
			it.TourType = nil
		}
		it.Category = nil
	}
	if it.Category == nil && it.TourType == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "one of category or tour_type is required")
		return
	}

	if form.Has("pricing_tiers") {
		pricing := mapPricingTiers(parsePricingTiers(form.Value("pricing_tiers")), it.Pricing)
		if v := form.Value("price"); v != "" {
			if price, err := strconv.ParseFloat(v, 64); err == nil {
				pricing.TourCost = price
			}
		}
		it.Pricing = pricing
	}

	if form.Has("start_date") {
		if it.StartDate, err = parseOptionalDate(form.Value("start_date")); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid start_date")
			return
		}
	}
	if form.Has("end_date") {
		if it.EndDate, err = parseOptionalDate(form.Value("end_date")); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid end_date")
			return
		}
	}

	if err := h.save(r.Context(), it); err != nil {
		log.Printf("update itinerary error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update itinerary")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, it)
}

// DELETE /api/itineraries/:id
// Days are embedded, so deleting the document cascades to them.
func (h *Handlers) DeleteItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := h.DB.Itineraries.DeleteOne(r.Context(), bson.M{"itineraryid": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete itinerary")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Itinerary deleted"})
}

// --- shared persistence helpers ---

func (h *Handlers) findItinerary(ctx context.Context, id string) (*models.Itinerary, error) {
	var it models.Itinerary
	if err := h.DB.Itineraries.FindOne(ctx, bson.M{"itineraryid": id}).Decode(&it); err != nil {
		return nil, err
	}
	return &it, nil
}

// save replaces every mutable field. Read-modify-write without a version
// guard: concurrent writers to the same itinerary are last-write-wins.
func (h *Handlers) save(ctx context.Context, it *models.Itinerary) error {
	it.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"title":           it.Title,
		"short_desc":      it.ShortDesc,
		"long_desc":       it.LongDesc,
		"location":        it.Location,
		"category":        it.Category,
		"tour_type":       it.TourType,
		"difficulty":      it.Difficulty,
		"pricing":         it.Pricing,
		"start_date":      it.StartDate,
		"end_date":        it.EndDate,
		"status":          it.Status,
		"cover_image_url": it.CoverImageURL,
		"is_cover_img":    it.IsCoverImg,
		"itinerary_days":  it.Days,
		"updated_at":      it.UpdatedAt,
	}}
	_, err := h.DB.Itineraries.UpdateOne(ctx, bson.M{"itineraryid": it.ItineraryID}, update)
	return err
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", value)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
