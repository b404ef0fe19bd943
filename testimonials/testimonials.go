package testimonials

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"yatra/db"
	"yatra/imagehost"
	"yatra/models"
	"yatra/rdx"
	"yatra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	uploadFolder     = "testimonials"
	approvedCacheKey = "testimonials:approved"
)

var validStatuses = map[string]bool{"Pending": true, "Approved": true}

// Handlers owns the customer-testimonial moderation queue.
type Handlers struct {
	DB     *db.DB
	Images imagehost.Uploader
	Cache  *rdx.Cache
}

func NewHandlers(database *db.DB, images imagehost.Uploader, cache *rdx.Cache) *Handlers {
	return &Handlers{DB: database, Images: images, Cache: cache}
}

// POST /api/testimonials/submit
// Public: whatever the customer sends, the status is forced to Pending.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	form, err := utils.ParseForm(r)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": err.Error()})
		return
	}

	username := strings.TrimSpace(form.Value("username"))
	description := strings.TrimSpace(form.Value("description"))
	ratingValue := form.Value("rating")

	if username == "" || ratingValue == "" || description == "" {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"success": false,
			"message": "Username, rating, and description are required",
		})
		return
	}

	rating, err := strconv.Atoi(ratingValue)
	if err != nil || rating < 1 || rating > 5 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"success": false,
			"message": "Rating must be between 1 and 5",
		})
		return
	}

	testimonial := models.Testimonial{
		TestimonialID: utils.GenerateRandomString(13),
		Username:      username,
		Rating:        rating,
		Description:   description,
		Status:        "Pending",
		CreatedAt:     time.Now(),
	}

	if files := form.Files("user_image"); len(files) > 0 {
		url, err := imagehost.UploadFile(r.Context(), h.Images, files[0], uploadFolder)
		if err != nil {
			log.Printf("testimonial image upload error: %v", err)
			utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
				"success": false,
				"message": "Unable to submit testimonial",
			})
			return
		}
		testimonial.UserImage = url
	}

	if _, err := h.DB.Testimonials.InsertOne(r.Context(), testimonial); err != nil {
		log.Printf("testimonial insert error: %v", err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
			"success": false,
			"message": "Unable to submit testimonial",
		})
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"message": "Testimonial submitted successfully. It will be reviewed by our team.",
		"data":    testimonial,
	})
}

// GET /api/testimonials/approved
// Public listing for the website; cached since it changes only on moderation.
func (h *Handlers) GetApproved(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := h.Cache.Get(r.Context(), approvedCacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	testimonials, err := utils.FindAndDecode[models.Testimonial](r.Context(), h.DB.Testimonials,
		bson.M{"status": "Approved"},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": err.Error()})
		return
	}

	payload := utils.M{"success": true, "count": len(testimonials), "data": testimonials}
	if data, err := json.Marshal(payload); err == nil {
		if err := h.Cache.Set(r.Context(), approvedCacheKey, string(data)); err != nil {
			log.Printf("testimonial cache set failed: %v", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, payload)
}

// GET /api/testimonials/admin/all?status=Pending
func (h *Handlers) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); validStatuses[status] {
		filter["status"] = status
	}

	testimonials, err := utils.FindAndDecode[models.Testimonial](r.Context(), h.DB.Testimonials, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": err.Error()})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"count":   len(testimonials),
		"data":    testimonials,
	})
}

// GET /api/testimonials/admin/:id
func (h *Handlers) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var testimonial models.Testimonial
	err := h.DB.Testimonials.FindOne(r.Context(), bson.M{"testimonialid": ps.ByName("id")}).Decode(&testimonial)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "Testimonial not found"})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": testimonial})
}

// PATCH /api/testimonials/admin/:id/status
func (h *Handlers) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !validStatuses[body.Status] {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"success": false,
			"message": "Status must be either 'Pending' or 'Approved'",
		})
		return
	}

	var testimonial models.Testimonial
	err := h.DB.Testimonials.FindOneAndUpdate(r.Context(),
		bson.M{"testimonialid": ps.ByName("id")},
		bson.M{"$set": bson.M{"status": body.Status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&testimonial)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "Testimonial not found"})
		return
	}

	h.invalidate(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Testimonial status updated to " + body.Status,
		"data":    testimonial,
	})
}

// DELETE /api/testimonials/admin/:id
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := h.DB.Testimonials.DeleteOne(r.Context(), bson.M{"testimonialid": ps.ByName("id")})
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": err.Error()})
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "Testimonial not found"})
		return
	}

	h.invalidate(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Testimonial deleted successfully"})
}

func (h *Handlers) invalidate(r *http.Request) {
	if err := h.Cache.Del(r.Context(), approvedCacheKey); err != nil {
		log.Printf("testimonial cache invalidation failed: %v", err)
	}
}
