package gallery

import (
	"encoding/json"
	"log"
	"net/http"
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
	uploadFolder = "gallery"
	cacheKey     = "gallery"
)

// Handlers owns the public photo gallery CRUD.
type Handlers struct {
	DB     *db.DB
	Images imagehost.Uploader
	Cache  *rdx.Cache
}

func NewHandlers(database *db.DB, images imagehost.Uploader, cache *rdx.Cache) *Handlers {
	return &Handlers{DB: database, Images: images, Cache: cache}
}

// POST /api/gallery
func (h *Handlers) AddEntry(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	form, err := utils.ParseForm(r)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": err.Error()})
		return
	}

	entry := models.GalleryEntry{
		GalleryID: utils.GenerateRandomString(13),
		PlaceName: form.Value("place_name"),
		CreatedAt: time.Now(),
	}

	if files := form.Files("image"); len(files) > 0 {
		url, err := imagehost.UploadFile(r.Context(), h.Images, files[0], uploadFolder)
		if err != nil {
			log.Printf("gallery upload error: %v", err)
			utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
				"success": false,
				"message": "Unable to add gallery entry",
			})
			return
		}
		entry.ImageURL = url
	}

	if _, err := h.DB.Gallery.InsertOne(r.Context(), entry); err != nil {
		log.Printf("gallery insert error: %v", err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
			"success": false,
			"message": "Unable to add gallery entry",
		})
		return
	}

	h.invalidate(r)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "data": entry})
}

// GET /api/gallery
// Cache-aside on the full listing; redis being down just means Mongo serves.
func (h *Handlers) ListEntries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := h.Cache.Get(r.Context(), cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	entries, err := utils.FindAndDecode[models.GalleryEntry](r.Context(), h.DB.Gallery, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": err.Error()})
		return
	}

	payload := utils.M{"success": true, "count": len(entries), "data": entries}
	if data, err := json.Marshal(payload); err == nil {
		if err := h.Cache.Set(r.Context(), cacheKey, string(data)); err != nil {
			log.Printf("gallery cache set failed: %v", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, payload)
}

// GET /api/gallery/:id
func (h *Handlers) GetEntry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var entry models.GalleryEntry
	err := h.DB.Gallery.FindOne(r.Context(), bson.M{"galleryid": ps.ByName("id")}).Decode(&entry)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "Gallery entry not found"})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": entry})
}

// PUT /api/gallery/:id
func (h *Handlers) UpdateEntry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var entry models.GalleryEntry
	err := h.DB.Gallery.FindOne(r.Context(), bson.M{"galleryid": ps.ByName("id")}).Decode(&entry)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "Gallery entry not found"})
		return
	}

	form, err := utils.ParseForm(r)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": err.Error()})
		return
	}

	if files := form.Files("image"); len(files) > 0 {
		url, err := imagehost.UploadFile(r.Context(), h.Images, files[0], uploadFolder)
		if err != nil {
			log.Printf("gallery upload error: %v", err)
			utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
				"success": false,
				"message": "Unable to modify gallery entry",
			})
			return
		}
		entry.ImageURL = url
	}

	if v := form.Value("place_name"); v != "" {
		entry.PlaceName = v
	}

	update := bson.M{"$set": bson.M{"image_url": entry.ImageURL, "place_name": entry.PlaceName}}
	if _, err := h.DB.Gallery.UpdateOne(r.Context(), bson.M{"galleryid": entry.GalleryID}, update); err != nil {
		log.Printf("gallery update error: %v", err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
			"success": false,
			"message": "Unable to modify gallery entry",
		})
		return
	}

	h.invalidate(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": entry})
}

// DELETE /api/gallery/:id
func (h *Handlers) DeleteEntry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := h.DB.Gallery.DeleteOne(r.Context(), bson.M{"galleryid": ps.ByName("id")})
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": err.Error()})
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "Gallery entry not found"})
		return
	}

	h.invalidate(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Gallery entry removed successfully"})
}

func (h *Handlers) invalidate(r *http.Request) {
	if err := h.Cache.Del(r.Context(), cacheKey); err != nil {
		log.Printf("gallery cache invalidation failed: %v", err)
	}
}
