package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"yatra/db"
	"yatra/middleware"
	"yatra/models"
	"yatra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Handlers owns admin signup, login, and the debug admin listing.
type Handlers struct {
	DB   *db.DB
	Auth *middleware.Auth
}

func NewHandlers(database *db.DB, auth *middleware.Auth) *Handlers {
	return &Handlers{DB: database, Auth: auth}
}

type credentials struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/signup
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"message": "Invalid input"})
		return
	}

	if input.Email == "" || input.Username == "" || input.Password == "" {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"message": "All fields are required"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"message": "Signup failed"})
		return
	}

	admin := models.Admin{
		AdminID:   utils.GenerateRandomString(13),
		Email:     NormalizeEmail(input.Email),
		Username:  strings.TrimSpace(input.Username),
		Password:  string(hashed),
		CreatedAt: time.Now(),
	}

	if _, err := h.DB.Admins.InsertOne(r.Context(), admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithJSON(w, http.StatusConflict, utils.M{"message": "Email already registered"})
			return
		}
		log.Printf("signup insert error: %v", err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"message": "Signup failed"})
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Admin created successfully"})
}

// POST /api/auth/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"message": "Invalid input"})
		return
	}

	email := NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"message": "Email and password are required"})
		return
	}

	// Unknown email and wrong password answer identically so login attempts
	// can't probe which emails exist.
	var admin models.Admin
	err := h.DB.Admins.FindOne(r.Context(), bson.M{"email": email}).Decode(&admin)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{"message": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{"message": "Invalid credentials"})
		return
	}

	token, err := h.Auth.IssueToken(admin.AdminID)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"message": "Failed to generate token"})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Login successful",
		"token":   token,
		"admin": utils.M{
			"id":       admin.AdminID,
			"username": admin.Username,
			"email":    admin.Email,
		},
	})
}

// GET /api/auth/all
// Debug surface: lists every admin including password hashes.
func (h *Handlers) GetAllAdmins(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	admins, err := utils.FindAndDecode[models.Admin](r.Context(), h.DB.Admins, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"message": "Failed to fetch admins"})
		return
	}

	out := make([]utils.M, 0, len(admins))
	for _, a := range admins {
		out = append(out, utils.M{
			"id":           a.AdminID,
			"username":     a.Username,
			"email":        a.Email,
			"passwordHash": a.Password,
			"createdAt":    a.CreatedAt,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"count":  len(out),
		"admins": out,
	})
}

// NormalizeEmail lowercases and trims an email for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
