package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"yatra/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

const tokenTTL = 365 * 24 * time.Hour

// Context keys
type ContextKey string

const AdminIDKey ContextKey = "adminId"

// JWT claims
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// Auth verifies bearer tokens on protected routes and issues them on login.
// Holds the signing secret; constructed once in main.
type Auth struct {
	secret []byte
}

func NewAuth(secret []byte) *Auth {
	return &Auth{secret: secret}
}

// IssueToken signs a 365-day bearer token carrying the admin's identity.
func (a *Auth) IssueToken(adminID string) (string, error) {
	claims := &Claims{
		ID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// VerifyToken parses and validates a raw token string.
func (a *Auth) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// Authenticate guards a route. Expired tokens get a distinct `expired` flag
// so clients can tell re-login from tampering; a missing or invalid token
// gets a plain 401.
func (a *Auth) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{
				"success": false,
				"message": "No token provided. Access denied.",
			})
			return
		}

		claims, err := a.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{
					"success": false,
					"message": "Token has expired. Please log in again.",
					"expired": true,
				})
				return
			}
			utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{
				"success": false,
				"message": "Invalid token",
			})
			return
		}

		ctx := context.WithValue(r.Context(), AdminIDKey, claims.ID)
		next(w, r.WithContext(ctx), ps)
	}
}
