package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"yatra/db"
	"yatra/middleware"
	"yatra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"golang.org/x/crypto/bcrypt"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Admin@Example.COM", "admin@example.com"},
		{"  admin@example.com  ", "admin@example.com"},
		{"admin@example.com", "admin@example.com"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeEmail(tc.in); got != tc.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSignupValidation(t *testing.T) {
	h := NewHandlers(nil, middleware.NewAuth([]byte("s")))

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"username":"admin","password":"pw"}`},
		{"missing username", `{"email":"a@b.com","password":"pw"}`},
		{"missing password", `{"email":"a@b.com","username":"admin"}`},
		{"malformed json", `{nope`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			h.Signup(w, r, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestLoginValidation(t *testing.T) {
	h := NewHandlers(nil, middleware.NewAuth([]byte("s")))

	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.com"}`))
	w := httptest.NewRecorder()
	h.Login(w, r, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	loginBody := func(mt *mtest.T, body string) (int, string) {
		h := NewHandlers(&db.DB{Admins: mt.Coll}, middleware.NewAuth([]byte("s")))
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.Login(w, r, nil)

		var resp struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			mt.Fatalf("decode: %v", err)
		}
		return w.Code, resp.Message
	}

	mt.Run("unknown email vs wrong password", func(mt *mtest.T) {
		// unknown email: empty find result
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "traveldb.admins", mtest.FirstBatch))
		unknownCode, unknownMsg := loginBody(mt, `{"email":"ghost@example.com","password":"pw"}`)

		// wrong password: admin exists, hash does not match
		hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
		if err != nil {
			mt.Fatalf("bcrypt: %v", err)
		}
		admin := models.Admin{
			AdminID:   "adm1",
			Email:     "admin@example.com",
			Username:  "admin",
			Password:  string(hash),
			CreatedAt: time.Now(),
		}
		raw, err := bson.Marshal(admin)
		if err != nil {
			mt.Fatalf("marshal: %v", err)
		}
		var doc bson.D
		if err := bson.Unmarshal(raw, &doc); err != nil {
			mt.Fatalf("unmarshal: %v", err)
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "traveldb.admins", mtest.FirstBatch, doc))
		wrongCode, wrongMsg := loginBody(mt, `{"email":"admin@example.com","password":"wrong"}`)

		if unknownCode != http.StatusUnauthorized || wrongCode != http.StatusUnauthorized {
			mt.Fatalf("codes = %d, %d, want 401 for both", unknownCode, wrongCode)
		}
		if unknownMsg != wrongMsg {
			mt.Errorf("messages differ: %q vs %q", unknownMsg, wrongMsg)
		}
	})
}

func TestLoginSuccess(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("issues token", func(mt *mtest.T) {
		authCore := middleware.NewAuth([]byte("s"))
		h := NewHandlers(&db.DB{Admins: mt.Coll}, authCore)

		hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
		if err != nil {
			mt.Fatalf("bcrypt: %v", err)
		}
		admin := models.Admin{AdminID: "adm1", Email: "admin@example.com", Username: "admin", Password: string(hash)}
		raw, _ := bson.Marshal(admin)
		var doc bson.D
		if err := bson.Unmarshal(raw, &doc); err != nil {
			mt.Fatalf("unmarshal: %v", err)
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "traveldb.admins", mtest.FirstBatch, doc))

		// email is normalized before lookup
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":" Admin@Example.com ","password":"pw"}`))
		w := httptest.NewRecorder()
		h.Login(w, r, nil)

		if w.Code != http.StatusOK {
			mt.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		var resp struct {
			Token string `json:"token"`
			Admin struct {
				ID string `json:"id"`
			} `json:"admin"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			mt.Fatalf("decode: %v", err)
		}
		if resp.Admin.ID != "adm1" {
			mt.Errorf("admin.id = %q", resp.Admin.ID)
		}

		claims, err := authCore.VerifyToken(resp.Token)
		if err != nil {
			mt.Fatalf("issued token does not verify: %v", err)
		}
		if claims.ID != "adm1" {
			mt.Errorf("token claims.ID = %q", claims.ID)
		}
	})
}
