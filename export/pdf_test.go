package export

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"yatra/db"
	"yatra/models"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestPrintItinerary(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("renders pdf", func(mt *mtest.T) {
		h := NewHandlers(&db.DB{Itineraries: mt.Coll}, "https://travel.example.com")

		tourType := "Trekking"
		it := models.Itinerary{
			ItineraryID: "itn1",
			Title:       "Druk Path Trek",
			Location:    "Paro",
			TourType:    &tourType,
			Difficulty:  "Medium",
			Status:      "Published",
			Pricing:     models.Pricing{Solo: 1200, TwoPax: 900},
			Days: []models.ItineraryDay{
				{DayID: "d1", DayNumber: 1, Title: "Arrival", Description: "Fly into Paro.", Images: []models.DayImage{}},
			},
		}
		raw, err := bson.Marshal(it)
		if err != nil {
			mt.Fatalf("marshal: %v", err)
		}
		var doc bson.D
		if err := bson.Unmarshal(raw, &doc); err != nil {
			mt.Fatalf("unmarshal: %v", err)
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "traveldb.itineraries", mtest.FirstBatch, doc))

		r := httptest.NewRequest(http.MethodGet, "/api/itineraries/itn1/pdf", nil)
		w := httptest.NewRecorder()
		h.PrintItinerary(w, r, httprouter.Params{{Key: "id", Value: "itn1"}})

		if w.Code != http.StatusOK {
			mt.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
			mt.Errorf("Content-Type = %q", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=itinerary-itn1.pdf" {
			mt.Errorf("Content-Disposition = %q", cd)
		}
		if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
			mt.Error("body does not look like a PDF")
		}
	})

	mt.Run("missing itinerary", func(mt *mtest.T) {
		h := NewHandlers(&db.DB{Itineraries: mt.Coll}, "https://travel.example.com")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "traveldb.itineraries", mtest.FirstBatch))

		r := httptest.NewRequest(http.MethodGet, "/api/itineraries/nope/pdf", nil)
		w := httptest.NewRecorder()
		h.PrintItinerary(w, r, httprouter.Params{{Key: "id", Value: "nope"}})

		if w.Code != http.StatusNotFound {
			mt.Fatalf("status = %d, want 404", w.Code)
		}
	})
}
