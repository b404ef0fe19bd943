// Package export renders itineraries as downloadable PDF brochures.
package export

import (
	"bytes"
	"fmt"
	"net/http"

	"yatra/db"
	"yatra/models"
	"yatra/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// Handlers renders tour packages for offline use.
type Handlers struct {
	DB            *db.DB
	PublicBaseURL string
}

func NewHandlers(database *db.DB, publicBaseURL string) *Handlers {
	return &Handlers{DB: database, PublicBaseURL: publicBaseURL}
}

// GET /api/itineraries/:id/pdf
func (h *Handlers) PrintItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	itineraryID := ps.ByName("id")

	var it models.Itinerary
	err := h.DB.Itineraries.FindOne(r.Context(), bson.M{"itineraryid": itineraryID}).Decode(&it)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}

	// QR linking back to the public itinerary page
	publicURL := fmt.Sprintf("%s/itineraries/%s", h.PublicBaseURL, itineraryID)
	qrPNG, err := qrcode.Encode(publicURL, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := buildItineraryPDF(&it, qrPNG)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=itinerary-"+itineraryID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func buildItineraryPDF(it *models.Itinerary, qrPNG []byte) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, it.Title)
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Location: %s", it.Location))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Difficulty: %s", it.Difficulty))
	pdf.Ln(7)
	if it.Category != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Category: %s", *it.Category))
		pdf.Ln(7)
	}
	if it.TourType != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Tour type: %s", *it.TourType))
		pdf.Ln(7)
	}
	if it.StartDate != nil && it.EndDate != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Dates: %s to %s",
			it.StartDate.Format("2 Jan 2006"), it.EndDate.Format("2 Jan 2006")))
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Pricing (per person)")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, row := range []struct {
		band  string
		price float64
	}{
		{"Solo", it.Pricing.Solo},
		{"2 pax", it.Pricing.TwoPax},
		{"3-5 pax", it.Pricing.ThreeToFivePax},
		{"6-9 pax", it.Pricing.SixToNinePax},
		{"10+ pax", it.Pricing.TenPaxAbove},
	} {
		pdf.Cell(40, 7, row.band)
		pdf.Cell(0, 7, fmt.Sprintf("%.2f", row.price))
		pdf.Ln(6)
	}
	pdf.Cell(40, 7, "Tour cost")
	pdf.Cell(0, 7, fmt.Sprintf("%.2f", it.Pricing.TourCost))
	pdf.Ln(10)

	for _, day := range it.Days {
		pdf.SetFont("Arial", "B", 12)
		heading := fmt.Sprintf("Day %d", day.DayNumber)
		if day.Title != "" {
			heading += ": " + day.Title
		}
		pdf.Cell(0, 8, heading)
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 11)
		if day.Location != "" {
			pdf.Cell(0, 6, day.Location)
			pdf.Ln(6)
		}
		pdf.MultiCell(0, 5, day.Description, "", "L", false)
		pdf.Ln(3)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 10, 35, 35, false, imageOpts, 0, "")

	return pdf
}
