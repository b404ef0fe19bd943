package routes

import (
	"net/http"

	"yatra/auth"
	"yatra/export"
	"yatra/gallery"
	"yatra/itinerary"
	"yatra/middleware"
	"yatra/ratelim"
	"yatra/testimonials"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router, uploadsDir string) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir(uploadsDir))
}

func AddAuthRoutes(router *httprouter.Router, h *auth.Handlers, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/signup", rl.Limit(h.Signup))
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.GET("/api/auth/all", h.GetAllAdmins)
}

func AddItineraryRoutes(router *httprouter.Router, h *itinerary.Handlers, pdf *export.Handlers) {
	router.POST("/api/itineraries", h.CreateItinerary)       // Create a new itinerary
	router.GET("/api/itineraries", h.GetItineraries)         // List itineraries
	router.GET("/api/itineraries/:id", h.GetItinerary)       // Fetch a single itinerary
	router.PUT("/api/itineraries/:id", h.UpdateItinerary)    // Update an itinerary
	router.DELETE("/api/itineraries/:id", h.DeleteItinerary) // Delete an itinerary

	router.POST("/api/itineraries/:id/days", h.AddDay)                   // Add a day
	router.PUT("/api/itineraries/:id/days/:dayId", h.UpdateDayOrReorder) // Update a day, or reorder when :dayId is "reorder"
	router.DELETE("/api/itineraries/:id/days/:dayId", h.RemoveDay)       // Remove a day

	router.GET("/api/itineraries/:id/pdf", pdf.PrintItinerary) // Download as PDF
}

func AddGalleryRoutes(router *httprouter.Router, h *gallery.Handlers) {
	router.POST("/api/gallery", h.AddEntry)
	router.GET("/api/gallery", h.ListEntries)
	router.GET("/api/gallery/:id", h.GetEntry)
	router.PUT("/api/gallery/:id", h.UpdateEntry)
	router.DELETE("/api/gallery/:id", h.DeleteEntry)
}

func AddTestimonialRoutes(router *httprouter.Router, h *testimonials.Handlers, guard *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/api/testimonials/submit", rl.Limit(h.Submit))
	router.GET("/api/testimonials/approved", h.GetApproved)

	// httprouter cannot register the static "all" segment alongside :id, so
	// the public full listing is dispatched inside the parameterized route.
	getOne := guard.Authenticate(h.GetByID)
	router.GET("/api/testimonials/admin/:id", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if ps.ByName("id") == "all" {
			h.GetAll(w, r, ps)
			return
		}
		getOne(w, r, ps)
	})
	router.PATCH("/api/testimonials/admin/:id/status", guard.Authenticate(h.UpdateStatus))
	router.DELETE("/api/testimonials/admin/:id", guard.Authenticate(h.Delete))
}
