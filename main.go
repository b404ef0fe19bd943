package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yatra/auth"
	"yatra/config"
	"yatra/db"
	"yatra/export"
	"yatra/gallery"
	"yatra/imagehost"
	"yatra/itinerary"
	"yatra/middleware"
	"yatra/ratelim"
	"yatra/rdx"
	"yatra/routes"
	"yatra/testimonials"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s - %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// health check
func index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Write([]byte("200"))
}

func main() {
	cfg := config.Load()

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	cache := rdx.New(cfg.RedisAddr)

	var images imagehost.Uploader
	if cfg.HasCloudinary() {
		images = imagehost.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	} else {
		local, err := imagehost.NewLocal(cfg.UploadsDir, cfg.PublicBaseURL)
		if err != nil {
			log.Fatalf("Failed to prepare local uploads dir: %v", err)
		}
		images = local
		log.Println("No Cloudinary credentials found; storing images locally")
	}

	guard := middleware.NewAuth(cfg.JwtSecret)
	rateLimiter := ratelim.NewRateLimiter()

	authHandlers := auth.NewHandlers(database, guard)
	itineraryHandlers := itinerary.NewHandlers(database, images)
	galleryHandlers := gallery.NewHandlers(database, images, cache)
	testimonialHandlers := testimonials.NewHandlers(database, images, cache)
	pdfHandlers := export.NewHandlers(database, cfg.PublicBaseURL)

	router := httprouter.New()
	router.GET("/health", index)
	routes.AddStaticRoutes(router, cfg.UploadsDir)
	routes.AddAuthRoutes(router, authHandlers, rateLimiter)
	routes.AddItineraryRoutes(router, itineraryHandlers, pdfHandlers)
	routes.AddGalleryRoutes(router, galleryHandlers)
	routes.AddTestimonialRoutes(router, testimonialHandlers, guard, rateLimiter)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       60 * time.Second, // uploads can be large
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	if err := database.Close(shutdownCtx); err != nil {
		log.Printf("Mongo disconnect error: %v", err)
	}
	if err := cache.Close(); err != nil {
		log.Printf("Redis close error: %v", err)
	}

	log.Println("Server stopped cleanly")
}
