package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything main needs to wire the process together.
// Loaded once at startup and passed down; packages never read env themselves.
type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	JwtSecret     []byte
	RedisAddr     string
	PublicBaseURL string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	UploadsDir string
}

func Load() Config {
	// .env is optional; system environment wins either way
	_ = godotenv.Load()

	cfg := Config{
		Port:          getenv("PORT", ":5000"),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getenv("MONGO_DB", "traveldb"),
		JwtSecret:     []byte(getenv("JWT_SECRET", "your_secret_key")),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		PublicBaseURL: getenv("PUBLIC_BASE_URL", "http://localhost:5000"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		UploadsDir: getenv("UPLOADS_DIR", "static/uploads"),
	}
	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}
	return cfg
}

// HasCloudinary reports whether remote image hosting is configured.
func (c Config) HasCloudinary() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
