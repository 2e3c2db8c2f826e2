package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

var (
	Port              string
	StorePath         string
	MongoURI          string
	GeminiAPIKey      string
	AWSRegion         string
	AWSBucketName     string
	GenerationTimeout time.Duration
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	StorePath = os.Getenv("STORE_PATH")
	if StorePath == "" {
		StorePath = "anywear.db"
	}

	// When set, MongoDB replaces the local SQLite store.
	MongoURI = os.Getenv("MONGO_URI")

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	AWSRegion = os.Getenv("AWS_REGION")
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")

	GenerationTimeout = 2 * time.Minute
	if raw := os.Getenv("GENERATION_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			GenerationTimeout = d
		} else {
			log.Printf("Invalid GENERATION_TIMEOUT %q, keeping default %v", raw, GenerationTimeout)
		}
	}
}
