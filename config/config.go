package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultPhotosSubDir     = "photos"
	DefaultThumbnailsSubDir = "thumbnails"
)

const (
	defaultPhotoQueueSize   = 200
	defaultNumPhotoWorkers  = 4
	defaultThumbnailMaxSize = 300
	defaultJWTExpiration    = 24
	defaultCaptureDelayMS   = 150
)

type Config struct {
	// database path
	DatabasePath string

	// photo storage configuration
	MediaStoragePath string // primary root for stored photo assets
	PhotosPath       string // full-calculated path for original photos
	ThumbnailsPath   string // full-calculated path for thumbnails

	// thumbnail generation settings
	ThumbnailMaxSize int

	// worker settings
	PhotoQueueSize  int
	NumPhotoWorkers int

	// operator auth
	JWTSecret          string
	JWTExpirationHours int

	// simulated scanner latency, milliseconds
	CaptureDelayMS int
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "roster.db")

	mediaStorage := getEnvOrDefault("MEDIA_STORAGE_PATH", filepath.Join(".", "media_storage"))
	absMediaStorage, err := filepath.Abs(mediaStorage)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for media storage '%s': %w", mediaStorage, err)
	}

	photoSubDir := getEnvOrDefault("PHOTOS_SUBDIR", DefaultPhotosSubDir)
	absPhotosPath := filepath.Join(absMediaStorage, photoSubDir)

	thumbSubDir := getEnvOrDefault("THUMBNAILS_SUBDIR", DefaultThumbnailsSubDir)
	absThumbnailsPath := filepath.Join(absMediaStorage, thumbSubDir)

	thumbMaxSize := getEnvIntOrDefault("THUMBNAIL_MAX_SIZE", defaultThumbnailMaxSize)

	queueSize := getEnvIntOrDefault("PHOTO_QUEUE_SIZE", defaultPhotoQueueSize)
	numWorkers := getEnvIntOrDefault("NUM_PHOTO_WORKERS", defaultNumPhotoWorkers)

	jwtSecret := getEnvOrDefault("JWT_SECRET", "")
	if jwtSecret == "" {
		log.Printf("Warning: JWT_SECRET not set, using an insecure development default")
		jwtSecret = "insecure-development-secret"
	}
	jwtExpiration := getEnvIntOrDefault("JWT_EXPIRATION_HOURS", defaultJWTExpiration)

	captureDelay := getEnvIntOrDefault("CAPTURE_DELAY_MS", defaultCaptureDelayMS)

	cfg := Config{
		DatabasePath:       dbPath,
		MediaStoragePath:   absMediaStorage,
		PhotosPath:         absPhotosPath,
		ThumbnailsPath:     absThumbnailsPath,
		ThumbnailMaxSize:   thumbMaxSize,
		PhotoQueueSize:     queueSize,
		NumPhotoWorkers:    numWorkers,
		JWTSecret:          jwtSecret,
		JWTExpirationHours: jwtExpiration,
		CaptureDelayMS:     captureDelay,
	}

	return cfg, nil
}
