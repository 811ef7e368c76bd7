package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/camden-git/rosterbackend/config"
	"github.com/camden-git/rosterbackend/database"
	"github.com/camden-git/rosterbackend/handlers"
	"github.com/camden-git/rosterbackend/media"
	"github.com/camden-git/rosterbackend/repository"
	"github.com/camden-git/rosterbackend/services"
	"github.com/camden-git/rosterbackend/workers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.PhotosPath, cfg.ThumbnailsPath, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database schema: %v", err)
	}

	mediaSubDirs := map[media.AssetType]string{
		media.AssetTypePhoto:     filepath.Base(cfg.PhotosPath),
		media.AssetTypeThumbnail: filepath.Base(cfg.ThumbnailsPath),
	}
	mediaStore, err := media.NewLocalStorage(cfg.MediaStoragePath, mediaSubDirs)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize media store: %v", err)
	}
	mediaProcessor := media.NewProcessor(mediaStore)

	soldierRepo := repository.NewSoldierRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	userRepo := repository.NewUserRepository(db)

	fingerprintService := services.NewFingerprintService(
		soldierRepo, verificationRepo, time.Duration(cfg.CaptureDelayMS)*time.Millisecond)

	log.Printf("Initializing photo worker pool (Workers: %d, Queue Size: %d)...", cfg.NumPhotoWorkers, cfg.PhotoQueueSize)
	photoWorker := workers.NewPhotoProcessor(cfg, mediaStore, mediaProcessor, soldierRepo, cfg.PhotoQueueSize, cfg.NumPhotoWorkers)
	defer photoWorker.Stop()

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Storing photos in: %s", cfg.PhotosPath)
	log.Printf("Thumbnail max size (longest side): %dpx", cfg.ThumbnailMaxSize)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	healthHandler := &handlers.HealthHandler{DB: db}
	authHandler := &handlers.AuthHandler{UserRepo: userRepo, Cfg: cfg}
	soldierHandler := &handlers.SoldierHandler{SoldierRepo: soldierRepo, DB: db}
	photoHandler := &handlers.PhotoHandler{SoldierRepo: soldierRepo, MediaStore: mediaStore, MediaProcessor: mediaProcessor, PhotoWorker: photoWorker}
	fingerprintHandler := &handlers.FingerprintHandler{FingerprintService: fingerprintService, VerificationRepo: verificationRepo}
	reportHandler := &handlers.ReportHandler{DB: db}
	adminHandler := &handlers.AdminHandler{DB: db}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/setup", authHandler.SetupFirstAdmin)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/soldiers", func(r chi.Router) {
			r.Post("/", soldierHandler.RegisterSoldier)
			r.Get("/", soldierHandler.ListSoldiers)
			r.Get("/search", soldierHandler.SearchSoldiers)
			r.Get("/table", soldierHandler.GetRosterTable)
			r.Route("/{service_number}", func(r chi.Router) {
				r.Get("/", soldierHandler.GetSoldier)
				r.Put("/", soldierHandler.UpdateSoldier)
				r.Delete("/", soldierHandler.DeleteSoldier)
				r.Put("/photo", photoHandler.UploadSoldierPhoto)
				r.Post("/fingerprint", fingerprintHandler.EnrollFingerprint)
			})
		})

		r.Route("/fingerprint", func(r chi.Router) {
			r.Post("/verify", fingerprintHandler.VerifyFingerprint)
			r.Post("/scan", fingerprintHandler.ScanFingerprint)
		})

		r.Get("/verifications", fingerprintHandler.ListVerifications)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/payroll", reportHandler.GetMonthlyPayroll)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Method(http.MethodPost, "/reset",
				handlers.AuthMiddleware(userRepo, cfg.JWTSecret, http.HandlerFunc(adminHandler.ResetRoster)))
		})

		photoSubDir := filepath.Base(cfg.PhotosPath)
		r.Get(fmt.Sprintf("/%s/*", photoSubDir), handlers.AssetServer(cfg.MediaStoragePath, photoSubDir))
		log.Printf("Registered photo server at /%s/*", photoSubDir)

		thumbnailSubDir := filepath.Base(cfg.ThumbnailsPath)
		r.Get(fmt.Sprintf("/%s/*", thumbnailSubDir), handlers.AssetServer(cfg.MediaStoragePath, thumbnailSubDir))
		log.Printf("Registered thumbnail server at /%s/*", thumbnailSubDir)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	fmt.Printf("Server starting on http://localhost:%s\n", port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
