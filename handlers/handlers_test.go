package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/camden-git/rosterbackend/config"
	"github.com/camden-git/rosterbackend/media"
	"github.com/camden-git/rosterbackend/models"
	"github.com/camden-git/rosterbackend/repository"
	"github.com/camden-git/rosterbackend/services"
	"github.com/camden-git/rosterbackend/workers"
)

type testServer struct {
	router           *chi.Mux
	db               *gorm.DB
	soldierRepo      *repository.SoldierRepository
	verificationRepo *repository.VerificationRepository
	userRepo         *repository.GormUserRepository
	mediaStore       media.Store
	photoWorker      *workers.PhotoProcessor
	cfg              config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "roster_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Soldier{}, &models.FingerprintVerification{}, &models.User{}))

	soldierRepo := repository.NewSoldierRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	userRepo := repository.NewUserRepository(db)
	fingerprintService := services.NewFingerprintService(soldierRepo, verificationRepo, 0)

	cfg := config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		ThumbnailMaxSize:   150,
	}

	mediaSubDirs := map[media.AssetType]string{
		media.AssetTypePhoto:     "photos",
		media.AssetTypeThumbnail: "thumbnails",
	}
	mediaStore, err := media.NewLocalStorage(t.TempDir(), mediaSubDirs)
	require.NoError(t, err)
	mediaProcessor := media.NewProcessor(mediaStore)
	photoWorker := workers.NewPhotoProcessor(cfg, mediaStore, mediaProcessor, soldierRepo, 10, 1)
	t.Cleanup(photoWorker.Stop)

	healthHandler := &HealthHandler{DB: db}
	authHandler := &AuthHandler{UserRepo: userRepo, Cfg: cfg}
	soldierHandler := &SoldierHandler{SoldierRepo: soldierRepo, DB: db}
	photoHandler := &PhotoHandler{SoldierRepo: soldierRepo, MediaStore: mediaStore, MediaProcessor: mediaProcessor, PhotoWorker: photoWorker}
	fingerprintHandler := &FingerprintHandler{FingerprintService: fingerprintService, VerificationRepo: verificationRepo}
	reportHandler := &ReportHandler{DB: db}
	adminHandler := &AdminHandler{DB: db}

	r := chi.NewRouter()
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
				AuthMiddleware(userRepo, cfg.JWTSecret, http.HandlerFunc(adminHandler.ResetRoster)))
		})
	})

	return &testServer{
		router:           r,
		db:               db,
		soldierRepo:      soldierRepo,
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		mediaStore:       mediaStore,
		photoWorker:      photoWorker,
		cfg:              cfg,
	}
}

func (ts *testServer) request(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func soldierPayload(i int) map[string]interface{} {
	return map[string]interface{}{
		"full_name":       fmt.Sprintf("Soldier %d", i),
		"birth_date":      "1994-06-01",
		"gender":          "male",
		"rank":            "Private",
		"enlistment_date": "2020-02-15",
		"platoon":         "Horin 1",
		"commander":       "Col. Hassan",
		"net_salary":      200,
		"phone":           fmt.Sprintf("6150000%02d", i),
		"blood_group":     "A+",
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}
