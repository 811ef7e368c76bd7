package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/camden-git/rosterbackend/models"
	"github.com/camden-git/rosterbackend/repository"
	"github.com/camden-git/rosterbackend/services"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type FingerprintHandler struct {
	FingerprintService *services.FingerprintService
	VerificationRepo   repository.VerificationRepositoryInterface
}

// EnrollFingerprint stores an opaque template against a soldier, replacing
// any previous enrollment
func (fh *FingerprintHandler) EnrollFingerprint(w http.ResponseWriter, r *http.Request) {
	serviceNumber := chi.URLParam(r, "service_number")

	var req struct {
		Template string `json:"template"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Template) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required field: template"})
		return
	}

	if err := fh.FingerprintService.Enroll(serviceNumber, req.Template); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Soldier not found"})
		} else {
			log.Printf("Error enrolling fingerprint for %s: %v", serviceNumber, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to enroll fingerprint"})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Fingerprint enrolled successfully", "service_number": serviceNumber})
}

// VerifyFingerprint matches the submitted template against enrolled ones.
// A match appends exactly one verification log entry and echoes it; no match
// is a 404 with nothing written.
func (fh *FingerprintHandler) VerifyFingerprint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Template string `json:"template"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Template) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required field: template"})
		return
	}

	verification, err := fh.FingerprintService.Verify(req.Template)
	if err != nil {
		if errors.Is(err, services.ErrNoMatch) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "No matching fingerprint found"})
		} else {
			log.Printf("Error verifying fingerprint: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to verify fingerprint"})
		}
		return
	}

	writeJSON(w, http.StatusOK, verification)
}

// ScanFingerprint simulates a scanner capture for an enrolled soldier and
// returns the template the device read
func (fh *FingerprintHandler) ScanFingerprint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceNumber string `json:"service_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.ServiceNumber) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required field: service_number"})
		return
	}

	template, err := fh.FingerprintService.Capture(req.ServiceNumber)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Soldier not found"})
		case errors.Is(err, services.ErrNotEnrolled):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Soldier has no enrolled fingerprint"})
		default:
			log.Printf("Error capturing fingerprint for %s: %v", req.ServiceNumber, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to capture fingerprint"})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"service_number": req.ServiceNumber, "template": template})
}

// ListVerifications returns verification log entries, newest first,
// optionally filtered by service_number
func (fh *FingerprintHandler) ListVerifications(w http.ResponseWriter, r *http.Request) {
	serviceNumber := strings.TrimSpace(r.URL.Query().Get("service_number"))

	var verifications []models.FingerprintVerification
	var err error
	if serviceNumber != "" {
		verifications, err = fh.VerificationRepo.ListByServiceNumber(serviceNumber)
	} else {
		verifications, err = fh.VerificationRepo.ListAll()
	}
	if err != nil {
		log.Printf("Error listing verifications: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve verifications"})
		return
	}
	if verifications == nil {
		verifications = []models.FingerprintVerification{}
	}
	writeJSON(w, http.StatusOK, verifications)
}
