package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/camden-git/rosterbackend/database"
	"github.com/camden-git/rosterbackend/models"
	"github.com/camden-git/rosterbackend/repository"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type SoldierHandler struct {
	SoldierRepo repository.SoldierRepositoryInterface
	DB          *gorm.DB
}

// RegisterSoldier accepts a soldier record without a service number, assigns
// the next CMJ number and returns the stored row.
func (sh *SoldierHandler) RegisterSoldier(w http.ResponseWriter, r *http.Request) {
	var payload models.SoldierPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := payload.Validate(); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	soldier := payload.ToSoldier("")
	if err := sh.SoldierRepo.Register(soldier); err != nil {
		// constraint violations (e.g. duplicate phone) surface the driver's
		// message in the body
		log.Printf("Error registering soldier '%s': %v", payload.FullName, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, soldier)
}

// ListSoldiers returns all soldiers ordered by service number
func (sh *SoldierHandler) ListSoldiers(w http.ResponseWriter, r *http.Request) {
	soldiers, err := sh.SoldierRepo.ListAll()
	if err != nil {
		log.Printf("Error listing soldiers: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve soldiers"})
		return
	}
	if soldiers == nil {
		soldiers = []models.Soldier{}
	}
	writeJSON(w, http.StatusOK, soldiers)
}

// GetSoldier returns a single soldier by service number, or 404
func (sh *SoldierHandler) GetSoldier(w http.ResponseWriter, r *http.Request) {
	serviceNumber := chi.URLParam(r, "service_number")

	soldier, err := sh.SoldierRepo.GetByServiceNumber(serviceNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Soldier not found"})
		} else {
			log.Printf("Error getting soldier %s: %v", serviceNumber, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve soldier"})
		}
		return
	}

	writeJSON(w, http.StatusOK, soldier)
}

// UpdateSoldier replaces every roster field of an existing soldier
func (sh *SoldierHandler) UpdateSoldier(w http.ResponseWriter, r *http.Request) {
	serviceNumber := chi.URLParam(r, "service_number")

	var payload models.SoldierPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := payload.Validate(); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	soldier := payload.ToSoldier(serviceNumber)
	if err := sh.SoldierRepo.Update(soldier); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Soldier not found"})
		} else {
			log.Printf("Error updating soldier %s: %v", serviceNumber, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update soldier"})
		}
		return
	}

	updated, err := sh.SoldierRepo.GetByServiceNumber(serviceNumber)
	if err != nil {
		log.Printf("Error fetching updated soldier %s: %v", serviceNumber, err)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Soldier updated successfully"})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteSoldier removes a soldier by service number, or 404
func (sh *SoldierHandler) DeleteSoldier(w http.ResponseWriter, r *http.Request) {
	serviceNumber := chi.URLParam(r, "service_number")

	if err := sh.SoldierRepo.Delete(serviceNumber); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Soldier not found"})
		} else {
			log.Printf("Error deleting soldier %s: %v", serviceNumber, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete soldier"})
		}
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// SearchSoldiers finds soldiers whose service number or name contains the
// q parameter, case-insensitively
func (sh *SoldierHandler) SearchSoldiers(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required query parameter: q"})
		return
	}

	soldiers, err := sh.SoldierRepo.Search(query)
	if err != nil {
		log.Printf("Error searching soldiers for '%s': %v", query, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to search soldiers"})
		return
	}
	if soldiers == nil {
		soldiers = []models.Soldier{}
	}
	writeJSON(w, http.StatusOK, soldiers)
}

// GetRosterTable returns the flat table-view projection of the roster,
// naturally ordered by platoon
func (sh *SoldierHandler) GetRosterTable(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := sh.DB.DB()
	if err != nil {
		log.Printf("Error getting sql.DB for roster table: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve roster table"})
		return
	}

	table, err := database.ListRosterTable(sqlDB)
	if err != nil {
		log.Printf("Error listing roster table: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve roster table"})
		return
	}
	writeJSON(w, http.StatusOK, table)
}
