package handlers

import (
	"log"
	"net/http"

	"github.com/camden-git/rosterbackend/database"
	"github.com/camden-git/rosterbackend/models"
	"gorm.io/gorm"
)

type AdminHandler struct {
	DB *gorm.DB
}

// ResetRoster wipes the soldier table and the verification log and re-runs
// schema migration. Operator accounts survive. Requires authentication.
func (ah *AdminHandler) ResetRoster(w http.ResponseWriter, r *http.Request) {
	err := ah.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.FingerprintVerification{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Soldier{}).Error
	})
	if err != nil {
		log.Printf("Error wiping roster tables: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to reset roster"})
		return
	}

	if err := database.AutoMigrateModels(ah.DB); err != nil {
		log.Printf("Error re-running migration after reset: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to re-create schema"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Roster reset successfully"})
}
