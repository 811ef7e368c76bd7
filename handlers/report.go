package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/camden-git/rosterbackend/database"
	"gorm.io/gorm"
)

type ReportHandler struct {
	DB *gorm.DB
}

// GetMonthlyPayroll computes the payroll report for the requested month and
// year (defaulting to the current ones, UTC) from the verification log
func (rh *ReportHandler) GetMonthlyPayroll(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	month := int(now.Month())
	year := now.Year()

	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid month: must be 1-12"})
			return
		}
		month = m
	}
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid year"})
			return
		}
		year = y
	}

	sqlDB, err := rh.DB.DB()
	if err != nil {
		log.Printf("Error getting sql.DB for payroll report: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to compute payroll report"})
		return
	}

	report, err := database.GetMonthlyPayroll(sqlDB, time.Month(month), year)
	if err != nil {
		log.Printf("Error computing payroll report for %d/%d: %v", month, year, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to compute payroll report"})
		return
	}

	writeJSON(w, http.StatusOK, report)
}
