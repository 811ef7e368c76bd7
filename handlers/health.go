package handlers

import (
	"log"
	"net/http"

	"gorm.io/gorm"
)

type HealthHandler struct {
	DB *gorm.DB
}

// Health reports service liveness and pings the database
func (hh *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := hh.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		log.Printf("Health check database ping failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
