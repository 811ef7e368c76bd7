package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/camden-git/rosterbackend/media"
	"github.com/camden-git/rosterbackend/repository"
	"github.com/camden-git/rosterbackend/workers"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

const maxPhotoUploadBytes = 20 << 20 // 20 MiB

type PhotoHandler struct {
	SoldierRepo    repository.SoldierRepositoryInterface
	MediaStore     media.Store
	MediaProcessor *media.Processor
	PhotoWorker    *workers.PhotoProcessor
}

// UploadSoldierPhoto stores a mugshot for a soldier and queues thumbnail and
// metadata generation. The previous photo, if any, is removed from the store.
func (ph *PhotoHandler) UploadSoldierPhoto(w http.ResponseWriter, r *http.Request) {
	serviceNumber := chi.URLParam(r, "service_number")

	soldier, err := ph.SoldierRepo.GetByServiceNumber(serviceNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Soldier not found"})
		} else {
			log.Printf("Error fetching soldier %s before photo upload: %v", serviceNumber, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to verify soldier"})
		}
		return
	}

	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid multipart form: " + err.Error()})
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required file field: photo"})
		return
	}
	defer file.Close()

	if !media.IsRasterImage(header.Filename) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Uploaded file must be a raster image"})
		return
	}

	savedRelPath, err := ph.MediaProcessor.SavePhoto(header.Filename, file)
	if err != nil {
		log.Printf("Error saving photo for %s: %v", serviceNumber, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to store photo"})
		return
	}

	// best-effort cleanup of the previous photo and its thumbnail
	if soldier.PhotoPath != nil {
		if err := ph.MediaStore.Delete(*soldier.PhotoPath); err != nil {
			log.Printf("Warning: failed to delete old photo %s: %v", *soldier.PhotoPath, err)
		}
	}
	if soldier.PhotoThumbnailPath != nil {
		if err := ph.MediaStore.Delete(*soldier.PhotoThumbnailPath); err != nil {
			log.Printf("Warning: failed to delete old thumbnail %s: %v", *soldier.PhotoThumbnailPath, err)
		}
	}

	if err := ph.SoldierRepo.UpdatePhoto(serviceNumber, &savedRelPath); err != nil {
		log.Printf("Error updating photo path for %s: %v", serviceNumber, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to record photo"})
		return
	}

	ph.PhotoWorker.QueueJob(workers.PhotoJob{
		ServiceNumber: serviceNumber,
		PhotoRelPath:  savedRelPath,
	})

	writeJSON(w, http.StatusAccepted, map[string]string{
		"message":        "Photo uploaded; thumbnail generation queued",
		"service_number": serviceNumber,
		"photo_path":     savedRelPath,
	})
}
