package repository

import (
	"fmt"
	"time"

	"github.com/camden-git/rosterbackend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationRepository handles the append-only fingerprint verification
// log. Entries are only ever created and read; there is no update or delete.
type VerificationRepository struct {
	DB *gorm.DB
}

// NewVerificationRepository creates a new instance of VerificationRepository
func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{DB: db}
}

// Create appends a verification log entry, assigning an ID and timestamp
// when the caller left them empty
func (r *VerificationRepository) Create(verification *models.FingerprintVerification) error {
	if verification.ID == "" {
		verification.ID = uuid.New().String()
	}
	if verification.VerifiedAt == 0 {
		verification.VerifiedAt = time.Now().Unix()
	}
	err := r.DB.Create(verification).Error
	if err != nil {
		return fmt.Errorf("failed to log verification for %s: %w", verification.ServiceNumber, err)
	}
	return nil
}

// ListAll retrieves all verification entries, newest first
func (r *VerificationRepository) ListAll() ([]models.FingerprintVerification, error) {
	var verifications []models.FingerprintVerification
	err := r.DB.Order("verified_at DESC").Find(&verifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list verifications: %w", err)
	}
	return verifications, nil
}

// ListByServiceNumber retrieves a soldier's verification entries, newest first
func (r *VerificationRepository) ListByServiceNumber(serviceNumber string) ([]models.FingerprintVerification, error) {
	var verifications []models.FingerprintVerification
	err := r.DB.Where("service_number = ?", serviceNumber).Order("verified_at DESC").Find(&verifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list verifications for %s: %w", serviceNumber, err)
	}
	return verifications, nil
}
