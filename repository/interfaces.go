package repository

import (
	"github.com/camden-git/rosterbackend/models"
)

// SoldierRepositoryInterface defines the methods for soldier data operations
type SoldierRepositoryInterface interface {
	Register(soldier *models.Soldier) error
	GetByServiceNumber(serviceNumber string) (*models.Soldier, error)
	ListAll() ([]models.Soldier, error)
	Search(query string) ([]models.Soldier, error)
	Update(soldier *models.Soldier) error
	Delete(serviceNumber string) error

	SetFingerprint(serviceNumber, template string) error
	FindByFingerprint(template string) (*models.Soldier, error)

	UpdatePhoto(serviceNumber string, photoPath *string) error
	UpdatePhotoDerived(serviceNumber string, thumbnailPath *string, width, height *int, takenAt *int64) error
}

// VerificationRepositoryInterface defines the methods for the append-only
// fingerprint verification log
type VerificationRepositoryInterface interface {
	Create(verification *models.FingerprintVerification) error
	ListAll() ([]models.FingerprintVerification, error)
	ListByServiceNumber(serviceNumber string) ([]models.FingerprintVerification, error)
}

// UserRepository defines the methods for operator account operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Count() (int64, error)
}
