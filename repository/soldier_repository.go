package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camden-git/rosterbackend/models"
	"gorm.io/gorm"
)

// SoldierRepository handles database operations for Soldier records
type SoldierRepository struct {
	DB *gorm.DB
}

// NewSoldierRepository creates a new instance of SoldierRepository
func NewSoldierRepository(db *gorm.DB) *SoldierRepository {
	return &SoldierRepository{DB: db}
}

// Register assigns the next service number and inserts the soldier. The
// count and insert run inside one transaction, so sequential registrations
// always produce CMJ00001, CMJ00002, … without gaps or duplicates.
func (r *SoldierRepository) Register(soldier *models.Soldier) error {
	now := time.Now().Unix()
	if soldier.CreatedAt == 0 {
		soldier.CreatedAt = now
	}
	if soldier.UpdatedAt == 0 {
		soldier.UpdatedAt = now
	}

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Soldier{}).Count(&count).Error; err != nil {
			return err
		}
		soldier.ServiceNumber = models.FormatServiceNumber(count + 1)
		return tx.Create(soldier).Error
	})
	if err != nil {
		return fmt.Errorf("failed to register soldier %s: %w", soldier.FullName, err)
	}
	return nil
}

// GetByServiceNumber retrieves a soldier by their service number
func (r *SoldierRepository) GetByServiceNumber(serviceNumber string) (*models.Soldier, error) {
	var soldier models.Soldier
	err := r.DB.First(&soldier, "service_number = ?", serviceNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get soldier %s: %w", serviceNumber, err)
	}
	return &soldier, nil
}

// ListAll retrieves all soldiers, ordered by service number
func (r *SoldierRepository) ListAll() ([]models.Soldier, error) {
	var soldiers []models.Soldier
	err := r.DB.Order("service_number ASC").Find(&soldiers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list soldiers: %w", err)
	}
	return soldiers, nil
}

// Search finds soldiers whose service number or full name contains the
// query, case-insensitively, ordered by service number
func (r *SoldierRepository) Search(query string) ([]models.Soldier, error) {
	likeQuery := "%" + strings.ToLower(query) + "%"
	var soldiers []models.Soldier
	err := r.DB.
		Where("LOWER(service_number) LIKE ? OR LOWER(full_name) LIKE ?", likeQuery, likeQuery).
		Order("service_number ASC").
		Find(&soldiers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search soldiers for '%s': %w", query, err)
	}
	return soldiers, nil
}

// Update replaces every roster-editable field of an existing soldier.
// Photo and fingerprint columns are managed by their own endpoints and are
// left untouched. A map is used so zero values (e.g. cleared commander)
// are written too.
func (r *SoldierRepository) Update(soldier *models.Soldier) error {
	soldier.UpdatedAt = time.Now().Unix()
	result := r.DB.Model(&models.Soldier{ServiceNumber: soldier.ServiceNumber}).Updates(map[string]interface{}{
		"full_name":       soldier.FullName,
		"birth_date":      soldier.BirthDate,
		"gender":          soldier.Gender,
		"rank":            soldier.Rank,
		"enlistment_date": soldier.EnlistmentDate,
		"platoon":         soldier.Platoon,
		"commander":       soldier.Commander,
		"net_salary":      soldier.NetSalary,
		"phone":           soldier.Phone,
		"clan":            soldier.Clan,
		"guarantor_name":  soldier.GuarantorName,
		"guarantor_phone": soldier.GuarantorPhone,
		"emergency_name":  soldier.EmergencyName,
		"emergency_phone": soldier.EmergencyPhone,
		"address":         soldier.Address,
		"blood_group":     soldier.BloodGroup,
		"gun_serial":      soldier.GunSerial,
		"status":          soldier.Status,
		"updated_at":      soldier.UpdatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update soldier %s: %w", soldier.ServiceNumber, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a soldier by service number
func (r *SoldierRepository) Delete(serviceNumber string) error {
	result := r.DB.Delete(&models.Soldier{}, "service_number = ?", serviceNumber)
	if result.Error != nil {
		return fmt.Errorf("failed to delete soldier %s: %w", serviceNumber, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetFingerprint stores (or replaces) the enrolled template for a soldier
func (r *SoldierRepository) SetFingerprint(serviceNumber, template string) error {
	result := r.DB.Model(&models.Soldier{ServiceNumber: serviceNumber}).Updates(map[string]interface{}{
		"fingerprint_template": template,
		"updated_at":           time.Now().Unix(),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to set fingerprint for %s: %w", serviceNumber, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByFingerprint looks up the soldier whose stored template exactly
// equals the submitted one. Matching is string equality, not a scored
// biometric comparison.
func (r *SoldierRepository) FindByFingerprint(template string) (*models.Soldier, error) {
	var soldier models.Soldier
	err := r.DB.First(&soldier, "fingerprint_template = ?", template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find soldier by fingerprint: %w", err)
	}
	return &soldier, nil
}

// UpdatePhoto sets the stored photo path for a soldier and clears any
// derived fields so the worker pool can repopulate them
func (r *SoldierRepository) UpdatePhoto(serviceNumber string, photoPath *string) error {
	result := r.DB.Model(&models.Soldier{ServiceNumber: serviceNumber}).Updates(map[string]interface{}{
		"photo_path":           photoPath,
		"photo_thumbnail_path": nil,
		"photo_width":          nil,
		"photo_height":         nil,
		"photo_taken_at":       nil,
		"updated_at":           time.Now().Unix(),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update photo for %s: %w", serviceNumber, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePhotoDerived stores worker-generated photo results (thumbnail path,
// dimensions, EXIF taken-at)
func (r *SoldierRepository) UpdatePhotoDerived(serviceNumber string, thumbnailPath *string, width, height *int, takenAt *int64) error {
	result := r.DB.Model(&models.Soldier{ServiceNumber: serviceNumber}).Updates(map[string]interface{}{
		"photo_thumbnail_path": thumbnailPath,
		"photo_width":          width,
		"photo_height":         height,
		"photo_taken_at":       takenAt,
		"updated_at":           time.Now().Unix(),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update photo results for %s: %w", serviceNumber, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
