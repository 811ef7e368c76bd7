package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/camden-git/rosterbackend/models"
	"github.com/camden-git/rosterbackend/repository"
	"gorm.io/gorm"
)

// ErrNoMatch is returned when no enrolled template equals the submitted one
var ErrNoMatch = errors.New("no soldier matches the submitted template")

// ErrNotEnrolled is returned when a capture is requested for a soldier
// without an enrolled template
var ErrNotEnrolled = errors.New("soldier has no enrolled fingerprint template")

// FingerprintService provides high-level fingerprint operations: enrollment,
// verification against the roster, and a simulated device capture. Templates
// are opaque strings compared by exact equality; there is no scored
// biometric matching and no vendor scanner protocol.
type FingerprintService struct {
	soldierRepo      repository.SoldierRepositoryInterface
	verificationRepo repository.VerificationRepositoryInterface
	captureDelay     time.Duration
}

// NewFingerprintService creates a new fingerprint service. captureDelay is
// the artificial latency of the simulated scanner.
func NewFingerprintService(
	soldierRepo repository.SoldierRepositoryInterface,
	verificationRepo repository.VerificationRepositoryInterface,
	captureDelay time.Duration,
) *FingerprintService {
	return &FingerprintService{
		soldierRepo:      soldierRepo,
		verificationRepo: verificationRepo,
		captureDelay:     captureDelay,
	}
}

// Enroll stores the template against the soldier, replacing any previous
// enrollment. Returns gorm.ErrRecordNotFound for an unknown service number.
func (s *FingerprintService) Enroll(serviceNumber, template string) error {
	if template == "" {
		return fmt.Errorf("template cannot be empty")
	}
	return s.soldierRepo.SetFingerprint(serviceNumber, template)
}

// Verify looks up the soldier whose enrolled template exactly equals the
// submitted one and, on success, appends one verification log entry carrying
// the soldier's rank, salary and platoon at this moment. No log entry is
// written when nothing matches.
func (s *FingerprintService) Verify(template string) (*models.FingerprintVerification, error) {
	soldier, err := s.soldierRepo.FindByFingerprint(template)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoMatch
		}
		return nil, err
	}

	verification := &models.FingerprintVerification{
		ServiceNumber: soldier.ServiceNumber,
		FullName:      soldier.FullName,
		Rank:          soldier.Rank,
		NetSalary:     soldier.NetSalary,
		Platoon:       soldier.Platoon,
	}
	if err := s.verificationRepo.Create(verification); err != nil {
		return nil, err
	}

	log.Printf("fingerprint: verified %s (%s)", soldier.ServiceNumber, soldier.FullName)
	return verification, nil
}

// Capture simulates a scanner read for an enrolled soldier and returns the
// template the device produced. Real device integration is out of scope, so
// the simulated read always reproduces the enrolled template.
func (s *FingerprintService) Capture(serviceNumber string) (string, error) {
	soldier, err := s.soldierRepo.GetByServiceNumber(serviceNumber)
	if err != nil {
		return "", err
	}
	if !soldier.HasFingerprint() {
		return "", ErrNotEnrolled
	}

	if s.captureDelay > 0 {
		time.Sleep(s.captureDelay)
	}
	return *soldier.FingerprintTemplate, nil
}
