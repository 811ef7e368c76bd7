package models

// FingerprintVerification is an append-only log entry recording a successful
// fingerprint match. Rank, salary and platoon are denormalized at
// verification time so payroll reports reflect what was in effect when the
// soldier checked in, not the current roster row.
// It corresponds to the 'fingerprint_verifications' table.
type FingerprintVerification struct {
	ID            string  `gorm:"primaryKey" json:"id"` // uuid, assigned on insert
	ServiceNumber string  `gorm:"not null;index" json:"service_number"`
	FullName      string  `gorm:"not null" json:"full_name"`
	Rank          string  `gorm:"not null" json:"rank"`
	NetSalary     float64 `gorm:"not null" json:"net_salary"`
	Platoon       string  `gorm:"not null" json:"platoon"`
	VerifiedAt    int64   `gorm:"not null;index" json:"verified_at"` // Unix timestamp

	Soldier *Soldier `gorm:"foreignKey:ServiceNumber;references:ServiceNumber" json:"soldier,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (FingerprintVerification) TableName() string {
	return "fingerprint_verifications"
}
