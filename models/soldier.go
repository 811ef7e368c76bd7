package models

import "fmt"

// ServiceNumberPrefix is prepended to the zero-padded roster sequence to form
// a soldier's service number (e.g. CMJ00042).
const ServiceNumberPrefix = "CMJ"

// serviceNumberWidth is the zero-padded digit count of the sequence part
const serviceNumberWidth = 5

// Soldier statuses
const (
	StatusActive     = "Active"
	StatusWounded    = "Wounded"
	StatusDischarged = "Discharged"
	StatusDead       = "Dead"
)

// Soldier represents a personnel record in the roster.
// It corresponds to the 'soldiers' table.
type Soldier struct {
	ServiceNumber       string  `gorm:"primaryKey" json:"service_number"`
	FullName            string  `gorm:"not null;index" json:"full_name"`
	BirthDate           string  `gorm:"not null" json:"birth_date"`
	Gender              string  `gorm:"not null" json:"gender"`
	PhotoPath           *string `json:"photo_path,omitempty"`
	PhotoThumbnailPath  *string `json:"photo_thumbnail_path,omitempty"`
	PhotoWidth          *int    `json:"photo_width,omitempty"`
	PhotoHeight         *int    `json:"photo_height,omitempty"`
	PhotoTakenAt        *int64  `json:"photo_taken_at,omitempty"`
	FingerprintTemplate *string `json:"-"` // opaque template, never serialized in responses
	Rank                string  `gorm:"not null" json:"rank"`
	EnlistmentDate      string  `gorm:"not null" json:"enlistment_date"`
	Platoon             string  `gorm:"not null;index" json:"platoon"`
	Commander           string  `json:"commander"`
	NetSalary           float64 `gorm:"not null" json:"net_salary"`
	Phone               string  `gorm:"uniqueIndex;not null" json:"phone"`
	Clan                string  `json:"clan"`
	GuarantorName       string  `json:"guarantor_name"`
	GuarantorPhone      string  `json:"guarantor_phone"`
	EmergencyName       string  `json:"emergency_name"`
	EmergencyPhone      string  `json:"emergency_phone"`
	Address             string  `json:"address"`
	BloodGroup          string  `gorm:"not null" json:"blood_group"`
	GunSerial           *string `json:"gun_serial,omitempty"`
	Status              string  `gorm:"not null;default:Active" json:"status"`
	CreatedAt           int64   `gorm:"not null" json:"created_at"` // Unix timestamp
	UpdatedAt           int64   `gorm:"not null" json:"updated_at"` // Unix timestamp

	Verifications []FingerprintVerification `gorm:"foreignKey:ServiceNumber;references:ServiceNumber" json:"verifications,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Soldier) TableName() string {
	return "soldiers"
}

// HasFingerprint reports whether a template has been enrolled for the soldier.
func (s *Soldier) HasFingerprint() bool {
	return s.FingerprintTemplate != nil && *s.FingerprintTemplate != ""
}

// FormatServiceNumber builds the service number for the given roster sequence
// (1 → CMJ00001). Sequences wider than five digits are not truncated.
func FormatServiceNumber(seq int64) string {
	return fmt.Sprintf("%s%0*d", ServiceNumberPrefix, serviceNumberWidth, seq)
}
