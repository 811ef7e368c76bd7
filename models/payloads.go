package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SoldierPayload is the request body for registering or replacing a soldier.
// The service number is never part of the payload: registration assigns it
// and updates take it from the URL.
type SoldierPayload struct {
	FullName       string  `json:"full_name" validate:"required"`
	BirthDate      string  `json:"birth_date" validate:"required"`
	Gender         string  `json:"gender" validate:"required,oneof=male female"`
	Rank           string  `json:"rank" validate:"required"`
	EnlistmentDate string  `json:"enlistment_date" validate:"required"`
	Platoon        string  `json:"platoon" validate:"required"`
	Commander      string  `json:"commander"`
	NetSalary      float64 `json:"net_salary" validate:"gte=0"`
	Phone          string  `json:"phone" validate:"required"`
	Clan           string  `json:"clan"`
	GuarantorName  string  `json:"guarantor_name"`
	GuarantorPhone string  `json:"guarantor_phone"`
	EmergencyName  string  `json:"emergency_name"`
	EmergencyPhone string  `json:"emergency_phone"`
	Address        string  `json:"address"`
	BloodGroup     string  `json:"blood_group" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	GunSerial      *string `json:"gun_serial"`
	Status         string  `json:"status" validate:"omitempty,oneof=Active Wounded Discharged Dead"`
}

// Validate runs struct-tag validation on the payload.
func (p *SoldierPayload) Validate() error {
	return validate.Struct(p)
}

// ToSoldier builds a Soldier row from the payload. Photo and fingerprint
// fields are managed by their own endpoints and left untouched here.
func (p *SoldierPayload) ToSoldier(serviceNumber string) *Soldier {
	status := p.Status
	if status == "" {
		status = StatusActive
	}
	now := time.Now().Unix()
	return &Soldier{
		ServiceNumber:  serviceNumber,
		FullName:       p.FullName,
		BirthDate:      p.BirthDate,
		Gender:         p.Gender,
		Rank:           p.Rank,
		EnlistmentDate: p.EnlistmentDate,
		Platoon:        p.Platoon,
		Commander:      p.Commander,
		NetSalary:      p.NetSalary,
		Phone:          p.Phone,
		Clan:           p.Clan,
		GuarantorName:  p.GuarantorName,
		GuarantorPhone: p.GuarantorPhone,
		EmergencyName:  p.EmergencyName,
		EmergencyPhone: p.EmergencyPhone,
		Address:        p.Address,
		BloodGroup:     p.BloodGroup,
		GunSerial:      p.GunSerial,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
