package entity

import (
	"time"

	"github.com/google/uuid"
)

// PatientPriority represents the intake priority of a patient
type PatientPriority string

const (
	PriorityNormal    PatientPriority = "normal"
	PriorityPriority  PatientPriority = "priority"
	PriorityEmergency PatientPriority = "emergency"
)

// TreatmentStatus represents where a patient is in their treatment lifecycle.
// Transitions are driven by the clinical staff, the scheduling core only reads it.
type TreatmentStatus string

const (
	TreatmentStatusNew         TreatmentStatus = "new"
	TreatmentStatusInTreatment TreatmentStatus = "in_treatment"
	TreatmentStatusDischarged  TreatmentStatus = "discharged"
	TreatmentStatusAbsent      TreatmentStatus = "absent"
)

// Patient represents a registered clinic patient
type Patient struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Phone           string          `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Priority        PatientPriority `gorm:"type:varchar(20);not null;default:'normal'" json:"priority"`
	TreatmentStatus TreatmentStatus `gorm:"type:varchar(20);not null;default:'new';index" json:"treatment_status"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Attendances []Attendance `gorm:"foreignKey:PatientID" json:"attendances,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// IsValidPriority checks whether a priority value is one of the known priorities
func IsValidPriority(p PatientPriority) bool {
	switch p {
	case PriorityNormal, PriorityPriority, PriorityEmergency:
		return true
	}
	return false
}

// IsValidTreatmentStatus checks whether a treatment status value is known
func IsValidTreatmentStatus(s TreatmentStatus) bool {
	switch s {
	case TreatmentStatusNew, TreatmentStatusInTreatment, TreatmentStatusDischarged, TreatmentStatusAbsent:
		return true
	}
	return false
}
