package entity

import (
	"time"

	"github.com/google/uuid"
)

// TreatmentRecord is the clinical note written after a completed attendance.
// It carries the treatment modalities ordered for the patient and a
// recommended return interval. A multi-session modality (light bath or rod)
// ordered here is the origin of a TreatmentSession plan.
type TreatmentRecord struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AttendanceID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"attendance_id"`
	PatientID          uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Notes              string    `gorm:"type:text" json:"notes,omitempty"`
	LightBath          bool      `gorm:"not null;default:false" json:"light_bath"`
	Rod                bool      `gorm:"not null;default:false" json:"rod"`
	SpiritualTreatment bool      `gorm:"not null;default:false" json:"spiritual_treatment"`
	ReturnInWeeks      int       `gorm:"not null" json:"return_in_weeks"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient    Patient    `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Attendance Attendance `gorm:"foreignKey:AttendanceID" json:"attendance,omitempty"`
}

func (TreatmentRecord) TableName() string {
	return "treatment_records"
}
