package entity

import (
	"time"

	"github.com/google/uuid"
)

// TreatmentType represents a multi-session treatment modality
type TreatmentType string

const (
	TreatmentTypeLightBath TreatmentType = "light_bath"
	TreatmentTypeRod       TreatmentType = "rod"
)

// TreatmentSessionStatus represents the lifecycle of a session plan
type TreatmentSessionStatus string

const (
	SessionStatusScheduled  TreatmentSessionStatus = "scheduled"
	SessionStatusInProgress TreatmentSessionStatus = "in_progress"
	SessionStatusCompleted  TreatmentSessionStatus = "completed"
	SessionStatusCancelled  TreatmentSessionStatus = "cancelled"
)

// TreatmentSession is a plan for a series of weekly treatment occurrences.
// CompletedSessions is derived state: it must always equal the number of
// child records with status COMPLETED and is only ever written by
// RefreshProgress.
type TreatmentSession struct {
	ID                uuid.UUID              `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TreatmentRecordID uuid.UUID              `gorm:"type:uuid;not null;index" json:"treatment_record_id"`
	AttendanceID      uuid.UUID              `gorm:"type:uuid;not null;index" json:"attendance_id"`
	PatientID         uuid.UUID              `gorm:"type:uuid;not null;index" json:"patient_id"`
	TreatmentType     TreatmentType          `gorm:"type:varchar(20);not null" json:"treatment_type"`
	BodyLocation      string                 `gorm:"type:varchar(255);not null" json:"body_location"`
	StartDate         string                 `gorm:"type:varchar(10);not null" json:"start_date"`
	EndDate           *string                `gorm:"type:varchar(10)" json:"end_date,omitempty"`
	PlannedSessions   int                    `gorm:"not null" json:"planned_sessions"`
	CompletedSessions int                    `gorm:"not null;default:0" json:"completed_sessions"`
	Status            TreatmentSessionStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	DurationMinutes   *int                   `json:"duration_minutes,omitempty"`
	Color             *string                `gorm:"type:varchar(30)" json:"color,omitempty"`
	Notes             string                 `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt         time.Time              `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time              `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient                  `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Records []TreatmentSessionRecord `gorm:"foreignKey:TreatmentSessionID;constraint:OnDelete:CASCADE" json:"records,omitempty"`
}

func (TreatmentSession) TableName() string {
	return "treatment_sessions"
}

// IsValidTreatmentType checks whether a treatment type value is known
func IsValidTreatmentType(t TreatmentType) bool {
	return t == TreatmentTypeLightBath || t == TreatmentTypeRod
}

// AttendanceType maps the treatment modality to its attendance type
func (t TreatmentType) AttendanceType() AttendanceType {
	if t == TreatmentTypeRod {
		return AttendanceTypeRod
	}
	return AttendanceTypeLightBath
}

// IsCancelled checks if the plan was cancelled
func (s *TreatmentSession) IsCancelled() bool {
	return s.Status == SessionStatusCancelled
}

// RefreshProgress recomputes the derived progress fields from the count of
// completed child records. This is the single writer of CompletedSessions
// and the only path by which a plan becomes COMPLETED. endDate is stamped
// once, on the transition to COMPLETED.
func (s *TreatmentSession) RefreshProgress(completedCount int, endDate string) {
	s.CompletedSessions = completedCount
	if s.IsCancelled() {
		return
	}
	switch {
	case s.PlannedSessions > 0 && completedCount >= s.PlannedSessions:
		s.Status = SessionStatusCompleted
		if s.EndDate == nil {
			s.EndDate = &endDate
		}
	case completedCount > 0:
		s.Status = SessionStatusInProgress
	default:
		s.Status = SessionStatusScheduled
	}
}
