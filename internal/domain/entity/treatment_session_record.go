package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionRecordStatus represents the status of one session occurrence
type SessionRecordStatus string

const (
	SessionRecordStatusScheduled SessionRecordStatus = "scheduled"
	SessionRecordStatusCompleted SessionRecordStatus = "completed"
	SessionRecordStatusMissed    SessionRecordStatus = "missed"
	SessionRecordStatusCancelled SessionRecordStatus = "cancelled"
)

// TreatmentSessionRecord is one concrete dated occurrence of a treatment
// session plan. Records are generated in a batch by the planner and mutated
// individually as the patient completes, misses or reschedules them. The
// linked attendance is referenced, not owned: it is deleted explicitly when
// the parent plan is deleted.
type TreatmentSessionRecord struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TreatmentSessionID uuid.UUID           `gorm:"type:uuid;not null;index" json:"treatment_session_id"`
	SessionNumber      int                 `gorm:"not null" json:"session_number"`
	ScheduledDate      string              `gorm:"type:varchar(10);not null;index" json:"scheduled_date"`
	StartTime          *string             `gorm:"type:varchar(5)" json:"start_time,omitempty"`
	EndTime            *string             `gorm:"type:varchar(5)" json:"end_time,omitempty"`
	Status             SessionRecordStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	MissedReason       *string             `gorm:"type:text" json:"missed_reason,omitempty"`
	AttendanceID       *uuid.UUID          `gorm:"type:uuid" json:"attendance_id,omitempty"`
	Notes              string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TreatmentSessionRecord) TableName() string {
	return "treatment_session_records"
}

// IsCompleted checks if the occurrence was completed
func (r *TreatmentSessionRecord) IsCompleted() bool {
	return r.Status == SessionRecordStatusCompleted
}

// IsCancelled checks if the occurrence was cancelled
func (r *TreatmentSessionRecord) IsCancelled() bool {
	return r.Status == SessionRecordStatusCancelled
}
