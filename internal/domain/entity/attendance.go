package entity

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceType represents the kind of treatment an attendance slot is for
type AttendanceType string

const (
	AttendanceTypeSpiritual AttendanceType = "spiritual"
	AttendanceTypeLightBath AttendanceType = "light_bath"
	AttendanceTypeRod       AttendanceType = "rod"
)

// AttendanceStatus represents the status of an attendance
type AttendanceStatus string

const (
	AttendanceStatusScheduled  AttendanceStatus = "scheduled"
	AttendanceStatusCheckedIn  AttendanceStatus = "checked_in"
	AttendanceStatusInProgress AttendanceStatus = "in_progress"
	AttendanceStatusCompleted  AttendanceStatus = "completed"
	AttendanceStatusCancelled  AttendanceStatus = "cancelled"
)

// attendanceTransitions is the allowed status transition table.
// COMPLETED and CANCELLED are terminal.
var attendanceTransitions = map[AttendanceStatus][]AttendanceStatus{
	AttendanceStatusScheduled:  {AttendanceStatusCheckedIn, AttendanceStatusCancelled},
	AttendanceStatusCheckedIn:  {AttendanceStatusInProgress},
	AttendanceStatusInProgress: {AttendanceStatusCompleted},
	AttendanceStatusCompleted:  {},
	AttendanceStatusCancelled:  {},
}

// Attendance represents one scheduled clinic visit slot for a patient.
// Dates and times are stored as plain calendar/wall-clock strings, never
// converted between timezones.
type Attendance struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"patient_id"`
	Type          AttendanceType   `gorm:"type:varchar(20);not null;index" json:"type"`
	Status        AttendanceStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	ScheduledDate string           `gorm:"type:varchar(10);not null;index" json:"scheduled_date"`
	ScheduledTime string           `gorm:"type:varchar(5);not null" json:"scheduled_time"`
	Notes         string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// IsValidAttendanceType checks whether a type value is one of the known types
func IsValidAttendanceType(t AttendanceType) bool {
	switch t {
	case AttendanceTypeSpiritual, AttendanceTypeLightBath, AttendanceTypeRod:
		return true
	}
	return false
}

// IsValidAttendanceStatus checks whether a status value is known
func IsValidAttendanceStatus(s AttendanceStatus) bool {
	_, ok := attendanceTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status transition is allowed
func (s AttendanceStatus) CanTransitionTo(target AttendanceStatus) bool {
	for _, allowed := range attendanceTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsScheduled checks if the attendance still holds a slot
func (a *Attendance) IsScheduled() bool {
	return a.Status == AttendanceStatusScheduled
}
