package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateTreatmentSessionRequest struct {
	TreatmentRecordID uuid.UUID `json:"treatment_record_id" validate:"required"`
	AttendanceID      uuid.UUID `json:"attendance_id" validate:"required"`
	PatientID         uuid.UUID `json:"patient_id" validate:"required"`
	TreatmentType     string    `json:"treatment_type" validate:"required,oneof=light_bath rod"`
	BodyLocation      string    `json:"body_location" validate:"required,max=255"`
	StartDate         string    `json:"start_date" validate:"required"` // Format: YYYY-MM-DD
	PlannedSessions   int       `json:"planned_sessions" validate:"required,min=1,max=50"`
	DurationMinutes   *int      `json:"duration_minutes" validate:"omitempty,min=1,max=10"` // light bath only, 7-minute units
	Color             *string   `json:"color" validate:"omitempty,max=30"`                  // light bath only
	Notes             string    `json:"notes" validate:"omitempty"`
}

type UpdateTreatmentSessionRequest struct {
	BodyLocation string  `json:"body_location" validate:"omitempty,max=255"`
	Notes        *string `json:"notes" validate:"omitempty"`
	Status       string  `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
}

// CreateWeeklyAttendancesRequest asks for count weekly attendances aligned
// to the next Tuesday after start_date. This is a distinct policy from the
// planner's own start-date-anchored generation.
type CreateWeeklyAttendancesRequest struct {
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
	Type      string    `json:"type" validate:"required,oneof=light_bath rod"`
	StartDate string    `json:"start_date" validate:"required"` // Format: YYYY-MM-DD
	Count     int       `json:"count" validate:"required,min=1,max=50"`
}

type CompleteSessionRecordRequest struct {
	AttendanceID *uuid.UUID `json:"attendance_id" validate:"omitempty"`
	Notes        *string    `json:"notes" validate:"omitempty"`
}

type MissSessionRecordRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type RescheduleSessionRecordRequest struct {
	NewDate string `json:"new_date" validate:"required"` // Format: YYYY-MM-DD
}

// Response DTOs

// AttendanceBatchResult reports how many of the generated attendances were
// admitted and the per-failure messages. A partial failure is not fatal to
// the batch.
type AttendanceBatchResult struct {
	Success int      `json:"success"`
	Errors  []string `json:"errors"`
}

type TreatmentSessionRecordResponse struct {
	ID                 uuid.UUID  `json:"id"`
	TreatmentSessionID uuid.UUID  `json:"treatment_session_id"`
	SessionNumber      int        `json:"session_number"`
	ScheduledDate      string     `json:"scheduled_date"`
	StartTime          *string    `json:"start_time,omitempty"`
	EndTime            *string    `json:"end_time,omitempty"`
	Status             string     `json:"status"`
	MissedReason       *string    `json:"missed_reason,omitempty"`
	AttendanceID       *uuid.UUID `json:"attendance_id,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type TreatmentSessionResponse struct {
	ID                uuid.UUID                        `json:"id"`
	TreatmentRecordID uuid.UUID                        `json:"treatment_record_id"`
	AttendanceID      uuid.UUID                        `json:"attendance_id"`
	PatientID         uuid.UUID                        `json:"patient_id"`
	TreatmentType     string                           `json:"treatment_type"`
	BodyLocation      string                           `json:"body_location"`
	StartDate         string                           `json:"start_date"`
	EndDate           *string                          `json:"end_date,omitempty"`
	PlannedSessions   int                              `json:"planned_sessions"`
	CompletedSessions int                              `json:"completed_sessions"`
	Status            string                           `json:"status"`
	DurationMinutes   *int                             `json:"duration_minutes,omitempty"`
	Color             *string                          `json:"color,omitempty"`
	Notes             string                           `json:"notes,omitempty"`
	Records           []TreatmentSessionRecordResponse `json:"records,omitempty"`
	CreatedAt         time.Time                        `json:"created_at"`
	UpdatedAt         time.Time                        `json:"updated_at"`
}

type CreateTreatmentSessionResponse struct {
	Session     TreatmentSessionResponse `json:"session"`
	Attendances AttendanceBatchResult    `json:"attendances"`
}

type TreatmentSessionListResponse struct {
	Sessions []TreatmentSessionResponse `json:"sessions"`
	Total    int                        `json:"total"`
}

type UpcomingSessionsResponse struct {
	Records []TreatmentSessionRecordResponse `json:"records"`
	Total   int                              `json:"total"`
}
