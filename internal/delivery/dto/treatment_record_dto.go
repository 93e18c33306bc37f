package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateTreatmentRecordRequest struct {
	AttendanceID       uuid.UUID `json:"attendance_id" validate:"required"`
	PatientID          uuid.UUID `json:"patient_id" validate:"required"`
	Notes              string    `json:"notes" validate:"omitempty"`
	LightBath          bool      `json:"light_bath"`
	Rod                bool      `json:"rod"`
	SpiritualTreatment bool      `json:"spiritual_treatment"`
	ReturnInWeeks      int       `json:"return_in_weeks" validate:"required,min=1,max=52"`
}

type UpdateTreatmentRecordRequest struct {
	Notes              *string `json:"notes" validate:"omitempty"`
	LightBath          *bool   `json:"light_bath" validate:"omitempty"`
	Rod                *bool   `json:"rod" validate:"omitempty"`
	SpiritualTreatment *bool   `json:"spiritual_treatment" validate:"omitempty"`
	ReturnInWeeks      *int    `json:"return_in_weeks" validate:"omitempty,min=1,max=52"`
}

// Response DTOs

type TreatmentRecordResponse struct {
	ID                 uuid.UUID `json:"id"`
	AttendanceID       uuid.UUID `json:"attendance_id"`
	PatientID          uuid.UUID `json:"patient_id"`
	Notes              string    `json:"notes,omitempty"`
	LightBath          bool      `json:"light_bath"`
	Rod                bool      `json:"rod"`
	SpiritualTreatment bool      `json:"spiritual_treatment"`
	ReturnInWeeks      int       `json:"return_in_weeks"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type TreatmentRecordListResponse struct {
	Records []TreatmentRecordResponse `json:"records"`
	Total   int                       `json:"total"`
}
