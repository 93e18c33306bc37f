package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Priority string `json:"priority" validate:"omitempty,oneof=normal priority emergency"`
}

type UpdatePatientRequest struct {
	Name            string  `json:"name" validate:"omitempty,min=2,max=255"`
	Phone           *string `json:"phone" validate:"omitempty"`
	Priority        string  `json:"priority" validate:"omitempty,oneof=normal priority emergency"`
	TreatmentStatus string  `json:"treatment_status" validate:"omitempty,oneof=new in_treatment discharged absent"`
}

// Response DTOs

type PatientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone,omitempty"`
	Priority        string    `json:"priority"`
	TreatmentStatus string    `json:"treatment_status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
