package converter

import (
	"clinic-scheduling-backend/internal/delivery/dto"
	"clinic-scheduling-backend/internal/domain/entity"
)

// TreatmentRecordToResponse converts a TreatmentRecord entity to its DTO
func TreatmentRecordToResponse(record *entity.TreatmentRecord) *dto.TreatmentRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.TreatmentRecordResponse{
		ID:                 record.ID,
		AttendanceID:       record.AttendanceID,
		PatientID:          record.PatientID,
		Notes:              record.Notes,
		LightBath:          record.LightBath,
		Rod:                record.Rod,
		SpiritualTreatment: record.SpiritualTreatment,
		ReturnInWeeks:      record.ReturnInWeeks,
		CreatedAt:          record.CreatedAt,
		UpdatedAt:          record.UpdatedAt,
	}
}

// TreatmentRecordsToResponses converts a slice of TreatmentRecord entities to DTOs
func TreatmentRecordsToResponses(records []entity.TreatmentRecord) []dto.TreatmentRecordResponse {
	responses := make([]dto.TreatmentRecordResponse, len(records))
	for i, record := range records {
		responses[i] = *TreatmentRecordToResponse(&record)
	}
	return responses
}
