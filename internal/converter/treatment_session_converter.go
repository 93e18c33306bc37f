package converter

import (
	"clinic-scheduling-backend/internal/delivery/dto"
	"clinic-scheduling-backend/internal/domain/entity"
)

// TreatmentSessionToResponse converts a TreatmentSession entity, including
// its child records, to a TreatmentSessionResponse DTO
func TreatmentSessionToResponse(session *entity.TreatmentSession) *dto.TreatmentSessionResponse {
	if session == nil {
		return nil
	}

	return &dto.TreatmentSessionResponse{
		ID:                session.ID,
		TreatmentRecordID: session.TreatmentRecordID,
		AttendanceID:      session.AttendanceID,
		PatientID:         session.PatientID,
		TreatmentType:     string(session.TreatmentType),
		BodyLocation:      session.BodyLocation,
		StartDate:         session.StartDate,
		EndDate:           session.EndDate,
		PlannedSessions:   session.PlannedSessions,
		CompletedSessions: session.CompletedSessions,
		Status:            string(session.Status),
		DurationMinutes:   session.DurationMinutes,
		Color:             session.Color,
		Notes:             session.Notes,
		Records:           SessionRecordsToResponses(session.Records),
		CreatedAt:         session.CreatedAt,
		UpdatedAt:         session.UpdatedAt,
	}
}

// TreatmentSessionsToResponses converts a slice of TreatmentSession entities to DTOs
func TreatmentSessionsToResponses(sessions []entity.TreatmentSession) []dto.TreatmentSessionResponse {
	responses := make([]dto.TreatmentSessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = *TreatmentSessionToResponse(&session)
	}
	return responses
}

// SessionRecordToResponse converts a TreatmentSessionRecord entity to its DTO
func SessionRecordToResponse(record *entity.TreatmentSessionRecord) *dto.TreatmentSessionRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.TreatmentSessionRecordResponse{
		ID:                 record.ID,
		TreatmentSessionID: record.TreatmentSessionID,
		SessionNumber:      record.SessionNumber,
		ScheduledDate:      record.ScheduledDate,
		StartTime:          record.StartTime,
		EndTime:            record.EndTime,
		Status:             string(record.Status),
		MissedReason:       record.MissedReason,
		AttendanceID:       record.AttendanceID,
		Notes:              record.Notes,
		CreatedAt:          record.CreatedAt,
		UpdatedAt:          record.UpdatedAt,
	}
}

// SessionRecordsToResponses converts a slice of TreatmentSessionRecord entities to DTOs
func SessionRecordsToResponses(records []entity.TreatmentSessionRecord) []dto.TreatmentSessionRecordResponse {
	if len(records) == 0 {
		return nil
	}
	responses := make([]dto.TreatmentSessionRecordResponse, len(records))
	for i, record := range records {
		responses[i] = *SessionRecordToResponse(&record)
	}
	return responses
}
