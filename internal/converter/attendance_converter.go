package converter

import (
	"clinic-scheduling-backend/internal/delivery/dto"
	"clinic-scheduling-backend/internal/domain/entity"
)

// AttendanceToResponse converts an Attendance entity to AttendanceResponse DTO
func AttendanceToResponse(attendance *entity.Attendance) *dto.AttendanceResponse {
	if attendance == nil {
		return nil
	}

	return &dto.AttendanceResponse{
		ID:            attendance.ID,
		PatientID:     attendance.PatientID,
		Type:          string(attendance.Type),
		Status:        string(attendance.Status),
		ScheduledDate: attendance.ScheduledDate,
		ScheduledTime: attendance.ScheduledTime,
		Notes:         attendance.Notes,
		CreatedAt:     attendance.CreatedAt,
		UpdatedAt:     attendance.UpdatedAt,
	}
}

// AttendancesToResponses converts a slice of Attendance entities to DTOs
func AttendancesToResponses(attendances []entity.Attendance) []dto.AttendanceResponse {
	responses := make([]dto.AttendanceResponse, len(attendances))
	for i, attendance := range attendances {
		responses[i] = *AttendanceToResponse(&attendance)
	}
	return responses
}
