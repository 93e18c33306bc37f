package converter

import (
	"clinic-scheduling-backend/internal/delivery/dto"
	"clinic-scheduling-backend/internal/domain/entity"
)

// ScheduleSettingToResponse converts a ScheduleSetting entity to its DTO
func ScheduleSettingToResponse(setting *entity.ScheduleSetting) *dto.ScheduleSettingResponse {
	if setting == nil {
		return nil
	}

	return &dto.ScheduleSettingResponse{
		ID:                     setting.ID,
		DayOfWeek:              setting.DayOfWeek,
		StartTime:              setting.StartTime,
		EndTime:                setting.EndTime,
		MaxConcurrentSpiritual: setting.MaxConcurrentSpiritual,
		MaxConcurrentLightBath: setting.MaxConcurrentLightBath,
		IsActive:               setting.IsActive,
		CreatedAt:              setting.CreatedAt,
		UpdatedAt:              setting.UpdatedAt,
	}
}

// ScheduleSettingsToResponses converts a slice of ScheduleSetting entities to DTOs
func ScheduleSettingsToResponses(settings []entity.ScheduleSetting) []dto.ScheduleSettingResponse {
	responses := make([]dto.ScheduleSettingResponse, len(settings))
	for i, setting := range settings {
		responses[i] = *ScheduleSettingToResponse(&setting)
	}
	return responses
}
