package repository

import (
	"context"

	"clinic-scheduling-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type ScheduleSettingRepository interface {
	Create(ctx context.Context, db *gorm.DB, setting *entity.ScheduleSetting) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.ScheduleSetting, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.ScheduleSetting, error)
	FindActiveByDayOfWeek(ctx context.Context, db *gorm.DB, dayOfWeek int) (*entity.ScheduleSetting, error)
	Update(ctx context.Context, db *gorm.DB, setting *entity.ScheduleSetting) error
	Delete(ctx context.Context, db *gorm.DB, id int) error
}
