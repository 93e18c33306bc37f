package repository

import (
	"context"
	"errors"

	"clinic-scheduling-backend/internal/domain/entity"
	domainRepo "clinic-scheduling-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type scheduleSettingRepository struct{}

func NewScheduleSettingRepository() domainRepo.ScheduleSettingRepository {
	return &scheduleSettingRepository{}
}

func (r *scheduleSettingRepository) Create(ctx context.Context, db *gorm.DB, setting *entity.ScheduleSetting) error {
	return db.WithContext(ctx).Create(setting).Error
}

func (r *scheduleSettingRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.ScheduleSetting, error) {
	var setting entity.ScheduleSetting
	err := db.WithContext(ctx).Where("id = ?", id).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (r *scheduleSettingRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.ScheduleSetting, error) {
	var settings []entity.ScheduleSetting
	err := db.WithContext(ctx).Order("day_of_week ASC, is_active DESC").Find(&settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *scheduleSettingRepository) FindActiveByDayOfWeek(ctx context.Context, db *gorm.DB, dayOfWeek int) (*entity.ScheduleSetting, error) {
	var setting entity.ScheduleSetting
	err := db.WithContext(ctx).
		Where("day_of_week = ? AND is_active = ?", dayOfWeek, true).
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (r *scheduleSettingRepository) Update(ctx context.Context, db *gorm.DB, setting *entity.ScheduleSetting) error {
	return db.WithContext(ctx).Save(setting).Error
}

func (r *scheduleSettingRepository) Delete(ctx context.Context, db *gorm.DB, id int) error {
	return db.WithContext(ctx).Delete(&entity.ScheduleSetting{}, "id = ?", id).Error
}
