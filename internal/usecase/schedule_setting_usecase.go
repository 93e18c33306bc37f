package usecase

import (
	"context"
	"errors"
	"strconv"

	"clinic-scheduling-backend/internal/converter"
	"clinic-scheduling-backend/internal/delivery/dto"
	"clinic-scheduling-backend/internal/domain/entity"
	"clinic-scheduling-backend/internal/domain/repository"
	"clinic-scheduling-backend/internal/service"
	"clinic-scheduling-backend/pkg/dateutil"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrScheduleSettingNotFound = errors.New("schedule setting not found")
	ErrInvalidDayOfWeek        = errors.New("day of week must be between 0 and 6")
	ErrInvalidTimeRange        = errors.New("start time must be before end time")
	ErrDuplicateActiveDay      = errors.New("an active schedule setting already exists for this day of week")
)

type ScheduleSettingUsecase interface {
	Create(ctx context.Context, req *dto.CreateScheduleSettingRequest) (*dto.ScheduleSettingResponse, error)
	Get(ctx context.Context, id int) (*dto.ScheduleSettingResponse, error)
	List(ctx context.Context) (*dto.ScheduleSettingListResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateScheduleSettingRequest) (*dto.ScheduleSettingResponse, error)
	Delete(ctx context.Context, id int) error
}

type scheduleSettingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	settingRepo  repository.ScheduleSettingRepository
	auditService service.AuditService
}

func NewScheduleSettingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	settingRepo repository.ScheduleSettingRepository,
	auditService service.AuditService,
) ScheduleSettingUsecase {
	return &scheduleSettingUsecase{
		db:           db,
		log:          log,
		settingRepo:  settingRepo,
		auditService: auditService,
	}
}

func (u *scheduleSettingUsecase) Create(ctx context.Context, req *dto.CreateScheduleSettingRequest) (*dto.ScheduleSettingResponse, error) {
	if req.DayOfWeek == nil || *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		return nil, ErrInvalidDayOfWeek
	}
	if !dateutil.IsValidTimeString(req.StartTime) || !dateutil.IsValidTimeString(req.EndTime) {
		return nil, ErrInvalidTimeFormat
	}
	if req.StartTime >= req.EndTime {
		return nil, ErrInvalidTimeRange
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	// Application-level invariant: at most one active setting per day
	if isActive {
		existing, err := u.settingRepo.FindActiveByDayOfWeek(ctx, u.db, *req.DayOfWeek)
		if err != nil {
			u.log.Warnf("Failed to check active setting for day %d: %+v", *req.DayOfWeek, err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrDuplicateActiveDay
		}
	}

	setting := &entity.ScheduleSetting{
		DayOfWeek:              *req.DayOfWeek,
		StartTime:              req.StartTime,
		EndTime:                req.EndTime,
		MaxConcurrentSpiritual: req.MaxConcurrentSpiritual,
		MaxConcurrentLightBath: req.MaxConcurrentLightBath,
		IsActive:               isActive,
	}

	if err := u.settingRepo.Create(ctx, u.db, setting); err != nil {
		u.log.Warnf("Failed to create schedule setting: %+v", err)
		return nil, err
	}

	if u.auditService != nil {
		_ = u.auditService.LogCreate(ctx, u.db, entity.AuditActionScheduleCreate, "schedule_setting", strconv.Itoa(setting.ID), setting)
	}

	u.log.Infof("Schedule setting created: id=%d, day=%d", setting.ID, setting.DayOfWeek)
	return converter.ScheduleSettingToResponse(setting), nil
}

func (u *scheduleSettingUsecase) Get(ctx context.Context, id int) (*dto.ScheduleSettingResponse, error) {
	setting, err := u.settingRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find schedule setting %d: %+v", id, err)
		return nil, err
	}
	if setting == nil {
		return nil, ErrScheduleSettingNotFound
	}

	return converter.ScheduleSettingToResponse(setting), nil
}

func (u *scheduleSettingUsecase) List(ctx context.Context) (*dto.ScheduleSettingListResponse, error) {
	settings, err := u.settingRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list schedule settings: %+v", err)
		return nil, err
	}

	return &dto.ScheduleSettingListResponse{
		Settings: converter.ScheduleSettingsToResponses(settings),
		Total:    len(settings),
	}, nil
}

func (u *scheduleSettingUsecase) Update(ctx context.Context, id int, req *dto.UpdateScheduleSettingRequest) (*dto.ScheduleSettingResponse, error) {
	setting, err := u.settingRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find schedule setting %d: %+v", id, err)
		return nil, err
	}
	if setting == nil {
		return nil, ErrScheduleSettingNotFound
	}

	if req.StartTime != "" {
		if !dateutil.IsValidTimeString(req.StartTime) {
			return nil, ErrInvalidTimeFormat
		}
		setting.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		if !dateutil.IsValidTimeString(req.EndTime) {
			return nil, ErrInvalidTimeFormat
		}
		setting.EndTime = req.EndTime
	}
	if setting.StartTime >= setting.EndTime {
		return nil, ErrInvalidTimeRange
	}
	if req.MaxConcurrentSpiritual != nil {
		setting.MaxConcurrentSpiritual = *req.MaxConcurrentSpiritual
	}
	if req.MaxConcurrentLightBath != nil {
		setting.MaxConcurrentLightBath = *req.MaxConcurrentLightBath
	}
	if req.IsActive != nil {
		// Activating must not break the one-active-per-day invariant
		if *req.IsActive && !setting.IsActive {
			existing, err := u.settingRepo.FindActiveByDayOfWeek(ctx, u.db, setting.DayOfWeek)
			if err != nil {
				u.log.Warnf("Failed to check active setting for day %d: %+v", setting.DayOfWeek, err)
				return nil, err
			}
			if existing != nil && existing.ID != setting.ID {
				return nil, ErrDuplicateActiveDay
			}
		}
		setting.IsActive = *req.IsActive
	}

	if err := u.settingRepo.Update(ctx, u.db, setting); err != nil {
		u.log.Warnf("Failed to update schedule setting %d: %+v", id, err)
		return nil, err
	}

	if u.auditService != nil {
		_ = u.auditService.LogUpdate(ctx, u.db, entity.AuditActionScheduleUpdate, "schedule_setting", strconv.Itoa(setting.ID), req, setting)
	}

	return converter.ScheduleSettingToResponse(setting), nil
}

func (u *scheduleSettingUsecase) Delete(ctx context.Context, id int) error {
	setting, err := u.settingRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find schedule setting %d: %+v", id, err)
		return err
	}
	if setting == nil {
		return ErrScheduleSettingNotFound
	}

	if err := u.settingRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to delete schedule setting %d: %+v", id, err)
		return err
	}

	if u.auditService != nil {
		_ = u.auditService.LogDelete(ctx, u.db, entity.AuditActionScheduleDelete, "schedule_setting", strconv.Itoa(id), setting)
	}

	return nil
}
