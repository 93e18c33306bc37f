package usecase

import (
	"context"
	"errors"

	"clinic-scheduling-backend/internal/converter"
	"clinic-scheduling-backend/internal/delivery/dto"
	"clinic-scheduling-backend/internal/domain/entity"
	"clinic-scheduling-backend/internal/domain/repository"
	"clinic-scheduling-backend/internal/service"
	"clinic-scheduling-backend/pkg/dateutil"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAttendanceNotFound      = errors.New("attendance not found")
	ErrInvalidDateFormat       = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat       = errors.New("invalid time format, use HH:MM")
	ErrNoScheduleConfigured    = errors.New("no active schedule configured for this day of week")
	ErrOutsideOperatingHours   = errors.New("scheduled time is outside operating hours")
	ErrCapacityExceeded        = errors.New("capacity for this slot is exceeded")
	ErrInvalidStatusTransition = errors.New("invalid attendance status transition")
)

// SlotReserver atomically claims and frees per-slot capacity. Reservation
// failures other than a full slot are treated as degraded mode: the plain
// database count check has already run and admission proceeds.
type SlotReserver interface {
	Reserve(ctx context.Context, date, timeStr string, typ entity.AttendanceType, ceiling int) error
	Release(ctx context.Context, date, timeStr string, typ entity.AttendanceType) error
}

type AttendanceUsecase interface {
	Create(ctx context.Context, req *dto.CreateAttendanceRequest) (*dto.AttendanceResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AttendanceResponse, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AttendanceListResponse, error)
	ListByDate(ctx context.Context, date string) (*dto.AttendanceListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAttendanceRequest) (*dto.AttendanceResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type attendanceUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	attendRepo   repository.AttendanceRepository
	patientRepo  repository.PatientRepository
	settingRepo  repository.ScheduleSettingRepository
	slots        SlotReserver
	auditService service.AuditService
}

func NewAttendanceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	attendRepo repository.AttendanceRepository,
	patientRepo repository.PatientRepository,
	settingRepo repository.ScheduleSettingRepository,
	slots SlotReserver,
	auditService service.AuditService,
) AttendanceUsecase {
	return &attendanceUsecase{
		db:           db,
		log:          log,
		attendRepo:   attendRepo,
		patientRepo:  patientRepo,
		settingRepo:  settingRepo,
		slots:        slots,
		auditService: auditService,
	}
}

// validateSlot runs the capacity/schedule validation for a candidate
// attendance and returns the applicable concurrency ceiling:
// 1. there must be an active schedule setting for the date's day of week
// 2. the time must fall inside its operating window
// 3. the count of already SCHEDULED attendances on the identical
//    date+time+type slot must be below the type's ceiling
func (u *attendanceUsecase) validateSlot(ctx context.Context, date, timeStr string, typ entity.AttendanceType) (int, error) {
	dayOfWeek, err := dateutil.DayOfWeek(date)
	if err != nil {
		return 0, ErrInvalidDateFormat
	}

	setting, err := u.settingRepo.FindActiveByDayOfWeek(ctx, u.db, dayOfWeek)
	if err != nil {
		u.log.Warnf("Failed to find schedule setting for day %d: %+v", dayOfWeek, err)
		return 0, err
	}
	if setting == nil {
		return 0, ErrNoScheduleConfigured
	}

	if !setting.CoversTime(timeStr) {
		return 0, ErrOutsideOperatingHours
	}

	ceiling := setting.CeilingFor(typ)
	count, err := u.attendRepo.CountScheduledAt(ctx, u.db, date, timeStr, typ)
	if err != nil {
		u.log.Warnf("Failed to count scheduled attendances at %s %s: %+v", date, timeStr, err)
		return 0, err
	}
	if count >= int64(ceiling) {
		return 0, ErrCapacityExceeded
	}

	return ceiling, nil
}

// Create admits a new attendance.
//
// Flow:
// 1. Validate patient exists and date/time formats
// 2. Capacity/schedule validation against the database
// 3. Atomic Redis slot reservation (closes the check-then-insert race)
// 4. Insert attendance with status SCHEDULED
// 5. If the insert fails -> compensate: release the reserved slot
func (u *attendanceUsecase) Create(ctx context.Context, req *dto.CreateAttendanceRequest) (*dto.AttendanceResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if !dateutil.IsValidDateString(req.ScheduledDate) {
		return nil, ErrInvalidDateFormat
	}
	if !dateutil.IsValidTimeString(req.ScheduledTime) {
		return nil, ErrInvalidTimeFormat
	}

	typ := entity.AttendanceType(req.Type)
	ceiling, err := u.validateSlot(ctx, req.ScheduledDate, req.ScheduledTime, typ)
	if err != nil {
		return nil, err
	}

	reserved := false
	if u.slots != nil {
		err := u.slots.Reserve(ctx, req.ScheduledDate, req.ScheduledTime, typ, ceiling)
		switch {
		case errors.Is(err, service.ErrSlotFull):
			return nil, ErrCapacityExceeded
		case err != nil:
			// Redis degraded: the DB count check above already passed
			u.log.Warnf("Slot reservation unavailable, admitting on DB check only: %+v", err)
		default:
			reserved = true
		}
	}

	attendance := &entity.Attendance{
		PatientID:     req.PatientID,
		Type:          typ,
		Status:        entity.AttendanceStatusScheduled,
		ScheduledDate: req.ScheduledDate,
		ScheduledTime: req.ScheduledTime,
		Notes:         req.Notes,
	}

	if err := u.attendRepo.Create(ctx, u.db, attendance); err != nil {
		u.log.Errorf("Failed to insert attendance, compensating slot: %+v", err)
		if reserved {
			if releaseErr := u.slots.Release(ctx, req.ScheduledDate, req.ScheduledTime, typ); releaseErr != nil {
				u.log.Errorf("CRITICAL: Failed to release slot after DB failure: %+v", releaseErr)
			}
		}
		return nil, err
	}

	if u.auditService != nil {
		_ = u.auditService.LogCreate(ctx, u.db, entity.AuditActionAttendanceCreate, "attendance", attendance.ID.String(), attendance)
	}

	u.log.Infof("Attendance created: id=%s, slot=%s %s %s", attendance.ID, attendance.ScheduledDate, attendance.ScheduledTime, attendance.Type)
	return converter.AttendanceToResponse(attendance), nil
}

func (u *attendanceUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.AttendanceResponse, error) {
	attendance, err := u.attendRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find attendance %s: %+v", id, err)
		return nil, err
	}
	if attendance == nil {
		return nil, ErrAttendanceNotFound
	}

	return converter.AttendanceToResponse(attendance), nil
}

func (u *attendanceUsecase) ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AttendanceListResponse, error) {
	attendances, err := u.attendRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find attendances for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AttendanceListResponse{
		Attendances: converter.AttendancesToResponses(attendances),
		Total:       len(attendances),
	}, nil
}

func (u *attendanceUsecase) ListByDate(ctx context.Context, date string) (*dto.AttendanceListResponse, error) {
	if !dateutil.IsValidDateString(date) {
		return nil, ErrInvalidDateFormat
	}

	attendances, err := u.attendRepo.FindByDate(ctx, u.db, date)
	if err != nil {
		u.log.Warnf("Failed to find attendances for date %s: %+v", date, err)
		return nil, err
	}

	return &dto.AttendanceListResponse{
		Attendances: converter.AttendancesToResponses(attendances),
		Total:       len(attendances),
	}, nil
}

// Update applies a partial patch. A status change must follow the
// transition table; notes are merged unconditionally. Cancelling an
// attendance that still held its slot releases the slot.
func (u *attendanceUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAttendanceRequest) (*dto.AttendanceResponse, error) {
	attendance, err := u.attendRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find attendance %s: %+v", id, err)
		return nil, err
	}
	if attendance == nil {
		return nil, ErrAttendanceNotFound
	}

	wasScheduled := attendance.IsScheduled()

	if req.Status != "" {
		target := entity.AttendanceStatus(req.Status)
		if target != attendance.Status {
			if !attendance.Status.CanTransitionTo(target) {
				return nil, ErrInvalidStatusTransition
			}
			attendance.Status = target
		}
	}
	if req.Notes != nil {
		attendance.Notes = *req.Notes
	}

	if err := u.attendRepo.Update(ctx, u.db, attendance); err != nil {
		u.log.Warnf("Failed to update attendance %s: %+v", id, err)
		return nil, err
	}

	if wasScheduled && attendance.Status == entity.AttendanceStatusCancelled && u.slots != nil {
		if err := u.slots.Release(ctx, attendance.ScheduledDate, attendance.ScheduledTime, attendance.Type); err != nil {
			u.log.Warnf("Failed to release slot for cancelled attendance %s (non-fatal): %+v", id, err)
		}
	}

	if u.auditService != nil {
		_ = u.auditService.LogUpdate(ctx, u.db, entity.AuditActionAttendanceUpdate, "attendance", attendance.ID.String(), req, attendance)
	}

	return converter.AttendanceToResponse(attendance), nil
}

// Delete hard-deletes an attendance. A still-scheduled attendance frees
// its slot on the way out.
func (u *attendanceUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	attendance, err := u.attendRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find attendance %s: %+v", id, err)
		return err
	}
	if attendance == nil {
		return ErrAttendanceNotFound
	}

	if err := u.attendRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to delete attendance %s: %+v", id, err)
		return err
	}

	if attendance.IsScheduled() && u.slots != nil {
		if err := u.slots.Release(ctx, attendance.ScheduledDate, attendance.ScheduledTime, attendance.Type); err != nil {
			u.log.Warnf("Failed to release slot for deleted attendance %s (non-fatal): %+v", id, err)
		}
	}

	if u.auditService != nil {
		_ = u.auditService.LogDelete(ctx, u.db, entity.AuditActionAttendanceDelete, "attendance", id.String(), attendance)
	}

	u.log.Infof("Attendance deleted: id=%s", id)
	return nil
}
