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
	ErrSessionRecordNotFound  = errors.New("treatment session record not found")
	ErrSessionRecordCompleted = errors.New("a completed session record cannot be changed")
	ErrSessionRecordCancelled = errors.New("a cancelled session record cannot be changed")
)

type TreatmentSessionRecordUsecase interface {
	Complete(ctx context.Context, id uuid.UUID, req *dto.CompleteSessionRecordRequest) (*dto.TreatmentSessionRecordResponse, error)
	MarkMissed(ctx context.Context, id uuid.UUID, req *dto.MissSessionRecordRequest) (*dto.TreatmentSessionRecordResponse, error)
	Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleSessionRecordRequest) (*dto.TreatmentSessionRecordResponse, error)
	UpcomingForPatient(ctx context.Context, patientID uuid.UUID, days int) (*dto.UpcomingSessionsResponse, error)
}

type treatmentSessionRecordUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	recordRepo   repository.TreatmentSessionRecordRepository
	sessionRepo  repository.TreatmentSessionRepository
	attendRepo   repository.AttendanceRepository
	auditService service.AuditService
}

func NewTreatmentSessionRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.TreatmentSessionRecordRepository,
	sessionRepo repository.TreatmentSessionRepository,
	attendRepo repository.AttendanceRepository,
	auditService service.AuditService,
) TreatmentSessionRecordUsecase {
	return &treatmentSessionRecordUsecase{
		db:           db,
		log:          log,
		recordRepo:   recordRepo,
		sessionRepo:  sessionRepo,
		attendRepo:   attendRepo,
		auditService: auditService,
	}
}

// refreshParent recomputes the parent plan's derived progress from the
// persisted count of COMPLETED records. Called after every record mutation
// that can change that count.
func (u *treatmentSessionRecordUsecase) refreshParent(ctx context.Context, sessionID uuid.UUID) error {
	session, err := u.sessionRepo.FindByID(ctx, u.db, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrTreatmentSessionNotFound
	}

	completed, err := u.recordRepo.CountCompletedBySession(ctx, u.db, sessionID)
	if err != nil {
		return err
	}

	session.RefreshProgress(int(completed), dateutil.Today())
	return u.sessionRepo.Update(ctx, u.db, session)
}

// Complete marks one session occurrence as done and rolls the result up
// into the parent plan. End time is stamped from the clock; start time is
// only filled when nothing recorded it earlier.
func (u *treatmentSessionRecordUsecase) Complete(ctx context.Context, id uuid.UUID, req *dto.CompleteSessionRecordRequest) (*dto.TreatmentSessionRecordResponse, error) {
	record, err := u.recordRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find session record %s: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrSessionRecordNotFound
	}
	if record.IsCompleted() {
		return nil, ErrSessionRecordCompleted
	}
	if record.IsCancelled() {
		return nil, ErrSessionRecordCancelled
	}

	if req.AttendanceID != nil {
		attendance, err := u.attendRepo.FindByID(ctx, u.db, *req.AttendanceID)
		if err != nil {
			u.log.Warnf("Failed to find attendance %s: %+v", *req.AttendanceID, err)
			return nil, err
		}
		if attendance == nil {
			return nil, ErrAttendanceNotFound
		}
	}

	now := dateutil.NowTime()
	record.Status = entity.SessionRecordStatusCompleted
	record.MissedReason = nil
	if record.StartTime == nil {
		record.StartTime = &now
	}
	record.EndTime = &now
	if req.AttendanceID != nil {
		record.AttendanceID = req.AttendanceID
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}

	if err := u.recordRepo.Update(ctx, u.db, record); err != nil {
		u.log.Warnf("Failed to complete session record %s: %+v", id, err)
		return nil, err
	}

	if err := u.refreshParent(ctx, record.TreatmentSessionID); err != nil {
		u.log.Errorf("Failed to refresh session %s progress after completion: %+v", record.TreatmentSessionID, err)
		return nil, err
	}

	if u.auditService != nil {
		_ = u.auditService.LogUpdate(ctx, u.db, entity.AuditActionSessionComplete, "treatment_session_record", record.ID.String(), req, record)
	}

	u.log.Infof("Session record completed: id=%s, session=%s, number=%d", record.ID, record.TreatmentSessionID, record.SessionNumber)
	return converter.SessionRecordToResponse(record), nil
}

// MarkMissed flags a no-show. Only not-yet-completed occurrences can be
// missed, so the parent counter is untouched.
func (u *treatmentSessionRecordUsecase) MarkMissed(ctx context.Context, id uuid.UUID, req *dto.MissSessionRecordRequest) (*dto.TreatmentSessionRecordResponse, error) {
	record, err := u.recordRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find session record %s: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrSessionRecordNotFound
	}
	if record.IsCompleted() {
		return nil, ErrSessionRecordCompleted
	}
	if record.IsCancelled() {
		return nil, ErrSessionRecordCancelled
	}

	record.Status = entity.SessionRecordStatusMissed
	record.MissedReason = &req.Reason

	if err := u.recordRepo.Update(ctx, u.db, record); err != nil {
		u.log.Warnf("Failed to mark session record %s as missed: %+v", id, err)
		return nil, err
	}

	if u.auditService != nil {
		_ = u.auditService.LogUpdate(ctx, u.db, entity.AuditActionSessionMiss, "treatment_session_record", record.ID.String(), req, record)
	}

	u.log.Infof("Session record missed: id=%s, reason=%s", record.ID, req.Reason)
	return converter.SessionRecordToResponse(record), nil
}

// Reschedule moves a not-yet-completed occurrence to a new date and resets
// it to SCHEDULED, clearing any missed reason. Completed occurrences are
// history and cannot be moved.
func (u *treatmentSessionRecordUsecase) Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleSessionRecordRequest) (*dto.TreatmentSessionRecordResponse, error) {
	record, err := u.recordRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find session record %s: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrSessionRecordNotFound
	}
	if record.IsCompleted() {
		return nil, ErrSessionRecordCompleted
	}

	if !dateutil.IsValidDateString(req.NewDate) {
		return nil, ErrInvalidDateFormat
	}

	record.ScheduledDate = req.NewDate
	record.Status = entity.SessionRecordStatusScheduled
	record.MissedReason = nil
	record.StartTime = nil
	record.EndTime = nil

	if err := u.recordRepo.Update(ctx, u.db, record); err != nil {
		u.log.Warnf("Failed to reschedule session record %s: %+v", id, err)
		return nil, err
	}

	if u.auditService != nil {
		_ = u.auditService.LogUpdate(ctx, u.db, entity.AuditActionSessionReschedule, "treatment_session_record", record.ID.String(), req, record)
	}

	u.log.Infof("Session record rescheduled: id=%s, new_date=%s", record.ID, req.NewDate)
	return converter.SessionRecordToResponse(record), nil
}

// UpcomingForPatient lists the patient's SCHEDULED occurrences falling
// within the next N days, today inclusive, earliest first.
func (u *treatmentSessionRecordUsecase) UpcomingForPatient(ctx context.Context, patientID uuid.UUID, days int) (*dto.UpcomingSessionsResponse, error) {
	if days <= 0 {
		days = 7
	}

	from := dateutil.Today()
	to, err := dateutil.AddDays(from, days)
	if err != nil {
		return nil, err
	}

	records, err := u.recordRepo.FindUpcomingByPatient(ctx, u.db, patientID, from, to)
	if err != nil {
		u.log.Warnf("Failed to find upcoming session records for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.UpcomingSessionsResponse{
		Records: converter.SessionRecordsToResponses(records),
		Total:   len(records),
	}, nil
}
