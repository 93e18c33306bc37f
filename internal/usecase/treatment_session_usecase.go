package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

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
	ErrTreatmentSessionNotFound = errors.New("treatment session not found")
	ErrInvalidPlannedSessions   = errors.New("planned sessions must be between 1 and 50")
	ErrLightBathFieldsRequired  = errors.New("light bath sessions require duration_minutes and color")
	ErrRodFieldsNotAllowed      = errors.New("rod sessions must not have duration_minutes or color")
	ErrInvalidTreatmentType     = errors.New("invalid treatment type")
	ErrInvalidSessionStatus     = errors.New("invalid treatment session status")
)

// Default scheduled times for generated attendances. The planner's own
// generation and the weekly-on-next-Tuesday helper are two distinct
// temporal policies, kept separate on purpose.
const (
	plannerDefaultTime     = "19:30"
	weeklyTuesdayStartTime = "21:00"
)

type TreatmentSessionUsecase interface {
	Create(ctx context.Context, req *dto.CreateTreatmentSessionRequest) (*dto.CreateTreatmentSessionResponse, error)
	CreateWeeklyAttendances(ctx context.Context, req *dto.CreateWeeklyAttendancesRequest) (*dto.AttendanceBatchResult, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.TreatmentSessionResponse, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.TreatmentSessionListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTreatmentSessionRequest) (*dto.TreatmentSessionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type treatmentSessionUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	sessionRepo  repository.TreatmentSessionRepository
	recordRepo   repository.TreatmentSessionRecordRepository
	tRecordRepo  repository.TreatmentRecordRepository
	attendRepo   repository.AttendanceRepository
	patientRepo  repository.PatientRepository
	attendanceUC AttendanceUsecase
	auditService service.AuditService
}

func NewTreatmentSessionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	sessionRepo repository.TreatmentSessionRepository,
	recordRepo repository.TreatmentSessionRecordRepository,
	tRecordRepo repository.TreatmentRecordRepository,
	attendRepo repository.AttendanceRepository,
	patientRepo repository.PatientRepository,
	attendanceUC AttendanceUsecase,
	auditService service.AuditService,
) TreatmentSessionUsecase {
	return &treatmentSessionUsecase{
		db:           db,
		log:          log,
		sessionRepo:  sessionRepo,
		recordRepo:   recordRepo,
		tRecordRepo:  tRecordRepo,
		attendRepo:   attendRepo,
		patientRepo:  patientRepo,
		attendanceUC: attendanceUC,
		auditService: auditService,
	}
}

// Create persists a treatment session plan, generates its dated session
// records on a fixed weekly cadence, and books one attendance per record.
//
// Flow:
// 1. Validate referenced treatment record, attendance and patient exist
// 2. Enforce the light-bath/rod field invariant
// 3. Persist the session (completed=0, status SCHEDULED)
// 4. Generate records i=1..N at start_date + 7*(i-1) days
// 5. Book one attendance per record, sequentially, collecting failures
//
// A failure booking attendance i must not discard the other sessions:
// errors are reported in the result, never propagated.
func (u *treatmentSessionUsecase) Create(ctx context.Context, req *dto.CreateTreatmentSessionRequest) (*dto.CreateTreatmentSessionResponse, error) {
	tRecord, err := u.tRecordRepo.FindByID(ctx, u.db, req.TreatmentRecordID)
	if err != nil {
		u.log.Warnf("Failed to find treatment record %s: %+v", req.TreatmentRecordID, err)
		return nil, err
	}
	if tRecord == nil {
		return nil, ErrTreatmentRecordNotFound
	}

	attendance, err := u.attendRepo.FindByID(ctx, u.db, req.AttendanceID)
	if err != nil {
		u.log.Warnf("Failed to find attendance %s: %+v", req.AttendanceID, err)
		return nil, err
	}
	if attendance == nil {
		return nil, ErrAttendanceNotFound
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	treatmentType := entity.TreatmentType(req.TreatmentType)
	if !entity.IsValidTreatmentType(treatmentType) {
		return nil, ErrInvalidTreatmentType
	}

	// Light bath requires duration and color; rod forbids them
	if treatmentType == entity.TreatmentTypeLightBath {
		if req.DurationMinutes == nil || req.Color == nil || *req.Color == "" {
			return nil, ErrLightBathFieldsRequired
		}
	} else {
		if req.DurationMinutes != nil || req.Color != nil {
			return nil, ErrRodFieldsNotAllowed
		}
	}

	if !dateutil.IsValidDateString(req.StartDate) {
		return nil, ErrInvalidDateFormat
	}
	if req.PlannedSessions < 1 || req.PlannedSessions > 50 {
		return nil, ErrInvalidPlannedSessions
	}

	session := &entity.TreatmentSession{
		TreatmentRecordID: req.TreatmentRecordID,
		AttendanceID:      req.AttendanceID,
		PatientID:         req.PatientID,
		TreatmentType:     treatmentType,
		BodyLocation:      req.BodyLocation,
		StartDate:         req.StartDate,
		PlannedSessions:   req.PlannedSessions,
		CompletedSessions: 0,
		Status:            entity.SessionStatusScheduled,
		DurationMinutes:   req.DurationMinutes,
		Color:             req.Color,
		Notes:             req.Notes,
	}

	if err := u.sessionRepo.Create(ctx, u.db, session); err != nil {
		u.log.Warnf("Failed to create treatment session: %+v", err)
		return nil, err
	}

	records := make([]*entity.TreatmentSessionRecord, 0, req.PlannedSessions)
	for i := 1; i <= req.PlannedSessions; i++ {
		date, err := dateutil.AddDays(req.StartDate, 7*(i-1))
		if err != nil {
			return nil, err
		}
		records = append(records, &entity.TreatmentSessionRecord{
			TreatmentSessionID: session.ID,
			SessionNumber:      i,
			ScheduledDate:      date,
			Status:             entity.SessionRecordStatusScheduled,
		})
	}

	if err := u.recordRepo.CreateBatch(ctx, u.db, records); err != nil {
		u.log.Warnf("Failed to create session records for session %s: %+v", session.ID, err)
		return nil, err
	}
	session.Records = make([]entity.TreatmentSessionRecord, len(records))
	for i, r := range records {
		session.Records[i] = *r
	}

	result := u.bookRecordAttendances(ctx, session, records)

	if u.auditService != nil {
		_ = u.auditService.LogCreate(ctx, u.db, entity.AuditActionSessionCreate, "treatment_session", session.ID.String(), session)
	}

	u.log.Infof("Treatment session created: id=%s, planned=%d, attendances=%d/%d",
		session.ID, session.PlannedSessions, result.Success, len(records))

	return &dto.CreateTreatmentSessionResponse{
		Session:     *converter.TreatmentSessionToResponse(session),
		Attendances: *result,
	}, nil
}

// bookRecordAttendances books one attendance per generated session record,
// strictly in order so each capacity check sees its earlier siblings.
// Failures are collected per record and never abort the batch.
func (u *treatmentSessionUsecase) bookRecordAttendances(ctx context.Context, session *entity.TreatmentSession, records []*entity.TreatmentSessionRecord) *dto.AttendanceBatchResult {
	result := &dto.AttendanceBatchResult{Errors: []string{}}
	total := len(records)

	for i, record := range records {
		resp, err := u.attendanceUC.Create(ctx, &dto.CreateAttendanceRequest{
			PatientID:     session.PatientID,
			Type:          string(session.TreatmentType.AttendanceType()),
			ScheduledDate: record.ScheduledDate,
			ScheduledTime: plannerDefaultTime,
			Notes:         fmt.Sprintf("Sessão %d de %d", record.SessionNumber, session.PlannedSessions),
		})
		if err != nil {
			msg := fmt.Sprintf("Erro ao criar agendamento %d/%d: %v", i+1, total, err)
			u.log.Warnf("Attendance generation failed for session %s: %s", session.ID, msg)
			result.Errors = append(result.Errors, msg)
			continue
		}

		record.AttendanceID = &resp.ID
		if err := u.recordRepo.Update(ctx, u.db, record); err != nil {
			u.log.Warnf("Failed to link attendance %s to record %s: %+v", resp.ID, record.ID, err)
			result.Errors = append(result.Errors, fmt.Sprintf("Erro ao criar agendamento %d/%d: %v", i+1, total, err))
			continue
		}
		if i < len(session.Records) {
			session.Records[i].AttendanceID = record.AttendanceID
		}
		result.Success++
	}

	return result
}

// CreateWeeklyAttendances books count weekly attendances for a patient,
// aligned to the next Tuesday strictly after start_date, at 21:00. This
// policy is intentionally distinct from the planner's generation, which
// anchors on the plan's start date at 19:30.
func (u *treatmentSessionUsecase) CreateWeeklyAttendances(ctx context.Context, req *dto.CreateWeeklyAttendancesRequest) (*dto.AttendanceBatchResult, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if !dateutil.IsValidDateString(req.StartDate) {
		return nil, ErrInvalidDateFormat
	}

	firstDate, err := dateutil.NextWeekday(req.StartDate, time.Tuesday)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	result := &dto.AttendanceBatchResult{Errors: []string{}}
	for i := 0; i < req.Count; i++ {
		date, err := dateutil.AddDays(firstDate, 7*i)
		if err != nil {
			return nil, err
		}

		_, err = u.attendanceUC.Create(ctx, &dto.CreateAttendanceRequest{
			PatientID:     req.PatientID,
			Type:          req.Type,
			ScheduledDate: date,
			ScheduledTime: weeklyTuesdayStartTime,
			Notes:         fmt.Sprintf("Sessão %d de %d", i+1, req.Count),
		})
		if err != nil {
			msg := fmt.Sprintf("Erro ao criar agendamento %d/%d: %v", i+1, req.Count, err)
			u.log.Warnf("Weekly attendance generation failed: %s", msg)
			result.Errors = append(result.Errors, msg)
			continue
		}
		result.Success++
	}

	return result, nil
}

func (u *treatmentSessionUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.TreatmentSessionResponse, error) {
	session, err := u.sessionRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find treatment session %s: %+v", id, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrTreatmentSessionNotFound
	}

	return converter.TreatmentSessionToResponse(session), nil
}

func (u *treatmentSessionUsecase) ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.TreatmentSessionListResponse, error) {
	sessions, err := u.sessionRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find treatment sessions for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.TreatmentSessionListResponse{
		Sessions: converter.TreatmentSessionsToResponses(sessions),
		Total:    len(sessions),
	}, nil
}

// Update merges mutable fields and re-derives the plan status from its
// progress. This is the only path besides record completion by which a
// plan transitions to COMPLETED.
func (u *treatmentSessionUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTreatmentSessionRequest) (*dto.TreatmentSessionResponse, error) {
	session, err := u.sessionRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find treatment session %s: %+v", id, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrTreatmentSessionNotFound
	}

	if req.BodyLocation != "" {
		session.BodyLocation = req.BodyLocation
	}
	if req.Notes != nil {
		session.Notes = *req.Notes
	}
	if req.Status != "" {
		status := entity.TreatmentSessionStatus(req.Status)
		switch status {
		case entity.SessionStatusScheduled, entity.SessionStatusInProgress,
			entity.SessionStatusCompleted, entity.SessionStatusCancelled:
			session.Status = status
		default:
			return nil, ErrInvalidSessionStatus
		}
	}

	session.RefreshProgress(session.CompletedSessions, dateutil.Today())

	if err := u.sessionRepo.Update(ctx, u.db, session); err != nil {
		u.log.Warnf("Failed to update treatment session %s: %+v", id, err)
		return nil, err
	}

	if u.auditService != nil {
		_ = u.auditService.LogUpdate(ctx, u.db, entity.AuditActionSessionUpdate, "treatment_session", session.ID.String(), req, session)
	}

	return converter.TreatmentSessionToResponse(session), nil
}

// Delete removes a session plan, its records, and every attendance the
// planner generated for those records. Generated attendances are deleted
// explicitly because attendances are referenced, not owned.
func (u *treatmentSessionUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	session, err := u.sessionRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find treatment session %s: %+v", id, err)
		return err
	}
	if session == nil {
		return ErrTreatmentSessionNotFound
	}

	attendanceIDs := make([]uuid.UUID, 0, len(session.Records))
	for _, record := range session.Records {
		if record.AttendanceID != nil {
			attendanceIDs = append(attendanceIDs, *record.AttendanceID)
		}
	}

	if err := u.attendRepo.DeleteByIDs(ctx, u.db, attendanceIDs); err != nil {
		u.log.Warnf("Failed to delete generated attendances for session %s: %+v", id, err)
		return err
	}

	if err := u.sessionRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to delete treatment session %s: %+v", id, err)
		return err
	}

	if u.auditService != nil {
		_ = u.auditService.LogDelete(ctx, u.db, entity.AuditActionSessionDelete, "treatment_session", id.String(), session)
	}

	u.log.Infof("Treatment session deleted: id=%s, attendances_removed=%d, records_removed=%d",
		id, len(attendanceIDs), len(session.Records))
	return nil
}
