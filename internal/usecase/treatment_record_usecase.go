package usecase

import (
	"context"
	"errors"

	"clinic-scheduling-backend/internal/converter"
	"clinic-scheduling-backend/internal/delivery/dto"
	"clinic-scheduling-backend/internal/domain/entity"
	"clinic-scheduling-backend/internal/domain/repository"
	"clinic-scheduling-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrTreatmentRecordNotFound = errors.New("treatment record not found")
	ErrTreatmentRecordExists   = errors.New("a treatment record already exists for this attendance")
	ErrInvalidReturnWeeks      = errors.New("return in weeks must be between 1 and 52")
)

type TreatmentRecordUsecase interface {
	Create(ctx context.Context, req *dto.CreateTreatmentRecordRequest) (*dto.TreatmentRecordResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.TreatmentRecordResponse, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.TreatmentRecordListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTreatmentRecordRequest) (*dto.TreatmentRecordResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type treatmentRecordUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	recordRepo   repository.TreatmentRecordRepository
	attendRepo   repository.AttendanceRepository
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewTreatmentRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.TreatmentRecordRepository,
	attendRepo repository.AttendanceRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) TreatmentRecordUsecase {
	return &treatmentRecordUsecase{
		db:           db,
		log:          log,
		recordRepo:   recordRepo,
		attendRepo:   attendRepo,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *treatmentRecordUsecase) Create(ctx context.Context, req *dto.CreateTreatmentRecordRequest) (*dto.TreatmentRecordResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	attendance, err := u.attendRepo.FindByID(ctx, u.db, req.AttendanceID)
	if err != nil {
		u.log.Warnf("Failed to find attendance %s: %+v", req.AttendanceID, err)
		return nil, err
	}
	if attendance == nil {
		return nil, ErrAttendanceNotFound
	}

	// One clinical note per attendance
	existing, err := u.recordRepo.FindByAttendanceID(ctx, u.db, req.AttendanceID)
	if err != nil {
		u.log.Warnf("Failed to check existing treatment record: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrTreatmentRecordExists
	}

	if req.ReturnInWeeks < 1 || req.ReturnInWeeks > 52 {
		return nil, ErrInvalidReturnWeeks
	}

	record := &entity.TreatmentRecord{
		AttendanceID:       req.AttendanceID,
		PatientID:          req.PatientID,
		Notes:              req.Notes,
		LightBath:          req.LightBath,
		Rod:                req.Rod,
		SpiritualTreatment: req.SpiritualTreatment,
		ReturnInWeeks:      req.ReturnInWeeks,
	}

	if err := u.recordRepo.Create(ctx, u.db, record); err != nil {
		u.log.Warnf("Failed to create treatment record: %+v", err)
		return nil, err
	}

	if u.auditService != nil {
		_ = u.auditService.LogCreate(ctx, u.db, entity.AuditActionTreatmentRecCreate, "treatment_record", record.ID.String(), record)
	}

	u.log.Infof("Treatment record created: id=%s, attendance=%s", record.ID, record.AttendanceID)
	return converter.TreatmentRecordToResponse(record), nil
}

func (u *treatmentRecordUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.TreatmentRecordResponse, error) {
	record, err := u.recordRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find treatment record %s: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrTreatmentRecordNotFound
	}

	return converter.TreatmentRecordToResponse(record), nil
}

func (u *treatmentRecordUsecase) ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.TreatmentRecordListResponse, error) {
	records, err := u.recordRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find treatment records for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.TreatmentRecordListResponse{
		Records: converter.TreatmentRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

func (u *treatmentRecordUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTreatmentRecordRequest) (*dto.TreatmentRecordResponse, error) {
	record, err := u.recordRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find treatment record %s: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrTreatmentRecordNotFound
	}

	if req.Notes != nil {
		record.Notes = *req.Notes
	}
	if req.LightBath != nil {
		record.LightBath = *req.LightBath
	}
	if req.Rod != nil {
		record.Rod = *req.Rod
	}
	if req.SpiritualTreatment != nil {
		record.SpiritualTreatment = *req.SpiritualTreatment
	}
	if req.ReturnInWeeks != nil {
		if *req.ReturnInWeeks < 1 || *req.ReturnInWeeks > 52 {
			return nil, ErrInvalidReturnWeeks
		}
		record.ReturnInWeeks = *req.ReturnInWeeks
	}

	if err := u.recordRepo.Update(ctx, u.db, record); err != nil {
		u.log.Warnf("Failed to update treatment record %s: %+v", id, err)
		return nil, err
	}

	if u.auditService != nil {
		_ = u.auditService.LogUpdate(ctx, u.db, entity.AuditActionTreatmentRecUpdate, "treatment_record", record.ID.String(), req, record)
	}

	return converter.TreatmentRecordToResponse(record), nil
}

func (u *treatmentRecordUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := u.recordRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find treatment record %s: %+v", id, err)
		return err
	}
	if record == nil {
		return ErrTreatmentRecordNotFound
	}

	if err := u.recordRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to delete treatment record %s: %+v", id, err)
		return err
	}

	if u.auditService != nil {
		_ = u.auditService.LogDelete(ctx, u.db, entity.AuditActionTreatmentRecDelete, "treatment_record", id.String(), record)
	}

	return nil
}
