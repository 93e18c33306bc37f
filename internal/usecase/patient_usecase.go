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
	ErrPatientNotFound        = errors.New("patient not found")
	ErrInvalidTreatmentStatus = errors.New("invalid treatment status")
)

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	List(ctx context.Context, treatmentStatus string) (*dto.PatientListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	priority := entity.PatientPriority(req.Priority)
	if req.Priority == "" {
		priority = entity.PriorityNormal
	}

	patient := &entity.Patient{
		Name:            req.Name,
		Phone:           req.Phone,
		Priority:        priority,
		TreatmentStatus: entity.TreatmentStatusNew,
	}

	if err := u.patientRepo.Create(ctx, u.db, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if u.auditService != nil {
		_ = u.auditService.LogCreate(ctx, u.db, entity.AuditActionPatientCreate, "patient", patient.ID.String(), patient)
	}

	u.log.Infof("Patient created: id=%s", patient.ID)
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) List(ctx context.Context, treatmentStatus string) (*dto.PatientListResponse, error) {
	var (
		patients []entity.Patient
		err      error
	)

	if treatmentStatus != "" {
		status := entity.TreatmentStatus(treatmentStatus)
		if !entity.IsValidTreatmentStatus(status) {
			return nil, ErrInvalidTreatmentStatus
		}
		patients, err = u.patientRepo.FindByTreatmentStatus(ctx, u.db, status)
	} else {
		patients, err = u.patientRepo.FindAll(ctx, u.db)
	}
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.Name != "" {
		patient.Name = req.Name
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Priority != "" {
		patient.Priority = entity.PatientPriority(req.Priority)
	}
	if req.TreatmentStatus != "" {
		status := entity.TreatmentStatus(req.TreatmentStatus)
		if !entity.IsValidTreatmentStatus(status) {
			return nil, ErrInvalidTreatmentStatus
		}
		patient.TreatmentStatus = status
	}

	if err := u.patientRepo.Update(ctx, u.db, patient); err != nil {
		u.log.Warnf("Failed to update patient %s: %+v", id, err)
		return nil, err
	}

	if u.auditService != nil {
		_ = u.auditService.LogUpdate(ctx, u.db, entity.AuditActionPatientUpdate, "patient", patient.ID.String(), req, patient)
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	patient, err := u.patientRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	if err := u.patientRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to delete patient %s: %+v", id, err)
		return err
	}

	if u.auditService != nil {
		_ = u.auditService.LogDelete(ctx, u.db, entity.AuditActionPatientDelete, "patient", id.String(), patient)
	}

	return nil
}
