package repository

import (
	"context"

	"clinic-scheduling-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TreatmentRecordRepository interface {
	Create(ctx context.Context, db *gorm.DB, record *entity.TreatmentRecord) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.TreatmentRecord, error)
	FindByAttendanceID(ctx context.Context, db *gorm.DB, attendanceID uuid.UUID) (*entity.TreatmentRecord, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.TreatmentRecord, error)
	Update(ctx context.Context, db *gorm.DB, record *entity.TreatmentRecord) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
