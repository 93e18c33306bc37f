package repository

import (
	"context"

	"clinic-scheduling-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TreatmentSessionRecordRepository interface {
	CreateBatch(ctx context.Context, db *gorm.DB, records []*entity.TreatmentSessionRecord) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.TreatmentSessionRecord, error)
	Update(ctx context.Context, db *gorm.DB, record *entity.TreatmentSessionRecord) error
	CountCompletedBySession(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (int64, error)
	// FindUpcomingByPatient returns SCHEDULED records of the patient's
	// sessions with from <= scheduled_date <= to, ascending by date.
	FindUpcomingByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID, from, to string) ([]entity.TreatmentSessionRecord, error)
}
