package repository

import (
	"context"

	"clinic-scheduling-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TreatmentSessionRepository interface {
	Create(ctx context.Context, db *gorm.DB, session *entity.TreatmentSession) error
	// FindByID loads the session with its records ordered by session number
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.TreatmentSession, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.TreatmentSession, error)
	Update(ctx context.Context, db *gorm.DB, session *entity.TreatmentSession) error
	// Delete removes the session and its child records
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
