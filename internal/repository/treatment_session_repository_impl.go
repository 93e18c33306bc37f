package repository

import (
	"context"
	"errors"

	"clinic-scheduling-backend/internal/domain/entity"
	domainRepo "clinic-scheduling-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type treatmentSessionRepository struct{}

func NewTreatmentSessionRepository() domainRepo.TreatmentSessionRepository {
	return &treatmentSessionRepository{}
}

func (r *treatmentSessionRepository) Create(ctx context.Context, db *gorm.DB, session *entity.TreatmentSession) error {
	return db.WithContext(ctx).Create(session).Error
}

func (r *treatmentSessionRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.TreatmentSession, error) {
	var session entity.TreatmentSession
	err := db.WithContext(ctx).
		Preload("Records", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("session_number ASC")
		}).
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *treatmentSessionRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.TreatmentSession, error) {
	var sessions []entity.TreatmentSession
	err := db.WithContext(ctx).
		Preload("Records", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("session_number ASC")
		}).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *treatmentSessionRepository) Update(ctx context.Context, db *gorm.DB, session *entity.TreatmentSession) error {
	return db.WithContext(ctx).Save(session).Error
}

// Delete removes the session and its child records in one transaction. The
// schema also cascades, the explicit delete keeps behavior identical on
// stores without FK enforcement.
func (r *treatmentSessionRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.TreatmentSessionRecord{}, "treatment_session_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.TreatmentSession{}, "id = ?", id).Error
	})
}
