package repository

import (
	"context"
	"errors"

	"clinic-scheduling-backend/internal/domain/entity"
	domainRepo "clinic-scheduling-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type treatmentSessionRecordRepository struct{}

func NewTreatmentSessionRecordRepository() domainRepo.TreatmentSessionRecordRepository {
	return &treatmentSessionRecordRepository{}
}

func (r *treatmentSessionRecordRepository) CreateBatch(ctx context.Context, db *gorm.DB, records []*entity.TreatmentSessionRecord) error {
	if len(records) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(records).Error
}

func (r *treatmentSessionRecordRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.TreatmentSessionRecord, error) {
	var record entity.TreatmentSessionRecord
	err := db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *treatmentSessionRecordRepository) Update(ctx context.Context, db *gorm.DB, record *entity.TreatmentSessionRecord) error {
	return db.WithContext(ctx).Save(record).Error
}

func (r *treatmentSessionRecordRepository) CountCompletedBySession(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.TreatmentSessionRecord{}).
		Where("treatment_session_id = ? AND status = ?", sessionID, entity.SessionRecordStatusCompleted).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *treatmentSessionRecordRepository) FindUpcomingByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID, from, to string) ([]entity.TreatmentSessionRecord, error) {
	var records []entity.TreatmentSessionRecord
	err := db.WithContext(ctx).Model(&entity.TreatmentSessionRecord{}).
		Joins("JOIN treatment_sessions ON treatment_sessions.id = treatment_session_records.treatment_session_id").
		Where("treatment_sessions.patient_id = ?", patientID).
		Where("treatment_session_records.status = ?", entity.SessionRecordStatusScheduled).
		Where("treatment_session_records.scheduled_date BETWEEN ? AND ?", from, to).
		Order("treatment_session_records.scheduled_date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
