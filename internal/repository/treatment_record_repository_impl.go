package repository

import (
	"context"
	"errors"

	"clinic-scheduling-backend/internal/domain/entity"
	domainRepo "clinic-scheduling-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type treatmentRecordRepository struct{}

func NewTreatmentRecordRepository() domainRepo.TreatmentRecordRepository {
	return &treatmentRecordRepository{}
}

func (r *treatmentRecordRepository) Create(ctx context.Context, db *gorm.DB, record *entity.TreatmentRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *treatmentRecordRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.TreatmentRecord, error) {
	var record entity.TreatmentRecord
	err := db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *treatmentRecordRepository) FindByAttendanceID(ctx context.Context, db *gorm.DB, attendanceID uuid.UUID) (*entity.TreatmentRecord, error) {
	var record entity.TreatmentRecord
	err := db.WithContext(ctx).Where("attendance_id = ?", attendanceID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *treatmentRecordRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.TreatmentRecord, error) {
	var records []entity.TreatmentRecord
	err := db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *treatmentRecordRepository) Update(ctx context.Context, db *gorm.DB, record *entity.TreatmentRecord) error {
	return db.WithContext(ctx).Save(record).Error
}

func (r *treatmentRecordRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Delete(&entity.TreatmentRecord{}, "id = ?", id).Error
}
