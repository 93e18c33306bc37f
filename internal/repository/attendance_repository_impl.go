package repository

import (
	"context"
	"errors"

	"clinic-scheduling-backend/internal/domain/entity"
	domainRepo "clinic-scheduling-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type attendanceRepository struct{}

func NewAttendanceRepository() domainRepo.AttendanceRepository {
	return &attendanceRepository{}
}

func (r *attendanceRepository) Create(ctx context.Context, db *gorm.DB, attendance *entity.Attendance) error {
	return db.WithContext(ctx).Create(attendance).Error
}

func (r *attendanceRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Attendance, error) {
	var attendance entity.Attendance
	err := db.WithContext(ctx).Where("id = ?", id).First(&attendance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Attendance, error) {
	var attendances []entity.Attendance
	err := db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("scheduled_date ASC, scheduled_time ASC").
		Find(&attendances).Error
	if err != nil {
		return nil, err
	}
	return attendances, nil
}

func (r *attendanceRepository) FindByDate(ctx context.Context, db *gorm.DB, date string) ([]entity.Attendance, error) {
	var attendances []entity.Attendance
	err := db.WithContext(ctx).
		Where("scheduled_date = ?", date).
		Order("scheduled_time ASC").
		Find(&attendances).Error
	if err != nil {
		return nil, err
	}
	return attendances, nil
}

func (r *attendanceRepository) CountScheduledAt(ctx context.Context, db *gorm.DB, date, timeStr string, typ entity.AttendanceType) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Attendance{}).
		Where("scheduled_date = ? AND scheduled_time = ? AND type = ? AND status = ?",
			date, timeStr, typ, entity.AttendanceStatusScheduled).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *attendanceRepository) FindScheduledSlotCounts(ctx context.Context, db *gorm.DB, fromDate string) ([]domainRepo.SlotCount, error) {
	var counts []domainRepo.SlotCount
	err := db.WithContext(ctx).Model(&entity.Attendance{}).
		Select("scheduled_date, scheduled_time, type, COUNT(*) as count").
		Where("status = ? AND scheduled_date >= ?", entity.AttendanceStatusScheduled, fromDate).
		Group("scheduled_date, scheduled_time, type").
		Order("scheduled_date").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *attendanceRepository) Update(ctx context.Context, db *gorm.DB, attendance *entity.Attendance) error {
	return db.WithContext(ctx).Save(attendance).Error
}

func (r *attendanceRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Delete(&entity.Attendance{}, "id = ?", id).Error
}

func (r *attendanceRepository) DeleteByIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).Delete(&entity.Attendance{}, "id IN ?", ids).Error
}
