package repository

import (
	"context"

	"clinic-scheduling-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlotCount is the number of SCHEDULED attendances occupying one
// date+time+type slot. Used to rebuild the Redis counters from the database.
type SlotCount struct {
	ScheduledDate string
	ScheduledTime string
	Type          entity.AttendanceType
	Count         int64
}

type AttendanceRepository interface {
	Create(ctx context.Context, db *gorm.DB, attendance *entity.Attendance) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Attendance, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Attendance, error)
	FindByDate(ctx context.Context, db *gorm.DB, date string) ([]entity.Attendance, error)
	CountScheduledAt(ctx context.Context, db *gorm.DB, date, timeStr string, typ entity.AttendanceType) (int64, error)
	FindScheduledSlotCounts(ctx context.Context, db *gorm.DB, fromDate string) ([]SlotCount, error)
	Update(ctx context.Context, db *gorm.DB, attendance *entity.Attendance) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
	DeleteByIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) error
}
