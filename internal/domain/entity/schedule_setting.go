package entity

import (
	"time"
)

// ScheduleSetting holds operating hours and concurrency ceilings for one
// day of the week (0=Sunday..6=Saturday). At most one active setting may
// exist per day; that invariant is enforced by the usecase, not the schema.
type ScheduleSetting struct {
	ID                     int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DayOfWeek              int       `gorm:"not null;index" json:"day_of_week"`
	StartTime              string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime                string    `gorm:"type:varchar(5);not null" json:"end_time"`
	MaxConcurrentSpiritual int       `gorm:"not null;default:1" json:"max_concurrent_spiritual"`
	MaxConcurrentLightBath int       `gorm:"not null;default:1" json:"max_concurrent_light_bath"`
	IsActive               bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ScheduleSetting) TableName() string {
	return "schedule_settings"
}

// CeilingFor returns the concurrency ceiling that applies to the given
// attendance type. Light-bath and rod share a single ceiling; there is no
// separate rod ceiling in the data model.
func (s *ScheduleSetting) CeilingFor(t AttendanceType) int {
	if t == AttendanceTypeSpiritual {
		return s.MaxConcurrentSpiritual
	}
	return s.MaxConcurrentLightBath
}

// CoversTime reports whether a wall-clock time falls inside the operating
// window. Times are zero-padded HH:MM strings, so lexicographic comparison
// is ordering-correct.
func (s *ScheduleSetting) CoversTime(hhmm string) bool {
	return hhmm >= s.StartTime && hhmm <= s.EndTime
}
