package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Action    string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Common audit actions
const (
	AuditActionPatientCreate      = "patient.create"
	AuditActionPatientUpdate      = "patient.update"
	AuditActionPatientDelete      = "patient.delete"
	AuditActionAttendanceCreate   = "attendance.create"
	AuditActionAttendanceUpdate   = "attendance.update"
	AuditActionAttendanceDelete   = "attendance.delete"
	AuditActionScheduleCreate     = "schedule_setting.create"
	AuditActionScheduleUpdate     = "schedule_setting.update"
	AuditActionScheduleDelete     = "schedule_setting.delete"
	AuditActionSessionCreate      = "treatment_session.create"
	AuditActionSessionUpdate      = "treatment_session.update"
	AuditActionSessionDelete      = "treatment_session.delete"
	AuditActionSessionComplete    = "treatment_session_record.complete"
	AuditActionSessionMiss        = "treatment_session_record.miss"
	AuditActionSessionReschedule  = "treatment_session_record.reschedule"
	AuditActionTreatmentRecCreate = "treatment_record.create"
	AuditActionTreatmentRecUpdate = "treatment_record.update"
	AuditActionTreatmentRecDelete = "treatment_record.delete"
)
