package usecase

import (
	"context"
	"errors"
	"testing"

	"clinic-scheduling-backend/internal/delivery/dto"
	"clinic-scheduling-backend/internal/domain/entity"
	"clinic-scheduling-backend/internal/service"

	"github.com/google/uuid"
)

// 2026-09-01 is a Tuesday (day of week 2).
const testTuesday = "2026-09-01"

func newAttendanceFixture() (*fakePatientRepo, *fakeAttendanceRepo, *fakeScheduleSettingRepo, *fakeSlotReserver, AttendanceUsecase) {
	patientRepo := newFakePatientRepo()
	attendRepo := newFakeAttendanceRepo()
	settingRepo := newFakeScheduleSettingRepo()
	slots := &fakeSlotReserver{}
	uc := NewAttendanceUsecase(nil, testLogger(), attendRepo, patientRepo, settingRepo, slots, nil)
	return patientRepo, attendRepo, settingRepo, slots, uc
}

func activeTuesdaySetting(spiritual, lightBath int) *entity.ScheduleSetting {
	return &entity.ScheduleSetting{
		DayOfWeek:              2,
		StartTime:              "08:00",
		EndTime:                "22:00",
		MaxConcurrentSpiritual: spiritual,
		MaxConcurrentLightBath: lightBath,
		IsActive:               true,
	}
}

func TestAttendanceCreate(t *testing.T) {
	patientRepo, _, settingRepo, _, uc := newAttendanceFixture()
	patient := patientRepo.add(&entity.Patient{Name: "Maria"})
	settingRepo.add(activeTuesdaySetting(2, 1))

	resp, err := uc.Create(context.Background(), &dto.CreateAttendanceRequest{
		PatientID:     patient.ID,
		Type:          "spiritual",
		ScheduledDate: testTuesday,
		ScheduledTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.Status != string(entity.AttendanceStatusScheduled) {
		t.Errorf("status = %s, want scheduled", resp.Status)
	}
	if resp.ScheduledDate != testTuesday || resp.ScheduledTime != "10:00" {
		t.Errorf("slot = %s %s, want %s 10:00", resp.ScheduledDate, resp.ScheduledTime, testTuesday)
	}
}

func TestAttendanceCreateValidation(t *testing.T) {
	patientRepo, attendRepo, settingRepo, _, uc := newAttendanceFixture()
	patient := patientRepo.add(&entity.Patient{Name: "Maria"})
	settingRepo.add(activeTuesdaySetting(1, 1))

	// Fill the single spiritual slot on Tuesday at 10:00
	attendRepo.add(&entity.Attendance{
		PatientID:     patient.ID,
		Type:          entity.AttendanceTypeSpiritual,
		Status:        entity.AttendanceStatusScheduled,
		ScheduledDate: testTuesday,
		ScheduledTime: "10:00",
	})

	tests := []struct {
		name    string
		req     dto.CreateAttendanceRequest
		wantErr error
	}{
		{
			name: "unknown patient",
			req: dto.CreateAttendanceRequest{
				PatientID: uuid.New(), Type: "spiritual",
				ScheduledDate: testTuesday, ScheduledTime: "10:00",
			},
			wantErr: ErrPatientNotFound,
		},
		{
			name: "bad date format",
			req: dto.CreateAttendanceRequest{
				PatientID: patient.ID, Type: "spiritual",
				ScheduledDate: "01/09/2026", ScheduledTime: "10:00",
			},
			wantErr: ErrInvalidDateFormat,
		},
		{
			name: "bad time format",
			req: dto.CreateAttendanceRequest{
				PatientID: patient.ID, Type: "spiritual",
				ScheduledDate: testTuesday, ScheduledTime: "9h30",
			},
			wantErr: ErrInvalidTimeFormat,
		},
		{
			name: "no schedule for wednesday",
			req: dto.CreateAttendanceRequest{
				PatientID: patient.ID, Type: "spiritual",
				ScheduledDate: "2026-09-02", ScheduledTime: "10:00",
			},
			wantErr: ErrNoScheduleConfigured,
		},
		{
			name: "before opening",
			req: dto.CreateAttendanceRequest{
				PatientID: patient.ID, Type: "spiritual",
				ScheduledDate: testTuesday, ScheduledTime: "07:00",
			},
			wantErr: ErrOutsideOperatingHours,
		},
		{
			name: "after closing",
			req: dto.CreateAttendanceRequest{
				PatientID: patient.ID, Type: "spiritual",
				ScheduledDate: testTuesday, ScheduledTime: "23:00",
			},
			wantErr: ErrOutsideOperatingHours,
		},
		{
			name: "slot at capacity",
			req: dto.CreateAttendanceRequest{
				PatientID: patient.ID, Type: "spiritual",
				ScheduledDate: testTuesday, ScheduledTime: "10:00",
			},
			wantErr: ErrCapacityExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAttendanceCreateCapacityPerType(t *testing.T) {
	patientRepo, attendRepo, settingRepo, _, uc := newAttendanceFixture()
	patient := patientRepo.add(&entity.Patient{Name: "Maria"})
	settingRepo.add(activeTuesdaySetting(1, 1))

	// The spiritual slot is full; the light bath ceiling is independent
	attendRepo.add(&entity.Attendance{
		PatientID:     patient.ID,
		Type:          entity.AttendanceTypeSpiritual,
		Status:        entity.AttendanceStatusScheduled,
		ScheduledDate: testTuesday,
		ScheduledTime: "10:00",
	})

	_, err := uc.Create(context.Background(), &dto.CreateAttendanceRequest{
		PatientID: patient.ID, Type: "light_bath",
		ScheduledDate: testTuesday, ScheduledTime: "10:00",
	})
	if err != nil {
		t.Fatalf("light bath admission should not be blocked by the spiritual ceiling: %v", err)
	}
}

func TestAttendanceCreateSlotReservation(t *testing.T) {
	t.Run("full slot maps to capacity exceeded", func(t *testing.T) {
		patientRepo, _, settingRepo, slots, uc := newAttendanceFixture()
		patient := patientRepo.add(&entity.Patient{Name: "Maria"})
		settingRepo.add(activeTuesdaySetting(2, 2))
		slots.reserveErr = service.ErrSlotFull

		_, err := uc.Create(context.Background(), &dto.CreateAttendanceRequest{
			PatientID: patient.ID, Type: "spiritual",
			ScheduledDate: testTuesday, ScheduledTime: "10:00",
		})
		if !errors.Is(err, ErrCapacityExceeded) {
			t.Errorf("Create error = %v, want %v", err, ErrCapacityExceeded)
		}
	})

	t.Run("redis outage degrades to db check", func(t *testing.T) {
		patientRepo, _, settingRepo, slots, uc := newAttendanceFixture()
		patient := patientRepo.add(&entity.Patient{Name: "Maria"})
		settingRepo.add(activeTuesdaySetting(2, 2))
		slots.reserveErr = errors.New("connection refused")

		_, err := uc.Create(context.Background(), &dto.CreateAttendanceRequest{
			PatientID: patient.ID, Type: "spiritual",
			ScheduledDate: testTuesday, ScheduledTime: "10:00",
		})
		if err != nil {
			t.Errorf("Create should proceed on reservation outage, got %v", err)
		}
	})

	t.Run("insert failure releases the slot", func(t *testing.T) {
		patientRepo, attendRepo, settingRepo, slots, uc := newAttendanceFixture()
		patient := patientRepo.add(&entity.Patient{Name: "Maria"})
		settingRepo.add(activeTuesdaySetting(2, 2))
		attendRepo.createErr = errors.New("insert failed")

		_, err := uc.Create(context.Background(), &dto.CreateAttendanceRequest{
			PatientID: patient.ID, Type: "spiritual",
			ScheduledDate: testTuesday, ScheduledTime: "10:00",
		})
		if err == nil {
			t.Fatal("Create should propagate the insert failure")
		}
		if slots.releaseCalls != 1 {
			t.Errorf("releaseCalls = %d, want 1", slots.releaseCalls)
		}
	})
}

func TestAttendanceStatusTransitions(t *testing.T) {
	tests := []struct {
		from  entity.AttendanceStatus
		to    entity.AttendanceStatus
		valid bool
	}{
		{entity.AttendanceStatusScheduled, entity.AttendanceStatusCheckedIn, true},
		{entity.AttendanceStatusScheduled, entity.AttendanceStatusCancelled, true},
		{entity.AttendanceStatusScheduled, entity.AttendanceStatusInProgress, false},
		{entity.AttendanceStatusScheduled, entity.AttendanceStatusCompleted, false},
		{entity.AttendanceStatusCheckedIn, entity.AttendanceStatusInProgress, true},
		{entity.AttendanceStatusCheckedIn, entity.AttendanceStatusCancelled, false},
		{entity.AttendanceStatusCheckedIn, entity.AttendanceStatusCompleted, false},
		{entity.AttendanceStatusInProgress, entity.AttendanceStatusCompleted, true},
		{entity.AttendanceStatusInProgress, entity.AttendanceStatusCancelled, false},
		{entity.AttendanceStatusCompleted, entity.AttendanceStatusScheduled, false},
		{entity.AttendanceStatusCancelled, entity.AttendanceStatusScheduled, false},
	}

	for _, tt := range tests {
		name := string(tt.from) + "_to_" + string(tt.to)
		t.Run(name, func(t *testing.T) {
			patientRepo, attendRepo, _, _, uc := newAttendanceFixture()
			patient := patientRepo.add(&entity.Patient{Name: "Maria"})
			attendance := attendRepo.add(&entity.Attendance{
				PatientID:     patient.ID,
				Type:          entity.AttendanceTypeSpiritual,
				Status:        tt.from,
				ScheduledDate: testTuesday,
				ScheduledTime: "10:00",
			})

			_, err := uc.Update(context.Background(), attendance.ID, &dto.UpdateAttendanceRequest{
				Status: string(tt.to),
			})
			if tt.valid && err != nil {
				t.Errorf("transition should be allowed, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidStatusTransition) {
				t.Errorf("transition error = %v, want %v", err, ErrInvalidStatusTransition)
			}
		})
	}
}

func TestAttendanceCancelReleasesSlot(t *testing.T) {
	patientRepo, attendRepo, _, slots, uc := newAttendanceFixture()
	patient := patientRepo.add(&entity.Patient{Name: "Maria"})
	attendance := attendRepo.add(&entity.Attendance{
		PatientID:     patient.ID,
		Type:          entity.AttendanceTypeSpiritual,
		Status:        entity.AttendanceStatusScheduled,
		ScheduledDate: testTuesday,
		ScheduledTime: "10:00",
	})

	_, err := uc.Update(context.Background(), attendance.ID, &dto.UpdateAttendanceRequest{
		Status: string(entity.AttendanceStatusCancelled),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if slots.releaseCalls != 1 {
		t.Errorf("releaseCalls = %d, want 1", slots.releaseCalls)
	}
}

func TestAttendanceDelete(t *testing.T) {
	patientRepo, attendRepo, _, slots, uc := newAttendanceFixture()
	patient := patientRepo.add(&entity.Patient{Name: "Maria"})
	attendance := attendRepo.add(&entity.Attendance{
		PatientID:     patient.ID,
		Type:          entity.AttendanceTypeLightBath,
		Status:        entity.AttendanceStatusScheduled,
		ScheduledDate: testTuesday,
		ScheduledTime: "10:00",
	})

	if err := uc.Delete(context.Background(), attendance.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if slots.releaseCalls != 1 {
		t.Errorf("releaseCalls = %d, want 1", slots.releaseCalls)
	}
	if err := uc.Delete(context.Background(), attendance.ID); !errors.Is(err, ErrAttendanceNotFound) {
		t.Errorf("second delete error = %v, want %v", err, ErrAttendanceNotFound)
	}
}
