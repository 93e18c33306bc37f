package usecase

import (
	"context"
	"errors"
	"testing"

	"clinic-scheduling-backend/internal/delivery/dto"
	"clinic-scheduling-backend/internal/domain/entity"

	"github.com/google/uuid"
)

func newTreatmentRecordFixture() (*fakePatientRepo, *fakeAttendanceRepo, *fakeTreatmentRecordRepo, TreatmentRecordUsecase) {
	patientRepo := newFakePatientRepo()
	attendRepo := newFakeAttendanceRepo()
	recordRepo := newFakeTreatmentRecordRepo()
	uc := NewTreatmentRecordUsecase(nil, testLogger(), recordRepo, attendRepo, patientRepo, nil)
	return patientRepo, attendRepo, recordRepo, uc
}

func TestTreatmentRecordCreate(t *testing.T) {
	patientRepo, attendRepo, _, uc := newTreatmentRecordFixture()
	patient := patientRepo.add(&entity.Patient{Name: "Ana"})
	attendance := attendRepo.add(&entity.Attendance{
		PatientID:     patient.ID,
		Type:          entity.AttendanceTypeSpiritual,
		Status:        entity.AttendanceStatusCompleted,
		ScheduledDate: "2026-08-25",
		ScheduledTime: "10:00",
	})

	resp, err := uc.Create(context.Background(), &dto.CreateTreatmentRecordRequest{
		AttendanceID:       attendance.ID,
		PatientID:          patient.ID,
		Notes:              "retorno em duas semanas",
		LightBath:          true,
		SpiritualTreatment: true,
		ReturnInWeeks:      2,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !resp.LightBath || !resp.SpiritualTreatment || resp.Rod {
		t.Errorf("indication flags not preserved")
	}
	if resp.ReturnInWeeks != 2 {
		t.Errorf("return weeks = %d, want 2", resp.ReturnInWeeks)
	}

	// Second record for the same attendance is a conflict
	_, err = uc.Create(context.Background(), &dto.CreateTreatmentRecordRequest{
		AttendanceID:  attendance.ID,
		PatientID:     patient.ID,
		ReturnInWeeks: 1,
	})
	if !errors.Is(err, ErrTreatmentRecordExists) {
		t.Errorf("duplicate error = %v, want %v", err, ErrTreatmentRecordExists)
	}
}

func TestTreatmentRecordCreateValidation(t *testing.T) {
	patientRepo, attendRepo, _, uc := newTreatmentRecordFixture()
	patient := patientRepo.add(&entity.Patient{Name: "Ana"})
	attendance := attendRepo.add(&entity.Attendance{
		PatientID: patient.ID,
		Type:      entity.AttendanceTypeSpiritual,
		Status:    entity.AttendanceStatusCompleted,
	})

	tests := []struct {
		name    string
		req     dto.CreateTreatmentRecordRequest
		wantErr error
	}{
		{
			name:    "unknown patient",
			req:     dto.CreateTreatmentRecordRequest{AttendanceID: attendance.ID, PatientID: uuid.New(), ReturnInWeeks: 1},
			wantErr: ErrPatientNotFound,
		},
		{
			name:    "unknown attendance",
			req:     dto.CreateTreatmentRecordRequest{AttendanceID: uuid.New(), PatientID: patient.ID, ReturnInWeeks: 1},
			wantErr: ErrAttendanceNotFound,
		},
		{
			name:    "return weeks too low",
			req:     dto.CreateTreatmentRecordRequest{AttendanceID: attendance.ID, PatientID: patient.ID, ReturnInWeeks: 0},
			wantErr: ErrInvalidReturnWeeks,
		},
		{
			name:    "return weeks too high",
			req:     dto.CreateTreatmentRecordRequest{AttendanceID: attendance.ID, PatientID: patient.ID, ReturnInWeeks: 53},
			wantErr: ErrInvalidReturnWeeks,
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

func TestTreatmentRecordUpdate(t *testing.T) {
	patientRepo, attendRepo, recordRepo, uc := newTreatmentRecordFixture()
	patient := patientRepo.add(&entity.Patient{Name: "Ana"})
	attendance := attendRepo.add(&entity.Attendance{PatientID: patient.ID})
	record := recordRepo.add(&entity.TreatmentRecord{
		AttendanceID:  attendance.ID,
		PatientID:     patient.ID,
		ReturnInWeeks: 1,
	})

	rod := true
	weeks := 4
	resp, err := uc.Update(context.Background(), record.ID, &dto.UpdateTreatmentRecordRequest{
		Rod:           &rod,
		ReturnInWeeks: &weeks,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !resp.Rod || resp.ReturnInWeeks != 4 {
		t.Errorf("patch not applied: rod=%v weeks=%d", resp.Rod, resp.ReturnInWeeks)
	}

	badWeeks := 0
	if _, err := uc.Update(context.Background(), record.ID, &dto.UpdateTreatmentRecordRequest{
		ReturnInWeeks: &badWeeks,
	}); !errors.Is(err, ErrInvalidReturnWeeks) {
		t.Errorf("bad weeks error = %v, want %v", err, ErrInvalidReturnWeeks)
	}
}

func TestTreatmentRecordDelete(t *testing.T) {
	patientRepo, attendRepo, recordRepo, uc := newTreatmentRecordFixture()
	patient := patientRepo.add(&entity.Patient{Name: "Ana"})
	attendance := attendRepo.add(&entity.Attendance{PatientID: patient.ID})
	record := recordRepo.add(&entity.TreatmentRecord{
		AttendanceID:  attendance.ID,
		PatientID:     patient.ID,
		ReturnInWeeks: 1,
	})

	if err := uc.Delete(context.Background(), record.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := uc.Delete(context.Background(), record.ID); !errors.Is(err, ErrTreatmentRecordNotFound) {
		t.Errorf("second delete error = %v, want %v", err, ErrTreatmentRecordNotFound)
	}
}
