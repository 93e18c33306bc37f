package usecase

import (
	"context"
	"errors"
	"testing"

	"clinic-scheduling-backend/internal/delivery/dto"
	"clinic-scheduling-backend/internal/domain/entity"
	"clinic-scheduling-backend/pkg/dateutil"

	"github.com/google/uuid"
)

type recordFixture struct {
	sessionRepo *fakeTreatmentSessionRepo
	recordRepo  *fakeSessionRecordRepo
	attendRepo  *fakeAttendanceRepo
	uc          TreatmentSessionRecordUsecase

	session *entity.TreatmentSession
	records []*entity.TreatmentSessionRecord
}

// newRecordFixture seeds a 3-session plan with records on consecutive
// Tuesdays starting 2026-09-01.
func newRecordFixture(t *testing.T) *recordFixture {
	t.Helper()

	f := &recordFixture{
		recordRepo: newFakeSessionRecordRepo(),
		attendRepo: newFakeAttendanceRepo(),
	}
	f.sessionRepo = newFakeTreatmentSessionRepo(f.recordRepo)
	f.uc = NewTreatmentSessionRecordUsecase(nil, testLogger(), f.recordRepo, f.sessionRepo, f.attendRepo, nil)

	f.session = &entity.TreatmentSession{
		ID:              uuid.New(),
		PatientID:       uuid.New(),
		TreatmentType:   entity.TreatmentTypeRod,
		BodyLocation:    "ombro",
		StartDate:       "2026-09-01",
		PlannedSessions: 3,
		Status:          entity.SessionStatusScheduled,
	}
	if err := f.sessionRepo.Create(context.Background(), nil, f.session); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	dates := []string{"2026-09-01", "2026-09-08", "2026-09-15"}
	for i, date := range dates {
		f.records = append(f.records, &entity.TreatmentSessionRecord{
			TreatmentSessionID: f.session.ID,
			SessionNumber:      i + 1,
			ScheduledDate:      date,
			Status:             entity.SessionRecordStatusScheduled,
		})
	}
	if err := f.recordRepo.CreateBatch(context.Background(), nil, f.records); err != nil {
		t.Fatalf("seed records: %v", err)
	}

	return f
}

func (f *recordFixture) reloadSession(t *testing.T) *entity.TreatmentSession {
	t.Helper()
	session, err := f.sessionRepo.FindByID(context.Background(), nil, f.session.ID)
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	return session
}

func TestSessionRecordCompleteAdvancesCounter(t *testing.T) {
	f := newRecordFixture(t)

	resp, err := f.uc.Complete(context.Background(), f.records[0].ID, &dto.CompleteSessionRecordRequest{})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Status != string(entity.SessionRecordStatusCompleted) {
		t.Errorf("record status = %s, want completed", resp.Status)
	}
	if resp.StartTime == nil || resp.EndTime == nil {
		t.Errorf("completion must stamp start and end times")
	}

	session := f.reloadSession(t)
	if session.CompletedSessions != 1 {
		t.Errorf("completed = %d, want 1", session.CompletedSessions)
	}
	if session.Status != entity.SessionStatusInProgress {
		t.Errorf("plan status = %s, want in_progress", session.Status)
	}

	// Completing the same record twice must not double-count
	if _, err := f.uc.Complete(context.Background(), f.records[0].ID, &dto.CompleteSessionRecordRequest{}); !errors.Is(err, ErrSessionRecordCompleted) {
		t.Errorf("re-complete error = %v, want %v", err, ErrSessionRecordCompleted)
	}
	if session := f.reloadSession(t); session.CompletedSessions != 1 {
		t.Errorf("completed after re-complete = %d, want 1", session.CompletedSessions)
	}
}

func TestSessionRecordCompletingAllFinishesPlan(t *testing.T) {
	f := newRecordFixture(t)

	for _, rec := range f.records {
		if _, err := f.uc.Complete(context.Background(), rec.ID, &dto.CompleteSessionRecordRequest{}); err != nil {
			t.Fatalf("Complete %d failed: %v", rec.SessionNumber, err)
		}
	}

	session := f.reloadSession(t)
	if session.CompletedSessions != 3 {
		t.Errorf("completed = %d, want 3", session.CompletedSessions)
	}
	if session.Status != entity.SessionStatusCompleted {
		t.Errorf("plan status = %s, want completed", session.Status)
	}
	if session.EndDate == nil || *session.EndDate != dateutil.Today() {
		t.Errorf("end date should be stamped with the completion day")
	}
}

func TestSessionRecordCompleteLinksAttendance(t *testing.T) {
	f := newRecordFixture(t)
	attendance := f.attendRepo.add(&entity.Attendance{
		PatientID:     f.session.PatientID,
		Type:          entity.AttendanceTypeRod,
		Status:        entity.AttendanceStatusCompleted,
		ScheduledDate: "2026-09-08",
		ScheduledTime: "19:30",
	})
	notes := "paciente respondeu bem"

	resp, err := f.uc.Complete(context.Background(), f.records[1].ID, &dto.CompleteSessionRecordRequest{
		AttendanceID: &attendance.ID,
		Notes:        &notes,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.AttendanceID == nil || *resp.AttendanceID != attendance.ID {
		t.Errorf("attendance link not recorded")
	}
	if resp.Notes != notes {
		t.Errorf("notes = %q, want %q", resp.Notes, notes)
	}
}

func TestSessionRecordCompleteUnknownAttendance(t *testing.T) {
	f := newRecordFixture(t)
	unknown := uuid.New()

	_, err := f.uc.Complete(context.Background(), f.records[1].ID, &dto.CompleteSessionRecordRequest{
		AttendanceID: &unknown,
	})
	if !errors.Is(err, ErrAttendanceNotFound) {
		t.Fatalf("unknown attendance error = %v, want %v", err, ErrAttendanceNotFound)
	}

	// The rejection must leave the record and the plan untouched
	record, findErr := f.recordRepo.FindByID(context.Background(), nil, f.records[1].ID)
	if findErr != nil {
		t.Fatalf("reload record: %v", findErr)
	}
	if record.Status != entity.SessionRecordStatusScheduled {
		t.Errorf("record status = %s, want scheduled", record.Status)
	}
	if record.AttendanceID != nil {
		t.Errorf("record must not link a nonexistent attendance")
	}
	if session := f.reloadSession(t); session.CompletedSessions != 0 {
		t.Errorf("completed = %d, want 0", session.CompletedSessions)
	}
}

func TestSessionRecordMiss(t *testing.T) {
	f := newRecordFixture(t)

	resp, err := f.uc.MarkMissed(context.Background(), f.records[0].ID, &dto.MissSessionRecordRequest{
		Reason: "paciente não compareceu",
	})
	if err != nil {
		t.Fatalf("MarkMissed failed: %v", err)
	}
	if resp.Status != string(entity.SessionRecordStatusMissed) {
		t.Errorf("record status = %s, want missed", resp.Status)
	}
	if resp.MissedReason == nil || *resp.MissedReason != "paciente não compareceu" {
		t.Errorf("missed reason not recorded")
	}

	// A miss never advances the plan counter
	if session := f.reloadSession(t); session.CompletedSessions != 0 {
		t.Errorf("completed = %d, want 0", session.CompletedSessions)
	}

	// A completed record cannot be missed afterwards
	if _, err := f.uc.Complete(context.Background(), f.records[1].ID, &dto.CompleteSessionRecordRequest{}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if _, err := f.uc.MarkMissed(context.Background(), f.records[1].ID, &dto.MissSessionRecordRequest{Reason: "x"}); !errors.Is(err, ErrSessionRecordCompleted) {
		t.Errorf("miss-after-complete error = %v, want %v", err, ErrSessionRecordCompleted)
	}
}

func TestSessionRecordReschedule(t *testing.T) {
	f := newRecordFixture(t)

	// A missed record can be rescheduled; it resets to SCHEDULED and the
	// missed reason is cleared
	if _, err := f.uc.MarkMissed(context.Background(), f.records[0].ID, &dto.MissSessionRecordRequest{Reason: "chuva"}); err != nil {
		t.Fatalf("MarkMissed failed: %v", err)
	}

	resp, err := f.uc.Reschedule(context.Background(), f.records[0].ID, &dto.RescheduleSessionRecordRequest{
		NewDate: "2026-09-22",
	})
	if err != nil {
		t.Fatalf("Reschedule failed: %v", err)
	}
	if resp.ScheduledDate != "2026-09-22" {
		t.Errorf("date = %s, want 2026-09-22", resp.ScheduledDate)
	}
	if resp.Status != string(entity.SessionRecordStatusScheduled) {
		t.Errorf("record status = %s, want scheduled", resp.Status)
	}
	if resp.MissedReason != nil {
		t.Errorf("missed reason should be cleared")
	}

	// Bad date is rejected
	if _, err := f.uc.Reschedule(context.Background(), f.records[1].ID, &dto.RescheduleSessionRecordRequest{
		NewDate: "22/09/2026",
	}); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("bad date error = %v, want %v", err, ErrInvalidDateFormat)
	}

	// Completed records are history and cannot be moved
	if _, err := f.uc.Complete(context.Background(), f.records[2].ID, &dto.CompleteSessionRecordRequest{}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if _, err := f.uc.Reschedule(context.Background(), f.records[2].ID, &dto.RescheduleSessionRecordRequest{
		NewDate: "2026-09-29",
	}); !errors.Is(err, ErrSessionRecordCompleted) {
		t.Errorf("reschedule-after-complete error = %v, want %v", err, ErrSessionRecordCompleted)
	}
}

func TestSessionRecordUpcoming(t *testing.T) {
	f := newRecordFixture(t)

	// Move the records around today's date so the window is meaningful
	today := dateutil.Today()
	inThree, _ := dateutil.AddDays(today, 3)
	inTen, _ := dateutil.AddDays(today, 10)
	f.records[0].ScheduledDate = inThree
	f.records[1].ScheduledDate = inTen
	yesterday, _ := dateutil.AddDays(today, -1)
	f.records[2].ScheduledDate = yesterday

	resp, err := f.uc.UpcomingForPatient(context.Background(), f.session.PatientID, 7)
	if err != nil {
		t.Fatalf("UpcomingForPatient failed: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("total = %d, want 1 (only the record within the window)", resp.Total)
	}
	if resp.Records[0].ScheduledDate != inThree {
		t.Errorf("date = %s, want %s", resp.Records[0].ScheduledDate, inThree)
	}
}
