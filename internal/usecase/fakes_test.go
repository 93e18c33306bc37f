package usecase

import (
	"context"
	"io"
	"sort"

	"clinic-scheduling-backend/internal/domain/entity"
	"clinic-scheduling-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// In-memory repository fakes. The repositories take the *gorm.DB handle as
// an argument and the fakes ignore it, so usecases under test run with a
// nil database.

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*entity.Patient)}
}

func (r *fakePatientRepo) add(p *entity.Patient) *entity.Patient {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.patients[p.ID] = p
	return p
}

func (r *fakePatientRepo) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	r.add(patient)
	return nil
}

func (r *fakePatientRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return r.patients[id], nil
}

func (r *fakePatientRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Patient, error) {
	result := make([]entity.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		result = append(result, *p)
	}
	return result, nil
}

func (r *fakePatientRepo) FindByTreatmentStatus(ctx context.Context, db *gorm.DB, status entity.TreatmentStatus) ([]entity.Patient, error) {
	var result []entity.Patient
	for _, p := range r.patients {
		if p.TreatmentStatus == status {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *fakePatientRepo) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	r.patients[patient.ID] = patient
	return nil
}

func (r *fakePatientRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	delete(r.patients, id)
	return nil
}

type fakeScheduleSettingRepo struct {
	settings map[int]*entity.ScheduleSetting
	nextID   int
}

func newFakeScheduleSettingRepo() *fakeScheduleSettingRepo {
	return &fakeScheduleSettingRepo{settings: make(map[int]*entity.ScheduleSetting), nextID: 1}
}

func (r *fakeScheduleSettingRepo) add(s *entity.ScheduleSetting) *entity.ScheduleSetting {
	if s.ID == 0 {
		s.ID = r.nextID
		r.nextID++
	}
	r.settings[s.ID] = s
	return s
}

func (r *fakeScheduleSettingRepo) Create(ctx context.Context, db *gorm.DB, setting *entity.ScheduleSetting) error {
	r.add(setting)
	return nil
}

func (r *fakeScheduleSettingRepo) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.ScheduleSetting, error) {
	return r.settings[id], nil
}

func (r *fakeScheduleSettingRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.ScheduleSetting, error) {
	result := make([]entity.ScheduleSetting, 0, len(r.settings))
	for _, s := range r.settings {
		result = append(result, *s)
	}
	return result, nil
}

func (r *fakeScheduleSettingRepo) FindActiveByDayOfWeek(ctx context.Context, db *gorm.DB, dayOfWeek int) (*entity.ScheduleSetting, error) {
	for _, s := range r.settings {
		if s.IsActive && s.DayOfWeek == dayOfWeek {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeScheduleSettingRepo) Update(ctx context.Context, db *gorm.DB, setting *entity.ScheduleSetting) error {
	r.settings[setting.ID] = setting
	return nil
}

func (r *fakeScheduleSettingRepo) Delete(ctx context.Context, db *gorm.DB, id int) error {
	delete(r.settings, id)
	return nil
}

type fakeAttendanceRepo struct {
	attendances map[uuid.UUID]*entity.Attendance
	createErr   error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{attendances: make(map[uuid.UUID]*entity.Attendance)}
}

func (r *fakeAttendanceRepo) add(a *entity.Attendance) *entity.Attendance {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.attendances[a.ID] = a
	return a
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, db *gorm.DB, attendance *entity.Attendance) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.add(attendance)
	return nil
}

func (r *fakeAttendanceRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Attendance, error) {
	return r.attendances[id], nil
}

func (r *fakeAttendanceRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Attendance, error) {
	var result []entity.Attendance
	for _, a := range r.attendances {
		if a.PatientID == patientID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *fakeAttendanceRepo) FindByDate(ctx context.Context, db *gorm.DB, date string) ([]entity.Attendance, error) {
	var result []entity.Attendance
	for _, a := range r.attendances {
		if a.ScheduledDate == date {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *fakeAttendanceRepo) CountScheduledAt(ctx context.Context, db *gorm.DB, date, timeStr string, typ entity.AttendanceType) (int64, error) {
	var count int64
	for _, a := range r.attendances {
		if a.ScheduledDate == date && a.ScheduledTime == timeStr && a.Type == typ && a.Status == entity.AttendanceStatusScheduled {
			count++
		}
	}
	return count, nil
}

func (r *fakeAttendanceRepo) FindScheduledSlotCounts(ctx context.Context, db *gorm.DB, fromDate string) ([]repository.SlotCount, error) {
	counts := make(map[repository.SlotCount]int64)
	for _, a := range r.attendances {
		if a.Status != entity.AttendanceStatusScheduled || a.ScheduledDate < fromDate {
			continue
		}
		key := repository.SlotCount{ScheduledDate: a.ScheduledDate, ScheduledTime: a.ScheduledTime, Type: a.Type}
		counts[key]++
	}
	var result []repository.SlotCount
	for key, n := range counts {
		key.Count = n
		result = append(result, key)
	}
	return result, nil
}

func (r *fakeAttendanceRepo) Update(ctx context.Context, db *gorm.DB, attendance *entity.Attendance) error {
	r.attendances[attendance.ID] = attendance
	return nil
}

func (r *fakeAttendanceRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	delete(r.attendances, id)
	return nil
}

func (r *fakeAttendanceRepo) DeleteByIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(r.attendances, id)
	}
	return nil
}

type fakeTreatmentRecordRepo struct {
	records map[uuid.UUID]*entity.TreatmentRecord
}

func newFakeTreatmentRecordRepo() *fakeTreatmentRecordRepo {
	return &fakeTreatmentRecordRepo{records: make(map[uuid.UUID]*entity.TreatmentRecord)}
}

func (r *fakeTreatmentRecordRepo) add(rec *entity.TreatmentRecord) *entity.TreatmentRecord {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.records[rec.ID] = rec
	return rec
}

func (r *fakeTreatmentRecordRepo) Create(ctx context.Context, db *gorm.DB, record *entity.TreatmentRecord) error {
	r.add(record)
	return nil
}

func (r *fakeTreatmentRecordRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.TreatmentRecord, error) {
	return r.records[id], nil
}

func (r *fakeTreatmentRecordRepo) FindByAttendanceID(ctx context.Context, db *gorm.DB, attendanceID uuid.UUID) (*entity.TreatmentRecord, error) {
	for _, rec := range r.records {
		if rec.AttendanceID == attendanceID {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *fakeTreatmentRecordRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.TreatmentRecord, error) {
	var result []entity.TreatmentRecord
	for _, rec := range r.records {
		if rec.PatientID == patientID {
			result = append(result, *rec)
		}
	}
	return result, nil
}

func (r *fakeTreatmentRecordRepo) Update(ctx context.Context, db *gorm.DB, record *entity.TreatmentRecord) error {
	r.records[record.ID] = record
	return nil
}

func (r *fakeTreatmentRecordRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

type fakeTreatmentSessionRepo struct {
	sessions    map[uuid.UUID]*entity.TreatmentSession
	recordsRepo *fakeSessionRecordRepo
}

func newFakeTreatmentSessionRepo(recordsRepo *fakeSessionRecordRepo) *fakeTreatmentSessionRepo {
	return &fakeTreatmentSessionRepo{
		sessions:    make(map[uuid.UUID]*entity.TreatmentSession),
		recordsRepo: recordsRepo,
	}
}

func (r *fakeTreatmentSessionRepo) Create(ctx context.Context, db *gorm.DB, session *entity.TreatmentSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeTreatmentSessionRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.TreatmentSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	// Mimic the preload: attach child records ordered by session number
	copied := *session
	copied.Records = nil
	if r.recordsRepo != nil {
		for _, rec := range r.recordsRepo.records {
			if rec.TreatmentSessionID == id {
				copied.Records = append(copied.Records, *rec)
			}
		}
		sort.Slice(copied.Records, func(i, j int) bool {
			return copied.Records[i].SessionNumber < copied.Records[j].SessionNumber
		})
	}
	return &copied, nil
}

func (r *fakeTreatmentSessionRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.TreatmentSession, error) {
	var result []entity.TreatmentSession
	for _, s := range r.sessions {
		if s.PatientID == patientID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (r *fakeTreatmentSessionRepo) Update(ctx context.Context, db *gorm.DB, session *entity.TreatmentSession) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeTreatmentSessionRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	delete(r.sessions, id)
	if r.recordsRepo != nil {
		for recID, rec := range r.recordsRepo.records {
			if rec.TreatmentSessionID == id {
				delete(r.recordsRepo.records, recID)
			}
		}
	}
	return nil
}

type fakeSessionRecordRepo struct {
	records map[uuid.UUID]*entity.TreatmentSessionRecord
}

func newFakeSessionRecordRepo() *fakeSessionRecordRepo {
	return &fakeSessionRecordRepo{records: make(map[uuid.UUID]*entity.TreatmentSessionRecord)}
}

func (r *fakeSessionRecordRepo) CreateBatch(ctx context.Context, db *gorm.DB, records []*entity.TreatmentSessionRecord) error {
	for _, rec := range records {
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		r.records[rec.ID] = rec
	}
	return nil
}

func (r *fakeSessionRecordRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.TreatmentSessionRecord, error) {
	return r.records[id], nil
}

func (r *fakeSessionRecordRepo) Update(ctx context.Context, db *gorm.DB, record *entity.TreatmentSessionRecord) error {
	r.records[record.ID] = record
	return nil
}

func (r *fakeSessionRecordRepo) CountCompletedBySession(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (int64, error) {
	var count int64
	for _, rec := range r.records {
		if rec.TreatmentSessionID == sessionID && rec.Status == entity.SessionRecordStatusCompleted {
			count++
		}
	}
	return count, nil
}

func (r *fakeSessionRecordRepo) FindUpcomingByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID, from, to string) ([]entity.TreatmentSessionRecord, error) {
	// The fake has no session join; tests register ownership explicitly
	// via the sessions of fakeTreatmentSessionRepo instead. Here every
	// record is assumed to belong to the queried patient.
	var result []entity.TreatmentSessionRecord
	for _, rec := range r.records {
		if rec.Status == entity.SessionRecordStatusScheduled && rec.ScheduledDate >= from && rec.ScheduledDate <= to {
			result = append(result, *rec)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ScheduledDate < result[j].ScheduledDate
	})
	return result, nil
}

// fakeSlotReserver records reservation traffic and can simulate a full or
// unavailable Redis.
type fakeSlotReserver struct {
	reserveErr   error
	reserveCalls int
	releaseCalls int
}

func (f *fakeSlotReserver) Reserve(ctx context.Context, date, timeStr string, typ entity.AttendanceType, ceiling int) error {
	f.reserveCalls++
	return f.reserveErr
}

func (f *fakeSlotReserver) Release(ctx context.Context, date, timeStr string, typ entity.AttendanceType) error {
	f.releaseCalls++
	return nil
}
