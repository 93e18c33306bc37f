package http

import (
	"net/http"

	"clinic-scheduling-backend/internal/delivery/http/handler"
	"clinic-scheduling-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                  *mux.Router
	patientHandler          *handler.PatientHandler
	attendanceHandler       *handler.AttendanceHandler
	scheduleSettingHandler  *handler.ScheduleSettingHandler
	treatmentRecordHandler  *handler.TreatmentRecordHandler
	treatmentSessionHandler *handler.TreatmentSessionHandler
	auditLogHandler         *handler.AuditLogHandler
	corsMiddleware          *middleware.CORSMiddleware
}

func NewRouter(
	patientHandler *handler.PatientHandler,
	attendanceHandler *handler.AttendanceHandler,
	scheduleSettingHandler *handler.ScheduleSettingHandler,
	treatmentRecordHandler *handler.TreatmentRecordHandler,
	treatmentSessionHandler *handler.TreatmentSessionHandler,
	auditLogHandler *handler.AuditLogHandler,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                  mux.NewRouter(),
		patientHandler:          patientHandler,
		attendanceHandler:       attendanceHandler,
		scheduleSettingHandler:  scheduleSettingHandler,
		treatmentRecordHandler:  treatmentRecordHandler,
		treatmentSessionHandler: treatmentSessionHandler,
		auditLogHandler:         auditLogHandler,
		corsMiddleware:          corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patients
	api.HandleFunc("/patients", r.patientHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/patients", r.patientHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}", r.patientHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}", r.patientHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/patients/{id}", r.patientHandler.Delete).Methods(http.MethodDelete)

	// Attendances
	api.HandleFunc("/attendances", r.attendanceHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/attendances", r.attendanceHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/attendances/{id}", r.attendanceHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/attendances/{id}", r.attendanceHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/attendances/{id}", r.attendanceHandler.Delete).Methods(http.MethodDelete)

	// Schedule settings
	api.HandleFunc("/schedule-settings", r.scheduleSettingHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/schedule-settings", r.scheduleSettingHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/schedule-settings/{id}", r.scheduleSettingHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/schedule-settings/{id}", r.scheduleSettingHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/schedule-settings/{id}", r.scheduleSettingHandler.Delete).Methods(http.MethodDelete)

	// Treatment records
	api.HandleFunc("/treatment-records", r.treatmentRecordHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/treatment-records", r.treatmentRecordHandler.ListByPatient).Methods(http.MethodGet)
	api.HandleFunc("/treatment-records/{id}", r.treatmentRecordHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/treatment-records/{id}", r.treatmentRecordHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/treatment-records/{id}", r.treatmentRecordHandler.Delete).Methods(http.MethodDelete)

	// Treatment sessions and their per-occurrence records
	api.HandleFunc("/treatment-sessions", r.treatmentSessionHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/treatment-sessions", r.treatmentSessionHandler.ListByPatient).Methods(http.MethodGet)
	api.HandleFunc("/treatment-sessions/weekly-attendances", r.treatmentSessionHandler.CreateWeeklyAttendances).Methods(http.MethodPost)
	api.HandleFunc("/treatment-sessions/{id}", r.treatmentSessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/treatment-sessions/{id}", r.treatmentSessionHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/treatment-sessions/{id}", r.treatmentSessionHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/session-records/upcoming", r.treatmentSessionHandler.UpcomingRecords).Methods(http.MethodGet)
	api.HandleFunc("/session-records/{id}/complete", r.treatmentSessionHandler.CompleteRecord).Methods(http.MethodPost)
	api.HandleFunc("/session-records/{id}/miss", r.treatmentSessionHandler.MissRecord).Methods(http.MethodPost)
	api.HandleFunc("/session-records/{id}/reschedule", r.treatmentSessionHandler.RescheduleRecord).Methods(http.MethodPost)

	// Audit logs
	api.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
