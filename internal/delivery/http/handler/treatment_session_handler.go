package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-scheduling-backend/internal/delivery/dto"
	"clinic-scheduling-backend/internal/usecase"
	"clinic-scheduling-backend/pkg/response"
	"clinic-scheduling-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TreatmentSessionHandler struct {
	sessionUsecase usecase.TreatmentSessionUsecase
	recordUsecase  usecase.TreatmentSessionRecordUsecase
	validator      *validator.CustomValidator
}

func NewTreatmentSessionHandler(
	sessionUsecase usecase.TreatmentSessionUsecase,
	recordUsecase usecase.TreatmentSessionRecordUsecase,
	validator *validator.CustomValidator,
) *TreatmentSessionHandler {
	return &TreatmentSessionHandler{
		sessionUsecase: sessionUsecase,
		recordUsecase:  recordUsecase,
		validator:      validator,
	}
}

// Create books a whole treatment plan. Partial attendance failures come
// back inside the 201 payload, not as an error status.
func (h *TreatmentSessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTreatmentSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.sessionUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrTreatmentRecordNotFound:
			response.NotFound(w, "Treatment record not found")
		case usecase.ErrAttendanceNotFound:
			response.NotFound(w, "Attendance not found")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrInvalidTreatmentType:
			response.Error(w, http.StatusBadRequest, "Invalid treatment type", nil)
		case usecase.ErrLightBathFieldsRequired:
			response.Error(w, http.StatusBadRequest, "Light bath sessions require duration_minutes and color", nil)
		case usecase.ErrRodFieldsNotAllowed:
			response.Error(w, http.StatusBadRequest, "Rod sessions must not have duration_minutes or color", nil)
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid start date, use YYYY-MM-DD", nil)
		case usecase.ErrInvalidPlannedSessions:
			response.Error(w, http.StatusBadRequest, "Planned sessions must be between 1 and 50", nil)
		default:
			response.InternalServerError(w, "Failed to create treatment session")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Treatment session created successfully", result)
}

func (h *TreatmentSessionHandler) CreateWeeklyAttendances(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWeeklyAttendancesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.sessionUsecase.CreateWeeklyAttendances(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid start date, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to create weekly attendances")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Weekly attendances created", result)
}

func (h *TreatmentSessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid treatment session ID", nil)
		return
	}

	session, err := h.sessionUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrTreatmentSessionNotFound:
			response.NotFound(w, "Treatment session not found")
		default:
			response.InternalServerError(w, "Failed to get treatment session")
		}
		return
	}

	response.Success(w, http.StatusOK, "Treatment session retrieved successfully", session)
}

func (h *TreatmentSessionHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(r.URL.Query().Get("patient_id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid or missing patient_id", nil)
		return
	}

	sessions, err := h.sessionUsecase.ListByPatient(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list treatment sessions")
		return
	}

	response.Success(w, http.StatusOK, "Treatment sessions retrieved successfully", sessions)
}

func (h *TreatmentSessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid treatment session ID", nil)
		return
	}

	var req dto.UpdateTreatmentSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.sessionUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrTreatmentSessionNotFound:
			response.NotFound(w, "Treatment session not found")
		case usecase.ErrInvalidSessionStatus:
			response.Error(w, http.StatusBadRequest, "Invalid treatment session status", nil)
		default:
			response.InternalServerError(w, "Failed to update treatment session")
		}
		return
	}

	response.Success(w, http.StatusOK, "Treatment session updated successfully", session)
}

func (h *TreatmentSessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid treatment session ID", nil)
		return
	}

	if err := h.sessionUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrTreatmentSessionNotFound:
			response.NotFound(w, "Treatment session not found")
		default:
			response.InternalServerError(w, "Failed to delete treatment session")
		}
		return
	}

	response.Success(w, http.StatusOK, "Treatment session deleted successfully", nil)
}

func (h *TreatmentSessionHandler) CompleteRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session record ID", nil)
		return
	}

	var req dto.CompleteSessionRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	record, err := h.recordUsecase.Complete(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrSessionRecordNotFound:
			response.NotFound(w, "Session record not found")
		case usecase.ErrAttendanceNotFound:
			response.NotFound(w, "Attendance not found")
		case usecase.ErrSessionRecordCompleted:
			response.Conflict(w, "Session record is already completed")
		case usecase.ErrSessionRecordCancelled:
			response.Conflict(w, "Session record is cancelled")
		default:
			response.InternalServerError(w, "Failed to complete session record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Session record completed successfully", record)
}

func (h *TreatmentSessionHandler) MissRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session record ID", nil)
		return
	}

	var req dto.MissSessionRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.MarkMissed(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrSessionRecordNotFound:
			response.NotFound(w, "Session record not found")
		case usecase.ErrSessionRecordCompleted:
			response.Conflict(w, "Session record is already completed")
		case usecase.ErrSessionRecordCancelled:
			response.Conflict(w, "Session record is cancelled")
		default:
			response.InternalServerError(w, "Failed to mark session record as missed")
		}
		return
	}

	response.Success(w, http.StatusOK, "Session record marked as missed", record)
}

func (h *TreatmentSessionHandler) RescheduleRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session record ID", nil)
		return
	}

	var req dto.RescheduleSessionRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.Reschedule(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrSessionRecordNotFound:
			response.NotFound(w, "Session record not found")
		case usecase.ErrSessionRecordCompleted:
			response.Conflict(w, "A completed session record cannot be rescheduled")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid new date, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to reschedule session record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Session record rescheduled successfully", record)
}

func (h *TreatmentSessionHandler) UpcomingRecords(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(r.URL.Query().Get("patient_id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid or missing patient_id", nil)
		return
	}

	days := 7
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err = strconv.Atoi(daysStr)
		if err != nil || days < 1 {
			response.Error(w, http.StatusBadRequest, "Invalid days parameter", nil)
			return
		}
	}

	records, err := h.recordUsecase.UpcomingForPatient(r.Context(), patientID, days)
	if err != nil {
		response.InternalServerError(w, "Failed to list upcoming session records")
		return
	}

	response.Success(w, http.StatusOK, "Upcoming session records retrieved successfully", records)
}
