package handler

import (
	"encoding/json"
	"net/http"

	"clinic-scheduling-backend/internal/delivery/dto"
	"clinic-scheduling-backend/internal/usecase"
	"clinic-scheduling-backend/pkg/response"
	"clinic-scheduling-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AttendanceHandler struct {
	attendanceUsecase usecase.AttendanceUsecase
	validator         *validator.CustomValidator
}

func NewAttendanceHandler(attendanceUsecase usecase.AttendanceUsecase, validator *validator.CustomValidator) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceUsecase: attendanceUsecase,
		validator:         validator,
	}
}

func (h *AttendanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	attendance, err := h.attendanceUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid scheduled date, use YYYY-MM-DD", nil)
		case usecase.ErrInvalidTimeFormat:
			response.Error(w, http.StatusBadRequest, "Invalid scheduled time, use HH:MM", nil)
		case usecase.ErrNoScheduleConfigured:
			response.Error(w, http.StatusBadRequest, "No active schedule configured for this day", nil)
		case usecase.ErrOutsideOperatingHours:
			response.Error(w, http.StatusBadRequest, "Scheduled time is outside operating hours", nil)
		case usecase.ErrCapacityExceeded:
			response.Conflict(w, "Capacity for this slot is exceeded")
		default:
			response.InternalServerError(w, "Failed to create attendance")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Attendance created successfully", attendance)
}

func (h *AttendanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid attendance ID", nil)
		return
	}

	attendance, err := h.attendanceUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAttendanceNotFound:
			response.NotFound(w, "Attendance not found")
		default:
			response.InternalServerError(w, "Failed to get attendance")
		}
		return
	}

	response.Success(w, http.StatusOK, "Attendance retrieved successfully", attendance)
}

// List supports filtering by patient_id or date. Exactly one filter is
// required; listing the whole table is not exposed.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if patientIDStr := query.Get("patient_id"); patientIDStr != "" {
		patientID, err := uuid.Parse(patientIDStr)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
			return
		}

		attendances, err := h.attendanceUsecase.ListByPatient(r.Context(), patientID)
		if err != nil {
			response.InternalServerError(w, "Failed to list attendances")
			return
		}

		response.Success(w, http.StatusOK, "Attendances retrieved successfully", attendances)
		return
	}

	if date := query.Get("date"); date != "" {
		attendances, err := h.attendanceUsecase.ListByDate(r.Context(), date)
		if err != nil {
			switch err {
			case usecase.ErrInvalidDateFormat:
				response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
			default:
				response.InternalServerError(w, "Failed to list attendances")
			}
			return
		}

		response.Success(w, http.StatusOK, "Attendances retrieved successfully", attendances)
		return
	}

	response.Error(w, http.StatusBadRequest, "Either patient_id or date query parameter is required", nil)
}

func (h *AttendanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid attendance ID", nil)
		return
	}

	var req dto.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	attendance, err := h.attendanceUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrAttendanceNotFound:
			response.NotFound(w, "Attendance not found")
		case usecase.ErrInvalidStatusTransition:
			response.Conflict(w, "Invalid attendance status transition")
		default:
			response.InternalServerError(w, "Failed to update attendance")
		}
		return
	}

	response.Success(w, http.StatusOK, "Attendance updated successfully", attendance)
}

func (h *AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid attendance ID", nil)
		return
	}

	if err := h.attendanceUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrAttendanceNotFound:
			response.NotFound(w, "Attendance not found")
		default:
			response.InternalServerError(w, "Failed to delete attendance")
		}
		return
	}

	response.Success(w, http.StatusOK, "Attendance deleted successfully", nil)
}
