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

type TreatmentRecordHandler struct {
	recordUsecase usecase.TreatmentRecordUsecase
	validator     *validator.CustomValidator
}

func NewTreatmentRecordHandler(recordUsecase usecase.TreatmentRecordUsecase, validator *validator.CustomValidator) *TreatmentRecordHandler {
	return &TreatmentRecordHandler{
		recordUsecase: recordUsecase,
		validator:     validator,
	}
}

func (h *TreatmentRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTreatmentRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrAttendanceNotFound:
			response.NotFound(w, "Attendance not found")
		case usecase.ErrTreatmentRecordExists:
			response.Conflict(w, "A treatment record already exists for this attendance")
		case usecase.ErrInvalidReturnWeeks:
			response.Error(w, http.StatusBadRequest, "Return in weeks must be between 1 and 52", nil)
		default:
			response.InternalServerError(w, "Failed to create treatment record")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Treatment record created successfully", record)
}

func (h *TreatmentRecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid treatment record ID", nil)
		return
	}

	record, err := h.recordUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrTreatmentRecordNotFound:
			response.NotFound(w, "Treatment record not found")
		default:
			response.InternalServerError(w, "Failed to get treatment record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Treatment record retrieved successfully", record)
}

func (h *TreatmentRecordHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(r.URL.Query().Get("patient_id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid or missing patient_id", nil)
		return
	}

	records, err := h.recordUsecase.ListByPatient(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list treatment records")
		return
	}

	response.Success(w, http.StatusOK, "Treatment records retrieved successfully", records)
}

func (h *TreatmentRecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid treatment record ID", nil)
		return
	}

	var req dto.UpdateTreatmentRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrTreatmentRecordNotFound:
			response.NotFound(w, "Treatment record not found")
		case usecase.ErrInvalidReturnWeeks:
			response.Error(w, http.StatusBadRequest, "Return in weeks must be between 1 and 52", nil)
		default:
			response.InternalServerError(w, "Failed to update treatment record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Treatment record updated successfully", record)
}

func (h *TreatmentRecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid treatment record ID", nil)
		return
	}

	if err := h.recordUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrTreatmentRecordNotFound:
			response.NotFound(w, "Treatment record not found")
		default:
			response.InternalServerError(w, "Failed to delete treatment record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Treatment record deleted successfully", nil)
}
