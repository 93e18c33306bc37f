package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-scheduling-backend/internal/delivery/dto"
	"clinic-scheduling-backend/internal/usecase"
	"clinic-scheduling-backend/pkg/response"
	"clinic-scheduling-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type ScheduleSettingHandler struct {
	settingUsecase usecase.ScheduleSettingUsecase
	validator      *validator.CustomValidator
}

func NewScheduleSettingHandler(settingUsecase usecase.ScheduleSettingUsecase, validator *validator.CustomValidator) *ScheduleSettingHandler {
	return &ScheduleSettingHandler{
		settingUsecase: settingUsecase,
		validator:      validator,
	}
}

func (h *ScheduleSettingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateScheduleSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	setting, err := h.settingUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDayOfWeek:
			response.Error(w, http.StatusBadRequest, "Day of week must be between 0 and 6", nil)
		case usecase.ErrInvalidTimeFormat:
			response.Error(w, http.StatusBadRequest, "Invalid time, use HH:MM", nil)
		case usecase.ErrInvalidTimeRange:
			response.Error(w, http.StatusBadRequest, "Start time must be before end time", nil)
		case usecase.ErrDuplicateActiveDay:
			response.Conflict(w, "An active schedule setting already exists for this day")
		default:
			response.InternalServerError(w, "Failed to create schedule setting")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Schedule setting created successfully", setting)
}

func (h *ScheduleSettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule setting ID", nil)
		return
	}

	setting, err := h.settingUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrScheduleSettingNotFound:
			response.NotFound(w, "Schedule setting not found")
		default:
			response.InternalServerError(w, "Failed to get schedule setting")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule setting retrieved successfully", setting)
}

func (h *ScheduleSettingHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list schedule settings")
		return
	}

	response.Success(w, http.StatusOK, "Schedule settings retrieved successfully", settings)
}

func (h *ScheduleSettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule setting ID", nil)
		return
	}

	var req dto.UpdateScheduleSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	setting, err := h.settingUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrScheduleSettingNotFound:
			response.NotFound(w, "Schedule setting not found")
		case usecase.ErrInvalidTimeFormat:
			response.Error(w, http.StatusBadRequest, "Invalid time, use HH:MM", nil)
		case usecase.ErrInvalidTimeRange:
			response.Error(w, http.StatusBadRequest, "Start time must be before end time", nil)
		case usecase.ErrDuplicateActiveDay:
			response.Conflict(w, "An active schedule setting already exists for this day")
		default:
			response.InternalServerError(w, "Failed to update schedule setting")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule setting updated successfully", setting)
}

func (h *ScheduleSettingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule setting ID", nil)
		return
	}

	if err := h.settingUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrScheduleSettingNotFound:
			response.NotFound(w, "Schedule setting not found")
		default:
			response.InternalServerError(w, "Failed to delete schedule setting")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule setting deleted successfully", nil)
}
