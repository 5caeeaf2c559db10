package check_slot_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	checkSlotAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_slot_availability"
)

const (
	msgInvalidScheduleID = "некорректный ID расписания"
	msgInvalidQuery      = "некорректные параметры запроса: start и end ожидаются в RFC3339"
	msgScheduleNotFound  = "расписание не найдено"
)

type Handler struct {
	useCase CheckSlotAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedules/{scheduleId}/slot-availability
// Query params: start, end (required, RFC3339), minimumNotice
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем scheduleId из URL
	scheduleID, err := strconv.ParseInt(vars["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/slot-availability - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(scheduleID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/slot-availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkSlotAvailability.ErrScheduleNotFound):
			h.logger.Warn("GET /schedules/{id}/slot-availability - Schedule not found: schedule_id=%d", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, checkSlotAvailability.ErrInvalidInput):
			h.logger.Warn("GET /schedules/{id}/slot-availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /schedules/{id}/slot-availability - Failed to check slot: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedules/{id}/slot-availability - Slot checked: schedule_id=%d, available=%t",
		scheduleID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
