package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

const (
	msgInvalidScheduleID = "некорректный ID расписания"
	msgInvalidQuery      = "некорректные параметры запроса: from и to ожидаются в RFC3339 или YYYY-MM-DD, длительности целыми минутами"
	msgScheduleNotFound  = "расписание не найдено"
	msgInvalidTimeZone   = "неизвестная таймзона"
	msgWindowTooLarge    = "запрошенный период слишком большой"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedules/{scheduleId}/available-slots
// Query params: from, to (required), eventLength, cadence, minimumNotice, offsetStart, timeZone
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем scheduleId из URL
	scheduleID, err := strconv.ParseInt(vars["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/available-slots - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	// Формируем запрос к use case
	useCaseReq, err := ToUseCaseRequest(scheduleID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/available-slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrScheduleNotFound):
			h.logger.Warn("GET /schedules/{id}/available-slots - Schedule not found: schedule_id=%d", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidTimeZone):
			h.logger.Warn("GET /schedules/{id}/available-slots - Invalid time zone: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeZone)

		case errors.Is(err, getAvailableSlots.ErrWindowTooLarge):
			h.logger.Warn("GET /schedules/{id}/available-slots - Window too large: %v", err)
			handlers.RespondBadRequest(w, msgWindowTooLarge)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /schedules/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /schedules/{id}/available-slots - Failed to get slots: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /schedules/{id}/available-slots - Slots retrieved successfully: schedule_id=%d, slots_count=%d",
		scheduleID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
