package get_collective_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getCollectiveSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_collective_slots"
)

const (
	msgInvalidQuery     = "некорректные параметры запроса: scheduleIds списком ID, from и to в RFC3339 или YYYY-MM-DD, длительности целыми минутами"
	msgScheduleNotFound = "одно из расписаний не найдено"
	msgInvalidTimeZone  = "неизвестная таймзона"
	msgWindowTooLarge   = "запрошенный период слишком большой"
)

type Handler struct {
	useCase GetCollectiveSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetCollectiveSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedules/collective-slots
// Query params: scheduleIds, from, to (required), eventLength, cadence, minimumNotice, offsetStart, timeZone
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Формируем запрос к use case
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /schedules/collective-slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getCollectiveSlots.ErrScheduleNotFound):
			h.logger.Warn("GET /schedules/collective-slots - Schedule not found: %v", err)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, getCollectiveSlots.ErrInvalidTimeZone):
			h.logger.Warn("GET /schedules/collective-slots - Invalid time zone: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeZone)

		case errors.Is(err, getCollectiveSlots.ErrWindowTooLarge):
			h.logger.Warn("GET /schedules/collective-slots - Window too large: %v", err)
			handlers.RespondBadRequest(w, msgWindowTooLarge)

		case errors.Is(err, getCollectiveSlots.ErrInvalidInput):
			h.logger.Warn("GET /schedules/collective-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /schedules/collective-slots - Failed to get slots: schedule_ids=%v, error=%v",
				useCaseReq.ScheduleIDs, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /schedules/collective-slots - Slots retrieved successfully: schedule_ids=%v, slots_count=%d",
		result.ScheduleIDs, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
