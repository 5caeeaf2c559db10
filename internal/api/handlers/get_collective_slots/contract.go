package get_collective_slots

import (
	"context"

	getCollectiveSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_collective_slots"
)

type GetCollectiveSlotsUseCase interface {
	Execute(ctx context.Context, req *getCollectiveSlots.Request) (*getCollectiveSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
