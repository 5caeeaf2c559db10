package middleware

import (
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Logger интерфейс для логирования паник
type Logger interface {
	Error(format string, v ...interface{})
}

// recoveryLogger адаптер Logger под handlers.RecoveryHandlerLogger
type recoveryLogger struct {
	log Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("HTTP handler panic recovered: %s", fmt.Sprint(v...))
}

// RecoveryMiddleware перехватывает панику обработчика, логирует её и отвечает 500
func RecoveryMiddleware(log Logger) mux.MiddlewareFunc {
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{log: log}),
		handlers.PrintRecoveryStack(false),
	)
	return func(next http.Handler) http.Handler {
		return recovery(next)
	}
}
