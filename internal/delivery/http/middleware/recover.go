package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"devevents/internal/delivery/http/helpers"
)

// Recover turns a handler panic into a logged 500 response. A panic after the
// handler has started its response is only logged, since the status line is
// already out.
func Recover(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := newStatusRecorder(w)
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "panic serving request",
				"method", r.Method, "path", r.URL.Path, "panic", rec,
				"response_started", rw.written, "stack", string(debug.Stack()))
			if rw.written {
				return
			}
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
		}()
		next.ServeHTTP(rw, r)
	})
}
