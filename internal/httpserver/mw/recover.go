package mw

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/flyee/flights/internal/logger"
)

// Recover turns handler panics into the JSON 500 envelope. The stock chi
// recoverer answers with a plain-text 500, which would break the
// {success,message} contract every other error path keeps.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("handler panic",
					logger.String("method", r.Method),
					logger.String("path", r.URL.Path),
					logger.String("panic", fmt.Sprint(rec)),
					logger.String("stack", string(debug.Stack())))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"success":false,"message":"Internal server error"}`))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
