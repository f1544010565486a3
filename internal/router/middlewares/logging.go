package middlewares

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// WithLogging logs requests that did not answer 200.
func WithLogging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		start := time.Now()
		loggedRW := &responseWriterLogger{ResponseWriter: rw, statusCode: http.StatusOK}
		h.ServeHTTP(loggedRW, req)

		if loggedRW.statusCode != http.StatusOK {
			log.Ctx(req.Context()).Warn().
				Int("statusCode", loggedRW.statusCode).
				Str("path", req.URL.Path).
				Dur("elapsed", time.Since(start)).
				Msg("non-200 status code response")
		}
	})
}

type responseWriterLogger struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseWriterLogger) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.statusCode = statusCode
}
