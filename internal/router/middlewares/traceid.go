package middlewares

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TraceIDHeader is the response header carrying the trace id of the request.
const TraceIDHeader = "Trace-ID"

// TraceID creates a trace id for the request. The request context carries a logger
// with the trace id, and the id is returned in the Trace-ID header.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.NewRandom()
		if err != nil {
			log.Warn().Err(err).Msg("failed to generate a trace id")
			next.ServeHTTP(w, r)
			return
		}

		traceID := id.String()
		logger := log.With().Str("traceId", traceID).Logger()
		r = r.WithContext(logger.WithContext(r.Context()))
		w.Header().Set(TraceIDHeader, traceID)

		next.ServeHTTP(w, r)
	})
}
