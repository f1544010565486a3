package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLimitPerClient(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name         string
		forwardedFor bool
	}

	tests := []testCase{
		{name: "forwarded", forwardedFor: true},
		{name: "remote-addr", forwardedFor: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rlcm, err := RateLimitController(RateLimiterConfig{MaxRPI: 5, Interval: time.Minute})
			require.NoError(t, err)
			rlc := rlcm(dummyHandler{})

			client := uuid.NewString()
			newRequest := func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				if tc.forwardedFor {
					r.Header.Set("X-Forwarded-For", client+", 10.0.0.1")
				} else {
					r.RemoteAddr = client + ":1234"
				}
				return r
			}

			for i := 0; i < 5; i++ {
				res := httptest.NewRecorder()
				rlc.ServeHTTP(res, newRequest())
				require.Equal(t, http.StatusOK, res.Code)
			}

			res := httptest.NewRecorder()
			rlc.ServeHTTP(res, newRequest())
			require.Equal(t, http.StatusTooManyRequests, res.Code)
		})
	}
}

func TestLimitDifferentClients(t *testing.T) {
	t.Parallel()

	rlcm, err := RateLimitController(RateLimiterConfig{MaxRPI: 1, Interval: time.Minute})
	require.NoError(t, err)
	rlc := rlcm(dummyHandler{})

	// Many requests from different IPs never hit the shared budget.
	for i := 0; i < 100; i++ {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-For", uuid.NewString())

		res := httptest.NewRecorder()
		rlc.ServeHTTP(res, r)
		require.Equal(t, http.StatusOK, res.Code)
	}
}

func TestTraceID(t *testing.T) {
	t.Parallel()

	var level zerolog.Level
	h := TraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		level = zerolog.Ctx(r.Context()).GetLevel()
		w.WriteHeader(http.StatusOK)
	}))

	res := httptest.NewRecorder()
	h.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEqual(t, zerolog.Disabled, level)

	_, err := uuid.Parse(res.Header().Get(TraceIDHeader))
	require.NoError(t, err)
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	var called bool
	h := CORS(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	res := httptest.NewRecorder()
	h.ServeHTTP(res, httptest.NewRequest(http.MethodOptions, "/api/v1/lookup", nil))
	require.False(t, called)
	require.Equal(t, "*", res.Header().Get("Access-Control-Allow-Origin"))

	res = httptest.NewRecorder()
	h.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/v1/lookup", nil))
	require.True(t, called)
}

func TestCompress(t *testing.T) {
	t.Parallel()

	compress, err := Compress()
	require.NoError(t, err)

	body := strings.Repeat("<p>Loading...</p>", 100)
	h := compress(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	res := httptest.NewRecorder()
	h.ServeHTTP(res, r)
	require.Equal(t, "gzip", res.Header().Get("Content-Encoding"))
	require.Less(t, res.Body.Len(), len(body))

	res = httptest.NewRecorder()
	h.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Empty(t, res.Header().Get("Content-Encoding"))
	require.Equal(t, body, res.Body.String())
}

type dummyHandler struct{}

func (dummyHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
