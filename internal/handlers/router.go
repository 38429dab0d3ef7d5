package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type RouterOptions struct {
	CORSOrigins []string
	RateLimiter *RateLimiter
	Log         zerolog.Logger
}

func Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

// NewRouter mounts the API. Middleware order: logging, CORS, then the
// per-route rate limit on everything that accepts a form.
func NewRouter(sh *ScheduleHandler, opts RouterOptions) http.Handler {
	limit := opts.RateLimiter.Limit

	router := httprouter.New()
	router.GET("/health", Health)
	router.POST("/api/schedule", limit(sh.HandleSchedule))
	router.POST("/api/schedule/preview", limit(sh.HandlePreview))
	router.POST("/api/schedule/ics", limit(sh.HandleCalendar))
	router.GET("/api/submissions", sh.HandleGetSubmissions)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)

	return loggingMiddleware(opts.Log, corsHandler)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", rec.status).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}
