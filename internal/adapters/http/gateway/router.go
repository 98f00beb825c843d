package gateway

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/call-audit-gateway/internal/core/services"
	"github.com/call-audit-gateway/internal/logging"
)

// NewRouter mounts the gateway's HTTP surface on a chi router with request
// logging and permissive CORS for the browser dashboard.
func NewRouter(
	broker *services.UploadBrokerService,
	meetings *services.MeetingService,
	resolver services.ReportResolver,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger())
	r.Use(cors)

	uploadURLHandler := NewUploadURLHandler(broker)
	meetingsHandler := NewMeetingsHandler(meetings)
	reportHandler := NewReportHandler(resolver)

	r.Post("/upload-url", uploadURLHandler.ServeHTTP)
	r.Get("/meetings", meetingsHandler.List)
	r.Post("/meetings", meetingsHandler.Register)
	r.Get("/reports/{meetingID}", reportHandler.ServeHTTP)

	return r
}

func requestLogger() func(http.Handler) http.Handler {
	log := logging.WithComponent("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
