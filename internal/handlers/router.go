package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type requestIDKey struct{}

// RequestIDHeader - заголовок с идентификатором запроса.
const RequestIDHeader = "X-Request-ID"

// NewRouter регистрирует маршруты API и middleware.
func NewRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
	router.HandleFunc("/crops/recommend", h.RecommendCrops).Methods("POST", "OPTIONS")
	router.HandleFunc("/prices/{crop}", h.GetPrice).Methods("GET")
	router.HandleFunc("/locations/states", h.GetStates).Methods("GET")
	router.HandleFunc("/locations/states/{state}/districts", h.GetDistricts).Methods("GET")
	router.HandleFunc("/locations/seasons", h.GetSeasons).Methods("GET")
	router.HandleFunc("/soil-types", h.GetSoilTypes).Methods("GET")
	router.HandleFunc("/soil-types/{soil}/crops", h.GetSoilCrops).Methods("GET")
	router.HandleFunc("/weather", h.GetWeather).Methods("GET")
	router.HandleFunc("/languages", h.GetLanguages).Methods("GET")

	router.Use(requestLogger(h.logger))
	router.Use(corsMiddleware)
	return router
}

// corsMiddleware разрешает запросы с любого источника.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// requestLogger присваивает запросу идентификатор и пишет строку лога после ответа.
func requestLogger(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

			logger.Info("http request",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// RequestID возвращает идентификатор запроса из контекста.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
