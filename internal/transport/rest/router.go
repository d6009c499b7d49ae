package rest

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"

	_ "leadstyle/docs"
	"leadstyle/internal/config"
	"leadstyle/internal/scoring"
	"leadstyle/internal/service"
	"leadstyle/internal/transport/rest/handler"
	"leadstyle/internal/transport/rest/middleware"
	"leadstyle/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	AssessmentService *service.AssessmentService
	ReportService     *service.ReportService
	Engine            *scoring.Engine
	WSHub             *ws.Hub
	CORS              config.CORSConfig
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	questionHandler := handler.NewQuestionHandler(c.Engine)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	reportHandler := handler.NewReportHandler(c.ReportService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORS))
	r.Use(logRequests)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questions", questionHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/questions/{id}", questionHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/evaluate", questionHandler.Evaluate).Methods("POST", "OPTIONS")
	v1.HandleFunc("/respondents", assessmentHandler.Register).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/supervisor", wsHandler.SupervisorWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// Respondent routes (require respondent token)
	respondentRoutes := v1.PathPrefix("/assessment").Subrouter()
	respondentRoutes.Use(authMW.RequireRespondent)

	respondentRoutes.HandleFunc("/progress", assessmentHandler.Progress).Methods("GET", "OPTIONS")
	respondentRoutes.HandleFunc("/question", assessmentHandler.CurrentQuestion).Methods("GET", "OPTIONS")
	respondentRoutes.HandleFunc("/answers", assessmentHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	respondentRoutes.HandleFunc("/result", assessmentHandler.Result).Methods("GET", "OPTIONS")

	// Supervisor routes (require supervisor auth)
	supervisorRoutes := v1.NewRoute().Subrouter()
	supervisorRoutes.Use(authMW.RequireSupervisor)

	supervisorRoutes.HandleFunc("/results", reportHandler.ListResults).Methods("GET", "OPTIONS")
	supervisorRoutes.HandleFunc("/results/{respondentId}", reportHandler.GetResult).Methods("GET", "OPTIONS")
	supervisorRoutes.HandleFunc("/results/{respondentId}/responses", reportHandler.GetResponses).Methods("GET", "OPTIONS")
	supervisorRoutes.HandleFunc("/reports/summary", reportHandler.Summary).Methods("GET", "OPTIONS")
	supervisorRoutes.HandleFunc("/reports/compare", reportHandler.Compare).Methods("POST", "OPTIONS")
	supervisorRoutes.HandleFunc("/reports/export.csv", reportHandler.ExportCSV).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(cfg config.CORSConfig) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// websocket upgrades need the raw writer for hijacking
		if r.Header.Get("Upgrade") != "" {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
