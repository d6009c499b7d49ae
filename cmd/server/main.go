package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadstyle/internal/app"
	"leadstyle/internal/config"
	"leadstyle/internal/instrument"
	"leadstyle/internal/transport/rest"
	"leadstyle/internal/transport/ws"
)

// @title Leadership Style Assessment API
// @version 1.0
// @description Management-style questionnaire: intake, scoring and supervisor reports
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}
	log.Printf("Config:")
	log.Printf("  Store:      %s", cfg.StoreDriver)
	if cfg.InstrumentPath != "" {
		log.Printf("  Instrument: %s", cfg.InstrumentPath)
	} else {
		log.Println("  Instrument: embedded default")
	}
	log.Printf("  Session:    %s", cfg.SessionTTL)

	application, err := app.New(ctx, cfg)
	if err != nil {
		var cfgErr *instrument.ConfigError
		if errors.As(err, &cfgErr) {
			for _, issue := range cfgErr.Issues {
				log.Printf("  instrument: %s", issue)
			}
		}
		log.Fatal("Startup failed:", err)
	}
	defer application.Close(context.Background())

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	defer wsHub.Close()
	log.Println("WebSocket hub started")

	// Inject broadcaster (wsHub implements service.Broadcaster)
	application.AssessmentService.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		AuthService:       application.AuthService,
		AssessmentService: application.AssessmentService,
		ReportService:     application.ReportService,
		Engine:            application.Engine,
		WSHub:             wsHub,
		CORS:              cfg.CORS,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  GET  /v1/questions, /v1/questions/{id}")
		log.Println("  POST /v1/evaluate")
		log.Println("  POST /v1/respondents")
		log.Println("  GET  /v1/assessment/progress, /v1/assessment/question, /v1/assessment/result")
		log.Println("  POST /v1/assessment/answers")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/results, /v1/results/{respondentId}[/responses]")
		log.Println("  GET  /v1/reports/summary, /v1/reports/export.csv")
		log.Println("  POST /v1/reports/compare")
		log.Println("  WS   /v1/ws/supervisor")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
