package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"leadstyle/internal/app"
	"leadstyle/internal/config"
	"leadstyle/internal/model"
)

// seed registers a demo respondent who answers "A" to every question
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
	defer application.Close(context.Background())

	svc := application.AssessmentService
	reg, err := svc.Register(ctx, &model.RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     "test@example.com",
	})
	if err != nil {
		log.Fatalf("Failed to register respondent: %v", err)
	}

	var last *model.SubmitAnswerResponse
	for _, q := range application.Instrument.Questions() {
		last, err = svc.SubmitAnswer(ctx, reg.RespondentID, &model.SubmitAnswerRequest{
			QuestionID: q.ID,
			Answer:     string(model.OptionA),
		})
		if err != nil {
			log.Fatalf("Failed to answer question %d: %v", q.ID, err)
		}
	}
	if last == nil || last.Result == nil {
		log.Fatal("Assessment did not complete")
	}

	inst := application.Instrument
	r := last.Result
	fmt.Printf("Seeded respondent %s (%s)\n", reg.RespondentID, "Test User")
	fmt.Printf("  Primary style:   %s\n", inst.StyleName(r.PrimaryStyle))
	fmt.Printf("  Secondary style: %s\n", inst.StyleName(r.SecondaryStyle))
	for _, s := range inst.Styles() {
		fmt.Printf("    %-14s %d\n", s.Name, r.StyleTally[s.Key])
	}
	fmt.Printf("  Adequacy:        %d (%s)\n", r.AdequacyScore, inst.LevelName(r.AdequacyLevel))
	fmt.Printf("  Adaptability:    %s\n", r.Adaptability)
}
