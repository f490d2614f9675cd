// Command seed imports a survey fixture into the configured store.
//
//	seed [file.yaml|file.json]
//
// Without an argument the bundled customer feedback survey is used.
package main

import (
	"context"
	"os"
	"time"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/app"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/config"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/fixture"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/logger"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var survey *model.Survey
	if len(os.Args) > 1 {
		survey, err = fixture.Load(os.Args[1])
	} else {
		survey, err = fixture.Sample()
	}
	if err != nil {
		log.Fatal("failed to read fixture", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to connect", "error", err)
	}
	defer a.Close(ctx)

	doc, err := a.SurveyService.Import(ctx, survey)
	if err != nil {
		log.Fatal("failed to seed survey", "error", err)
	}

	log.Info("seeded survey", "surveyId", doc.ID, "title", doc.Survey.Title, "blocks", len(doc.Survey.Blocks))
}
