package main

import (
	"context"
	"log"
	"strings"

	"insighthub-be/internal/bootstrap"
	"insighthub-be/internal/config"
	"insighthub-be/internal/dto"
	"insighthub-be/internal/pkg/logger"
)

// Seeds a demo workspace with notes, a review CSV and a scorecard, then runs
// ingestion, analytics and scoring synchronously.
func main() {
	cfg := config.Load()
	if cfg.UseMemoryStore() {
		log.Fatal("Error: seeding needs DB_CONNECTION_STRING; the in-memory store would be discarded on exit")
	}
	cfg.Tasks.Transport = "gochannel"

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	ctx := context.Background()
	c, err := bootstrap.NewContainer(ctx, cfg, sysLogger)
	if err != nil {
		log.Fatal("Error: Failed to bootstrap:", err)
	}
	defer c.Close()

	existing, err := c.WorkspaceService.GetAll(ctx)
	if err != nil {
		log.Fatal("Error: Failed to list workspaces:", err)
	}
	for _, ws := range existing {
		if ws.Name == demoWorkspaceName {
			log.Printf("Workspace '%s' already exists (%s), skipping...", ws.Name, ws.Id)
			return
		}
	}

	log.Println("Seeding demo workspace...")
	ws, err := c.WorkspaceService.Create(ctx, &dto.CreateWorkspaceRequest{Name: demoWorkspaceName})
	if err != nil {
		log.Fatal("Error: Failed to create workspace:", err)
	}

	for _, n := range demoNotes {
		if _, err := c.SourceService.CreateNote(ctx, &dto.CreateNoteSourceRequest{
			WorkspaceId: ws.Id,
			Title:       n.Title,
			Content:     n.Content,
		}); err != nil {
			log.Printf("Error creating note '%s': %v", n.Title, err)
			continue
		}
		log.Printf("Created note: %s", n.Title)
	}

	if _, err := c.SourceService.Upload(ctx, &dto.UploadSourceRequest{
		WorkspaceId: ws.Id,
		Title:       "Demo reviews",
		Filename:    demoReviewsFile,
		File:        strings.NewReader(demoReviews),
	}); err != nil {
		log.Printf("Error uploading reviews: %v", err)
	} else {
		log.Printf("Uploaded reviews: %s", demoReviewsFile)
	}

	summary, err := c.IngestionService.ProcessPendingSources(ctx, ws.Id)
	if err != nil {
		log.Fatal("Error: Ingestion failed:", err)
	}
	log.Printf("Ingested %d sources (%d completed, %d failed)", summary.Total, summary.Completed, summary.Failed)

	run, err := c.AnalyticsService.RunWorkspaceAnalytics(ctx, ws.Id)
	if err != nil {
		log.Fatal("Error: Analytics failed:", err)
	}
	log.Printf("Analytics updated=%t themes=%d", run.Updated, run.Themes)

	factors := make([]dto.ScorecardFactorRequest, 0, len(demoFactors))
	for _, f := range demoFactors {
		factors = append(factors, dto.ScorecardFactorRequest{Name: f.Name, Keywords: f.Keywords, Weight: f.Weight})
	}
	sc, err := c.ScorecardService.Create(ctx, ws.Id, &dto.CreateScorecardRequest{Name: "Brand health", Factors: factors})
	if err != nil {
		log.Fatal("Error: Failed to create scorecard:", err)
	}
	n, err := c.ScorecardService.Calculate(ctx, sc.Id)
	if err != nil {
		log.Fatal("Error: Scorecard failed:", err)
	}
	log.Printf("Scorecard '%s' scored %d brands", sc.Name, n)

	log.Printf("Seeding completed! Workspace id: %s", ws.Id)
}
