package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"arena-pro/config"
	"arena-pro/di"
	"arena-pro/util"
)

// seedVenues loads fixture venues into the store so a dev instance has
// something to serve.
func seedVenues(ctx context.Context, container *di.Container, path string) {
	venues, err := util.ReadVenuesFromJSON(path)
	if err != nil {
		log.Printf("[MAIN] Failed to read seed venues from %s: %v", path, err)
		return
	}
	for _, v := range venues {
		if err := container.VenueService.UpsertVenue(ctx, v); err != nil {
			log.Printf("[MAIN] Failed to seed venue %s: %v", v.VenueID, err)
		}
	}
	log.Printf("[MAIN] Seeded %d venues from %s", len(venues), path)
}

func main() {
	settings := config.Load()
	if err := settings.Validate(); err != nil {
		log.Fatalf("[MAIN] Invalid configuration: %v", err)
	}
	container := di.NewContainer(settings)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seedPath := settings.SeedVenuesPath
	if seedPath == "" && !settings.IsProd() {
		seedPath = config.GetResourcePath(config.VENUES_RESOURCE)
	}
	if seedPath != "" {
		seedVenues(ctx, container, seedPath)
	}

	if _, err := container.CalendarJanitorService.PrunePastDates(ctx); err != nil {
		log.Printf("[MAIN] Initial calendar prune failed: %v", err)
	}
	container.CalendarJanitorService.StartPeriodicJob(ctx, settings.JanitorInterval)

	if err := container.ArenaHttpServer.Start(ctx, settings.ShutdownTimeout); err != nil {
		log.Fatalf("[MAIN] Server error: %v", err)
	}
}
