package main

import (
	"context"
	"log"
	"time"

	"eventize/config"
	"eventize/di"
)

func main() {
	cfg := config.Load()
	container, err := di.NewContainer(cfg)
	if err != nil {
		log.Fatalf("[MAIN] Failed to initialize: %v", err)
	}
	defer container.MainQueue.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := container.LocationManager.RequestLocation(ctx); err != nil {
		log.Printf("[MAIN] Could not restore cached location: %v", err)
	}

	log.Println("[MAIN] Refreshing events cache")
	if _, err := container.EventsRefresherService.RefreshEventsData(ctx); err != nil {
		log.Printf("[MAIN] Initial refresh failed: %v", err)
	}
	container.EventsRefresherService.StartPeriodicJob(ctx, time.Duration(cfg.RefresherScheduleMins)*time.Minute)

	container.EventizeHttpServer.Start()
}
