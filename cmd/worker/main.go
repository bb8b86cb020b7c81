package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"worktrack/internal/analytics"
	"worktrack/internal/attendance"
	"worktrack/internal/config"
	"worktrack/internal/queue"
	"worktrack/internal/store"
)

// Worker consumes attendance events to keep a per-day presence counter in
// Redis, and periodically re-warms the current month's report caches so the
// first dashboard hit after expiry stays fast.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var events queue.Queue
	if cfg.QueueBackend == "memory" {
		events = queue.NewInMemory(64)
	} else {
		events = queue.NewRedisQueue(redisClient.Client, "worktrack:events")
	}

	reports := analytics.NewService(
		analytics.NewRepository(db.Client),
		analytics.NewCache(redisClient.Client, cfg.CacheTTL),
	)

	messages, err := events.Consume(ctx)
	if err != nil {
		log.Fatalf("event consume init failed: %v", err)
	}

	warm := time.NewTicker(cfg.WarmInterval)
	defer warm.Stop()
	warmReports(ctx, reports)

	log.Println("worker started, waiting for events...")
	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				log.Println("worker stopped")
				return
			}
			handleEvent(ctx, redisClient, msg)
		case <-warm.C:
			warmReports(ctx, reports)
		case <-ctx.Done():
			log.Println("worker stopped")
			return
		}
	}
}

// handleEvent tracks how many users are currently checked in per day.
func handleEvent(ctx context.Context, r *store.Redis, msg queue.Message) {
	day := time.Now().UTC().Format(attendance.DateLayout)
	key := "worktrack:presence:" + day

	var err error
	switch msg.Type {
	case queue.TypeCheckIn:
		err = r.Client.Incr(ctx, key).Err()
	case queue.TypeCheckOut:
		err = r.Client.Decr(ctx, key).Err()
	default:
		return
	}
	if err != nil {
		log.Printf("presence update failed for %s: %v", key, err)
		return
	}
	// counters only matter for the day itself; let stale ones age out
	_ = r.Client.Expire(ctx, key, 48*time.Hour).Err()
}

// warmReports refreshes the month-scoped report caches.
func warmReports(ctx context.Context, reports *analytics.Service) {
	now := time.Now().UTC()
	month, year := int(now.Month()), now.Year()

	if _, err := reports.TopProducts(ctx, month, year); err != nil {
		log.Printf("top products warm failed: %v", err)
	}
	if _, err := reports.MonthlySales(ctx, month, year); err != nil {
		log.Printf("monthly sales warm failed: %v", err)
	}
}
