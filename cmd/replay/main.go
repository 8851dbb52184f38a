package main

import (
	"context"
	"log"
	"os"
	"time"

	"dialdish/internal/config"
	"dialdish/internal/db"
	"dialdish/internal/order"
	"dialdish/internal/sink"

	"github.com/joho/godotenv"
)

// Replays archived FAILED orders against the fulfillment webhook. The
// service itself never retries a submission (the call is long gone);
// this is the manual recovery path an operator runs once the endpoint
// is healthy again.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, using environment variables")
	}

	log.Println("🔁 Order replay starting...")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set (replay needs the order archive)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Bad configuration:", err)
	}
	if cfg.WebhookURL == "" {
		log.Fatal("ORDER_WEBHOOK_URL is not set")
	}

	pgDB := db.ConnectPostgres(dbURL)
	defer pgDB.Close()

	archive := order.NewPostgresArchive(pgDB)
	webhook := sink.NewWebhook(cfg.WebhookURL, cfg.SubmitTimeout)

	ctx := context.Background()

	failed, err := archive.ListFailed(ctx, 100)
	if err != nil {
		log.Fatal("Listing failed orders:", err)
	}
	if len(failed) == 0 {
		log.Println("Nothing to replay")
		return
	}

	log.Printf("Replaying %d failed orders", len(failed))

	var recovered int
	for _, rec := range failed {
		submitCtx, cancel := context.WithTimeout(ctx, cfg.SubmitTimeout)
		err := webhook.Submit(submitCtx, rec.Order)
		cancel()

		if err != nil {
			log.Printf("⚠️  Order %s (call %s) still failing: %v", rec.ID, rec.CallID, err)
			continue
		}

		if err := archive.MarkSubmitted(ctx, rec.ID); err != nil {
			log.Printf("⚠️  Order %s submitted but not marked: %v", rec.ID, err)
			continue
		}
		recovered++

		// Be gentle with the endpoint that just came back
		time.Sleep(250 * time.Millisecond)
	}

	log.Printf("✅ Replay done: %d/%d recovered", recovered, len(failed))
}
