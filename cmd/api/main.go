package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"dialdish/internal/auth"
	"dialdish/internal/call"
	"dialdish/internal/catalog"
	"dialdish/internal/config"
	"dialdish/internal/db"
	"dialdish/internal/extract"
	"dialdish/internal/order"
	"dialdish/internal/router"
	"dialdish/internal/session"
	"dialdish/internal/sink"
	"dialdish/internal/storage"

	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	for _, k := range config.Required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Bad configuration:", err)
	}

	// ───────────────────────── CATALOG ─────────────────────────
	store, err := catalog.NewStore(menuLoader(cfg))
	if err != nil {
		log.Fatal("❌ Menu load failed:", err)
	}
	log.Printf("✅ Menu loaded: %d items in %d categories",
		store.Current().Len(), len(store.Current().Categories()))

	// ───────────────────────── ARCHIVE ─────────────────────────
	var archive order.Archive
	if cfg.DatabaseURL != "" {
		pgDB := db.ConnectPostgres(cfg.DatabaseURL)
		defer pgDB.Close()
		archive = order.NewPostgresArchive(pgDB)
	} else {
		log.Println("DATABASE_URL not set, archiving orders in memory only")
		archive = order.NewMemoryArchive()
	}

	// ───────────────────────── CORE SERVICES ─────────────────────────
	extractor := extract.New(extract.DefaultVocabulary())
	assembler := order.NewAssembler(extractor, cfg.TaxRate, cfg.ReadyOffset)
	webhook := sink.NewWebhook(cfg.WebhookURL, cfg.SubmitTimeout)
	sessions := session.NewManager()

	callService := call.NewService(
		sessions,
		store,
		assembler,
		webhook,
		archive,
		cfg.SubmitTimeout,
	)

	authService := auth.NewService(cfg.AdminPasswordHash)

	// ───────────────────────── HANDLERS + ROUTES ─────────────────────────
	r := router.New(router.Handlers{
		Auth:    auth.NewHandler(authService),
		Call:    call.NewHandler(callService),
		Catalog: catalog.NewHandler(store, cfg.RestaurantName),
		Orders:  order.NewHandler(archive),
	})

	// ───────────────────────── START ─────────────────────────
	log.Printf("🚀 %s order line running at %s", cfg.RestaurantName, cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// menuLoader picks the catalog source: an object-storage key when
// configured, the local menu file otherwise.
func menuLoader(cfg *config.Config) func() (*catalog.Catalog, error) {
	if cfg.MenuObjectKey == "" {
		return func() (*catalog.Catalog, error) {
			return catalog.Load(cfg.MenuFile)
		}
	}

	return func() (*catalog.Catalog, error) {
		ctx := context.Background()

		r2, err := storage.NewR2Client(ctx)
		if err != nil {
			return nil, err
		}

		data, err := r2.Download(ctx, cfg.MenuObjectKey)
		if err != nil {
			return nil, err
		}

		format := catalog.FormatJSON
		switch strings.ToLower(filepath.Ext(cfg.MenuObjectKey)) {
		case ".yaml", ".yml":
			format = catalog.FormatYAML
		}
		return catalog.LoadBytes(data, format)
	}
}
