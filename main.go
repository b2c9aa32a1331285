package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"aicompass/api"
	"aicompass/catalog"
	"aicompass/config"
	"aicompass/coze"
	"aicompass/migrate"
	"aicompass/prefs"
	"aicompass/supabase"
	"aicompass/uploads"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := config.FromEnv()
	if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
		log.Fatal("SUPABASE_URL and SUPABASE_ANON_KEY must be set")
	}

	read := supabase.New(cfg.SupabaseURL, cfg.SupabaseAnonKey)

	deps := api.Deps{
		Tools:      catalog.NewTools(read),
		Categories: catalog.NewCategories(read),
		News:       catalog.NewNews(read),
	}

	// The service-role client powers the write endpoints and the article
	// migration. Without the key those endpoints reject requests.
	if cfg.SupabaseServiceRoleKey != "" {
		admin := supabase.New(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey)
		deps.Admin = admin
		deps.Migrator = migrate.New(admin, cfg.ContentDir)
	} else {
		log.Println("SUPABASE_SERVICE_ROLE_KEY not set; write endpoints disabled")
	}

	if cfg.CozeAPIToken != "" {
		deps.Coze = coze.New(cfg.CozeAPIToken, cfg.CozeAPIBaseURL)
	} else {
		log.Println("COZE_API_TOKEN not set; /api/news and /api/daily disabled")
	}

	if cfg.RedisAddr != "" {
		deps.Prefs = prefs.New(prefs.NewRedisKV(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB))
	}

	if cfg.S3Bucket != "" {
		uploader, err := uploads.New(context.Background(), uploads.Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Profile:       cfg.S3Profile,
			Prefix:        cfg.S3Prefix,
			PublicBaseURL: cfg.S3PublicBaseURL,
			UsePathStyle:  cfg.S3UsePathStyle,
		})
		if err != nil {
			log.Printf("Warning: failed to init S3 client: %v (uploads disabled)", err)
		} else {
			deps.Uploader = uploader
		}
	} else {
		log.Println("S3_BUCKET not set; icon uploads disabled")
	}

	r := api.NewRouter(deps)

	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  GET  /api/news")
	log.Println("  GET  /api/news/saved")
	log.Println("  GET  /api/daily")
	log.Println("  GET  /api/tools")
	log.Println("  GET  /api/tools/random")
	log.Println("  GET  /api/tools/:slug")
	log.Println("  GET  /api/categories")
	log.Println("  POST /api/tools/create")
	log.Println("  POST /api/tools/update")
	log.Println("  POST /api/tools/upload-icon")
	log.Println("  POST /api/migrate-articles")
	log.Println("  GET  /api/search/history")
	log.Println("  GET  /api/favorites")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
