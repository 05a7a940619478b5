package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/tanviarora/moodlog-backend/internal/classifier"
	"github.com/tanviarora/moodlog-backend/internal/config"
	"github.com/tanviarora/moodlog-backend/internal/database"
	"github.com/tanviarora/moodlog-backend/internal/handlers"
	"github.com/tanviarora/moodlog-backend/internal/middleware"
	"github.com/tanviarora/moodlog-backend/internal/repo"
	"github.com/tanviarora/moodlog-backend/internal/routes"
	"github.com/tanviarora/moodlog-backend/internal/services"
	"github.com/tanviarora/moodlog-backend/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// Entry encryption is optional; without a key entries are stored as
	// plaintext and old plaintext rows stay readable either way.
	var cipher *utils.Cipher
	if cfg.EncryptionKey == "" {
		log.Println("WARNING: ENCRYPTION_KEY not set, entries will be stored unencrypted")
		log.Println("  Generate one with: openssl rand -base64 32")
	} else {
		var err error
		cipher, err = utils.NewCipher(cfg.EncryptionKey)
		if err != nil {
			log.Fatal("Invalid ENCRYPTION_KEY: ", err)
		}
		log.Println("Entry encryption enabled")
	}

	log.Println("Connecting to PostgreSQL...")
	db, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL: ", err)
	}
	defer db.Close()

	log.Println("Connecting to Redis...")
	redisClient, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis: ", err)
	}
	defer redisClient.Close()

	// The emotion model is a hard startup precondition: without it every
	// analyze request would fail, so refuse to start instead.
	backend := classifier.NewHTTPBackend(cfg.ClassifierURL, cfg.ClassifierTimeout)
	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := backend.Ping(pingCtx); err != nil {
		log.Fatal("Classifier backend unavailable: ", err)
	}
	log.Println("Classifier backend reachable at ", cfg.ClassifierURL)

	sessions := services.NewSessionStore(redisClient)
	users := repo.NewUserRepo(db)
	entries := repo.NewEntryRepo(db)

	authHandler := &handlers.AuthHandler{
		Users:         users,
		Sessions:      sessions,
		SecureCookies: cfg.IsProduction(),
	}
	entryHandler := &handlers.EntryHandler{
		Entries:    entries,
		Classifier: classifier.NewAdapter(backend),
		Cipher:     cipher,
	}
	statsHandler := &handlers.AnalyticsHandler{
		Entries: entries,
		Cipher:  cipher,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(redisClient))

	routes.Setup(r, authHandler, entryHandler, statsHandler, sessions)

	log.Printf("MoodLog backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
