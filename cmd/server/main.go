package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"bsk-backend/internal/config"
	"bsk-backend/internal/database"
	"bsk-backend/internal/handlers"
	customMiddleware "bsk-backend/internal/middleware"
	"bsk-backend/internal/mailer"
	"bsk-backend/internal/notify"
	"bsk-backend/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	blobs, err := newBlobStore(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s store: %v", cfg.StoreBackend, err)
	}

	transport := newTransport(cfg)
	dispatcher := mailer.NewDispatcher(transport, cfg.MailTimeout)
	notifier := notify.NewLogNotifier(nil)

	// Initialize handlers
	relayHandler := handlers.NewRelayHandler(dispatcher, cfg.FromEmail)
	sessionHandler := handlers.NewSessionHandler(blobs, notifier)

	// Setup chi router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"bsk-backend"}`))
	})

	// Code relay answers every method itself, including preflight.
	r.HandleFunc("/send-code", relayHandler.SendCode)

	// Session API (scoped to the client cookie)
	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowOriginFunc:  func(r *http.Request, origin string) bool { return true },
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		r.Use(customMiddleware.ClientScope(cfg.ClientSecret))

		r.Mount("/session", sessionHandler.Routes())
	})

	log.Printf("🚀 bsk backend starting on port %s (store: %s, mail: %s)", cfg.Port, cfg.StoreBackend, cfg.MailTransport)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

func newBlobStore(cfg *config.Config) (repository.BlobStore, error) {
	switch cfg.StoreBackend {
	case config.StoreMongo:
		db, err := database.ConnectMongo(cfg.MongoURI, cfg.DBName)
		if err != nil {
			return nil, err
		}
		repo := repository.NewMongoBlobRepo(db)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Printf("⚠️  Warning: failed to create storage indexes: %v", err)
		}
		return repo, nil
	case config.StoreRedis:
		client, err := database.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return repository.NewRedisBlobRepo(client), nil
	default:
		log.Println("⚠️  Using in-memory store, records are lost on restart")
		return repository.NewMemoryBlobRepo(), nil
	}
}

func newTransport(cfg *config.Config) mailer.Transport {
	switch cfg.MailTransport {
	case config.MailResend:
		return mailer.NewResendTransport(cfg.ResendAPIKey)
	case config.MailSendGrid:
		return mailer.NewSendGridTransport(cfg.SendGridAPIKey)
	case config.MailSMTP:
		return mailer.NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	default:
		log.Println("⚠️  MAIL_TRANSPORT=log, verification codes are only logged")
		return mailer.NewLogTransport(nil)
	}
}
