// Package server wires configuration, storage, and the web server for the
// LinguaHub process.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/linguahub/linguahub/internal/platform/config"
	"github.com/linguahub/linguahub/internal/seed"
	"github.com/linguahub/linguahub/internal/storage"
	"github.com/linguahub/linguahub/internal/storage/memory"
	storemongo "github.com/linguahub/linguahub/internal/storage/mongo"
	"github.com/linguahub/linguahub/internal/web"
)

// Store backends selectable at startup.
const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Config holds the server command configuration.
type Config struct {
	HTTPAddr      string        `env:"LINGUAHUB_HTTP_ADDR" envDefault:"localhost:8080"`
	AppName       string        `env:"LINGUAHUB_APP_NAME" envDefault:"LinguaHub"`
	MongoURI      string        `env:"LINGUAHUB_MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string        `env:"LINGUAHUB_MONGO_DBNAME" envDefault:"linguahub"`
	StoreBackend  string        `env:"LINGUAHUB_STORE" envDefault:"mongo"`
	SessionTTL    time.Duration `env:"LINGUAHUB_SESSION_TTL" envDefault:"24h"`
	SecureCookies bool          `env:"LINGUAHUB_SECURE_COOKIES" envDefault:"false"`
}

// ParseConfig reads configuration from the environment, with flag overrides.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.MongoURI, "mongo-uri", cfg.MongoURI, "MongoDB connection string")
	fs.StringVar(&cfg.MongoDatabase, "mongo-db", cfg.MongoDatabase, "MongoDB database name")
	fs.StringVar(&cfg.StoreBackend, "store", cfg.StoreBackend, "store backend (mongo or memory)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "login session lifetime")
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", cfg.SecureCookies, "mark session cookies Secure")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens the configured store and serves HTTP until ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	server, err := web.NewServer(web.Config{
		HTTPAddr:      cfg.HTTPAddr,
		AppName:       cfg.AppName,
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.SecureCookies,
	}, web.Stores{Users: store, Projects: store, Reference: store})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	log.Printf("listening on %s (%s store)", cfg.HTTPAddr, cfg.StoreBackend)
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

// openStore selects the storage backend. The memory backend is for demos
// and local development; it starts pre-seeded so the project forms have
// reference-data choices.
func openStore(ctx context.Context, cfg Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case BackendMongo:
		store, err := storemongo.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("open mongo store: %w", err)
		}
		return store, nil
	case BackendMemory:
		store := memory.New()
		if err := seed.Apply(ctx, store, seed.Defaults()); err != nil {
			return nil, fmt.Errorf("seed memory store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
