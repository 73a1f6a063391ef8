// Package seed implements the reference-data seeding command.
package seed

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/linguahub/linguahub/internal/platform/config"
	"github.com/linguahub/linguahub/internal/seed"
	storemongo "github.com/linguahub/linguahub/internal/storage/mongo"
)

// Config holds the seed command configuration.
type Config struct {
	MongoURI      string `env:"LINGUAHUB_MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"LINGUAHUB_MONGO_DBNAME" envDefault:"linguahub"`

	Categories string
	Leads      string
	Statuses   string
}

// ParseConfig reads configuration from the environment, with flag overrides.
// The list flags take comma-separated values; empty means the defaults.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.MongoURI, "mongo-uri", cfg.MongoURI, "MongoDB connection string")
	fs.StringVar(&cfg.MongoDatabase, "mongo-db", cfg.MongoDatabase, "MongoDB database name")
	fs.StringVar(&cfg.Categories, "categories", "", "comma-separated category names (default: built-in set)")
	fs.StringVar(&cfg.Leads, "leads", "", "comma-separated project lead names (default: built-in set)")
	fs.StringVar(&cfg.Statuses, "statuses", "", "comma-separated status names (default: built-in set)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run connects to MongoDB and upserts the configured reference data.
func Run(ctx context.Context, cfg Config) error {
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	store, err := storemongo.Open(openCtx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return fmt.Errorf("open mongo store: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	data := cfg.data()
	if err := seed.Apply(ctx, store, data); err != nil {
		return err
	}
	log.Printf("seeded %d categories, %d leads, %d statuses",
		len(data.Categories), len(data.Leads), len(data.Statuses))
	return nil
}

func (c Config) data() seed.Data {
	data := seed.Defaults()
	if names := splitList(c.Categories); len(names) > 0 {
		data.Categories = names
	}
	if names := splitList(c.Leads); len(names) > 0 {
		data.Leads = names
	}
	if names := splitList(c.Statuses); len(names) > 0 {
		data.Statuses = names
	}
	return data
}

func splitList(value string) []string {
	var names []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}
