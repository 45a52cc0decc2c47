// Command seed loads a YAML catalog of branches, menus, dishes and
// ingredients into the database. Entries that already exist are skipped.
//
// Usage:
//
//	seed -catalog catalog.yaml
package main

import (
	"context"
	"flag"
	"os"

	"restaurant/cmd"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/pkg/logging"

	"github.com/labstack/gommon/log"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	path := flag.String("catalog", "catalog.yaml", "path to the YAML catalog")
	flag.Parse()

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, _, err := logging.New(configs.Logging())
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("Error opening catalog: %v", err)
	}
	catalog, err := LoadCatalog(f)
	_ = f.Close()
	if err != nil {
		log.Fatalf("Error reading catalog: %v", err)
	}

	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	ctx := context.Background()
	report, err := NewSeeder(postgres.NewGormUnitOfWorkFactory(gormDB), logger).Seed(ctx, catalog)
	if err != nil {
		log.Fatalf("Error seeding: %v", err)
	}

	logger.InfoContext(ctx, "Seed finished", "inserted", report.Inserted, "skipped", report.Skipped)
}
