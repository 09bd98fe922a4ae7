package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"messagely/internal/config"
	"messagely/pkg/database"
)

const usage = `
Messagely - Database CLI Tool

Usage:
  migrate [command]

Commands:
  up          Apply all pending migrations
  down        Roll back the most recent migration
  status      Show migration status

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go status
`

func main() {
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	switch command := flag.Arg(0); command {
	case "up":
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations applied")
	case "down":
		if err := database.Rollback(ctx, db); err != nil {
			log.Fatalf("Rollback failed: %v", err)
		}
		log.Println("Rollback complete")
	case "status":
		if err := database.Status(ctx, db); err != nil {
			log.Fatalf("Status failed: %v", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}
