package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/festhub/eventhub/internal/config"
	"github.com/festhub/eventhub/internal/repository/postgres"
	"github.com/festhub/eventhub/migrations"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Connect to database
	db, err := postgres.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Printf("Connected to %s database successfully\n", cfg.Database.Driver)

	migrationsFS, err := migrations.ForDriver(cfg.Database.Driver)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	switch command {
	case "up":
		applied, err := postgres.RunMigrations(db, migrationsFS)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Migration failed after %d applied: %v\n", applied, err)
			os.Exit(1)
		}
		if applied == 0 {
			fmt.Println("Database is up to date")
			return
		}
		fmt.Printf("Applied %d migration(s)\n", applied)

	case "status":
		status, err := postgres.MigrationStatus(db, migrationsFS)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read migration status: %v\n", err)
			os.Exit(1)
		}
		names := make([]string, 0, len(status))
		for name := range status {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			state := "pending"
			if status[name] {
				state = "applied"
			}
			fmt.Printf("%-40s %s\n", name, state)
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q (use up or status)\n", command)
		os.Exit(2)
	}
}
