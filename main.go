package main

import (
	"fmt"
	"os"

	"github.com/cwahlfeldt/bulk-post-importer/internal/config"
	"github.com/cwahlfeldt/bulk-post-importer/internal/database"
	"github.com/cwahlfeldt/bulk-post-importer/internal/entrypoint"
	"github.com/cwahlfeldt/bulk-post-importer/internal/staging"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	command := os.Args[1]

	switch command {
	case "purge-staging":
		if err := purgeStaging(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// purgeStaging deletes expired staged uploads and exits. The serve command
// does this on a schedule; this is the manual escape hatch.
func purgeStaging() error {
	cfg := config.NewConfig()

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	store := staging.NewStore(db.DB, cfg.Staging.TTL)
	purged, err := store.PurgeExpired()
	if err != nil {
		return fmt.Errorf("failed to purge staged uploads: %w", err)
	}

	fmt.Printf("Purged %d expired staged upload(s)\n", purged)
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve          Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  purge-staging  Delete expired staged uploads and exit\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
