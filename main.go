package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
)

func main() {
	configFile := flag.String("config", ".env", "Configuration file to load (e.g., .env, .dev.env)")
	accountsFlag := flag.String("accounts", "", "Comma-separated account list to monitor")
	top := flag.Int("top", 0, "Monitor top N authors from the database")
	listAuthors := flag.Bool("list-authors", false, "List top authors from the database and exit")
	limit := flag.Int("limit", 10, "Tweets per account")
	interval := flag.Int("interval", 0, "Continuous mode interval in minutes (0 = run once)")
	viralOnly := flag.Bool("viral-only", false, "Only process viral tweets")
	dryRun := flag.Bool("dry-run", false, "Fetch and process but do not save to the database")
	noResume := flag.Bool("no-resume", false, "Discard the checkpoint and start fresh")
	flag.Parse()

	if *configFile != "" {
		if err := godotenv.Load(*configFile); err != nil {
			log.Printf("Warning: failed to load config file %s: %v", *configFile, err)
			log.Println("Continuing with environment variables...")
		} else {
			log.Printf("Loaded configuration from %s", *configFile)
		}
	}

	container, err := BuildContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to build container: %v", err))
	}

	var accounts []string
	for _, account := range strings.Split(*accountsFlag, ",") {
		if trimmed := strings.TrimSpace(account); trimmed != "" {
			accounts = append(accounts, trimmed)
		}
	}

	err = container.Invoke(func(app *Application) {
		opts := RunOptions{
			Accounts:         accounts,
			Top:              *top,
			ListAuthors:      *listAuthors,
			TweetsPerAccount: *limit,
			IntervalMinutes:  *interval,
			ViralOnly:        *viralOnly,
			DryRun:           *dryRun,
			NoResume:         *noResume,
		}
		if err := app.Run(opts); err != nil {
			panic(fmt.Sprintf("Failed to run application: %v", err))
		}
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to invoke application: %v", err))
	}
}
