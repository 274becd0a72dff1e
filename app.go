package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/promptscout/worker/harvester"
	"github.com/promptscout/worker/twitterfetch"
)

const MONITOR_STATE_FILE = "x_monitor_state.json"

type RunOptions struct {
	Accounts         []string
	Top              int
	ListAuthors      bool
	TweetsPerAccount int
	IntervalMinutes  int
	ViralOnly        bool
	DryRun           bool
	NoResume         bool
}

// Application is the continuous X account monitor.
type Application struct {
	config          *Config
	databaseService *harvester.DatabaseService
	timelineService *twitterfetch.TimelineService
	fetcherService  *twitterfetch.FetcherService
	importerService *harvester.ImporterService
	notifierService *NotifierService
}

func NewApplication(
	config *Config,
	databaseService *harvester.DatabaseService,
	timelineService *twitterfetch.TimelineService,
	fetcherService *twitterfetch.FetcherService,
	importerService *harvester.ImporterService,
	notifierService *NotifierService,
) (*Application, error) {
	return &Application{
		config:          config,
		databaseService: databaseService,
		timelineService: timelineService,
		fetcherService:  fetcherService,
		importerService: importerService,
		notifierService: notifierService,
	}, nil
}

func (app *Application) Run(opts RunOptions) error {
	if opts.ListAuthors {
		return app.listAuthors()
	}

	accounts, err := app.resolveAccounts(opts)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		return fmt.Errorf("no accounts to monitor")
	}

	if opts.NoResume {
		os.Remove(MONITOR_STATE_FILE)
	}
	checkpoint := harvester.LoadCheckpoint(MONITOR_STATE_FILE)
	log.Printf("Checkpoint loaded: %d processed tweets", checkpoint.Size())

	monitor := NewMonitorService(app.timelineService, app.fetcherService, app.importerService, checkpoint)
	monitor.ViralOnly = opts.ViralOnly
	monitor.DryRun = opts.DryRun

	// Flush the checkpoint on Ctrl-C so a long run is not lost.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nStopped by user")
		if err := checkpoint.Flush(); err != nil {
			log.Printf("checkpoint flush on shutdown failed: %s", err)
		}
		os.Exit(0)
	}()

	if opts.IntervalMinutes <= 0 {
		stats := monitor.MonitorAccounts(accounts, opts.TweetsPerAccount)
		app.notifierService.SendMonitorSummary(stats)
		return checkpoint.Flush()
	}

	log.Printf("Starting continuous monitor (interval: %d min)", opts.IntervalMinutes)
	for {
		stats := monitor.MonitorAccounts(accounts, opts.TweetsPerAccount)
		app.notifierService.SendMonitorSummary(stats)

		log.Printf("Next check in %d minutes...", opts.IntervalMinutes)
		time.Sleep(time.Duration(opts.IntervalMinutes) * time.Minute)
	}
}

func (app *Application) resolveAccounts(opts RunOptions) ([]string, error) {
	if len(opts.Accounts) > 0 {
		return opts.Accounts, nil
	}

	if opts.Top > 0 {
		authors, err := app.databaseService.GetTopAuthors(opts.Top)
		if err != nil {
			return nil, fmt.Errorf("failed to load top authors: %w", err)
		}
		accounts := make([]string, 0, len(authors))
		for _, author := range authors {
			accounts = append(accounts, author.Author)
		}
		log.Printf("Using top %d authors from database", len(accounts))
		return accounts, nil
	}

	if app.config.Accounts != "" {
		var accounts []string
		for _, account := range strings.Split(app.config.Accounts, ",") {
			if trimmed := strings.TrimSpace(account); trimmed != "" {
				accounts = append(accounts, trimmed)
			}
		}
		return accounts, nil
	}

	return DefaultAccounts, nil
}

func (app *Application) listAuthors() error {
	authors, err := app.databaseService.GetTopAuthors(50)
	if err != nil {
		return err
	}

	fmt.Println("Top 50 Authors (from database):")
	fmt.Println(strings.Repeat("=", 50))
	for i, author := range authors {
		fmt.Printf("%3d. @%-25s %5d prompts\n", i+1, author.Author, author.Count)
	}
	return nil
}
