package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/promptscout/worker/harvester"
	"github.com/promptscout/worker/llmchain"
	"github.com/promptscout/worker/twitterfetch"
	"github.com/promptscout/worker/twitterreverse"
	"go.uber.org/dig"
)

type Config struct {
	DatabaseURL         string
	AIModel             string
	GiteeAPIKey         string
	NvidiaAPIKey        string
	XCookie             string
	ProxyDSN            string
	TelegramAPIKey      string
	TelegramAdminChatID int64
	GmailEmail          string
	GmailPassword       string
	GmailSenderFilter   string
	GmailMailbox        string
	Accounts            string
}

func ProvideConfig() (*Config, error) {
	databaseURL := os.Getenv(harvester.ENV_DATABASE_URL)
	if databaseURL == "" {
		return nil, fmt.Errorf("database url should be set in .env: %s", harvester.ENV_DATABASE_URL)
	}

	aiModel := os.Getenv(harvester.ENV_AI_MODEL)
	if aiModel == "" {
		aiModel = llmchain.DEFAULT_MODEL
	}

	gmailMailbox := os.Getenv(harvester.ENV_GMAIL_MAILBOX)
	if gmailMailbox == "" {
		gmailMailbox = "INBOX"
	}

	chatID, _ := strconv.ParseInt(os.Getenv(harvester.ENV_TELEGRAM_ADMIN_CHAT_ID), 10, 64)

	return &Config{
		DatabaseURL:         databaseURL,
		AIModel:             aiModel,
		GiteeAPIKey:         os.Getenv(harvester.ENV_GITEE_AI_API_KEY),
		NvidiaAPIKey:        os.Getenv(harvester.ENV_NVIDIA_API_KEY),
		XCookie:             os.Getenv(harvester.ENV_X_COOKIE),
		ProxyDSN:            os.Getenv(harvester.ENV_X_PROXY),
		TelegramAPIKey:      os.Getenv(harvester.ENV_TELEGRAM_API_KEY),
		TelegramAdminChatID: chatID,
		GmailEmail:          os.Getenv(harvester.ENV_GMAIL_EMAIL),
		GmailPassword:       os.Getenv(harvester.ENV_GMAIL_PASSWORD),
		GmailSenderFilter:   os.Getenv(harvester.ENV_GMAIL_SENDER_FILTER),
		GmailMailbox:        gmailMailbox,
		Accounts:            os.Getenv(harvester.ENV_X_ACCOUNTS),
	}, nil
}

func ProvideChain(config *Config) *llmchain.Chain {
	return llmchain.NewChain(
		llmchain.NewPollinationsProvider(config.AIModel),
		llmchain.NewGiteeProvider(config.GiteeAPIKey),
		llmchain.NewNvidiaProvider(config.NvidiaAPIKey),
	)
}

func ProvideFetcherService(config *Config) *twitterfetch.FetcherService {
	return twitterfetch.NewFetcherService(config.ProxyDSN)
}

func ProvideTimelineService() *twitterfetch.TimelineService {
	return twitterfetch.NewTimelineService()
}

func ProvideTwitterReverseService(config *Config) *twitterreverse.TwitterReverseService {
	auth := twitterreverse.LoadAuth(config.XCookie, harvester.COOKIES_FILE)
	return twitterreverse.NewTwitterReverseService(auth, config.ProxyDSN)
}

func ProvideDatabaseService(config *Config) (*harvester.DatabaseService, error) {
	return harvester.NewDatabaseService(config.DatabaseURL)
}

func ProvideExtractorService(chain *llmchain.Chain) *harvester.ExtractorService {
	return harvester.NewExtractorService(chain)
}

func ProvideClassifierService(chain *llmchain.Chain) *harvester.ClassifierService {
	return harvester.NewClassifierService(chain)
}

func ProvideImporterService(db *harvester.DatabaseService, fetcher *twitterfetch.FetcherService, reverse *twitterreverse.TwitterReverseService, extractor *harvester.ExtractorService, classifier *harvester.ClassifierService) *harvester.ImporterService {
	return harvester.NewImporterService(db, fetcher, reverse, extractor, classifier)
}

func ProvideNotifierService(config *Config) *NotifierService {
	return NewNotifierService(config.TelegramAPIKey, config.TelegramAdminChatID)
}

func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	if err := container.Provide(ProvideConfig); err != nil {
		return nil, fmt.Errorf("failed to provide config: %w", err)
	}

	if err := container.Provide(ProvideChain); err != nil {
		return nil, fmt.Errorf("failed to provide AI chain: %w", err)
	}

	if err := container.Provide(ProvideFetcherService); err != nil {
		return nil, fmt.Errorf("failed to provide fetcher service: %w", err)
	}

	if err := container.Provide(ProvideTimelineService); err != nil {
		return nil, fmt.Errorf("failed to provide timeline service: %w", err)
	}

	if err := container.Provide(ProvideTwitterReverseService); err != nil {
		return nil, fmt.Errorf("failed to provide twitter reverse service: %w", err)
	}

	if err := container.Provide(ProvideDatabaseService); err != nil {
		return nil, fmt.Errorf("failed to provide database service: %w", err)
	}

	if err := container.Provide(ProvideExtractorService); err != nil {
		return nil, fmt.Errorf("failed to provide extractor service: %w", err)
	}

	if err := container.Provide(ProvideClassifierService); err != nil {
		return nil, fmt.Errorf("failed to provide classifier service: %w", err)
	}

	if err := container.Provide(ProvideImporterService); err != nil {
		return nil, fmt.Errorf("failed to provide importer service: %w", err)
	}

	if err := container.Provide(ProvideNotifierService); err != nil {
		return nil, fmt.Errorf("failed to provide notifier service: %w", err)
	}

	if err := container.Provide(NewApplication); err != nil {
		return nil, fmt.Errorf("failed to provide application: %w", err)
	}

	return container, nil
}
