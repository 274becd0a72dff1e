package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"github.com/promptscout/worker/harvester"
	"github.com/promptscout/worker/llmchain"
	"github.com/promptscout/worker/twitterfetch"
	"github.com/promptscout/worker/twitterreverse"
)

const GMAIL_IMAP_ADDR = "imap.gmail.com:993"

// Grok digest mails pack tweet references as §NB§user1/status/1|user2/status/2§.
var nbBlockPattern = regexp.MustCompile(`(?s)§NB§(.+?)§`)
var tweetURLPattern = regexp.MustCompile(`https?://(?:twitter\.com|x\.com)/\w+/status/\d+`)

func main() {
	configFile := flag.String("config", ".env", "Configuration file to load")
	singleURL := flag.String("url", "", "Process a single tweet URL and exit")
	dryRun := flag.Bool("dry-run", false, "Do not save to the database")
	flag.Parse()

	if *configFile != "" {
		if err := godotenv.Load(*configFile); err != nil {
			log.Printf("Warning: failed to load config file %s: %v", *configFile, err)
		}
	}

	databaseURL := os.Getenv(harvester.ENV_DATABASE_URL)
	if databaseURL == "" {
		log.Fatalf("%s not set", harvester.ENV_DATABASE_URL)
	}

	db, err := harvester.NewDatabaseService(databaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	aiModel := os.Getenv(harvester.ENV_AI_MODEL)
	if aiModel == "" {
		aiModel = llmchain.DEFAULT_MODEL
	}
	chain := llmchain.NewChain(
		llmchain.NewPollinationsProvider(aiModel),
		llmchain.NewGiteeProvider(os.Getenv(harvester.ENV_GITEE_AI_API_KEY)),
		llmchain.NewNvidiaProvider(os.Getenv(harvester.ENV_NVIDIA_API_KEY)),
	)

	proxyDSN := os.Getenv(harvester.ENV_X_PROXY)
	fetcher := twitterfetch.NewFetcherService(proxyDSN)
	auth := twitterreverse.LoadAuth(os.Getenv(harvester.ENV_X_COOKIE), harvester.COOKIES_FILE)
	reverse := twitterreverse.NewTwitterReverseService(auth, proxyDSN)

	importer := harvester.NewImporterService(db, fetcher, reverse,
		harvester.NewExtractorService(chain), harvester.NewClassifierService(chain))

	if *singleURL != "" {
		outcome := importer.ProcessTweetForImport(harvester.ImportRequest{
			TweetURL:     normalizeTweetURL(*singleURL),
			ImportSource: harvester.IMPORT_SOURCE_GMAIL,
			DryRun:       *dryRun,
		})
		fmt.Printf("Result: %s (%s)\n", outcome.Method, outcome.Error)
		return
	}

	gmailEmail := os.Getenv(harvester.ENV_GMAIL_EMAIL)
	gmailPassword := os.Getenv(harvester.ENV_GMAIL_PASSWORD)
	if gmailEmail == "" || gmailPassword == "" {
		log.Fatalf("%s and %s must be set", harvester.ENV_GMAIL_EMAIL, harvester.ENV_GMAIL_PASSWORD)
	}

	senderFilter := os.Getenv(harvester.ENV_GMAIL_SENDER_FILTER)
	if senderFilter == "" {
		senderFilter = "grok"
	}
	mailbox := os.Getenv(harvester.ENV_GMAIL_MAILBOX)
	if mailbox == "" {
		mailbox = "INBOX"
	}

	emails, err := fetchEmails(gmailEmail, gmailPassword, mailbox, senderFilter)
	if err != nil {
		log.Fatalf("gmail: %v", err)
	}
	fmt.Printf("📬 Found %d emails from %q\n", len(emails), senderFilter)

	processed := 0
	saved := 0
	for _, email := range emails {
		if email.MessageID == "" {
			continue
		}

		done, err := db.EmailProcessed(email.MessageID)
		if err != nil {
			log.Printf("email check failed: %v", err)
			continue
		}
		if done {
			continue
		}

		links := ExtractTwitterLinks(email.Body)
		fmt.Printf("\n📧 %s\n   Links: %d\n", email.Subject, len(links))

		imported := 0
		for _, link := range links {
			fmt.Printf("\n🔗 %s\n", link)
			outcome := importer.ProcessTweetForImport(harvester.ImportRequest{
				TweetURL:     link,
				ImportSource: harvester.IMPORT_SOURCE_GMAIL,
				DryRun:       *dryRun,
			})
			if outcome.Success {
				imported++
				saved++
			} else if outcome.Error != "" && outcome.Error != "Already exists" {
				fmt.Printf("   [Skip] %s\n", outcome.Error)
			}
		}

		if !*dryRun {
			record := &harvester.EmailRecordModel{
				MessageID:    email.MessageID,
				Subject:      email.Subject,
				Sender:       email.Sender,
				ReceivedAt:   email.ReceivedAt,
				Body:         email.Body,
				TwitterLinks: pq.StringArray(links),
				Processed:    true,
				Imported:     imported,
			}
			if err := db.SaveEmail(record); err != nil {
				log.Printf("failed to record email %s: %v", email.MessageID, err)
			}
		}
		processed++
	}

	fmt.Printf("\n✅ Processed %d emails, saved %d prompts\n", processed, saved)
}

type emailData struct {
	MessageID  string
	Subject    string
	Sender     string
	ReceivedAt time.Time
	Body       string
}

func fetchEmails(username, password, mailbox, senderFilter string) ([]emailData, error) {
	c, err := client.DialTLS(GMAIL_IMAP_ADDR, nil)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer c.Logout()

	if err := c.Login(username, password); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if _, err := c.Select(mailbox, false); err != nil {
		return nil, fmt.Errorf("select %s: %w", mailbox, err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.Header.Add("From", senderFilter)
	ids, err := c.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(ids...)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}

	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, items, messages)
	}()

	var emails []emailData
	for msg := range messages {
		data := emailData{}
		if msg.Envelope != nil {
			data.MessageID = msg.Envelope.MessageId
			data.Subject = msg.Envelope.Subject
			data.ReceivedAt = msg.Envelope.Date
			if len(msg.Envelope.From) > 0 {
				data.Sender = msg.Envelope.From[0].Address()
			}
		}
		data.Body = readBody(msg.GetBody(section))
		emails = append(emails, data)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	return emails, nil
}

// readBody concatenates the inline text parts of a MIME message.
func readBody(r io.Reader) string {
	if r == nil {
		return ""
	}

	mr, err := mail.CreateReader(r)
	if err != nil {
		return ""
	}

	var body strings.Builder
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		if _, ok := part.Header.(*mail.InlineHeader); ok {
			content, err := io.ReadAll(part.Body)
			if err == nil {
				body.Write(content)
				body.WriteString("\n")
			}
		}
	}

	return body.String()
}

// ExtractTwitterLinks pulls tweet URLs out of an email body: the packed
// §NB§ format first, then plain URLs. Everything is normalized to x.com.
func ExtractTwitterLinks(text string) []string {
	var links []string
	seen := map[string]bool{}

	if match := nbBlockPattern.FindStringSubmatch(text); match != nil {
		for _, item := range strings.Split(strings.TrimSpace(match[1]), "|") {
			item = strings.TrimSpace(item)
			if item == "" || !strings.Contains(item, "/status/") {
				continue
			}
			url := "https://x.com/" + item
			if !seen[url] {
				seen[url] = true
				links = append(links, url)
			}
		}
	}

	for _, url := range tweetURLPattern.FindAllString(text, -1) {
		normalized := normalizeTweetURL(url)
		if !seen[normalized] {
			seen[normalized] = true
			links = append(links, normalized)
		}
	}

	return links
}

func normalizeTweetURL(url string) string {
	return strings.Replace(url, "twitter.com", "x.com", 1)
}
