package main

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// NotifierService pushes run summaries to the admin Telegram chat. Without a
// token it is a no-op, notifications are strictly optional.
type NotifierService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewNotifierService(apiKey string, chatID int64) *NotifierService {
	if apiKey == "" || chatID == 0 {
		return &NotifierService{}
	}

	bot, err := tgbotapi.NewBotAPI(apiKey)
	if err != nil {
		log.Printf("telegram bot init failed, notifications disabled: %s", err)
		return &NotifierService{}
	}

	return &NotifierService{bot: bot, chatID: chatID}
}

func (n *NotifierService) Enabled() bool {
	return n.bot != nil
}

func (n *NotifierService) SendMessage(text string) {
	if !n.Enabled() {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("telegram send failed: %s", err)
	}
}

func (n *NotifierService) SendMonitorSummary(stats MonitorStats) {
	if !n.Enabled() {
		return
	}

	n.SendMessage(fmt.Sprintf(
		"📊 Monitor run finished\nAccounts: %d\nTweets: %d\nStage 1 filtered: %d\nStage 2 filtered: %d\nSaved: %d\nErrors: %d",
		stats.AccountsChecked, stats.TweetsFound, stats.FilteredStage1,
		stats.FilteredStage2, stats.PromptsSaved, stats.Errors))
}
