package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"solid-waffle/internal/domain"

	tele "gopkg.in/telebot.v3"
)

type ModelReader interface {
	GetActiveModel(ctx context.Context, modelKey string) (*domain.ModelVersion, error)
}

// TelegramBot answers model status queries and announces promotions.
type TelegramBot struct {
	bot    *tele.Bot
	chatID int64
}

func StartTelegramBot(models ModelReader) *TelegramBot {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	tb := &TelegramBot{bot: b, chatID: notifyChatID()}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/model", func(c tele.Context) error {
		args := c.Args()
		key := domain.ModelKeyLogit
		if len(args) > 0 {
			key = strings.TrimSpace(args[0])
		}
		if models == nil {
			return c.Send("Model registry unavailable")
		}
		model, err := models.GetActiveModel(context.Background(), key)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching model %s: %v", key, err))
		}
		if model == nil {
			return c.Send(fmt.Sprintf("No active model for %s", key))
		}
		return c.Send(formatModel(model))
	})

	log.Println("Telegram bot started")
	go b.Start()
	return tb
}

// NotifyPromotion posts a promotion announcement to the configured chat.
// It is a no-op when TELEGRAM_NOTIFY_CHAT_ID is unset.
func (t *TelegramBot) NotifyPromotion(modelKey string, version int, holdoutLoss float64) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	msg := fmt.Sprintf("Model promoted\n%s v%d\nHoldout loss: %.4f", modelKey, version, holdoutLoss)
	if _, err := t.bot.Send(tele.ChatID(t.chatID), msg); err != nil {
		log.Printf("Failed to send promotion notification: %v", err)
	}
}

func formatModel(m *domain.ModelVersion) string {
	var metrics map[string]float64
	line := "metrics unavailable"
	if err := json.Unmarshal([]byte(m.MetricsJSON), &metrics); err == nil {
		if v, ok := metrics["holdout_loss"]; ok {
			line = fmt.Sprintf("Holdout loss: %.4f", v)
		}
	}
	return fmt.Sprintf(
		"%s v%d\nTrained: %s\nWindow: %s to %s\n%s",
		m.ModelKey, m.Version,
		m.TrainedAt.UTC().Format(time.RFC3339),
		m.TrainedFrom.UTC().Format("2006-01-02"),
		m.TrainedTo.UTC().Format("2006-01-02"),
		line,
	)
}

func notifyChatID() int64 {
	raw := strings.TrimSpace(os.Getenv("TELEGRAM_NOTIFY_CHAT_ID"))
	if raw == "" {
		return 0
	}
	var id int64
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil {
		log.Printf("Invalid TELEGRAM_NOTIFY_CHAT_ID %q: %v", raw, err)
		return 0
	}
	return id
}
