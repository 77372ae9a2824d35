package bot

import (
	"strings"
	"testing"
	"time"

	"solid-waffle/internal/domain"
)

func TestStartTelegramBotSkipsWithoutToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	if tb := StartTelegramBot(nil); tb != nil {
		t.Fatal("expected nil bot without token")
	}
}

func TestNotifyPromotionNilReceiver(t *testing.T) {
	var tb *TelegramBot
	tb.NotifyPromotion("logit-sgd", 1, 0.5)
}

func TestFormatModel(t *testing.T) {
	m := &domain.ModelVersion{
		ModelKey:    "logit-sgd",
		Version:     3,
		TrainedFrom: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		TrainedTo:   time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC),
		TrainedAt:   time.Date(2025, 5, 30, 2, 0, 0, 0, time.UTC),
		MetricsJSON: `{"holdout_loss":0.3123,"train_loss":0.29}`,
	}
	got := formatModel(m)
	for _, want := range []string{"logit-sgd v3", "2025-03-01", "2025-05-30", "Holdout loss: 0.3123"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}

func TestFormatModelBadMetrics(t *testing.T) {
	m := &domain.ModelVersion{ModelKey: "logit-sgd", Version: 1, MetricsJSON: "not-json"}
	if got := formatModel(m); !strings.Contains(got, "metrics unavailable") {
		t.Fatalf("expected fallback line, got %q", got)
	}
}

func TestNotifyChatID(t *testing.T) {
	t.Setenv("TELEGRAM_NOTIFY_CHAT_ID", "")
	if id := notifyChatID(); id != 0 {
		t.Fatalf("expected 0 for unset, got %d", id)
	}
	t.Setenv("TELEGRAM_NOTIFY_CHAT_ID", "-100123456")
	if id := notifyChatID(); id != -100123456 {
		t.Fatalf("expected parsed id, got %d", id)
	}
	t.Setenv("TELEGRAM_NOTIFY_CHAT_ID", "abc")
	if id := notifyChatID(); id != 0 {
		t.Fatalf("expected 0 for invalid, got %d", id)
	}
}
