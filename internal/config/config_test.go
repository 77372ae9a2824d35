package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("TRAIN_HOUR_UTC", "")
	t.Setenv("TRAIN_LAMBDA", "")
	t.Setenv("TRAIN_SCREEN_SCORE", "")

	cfg := Load()
	if cfg.RedisURL != "localhost:6379" {
		t.Fatalf("expected default redis url, got %s", cfg.RedisURL)
	}
	if cfg.TrainHourUTC != 2 {
		t.Fatalf("expected default train hour 2, got %d", cfg.TrainHourUTC)
	}
	if cfg.Lambda != 0.0001 {
		t.Fatalf("expected default lambda 0.0001, got %v", cfg.Lambda)
	}
	if cfg.ScreenScore != 0 {
		t.Fatalf("expected screening disabled by default, got %v", cfg.ScreenScore)
	}
	if cfg.TrainingEnabled {
		t.Fatal("training should be disabled by default")
	}
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis:6379")
	t.Setenv("TRAINING_ENABLED", "TRUE")
	t.Setenv("TRAIN_HOUR_UTC", "23")
	t.Setenv("TRAIN_LAMBDA", "0.5")
	t.Setenv("TRAIN_STEP_SIZE", "0.1")
	t.Setenv("TRAIN_EPOCHS", "80")
	t.Setenv("TRAIN_SCREEN_SCORE", "0.65")

	cfg := Load()
	if cfg.TelegramBotToken != "token" || cfg.DatabaseURL != "postgres://example" || cfg.RedisURL != "redis:6379" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.TrainingEnabled || cfg.TrainHourUTC != 23 || cfg.Epochs != 80 {
		t.Fatalf("unexpected training config: %+v", cfg)
	}
	if cfg.Lambda != 0.5 || cfg.StepSize != 0.1 || cfg.ScreenScore != 0.65 {
		t.Fatalf("unexpected hyperparameters: %+v", cfg)
	}

	t.Setenv("TRAIN_HOUR_UTC", "99")
	t.Setenv("TRAIN_LAMBDA", "-1")
	cfg = Load()
	if cfg.TrainHourUTC != 2 {
		t.Fatalf("invalid hour should fall back to default, got %d", cfg.TrainHourUTC)
	}
	if cfg.Lambda != 0.0001 {
		t.Fatalf("negative lambda should fall back to default, got %v", cfg.Lambda)
	}
}
