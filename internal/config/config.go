package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	TelegramBotToken string
	DatabaseURL      string
	RedisURL         string
	APIKey           string

	TrainingEnabled bool
	TrainHourUTC    int
	TrainWindowDays int
	MinTrainSamples int

	Lambda      float64
	StepSize    float64
	Epochs      int
	ScreenScore float64
}

func Load() *Config {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		APIKey:           os.Getenv("API_KEY"),
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set, bot disabled")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	cfg.TrainingEnabled = strings.EqualFold(strings.TrimSpace(os.Getenv("TRAINING_ENABLED")), "true")

	cfg.TrainHourUTC = 2
	if v := strings.TrimSpace(os.Getenv("TRAIN_HOUR_UTC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 23 {
			cfg.TrainHourUTC = n
		}
	}

	cfg.TrainWindowDays = 90
	if v := strings.TrimSpace(os.Getenv("TRAIN_WINDOW_DAYS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TrainWindowDays = n
		}
	}

	cfg.MinTrainSamples = 200
	if v := strings.TrimSpace(os.Getenv("MIN_TRAIN_SAMPLES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MinTrainSamples = n
		}
	}

	cfg.Lambda = 0.0001
	if v := strings.TrimSpace(os.Getenv("TRAIN_LAMBDA")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.Lambda = f
		}
	}

	cfg.StepSize = 0.05
	if v := strings.TrimSpace(os.Getenv("TRAIN_STEP_SIZE")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.StepSize = f
		}
	}

	cfg.Epochs = 50
	if v := strings.TrimSpace(os.Getenv("TRAIN_EPOCHS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Epochs = n
		}
	}

	cfg.ScreenScore = 0
	if v := strings.TrimSpace(os.Getenv("TRAIN_SCREEN_SCORE")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f < 1 {
			cfg.ScreenScore = f
		}
	}

	return cfg
}
