package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solid-waffle/internal/bot"
	"solid-waffle/internal/cache"
	"solid-waffle/internal/config"
	"solid-waffle/internal/db"
	"solid-waffle/internal/handler"
	"solid-waffle/internal/job"
	"solid-waffle/internal/registry"
	"solid-waffle/internal/trainrows"
	"solid-waffle/internal/training"
	"solid-waffle/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "solid-waffle/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initPostgresFunc       = db.InitPostgres
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	newRegistryFunc        = registry.NewRepository
	newTrainRowsFunc       = trainrows.NewRepository
	newTrainingServiceFunc = training.NewService
	newTrainingJobFunc     = job.NewTrainingJob
	startJobFunc           = func(j *job.TrainingJob, ctx context.Context) { go j.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Solid Waffle API
// @version         1.0
// @description     Logistic regression training and model registry service.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres and Redis
	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Create repositories and run migrations
	modelRegistry := newRegistryFunc(db.Pool, tracer)
	rowRepo := newTrainRowsFunc(db.Pool, tracer)
	if db.Pool != nil {
		if err := rowRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run training row migrations: %v", err)
		}
		if err := modelRegistry.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run model registry migrations: %v", err)
		}
	}

	// Create training service
	trainer := newTrainingServiceFunc(tracer, rowRepo, modelRegistry, training.Config{
		TrainWindowDays: cfg.TrainWindowDays,
		MinTrainSamples: cfg.MinTrainSamples,
		Lambda:          cfg.Lambda,
		StepSize:        cfg.StepSize,
		Epochs:          cfg.Epochs,
		ScreenScore:     cfg.ScreenScore,
	})

	// Start Telegram bot
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	tgBot := startTelegramBotFunc(modelRegistry)

	// Start scheduled training (background goroutine, stopped by ctx cancel)
	if cfg.TrainingEnabled {
		trainJob := newTrainingJobFunc(tracer, trainer, tgBot, cfg.TrainHourUTC)
		startJobFunc(trainJob, ctx)
	} else {
		log.Println("Scheduled training disabled, use POST /api/train to run manually")
	}

	// Create handlers and routes
	h := newHandlerFunc(tracer, trainer, modelRegistry, cache.Client)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("solid-waffle"))

	h.RegisterRoutes(r)
	h.RegisterProtectedRoutes(r.Group("/", handler.APIKeyAuth(cfg.APIKey)))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
