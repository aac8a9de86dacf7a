package cmd

import (
	"context"
	"os"
	"strings"
	"time"

	coreconfig "github.com/AzielCF/az-post/core/config"
	coreDB "github.com/AzielCF/az-post/core/database"
	domainEngine "github.com/AzielCF/az-post/domains/engine"
	domainOwner "github.com/AzielCF/az-post/domains/owner"
	domainPost "github.com/AzielCF/az-post/domains/post"
	domainSchedule "github.com/AzielCF/az-post/domains/schedule"
	domainTopic "github.com/AzielCF/az-post/domains/topic"
	"github.com/AzielCF/az-post/infrastructure/valkey"
	"github.com/AzielCF/az-post/integrations/gemini"
	"github.com/AzielCF/az-post/integrations/imagegen"
	"github.com/AzielCF/az-post/integrations/linkedin"
	"github.com/AzielCF/az-post/integrations/openai"
	"github.com/AzielCF/az-post/pkg/pubworker"
	"github.com/AzielCF/az-post/pkg/utils"
	"github.com/AzielCF/az-post/repository"
	"github.com/AzielCF/az-post/usecase"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Flag overrides, applied on top of the environment in initEnvConfig.
	flagPort      string
	flagDebug     bool
	flagBasicAuth []string
	flagBasePath  string
	flagDBName    string
	flagWorkers   int
	flagQueueSize int

	// Usecase
	engineUsecase   domainEngine.IEngineUsecase
	scheduleUsecase domainSchedule.IScheduleUsecase
	postUsecase     domainPost.IPostUsecase
	topicUsecase    domainTopic.ITopicUsecase
	ownerUsecase    domainOwner.IOwnerUsecase

	publishPool *pubworker.PublishWorkerPool
	vkClient    *valkey.Client
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Short: "Scheduled publishing engine for LinkedIn",
	Long: `Recurring schedules generate AI-written posts for an owner's topics
and publish them to LinkedIn when their occurrence comes due.`,
}

func init() {
	// Load .env before anything reads the environment.
	_ = godotenv.Load()

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()

	cobra.OnInitialize(initEnvConfig, initApp)
}

func initFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&flagPort,
		"port", "p",
		"",
		"change port number with --port <number> | example: --port=8080",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&flagDebug,
		"debug", "d",
		false,
		"hide or displaying log with --debug <true/false> | example: --debug=true",
	)
	rootCmd.PersistentFlags().StringSliceVarP(
		&flagBasicAuth,
		"basic-auth", "b",
		nil,
		"basic auth credential | -b=yourUsername:yourPassword",
	)
	rootCmd.PersistentFlags().StringVarP(
		&flagBasePath,
		"base-path", "",
		"",
		`base path for subpath deployment --base-path <string> | example: --base-path="/azpost"`,
	)
	rootCmd.PersistentFlags().StringVarP(
		&flagDBName,
		"db-name", "",
		"",
		`database file path for sqlite or database name for postgres --db-name <string> | example: --db-name="storages/app.db"`,
	)
	rootCmd.PersistentFlags().IntVarP(
		&flagWorkers,
		"publish-workers", "",
		0,
		`number of concurrent publish workers --publish-workers <number> | example: --publish-workers=16 (default: 8)`,
	)
	rootCmd.PersistentFlags().IntVarP(
		&flagQueueSize,
		"publish-queue-size", "",
		0,
		`queue size per publish worker --publish-queue-size <number> | example: --publish-queue-size=512 (default: 256)`,
	)
}

// initEnvConfig loads configuration from environment variables, then lays
// flag overrides on top.
func initEnvConfig() {
	viper.AutomaticEnv()

	cfg, err := coreconfig.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	if flagPort != "" {
		cfg.App.Port = flagPort
	}
	if flagDebug {
		cfg.App.Debug = true
	}
	if len(flagBasicAuth) > 0 {
		cfg.App.BasicAuth = flagBasicAuth
	}
	if flagBasePath != "" {
		cfg.App.BasePath = flagBasePath
	}
	if flagDBName != "" {
		cfg.Database.Name = flagDBName
	}
	if flagWorkers > 0 {
		cfg.Workers.Size = flagWorkers
	}
	if flagQueueSize > 0 {
		cfg.Workers.QueueSize = flagQueueSize
	}

	if envBasicAuth := viper.GetString("app_basic_auth"); envBasicAuth != "" && len(cfg.App.BasicAuth) == 0 {
		cfg.App.BasicAuth = strings.Split(envBasicAuth, ",")
	}
}

func initApp() {
	cfg := coreconfig.Global

	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := utils.CreateFolder(cfg.Paths.Storages); err != nil {
		logrus.Errorln(err)
	}

	ctx := context.Background()

	db, err := coreDB.NewDatabase(cfg)
	if err != nil {
		logrus.Fatalf("failed to open database: %v", err)
	}
	if err := repository.Init(ctx, db); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	ownerRepo := repository.NewOwnerGormRepository(db)
	topicRepo := repository.NewTopicGormRepository(db)
	scheduleRepo := repository.NewScheduleGormRepository(db)
	postRepo := repository.NewPostGormRepository(db)

	// Cross-process lock when Valkey is configured, in-process otherwise.
	acquireLock := usecase.NewLocalLocker()
	if cfg.Database.ValkeyEnabled {
		vkClient, err = valkey.NewClient(valkey.Config{
			Address:   cfg.Database.ValkeyAddress,
			Password:  cfg.Database.ValkeyPassword,
			DB:        cfg.Database.ValkeyDB,
			KeyPrefix: cfg.Database.ValkeyKeyPrefix,
		})
		if err != nil {
			logrus.Fatalf("failed to connect to valkey: %v", err)
		}
		acquireLock = func(key string, ttl time.Duration) bool {
			return vkClient.AcquireLock(context.Background(), key, ttl)
		}
	}

	var generator domainEngine.ContentGenerator
	switch cfg.AI.Provider {
	case "openai":
		generator = openai.NewGenerator(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIModel)
	default:
		generator = gemini.NewGenerator(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	}

	publisher := linkedin.NewPublisher(cfg.LinkedIn.APIBase)

	var imageGen domainEngine.ImageGenerator
	if ig := imagegen.NewClient(cfg.ImageGen.WorkerURL, cfg.ImageGen.APIKey); ig.Enabled() {
		imageGen = ig
	}

	publishPool = pubworker.NewPublishWorkerPool(cfg.Workers.Size, cfg.Workers.QueueSize)
	publishPool.Start(ctx)

	engineUsecase = usecase.NewEngineService(usecase.EngineDeps{
		ScheduleRepo:      scheduleRepo,
		PostRepo:          postRepo,
		OwnerRepo:         ownerRepo,
		TopicRepo:         topicRepo,
		Generator:         generator,
		Publisher:         publisher,
		ImageGen:          imageGen,
		Pool:              publishPool,
		AcquireLock:       acquireLock,
		Window:            time.Duration(cfg.Scheduler.WindowMinutes) * time.Minute,
		GenerationTimeout: cfg.Scheduler.GenerationTimeout,
		PublishTimeout:    cfg.Scheduler.PublishTimeout,
	})

	ownerUsecase = usecase.NewOwnerService(ownerRepo)
	topicUsecase = usecase.NewTopicService(topicRepo, ownerRepo)
	scheduleUsecase = usecase.NewScheduleService(scheduleRepo, topicRepo, ownerRepo, postRepo, generator, imageGen, cfg.Scheduler.GenerationTimeout)
	postUsecase = usecase.NewPostService(postRepo, ownerRepo, topicRepo, generator, publisher, imageGen, cfg.Scheduler.GenerationTimeout, cfg.Scheduler.PublishTimeout)

	// Scheduling pass loop. Every tick evaluates active schedules against
	// the firing window; lastFiredAt keeps repeated passes idempotent.
	go func() {
		ticker := time.NewTicker(cfg.Scheduler.TriggerInterval)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := engineUsecase.RunPass(context.Background(), time.Now().UTC()); err != nil {
				logrus.WithError(err).Error("[SCHEDULER] Failed to run scheduling pass")
			}
		}
	}()
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// StopApp performs a clean shutdown of the worker pool and connections.
func StopApp() {
	logrus.Info("[APP] Stopping application...")

	if publishPool != nil {
		publishPool.Stop()
	}
	if vkClient != nil {
		vkClient.Close()
	}

	logrus.Info("[APP] Application stopped cleanly.")
}
