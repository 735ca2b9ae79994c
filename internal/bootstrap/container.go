package bootstrap

import (
	"context"
	"fmt"
	"time"

	"insighthub-be/internal/config"
	"insighthub-be/internal/controller"
	"insighthub-be/internal/handler"
	"insighthub-be/internal/pkg/logger"
	"insighthub-be/internal/repository/memory"
	"insighthub-be/internal/repository/unitofwork"
	"insighthub-be/internal/service"
	"insighthub-be/pkg/analytics"
	"insighthub-be/pkg/cluster"
	"insighthub-be/pkg/database"
	"insighthub-be/pkg/embedding"
	"insighthub-be/pkg/extractor"
	"insighthub-be/pkg/ingestion"
	"insighthub-be/pkg/jobs"
	pktNats "insighthub-be/pkg/nats"
	"insighthub-be/pkg/scorecard"
	"insighthub-be/pkg/sentiment"
	"insighthub-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	Logger     logger.ILogger
	UowFactory unitofwork.RepositoryFactory

	// Services
	WorkspaceService service.IWorkspaceService
	SourceService    service.ISourceService
	IngestionService service.IIngestionService
	AnalyticsService service.IAnalyticsService
	ScorecardService service.IScorecardService
	SearchService    service.ISearchService

	// Controllers
	WorkspaceController controller.IWorkspaceController
	SourceController    controller.ISourceController
	InsightController   controller.IInsightController
	ScorecardController controller.IScorecardController

	// Background tasks
	Queue      jobs.Queue
	TaskRouter *jobs.Router

	closers []func()
}

func NewContainer(ctx context.Context, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{Logger: sysLogger}

	// 1. Persistence
	uowFactory, err := c.newRepositoryFactory(cfg)
	if err != nil {
		return nil, err
	}
	c.UowFactory = uowFactory

	// 2. Embeddings
	var inner embedding.EmbeddingProvider
	switch cfg.Embedding.Provider {
	case "hash":
		inner = embedding.NewHashProvider()
	case "ollama":
		inner = embedding.NewOllamaProvider(cfg.Embedding.OllamaBaseURL, cfg.Embedding.OllamaModel)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
	sysLogger.Info("BOOTSTRAP", "Embedding provider selected", map[string]interface{}{
		"provider": cfg.Embedding.Provider,
		"model":    cfg.Embedding.OllamaModel,
	})
	embeddingProvider := embedding.NewCachedProvider(inner, c.newRedisClient(ctx, cfg), cfg.Embedding.CacheTTL, sysLogger)

	// 3. File storage and extractors
	files, err := c.newFileStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	extractors := extractor.NewRegistry().
		Register(extractor.KindURL, extractor.NewURLExtractor(cfg.Ingestion.URLFetchTimeout)).
		Register(extractor.KindNote, extractor.NoteExtractor{}).
		Register(extractor.KindPDF, extractor.NewPDFExtractor(files)).
		Register(extractor.KindCSV, extractor.NewCSVExtractor(files))

	// 4. Engines
	analyzer := sentiment.NewAnalyzer()
	pipeline := ingestion.NewPipeline(extractors, embeddingProvider, ingestion.Config{
		ChunkSize:    cfg.Ingestion.ChunkSize,
		ChunkOverlap: cfg.Ingestion.ChunkOverlap,
	}, sysLogger)
	analyticsEngine := analytics.NewEngine(analyzer, analytics.DefaultClaims, sysLogger)
	themeExtractor := analytics.NewThemeExtractor(cluster.DefaultSeed, sysLogger)
	scorecardEngine := scorecard.NewEngine(analyzer, sysLogger)

	// 5. Services
	c.WorkspaceService = service.NewWorkspaceService(uowFactory)
	c.SourceService = service.NewSourceService(uowFactory, files)
	c.IngestionService = service.NewIngestionService(uowFactory, pipeline, cfg.Ingestion.StaleAfter, sysLogger)
	c.AnalyticsService = service.NewAnalyticsService(uowFactory, analyticsEngine, themeExtractor, sysLogger)
	c.ScorecardService = service.NewScorecardService(uowFactory, scorecardEngine, sysLogger)
	c.SearchService = service.NewSearchService(uowFactory, embeddingProvider, sysLogger)

	// 6. Task transport
	queue, err := c.newQueue(cfg)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Queue = queue
	c.TaskRouter = jobs.NewRouter(sysLogger)
	handler.NewTaskHandler(c.IngestionService, c.AnalyticsService, c.ScorecardService).Register(c.TaskRouter)

	// 7. Controllers
	c.WorkspaceController = controller.NewWorkspaceController(c.WorkspaceService, c.SourceService, queue)
	c.SourceController = controller.NewSourceController(c.SourceService, queue)
	c.InsightController = controller.NewInsightController(c.AnalyticsService, c.SearchService, queue)
	c.ScorecardController = controller.NewScorecardController(c.ScorecardService, queue)

	return c, nil
}

// StartConsumer attaches the task router to the queue.
func (c *Container) StartConsumer(ctx context.Context) error {
	return c.Queue.Consume(ctx, c.TaskRouter)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

func (c *Container) newRepositoryFactory(cfg *config.Config) (unitofwork.RepositoryFactory, error) {
	if cfg.UseMemoryStore() {
		c.Logger.Warn("BOOTSTRAP", "Using in-memory store, data is lost on exit", nil)
		return memory.NewStore(), nil
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		c.closers = append(c.closers, func() { _ = sqlDB.Close() })
	}
	return unitofwork.NewRepositoryFactory(db), nil
}

// newRedisClient returns nil when the shared cache is disabled or unreachable.
func (c *Container) newRedisClient(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.Embedding.RedisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(cfg.Embedding.RedisURL)
	if err != nil {
		c.Logger.Warn("BOOTSTRAP", "Invalid REDIS_URL, shared embedding cache disabled", map[string]interface{}{"error": err.Error()})
		return nil
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		c.Logger.Warn("BOOTSTRAP", "Redis unreachable, shared embedding cache disabled", map[string]interface{}{"error": err.Error()})
		_ = client.Close()
		return nil
	}
	c.closers = append(c.closers, func() { _ = client.Close() })
	return client
}

func (c *Container) newFileStore(ctx context.Context, cfg *config.Config) (storage.FileStore, error) {
	local := storage.NewLocalStore(cfg.Storage.UploadDir)
	if cfg.Storage.S3Bucket == "" {
		return storage.NewRouter(local, nil), nil
	}

	s3, err := storage.NewS3Store(ctx, storage.S3Config{
		Bucket:    cfg.Storage.S3Bucket,
		Region:    cfg.Storage.AwsRegion,
		AccessKey: cfg.Storage.AwsKey,
		SecretKey: cfg.Storage.AwsSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 storage: %w", err)
	}
	return storage.NewRouter(local, s3), nil
}

func (c *Container) newQueue(cfg *config.Config) (jobs.Queue, error) {
	switch cfg.Tasks.Transport {
	case "gochannel":
		pubSub := gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 256},
			watermill.NewStdLogger(false, false),
		)
		c.closers = append(c.closers, func() { _ = pubSub.Close() })
		return jobs.NewChannelQueue(pubSub, cfg.Tasks.Topic, c.Logger), nil
	case "nats":
		streamCfg := pktNats.StreamConfig{
			URL:    cfg.Tasks.NatsURL,
			Stream: cfg.Tasks.Stream,
			Topic:  cfg.Tasks.Topic,
		}
		pub, err := pktNats.NewPublisher(streamCfg, c.Logger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, pub.Close)

		sub, err := pktNats.NewSubscriber(streamCfg, c.Logger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, sub.Close)
		return jobs.NewNATSQueue(pub, sub, cfg.Tasks.Topic, cfg.Tasks.Durable), nil
	default:
		return nil, fmt.Errorf("unknown task transport %q", cfg.Tasks.Transport)
	}
}
