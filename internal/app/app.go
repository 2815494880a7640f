// Package app wires configuration, storage, fetching and generation into a
// running engine.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trivance/content-engine/internal/ai"
	"github.com/trivance/content-engine/internal/cache"
	"github.com/trivance/content-engine/internal/config"
	"github.com/trivance/content-engine/internal/enhance"
	"github.com/trivance/content-engine/internal/generator"
	"github.com/trivance/content-engine/internal/logger"
	"github.com/trivance/content-engine/internal/metrics"
	"github.com/trivance/content-engine/internal/ratelimit"
	"github.com/trivance/content-engine/internal/rss"
	"github.com/trivance/content-engine/internal/scheduler"
	"github.com/trivance/content-engine/internal/server"
	"github.com/trivance/content-engine/internal/store"
	"github.com/trivance/content-engine/internal/telegram"
	"github.com/trivance/content-engine/internal/vault"
)

type App struct {
	Config    *config.Config
	server    *server.Server
	scheduler *scheduler.Scheduler

	fetcher   *rss.Fetcher
	feeds     *store.FeedStore
	generator *generator.Generator
	posts     store.PostArchive
	vault     *vault.Vault
	notifier  *telegram.Notifier

	closers []func()
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger.Init(cfg.Debug)

	a := &App{Config: cfg}

	feeds, err := store.NewFeedStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("feed store: %w", err)
	}
	a.feeds = feeds
	a.seedFeeds()

	subscribers, err := store.NewSubscriberStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("subscriber store: %w", err)
	}
	contentVault, err := vault.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("vault: %w", err)
	}
	a.vault = contentVault

	if cfg.DatabaseURL != "" {
		archive, err := store.NewPostgresArchive(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres archive: %w", err)
		}
		a.posts = archive
		a.closers = append(a.closers, func() { archive.Close() })
	} else {
		a.posts = store.NewPostStore(cfg.DataDir)
	}

	a.fetcher = rss.NewFetcher(enhance.New(enhance.Config{
		Enabled:             cfg.EnhancementEnabled,
		MinSummaryLength:    cfg.MinSummaryLength,
		MaxSummaryLength:    cfg.MaxSummaryLength,
		MinEnhancedLength:   cfg.MinEnhancedLength,
		MinEnhancementRatio: cfg.MinEnhancementRatio,
		Timeout:             cfg.ExtractionTimeout,
	}), cfg.ExtractionTimeout)

	a.generator = generator.New(
		generator.Config{
			Enabled:          cfg.EnableAIGeneration,
			Timeout:          cfg.AITimeout,
			MinResponseChars: cfg.MinAIResponseChars,
		},
		a.buildProvider(ctx),
		ratelimit.NewAIRateLimiter(cfg.MaxOpenAIRequests, cfg.MaxGeminiRequests, cfg.MaxAIRequests),
		cache.New(cfg.AICacheTTL),
	)

	a.notifier = telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID)

	a.server = server.New(cfg, feeds, a.fetcher, a.generator, a.posts, contentVault,
		subscribers, a.notifier)
	a.scheduler = scheduler.New(cfg.ScheduleInterval, a.runScheduledGeneration)

	return a, nil
}

// buildProvider picks the external text provider. OpenAI wins when both
// keys are present.
func (a *App) buildProvider(ctx context.Context) ai.TextGenerator {
	cfg := a.Config
	if !cfg.EnableAIGeneration {
		logger.Info("AI generation disabled, running template-only")
		return nil
	}

	if cfg.OpenAIAPIKey != "" {
		logger.Info("Using OpenAI provider", "model", cfg.OpenAIModel)
		return ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	if cfg.GeminiAPIKey != "" {
		client, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Error("Gemini init failed, running template-only", "error", err)
			return nil
		}
		logger.Info("Using Gemini provider")
		a.closers = append(a.closers, client.Close)
		return client
	}
	return nil
}

func (a *App) seedFeeds() {
	seeds, err := rss.LoadSeedFeeds(a.Config.FeedsConfigPath)
	if err != nil {
		logger.Info("No seed feed config loaded", "path", a.Config.FeedsConfigPath, "error", err)
		return
	}
	if err := a.feeds.Seed(seeds); err != nil {
		logger.Error("Failed to merge seed feeds", "error", err)
		return
	}
	logger.Info("Seed feeds merged", "count", len(seeds))
}

// Handler returns the full HTTP route table.
func (a *App) Handler() http.Handler {
	return a.server.Routes()
}

// Start launches background jobs. The HTTP server is started by the caller.
func (a *App) Start(ctx context.Context) {
	a.scheduler.Start(ctx)
}

// Close releases provider connections and the optional database.
func (a *App) Close() {
	for _, fn := range a.closers {
		fn()
	}
}

// runScheduledGeneration is the hands-off posting job: grab the current
// top article, generate with the default style, store and announce it.
func (a *App) runScheduledGeneration(ctx context.Context) {
	logger.Info("Scheduled generation starting")

	top := a.fetcher.TopArticle(a.feeds.All(), a.Config.ArticleLimit, 7)
	if top == nil {
		logger.Info("Scheduled generation found no articles")
		metrics.Global.SetError("scheduled run: no articles")
		return
	}

	article := generator.Article{
		Title:   top.Title,
		Summary: top.Summary,
		Source:  top.Source,
		Link:    top.Link,
	}
	result := a.generator.Generate(ctx, article, generator.DefaultStyle, "linkedin")

	if _, err := a.posts.Save(article.Title, article.Summary, article.Source, article.Link,
		result.Post, result.Method, result.StyleUsed); err != nil {
		logger.Error("Scheduled post save failed", "error", err)
	} else {
		metrics.Global.IncrementPostsSaved()
	}
	if err := a.vault.Record(article.Title, article.Source, article.Link, result); err != nil {
		logger.Error("Scheduled vault record failed", "error", err)
	}
	if err := a.notifier.Notify(ctx, result.Post); err != nil {
		logger.Error("Scheduled announcement failed", "error", err)
	}

	metrics.Global.SetLastRun()
	logger.Info("Scheduled generation done", "method", result.Method, "title", article.Title)
}
