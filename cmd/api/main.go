package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"medverify/internal/config"
	"medverify/internal/infra/classifier"
	"medverify/internal/infra/explainer"
	"medverify/internal/infra/extractor"
	"medverify/internal/infra/factcheck"
	"medverify/internal/infra/langdetect"
	"medverify/internal/infra/newsfeed"
	"medverify/internal/infra/nlp"
	"medverify/internal/infra/translator"
	"medverify/internal/observability/logging"
	newsUC "medverify/internal/usecase/news"
	"medverify/internal/usecase/sourcecheck"
	"medverify/internal/usecase/textproc"
	verifyUC "medverify/internal/usecase/verify"

	hhttp "medverify/internal/handler/http"
	"medverify/internal/handler/http/middleware"
	hnews "medverify/internal/handler/http/news"
	"medverify/internal/handler/http/requestid"
	"medverify/internal/handler/http/respond"
	htextops "medverify/internal/handler/http/textops"
	hverify "medverify/internal/handler/http/verify"
)

// newsWarmLimit is the article count the background warmer requests,
// matching the API's default page size so user requests hit the cache.
const newsWarmLimit = 10

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	serverCfg := config.LoadServerConfigFromEnv()
	if err := serverCfg.Validate(); err != nil {
		logger.Error("invalid server configuration", slog.Any("error", err))
		os.Exit(1)
	}
	respond.SetDebug(serverCfg.Debug)

	providers := config.LoadProvidersFromEnv()
	logProviderStatus(logger, providers)

	feeds, err := config.LoadFeedsConfig()
	if err != nil {
		logger.Error("invalid feeds configuration", slog.Any("error", err))
		os.Exit(1)
	}

	textSvc, verifySvc := buildPipeline(logger, providers)
	newsSvc := buildNews(feeds)

	handler := applyMiddleware(logger, serverCfg, setupRoutes(serverCfg, providers, verifySvc, newsSvc, textSvc))

	runServer(logger, serverCfg, handler, newsSvc)
}

// logProviderStatus reports which external providers are configured.
// Missing providers are expected in development; the pipeline degrades.
func logProviderStatus(logger *slog.Logger, providers config.ProvidersConfig) {
	logger.Info("provider configuration",
		slog.Bool("classifier", providers.HasClassifier()),
		slog.Bool("openai", providers.HasOpenAI()),
		slog.Bool("claude", providers.HasClaude()),
		slog.Bool("factcheck", providers.HasFactCheck()),
		slog.Bool("translate", providers.HasTranslate()))
}

// buildPipeline wires the text processing facade and the verification
// pipeline from the configured providers.
func buildPipeline(logger *slog.Logger, providers config.ProvidersConfig) (*textproc.Service, *verifyUC.Service) {
	extractorCfg, err := extractor.LoadConfigFromEnv()
	if err != nil {
		logger.Error("invalid article fetch configuration", slog.Any("error", err))
		os.Exit(1)
	}

	preprocessor, err := nlp.NewPreprocessor()
	if err != nil {
		logger.Error("failed to initialize preprocessor", slog.Any("error", err))
		os.Exit(1)
	}

	var tr textproc.Translator
	if providers.HasTranslate() {
		tr = translator.NewGoogleTranslator(providers.TranslateAPIKey)
	} else {
		tr = translator.NewNoop()
	}

	textSvc := textproc.NewService(
		extractor.NewReadabilityExtractor(extractorCfg),
		langdetect.NewLinguaDetector(),
		tr,
		preprocessor,
	)

	var primary, secondary verifyUC.Classifier
	if providers.HasClassifier() {
		primary = classifier.NewHuggingFace(providers.HuggingFaceAPIKey, "")
	}
	if providers.HasOpenAI() {
		secondary = classifier.NewOpenAI(providers.OpenAIAPIKey)
	}

	var factChecker sourcecheck.FactChecker
	if providers.HasFactCheck() {
		factChecker = factcheck.NewGoogle(providers.FactCheckAPIKey)
	}

	var expl verifyUC.Explainer
	switch {
	case providers.HasOpenAI():
		expl = explainer.NewOpenAI(providers.OpenAIAPIKey)
	case providers.HasClaude():
		expl = explainer.NewClaude(providers.AnthropicAPIKey)
	}

	verifySvc := verifyUC.NewService(
		textSvc,
		primary,
		secondary,
		sourcecheck.NewService(factChecker, preprocessor),
		expl,
		explainer.NewTemplate(),
	)

	return textSvc, verifySvc
}

// buildNews wires the news aggregation service from the configured feeds.
func buildNews(feeds config.FeedsConfig) *newsUC.Service {
	fetchers := map[string]newsUC.Fetcher{
		newsUC.SourceWHO:    newsfeed.NewRSSSource("WHO", feeds.WHOFeedURL),
		newsUC.SourceCDC:    newsfeed.NewRSSSource("CDC", feeds.CDCFeedURL),
		newsUC.SourcePubMed: newsfeed.NewPubMed(newsfeed.WithBaseURL(feeds.PubMedBaseURL)),
	}
	return newsUC.NewService(fetchers, newsUC.NewCache(newsUC.DefaultCacheTTL))
}

// setupRoutes registers all HTTP routes.
func setupRoutes(
	serverCfg config.ServerConfig,
	providers config.ProvidersConfig,
	verifySvc *verifyUC.Service,
	newsSvc *newsUC.Service,
	textSvc *textproc.Service,
) *http.ServeMux {
	mux := http.NewServeMux()

	hverify.Register(mux, verifySvc)
	hnews.Register(mux, newsSvc)
	htextops.Register(mux, textSvc)

	mux.Handle("GET /api/health", &hhttp.HealthHandler{
		Version:              serverCfg.Version,
		ClassifierConfigured: providers.HasClassifier(),
		LLMConfigured:        providers.HasOpenAI() || providers.HasClaude(),
		TranslateConfigured:  providers.HasTranslate(),
		FactCheckConfigured:  providers.HasFactCheck(),
	})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{})

	// Everything else is a JSON 404.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): CORS → Request ID → Rate Limit → Recovery →
// Logging → Input Validation → Timeout → Metrics.
func applyMiddleware(logger *slog.Logger, serverCfg config.ServerConfig, handler http.Handler) http.Handler {
	corsConfig := middleware.LoadCORSConfig()
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods))

	rateLimiter := hhttp.NewRateLimiter(serverCfg.RateLimitPerMinute)

	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(serverCfg.RequestTimeout)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = rateLimiter.Limit(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(corsConfig)(chain)

	return chain
}

// runServer starts the HTTP server, the news cache warmer, and handles
// graceful shutdown.
func runServer(logger *slog.Logger, serverCfg config.ServerConfig, handler http.Handler, newsSvc *newsUC.Service) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := startNewsWarmer(ctx, logger, serverCfg, newsSvc)

	addr := fmt.Sprintf(":%d", serverCfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", serverCfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

// startNewsWarmer schedules periodic refreshes of the news cache so
// user requests are served from warm entries. Returns nil when warming
// is disabled.
func startNewsWarmer(ctx context.Context, logger *slog.Logger, serverCfg config.ServerConfig, newsSvc *newsUC.Service) *cron.Cron {
	if serverCfg.NewsWarmInterval <= 0 {
		logger.Info("news cache warming disabled")
		return nil
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc("@every "+serverCfg.NewsWarmInterval.String(), func() {
		newsSvc.Warm(ctx, newsWarmLimit)
	})
	if err != nil {
		logger.Error("failed to schedule news cache warmer", slog.Any("error", err))
		return nil
	}

	scheduler.Start()
	go newsSvc.Warm(ctx, newsWarmLimit)

	logger.Info("news cache warming started",
		slog.Duration("interval", serverCfg.NewsWarmInterval))
	return scheduler
}
