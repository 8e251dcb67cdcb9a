package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"domainbid/internal/config"
	cronrunner "domainbid/internal/cron"
	"domainbid/internal/db"
	"domainbid/internal/feed"
	"domainbid/internal/handler"
	"domainbid/internal/history"
	"domainbid/internal/intel"
	"domainbid/internal/logger"
	"domainbid/internal/pipeline"
	"domainbid/internal/proxy"
	"domainbid/internal/reasoner"
	"domainbid/internal/repository"
	gormrepository "domainbid/internal/repository/gorm"
	"domainbid/internal/rules"
	"domainbid/internal/safety"
	"domainbid/internal/validator"

	_ "domainbid/docs"
)

func main() {
	cfgPath := os.Getenv("BID_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("BID_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// History needs Postgres. Without a DSN the engine still decides, it just
	// cannot record outcomes or learn from them.
	var (
		dbConn *db.DB
		store  repository.Repository
	)
	if cfg.DB.DSN != "" {
		dbConn, err = db.Open(cfg.DB)
		if err != nil {
			logger.Fatal("db open failed", zap.Error(err))
		}
		defer db.Close(dbConn)
		if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
			logger.Warn("failed to set timezone", zap.Error(err))
		}
		if err := db.AutoMigrate(dbConn); err != nil {
			logger.Fatal("auto-migrate failed", zap.Error(err))
		}
		store = gormrepository.New(dbConn.Gorm)
	} else {
		logger.Warn("db.dsn empty, running without history persistence")
	}

	var profiles intel.ProfileSource
	if store != nil {
		profiles = store
	}
	intelSvc := intel.NewService(cfg.Intelligence, profiles, logger)

	// A missing API key means rules-only mode, never a startup failure.
	radapter := reasoner.NewAdapter(nil, logger)
	reasonerOn := false
	if cfg.Reasoner.Enabled && cfg.Reasoner.APIKey != "" {
		client, err := reasoner.NewGeminiClient(context.Background(), cfg.Reasoner)
		if err != nil {
			logger.Warn("reasoner init failed, running rules-only", zap.Error(err))
		} else {
			radapter = reasoner.NewAdapter(client, logger)
			reasonerOn = true
			logger.Info("reasoner enabled", zap.String("model", cfg.Reasoner.Model))
		}
	} else {
		logger.Info("reasoner disabled, running rules-only")
	}

	var (
		recorder  *history.Recorder
		learner   *history.Learner
		statsView *history.StatsView
	)
	if store != nil {
		recorder = &history.Recorder{Store: store, Logger: logger}
		learner = &history.Learner{Store: store, Cfg: cfg.History, Logger: logger}
		statsView = &history.StatsView{Repo: store, Logger: logger}
	}

	var hub *feed.Hub
	if cfg.Feed.Enabled {
		hub = feed.NewHub(cfg.Feed.Buffer, logger)
	}

	eng := &pipeline.Engine{
		Intel:           intelSvc,
		Safety:          &safety.Gate{Logger: logger},
		Reasoner:        radapter,
		Validator:       &validator.Validator{Config: cfg.Validator},
		Rules:           &rules.Selector{},
		Proxy:           &proxy.Calculator{},
		Learner:         learner,
		Logger:          logger,
		Cfg:             cfg.Engine,
		ReasonerTimeout: cfg.Reasoner.Timeout,
	}
	if store != nil {
		eng.Audit = store
	}
	if hub != nil {
		eng.Feed = hub
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(handler.BearerAuth(cfg.Auth.Token))

	healthHandler := &handler.HealthHandler{Intel: intelSvc}
	if dbConn != nil {
		healthHandler.DB = dbConn.Gorm
	}
	healthHandler.Register(router)
	handler.RegisterDocs(router)

	decideHandler := &handler.DecideHandler{Engine: eng, Logger: logger}
	decideHandler.Register(router)
	intelHandler := &handler.IntelHandler{Service: intelSvc}
	intelHandler.Register(router)
	logsHandler := &handler.DecisionLogHandler{Repo: store}
	logsHandler.Register(router)
	outcomeHandler := &handler.OutcomeHandler{Recorder: recorder, Repo: store}
	outcomeHandler.Register(router)
	perfHandler := &handler.PerformanceHandler{Repo: store, Learner: learner}
	perfHandler.Register(router)
	statsHandler := &handler.StatsHandler{
		Engine:     eng,
		History:    statsView,
		Intel:      intelSvc,
		Feed:       hub,
		StartedAt:  time.Now().UTC(),
		ReasonerOn: reasonerOn,
	}
	statsHandler.Register(router)
	streamHandler := &handler.StreamHandler{Hub: hub}
	streamHandler.Register(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// First table load before serving; readiness stays 503 until one succeeds.
	if err := intelSvc.Reload(ctx); err != nil {
		logger.Warn("initial intelligence load failed (continuing)", zap.Error(err))
	} else {
		st := intelSvc.Stats()
		logger.Info("intelligence tables loaded",
			zap.Int("bidders", st.Bidders),
			zap.Int("domains", st.Domains),
			zap.Int("archetypes", st.Archetypes),
			zap.Int("skipped_rows", st.SkippedRows),
		)
	}
	if statsView != nil {
		if err := statsView.RunOnce(ctx); err != nil {
			logger.Warn("initial stats refresh failed", zap.Error(err))
		}
	}

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		_, err = cronRunner.Add(cfg.Cron.IntelReload, "intel reload", func(ctx context.Context) {
			if err := intelSvc.Reload(ctx); err != nil {
				logger.Warn("cron intel reload failed", zap.Error(err))
				return
			}
			st := intelSvc.Stats()
			logger.Info("cron intel reload ok",
				zap.Int("bidders", st.Bidders),
				zap.Int("domains", st.Domains),
				zap.Int("archetypes", st.Archetypes),
			)
		})
		if err != nil {
			logger.Warn("cron register intel reload failed", zap.Error(err))
		}

		if statsView != nil {
			_, err = cronRunner.Add(cfg.Cron.StatsRefresh, "stats refresh", func(ctx context.Context) {
				if err := statsView.RunOnce(ctx); err != nil {
					logger.Warn("cron stats refresh failed", zap.Error(err))
				}
			})
			if err != nil {
				logger.Warn("cron register stats refresh failed", zap.Error(err))
			}
		}

		if store != nil && cfg.History.LogRetention > 0 {
			retention := cfg.History.LogRetention
			_, err = cronRunner.Add(cfg.Cron.LogRetention, "decision log retention", func(ctx context.Context) {
				cutoff := time.Now().UTC().Add(-retention)
				n, err := store.DeleteDecisionLogsBefore(ctx, cutoff)
				if err != nil {
					logger.Warn("decision log retention failed", zap.Error(err))
					return
				}
				if n > 0 {
					logger.Info("deleted old decision logs", zap.Int64("count", n))
				}
			})
			if err != nil {
				logger.Warn("cron register log retention failed", zap.Error(err))
			}
		}

		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
