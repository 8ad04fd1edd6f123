package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/sentialab/go-sentiment-server/internal/classifier"
	"github.com/sentialab/go-sentiment-server/internal/config"
	"github.com/sentialab/go-sentiment-server/internal/health"
	"github.com/sentialab/go-sentiment-server/internal/monitor"
	"github.com/sentialab/go-sentiment-server/internal/server"
	"github.com/sentialab/go-sentiment-server/internal/service/classify_svc"
)

type Application struct {
	Config        config.Config
	Log           *slog.Logger
	Server        *server.Server
	HealthChecker *health.Checker
	client        *classifier.Client
	classifySvc   classify_svc.ClassifyService
	loadMonitor   monitor.LoadMonitor
}

func New(configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := NewLogger(cfg.Server.LogLevel, cfg.Server.LogFormat)
	if err != nil {
		return nil, err
	}

	gin.SetMode(cfg.Server.Mode)

	client := classifier.NewClient(cfg.Inference.BaseURL, cfg.Inference.Timeout())
	provider := classifier.NewProvider(client)

	// Create load monitor with health threshold
	loadMonitor := monitor.NewSemaphoreLoadMonitor(
		cfg.Limits.MaxConcurrency,
		cfg.Limits.HealthThreshold,
	)

	// Create classify service with load monitor
	svc := classify_svc.NewClassifyService(
		provider,
		log,
		loadMonitor,
		classify_svc.WithPredictModel(cfg.Predict.Model),
		classify_svc.WithCompareModels(cfg.Compare.Models),
	)

	checker := health.NewChecker(loadMonitor, client)

	httpServer := server.New(
		log,
		svc,
		checker,
		cfg.Predict.MaxTextLength,
		cfg.StaticDir,
	)

	return &Application{
		Config:        cfg,
		Log:           log,
		Server:        httpServer,
		HealthChecker: checker,
		client:        client,
		classifySvc:   svc,
		loadMonitor:   loadMonitor,
	}, nil
}

func (a *Application) Close() error {
	if a.client != nil {
		a.client.CloseIdleConnections()
	}
	return nil
}

// NewLogger builds the slog logger shared across the process.
func NewLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info", "":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
