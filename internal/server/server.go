// Package server is the HTTP surface: prediction, comparison, health and
// metrics endpoints plus the static test page.
package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sentialab/go-sentiment-server/internal/health"
	"github.com/sentialab/go-sentiment-server/internal/service/classify_svc"
)

type Server struct {
	log        *slog.Logger
	svc        classify_svc.ClassifyService
	checker    *health.Checker
	maxTextLen int
	staticDir  string
}

func New(
	log *slog.Logger,
	svc classify_svc.ClassifyService,
	checker *health.Checker,
	maxTextLen int,
	staticDir string,
) *Server {
	return &Server{
		log:        log,
		svc:        svc,
		checker:    checker,
		maxTextLen: maxTextLen,
		staticDir:  staticDir,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()

	router.Use(RequestID())
	router.Use(RequestLogger(s.log))
	router.Use(Recovery(s.log))
	router.Use(Metrics())

	router.GET("/health", s.handleHealth)
	router.GET("/ready", s.handleReady)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/predict", s.handlePredict)
	router.POST("/compare", s.handleCompare)
	router.GET("/", s.handleIndex)

	return router
}
