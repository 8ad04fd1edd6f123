package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/sentialab/go-sentiment-server/internal/model/evalset"
	"github.com/sentialab/go-sentiment-server/internal/service/classify_svc"
)

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	Text       string  `json:"text"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`
}

type compareRequest struct {
	Texts []string `json:"texts"`
}

type compareResponse struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

func (s *Server) handlePredict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be empty"})
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be empty"})
		return
	}
	if utf8.RuneCountInString(text) > s.maxTextLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("text must not exceed %d characters", s.maxTextLen)})
		return
	}

	start := time.Now()
	res, err := s.svc.Predict(c.Request.Context(), text)
	observeInference(time.Since(start))
	if err != nil {
		if errors.Is(err, classify_svc.ErrServiceBusy) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service is busy"})
			return
		}
		s.log.ErrorContext(c.Request.Context(), "Predict failed",
			"error", err,
			"request_id", c.GetString(requestIDKey),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "inference error"})
		return
	}

	c.JSON(http.StatusOK, predictResponse{
		Text:       text,
		Sentiment:  res.Sentiment,
		Confidence: res.Confidence,
		Summary:    fmt.Sprintf("%s-%s-%.4f", text, res.Sentiment, res.Confidence),
	})
}

func (s *Server) handleCompare(c *gin.Context) {
	// An empty body is fine: the service falls back to its example texts.
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rows, err := s.svc.Compare(c.Request.Context(), req.Texts)
	if err != nil {
		if errors.Is(err, classify_svc.ErrServiceBusy) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service is busy"})
			return
		}
		s.log.ErrorContext(c.Request.Context(), "Compare failed",
			"error", err,
			"request_id", c.GetString(requestIDKey),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "inference error"})
		return
	}

	headers := append([]string{"Text"}, lo.Map(s.svc.Models(), func(m evalset.ModelRef, _ int) string {
		return m.DisplayName()
	})...)

	out := compareResponse{Headers: headers, Rows: make([][]string, len(rows))}
	for i, row := range rows {
		out.Rows[i] = append([]string{row.Text}, row.Labels...)
	}

	c.JSON(http.StatusOK, out)
}

func (s *Server) handleHealth(c *gin.Context) {
	status := s.checker.Check(c.Request.Context())

	code := http.StatusOK
	text := "healthy"
	if !status.Healthy {
		code = http.StatusServiceUnavailable
		text = "unhealthy"
	}

	c.JSON(code, gin.H{
		"status":     text,
		"components": status.Components,
		"load": gin.H{
			"in_flight":       status.Load.InFlight,
			"max_in_flight":   status.Load.MaxInFlight,
			"load_percentage": status.Load.LoadPercentage,
		},
	})
}

func (s *Server) handleReady(c *gin.Context) {
	if err := s.checker.Ready(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// handleIndex serves the comparison test page from the static directory.
func (s *Server) handleIndex(c *gin.Context) {
	page := filepath.Join(s.staticDir, "index.html")
	if _, err := os.Stat(page); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "index.html not found"})
		return
	}
	c.File(page)
}
