package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentialab/go-sentiment-server/internal/health"
	"github.com/sentialab/go-sentiment-server/internal/model/evalset"
	"github.com/sentialab/go-sentiment-server/internal/monitor"
	"github.com/sentialab/go-sentiment-server/internal/service/classify_svc"
)

type fakeService struct {
	predictRes  classify_svc.PredictResult
	predictErr  error
	compareRows []classify_svc.CompareRow
	compareErr  error
	models      []evalset.ModelRef

	gotText  string
	gotTexts []string
}

func (f *fakeService) Predict(_ context.Context, text string) (classify_svc.PredictResult, error) {
	f.gotText = text
	return f.predictRes, f.predictErr
}

func (f *fakeService) Compare(_ context.Context, texts []string) ([]classify_svc.CompareRow, error) {
	f.gotTexts = texts
	return f.compareRows, f.compareErr
}

func (f *fakeService) Models() []evalset.ModelRef { return f.models }

type fakePinger struct {
	err error
}

func (f *fakePinger) Health(context.Context) error { return f.err }

func newTestServer(t *testing.T, svc classify_svc.ClassifyService, pingErr error) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	checker := health.NewChecker(
		monitor.NewSemaphoreLoadMonitor(4, 0.8),
		&fakePinger{err: pingErr},
	)
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	return New(log, svc, checker, 2000, t.TempDir())
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPredictEndpoint(t *testing.T) {
	t.Run("classifies trimmed text and returns summary", func(t *testing.T) {
		svc := &fakeService{
			predictRes: classify_svc.PredictResult{Sentiment: "positive", Confidence: 0.9876, Model: "m"},
		}
		router := newTestServer(t, svc, nil).Router()

		rec := doJSON(t, router, http.MethodPost, "/predict", `{"text": "  I love it  "}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "I love it", svc.gotText)

		var resp struct {
			Text       string  `json:"text"`
			Sentiment  string  `json:"sentiment"`
			Confidence float64 `json:"confidence"`
			Summary    string  `json:"summary"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "I love it", resp.Text)
		assert.Equal(t, "positive", resp.Sentiment)
		assert.InDelta(t, 0.9876, resp.Confidence, 1e-9)
		assert.Equal(t, "I love it-positive-0.9876", resp.Summary)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		svc := &fakeService{}
		router := newTestServer(t, svc, nil).Router()

		for _, body := range []string{`{"text": ""}`, `{"text": "   "}`, `{}`} {
			rec := doJSON(t, router, http.MethodPost, "/predict", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
			assert.Contains(t, rec.Body.String(), "text must not be empty")
		}
		assert.Empty(t, svc.gotText)
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		router := newTestServer(t, &fakeService{}, nil).Router()

		rec := doJSON(t, router, http.MethodPost, "/predict", `{"text": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects text over the length limit", func(t *testing.T) {
		svc := &fakeService{}
		router := newTestServer(t, svc, nil).Router()

		long := strings.Repeat("a", 2001)
		rec := doJSON(t, router, http.MethodPost, "/predict", `{"text": "`+long+`"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "2000 characters")
		assert.Empty(t, svc.gotText)
	})

	t.Run("maps busy service to 503", func(t *testing.T) {
		svc := &fakeService{predictErr: classify_svc.ErrServiceBusy}
		router := newTestServer(t, svc, nil).Router()

		rec := doJSON(t, router, http.MethodPost, "/predict", `{"text": "hi"}`)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "busy")
	})

	t.Run("maps upstream failure to 500 without leaking detail", func(t *testing.T) {
		svc := &fakeService{predictErr: errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")}
		router := newTestServer(t, svc, nil).Router()

		rec := doJSON(t, router, http.MethodPost, "/predict", `{"text": "hi"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "inference error")
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestCompareEndpoint(t *testing.T) {
	models := []evalset.ModelRef{
		{ID: "model-a", Name: "Model A"},
		{ID: "model-b", Name: "Model B"},
	}

	t.Run("returns headers and rows in model order", func(t *testing.T) {
		svc := &fakeService{
			models: models,
			compareRows: []classify_svc.CompareRow{
				{Text: "great", Labels: []string{"positive", "negative"}},
				{Text: "awful", Labels: []string{"negative", "negative"}},
			},
		}
		router := newTestServer(t, svc, nil).Router()

		rec := doJSON(t, router, http.MethodPost, "/compare", `{"texts": ["great", "awful"]}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"great", "awful"}, svc.gotTexts)

		var resp struct {
			Headers []string   `json:"headers"`
			Rows    [][]string `json:"rows"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{"Text", "Model A", "Model B"}, resp.Headers)
		require.Len(t, resp.Rows, 2)
		assert.Equal(t, []string{"great", "positive", "negative"}, resp.Rows[0])
		assert.Equal(t, []string{"awful", "negative", "negative"}, resp.Rows[1])
	})

	t.Run("accepts an empty body and passes nil texts through", func(t *testing.T) {
		svc := &fakeService{models: models}
		router := newTestServer(t, svc, nil).Router()

		rec := doJSON(t, router, http.MethodPost, "/compare", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, svc.gotTexts)
	})

	t.Run("maps busy service to 503", func(t *testing.T) {
		svc := &fakeService{models: models, compareErr: classify_svc.ErrServiceBusy}
		router := newTestServer(t, svc, nil).Router()

		rec := doJSON(t, router, http.MethodPost, "/compare", `{"texts": ["x"]}`)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("healthy when upstream answers", func(t *testing.T) {
		router := newTestServer(t, &fakeService{}, nil).Router()

		rec := doJSON(t, router, http.MethodGet, "/health", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
		assert.Contains(t, rec.Body.String(), `"inference":"ok"`)
	})

	t.Run("unhealthy when upstream is down", func(t *testing.T) {
		router := newTestServer(t, &fakeService{}, errors.New("inference service unreachable")).Router()

		rec := doJSON(t, router, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
		assert.Contains(t, rec.Body.String(), "inference service unreachable")
	})

	t.Run("ready mirrors upstream reachability", func(t *testing.T) {
		okRouter := newTestServer(t, &fakeService{}, nil).Router()
		rec := doJSON(t, okRouter, http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		downRouter := newTestServer(t, &fakeService{}, errors.New("no route to host")).Router()
		rec = doJSON(t, downRouter, http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestStaticIndex(t *testing.T) {
	t.Run("serves index.html when present", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Sentiment</h1>"), 0o644))

		checker := health.NewChecker(monitor.NewSemaphoreLoadMonitor(4, 0.8), &fakePinger{})
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		router := New(log, &fakeService{}, checker, 2000, dir).Router()

		rec := doJSON(t, router, http.MethodGet, "/", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<h1>Sentiment</h1>")
	})

	t.Run("404 when the page is missing", func(t *testing.T) {
		router := newTestServer(t, &fakeService{}, nil).Router()

		rec := doJSON(t, router, http.MethodGet, "/", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "index.html not found")
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates an id when none is supplied", func(t *testing.T) {
		router := newTestServer(t, &fakeService{}, nil).Router()

		rec := doJSON(t, router, http.MethodGet, "/health", "")

		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("echoes the caller's id", func(t *testing.T) {
		router := newTestServer(t, &fakeService{}, nil).Router()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
	})
}
