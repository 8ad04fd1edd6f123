// Package benchreport defines the benchmark report format: the JSON shape
// persisted to disk and the Markdown rendering printed for humans.
package benchreport

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// LatencySummary aggregates the per-call latencies of one model evaluation,
// in fractional milliseconds.
type LatencySummary struct {
	AvgMS    float64 `json:"avg_ms"`
	MedianMS float64 `json:"med_ms"`
	P95MS    float64 `json:"p95_ms"`
	MinMS    float64 `json:"min_ms"`
	MaxMS    float64 `json:"max_ms"`
}

// PredictionDetail is one gold sample outcome: what the model answered on
// the scored call against what the sample expected. Predicted is already
// normalized; Confidence is the raw model score.
type PredictionDetail struct {
	Text       string  `json:"text"`
	Expected   string  `json:"expected"`
	Predicted  string  `json:"predicted"`
	Confidence float64 `json:"confidence"`
}

// ModelResult is the complete evaluation of one model.
type ModelResult struct {
	Model         string             `json:"model"`
	Name          string             `json:"name"`
	Latency       LatencySummary     `json:"latency"`
	Accuracy      float64            `json:"accuracy"`
	Correct       int                `json:"correct"`
	Samples       int                `json:"samples"`
	RunsPerSample int                `json:"runs_per_sample"`
	Calls         int                `json:"calls"`
	Predictions   []PredictionDetail `json:"predictions"`
}

func (r ModelResult) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Model
}

// ModelFailure records a model whose evaluation aborted. The run keeps going
// without it; the failure stays visible in the report.
type ModelFailure struct {
	Model string `json:"model"`
	Name  string `json:"name"`
	Err   string `json:"error"`
}

func (f ModelFailure) DisplayName() string {
	if f.Name != "" {
		return f.Name
	}
	return f.Model
}

// ReportEnv describes the machine a report was collected on.
type ReportEnv struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	CPUModel      string `json:"cpu_model,omitempty"`
	CPUNumLogical int    `json:"cpu_num_logical"`
}

// Report is one benchmark run over every configured model.
type Report struct {
	TimestampRFC3339 string         `json:"timestamp_rfc3339"`
	Env              ReportEnv      `json:"env"`
	SampleCount      int            `json:"sample_count"`
	RunsPerSample    int            `json:"runs_per_sample"`
	Results          []ModelResult  `json:"results"`
	Failures         []ModelFailure `json:"failures,omitempty"`
}

// CollectEnv fills the runtime-derived environment fields. CPUModel is left
// for the caller; detecting it needs OS-specific probing.
func CollectEnv() ReportEnv {
	return ReportEnv{
		OS:            runtime.GOOS,
		Arch:          runtime.GOARCH,
		CPUNumLogical: runtime.NumCPU(),
	}
}

// WriteJSON writes the report as indented JSON to path, or to stdout when
// path is empty. Parent directories are created as needed.
func (r *Report) WriteJSON(path string) error {
	if path == "" {
		return encodeJSON(os.Stdout, r)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return encodeJSON(f, r)
}

func encodeJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
