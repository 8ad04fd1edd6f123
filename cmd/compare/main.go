// Command compare classifies texts with every configured comparison model
// and prints one markdown table, or ranks stored benchmark reports when
// -reports is given.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/sentialab/go-sentiment-server/internal/classifier"
	"github.com/sentialab/go-sentiment-server/internal/config"
	"github.com/sentialab/go-sentiment-server/internal/model/evalset"
	"github.com/sentialab/go-sentiment-server/internal/monitor"
	"github.com/sentialab/go-sentiment-server/internal/service/classify_svc"
	"github.com/sentialab/go-sentiment-server/pkg/benchreport"
)

type candidate struct {
	Path   string
	Result benchreport.ModelResult
}

func main() {
	var (
		configPath   = flag.String("config", "config.yaml", "path to the YAML config")
		inferenceURL = flag.String("inference", "", "inference service base URL (overrides config)")
		textsPath    = flag.String("texts", "", "file with one text per line (default: built-in examples)")
		reportsDir   = flag.String("reports", "", "rank stored JSON benchmark reports from this directory instead of calling the inference service")
		maxResults   = flag.Int("n", 5, "number of top models to print (reports mode)")
		prefer       = flag.String("prefer", "accuracy", "ranking preference: accuracy|speed (reports mode)")
	)
	flag.Parse()

	if *reportsDir != "" {
		rankReports(*reportsDir, *maxResults, *prefer)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("load config: %v", err)
	}
	if *inferenceURL != "" {
		cfg.Inference.BaseURL = *inferenceURL
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	client := classifier.NewClient(cfg.Inference.BaseURL, cfg.Inference.Timeout())
	defer client.CloseIdleConnections()

	svc := classify_svc.NewClassifyService(
		classifier.NewProvider(client),
		log,
		monitor.NewSemaphoreLoadMonitor(cfg.Limits.MaxConcurrency, cfg.Limits.HealthThreshold),
		classify_svc.WithCompareModels(cfg.Compare.Models),
	)

	// Texts come from -texts (one per line) plus any remaining arguments;
	// none at all means the built-in examples.
	texts := flag.Args()
	if *textsPath != "" {
		fromFile, err := readTexts(*textsPath)
		if err != nil {
			fatalf("read texts: %v", err)
		}
		texts = append(fromFile, texts...)
	}

	rows, err := svc.Compare(context.Background(), texts)
	if err != nil {
		fatalf("compare: %v", err)
	}

	printTable(svc.Models(), rows)
}

func readTexts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out, sc.Err()
}

func printTable(models []evalset.ModelRef, rows []classify_svc.CompareRow) {
	headers := append([]string{"Text"}, lo.Map(models, func(m evalset.ModelRef, _ int) string {
		return m.DisplayName()
	})...)

	var b strings.Builder
	b.WriteString("| " + strings.Join(escapeAll(headers), " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", len(headers)) + "\n")
	for _, row := range rows {
		cells := append([]string{row.Text}, row.Labels...)
		b.WriteString("| " + strings.Join(escapeAll(cells), " | ") + " |\n")
	}
	_, _ = os.Stdout.WriteString(b.String())
}

func escapeAll(cells []string) []string {
	return lo.Map(cells, func(c string, _ int) string {
		return benchreport.EscapeCell(c)
	})
}

func rankReports(dir string, maxResults int, prefer string) {
	candidates, err := loadReports(dir)
	if err != nil {
		fatalf("load reports: %v", err)
	}
	if len(candidates) == 0 {
		fatalf("no reports found in %s", dir)
	}

	// Pareto front: maximize accuracy, minimize average latency
	pareto := paretoFront(candidates)

	sort.Slice(pareto, func(i, j int) bool {
		a, b := pareto[i].Result, pareto[j].Result
		if strings.EqualFold(prefer, "speed") {
			if a.Latency.AvgMS != b.Latency.AvgMS {
				return a.Latency.AvgMS < b.Latency.AvgMS
			}
			return a.Accuracy > b.Accuracy
		}
		// Default prefer accuracy; then speed
		if a.Accuracy != b.Accuracy {
			return a.Accuracy > b.Accuracy
		}
		return a.Latency.AvgMS < b.Latency.AvgMS
	})

	if maxResults > len(pareto) {
		maxResults = len(pareto)
	}

	for i := 0; i < maxResults; i++ {
		r := pareto[i].Result
		fmt.Printf("%d) %s\n", i+1, pareto[i].Path)
		fmt.Printf("   model=\"%s\" id=%s accuracy=%.1f%% (%d/%d) avg_ms=%.2f p95_ms=%.2f\n",
			r.DisplayName(), r.Model, r.Accuracy*100, r.Correct, r.Samples, r.Latency.AvgMS, r.Latency.P95MS)
	}
}

func loadReports(dir string) ([]candidate, error) {
	var out []candidate
	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		var rep benchreport.Report
		if err := json.NewDecoder(f).Decode(&rep); err != nil {
			return nil
		}
		for _, res := range rep.Results {
			out = append(out, candidate{Path: path, Result: res})
		}
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, err
	}
	return out, nil
}

func paretoFront(in []candidate) []candidate {
	var out []candidate
	for i := range in {
		dominated := false
		for j := range in {
			if i == j {
				continue
			}
			if dominates(in[j].Result, in[i].Result) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, in[i])
		}
	}
	return out
}

// dominates reports whether a is at least as accurate and at least as fast
// as b, and strictly better on one of the two.
func dominates(a, b benchreport.ModelResult) bool {
	betterOrEqualAcc := a.Accuracy >= b.Accuracy
	strictlyBetterAcc := a.Accuracy > b.Accuracy
	betterOrEqualLat := a.Latency.AvgMS <= b.Latency.AvgMS
	strictlyBetterLat := a.Latency.AvgMS < b.Latency.AvgMS

	return (betterOrEqualAcc && strictlyBetterLat) || (strictlyBetterAcc && betterOrEqualLat)
}

func fatalf(format string, a ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
