// Command bench measures classification latency and accuracy of the
// configured sentiment models against the built-in evaluation set and
// prints a markdown or JSON report.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sentialab/go-sentiment-server/internal/benchmark"
	"github.com/sentialab/go-sentiment-server/internal/classifier"
	"github.com/sentialab/go-sentiment-server/internal/config"
)

func main() {
	var (
		configPath   = flag.String("config", "config.yaml", "path to the YAML config")
		inferenceURL = flag.String("inference", "", "inference service base URL (overrides config)")
		runs         = flag.Int("runs", 0, "timed runs per sample (overrides config)")
		warmupText   = flag.String("warmup_text", "", "text for the untimed warm-up call (overrides config)")
		format       = flag.String("format", "markdown", "output format: markdown|json")
		outPath      = flag.String("out", "", "optional path to write the report (defaults to stdout)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("load config: %v", err)
	}
	if *inferenceURL != "" {
		cfg.Inference.BaseURL = *inferenceURL
	}
	if *runs > 0 {
		cfg.Benchmark.RunsPerSample = *runs
	}
	if *warmupText != "" {
		cfg.Benchmark.WarmupText = *warmupText
	}

	// Progress goes to stderr so stdout stays clean for the report.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	client := classifier.NewClient(cfg.Inference.BaseURL, cfg.Inference.Timeout())
	defer client.CloseIdleConnections()

	runner := benchmark.NewRunner(
		classifier.NewProvider(client),
		log,
		benchmark.WithRunsPerSample(cfg.Benchmark.RunsPerSample),
		benchmark.WithWarmupText(cfg.Benchmark.WarmupText),
	)

	rep := runner.Run(context.Background(), cfg.Benchmark.Models, cfg.Benchmark.Samples)
	rep.Env.CPUModel = detectCPUModel()

	switch *format {
	case "markdown":
		if err := writeMarkdown(rep.Markdown(), *outPath); err != nil {
			fatalf("write report: %v", err)
		}
	case "json":
		if err := rep.WriteJSON(*outPath); err != nil {
			fatalf("write report: %v", err)
		}
	default:
		fatalf("unknown format %q (want markdown or json)", *format)
	}
}

func writeMarkdown(md, outPath string) error {
	if outPath == "" {
		_, err := os.Stdout.WriteString(md)
		return err
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(outPath, []byte(md), 0o644)
}

func detectCPUModel() string {
	if runtime.GOOS == "darwin" {
		out, err := exec.Command("sysctl", "-n", "machdep.cpu.brand_string").Output()
		if err == nil {
			return strings.TrimSpace(string(out))
		}
	}
	if runtime.GOOS == "linux" {
		f, err := os.Open("/proc/cpuinfo")
		if err == nil {
			defer f.Close()
			sc := bufio.NewScanner(f)
			for sc.Scan() {
				line := sc.Text()
				if strings.HasPrefix(line, "model name") {
					parts := strings.SplitN(line, ":", 2)
					if len(parts) == 2 {
						return strings.TrimSpace(parts[1])
					}
				}
			}
		}
	}
	return runtime.GOARCH + " CPU"
}

func fatalf(format string, a ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
