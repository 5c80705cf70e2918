// Package main provides the shop-bench CLI tool for benchmarking cache
// configurations with simulated shopper traffic.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/JvrTrvjn/mobile-shop-app/benchmark/analysis"
	"github.com/JvrTrvjn/mobile-shop-app/benchmark/reporting"
	"github.com/JvrTrvjn/mobile-shop-app/benchmark/simulation"
	"github.com/JvrTrvjn/mobile-shop-app/internal/codec/noopcodec"
	"github.com/JvrTrvjn/mobile-shop-app/internal/codec/zstdcodec"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore/filestore"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore/lrustore"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore/memstore"
)

var (
	configNames  []string
	sessionCount int
	catalogSize  int
	latencyMs    int
	seed         int64
	outputFormat string
	outputFile   string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "shop-bench",
	Short: "Benchmark cache configurations for the storefront",
	Long: `shop-bench compares cache store configurations by replaying the same
simulated shopper traffic against each one.

It measures wall time per session and upstream call counts, then runs a
statistical comparison between the first two configurations.

Examples:
  # Run benchmark with default configurations
  shop-bench run

  # Compare specific configurations with heavier traffic
  shop-bench run --configs memory,file-zstd --sessions 2000

  # Output as markdown report
  shop-bench run --format markdown --output report.md`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark simulation",
	RunE:  runBenchmark,
}

func init() {
	runCmd.Flags().StringSliceVarP(&configNames, "configs", "c", []string{"memory", "file-zstd"}, "configurations to compare")
	runCmd.Flags().IntVarP(&sessionCount, "sessions", "n", 500, "number of shopper sessions to replay")
	runCmd.Flags().IntVar(&catalogSize, "catalog-size", 50, "number of synthetic products")
	runCmd.Flags().IntVar(&latencyMs, "latency", 5, "simulated upstream latency in milliseconds")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "traffic generation seed")
	runCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format: text, markdown")
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	configs := make([]simulation.Config, 0, len(configNames))
	for _, name := range configNames {
		cfg, err := createConfig(name)
		if err != nil {
			return err
		}
		configs = append(configs, cfg)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Generating %d sessions over %d products...\n", sessionCount, catalogSize)
	}
	sessions := simulation.GenerateSessions(sessionCount, catalogSize, seed)

	latency := time.Duration(latencyMs) * time.Millisecond
	sim := simulation.NewSimulator(catalogSize, latency)

	results := make(map[string]*simulation.AggregateResult, len(configs))
	for _, cfg := range configs {
		if verbose {
			fmt.Fprintf(os.Stderr, "Replaying traffic against %s...\n", cfg.Name)
		}
		result, err := sim.Run(cfg, sessions)
		if err != nil {
			return fmt.Errorf("running %s: %w", cfg.Name, err)
		}
		results[cfg.Name] = result
	}

	// Statistical comparison between the first two configurations.
	var comparison *analysis.ConfigComparison
	if len(configs) >= 2 {
		comparison = analysis.CompareConfigs(
			results[configs[0].Name],
			results[configs[1].Name],
			10000, // Bootstrap iterations.
			0.95,  // 95% confidence.
		)
	}

	var output io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	switch outputFormat {
	case "markdown":
		return writeMarkdownReport(output, results, comparison, latency)
	default:
		return writeTextReport(output, results, comparison)
	}
}

func createConfig(name string) (simulation.Config, error) {
	switch strings.ToLower(name) {
	case "memory":
		return simulation.Config{
			Name: "memory",
			NewStore: func() (kvstore.Store, error) {
				return memstore.New(), nil
			},
		}, nil
	case "lru":
		return simulation.Config{
			Name: "lru",
			NewStore: func() (kvstore.Store, error) {
				return lrustore.New(128)
			},
		}, nil
	case "file":
		return simulation.Config{
			Name: "file",
			NewStore: func() (kvstore.Store, error) {
				return filestore.New(tempDir("file"), noopcodec.New())
			},
		}, nil
	case "file-zstd":
		return simulation.Config{
			Name: "file-zstd",
			NewStore: func() (kvstore.Store, error) {
				return filestore.New(tempDir("file-zstd"), zstdcodec.New())
			},
		}, nil
	default:
		return simulation.Config{}, fmt.Errorf("unknown configuration: %s", name)
	}
}

func tempDir(name string) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("shop-bench-%s-%d", name, os.Getpid()))
}

func writeTextReport(w io.Writer, results map[string]*simulation.AggregateResult, comp *analysis.ConfigComparison) error {
	fmt.Fprintf(w, "Storefront Cache Benchmark\n")
	fmt.Fprintf(w, "==========================\n\n")
	fmt.Fprintf(w, "Sessions: %d\n", sessionCount)
	fmt.Fprintf(w, "Catalog:  %d products\n", catalogSize)
	fmt.Fprintf(w, "Latency:  %dms per upstream request\n\n", latencyMs)

	fmt.Fprintf(w, "Results:\n")
	fmt.Fprintf(w, "--------\n\n")

	for name, res := range results {
		metrics := simulation.ComputeMetrics(res)
		fmt.Fprintf(w, "%s:\n", name)
		fmt.Fprintf(w, "  Mean ms/session:  %.2f\n", metrics.MeanSessionMillis)
		fmt.Fprintf(w, "  Median:           %.2f\n", metrics.MedianSessionMillis)
		fmt.Fprintf(w, "  P99:              %.2f\n", metrics.P99SessionMillis)
		fmt.Fprintf(w, "  Cache hit rate:   %.1f%%\n", metrics.HitRate)
		fmt.Fprintf(w, "  Upstream calls:   %d\n\n", metrics.UpstreamCalls)
	}

	if comp != nil {
		fmt.Fprintf(w, "Statistical Analysis:\n")
		fmt.Fprintf(w, "---------------------\n\n")
		fmt.Fprintln(w, comp.Summary())
	}

	return nil
}

func writeMarkdownReport(w io.Writer, results map[string]*simulation.AggregateResult, comp *analysis.ConfigComparison, latency time.Duration) error {
	report := reporting.NewMarkdownReport(w)
	report.WriteHeader("Storefront Cache Benchmark")
	report.WriteMethodology(sessionCount, catalogSize, latency)
	report.WriteSummaryTable(results)

	if comp != nil {
		report.WriteComparison(comp)
	}

	for name, res := range results {
		report.WriteDistributionChart(name, res.SessionMillis)
	}

	report.WriteFooter()
	return nil
}
