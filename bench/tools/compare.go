package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
)

type CompareCommand struct {
	Threshold float64 `short:"t" long:"threshold" default:"5" description:"percent change that counts as significant"`
	Output    string  `short:"o" long:"output" default:"benchmark-comparison.json" description:"where to write the JSON comparison"`
	Args      struct {
		Base    string `positional-arg-name:"base" description:"baseline summary"`
		Current string `positional-arg-name:"current" description:"summary to compare"`
	} `positional-args:"yes" required:"yes"`
}

func (c *CompareCommand) Execute([]string) error {
	base, err := loadSummary(c.Args.Base)
	if err != nil {
		return err
	}
	current, err := loadSummary(c.Args.Current)
	if err != nil {
		return err
	}

	summary := compare(base, current, c.Threshold)
	printComparison(os.Stdout, summary)

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("error creating comparison JSON: %w", err)
	}
	if err := os.WriteFile(c.Output, data, 0644); err != nil {
		return fmt.Errorf("error writing comparison file: %w", err)
	}
	fmt.Printf("Comparison JSON written to %s\n", c.Output)

	if summary.RegressionBenchmarks > 0 {
		return fmt.Errorf("%d significant performance regressions detected", summary.RegressionBenchmarks)
	}
	return nil
}

// compare matches benchmarks by name and metrics by key. Benchmarks missing
// from either side are skipped.
func compare(base, current BenchSummary, threshold float64) ComparisonSummary {
	baseResults := make(map[string]BenchResult, len(base.Results))
	for _, r := range base.Results {
		baseResults[r.Name] = r
	}

	summary := ComparisonSummary{
		BaseCommit:    base.CommitID,
		CurrentCommit: current.CommitID,
	}
	for _, cur := range current.Results {
		prev, ok := baseResults[cur.Name]
		if !ok {
			continue
		}

		bc := BenchmarkComparison{Name: cur.Name, Category: cur.Category}
		total := 0.0
		for name, value := range cur.Metrics {
			baseValue, ok := prev.Metrics[name]
			if !ok {
				continue
			}
			mc := compareMetric(name, baseValue, value, threshold)
			if mc.IsRegression && mc.IsSignificant {
				bc.HasRegressions = true
			}
			if mc.IsImprovement {
				total += math.Abs(mc.PercentChange)
			} else if mc.IsRegression {
				total -= math.Abs(mc.PercentChange)
			}
			bc.MetricComparisons = append(bc.MetricComparisons, mc)
		}
		if n := len(bc.MetricComparisons); n > 0 {
			bc.Score = total / float64(n)
		}
		sort.Slice(bc.MetricComparisons, func(i, j int) bool {
			return math.Abs(bc.MetricComparisons[i].PercentChange) > math.Abs(bc.MetricComparisons[j].PercentChange)
		})

		switch {
		case bc.HasRegressions:
			bc.OverallAssessment = "REGRESSION"
			summary.RegressionBenchmarks++
		case bc.Score > 0:
			bc.OverallAssessment = "IMPROVEMENT"
			summary.ImprovedBenchmarks++
		default:
			bc.OverallAssessment = "NEUTRAL"
		}
		summary.BenchmarkComparisons = append(summary.BenchmarkComparisons, bc)
	}
	summary.TotalBenchmarks = len(summary.BenchmarkComparisons)

	// worst first
	sort.Slice(summary.BenchmarkComparisons, func(i, j int) bool {
		a, b := summary.BenchmarkComparisons[i], summary.BenchmarkComparisons[j]
		if a.HasRegressions != b.HasRegressions {
			return a.HasRegressions
		}
		return a.Score < b.Score
	})
	return summary
}

func compareMetric(name string, base, current, threshold float64) MetricComparison {
	mc := MetricComparison{Name: name, BaseValue: base, CurrentValue: current}
	if base != 0 {
		mc.PercentChange = (current - base) / base * 100
	}
	if isHigherBetterMetric(name) {
		mc.IsRegression = mc.PercentChange < 0
		mc.IsImprovement = mc.PercentChange > 0
	} else {
		mc.IsRegression = mc.PercentChange > 0
		mc.IsImprovement = mc.PercentChange < 0
	}
	mc.IsSignificant = math.Abs(mc.PercentChange) >= threshold
	return mc
}

// isHigherBetterMetric reports whether growth of the metric is an improvement.
// Table shape metrics such as size or grows are neither, and count as
// lower-is-better so that a change in resize behavior is flagged.
func isHigherBetterMetric(name string) bool {
	for _, suffix := range []string{"_rate", "empty_slot_ratio"} {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func printComparison(w io.Writer, summary ComparisonSummary) {
	fmt.Fprintf(w, "Benchmark Comparison: %s vs %s\n\n", summary.BaseCommit, summary.CurrentCommit)
	fmt.Fprintf(w, "- Total benchmarks compared: %d\n", summary.TotalBenchmarks)
	fmt.Fprintf(w, "- Improvements: %d\n", summary.ImprovedBenchmarks)
	fmt.Fprintf(w, "- Regressions: %d\n", summary.RegressionBenchmarks)

	if summary.TotalBenchmarks == 0 {
		fmt.Fprintln(w, "No matching benchmarks found for comparison")
		return
	}

	for _, bc := range summary.BenchmarkComparisons {
		fmt.Fprintf(w, "\n%s %s (%s):\n", bc.OverallAssessment, bc.Name, bc.Category)
		for _, mc := range bc.MetricComparisons {
			if mc.PercentChange == 0 {
				continue
			}
			marker := " "
			if mc.IsSignificant && mc.IsRegression {
				marker = "▼"
			} else if mc.IsSignificant && mc.IsImprovement {
				marker = "▲"
			}
			fmt.Fprintf(w, "  %s %-24s: %+8.2f%% (%g → %g)\n", marker, mc.Name, mc.PercentChange, mc.BaseValue, mc.CurrentValue)
		}
	}
}
