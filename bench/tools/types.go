package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// BenchResult is one benchmark entry of a summary written by the bench package
type BenchResult struct {
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Operations int                `json:"operations"`
	NsPerOp    float64            `json:"ns_per_op"`
	Metrics    map[string]float64 `json:"metrics"`
}

// BenchSummary is the content of a benchmark_history file
type BenchSummary struct {
	Timestamp string        `json:"timestamp"`
	CommitID  string        `json:"commit_id"`
	Branch    string        `json:"branch"`
	GoVersion string        `json:"go_version"`
	Results   []BenchResult `json:"results"`
}

// MetricComparison compares one metric between two runs
type MetricComparison struct {
	Name          string  `json:"name"`
	BaseValue     float64 `json:"base_value"`
	CurrentValue  float64 `json:"current_value"`
	PercentChange float64 `json:"percent_change"`
	IsRegression  bool    `json:"is_regression"`
	IsImprovement bool    `json:"is_improvement"`
	IsSignificant bool    `json:"is_significant"`
}

// BenchmarkComparison compares one benchmark between two runs
type BenchmarkComparison struct {
	Name              string             `json:"name"`
	Category          string             `json:"category"`
	MetricComparisons []MetricComparison `json:"metric_comparisons"`
	OverallAssessment string             `json:"overall_assessment"`
	HasRegressions    bool               `json:"has_regressions"`
	Score             float64            `json:"score"`
}

// ComparisonSummary is the overall result of a comparison
type ComparisonSummary struct {
	BaseCommit           string                `json:"base_commit"`
	CurrentCommit        string                `json:"current_commit"`
	TotalBenchmarks      int                   `json:"total_benchmarks"`
	ImprovedBenchmarks   int                   `json:"improved_benchmarks"`
	RegressionBenchmarks int                   `json:"regression_benchmarks"`
	BenchmarkComparisons []BenchmarkComparison `json:"benchmark_comparisons"`
}

func loadSummary(path string) (BenchSummary, error) {
	var s BenchSummary
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("error reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return s, nil
}
