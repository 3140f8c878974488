// Package uhash_test provides scale benchmarks for the uhash table.
package uhash_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/theflywheel/uhash"
)

// BenchmarkMetrics represents metrics for a single benchmark
type BenchmarkMetrics struct {
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Operations  int                `json:"operations"`
	NsPerOp     float64            `json:"ns_per_op"`
	BytesPerOp  int                `json:"bytes_per_op,omitempty"`
	AllocsPerOp int                `json:"allocs_per_op,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// BenchmarkSummary represents all benchmark results
type BenchmarkSummary struct {
	Timestamp string             `json:"timestamp"`
	CommitID  string             `json:"commit_id"`
	Branch    string             `json:"branch"`
	GoVersion string             `json:"go_version"`
	Results   []BenchmarkMetrics `json:"results"`
}

func newMetrics(name string, operations int) BenchmarkMetrics {
	return BenchmarkMetrics{
		Name:       name,
		Category:   "scale",
		Operations: operations,
		Metrics:    make(map[string]float64),
	}
}

// heapMB returns the live heap in megabytes.
func heapMB() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.HeapAlloc) / (1024 * 1024)
}

// recordTableStats copies the table's shape into the metrics under prefix.
func recordTableStats(metrics *BenchmarkMetrics, prefix string, s uhash.Stats) {
	metrics.Metrics[prefix+"size"] = float64(s.Size)
	metrics.Metrics[prefix+"load_factor"] = s.LoadFactor
	metrics.Metrics[prefix+"grows"] = float64(s.Grows)
	metrics.Metrics[prefix+"shrinks"] = float64(s.Shrinks)
	metrics.Metrics[prefix+"rehashed_per_key"] = float64(s.Rehashed) / float64(max(s.Len, 1))
	metrics.Metrics[prefix+"longest_chain"] = float64(s.LongestChain)
	metrics.Metrics[prefix+"empty_slot_ratio"] = float64(s.EmptySlots) / float64(s.Size)
}

// gitInfo reads the branch and short commit from the repository at root.
func gitInfo(root string) (branch, commit string) {
	branch, commit = "dev", "local"

	head, err := os.ReadFile(filepath.Join(root, ".git", "HEAD"))
	if err != nil {
		return branch, commit
	}
	ref := strings.TrimSpace(string(head))
	if !strings.HasPrefix(ref, "ref: ") {
		// detached HEAD holds the commit itself
		return branch, shortCommit(ref)
	}
	ref = strings.TrimPrefix(ref, "ref: ")
	branch = strings.TrimPrefix(ref, "refs/heads/")
	if data, err := os.ReadFile(filepath.Join(root, ".git", ref)); err == nil {
		commit = shortCommit(strings.TrimSpace(string(data)))
	}
	return branch, commit
}

func shortCommit(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// saveBenchmarkResult appends a benchmark result to resultsFile in the
// benchmark_history directory at the repository root.
func saveBenchmarkResult(metrics BenchmarkMetrics, resultsFile string) error {
	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	repoRoot := filepath.Dir(currentDir)

	benchmarkDir := filepath.Join(repoRoot, "benchmark_history")
	if err := os.MkdirAll(benchmarkDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	branch, commit := gitInfo(repoRoot)
	summary := BenchmarkSummary{
		Timestamp: time.Now().Format(time.RFC3339),
		CommitID:  commit,
		Branch:    branch,
		GoVersion: runtime.Version(),
	}

	resultsPath := filepath.Join(benchmarkDir, resultsFile)
	if existing, err := os.ReadFile(resultsPath); err == nil {
		var previous BenchmarkSummary
		if err := json.Unmarshal(existing, &previous); err == nil {
			summary.Results = previous.Results
		}
	}
	summary.Results = append(summary.Results, metrics)

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}
	if err := os.WriteFile(resultsPath, data, 0644); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}

	fmt.Printf("Benchmark results saved to: %s\n", resultsPath)
	return nil
}
