// Command tools inspects and compares the JSON summaries the benchmarks write
// to benchmark_history.
//
//	go run ./bench/tools show benchmark_history/latest.json
//	go run ./bench/tools compare base.json latest.json
package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

func main() {
	parser := flags.NewParser(nil, flags.Default)
	parser.AddCommand("compare", "compare two benchmark summaries",
		"Compares the metrics of every benchmark present in both files and exits non-zero on significant regressions.",
		&CompareCommand{})
	parser.AddCommand("show", "print a benchmark summary", "Prints every benchmark and its metrics.", &ShowCommand{})

	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}
}
