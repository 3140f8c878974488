package main

import (
	"fmt"
	"io"
	"os"
	"sort"
)

type ShowCommand struct {
	Args struct {
		File string `positional-arg-name:"file" description:"benchmark summary to print"`
	} `positional-args:"yes" required:"yes"`
}

func (c *ShowCommand) Execute([]string) error {
	s, err := loadSummary(c.Args.File)
	if err != nil {
		return err
	}
	printSummary(os.Stdout, s)
	return nil
}

func printSummary(w io.Writer, s BenchSummary) {
	fmt.Fprintf(w, "%s on %s (%s, %s)\n", s.CommitID, s.Branch, s.GoVersion, s.Timestamp)
	for _, r := range s.Results {
		fmt.Fprintf(w, "\n%s (%s): %d ops, %.1f ns/op\n", r.Name, r.Category, r.Operations, r.NsPerOp)
		names := make([]string, 0, len(r.Metrics))
		for name := range r.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %-24s %g\n", name, r.Metrics[name])
		}
	}
}
