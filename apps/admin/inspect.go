package main

import (
	"fmt"
	"sort"
	"time"
)

func (cli *commandLine) inspect() error {
	stats := cli.store.Stats()

	fmt.Printf("snapshot version: %s\n", stats.Version)
	if stats.LastUpdated > 0 {
		fmt.Printf("last updated:     %s\n", time.UnixMilli(stats.LastUpdated).UTC().Format(time.RFC3339))
	} else {
		fmt.Println("last updated:     never")
	}

	kinds := make([]string, 0, len(stats.Counts))
	for kind := range stats.Counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Printf("%-12s %d\n", kind, stats.Counts[kind])
	}
	return nil
}
