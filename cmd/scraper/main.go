// Package main provides the entry point for the conference scraper CLI.
package main

import (
	"github.com/akkino69/crypto-scraper/cmd/scraper/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
