package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/wetclean"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Config is the effective configuration: defaults, then the --config
	// file. Commands apply their own flag overrides to a copy.
	Config wetclean.Config

	// Runs is the run ledger. Nil when no ledger is configured.
	Runs wetclean.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" env:"WETCLEAN_CONFIG" help:"YAML configuration file"`
	Verbose bool   `short:"v" help:"Log per-file detail to stderr"`
	DB      string `env:"WETCLEAN_DB" help:"SQLite run ledger (disabled when empty)"`

	Run    RunCmd    `cmd:"" help:"Extract, filter, and deduplicate a directory of archives"`
	Merge  MergeCmd  `cmd:"" help:"Deduplicate existing scratch files into a corpus"`
	Check  CheckCmd  `cmd:"" help:"Classify one text file and explain the decision"`
	Show   ConfigCmd `cmd:"" name:"config" help:"Print the effective configuration as YAML"`
	Runs   RunsCmd   `cmd:"" help:"List recorded runs"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	InputDir   string `arg:"" help:"Directory containing archive files"`
	Output     string `arg:"" help:"Corpus output file"`
	Lexicon    string `short:"l" default:"english_words.txt" env:"WETCLEAN_LEXICON" help:"Word list, one lowercase word per line"`
	Limit      int    `short:"n" help:"Process only the first N archives (0 for all)"`
	Workers    int    `short:"w" help:"Worker count (0 uses the configured value)"`
	Pattern    string `short:"p" help:"Archive filename glob (overrides config)"`
	ScratchDir string `help:"Directory for scratch files (default: system temp dir)"`
	Skip       bool   `help:"Keep going when an archive fails"`
	NoDedup    bool   `name:"no-dedup" help:"Concatenate documents without deduplication"`
	HTML       bool   `name:"html" help:"Also extract text from HTML response records"`
	Extractor  string `help:"HTML extractor: trafilatura, readability, or goquery (overrides config)"`
}

// MergeCmd is the "merge" subcommand.
type MergeCmd struct {
	Output  string   `arg:"" help:"Corpus output file"`
	Scratch []string `arg:"" help:"Scratch files, merged in order"`
	Keep    bool     `help:"Keep scratch files after merging"`
	NoDedup bool     `name:"no-dedup" help:"Concatenate documents without deduplication"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	File    string `arg:"" help:"Plain-text file to classify"`
	Lexicon string `short:"l" default:"english_words.txt" env:"WETCLEAN_LEXICON" help:"Word list, one lowercase word per line"`
	Clean   bool   `help:"Remove boilerplate before classifying"`
	JSON    bool   `name:"json" help:"Print the report as JSON"`
}

// ConfigCmd is the "config" subcommand.
type ConfigCmd struct{}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	ID     string `arg:"" optional:"" help:"Show the archive files of one run"`
	Status string `short:"s" help:"Filter by status (running, succeeded, failed)"`
	Limit  int    `default:"20" help:"Maximum runs to list"`
}
