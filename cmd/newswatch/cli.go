package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/mkowalik/newswatch"
	"github.com/mkowalik/newswatch/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *newswatch.Config
	Logger  *slog.Logger
	Scanner newswatch.Scanner
	Runner  *pipeline.Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run  RunCmd  `cmd:"" help:"Scan all sources and deliver new items"`
	Scan ScanCmd `cmd:"" help:"List discovered items without delivering"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Date string `help:"Target date override, e.g. 2026.01.05"`
	All  bool   `help:"Disable the date filter and process every unseen item"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct{}
