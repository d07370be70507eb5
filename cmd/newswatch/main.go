package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mkowalik/newswatch"
	"github.com/mkowalik/newswatch/discord"
	"github.com/mkowalik/newswatch/fs"
	"github.com/mkowalik/newswatch/goquery"
	nwhttp "github.com/mkowalik/newswatch/http"
	"github.com/mkowalik/newswatch/pipeline"
	nwslog "github.com/mkowalik/newswatch/slog"
	"github.com/mkowalik/newswatch/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run().
	ConfigPath string

	// Config is populated by Run() for end-to-end testing.
	Config *newswatch.Config
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newswatch"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newswatch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := yaml.LoadConfig(m.ConfigPath)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set NEWSWATCH_CONFIG to use a different config path")
		return err
	}
	m.Config = cfg
	deps.Config = cfg

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	deps.Logger = logger

	fetcher := nwhttp.NewFetcher()
	defer fetcher.Close()

	deps.Scanner = goquery.NewScanner(fetcher)

	if cmd == "run" {
		extractors := make(map[string]newswatch.Extractor, len(cfg.Sources))
		for _, source := range cfg.Sources {
			extractors[source.Name] = goquery.NewExtractor(source.ContentSelector)
		}

		notifiers := make(map[string]newswatch.Notifier, len(cfg.Recipients))
		for key, endpoint := range cfg.Recipients {
			client := discord.NewClient(endpoint, discord.WithLogger(logger))
			notifiers[key] = nwslog.NewLoggingNotifier(client, key, logger)
		}

		deps.Runner = &pipeline.Runner{
			Fetcher:    fetcher,
			Scanner:    deps.Scanner,
			Extractors: extractors,
			Images:     nwhttp.NewImageFetcher(nwhttp.WithImageLogger(logger)),
			Notifiers:  notifiers,
			States:     fs.NewStateStore(cfg.StatePath),
			Sources:    cfg.Sources,
			Logger:     logger,
		}
	}

	return kongCtx.Run(deps)
}

func defaultConfigPath() string {
	if path := os.Getenv("NEWSWATCH_CONFIG"); path != "" {
		return path
	}
	return "newswatch.yml"
}
