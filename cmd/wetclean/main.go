package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wetclean"
	"github.com/fwojciec/wetclean/sqlite"
	wslog "github.com/fwojciec/wetclean/slog"
	"github.com/fwojciec/wetclean/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the run ledger. Nil unless --db is set.
	DB *sqlite.DB

	// Runs is the ledger service. Set before calling Run() to override the
	// SQLite implementation in tests.
	Runs wetclean.RunService
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
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
		kong.Name("wetclean"),
		kong.Description("Extract a clean, deduplicated text corpus from crawl archives."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wetclean --help' to see available commands")
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

	deps.Logger = newLogger(stderr, cli.Verbose)

	cfg, err := yaml.LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", wetclean.ErrorMessage(err))
		return err
	}
	deps.Config = cfg

	// The ledger is only opened when a command can use it.
	switch strings.Fields(kongCtx.Command())[0] {
	case "run", "runs":
		if err := m.openLedger(cli.DB, deps); err != nil {
			fmt.Fprintln(stderr, "Hint: Set WETCLEAN_DB to use a different ledger path")
			return err
		}
		defer m.Close()
	}

	return kongCtx.Run(deps)
}

func (m *Main) openLedger(path string, deps *Dependencies) error {
	if m.Runs != nil {
		deps.Runs = m.Runs
		return nil
	}
	if path == "" {
		return nil
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return fmt.Errorf("failed to open ledger at %q: %w", path, err)
	}
	deps.Runs = wslog.NewLoggingRunService(sqlite.NewRunService(m.DB), deps.Logger)
	return nil
}

// newLogger logs warnings and errors to w, or everything when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
