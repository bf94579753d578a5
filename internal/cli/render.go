package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrlokans/zipshelf/internal/archive"
	"github.com/mrlokans/zipshelf/internal/config"
	"github.com/mrlokans/zipshelf/internal/exporters"
	"github.com/mrlokans/zipshelf/internal/importers"
	"github.com/mrlokans/zipshelf/internal/logging"
	"github.com/mrlokans/zipshelf/internal/metrics"
)

// ErrRunFailed is returned once a failed run has already been reported on stderr.
var ErrRunFailed = errors.New("render failed")

// RenderCommand extracts the book archive and prints its books to the console
type RenderCommand struct {
	ZipPath    string
	ExtractDir string
	TextWidth  int
	Verbose    bool

	Stdout io.Writer
	Stderr io.Writer

	cfg *config.Config
}

// NewRenderCommand creates a RenderCommand bound to the process's standard streams
func NewRenderCommand() *RenderCommand {
	return &RenderCommand{Stdout: os.Stdout, Stderr: os.Stderr}
}

// ParseFlags loads the environment configuration and applies flag overrides
func (cmd *RenderCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()

	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(cmd.Stderr)

	fs.StringVar(&cmd.ZipPath, "zip", cfg.ZipPath, "Path to the zip archive of JSON book records")
	fs.StringVar(&cmd.ExtractDir, "dir", cfg.ExtractDir, "Directory the archive is extracted into (wiped on every run)")
	fs.IntVar(&cmd.TextWidth, "width", cfg.TextWidth, "Column at which console output wraps")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(cmd.Stderr, "Usage: %s render [options]\n\n", os.Args[0])
		fmt.Fprintf(cmd.Stderr, "Extract a zip of JSON book records and print them as a book list.\n\n")
		fmt.Fprintf(cmd.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(cmd.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(cmd.Stderr, "  ZIP_PATH, EXTRACT_DIR, TEXT_WIDTH, MAX_ENTRY_SIZE, LOG_LEVEL\n")
		fmt.Fprintf(cmd.Stderr, "\nExamples:\n")
		fmt.Fprintf(cmd.Stderr, "  %s render\n", os.Args[0])
		fmt.Fprintf(cmd.Stderr, "  %s render -zip ./books.zip -dir /tmp/books -width 100\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg.ZipPath = cmd.ZipPath
	cfg.ExtractDir = cmd.ExtractDir
	cfg.TextWidth = cmd.TextWidth
	if cmd.Verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cmd.cfg = cfg
	return nil
}

// Run renders the archive, stopping early on SIGINT or SIGTERM
func (cmd *RenderCommand) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cmd.RunContext(ctx)
}

// RunContext runs the pipeline once. A failure is reported on stderr here and
// ErrRunFailed is returned, so callers only need to pick the exit code.
func (cmd *RenderCommand) RunContext(ctx context.Context) error {
	if cmd.cfg == nil {
		if err := cmd.ParseFlags(nil); err != nil {
			return err
		}
	}

	logger := logging.New(cmd.cfg.Logging.Level, cmd.Stderr).
		With(zap.String("run_id", uuid.NewString()))
	defer func() { _ = logger.Sync() }()

	m := metrics.NewMetrics()
	pipeline := importers.NewPipeline(
		archive.NewZipExtractor(cmd.cfg.MaxEntrySize),
		importers.NewJSONLoader(logger, m),
		exporters.NewHTMLRenderer(),
		exporters.NewConsoleDisplay(cmd.Stdout, cmd.cfg.TextWidth),
		logger,
		m,
	)

	logger.Debug("starting render",
		zap.String("zip_path", cmd.cfg.ZipPath),
		zap.String("extract_dir", cmd.cfg.ExtractDir),
	)

	start := time.Now()
	result, err := pipeline.Run(ctx, cmd.cfg.ZipPath, cmd.cfg.ExtractDir)
	logSummary(logger, m, result, time.Since(start))

	if err != nil {
		cmd.reportError(err)
		return ErrRunFailed
	}
	return nil
}

func (cmd *RenderCommand) reportError(err error) {
	fmt.Fprintf(cmd.Stderr, "Error: %v\n", err)
}

func logSummary(logger *zap.Logger, m *metrics.Metrics, result importers.RunResult, elapsed time.Duration) {
	summary, err := m.Summary()
	if err != nil {
		logger.Warn("failed to gather run metrics", zap.Error(err))
		return
	}

	logger.Info("run summary",
		zap.String("state", string(result.State)),
		zap.Float64("books", summary["zipshelf_books_total"]),
		zap.Float64("json_files", summary["zipshelf_json_files_total"]),
		zap.Float64("parse_warnings", summary["zipshelf_parse_warnings_total"]),
		zap.Duration("duration", elapsed),
	)
}
