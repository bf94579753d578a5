package importers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/zipshelf/internal/archive"
	"github.com/mrlokans/zipshelf/internal/entities"
	"github.com/mrlokans/zipshelf/internal/files"
	"github.com/mrlokans/zipshelf/internal/metrics"
)

// Stage names one step of the pipeline.
type Stage string

const (
	StageCheck   Stage = "check"
	StageExtract Stage = "extract"
	StageList    Stage = "list"
	StageLoad    Stage = "load"
	StageRender  Stage = "render"
	StageDisplay Stage = "display"
)

// Description is the human readable prefix used when a stage fails.
func (s Stage) Description() string {
	switch s {
	case StageCheck:
		return "archive not found or unreadable"
	case StageExtract:
		return "could not extract archive"
	case StageList:
		return "could not list extracted files"
	case StageLoad:
		return "could not load books"
	case StageRender:
		return "could not render books"
	case StageDisplay:
		return "could not display books"
	default:
		return string(s)
	}
}

// State is the position of a run in the stage sequence.
type State string

const (
	StateChecking   State = "checking"
	StateExtracting State = "extracting"
	StateListing    State = "listing"
	StateLoading    State = "loading"
	StateRendering  State = "rendering"
	StateDisplaying State = "displaying"
	StateDisplayed  State = "displayed"
	StateFailed     State = "failed"
)

// Renderer turns normalized books into an HTML fragment.
type Renderer interface {
	Render(books []entities.Book) (string, error)
}

// Display shows the final fragment to the user.
type Display interface {
	Display(fragment string) error
}

// RunResult describes how far a run got. HTML and Books are set once the
// corresponding stage succeeded.
type RunResult struct {
	State State
	Books []entities.Book
	HTML  string
}

// Pipeline handles the whole import workflow:
// check → extract → list → load → render → display.
type Pipeline struct {
	extractor archive.Extractor
	loader    *JSONLoader
	renderer  Renderer
	display   Display
	logger    *zap.Logger
	metrics   *metrics.Metrics

	checkPath func(path string) (string, error)
	listFiles func(ctx context.Context, dir string) ([]string, error)
}

// NewPipeline creates a pipeline from its stages. logger and m may be nil.
func NewPipeline(extractor archive.Extractor, loader *JSONLoader, renderer Renderer, display Display, logger *zap.Logger, m *metrics.Metrics) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		extractor: extractor,
		loader:    loader,
		renderer:  renderer,
		display:   display,
		logger:    logger,
		metrics:   m,
		checkPath: files.CheckReadable,
		listFiles: files.ListRecursive,
	}
}

// Run executes every stage in order. The first failing stage ends the run:
// the result is left in StateFailed and the error is a *StageError.
func (p *Pipeline) Run(ctx context.Context, archivePath, extractDir string) (RunResult, error) {
	result := RunResult{State: StateChecking}
	start := time.Now()

	fail := func(stage Stage, err error) (RunResult, error) {
		p.logger.Debug("stage failed",
			zap.String("stage", string(stage)),
			zap.String("state", string(result.State)),
			zap.Error(err),
		)
		result.State = StateFailed
		p.metrics.IncRun(metrics.OutcomeFailed)
		return result, &StageError{Stage: stage, Err: err}
	}

	var zipPath string
	if err := p.runStage(ctx, StageCheck, func() (err error) {
		zipPath, err = p.checkPath(archivePath)
		return err
	}); err != nil {
		return fail(StageCheck, err)
	}

	result.State = StateExtracting
	var dataDir string
	if err := p.runStage(ctx, StageExtract, func() (err error) {
		dataDir, err = p.extractor.Extract(ctx, zipPath, extractDir)
		return err
	}); err != nil {
		return fail(StageExtract, err)
	}

	result.State = StateListing
	var paths []string
	if err := p.runStage(ctx, StageList, func() (err error) {
		paths, err = p.listFiles(ctx, dataDir)
		return err
	}); err != nil {
		return fail(StageList, err)
	}
	p.metrics.AddFilesListed(len(paths))

	result.State = StateLoading
	if err := p.runStage(ctx, StageLoad, func() (err error) {
		result.Books, err = p.loader.Load(ctx, paths)
		return err
	}); err != nil {
		return fail(StageLoad, err)
	}

	result.State = StateRendering
	if err := p.runStage(ctx, StageRender, func() (err error) {
		result.HTML, err = p.renderer.Render(result.Books)
		return err
	}); err != nil {
		return fail(StageRender, err)
	}

	result.State = StateDisplaying
	if err := p.runStage(ctx, StageDisplay, func() error {
		return p.display.Display(result.HTML)
	}); err != nil {
		return fail(StageDisplay, err)
	}

	result.State = StateDisplayed
	p.metrics.IncRun(metrics.OutcomeDisplayed)
	p.logger.Info("books displayed",
		zap.Int("books", len(result.Books)),
		zap.Int("files", len(paths)),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// runStage refuses to start a stage once ctx is done.
func (p *Pipeline) runStage(ctx context.Context, stage Stage, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.logger.Debug("stage started", zap.String("stage", string(stage)))
	started := time.Now()
	err := fn()
	p.metrics.ObserveStage(string(stage), time.Since(started))
	return err
}
