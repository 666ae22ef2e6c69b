// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session drives one split session: choose a directory and a
// source PDF, collect an output plan, and generate the outputs. Sessions
// run interactively or from a saved plan.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-splitter/internal/engine"
	"github.com/pdiddy/pdf-splitter/internal/plan"
	"github.com/pdiddy/pdf-splitter/internal/prompt"
	"github.com/pdiddy/pdf-splitter/internal/scan"
	"github.com/pdiddy/pdf-splitter/internal/split"
	"github.com/pdiddy/pdf-splitter/pkg/types"
)

// Recorder stores generated outputs. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, rec types.SplitRecord) (types.SplitRecord, error)
}

// Session holds the state of one run. A Session is single use.
type Session struct {
	cfg      types.SplitterConfig
	eng      engine.Engine
	p        *prompt.Prompter
	log      *logrus.Logger
	recorder Recorder
	progress io.Writer
	savePlan string

	state   State
	visited []State
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the diagnostic logger.
func WithLogger(log *logrus.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithRecorder records every generated output.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithProgress draws a generation progress bar on w.
func WithProgress(w io.Writer) Option {
	return func(s *Session) { s.progress = w }
}

// WithSavePlan writes the collected plan to path before generating.
func WithSavePlan(path string) Option {
	return func(s *Session) { s.savePlan = path }
}

// New creates a session reading answers from in and printing to out.
func New(cfg types.SplitterConfig, eng engine.Engine, in io.Reader, out io.Writer, opts ...Option) *Session {
	cfg = cfg.WithDefaults()
	s := &Session{
		cfg:     cfg,
		eng:     eng,
		p:       prompt.New(in, out, cfg.PromptPrefix),
		state:   StateStart,
		visited: []State{StateStart},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	return s
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Visited returns the states the session has passed through, in order.
func (s *Session) Visited() []State {
	return append([]State(nil), s.visited...)
}

func (s *Session) advance(next State) {
	if next <= s.state {
		panic(fmt.Sprintf("session: cannot move from %s back to %s", s.state, next))
	}
	s.log.WithField("state", next.String()).Debug("session state")
	s.state = next
	s.visited = append(s.visited, next)
}

// Run executes an interactive session. Every failure is printed as a single
// line before Run returns it; early exits return a *types.SplitError and an
// interrupt returns the context's error.
func (s *Session) Run(ctx context.Context) (err error) {
	defer func() { err = s.finish(err) }()

	dir, err := s.askDirectory(ctx)
	if err != nil {
		return err
	}
	files, err := s.listFiles(dir)
	if err != nil {
		return err
	}
	source, err := s.selectFile(ctx, files)
	if err != nil {
		return err
	}

	doc, err := s.openSource(ctx, dir, source)
	if err != nil {
		return err
	}
	defer doc.Close()

	outputs, err := plan.Collect(ctx, s.p, plan.Options{
		Dir:              dir,
		Source:           source,
		PageCount:        doc.PageCount(),
		MaxOutputs:       s.cfg.MaxOutputs,
		AllowHidden:      s.cfg.AllowHidden,
		ConfirmOverwrite: s.cfg.ConfirmOverwrite,
	})
	if err != nil {
		return err
	}
	if s.savePlan != "" {
		if err := plan.WriteFile(s.savePlan, plan.New(source, outputs)); err != nil {
			s.log.WithError(err).Warn("could not save plan")
		} else {
			s.p.Printf("Plan saved to %s\n", s.savePlan)
		}
	}
	s.advance(StatePlanCollected)

	return s.generate(ctx, doc, dir, source, outputs)
}

// RunPlan executes a session from a saved plan without prompting. The
// directory comes from the configuration (default ".").
func (s *Session) RunPlan(ctx context.Context, pl *plan.Plan) (err error) {
	defer func() { err = s.finish(err) }()

	dir := s.cfg.Dir
	if dir == "" {
		dir = "."
	}
	s.advance(StateDirectoryResolved)

	files, err := s.listFiles(dir)
	if err != nil {
		return err
	}
	if !slices.Contains(files, pl.Source) {
		return &types.SplitError{Kind: types.KindSourceNotFound, Path: pl.Source}
	}
	s.advance(StateFileSelected)

	doc, err := s.openSource(ctx, dir, pl.Source)
	if err != nil {
		return err
	}
	defer doc.Close()

	outputs, err := pl.OutputFiles(doc.PageCount(), s.cfg.AllowHidden)
	if err != nil {
		return err
	}
	s.advance(StatePlanCollected)

	return s.generate(ctx, doc, dir, pl.Source, outputs)
}

// finish prints the single line describing err, if any, and moves the
// session to its end state.
func (s *Session) finish(err error) error {
	defer func() {
		if s.state != StateEnd {
			s.advance(StateEnd)
		}
	}()

	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, io.EOF):
		s.p.Println("Exiting...")
		return err
	}
	se := types.Classify(err, "")
	s.p.Println(se.Message())
	return se
}

func (s *Session) askDirectory(ctx context.Context) (string, error) {
	s.p.Println("PDF File Splitter")
	dir := s.cfg.Dir
	if dir == "" {
		s.p.Println("Enter the path to the directory containing the PDF files you want to split,\nor press enter to use the current directory.")
		line, err := s.p.Line(ctx, s.p.Prefix())
		if err != nil {
			return "", err
		}
		dir = line
	}
	if dir == "" {
		dir = "."
	}
	s.advance(StateDirectoryResolved)
	return dir, nil
}

func (s *Session) listFiles(dir string) ([]string, error) {
	files, err := scan.ListPDFFiles(dir)
	if err != nil {
		if errors.Is(err, scan.ErrNotFound) {
			return nil, &types.SplitError{Kind: types.KindDirectoryNotFound, Path: dir, Err: err}
		}
		return nil, &types.SplitError{Kind: types.KindUnexpected, Path: dir, Err: err}
	}
	if len(files) == 0 {
		return nil, &types.SplitError{Kind: types.KindNoPDFFiles, Path: dir}
	}
	s.log.WithFields(logrus.Fields{"dir": dir, "files": len(files)}).Debug("listed pdf files")
	s.advance(StateFilesListed)
	return files, nil
}

func (s *Session) selectFile(ctx context.Context, files []string) (string, error) {
	s.p.Println("\nSelect a file to split:")
	for i, f := range files {
		s.p.Printf("%d. %s\n", i+1, f)
	}
	n, err := s.p.Int(ctx, s.p.Prefix(),
		fmt.Sprintf("Please enter a number between 1 and %d", len(files)), 1, len(files))
	if err != nil {
		return "", err
	}
	s.advance(StateFileSelected)
	return files[n-1], nil
}

func (s *Session) openSource(ctx context.Context, dir, name string) (engine.Document, error) {
	doc, err := s.eng.Open(ctx, filepath.Join(dir, name))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, classifyOpen(err, name)
	}
	s.p.Printf("Selected file: %s (%d pages)\n", name, doc.PageCount())
	s.advance(StateSourceOpened)
	return doc, nil
}

// classifyOpen maps an engine open failure: missing files are
// SourceNotFound, unparseable ones Unexpected, other filesystem errors
// SourceRead.
func classifyOpen(err error, name string) error {
	if errors.Is(err, engine.ErrMalformed) {
		return &types.SplitError{Kind: types.KindUnexpected, Path: name, Err: err}
	}
	return types.Classify(err, name)
}

func (s *Session) generate(ctx context.Context, doc engine.Document, dir, source string, outputs []types.OutputFile) error {
	s.p.Println("\nGenerating output files...")

	opts := []split.Option{split.WithSource(source), split.WithLogger(s.log)}
	if s.progress != nil {
		opts = append(opts, split.WithProgress(newProgressBar(s.progress, outputs)))
	}

	sourcePath := absPath(filepath.Join(dir, source))
	err := split.NewGenerator(doc, dir, opts...).Generate(ctx, outputs, func(out types.OutputFile) {
		s.p.Printf("Generated: %s\n", out)
		s.record(ctx, sourcePath, absPath(filepath.Join(dir, out.Name)), out)
	})
	if err != nil {
		return err
	}
	s.advance(StateGenerated)
	return nil
}

func (s *Session) record(ctx context.Context, source, output string, out types.OutputFile) {
	if s.recorder == nil {
		return
	}
	rec, err := s.recorder.Record(ctx, types.SplitRecord{
		Source:    source,
		Output:    output,
		FirstPage: out.Interval.Start,
		LastPage:  out.Interval.End,
		Pages:     out.Interval.Len(),
		Backend:   types.Backend(s.eng.Name()),
	})
	if err != nil {
		s.log.WithError(err).WithField("output", output).Warn("could not record split history")
		return
	}
	s.log.WithField("id", rec.ID).Debug("recorded split")
}

func newProgressBar(w io.Writer, outputs []types.OutputFile) *progressbar.ProgressBar {
	total := 0
	for _, o := range outputs {
		total += o.Interval.Len()
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Splitting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
