// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split writes planned output files: for each output it copies the
// planned source pages into a new document and stores it in the target
// directory.
package split

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-splitter/internal/engine"
	"github.com/pdiddy/pdf-splitter/pkg/types"
)

const (
	// tempPattern names in-progress outputs; without a .pdf suffix they
	// never show up as candidate sources.
	tempPattern = ".pdf-splitter-*"
	outputPerm  = 0o644
)

// Generator writes output files from an opened source document.
type Generator struct {
	doc      engine.Document
	dir      string
	source   string
	log      *logrus.Logger
	progress *progressbar.ProgressBar
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the diagnostic logger.
func WithLogger(log *logrus.Logger) Option {
	return func(g *Generator) { g.log = log }
}

// WithSource names the source document. It appears in read errors, and
// no output may replace it.
func WithSource(name string) Option {
	return func(g *Generator) { g.source = name }
}

// WithProgress advances bar by each output's page count as outputs complete.
func WithProgress(bar *progressbar.ProgressBar) Option {
	return func(g *Generator) { g.progress = bar }
}

// NewGenerator creates a Generator that writes into dir.
func NewGenerator(doc engine.Document, dir string, opts ...Option) *Generator {
	g := &Generator{doc: doc, dir: dir}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logrus.StandardLogger()
	}
	return g
}

// Generate writes every output in plan order, calling onGenerated after each
// completes. The first failure stops generation and is returned as a
// *types.SplitError; outputs written before it stay on disk.
func Generate(ctx context.Context, doc engine.Document, dir string, outputs []types.OutputFile, onGenerated func(types.OutputFile)) error {
	return NewGenerator(doc, dir).Generate(ctx, outputs, onGenerated)
}

// Generate writes every output in plan order. See the package-level Generate.
func (g *Generator) Generate(ctx context.Context, outputs []types.OutputFile, onGenerated func(types.OutputFile)) error {
	for _, out := range outputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.writeOutput(out); err != nil {
			g.log.WithError(err).WithField("output", out.Name).Debug("generation failed")
			return err
		}
		if g.progress != nil {
			g.progress.Add(out.Interval.Len())
		}
		if onGenerated != nil {
			onGenerated(out)
		}
	}
	if g.progress != nil {
		g.progress.Finish()
	}
	return nil
}

// ErrReplacesSource reports an output whose name is the source document's.
var ErrReplacesSource = errors.New("output would replace the source file")

// writeOutput owns the destination handle for one output. Pages are written
// to a temporary file in the target directory that replaces the target only
// once it is complete, so a failed output leaves any existing file with the
// same name untouched.
func (g *Generator) writeOutput(out types.OutputFile) (err error) {
	if verr := out.Interval.Validate(g.doc.PageCount()); verr != nil {
		var se *types.SplitError
		if errors.As(verr, &se) {
			se.Path = out.Name
		}
		return verr
	}
	if out.Replaces(g.source) {
		return &types.SplitError{Kind: types.KindDestinationWrite, Path: out.Name, Err: ErrReplacesSource}
	}
	pages := out.Pages().Drain()
	path := filepath.Join(g.dir, out.Name)

	tmp, err := os.CreateTemp(g.dir, tempPattern)
	if err != nil {
		return &types.SplitError{Kind: types.KindDestinationWrite, Path: out.Name, Err: err}
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	g.log.WithFields(logrus.Fields{
		"output": path,
		"pages":  out.Interval.String(),
	}).Debug("writing output")

	w := &destWriter{w: tmp}
	if err := g.doc.ExtractPages(pages, w); err != nil {
		return classifyExtract(err, w.err, out.Name, g.source)
	}
	if err := tmp.Chmod(outputPerm); err != nil {
		return &types.SplitError{Kind: types.KindDestinationWrite, Path: out.Name, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &types.SplitError{Kind: types.KindDestinationWrite, Path: out.Name, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &types.SplitError{Kind: types.KindDestinationWrite, Path: out.Name, Err: err}
	}
	return nil
}

// classifyExtract maps an engine failure onto the error taxonomy. A failed
// write to the destination takes precedence over whatever the engine made
// of it.
func classifyExtract(err, writeErr error, name, source string) error {
	if writeErr != nil {
		return &types.SplitError{Kind: types.KindDestinationWrite, Path: name, Err: writeErr}
	}
	var se *types.SplitError
	if errors.As(err, &se) {
		if se.Path == "" {
			se.Path = name
		}
		return se
	}
	if source == "" {
		source = name
	}
	if errors.Is(err, engine.ErrRead) {
		return &types.SplitError{Kind: types.KindSourceRead, Path: source, Err: err}
	}
	if errors.Is(err, os.ErrNotExist) {
		return &types.SplitError{Kind: types.KindSourceNotFound, Path: source, Err: err}
	}
	return &types.SplitError{Kind: types.KindUnexpected, Path: name, Err: fmt.Errorf("generating %s: %w", name, err)}
}

// destWriter remembers the first write error so destination failures can be
// told apart from engine failures.
type destWriter struct {
	w   io.Writer
	err error
}

func (d *destWriter) Write(p []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	n, err := d.w.Write(p)
	if err != nil {
		d.err = err
	}
	return n, err
}
