// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-splitter/pkg/types"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	RunPiped(ctx context.Context, name string, args []string, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (o *osExecutor) RunPiped(ctx context.Context, name string, args []string, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

var defaultExec executor = &osExecutor{}

// QPDF is the engine that shells out to the qpdf command-line tool.
type QPDF struct {
	bin  string
	exec executor
	log  *logrus.Logger
}

// NewQPDF creates a qpdf engine. It verifies that bin is on PATH.
func NewQPDF(bin string, log *logrus.Logger) (*QPDF, error) {
	return newQPDF(bin, defaultExec, log)
}

func newQPDF(bin string, exec executor, log *logrus.Logger) (*QPDF, error) {
	if bin == "" {
		bin = types.DefaultQPDFPath
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("qpdf backend unavailable: %w", err)
	}
	return &QPDF{bin: bin, exec: exec, log: log}, nil
}

func (e *QPDF) Name() string { return string(types.BackendQPDF) }

// Open checks the file and asks qpdf for its page count. qpdf always gets
// an absolute path so a file name starting with "-" is not taken for an
// option.
func (e *QPDF) Open(ctx context.Context, path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	f.Close()

	path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	out, err := e.exec.Output(ctx, e.bin, "--show-npages", path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil || n < 1 {
		return nil, fmt.Errorf("%w: %s: unexpected page count %q", ErrMalformed, path, strings.TrimSpace(string(out)))
	}

	e.log.WithFields(logrus.Fields{
		"path":  path,
		"pages": n,
	}).Debug("opened source with qpdf")

	return &qpdfDocument{engine: e, ctx: ctx, path: path, pages: n}, nil
}

// qpdfDocument keeps the context it was opened with so page extraction
// subprocesses stop when the session is interrupted.
type qpdfDocument struct {
	engine *QPDF
	ctx    context.Context
	path   string
	pages  int
}

func (d *qpdfDocument) PageCount() int { return d.pages }

func (d *qpdfDocument) ExtractPages(pages []int, w io.Writer) error {
	if err := checkPages(pages, d.pages); err != nil {
		return err
	}
	ranges := PageRanges(pages)
	args := []string{"--empty", "--pages", d.path, ranges, "--", "-"}

	d.engine.log.WithFields(logrus.Fields{
		"path":  d.path,
		"pages": ranges,
	}).Debug("running qpdf")

	if err := d.engine.exec.RunPiped(d.ctx, d.engine.bin, args, w); err != nil {
		return fmt.Errorf("%w: %s pages %s: %v", ErrRead, d.path, ranges, err)
	}
	return nil
}

func (d *qpdfDocument) Close() error { return nil }
