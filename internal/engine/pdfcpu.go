// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdf-splitter/pkg/types"
)

var disableConfigDir sync.Once

// PDFCPU is the in-process engine backed by github.com/pdfcpu/pdfcpu.
type PDFCPU struct {
	conf *model.Configuration
	log  *logrus.Logger
}

// NewPDFCPU creates a pdfcpu engine using the given validation mode.
func NewPDFCPU(mode types.ValidationMode, log *logrus.Logger) (*PDFCPU, error) {
	// pdfcpu otherwise writes a config file under the user's config dir.
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	switch mode {
	case types.ValidationRelaxed, "":
		conf.ValidationMode = model.ValidationRelaxed
	case types.ValidationStrict:
		conf.ValidationMode = model.ValidationStrict
	default:
		return nil, fmt.Errorf("unsupported validation mode %q: use %s or %s",
			mode, types.ValidationRelaxed, types.ValidationStrict)
	}
	return &PDFCPU{conf: conf, log: log}, nil
}

func (e *PDFCPU) Name() string { return string(types.BackendPDFCPU) }

// Open reads, validates, and optimizes the source. The file stays open
// until the document is closed.
func (e *PDFCPU) Open(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	pdfCtx, err := api.ReadValidateAndOptimize(f, e.conf)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	e.log.WithFields(logrus.Fields{
		"path":  path,
		"pages": pdfCtx.PageCount,
	}).Debug("opened source with pdfcpu")

	return &pdfcpuDocument{f: f, ctx: pdfCtx, path: path, log: e.log}, nil
}

type pdfcpuDocument struct {
	f    *os.File
	ctx  *model.Context
	path string
	log  *logrus.Logger
}

func (d *pdfcpuDocument) PageCount() int { return d.ctx.PageCount }

func (d *pdfcpuDocument) ExtractPages(pages []int, w io.Writer) error {
	if err := checkPages(pages, d.ctx.PageCount); err != nil {
		return err
	}

	dest, err := pdfcpu.ExtractPages(d.ctx, pages, false)
	if err != nil {
		return fmt.Errorf("%w: %s pages %s: %v", ErrRead, d.path, PageRanges(pages), err)
	}

	d.log.WithFields(logrus.Fields{
		"path":  d.path,
		"pages": PageRanges(pages),
	}).Debug("extracted pages")

	if err := api.WriteContext(dest, w); err != nil {
		return fmt.Errorf("writing extracted pages: %w", err)
	}
	return nil
}

func (d *pdfcpuDocument) Close() error {
	return d.f.Close()
}
