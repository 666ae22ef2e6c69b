// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan builds output plans: interactively, by asking for names and
// page ranges, or from a YAML plan file.
package plan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/pdf-splitter/internal/prompt"
	"github.com/pdiddy/pdf-splitter/pkg/types"
)

const (
	pdfExt    = ".pdf"
	separator = "--------------------------------"

	replacesSourceMsg = "That name is used by the source file. Choose another name."
)

// Options controls interactive plan collection.
type Options struct {
	// Dir is where outputs will be written; used for overwrite checks.
	Dir string

	// Source is the file name of the source document. No output may use it.
	Source string

	// PageCount is the number of pages in the source document.
	PageCount int

	// MaxOutputs bounds the number of outputs (default 100).
	MaxOutputs int

	// AllowHidden permits names starting with a dot.
	AllowHidden bool

	// ConfirmOverwrite asks before reusing the name of an existing file.
	ConfirmOverwrite bool
}

// Collect asks how many outputs to create and then, for each, a file name
// and a first and last page. Pages are bounded by the source page count and
// the last page by the first, so every returned interval is valid. Ranges
// may overlap. Outputs are returned in entry order.
func Collect(ctx context.Context, p *prompt.Prompter, opts Options) ([]types.OutputFile, error) {
	maxOutputs := opts.MaxOutputs
	if maxOutputs <= 0 {
		maxOutputs = types.DefaultMaxOutputs
	}

	p.Println("\nHow many output files do you want to create?")
	count, err := p.Int(ctx, p.Prefix(),
		fmt.Sprintf("Please enter a number between 1 and %d", maxOutputs), 1, maxOutputs)
	if err != nil {
		return nil, err
	}

	outputs := make([]types.OutputFile, 0, count)
	for i := 0; i < count; i++ {
		p.Println(separator)
		p.Printf("Output file %d:\n", i+1)

		name, err := askName(ctx, p, opts)
		if err != nil {
			return nil, err
		}
		start, err := p.Int(ctx, p.Prefix()+"First page: ", "Invalid page number", 1, opts.PageCount)
		if err != nil {
			return nil, err
		}
		end, err := p.Int(ctx, p.Prefix()+"Last page: ", "Invalid page number", start, opts.PageCount)
		if err != nil {
			return nil, err
		}

		outputs = append(outputs, types.OutputFile{
			Name:     name + pdfExt,
			Interval: types.PageInterval{Start: start, End: end},
		})
	}
	return outputs, nil
}

// askName re-prompts until the validator accepts the name, the name differs
// from the source, and, when requested, the user agrees to overwrite an
// existing file.
func askName(ctx context.Context, p *prompt.Prompter, opts Options) (string, error) {
	for {
		name, ok, err := p.FileName(ctx, p.Prefix()+"File name: ", opts.AllowHidden)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		if (types.OutputFile{Name: name + pdfExt}).Replaces(opts.Source) {
			p.Println(replacesSourceMsg)
			continue
		}
		if !opts.ConfirmOverwrite || !exists(filepath.Join(opts.Dir, name+pdfExt)) {
			return name, nil
		}
		yes, err := p.Confirm(ctx, fmt.Sprintf("%s%s%s already exists. Overwrite? [y/N] ", p.Prefix(), name, pdfExt))
		if err != nil {
			return "", err
		}
		if yes {
			return name, nil
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
