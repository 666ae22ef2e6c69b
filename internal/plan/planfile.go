// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-splitter/internal/prompt"
	"github.com/pdiddy/pdf-splitter/pkg/types"
)

// Plan is the on-disk representation of an output plan. A plan saved from
// an interactive session can be replayed later without prompts.
type Plan struct {
	// Source is the file name of the source PDF inside the working directory.
	Source  string        `yaml:"source"`
	Outputs []PlannedFile `yaml:"outputs"`
	Created time.Time     `yaml:"created,omitempty"`
}

// PlannedFile is one output entry. Name is given without the .pdf extension.
type PlannedFile struct {
	Name      string `yaml:"name"`
	FirstPage int    `yaml:"first_page"`
	LastPage  int    `yaml:"last_page"`
}

// New builds a Plan from collected outputs.
func New(source string, outputs []types.OutputFile) Plan {
	p := Plan{Source: source, Created: time.Now().UTC()}
	for _, o := range outputs {
		p.Outputs = append(p.Outputs, PlannedFile{
			Name:      strings.TrimSuffix(o.Name, pdfExt),
			FirstPage: o.Interval.Start,
			LastPage:  o.Interval.End,
		})
	}
	return p
}

// WriteFile saves the plan as YAML.
func WriteFile(path string, p Plan) error {
	data, err := yaml.Marshal(&p)
	if err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile loads a plan saved with WriteFile or written by hand.
func ReadFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	if p.Source == "" {
		return nil, fmt.Errorf("plan file %s: source is required", path)
	}
	if len(p.Outputs) == 0 {
		return nil, fmt.Errorf("plan file %s: at least one output is required", path)
	}
	return &p, nil
}

// ErrReplacesSource reports a planned output named like the plan's source.
var ErrReplacesSource = errors.New("output would replace the source file")

// OutputFiles validates every entry against the source page count and the
// file name rules, and returns the outputs with the .pdf extension added.
// No output may share the source's name.
func (p *Plan) OutputFiles(pageCount int, allowHidden bool) ([]types.OutputFile, error) {
	outputs := make([]types.OutputFile, 0, len(p.Outputs))
	for i, f := range p.Outputs {
		name := strings.TrimSpace(f.Name)
		if err := prompt.ValidateFileName(name, allowHidden); err != nil {
			return nil, fmt.Errorf("output %d %q: %w", i+1, f.Name, err)
		}
		out := types.OutputFile{
			Name:     name + pdfExt,
			Interval: types.PageInterval{Start: f.FirstPage, End: f.LastPage},
		}
		if out.Replaces(p.Source) {
			return nil, fmt.Errorf("output %d %q: %w", i+1, f.Name, ErrReplacesSource)
		}
		if err := out.Interval.Validate(pageCount); err != nil {
			var se *types.SplitError
			if errors.As(err, &se) {
				se.Path = out.Name
			}
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}
