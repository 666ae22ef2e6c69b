// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// PageInterval is an inclusive, 1-indexed range of source pages.
type PageInterval struct {
	Start int `json:"first_page" yaml:"first_page"`
	End   int `json:"last_page" yaml:"last_page"`
}

// Len returns the number of pages in the interval, or 0 when it is inverted.
func (p PageInterval) Len() int {
	if p.End < p.Start {
		return 0
	}
	return p.End - p.Start + 1
}

// Validate checks 1 <= Start <= End <= pageCount.
func (p PageInterval) Validate(pageCount int) error {
	if p.Start < 1 || p.Start > p.End || p.End > pageCount {
		return &SplitError{
			Kind: KindPageOutOfRange,
			Path: p.String(),
			Err:  fmt.Errorf("pages %s outside 1-%d", p, pageCount),
		}
	}
	return nil
}

func (p PageInterval) String() string {
	return fmt.Sprintf("%d-%d", p.Start, p.End)
}

// OutputFile is the plan for one result document: a destination file name
// and the source pages it receives.
type OutputFile struct {
	// Name is the destination file name including the .pdf extension.
	Name string `json:"name" yaml:"name"`

	Interval PageInterval `json:"interval" yaml:"interval"`
}

// Pages returns a new cursor over the output's page numbers.
func (o OutputFile) Pages() *PageCursor {
	return &PageCursor{next: o.Interval.Start, end: o.Interval.End}
}

// Replaces reports whether writing the output would replace the source file
// named by source. Names are compared without regard to case so the check
// also holds on case-insensitive filesystems.
func (o OutputFile) Replaces(source string) bool {
	return source != "" && strings.EqualFold(o.Name, filepath.Base(source))
}

// String formats the output as "name (start-end)".
func (o OutputFile) String() string {
	return fmt.Sprintf("%s (%s)", o.Name, o.Interval)
}

// PageCursor is a finite forward iterator over a page interval. It yields
// each page once; after the last page it stays exhausted.
type PageCursor struct {
	next, end int
}

// Next returns the next page number, or false once the cursor is exhausted.
func (c *PageCursor) Next() (int, bool) {
	if c.next > c.end {
		return 0, false
	}
	page := c.next
	c.next++
	return page, true
}

// Remaining returns how many pages Next will still yield.
func (c *PageCursor) Remaining() int {
	if c.next > c.end {
		return 0
	}
	return c.end - c.next + 1
}

// Drain consumes the cursor and returns the remaining pages in order.
func (c *PageCursor) Drain() []int {
	pages := make([]int, 0, c.Remaining())
	for {
		page, ok := c.Next()
		if !ok {
			return pages
		}
		pages = append(pages, page)
	}
}

// SplitRecord is one entry of the split history: an output that was
// written successfully.
type SplitRecord struct {
	ID        string    `json:"id" yaml:"id"`
	Source    string    `json:"source" yaml:"source"`
	Output    string    `json:"output" yaml:"output"`
	FirstPage int       `json:"first_page" yaml:"first_page"`
	LastPage  int       `json:"last_page" yaml:"last_page"`
	Pages     int       `json:"pages" yaml:"pages"`
	Backend   Backend   `json:"backend" yaml:"backend"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
