package hexdump

import (
	"iter"
	"strings"
)

// Pages is a fixed slicing of rendered text into pages of equal line count.
// Advancing is left to the caller.
type Pages struct {
	lines   []string
	perPage int
}

// Paginate splits text into pages of linesPerPage lines. A linesPerPage
// below 1 puts every line on a single page.
func Paginate(text string, linesPerPage int) *Pages {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if text == "" {
		lines = nil
	}
	if linesPerPage < 1 {
		linesPerPage = max(len(lines), 1)
	}
	return &Pages{lines: lines, perPage: linesPerPage}
}

// Len returns the number of pages.
func (p *Pages) Len() int {
	return (len(p.lines) + p.perPage - 1) / p.perPage
}

// Page returns the lines of page i, or nil when i is out of range.
func (p *Pages) Page(i int) []string {
	if i < 0 || i >= p.Len() {
		return nil
	}
	start := i * p.perPage
	end := min(start+p.perPage, len(p.lines))
	return p.lines[start:end:end]
}

// All yields every page in order with its index. Each call starts over.
func (p *Pages) All() iter.Seq2[int, []string] {
	return func(yield func(int, []string) bool) {
		for i := range p.Len() {
			if !yield(i, p.Page(i)) {
				return
			}
		}
	}
}
