package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ZacharyZcR/pedump/internal/hexdump"
	"github.com/fatih/color"
)

// DumpPrinter writes compressed dump text, optionally one page at a time
// with an Enter prompt between pages.
type DumpPrinter struct {
	out      io.Writer
	in       *bufio.Reader
	pageSize int
}

// NewDumpPrinter creates a printer. A pageSize below 1 prints everything at
// once and never reads from in.
func NewDumpPrinter(out io.Writer, in io.Reader, pageSize int) *DumpPrinter {
	return &DumpPrinter{out: out, in: bufio.NewReader(in), pageSize: pageSize}
}

// Print writes text. It stops early without error when the input closes
// while waiting at a page prompt.
func (p *DumpPrinter) Print(text string) error {
	pages := hexdump.Paginate(text, p.pageSize)

	for i, page := range pages.All() {
		for _, line := range page {
			p.printLine(line)
		}
		if p.pageSize < 1 || i == pages.Len()-1 {
			continue
		}

		gray := color.New(color.FgHiBlack)
		_, _ = gray.Fprintf(p.out, "-- 第 %d/%d 页，按 Enter 继续 --", i+1, pages.Len())
		_, err := p.in.ReadString('\n')
		fmt.Fprintln(p.out)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("读取输入失败: %w", err)
		}
	}
	return nil
}

func (p *DumpPrinter) printLine(line string) {
	if line == hexdump.RunMarker {
		gray := color.New(color.FgHiBlack)
		_, _ = gray.Fprintln(p.out, line)
		return
	}

	offset, rest, ok := strings.Cut(line, "  ")
	if !ok {
		fmt.Fprintln(p.out, line)
		return
	}
	cyan := color.New(color.FgCyan)
	_, _ = cyan.Fprint(p.out, offset)
	fmt.Fprintf(p.out, "  %s\n", rest)
}
