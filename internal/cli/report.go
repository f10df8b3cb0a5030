// Package cli provides command-line interface utilities.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ZacharyZcR/pedump/internal/pe"
	"github.com/fatih/color"
)

// Reporter formats and prints decoded header tables.
type Reporter struct {
	info         *pe.Info
	out          io.Writer
	showSections bool
}

// NewReporter creates a new reporter for the given PE info.
func NewReporter(info *pe.Info) *Reporter {
	return &Reporter{info: info, out: color.Output, showSections: true}
}

// SetOutput redirects the report.
func (r *Reporter) SetOutput(w io.Writer) {
	r.out = w
}

// SetShowSections toggles the section header table.
func (r *Reporter) SetShowSections(show bool) {
	r.showSections = show
}

// Print outputs the complete header report.
func (r *Reporter) Print() {
	r.printHeader()
	r.printBasicInfo()

	h := r.info.Headers
	r.printFields("DOS头", h.DOS)
	r.printFields("文件头", h.File)
	if h.Optional != nil {
		r.printFields(fmt.Sprintf("可选头 (%s)", r.info.Variant), h.Optional)
		r.printDirectories()
	}
	if r.showSections && h.Optional != nil {
		r.printSections()
	}
}

func (r *Reporter) printHeader() {
	cyan := color.New(color.FgCyan, color.Bold)
	_, _ = cyan.Fprintln(r.out, "\n╔════════════════════════════════════════╗")
	_, _ = cyan.Fprintln(r.out, "║          PEDump 头部信息               ║")
	_, _ = cyan.Fprintln(r.out, "╚════════════════════════════════════════╝")
}

func (r *Reporter) printBasicInfo() {
	yellow := color.New(color.FgYellow, color.Bold)
	_, _ = yellow.Fprintln(r.out, "\n【基本信息】")

	fmt.Fprintf(r.out, "  %-20s: %s\n", "文件路径", r.info.FilePath)
	fmt.Fprintf(r.out, "  %-20s: %s\n", "文件大小", formatSize(r.info.FileSize))
	fmt.Fprintf(r.out, "  %-20s: %s\n", "格式", r.info.Variant)

	if r.info.DecodeErr != nil {
		red := color.New(color.FgRed, color.Bold)
		fmt.Fprintf(r.out, "  %-20s: ", "解析状态")
		_, _ = red.Fprintf(r.out, "✗ %v\n", r.info.DecodeErr)
	}
}

func (r *Reporter) printFields(title string, fields []pe.HeaderField) {
	yellow := color.New(color.FgYellow, color.Bold)
	_, _ = yellow.Fprintf(r.out, "\n【%s】(共 %d 个字段)\n", title, len(fields))

	if len(fields) == 0 {
		gray := color.New(color.FgHiBlack)
		_, _ = gray.Fprintln(r.out, "  无法解析")
		return
	}

	fmt.Fprintln(r.out, strings.Repeat("-", 100))
	fmt.Fprintf(r.out, "  %-10s %-30s %-22s %s\n", "偏移", "名称", "值", "含义")
	fmt.Fprintln(r.out, strings.Repeat("-", 100))

	cyan := color.New(color.FgCyan)
	for _, f := range fields {
		_, _ = cyan.Fprintf(r.out, "  %-10s", f.Offset)
		fmt.Fprintf(r.out, " %-30s %-22s %s\n", f.Name, f.Value, f.Meaning)
	}
	fmt.Fprintln(r.out, strings.Repeat("-", 100))
}

func (r *Reporter) printDirectories() {
	dirs := r.info.Headers.Directories
	yellow := color.New(color.FgYellow, color.Bold)
	_, _ = yellow.Fprintf(r.out, "\n【数据目录】(共 %d 项)\n", len(dirs))

	fmt.Fprintln(r.out, strings.Repeat("-", 100))
	fmt.Fprintf(r.out, "  %-4s %-10s %-22s %-12s %-12s %s\n", "序号", "偏移", "名称", "RVA", "大小", "状态")
	fmt.Fprintln(r.out, strings.Repeat("-", 100))

	green := color.New(color.FgGreen)
	gray := color.New(color.FgHiBlack)
	for _, d := range dirs {
		fmt.Fprintf(r.out, "  [%2d] %-10s %-22s 0x%08X   0x%08X   ", d.Index, d.Offset, d.Name, d.VirtualAddress, d.Size)
		if d.Present() {
			_, _ = green.Fprintln(r.out, d.Meaning)
		} else {
			_, _ = gray.Fprintln(r.out, d.Meaning)
		}
	}
	fmt.Fprintln(r.out, strings.Repeat("-", 100))
}

func (r *Reporter) printSections() {
	sections := r.info.Sections

	yellow := color.New(color.FgYellow, color.Bold)
	_, _ = yellow.Fprintf(r.out, "\n【节区信息】(共 %d 个)\n", len(sections))

	if len(sections) == 0 {
		fmt.Fprintln(r.out, "  未发现节区")
		return
	}

	fmt.Fprintln(r.out, strings.Repeat("-", 100))
	fmt.Fprintf(r.out, "  %-10s %-18s %-12s %-12s %-8s %-12s %s\n",
		"名称", "地址", "原始偏移", "原始大小", "权限", "特征", "熵")
	fmt.Fprintln(r.out, strings.Repeat("-", 100))

	for _, section := range sections {
		// Highlight dangerous permissions (RWX)
		permColor := color.New(color.FgWhite)
		if section.Permissions == "RWX" {
			permColor = color.New(color.FgRed, color.Bold)
		} else if strings.Contains(section.Permissions, "X") {
			permColor = color.New(color.FgYellow)
		}

		fmt.Fprintf(r.out, "  %-10s 0x%-16X 0x%08X   %-12s ",
			section.Name,
			section.Address,
			section.RawOffset,
			formatSize(int64(section.Size)),
		)
		_, _ = permColor.Fprintf(r.out, "%-8s", section.Permissions)
		fmt.Fprintf(r.out, " 0x%08X   %.2f\n", section.Characteristics, section.Entropy)
	}
	fmt.Fprintln(r.out, strings.Repeat("-", 100))
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
