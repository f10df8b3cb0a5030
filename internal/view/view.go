// Package view turns analysis results into the rows shown by the
// desktop viewer.
package view

import (
	"fmt"

	"github.com/ZacharyZcR/pedump/internal/hexdump"
	"github.com/ZacharyZcR/pedump/internal/pe"
)

// Route selects the top level view.
type Route int

const (
	RouteInfo Route = iota
	RouteHexdump
)

// Title is the tab label of r.
func (r Route) Title() string {
	switch r {
	case RouteInfo:
		return "Info"
	case RouteHexdump:
		return "Hexdump"
	default:
		return ""
	}
}

// InfoPage selects the table shown on the Info view.
type InfoPage int

const (
	PageDOSHeader InfoPage = iota
	PageDOSStub
	PageNTHeaders
	PageDirectories
	PageSections
)

// InfoPages lists the sidebar entries in display order.
var InfoPages = []InfoPage{PageDOSHeader, PageDOSStub, PageNTHeaders, PageDirectories, PageSections}

// Title is the sidebar label of p.
func (p InfoPage) Title() string {
	switch p {
	case PageDOSHeader:
		return "DOS Header"
	case PageDOSStub:
		return "DOS Stub"
	case PageNTHeaders:
		return "NT Headers"
	case PageDirectories:
		return "Data Directories"
	case PageSections:
		return "Section Headers"
	default:
		return ""
	}
}

var (
	HeaderColumns    = []string{"Offset", "Name", "Value", "Meaning"}
	DirectoryColumns = []string{"Offset", "Name", "RVA", "Size", "Meaning"}
	SectionColumns   = []string{"Offset", "Name", "Addr", "Raw Offset", "Raw Size", "Characteristics", "Perms", "Entropy"}
	HexColumns       = []string{"Offset", "Hex", "Ascii"}
)

// HeaderRows turns header fields into table cells.
func HeaderRows(fields []pe.HeaderField) [][]string {
	rows := make([][]string, len(fields))
	for i, f := range fields {
		rows[i] = []string{f.Offset, f.Name, f.Value.String(), f.Meaning}
	}
	return rows
}

// NTHeaderRows lists the file header followed by the optional header.
func NTHeaderRows(h pe.Resolved) [][]string {
	return append(HeaderRows(h.File), HeaderRows(h.Optional)...)
}

// DirectoryRows lists the 16 data directory slots.
func DirectoryRows(dirs []pe.DataDirectoryEntry) [][]string {
	rows := make([][]string, len(dirs))
	for i, d := range dirs {
		rows[i] = []string{
			d.Offset,
			d.Name,
			fmt.Sprintf("0x%08X", d.VirtualAddress),
			fmt.Sprintf("0x%08X", d.Size),
			d.Meaning,
		}
	}
	return rows
}

// SectionRows lists one row per section header.
func SectionRows(sections []pe.SectionInfo) [][]string {
	rows := make([][]string, len(sections))
	for i, s := range sections {
		rows[i] = []string{
			s.HeaderOffset,
			s.Name,
			fmt.Sprintf("0x%X", s.Address),
			fmt.Sprintf("0x%08X", s.RawOffset),
			fmt.Sprintf("%d", s.Size),
			fmt.Sprintf("0x%08X", s.Characteristics),
			s.Permissions,
			fmt.Sprintf("%.2f", s.Entropy),
		}
	}
	return rows
}

// HexCell renders one cell of the hexdump table.
func HexCell(row hexdump.Row, col int) string {
	switch col {
	case 0:
		return fmt.Sprintf("%08X", row.Offset)
	case 1:
		return row.Hex()
	case 2:
		return row.ASCII()
	default:
		return ""
	}
}
