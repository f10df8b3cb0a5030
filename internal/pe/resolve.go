package pe

import "github.com/ZacharyZcR/pedump/internal/hexfmt"

// HeaderField is one row of a header table.
type HeaderField struct {
	Offset  string
	Name    string
	Value   Value
	Meaning string
}

// Resolve pairs each field of s with its file offset. The field at index i
// sits at base plus the widths of the fields before it. s must list its
// fields in the order table describes them.
func Resolve(s Structure, table OffsetTable, base uint64) []HeaderField {
	out := make([]HeaderField, len(s.Fields))
	pos := base
	for i, f := range s.Fields {
		out[i] = HeaderField{
			Offset:  hexfmt.Offset(pos),
			Name:    f.Name,
			Value:   f.Value,
			Meaning: Describe(s.Kind, f),
		}
		if i < len(table) {
			pos += uint64(table[i])
		}
	}
	return out
}

// Resolved holds the header tables of a file, each laid out at its absolute
// offset. Tables for structures that failed to decode are nil.
type Resolved struct {
	DOS         []HeaderField
	File        []HeaderField
	Variant     Variant
	Optional    []HeaderField
	Directories []DataDirectoryEntry
}

// Resolve lays out every decoded structure of h. The file header starts at
// e_lfanew, the optional header right after the 24 byte signature and COFF
// header, and the directory array after the fixed part of the optional
// header for its variant.
func (h *Headers) Resolve() Resolved {
	r := Resolved{
		DOS:     Resolve(h.DOS, DOSHeaderTable, 0),
		Variant: h.Variant,
	}
	if len(h.File.Fields) == 0 {
		return r
	}
	r.File = Resolve(h.File, FileHeaderTable, h.LFANew)

	if h.Variant == VariantNone {
		return r
	}
	optBase := OptionalBase(h.LFANew)
	r.Optional = Resolve(h.Optional, OptionalTable(h.Variant), optBase)
	r.Directories = ResolveDirectories(h.Directories, DirectoryBase(h.Variant, optBase))
	return r
}
