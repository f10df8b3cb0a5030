package pe

import "fmt"

// Kind identifies a header structure.
type Kind uint8

const (
	DOSHeader Kind = iota + 1
	FileHeader
	OptionalHeader
	OptionalHeader32
	OptionalHeader64
	DataDirectories
	SectionHeaders
)

func (k Kind) String() string {
	switch k {
	case DOSHeader:
		return "DOS header"
	case FileHeader:
		return "file header"
	case OptionalHeader:
		return "optional header"
	case OptionalHeader32:
		return "optional header (PE32)"
	case OptionalHeader64:
		return "optional header (PE32+)"
	case DataDirectories:
		return "data directories"
	case SectionHeaders:
		return "section headers"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Variant is the shape of the optional header.
type Variant uint8

const (
	VariantNone Variant = iota
	PE32
	PE32Plus
)

// Optional header magic numbers.
const (
	MagicPE32     = 0x10B
	MagicPE32Plus = 0x20B
)

func (v Variant) String() string {
	switch v {
	case PE32:
		return "PE32"
	case PE32Plus:
		return "PE32+"
	default:
		return "none"
	}
}

// VariantFromMagic maps an optional header magic to its variant.
func VariantFromMagic(magic uint16) (Variant, error) {
	switch magic {
	case MagicPE32:
		return PE32, nil
	case MagicPE32Plus:
		return PE32Plus, nil
	default:
		return VariantNone, fmt.Errorf("%w: 0x%X", ErrUnknownMagic, magic)
	}
}

// Kind returns the structure kind of the optional header for v.
func (v Variant) Kind() Kind {
	switch v {
	case PE32:
		return OptionalHeader32
	case PE32Plus:
		return OptionalHeader64
	default:
		return OptionalHeader
	}
}

const (
	// FileHeaderSize covers the PE signature and the COFF file header.
	FileHeaderSize = 24
	// DOSHeaderSize is the fixed size of IMAGE_DOS_HEADER.
	DOSHeaderSize = 64
	// NumDirectories is the fixed length of the data directory array.
	NumDirectories = 16
	// DirectoryEntrySize is the size of one IMAGE_DATA_DIRECTORY.
	DirectoryEntrySize = 8
	// SectionHeaderSize is the size of one IMAGE_SECTION_HEADER.
	SectionHeaderSize = 40
	// checksumFieldOffset is the CheckSum position inside either optional
	// header variant.
	checksumFieldOffset = 64
)

// OffsetTable lists the byte width of each field of a structure in
// declaration order.
type OffsetTable []int

// CumulativeWidth returns the combined width of the fields before index i.
func (t OffsetTable) CumulativeWidth(i int) uint64 {
	var sum uint64
	for _, w := range t[:min(max(i, 0), len(t))] {
		sum += uint64(w)
	}
	return sum
}

// Size returns the total width of the structure.
func (t OffsetTable) Size() uint64 {
	return t.CumulativeWidth(len(t))
}

type fieldDef struct {
	name  string
	width int
}

type layout []fieldDef

func (l layout) table() OffsetTable {
	t := make(OffsetTable, len(l))
	for i, f := range l {
		t[i] = f.width
	}
	return t
}

// structure zips the layout names with values given in the same order.
func (l layout) structure(kind Kind, values ...Value) Structure {
	if len(values) != len(l) {
		panic(fmt.Sprintf("pe: %s has %d fields, got %d values", kind, len(l), len(values)))
	}
	fields := make([]Field, len(l))
	for i, f := range l {
		fields[i] = Field{Name: f.name, Value: values[i]}
	}
	return Structure{Kind: kind, Fields: fields}
}

var dosHeaderLayout = layout{
	{"e_magic", 2},
	{"e_cblp", 2},
	{"e_cp", 2},
	{"e_crlc", 2},
	{"e_cparhdr", 2},
	{"e_minalloc", 2},
	{"e_maxalloc", 2},
	{"e_ss", 2},
	{"e_sp", 2},
	{"e_csum", 2},
	{"e_ip", 2},
	{"e_cs", 2},
	{"e_lfarlc", 2},
	{"e_ovno", 2},
	{"e_res", 8},
	{"e_oemid", 2},
	{"e_oeminfo", 2},
	{"e_res2", 20},
	{"e_lfanew", 4},
}

var fileHeaderLayout = layout{
	{"Signature", 4},
	{"Machine", 2},
	{"NumberOfSections", 2},
	{"TimeDateStamp", 4},
	{"PointerToSymbolTable", 4},
	{"NumberOfSymbols", 4},
	{"SizeOfOptionalHeader", 2},
	{"Characteristics", 2},
}

// optionalHeaderLayout builds the fixed part of the optional header. PE32
// carries BaseOfData and 32-bit image base and stack/heap sizes; PE32+
// drops BaseOfData and widens those fields to 64 bits.
func optionalHeaderLayout(v Variant) layout {
	wide := 4
	if v == PE32Plus {
		wide = 8
	}

	l := layout{
		{"Magic", 2},
		{"MajorLinkerVersion", 1},
		{"MinorLinkerVersion", 1},
		{"SizeOfCode", 4},
		{"SizeOfInitializedData", 4},
		{"SizeOfUninitializedData", 4},
		{"AddressOfEntryPoint", 4},
		{"BaseOfCode", 4},
	}
	if v == PE32 {
		l = append(l, fieldDef{"BaseOfData", 4})
	}
	return append(l, layout{
		{"ImageBase", wide},
		{"SectionAlignment", 4},
		{"FileAlignment", 4},
		{"MajorOperatingSystemVersion", 2},
		{"MinorOperatingSystemVersion", 2},
		{"MajorImageVersion", 2},
		{"MinorImageVersion", 2},
		{"MajorSubsystemVersion", 2},
		{"MinorSubsystemVersion", 2},
		{"Win32VersionValue", 4},
		{"SizeOfImage", 4},
		{"SizeOfHeaders", 4},
		{"CheckSum", 4},
		{"Subsystem", 2},
		{"DllCharacteristics", 2},
		{"SizeOfStackReserve", wide},
		{"SizeOfStackCommit", wide},
		{"SizeOfHeapReserve", wide},
		{"SizeOfHeapCommit", wide},
		{"LoaderFlags", 4},
		{"NumberOfRvaAndSizes", 4},
	}...)
}

var (
	optionalHeader32Layout = optionalHeaderLayout(PE32)
	optionalHeader64Layout = optionalHeaderLayout(PE32Plus)
)

// Offset tables for each structure kind.
var (
	DOSHeaderTable        = dosHeaderLayout.table()
	FileHeaderTable       = fileHeaderLayout.table()
	OptionalHeader32Table = optionalHeader32Layout.table()
	OptionalHeader64Table = optionalHeader64Layout.table()
)

// OptionalTable selects the optional header offset table for v.
func OptionalTable(v Variant) OffsetTable {
	switch v {
	case PE32:
		return OptionalHeader32Table
	case PE32Plus:
		return OptionalHeader64Table
	default:
		return nil
	}
}

// OptionalBase returns the file offset of the optional header.
func OptionalBase(lfanew uint64) uint64 {
	return lfanew + FileHeaderSize
}

// DirectoryBase returns the file offset of the data directory array that
// trails the fixed part of the optional header at optionalBase.
func DirectoryBase(v Variant, optionalBase uint64) uint64 {
	return optionalBase + OptionalTable(v).Size()
}
