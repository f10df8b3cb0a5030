package pe

import (
	"debug/pe"
	"fmt"
	"strings"
	"time"
)

// placeholderMeaning is shown for fields without an annotation.
const placeholderMeaning = "-"

var fieldDescriptions = map[Kind]map[string]string{
	DOSHeader: {
		"e_cblp":     "Bytes on last page of file",
		"e_cp":       "Pages in file",
		"e_crlc":     "Relocations",
		"e_cparhdr":  "Size of header in paragraphs",
		"e_minalloc": "Minimum extra paragraphs needed",
		"e_maxalloc": "Maximum extra paragraphs needed",
		"e_ss":       "Initial (relative) SS value",
		"e_sp":       "Initial SP value",
		"e_csum":     "Checksum",
		"e_ip":       "Initial IP value",
		"e_cs":       "Initial (relative) CS value",
		"e_lfarlc":   "File address of relocation table",
		"e_ovno":     "Overlay number",
		"e_res":      "Reserved words",
		"e_oemid":    "OEM identifier",
		"e_oeminfo":  "OEM information",
		"e_res2":     "Reserved words",
	},
	FileHeader: {
		"NumberOfSections":     "Number of sections",
		"PointerToSymbolTable": "File offset of COFF symbol table",
		"NumberOfSymbols":      "Number of COFF symbols",
		"SizeOfOptionalHeader": "Size of optional header",
	},
}

var optionalDescriptions = map[string]string{
	"MajorLinkerVersion":          "Linker major version",
	"MinorLinkerVersion":          "Linker minor version",
	"SizeOfCode":                  "Size of code sections",
	"SizeOfInitializedData":       "Size of initialized data",
	"SizeOfUninitializedData":     "Size of uninitialized data",
	"AddressOfEntryPoint":         "Entry point RVA",
	"BaseOfCode":                  "RVA of code section",
	"BaseOfData":                  "RVA of data section",
	"ImageBase":                   "Preferred load address",
	"SectionAlignment":            "Section alignment in memory",
	"FileAlignment":               "Section alignment on disk",
	"MajorOperatingSystemVersion": "Required OS major version",
	"MinorOperatingSystemVersion": "Required OS minor version",
	"MajorImageVersion":           "Image major version",
	"MinorImageVersion":           "Image minor version",
	"MajorSubsystemVersion":       "Subsystem major version",
	"MinorSubsystemVersion":       "Subsystem minor version",
	"Win32VersionValue":           "Reserved",
	"SizeOfImage":                 "Size of image in memory",
	"SizeOfHeaders":               "Size of all headers",
	"CheckSum":                    "Image checksum",
	"SizeOfStackReserve":          "Stack reserve size",
	"SizeOfStackCommit":           "Stack commit size",
	"SizeOfHeapReserve":           "Heap reserve size",
	"SizeOfHeapCommit":            "Heap commit size",
	"LoaderFlags":                 "Reserved",
	"NumberOfRvaAndSizes":         "Number of data directories",
}

func init() {
	fieldDescriptions[OptionalHeader32] = optionalDescriptions
	fieldDescriptions[OptionalHeader64] = optionalDescriptions
}

// Describe returns a human readable annotation for field f of a structure
// of kind k.
func Describe(k Kind, f Field) string {
	if f.Value.Kind == KindUint {
		if s, ok := describeValue(k, f.Name, f.Value.Uint); ok {
			return s
		}
	}
	if s, ok := fieldDescriptions[k][f.Name]; ok {
		return s
	}
	return placeholderMeaning
}

func describeValue(k Kind, name string, v uint64) (string, bool) {
	switch k {
	case DOSHeader:
		switch name {
		case "e_magic":
			return describeMagicBytes(v, dosMagic, "MZ"), true
		case "e_lfanew":
			return fmt.Sprintf("NT headers at 0x%X", v), true
		}
	case FileHeader:
		switch name {
		case "Signature":
			return describeMagicBytes(v, ntSignature, `PE\0\0`), true
		case "Machine":
			return machineName(uint16(v)), true
		case "TimeDateStamp":
			return time.Unix(int64(v), 0).UTC().Format(time.RFC3339), true
		case "Characteristics":
			return flagNames(v, fileCharacteristics), true
		}
	case OptionalHeader32, OptionalHeader64:
		switch name {
		case "Magic":
			if variant, err := VariantFromMagic(uint16(v)); err == nil {
				return variant.String(), true
			}
			return fmt.Sprintf("Unknown (0x%X)", v), true
		case "Subsystem":
			return getSubsystem(uint16(v)), true
		case "DllCharacteristics":
			return flagNames(v, dllCharacteristics), true
		}
	}
	return "", false
}

func describeMagicBytes(v, want uint64, label string) string {
	if v == want {
		return label
	}
	return fmt.Sprintf("Invalid (expected %s)", label)
}

func machineName(m uint16) string {
	switch m {
	case pe.IMAGE_FILE_MACHINE_I386:
		return "x86 (32-bit)"
	case pe.IMAGE_FILE_MACHINE_AMD64:
		return "x64 (64-bit)"
	case pe.IMAGE_FILE_MACHINE_ARM:
		return "ARM"
	case pe.IMAGE_FILE_MACHINE_ARMNT:
		return "ARM Thumb-2"
	case pe.IMAGE_FILE_MACHINE_ARM64:
		return "ARM64"
	case pe.IMAGE_FILE_MACHINE_IA64:
		return "Itanium"
	default:
		return fmt.Sprintf("Unknown (0x%X)", m)
	}
}

func getSubsystem(subsystem uint16) string {
	switch subsystem {
	case pe.IMAGE_SUBSYSTEM_WINDOWS_GUI:
		return "Windows GUI"
	case pe.IMAGE_SUBSYSTEM_WINDOWS_CUI:
		return "Windows Console"
	case pe.IMAGE_SUBSYSTEM_NATIVE:
		return "Native"
	case pe.IMAGE_SUBSYSTEM_EFI_APPLICATION:
		return "EFI Application"
	default:
		return fmt.Sprintf("Unknown (0x%X)", subsystem)
	}
}

type flag struct {
	bit  uint64
	name string
}

var fileCharacteristics = []flag{
	{pe.IMAGE_FILE_RELOCS_STRIPPED, "RELOCS_STRIPPED"},
	{pe.IMAGE_FILE_EXECUTABLE_IMAGE, "EXECUTABLE_IMAGE"},
	{pe.IMAGE_FILE_LARGE_ADDRESS_AWARE, "LARGE_ADDRESS_AWARE"},
	{pe.IMAGE_FILE_32BIT_MACHINE, "32BIT_MACHINE"},
	{pe.IMAGE_FILE_DEBUG_STRIPPED, "DEBUG_STRIPPED"},
	{pe.IMAGE_FILE_SYSTEM, "SYSTEM"},
	{pe.IMAGE_FILE_DLL, "DLL"},
}

var dllCharacteristics = []flag{
	{pe.IMAGE_DLLCHARACTERISTICS_HIGH_ENTROPY_VA, "HIGH_ENTROPY_VA"},
	{pe.IMAGE_DLLCHARACTERISTICS_DYNAMIC_BASE, "DYNAMIC_BASE"},
	{pe.IMAGE_DLLCHARACTERISTICS_FORCE_INTEGRITY, "FORCE_INTEGRITY"},
	{pe.IMAGE_DLLCHARACTERISTICS_NX_COMPAT, "NX_COMPAT"},
	{pe.IMAGE_DLLCHARACTERISTICS_NO_SEH, "NO_SEH"},
	{pe.IMAGE_DLLCHARACTERISTICS_GUARD_CF, "GUARD_CF"},
	{pe.IMAGE_DLLCHARACTERISTICS_TERMINAL_SERVER_AWARE, "TERMINAL_SERVER_AWARE"},
}

func flagNames(v uint64, flags []flag) string {
	var names []string
	for _, f := range flags {
		if v&f.bit != 0 {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, " | ")
}
