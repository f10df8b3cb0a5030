package pe

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"fmt"
)

// dosHeader mirrors IMAGE_DOS_HEADER.
type dosHeader struct {
	Magic    uint16
	Cblp     uint16
	Cp       uint16
	Crlc     uint16
	Cparhdr  uint16
	MinAlloc uint16
	MaxAlloc uint16
	SS       uint16
	SP       uint16
	Csum     uint16
	IP       uint16
	CS       uint16
	Lfarlc   uint16
	Ovno     uint16
	Res      [4]uint16
	OEMID    uint16
	OEMInfo  uint16
	Res2     [10]uint16
	Lfanew   uint32
}

const (
	dosMagic    = 0x5A4D     // "MZ"
	ntSignature = 0x00004550 // "PE\0\0"
)

// Headers is the decoded header region of a PE file. Structures that could
// not be decoded are left empty.
type Headers struct {
	DOS         Structure
	LFANew      uint64
	File        Structure
	Variant     Variant
	Optional    Structure
	ImageBase   uint64
	Directories [NumDirectories]pe.DataDirectory
	Sections    []pe.SectionHeader
	// SectionTable is the file offset of the first section header.
	SectionTable uint64
}

// Decode parses the header region of buf. When a later structure fails the
// structures decoded so far are returned together with a *DecodeError.
func Decode(buf []byte) (*Headers, error) {
	if len(buf) < DOSHeaderSize {
		return nil, &DecodeError{Structure: DOSHeader, Err: ErrTruncated}
	}

	var dos dosHeader
	if err := binary.Read(bytes.NewReader(buf[:DOSHeaderSize]), binary.LittleEndian, &dos); err != nil {
		return nil, &DecodeError{Structure: DOSHeader, Err: err}
	}
	if dos.Magic != dosMagic {
		return nil, &DecodeError{Structure: DOSHeader, Err: ErrNotMZ}
	}

	h := &Headers{
		DOS:    dosStructure(&dos, buf),
		LFANew: uint64(dos.Lfanew),
	}

	if err := h.decodeFileHeader(buf); err != nil {
		return h, err
	}
	if err := h.decodeOptionalHeader(buf); err != nil {
		return h, err
	}
	return h, nil
}

func (h *Headers) decodeFileHeader(buf []byte) error {
	if h.LFANew+FileHeaderSize > uint64(len(buf)) {
		return &DecodeError{Structure: FileHeader, Err: ErrTruncated}
	}

	nt := buf[h.LFANew : h.LFANew+FileHeaderSize]
	sig := binary.LittleEndian.Uint32(nt)
	if sig != ntSignature {
		return &DecodeError{Structure: FileHeader, Err: fmt.Errorf("无效的PE签名: % X", nt[:4])}
	}

	var fh pe.FileHeader
	if err := binary.Read(bytes.NewReader(nt[4:]), binary.LittleEndian, &fh); err != nil {
		return &DecodeError{Structure: FileHeader, Err: err}
	}

	h.File = fileHeaderLayout.structure(FileHeader,
		UintValue(uint64(sig)),
		UintValue(uint64(fh.Machine)),
		UintValue(uint64(fh.NumberOfSections)),
		UintValue(uint64(fh.TimeDateStamp)),
		UintValue(uint64(fh.PointerToSymbolTable)),
		UintValue(uint64(fh.NumberOfSymbols)),
		UintValue(uint64(fh.SizeOfOptionalHeader)),
		UintValue(uint64(fh.Characteristics)),
	)
	h.SectionTable = OptionalBase(h.LFANew) + uint64(fh.SizeOfOptionalHeader)
	return nil
}

func (h *Headers) decodeOptionalHeader(buf []byte) error {
	base := OptionalBase(h.LFANew)
	if base+2 > uint64(len(buf)) {
		return &DecodeError{Structure: OptionalHeader, Err: ErrTruncated}
	}

	v, err := VariantFromMagic(binary.LittleEndian.Uint16(buf[base:]))
	if err != nil {
		return &DecodeError{Structure: OptionalHeader, Err: err}
	}

	f, err := pe.NewFile(bytes.NewReader(buf))
	if err != nil {
		return &DecodeError{Structure: v.Kind(), Err: err}
	}
	defer func() { _ = f.Close() }()

	switch oh := f.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		h.Optional = optional32Structure(oh)
		h.ImageBase = uint64(oh.ImageBase)
		h.Directories = oh.DataDirectory
	case *pe.OptionalHeader64:
		h.Optional = optional64Structure(oh)
		h.ImageBase = oh.ImageBase
		h.Directories = oh.DataDirectory
	default:
		return &DecodeError{Structure: v.Kind(), Err: ErrTruncated}
	}
	h.Variant = v

	for _, s := range f.Sections {
		h.Sections = append(h.Sections, s.SectionHeader)
	}
	return nil
}

func dosStructure(d *dosHeader, buf []byte) Structure {
	return dosHeaderLayout.structure(DOSHeader,
		UintValue(uint64(d.Magic)),
		UintValue(uint64(d.Cblp)),
		UintValue(uint64(d.Cp)),
		UintValue(uint64(d.Crlc)),
		UintValue(uint64(d.Cparhdr)),
		UintValue(uint64(d.MinAlloc)),
		UintValue(uint64(d.MaxAlloc)),
		UintValue(uint64(d.SS)),
		UintValue(uint64(d.SP)),
		UintValue(uint64(d.Csum)),
		UintValue(uint64(d.IP)),
		UintValue(uint64(d.CS)),
		UintValue(uint64(d.Lfarlc)),
		UintValue(uint64(d.Ovno)),
		BytesValue(buf[0x1C:0x24:0x24]),
		UintValue(uint64(d.OEMID)),
		UintValue(uint64(d.OEMInfo)),
		BytesValue(buf[0x28:0x3C:0x3C]),
		UintValue(uint64(d.Lfanew)),
	)
}

func optional32Structure(oh *pe.OptionalHeader32) Structure {
	return optionalHeader32Layout.structure(OptionalHeader32,
		UintValue(uint64(oh.Magic)),
		UintValue(uint64(oh.MajorLinkerVersion)),
		UintValue(uint64(oh.MinorLinkerVersion)),
		UintValue(uint64(oh.SizeOfCode)),
		UintValue(uint64(oh.SizeOfInitializedData)),
		UintValue(uint64(oh.SizeOfUninitializedData)),
		UintValue(uint64(oh.AddressOfEntryPoint)),
		UintValue(uint64(oh.BaseOfCode)),
		UintValue(uint64(oh.BaseOfData)),
		UintValue(uint64(oh.ImageBase)),
		UintValue(uint64(oh.SectionAlignment)),
		UintValue(uint64(oh.FileAlignment)),
		UintValue(uint64(oh.MajorOperatingSystemVersion)),
		UintValue(uint64(oh.MinorOperatingSystemVersion)),
		UintValue(uint64(oh.MajorImageVersion)),
		UintValue(uint64(oh.MinorImageVersion)),
		UintValue(uint64(oh.MajorSubsystemVersion)),
		UintValue(uint64(oh.MinorSubsystemVersion)),
		UintValue(uint64(oh.Win32VersionValue)),
		UintValue(uint64(oh.SizeOfImage)),
		UintValue(uint64(oh.SizeOfHeaders)),
		UintValue(uint64(oh.CheckSum)),
		UintValue(uint64(oh.Subsystem)),
		UintValue(uint64(oh.DllCharacteristics)),
		UintValue(uint64(oh.SizeOfStackReserve)),
		UintValue(uint64(oh.SizeOfStackCommit)),
		UintValue(uint64(oh.SizeOfHeapReserve)),
		UintValue(uint64(oh.SizeOfHeapCommit)),
		UintValue(uint64(oh.LoaderFlags)),
		UintValue(uint64(oh.NumberOfRvaAndSizes)),
	)
}

func optional64Structure(oh *pe.OptionalHeader64) Structure {
	return optionalHeader64Layout.structure(OptionalHeader64,
		UintValue(uint64(oh.Magic)),
		UintValue(uint64(oh.MajorLinkerVersion)),
		UintValue(uint64(oh.MinorLinkerVersion)),
		UintValue(uint64(oh.SizeOfCode)),
		UintValue(uint64(oh.SizeOfInitializedData)),
		UintValue(uint64(oh.SizeOfUninitializedData)),
		UintValue(uint64(oh.AddressOfEntryPoint)),
		UintValue(uint64(oh.BaseOfCode)),
		UintValue(oh.ImageBase),
		UintValue(uint64(oh.SectionAlignment)),
		UintValue(uint64(oh.FileAlignment)),
		UintValue(uint64(oh.MajorOperatingSystemVersion)),
		UintValue(uint64(oh.MinorOperatingSystemVersion)),
		UintValue(uint64(oh.MajorImageVersion)),
		UintValue(uint64(oh.MinorImageVersion)),
		UintValue(uint64(oh.MajorSubsystemVersion)),
		UintValue(uint64(oh.MinorSubsystemVersion)),
		UintValue(uint64(oh.Win32VersionValue)),
		UintValue(uint64(oh.SizeOfImage)),
		UintValue(uint64(oh.SizeOfHeaders)),
		UintValue(uint64(oh.CheckSum)),
		UintValue(uint64(oh.Subsystem)),
		UintValue(uint64(oh.DllCharacteristics)),
		UintValue(oh.SizeOfStackReserve),
		UintValue(oh.SizeOfStackCommit),
		UintValue(oh.SizeOfHeapReserve),
		UintValue(oh.SizeOfHeapCommit),
		UintValue(uint64(oh.LoaderFlags)),
		UintValue(uint64(oh.NumberOfRvaAndSizes)),
	)
}
