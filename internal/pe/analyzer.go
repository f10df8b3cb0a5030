package pe

import (
	"debug/pe"

	"github.com/ZacharyZcR/pedump/internal/hexfmt"
	"github.com/hashicorp/go-hclog"
)

// Info contains everything the views show for one file.
type Info struct {
	FilePath string
	FileSize int64
	Variant  Variant
	Headers  Resolved
	Sections []SectionInfo
	Checksum *ChecksumInfo
	// DOSStub is the program between the DOS header and e_lfanew.
	DOSStub []byte
	// DecodeErr is set when part of the header region could not be decoded.
	// Tables decoded before the failure are still filled in.
	DecodeErr error
}

// SectionInfo contains information about a PE section.
type SectionInfo struct {
	Name            string
	HeaderOffset    string
	VirtualAddress  uint32
	Address         uint64
	VirtualSize     uint32
	RawOffset       uint32
	Size            uint32
	Characteristics uint32
	Permissions     string
	Entropy         float64
}

// Analyzer extracts information from a loaded file.
type Analyzer struct {
	reader *Reader
	logger hclog.Logger
}

// NewAnalyzer creates a new analyzer for the given reader. A nil logger
// discards output.
func NewAnalyzer(r *Reader, logger hclog.Logger) *Analyzer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Analyzer{reader: r, logger: logger.Named("analyzer")}
}

// Analyze decodes and lays out the header region of the file.
func (a *Analyzer) Analyze() *Info {
	buf := a.reader.Bytes()
	info := &Info{
		FilePath: a.reader.FilePath(),
		FileSize: a.reader.FileSize(),
	}

	h, err := Decode(buf)
	if err != nil {
		a.logger.Warn("header decoding stopped", "path", info.FilePath, "error", err)
		info.DecodeErr = err
	}
	if h == nil {
		return info
	}

	info.Variant = h.Variant
	info.Headers = h.Resolve()
	a.logger.Debug("resolved headers",
		"variant", h.Variant,
		"dos_fields", len(info.Headers.DOS),
		"file_fields", len(info.Headers.File),
		"optional_fields", len(info.Headers.Optional),
	)

	a.extractDOSStub(buf, h, info)
	if h.Variant != VariantNone {
		a.verifyChecksum(buf, h, info)
		a.extractSections(buf, h, info)
	}
	return info
}

func (a *Analyzer) extractDOSStub(buf []byte, h *Headers, info *Info) {
	end := min(h.LFANew, uint64(len(buf)))
	if end <= DOSHeaderSize {
		return
	}
	info.DOSStub = buf[DOSHeaderSize:end:end]
	a.logger.Trace("dos stub", "size", len(info.DOSStub))
}

func (a *Analyzer) verifyChecksum(buf []byte, h *Headers, info *Info) {
	stored, ok := h.Optional.Lookup("CheckSum")
	if !ok {
		return
	}

	offset := OptionalBase(h.LFANew) + checksumFieldOffset
	info.Checksum = VerifyChecksum(buf, uint32(stored.Uint), offset)
	for i := range info.Headers.Optional {
		if info.Headers.Optional[i].Name == "CheckSum" {
			info.Headers.Optional[i].Meaning = info.Checksum.Meaning()
		}
	}
	if !info.Checksum.Valid {
		a.logger.Info("checksum mismatch",
			"stored", hclog.Fmt("0x%08X", info.Checksum.Stored),
			"computed", hclog.Fmt("0x%08X", info.Checksum.Computed))
	}
}

func (a *Analyzer) extractSections(buf []byte, h *Headers, info *Info) {
	for i, section := range h.Sections {
		info.Sections = append(info.Sections, SectionInfo{
			Name:            section.Name,
			HeaderOffset:    hexfmt.Offset(h.SectionTable + uint64(i*SectionHeaderSize)),
			VirtualAddress:  section.VirtualAddress,
			Address:         h.ImageBase + uint64(section.VirtualAddress),
			VirtualSize:     section.VirtualSize,
			RawOffset:       section.Offset,
			Size:            section.Size,
			Characteristics: section.Characteristics,
			Permissions:     getSectionPermissions(section.Characteristics),
			Entropy:         CalculateEntropy(sectionData(buf, section.Offset, section.Size)),
		})
	}
}

func getSectionPermissions(c uint32) string {
	var perms [3]rune
	perms[0] = '-'
	perms[1] = '-'
	perms[2] = '-'

	if c&pe.IMAGE_SCN_MEM_READ != 0 {
		perms[0] = 'R'
	}
	if c&pe.IMAGE_SCN_MEM_WRITE != 0 {
		perms[1] = 'W'
	}
	if c&pe.IMAGE_SCN_MEM_EXECUTE != 0 {
		perms[2] = 'X'
	}

	return string(perms[:])
}
