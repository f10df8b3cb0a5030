package pe

import (
	"debug/pe"

	"github.com/ZacharyZcR/pedump/internal/hexfmt"
)

var directoryNames = [NumDirectories]string{
	"Export",
	"Import",
	"Resource",
	"Exception",
	"Security",
	"Base Relocation",
	"Debug",
	"Architecture",
	"Global Pointer",
	"TLS",
	"Load Configuration",
	"Bound Import",
	"Import Address Table",
	"Delay Import",
	"COM Descriptor",
	"Reserved",
}

// DataDirectoryEntry is one resolved slot of the data directory array.
type DataDirectoryEntry struct {
	Index          int
	Name           string
	Offset         string
	VirtualAddress uint32
	Size           uint32
	Meaning        string
}

// Present reports whether the directory points at anything.
func (e DataDirectoryEntry) Present() bool {
	return e.VirtualAddress != 0 || e.Size != 0
}

// DirectoryName returns the label of directory slot i.
func DirectoryName(i int) string {
	if i < 0 || i >= len(directoryNames) {
		return "Unknown Directory"
	}
	return directoryNames[i]
}

// DirectoryMeaning describes a directory slot by its address and size.
func DirectoryMeaning(va, size uint32) string {
	if va == 0 && size == 0 {
		return "Not present"
	}
	return "Present"
}

// ResolveDirectories lays the directory array out from base, one
// DirectoryEntrySize slot per index.
func ResolveDirectories(dirs [NumDirectories]pe.DataDirectory, base uint64) []DataDirectoryEntry {
	out := make([]DataDirectoryEntry, len(dirs))
	for i, d := range dirs {
		out[i] = DataDirectoryEntry{
			Index:          i,
			Name:           DirectoryName(i),
			Offset:         hexfmt.Offset(base + uint64(i*DirectoryEntrySize)),
			VirtualAddress: d.VirtualAddress,
			Size:           d.Size,
			Meaning:        DirectoryMeaning(d.VirtualAddress, d.Size),
		}
	}
	return out
}
