package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ZacharyZcR/pedump/internal/pe"
	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{name: "Bytes", bytes: 512, want: "512 B"},
		{name: "Kibibytes", bytes: 1536, want: "1.5 KiB"},
		{name: "Mebibytes", bytes: 3 * 1024 * 1024, want: "3.0 MiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSize(tt.bytes); got != tt.want {
				t.Errorf("formatSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReporterPrint(t *testing.T) {
	dos := pe.Structure{
		Kind: pe.DOSHeader,
		Fields: []pe.Field{
			{Name: "e_magic", Value: pe.UintValue(0x5A4D)},
			{Name: "e_cblp", Value: pe.UintValue(0x90)},
		},
	}
	info := &pe.Info{
		FilePath: "sample.exe",
		FileSize: 2048,
		Headers: pe.Resolved{
			DOS: pe.Resolve(dos, pe.OffsetTable{2, 2}, 0),
		},
		DecodeErr: &pe.DecodeError{Structure: pe.FileHeader, Err: errors.New("bad signature")},
	}

	var out bytes.Buffer
	r := NewReporter(info)
	r.SetOutput(&out)
	r.Print()

	got := out.String()
	assert.Contains(t, got, "sample.exe")
	assert.Contains(t, got, "2.0 KiB")
	assert.Contains(t, got, "bad signature")
	assert.Contains(t, got, "00000002")
	assert.Contains(t, got, "e_cblp")
	assert.Contains(t, got, "MZ")
	assert.Contains(t, got, "无法解析")
	assert.False(t, strings.Contains(got, "数据目录"), "directories need an optional header")
}

func TestReporterDirectoriesAndSections(t *testing.T) {
	info := &pe.Info{
		FilePath: "sample.exe",
		Variant:  pe.PE32,
		Headers: pe.Resolved{
			Variant:  pe.PE32,
			Optional: []pe.HeaderField{{Offset: "00000098", Name: "Magic", Value: pe.UintValue(pe.MagicPE32), Meaning: "PE32"}},
			Directories: []pe.DataDirectoryEntry{
				{Index: 1, Name: "Import", Offset: "00000100", VirtualAddress: 0x2000, Size: 0x28, Meaning: "Present"},
			},
		},
		Sections: []pe.SectionInfo{
			{Name: ".text", Address: 0x401000, Permissions: "R-X", Characteristics: 0x60000020},
		},
	}

	var out bytes.Buffer
	r := NewReporter(info)
	r.SetOutput(&out)
	r.Print()

	got := out.String()
	assert.Contains(t, got, "可选头 (PE32)")
	assert.Contains(t, got, "Import")
	assert.Contains(t, got, "0x00002000")
	assert.Contains(t, got, ".text")
	assert.Contains(t, got, "0x401000")

	out.Reset()
	r.SetShowSections(false)
	r.Print()
	assert.NotContains(t, out.String(), ".text")
}
