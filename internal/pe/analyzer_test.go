package pe

import (
	"debug/pe"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSectionPermissions(t *testing.T) {
	tests := []struct {
		name string
		char uint32
		want string
	}{
		{
			name: "Read only",
			char: pe.IMAGE_SCN_MEM_READ,
			want: "R--",
		},
		{
			name: "Read Write",
			char: pe.IMAGE_SCN_MEM_READ | pe.IMAGE_SCN_MEM_WRITE,
			want: "RW-",
		},
		{
			name: "Read Execute",
			char: pe.IMAGE_SCN_MEM_READ | pe.IMAGE_SCN_MEM_EXECUTE,
			want: "R-X",
		},
		{
			name: "Read Write Execute (RWX - suspicious)",
			char: pe.IMAGE_SCN_MEM_READ | pe.IMAGE_SCN_MEM_WRITE | pe.IMAGE_SCN_MEM_EXECUTE,
			want: "RWX",
		},
		{
			name: "Write Execute",
			char: pe.IMAGE_SCN_MEM_WRITE | pe.IMAGE_SCN_MEM_EXECUTE,
			want: "-WX",
		},
		{
			name: "No permissions",
			char: 0,
			want: "---",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getSectionPermissions(tt.char)
			if got != tt.want {
				t.Errorf("getSectionPermissions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSubsystem(t *testing.T) {
	tests := []struct {
		name      string
		subsystem uint16
		want      string
	}{
		{
			name:      "Windows GUI",
			subsystem: pe.IMAGE_SUBSYSTEM_WINDOWS_GUI,
			want:      "Windows GUI",
		},
		{
			name:      "Windows Console",
			subsystem: pe.IMAGE_SUBSYSTEM_WINDOWS_CUI,
			want:      "Windows Console",
		},
		{
			name:      "Native",
			subsystem: pe.IMAGE_SUBSYSTEM_NATIVE,
			want:      "Native",
		},
		{
			name:      "Unknown subsystem",
			subsystem: 0xFF,
			want:      "Unknown (0xFF)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getSubsystem(tt.subsystem)
			if got != tt.want {
				t.Errorf("getSubsystem() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name        string
		variant     Variant
		wantAddress uint64
	}{
		{name: "PE32", variant: PE32, wantAddress: 0x401000},
		{name: "PE32+", variant: PE32Plus, wantAddress: 0x140001000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewReader("sample.exe", buildImage(t, tt.variant))
			info := NewAnalyzer(reader, nil).Analyze()

			require.NoError(t, info.DecodeErr)
			assert.Equal(t, tt.variant, info.Variant)
			assert.Equal(t, int64(testImageSize), info.FileSize)
			assert.Equal(t, testStub, info.DOSStub[:len(testStub)])
			assert.Len(t, info.DOSStub, testLFANew-DOSHeaderSize)

			require.Len(t, info.Sections, 1)
			s := info.Sections[0]
			assert.Equal(t, ".text", s.Name)
			assert.Equal(t, tt.wantAddress, s.Address)
			assert.Equal(t, "R-X", s.Permissions)
			assert.Greater(t, s.Entropy, 0.0)
			assert.Less(t, s.Entropy, 1.0)

			require.NotNil(t, info.Checksum)
			assert.Equal(t, "Not set", checksumRow(t, info).Meaning)
		})
	}
}

func TestAnalyzeChecksum(t *testing.T) {
	buf := buildImage(t, PE32)
	offset := optionalBaseOf() + checksumFieldOffset
	binary.LittleEndian.PutUint32(buf[offset:], CalculatePEChecksum(buf, int64(offset)))

	info := NewAnalyzer(NewReader("signed.exe", buf), nil).Analyze()
	require.NotNil(t, info.Checksum)
	assert.True(t, info.Checksum.Valid)
	assert.Equal(t, "Valid", checksumRow(t, info).Meaning)

	binary.LittleEndian.PutUint32(buf[offset:], info.Checksum.Stored+1)
	info = NewAnalyzer(NewReader("tampered.exe", buf), nil).Analyze()
	assert.False(t, info.Checksum.Valid)
	assert.Contains(t, checksumRow(t, info).Meaning, "Mismatch")
}

func TestAnalyzePartialDecode(t *testing.T) {
	buf := buildImage(t, PE32)
	buf[testLFANew] = 'N'

	info := NewAnalyzer(NewReader("broken.exe", buf), nil).Analyze()
	require.Error(t, info.DecodeErr)
	assert.NotEmpty(t, info.Headers.DOS)
	assert.Empty(t, info.Headers.File)
	assert.Empty(t, info.Sections)
	assert.Nil(t, info.Checksum)
}

func TestAnalyzeNotPE(t *testing.T) {
	info := NewAnalyzer(NewReader("notes.txt", []byte("hello")), nil).Analyze()
	assert.ErrorIs(t, info.DecodeErr, ErrTruncated)
	assert.Empty(t, info.Headers.DOS)
}

func checksumRow(t *testing.T, info *Info) HeaderField {
	t.Helper()
	for _, f := range info.Headers.Optional {
		if f.Name == "CheckSum" {
			return f
		}
	}
	t.Fatal("CheckSum row missing")
	return HeaderField{}
}
