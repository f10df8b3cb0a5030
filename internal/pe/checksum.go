package pe

import (
	"encoding/binary"
	"fmt"
)

// ChecksumInfo contains PE checksum verification results.
type ChecksumInfo struct {
	Stored   uint32
	Computed uint32
	Valid    bool
}

// Meaning describes the verification result for the CheckSum row.
func (c *ChecksumInfo) Meaning() string {
	switch {
	case c.Stored == 0:
		return "Not set"
	case c.Valid:
		return "Valid"
	default:
		return fmt.Sprintf("Mismatch (computed 0x%08X)", c.Computed)
	}
}

// VerifyChecksum compares the stored checksum against one computed over buf.
// checksumOffset is the file offset of the CheckSum field.
func VerifyChecksum(buf []byte, stored uint32, checksumOffset uint64) *ChecksumInfo {
	// If checksum is 0, file is not checksummed (common for non-system files)
	if stored == 0 {
		return &ChecksumInfo{Valid: true}
	}

	computed := CalculatePEChecksum(buf, int64(checksumOffset))
	return &ChecksumInfo{
		Stored:   stored,
		Computed: computed,
		Valid:    computed == stored,
	}
}

// CalculatePEChecksum computes the PE image checksum of buf, skipping the
// four bytes at checksumOffset. Pass a negative offset to skip nothing.
func CalculatePEChecksum(buf []byte, checksumOffset int64) uint32 {
	var checksum uint64
	var dword [4]byte

	for offset := 0; offset < len(buf); offset += 4 {
		// Skip checksum field itself
		if checksumOffset >= 0 && int64(offset) == checksumOffset {
			continue
		}

		// Partial last DWORD is zero padded
		n := copy(dword[:], buf[offset:])
		clear(dword[n:])

		checksum += uint64(binary.LittleEndian.Uint32(dword[:]))

		// Fold high 32 bits into low 32 bits
		if checksum > 0xFFFFFFFF {
			checksum = (checksum & 0xFFFFFFFF) + (checksum >> 32)
		}
	}

	checksum = (checksum & 0xFFFF) + (checksum >> 16)
	checksum += checksum >> 16
	checksum &= 0xFFFF

	return uint32(checksum + uint64(len(buf)))
}
