package pe

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"testing"
)

const (
	testLFANew      = 0x80
	testImageSize   = 0x400
	testSectionData = 0x200
	testImportRVA   = 0x1000
	testImportSize  = 0x28
)

var testStub = []byte("This program cannot be run in DOS mode.\r\r\n$")

// buildImage assembles a minimal single-section PE image of variant v.
func buildImage(t *testing.T, v Variant) []byte {
	t.Helper()

	var buf bytes.Buffer
	write := func(data any) {
		if err := binary.Write(&buf, binary.LittleEndian, data); err != nil {
			t.Fatal(err)
		}
	}

	dos := make([]byte, DOSHeaderSize)
	copy(dos, "MZ")
	binary.LittleEndian.PutUint16(dos[2:], 0x90)
	binary.LittleEndian.PutUint32(dos[0x3C:], testLFANew)
	buf.Write(dos)
	buf.Write(testStub)
	buf.Write(make([]byte, testLFANew-buf.Len()))

	buf.WriteString("PE\x00\x00")

	var dirs [NumDirectories]pe.DataDirectory
	dirs[1] = pe.DataDirectory{VirtualAddress: testImportRVA, Size: testImportSize}

	switch v {
	case PE32:
		write(pe.FileHeader{
			Machine:              pe.IMAGE_FILE_MACHINE_I386,
			NumberOfSections:     1,
			TimeDateStamp:        0x5F5E1000,
			SizeOfOptionalHeader: 224,
			Characteristics:      pe.IMAGE_FILE_EXECUTABLE_IMAGE | pe.IMAGE_FILE_32BIT_MACHINE,
		})
		write(pe.OptionalHeader32{
			Magic:               MagicPE32,
			MajorLinkerVersion:  14,
			AddressOfEntryPoint: 0x1000,
			BaseOfCode:          0x1000,
			ImageBase:           0x400000,
			SectionAlignment:    0x1000,
			FileAlignment:       0x200,
			SizeOfImage:         0x2000,
			SizeOfHeaders:       0x200,
			Subsystem:           pe.IMAGE_SUBSYSTEM_WINDOWS_CUI,
			NumberOfRvaAndSizes: NumDirectories,
			DataDirectory:       dirs,
		})
	case PE32Plus:
		write(pe.FileHeader{
			Machine:              pe.IMAGE_FILE_MACHINE_AMD64,
			NumberOfSections:     1,
			TimeDateStamp:        0x5F5E1000,
			SizeOfOptionalHeader: 240,
			Characteristics:      pe.IMAGE_FILE_EXECUTABLE_IMAGE | pe.IMAGE_FILE_LARGE_ADDRESS_AWARE,
		})
		write(pe.OptionalHeader64{
			Magic:               MagicPE32Plus,
			MajorLinkerVersion:  14,
			AddressOfEntryPoint: 0x1000,
			BaseOfCode:          0x1000,
			ImageBase:           0x140000000,
			SectionAlignment:    0x1000,
			FileAlignment:       0x200,
			SizeOfImage:         0x2000,
			SizeOfHeaders:       0x200,
			Subsystem:           pe.IMAGE_SUBSYSTEM_WINDOWS_GUI,
			DllCharacteristics:  pe.IMAGE_DLLCHARACTERISTICS_NX_COMPAT | pe.IMAGE_DLLCHARACTERISTICS_DYNAMIC_BASE,
			NumberOfRvaAndSizes: NumDirectories,
			DataDirectory:       dirs,
		})
	default:
		t.Fatalf("unsupported variant %v", v)
	}

	var name [8]uint8
	copy(name[:], ".text")
	write(pe.SectionHeader32{
		Name:             name,
		VirtualSize:      0x100,
		VirtualAddress:   0x1000,
		SizeOfRawData:    testSectionData,
		PointerToRawData: testSectionData,
		Characteristics:  pe.IMAGE_SCN_CNT_CODE | pe.IMAGE_SCN_MEM_READ | pe.IMAGE_SCN_MEM_EXECUTE,
	})

	buf.Write(make([]byte, testSectionData-buf.Len()))
	code := bytes.Repeat([]byte{0xCC}, testSectionData)
	code[0] = 0xC3
	buf.Write(code)

	if buf.Len() != testImageSize {
		t.Fatalf("image size = %#x, want %#x", buf.Len(), testImageSize)
	}
	return buf.Bytes()
}

// optionalBaseOf returns the optional header offset of images from buildImage.
func optionalBaseOf() uint64 {
	return OptionalBase(testLFANew)
}
