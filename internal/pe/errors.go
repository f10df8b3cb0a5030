package pe

import (
	"errors"
	"fmt"
)

var (
	// ErrNotMZ is returned when the file does not start with an MZ header.
	ErrNotMZ = errors.New("缺少MZ签名")
	// ErrUnknownMagic is returned for an optional header magic that is
	// neither PE32 nor PE32+.
	ErrUnknownMagic = errors.New("未知的可选头魔数")
	// ErrTruncated is returned when a structure runs past the end of the file.
	ErrTruncated = errors.New("结构被截断")
)

// IOError reports a file that could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("读取文件失败 %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DecodeError reports a header structure that could not be decoded.
type DecodeError struct {
	Structure Kind
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("无法解析%s: %v", e.Structure, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
