package nif

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBadMagic           = errors.New("not a NIF file")
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrBigEndian          = errors.New("big endian files are unsupported")
	ErrUnknownRecordType  = errors.New("unknown record type")
	ErrBadLength          = errors.New("negative list length")
	ErrBadString          = errors.New("string index out of range")
	ErrDanglingRef        = errors.New("record index out of range")
	ErrTypeMismatch       = errors.New("record has unexpected type")
	ErrCountMismatch      = errors.New("count mismatch")
	ErrMissingRef         = errors.New("required reference is empty")
	ErrUnknownValue       = errors.New("unknown enumeration value")
	ErrTrailingData       = errors.New("trailing data after footer")
	ErrLimit              = errors.New("configured limit exceeded")
)

// ErrorKind classifies fatal load errors.
type ErrorKind int

const (
	// KindFormat covers header problems: magic, version, endianness, limits.
	KindFormat ErrorKind = iota
	// KindUnknownType is a block whose type name has no factory entry.
	KindUnknownType
	// KindStreamExhausted is a read past the end of the data.
	KindStreamExhausted
	// KindGraphConsistency covers dangling or mistyped references and failed invariants.
	KindGraphConsistency
)

func (k ErrorKind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindUnknownType:
		return "unknown type"
	case KindStreamExhausted:
		return "stream exhausted"
	case KindGraphConsistency:
		return "graph consistency"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the single fatal error type returned by Load.
// Record is -1 when the failure is not tied to a record.
type Error struct {
	Kind     ErrorKind
	File     string
	Record   int
	TypeName string
	Err      error
}

func newError(kind ErrorKind, file string, rec int, typeName string, err error) *Error {
	return &Error{Kind: kind, File: file, Record: rec, TypeName: typeName, Err: err}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	var buf strings.Builder
	buf.WriteString("nif: ")
	if e.File != "" {
		buf.WriteString(e.File)
		buf.WriteString(": ")
	}
	if e.Record >= 0 {
		fmt.Fprintf(&buf, "record %d", e.Record)
		if e.TypeName != "" {
			fmt.Fprintf(&buf, " (%s)", e.TypeName)
		}
		buf.WriteString(": ")
	}
	buf.WriteString(e.Kind.String())
	if e.Err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.Err.Error())
	}
	return buf.String()
}

// Warning is a tolerated anomaly recorded during a load.
type Warning struct {
	Record int // -1 when not tied to a record
	Msg    string
}

func (w Warning) String() string {
	if w.Record < 0 {
		return w.Msg
	}
	return fmt.Sprintf("record %d: %s", w.Record, w.Msg)
}
