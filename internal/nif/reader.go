package nif

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"nifgraph/internal/nifstream"
)

// StringTable is the global string table of files from 20.1.0.1 on.
// It is filled once by the header parser and only read afterwards.
type StringTable struct {
	strings []string
}

// Len returns the number of strings in the table.
func (t *StringTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.strings)
}

// At returns string i of the table.
func (t *StringTable) At(i int) (string, bool) {
	if t == nil || i < 0 || i >= len(t.strings) {
		return "", false
	}
	return t.strings[i], true
}

// Context is the version triple that gates field presence.
type Context struct {
	Version     Version
	UserVersion uint32
	BethVersion uint32
}

// Reader decodes version-dependent primitives on top of a byte stream.
type Reader struct {
	*nifstream.Stream
	ver     Version
	user    uint32
	beth    uint32
	strings *StringTable
	charset *charmap.Charmap
}

func newReader(s *nifstream.Stream, ctx Context, strings *StringTable, charset *charmap.Charmap) *Reader {
	return &Reader{
		Stream:  s,
		ver:     ctx.Version,
		user:    ctx.UserVersion,
		beth:    ctx.BethVersion,
		strings: strings,
		charset: charset,
	}
}

// Context returns the version triple the reader is gated by.
func (r *Reader) Context() Context {
	return Context{Version: r.ver, UserVersion: r.user, BethVersion: r.beth}
}

// Bool reads a boolean: four bytes before 4.1.0.0, one byte afterwards.
func (r *Reader) Bool() bool {
	if r.ver < V4_1_0_0 {
		return r.Int32() != 0
	}
	return r.Uint8() != 0
}

// Str reads a string: inline with a u32 length before 20.1.0.1, otherwise an
// index into the global string table where 0xFFFFFFFF is the empty string.
func (r *Reader) Str() string {
	if r.ver < V20_1_0_1 {
		return decodeText(r.charset, r.LengthPrefixedString())
	}
	idx := r.Uint32()
	if r.Err() != nil || idx == 0xFFFFFFFF {
		return ""
	}
	s, ok := r.strings.At(int(idx))
	if !ok {
		r.Fail(fmt.Errorf("%w: %d of %d", ErrBadString, idx, r.strings.Len()))
		return ""
	}
	return s
}

// Strs reads n strings with Str.
func (r *Reader) Strs(n int) []string {
	if n < 0 {
		r.Fail(fmt.Errorf("%w: %d", ErrBadLength, n))
		return nil
	}
	// every string takes at least four bytes
	if !r.Ensure(n, 4) {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = r.Str()
	}
	return out
}

// Count reads a u32 element count and checks that count*minSize bytes remain.
func (r *Reader) Count(minSize int) int {
	n := r.Uint32()
	if r.Err() != nil {
		return 0
	}
	if !r.Ensure(int(n), minSize) {
		return 0
	}
	return int(n)
}

// Transform is a position, rotation and uniform scale.
type Transform struct {
	Translation Vec3
	Rotation    Mat3
	Scale       float32
}

func readTransform(r *Reader) Transform {
	return Transform{
		Translation: r.Vec3(),
		Rotation:    r.Mat3(),
		Scale:       r.Float32(),
	}
}
