package nifstream

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrUnexpectedEOF is wrapped by every error caused by reading past the end of the data.
var ErrUnexpectedEOF = errors.New("unexpected end of data")

// EOFError reports a read that needed more bytes than were left.
type EOFError struct {
	Off  int // offset where the read started
	Want int // bytes requested
	Have int // bytes left at Off
}

func (e *EOFError) Error() string {
	return fmt.Sprintf("nifstream: read of %d bytes at offset %d, only %d left: %v", e.Want, e.Off, e.Have, ErrUnexpectedEOF)
}

func (e *EOFError) Unwrap() error {
	return ErrUnexpectedEOF
}

// Stream decodes little-endian primitives from an in-memory buffer.
//
// The first failure is sticky: once Err is non-nil every read returns a zero
// value and leaves the offset untouched, so callers can decode a whole field
// group and check Err once.
type Stream struct {
	data []byte
	off  int
	err  error
}

func New(data []byte) *Stream {
	return &Stream{data: data}
}

// Err returns the first error encountered, if any.
func (s *Stream) Err() error {
	return s.err
}

// Fail records err as the stream error unless one is already set.
func (s *Stream) Fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Tell returns the current read offset.
func (s *Stream) Tell() int {
	return s.off
}

// Len returns the total size of the underlying data.
func (s *Stream) Len() int {
	return len(s.data)
}

// Remaining returns the number of unread bytes.
func (s *Stream) Remaining() int {
	return len(s.data) - s.off
}

// Seek moves the read offset to an absolute position.
func (s *Stream) Seek(off int) {
	if s.err != nil {
		return
	}
	if off < 0 || off > len(s.data) {
		s.err = &EOFError{Off: off, Want: 0, Have: len(s.data) - off}
		return
	}
	s.off = off
}

// Skip advances the read offset by n bytes.
func (s *Stream) Skip(n int) {
	s.take(n)
}

// take returns the next n bytes or nil when they are not available.
func (s *Stream) take(n int) []byte {
	if s.err != nil {
		return nil
	}
	if n < 0 || n > len(s.data)-s.off {
		s.err = &EOFError{Off: s.off, Want: n, Have: len(s.data) - s.off}
		return nil
	}
	b := s.data[s.off : s.off+n]
	s.off += n
	return b
}

// Ensure checks that count elements of size bytes each fit in the remaining data.
// It guards allocations against counts taken from a corrupt file.
func (s *Stream) Ensure(count, size int) bool {
	if s.err != nil {
		return false
	}
	if count < 0 || (size > 0 && count > (len(s.data)-s.off)/size) {
		s.err = &EOFError{Off: s.off, Want: count * size, Have: len(s.data) - s.off}
		return false
	}
	return true
}

func (s *Stream) Uint8() uint8 {
	b := s.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (s *Stream) Int8() int8 {
	return int8(s.Uint8())
}

func (s *Stream) Uint16() uint16 {
	b := s.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (s *Stream) Int16() int16 {
	return int16(s.Uint16())
}

func (s *Stream) Uint32() uint32 {
	b := s.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (s *Stream) Int32() int32 {
	return int32(s.Uint32())
}

func (s *Stream) Float32() float32 {
	return math.Float32frombits(s.Uint32())
}

// Bytes returns a copy of the next n bytes.
func (s *Stream) Bytes(n int) []byte {
	b := s.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

func (s *Stream) Vec2() mgl32.Vec2 {
	return mgl32.Vec2{s.Float32(), s.Float32()}
}

func (s *Stream) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{s.Float32(), s.Float32(), s.Float32()}
}

func (s *Stream) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{s.Float32(), s.Float32(), s.Float32(), s.Float32()}
}

// Quat reads a quaternion stored as w, x, y, z.
func (s *Stream) Quat() mgl32.Quat {
	w := s.Float32()
	return mgl32.Quat{W: w, V: s.Vec3()}
}

// Mat3 reads nine floats stored row by row.
func (s *Stream) Mat3() mgl32.Mat3 {
	r0 := s.Vec3()
	r1 := s.Vec3()
	r2 := s.Vec3()
	return mgl32.Mat3FromRows(r0, r1, r2)
}

// Mat4 reads sixteen floats stored row by row.
func (s *Stream) Mat4() mgl32.Mat4 {
	r0 := s.Vec4()
	r1 := s.Vec4()
	r2 := s.Vec4()
	r3 := s.Vec4()
	return mgl32.Mat4FromRows(r0, r1, r2, r3)
}

func (s *Stream) Uint8s(n int) []uint8 {
	return s.Bytes(n)
}

func (s *Stream) Uint16s(n int) []uint16 {
	if !s.Ensure(n, 2) {
		return nil
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = s.Uint16()
	}
	return out
}

func (s *Stream) Uint32s(n int) []uint32 {
	if !s.Ensure(n, 4) {
		return nil
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = s.Uint32()
	}
	return out
}

func (s *Stream) Int32s(n int) []int32 {
	if !s.Ensure(n, 4) {
		return nil
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = s.Int32()
	}
	return out
}

func (s *Stream) Float32s(n int) []float32 {
	if !s.Ensure(n, 4) {
		return nil
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = s.Float32()
	}
	return out
}

func (s *Stream) Vec2s(n int) []mgl32.Vec2 {
	if !s.Ensure(n, 8) {
		return nil
	}
	out := make([]mgl32.Vec2, n)
	for i := range out {
		out[i] = s.Vec2()
	}
	return out
}

func (s *Stream) Vec3s(n int) []mgl32.Vec3 {
	if !s.Ensure(n, 12) {
		return nil
	}
	out := make([]mgl32.Vec3, n)
	for i := range out {
		out[i] = s.Vec3()
	}
	return out
}

func (s *Stream) Vec4s(n int) []mgl32.Vec4 {
	if !s.Ensure(n, 16) {
		return nil
	}
	out := make([]mgl32.Vec4, n)
	for i := range out {
		out[i] = s.Vec4()
	}
	return out
}

func (s *Stream) Quats(n int) []mgl32.Quat {
	if !s.Ensure(n, 16) {
		return nil
	}
	out := make([]mgl32.Quat, n)
	for i := range out {
		out[i] = s.Quat()
	}
	return out
}

// SizedString reads n bytes and returns them up to the first NUL.
func (s *Stream) SizedString(n int) string {
	b := s.take(n)
	if b == nil {
		return ""
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// LengthPrefixedString reads a u32 length followed by that many bytes.
func (s *Stream) LengthPrefixedString() string {
	n := s.Uint32()
	if s.err != nil {
		return ""
	}
	if uint64(n) > uint64(s.Remaining()) {
		s.err = &EOFError{Off: s.off, Want: int(min(uint64(n), math.MaxInt32)), Have: s.Remaining()}
		return ""
	}
	return s.SizedString(int(n))
}

// ShortString reads a u8 length followed by that many bytes; a trailing NUL is dropped.
func (s *Stream) ShortString() string {
	n := s.Uint8()
	return s.SizedString(int(n))
}

// Line reads bytes up to and including '\n' and returns them without the newline.
// At most max bytes are scanned.
func (s *Stream) Line(max int) string {
	if s.err != nil {
		return ""
	}
	rest := s.data[s.off:]
	if len(rest) > max {
		rest = rest[:max]
	}
	i := bytes.IndexByte(rest, '\n')
	if i < 0 {
		s.err = &EOFError{Off: s.off, Want: len(rest) + 1, Have: len(rest)}
		return ""
	}
	line := string(rest[:i])
	s.off += i + 1
	return line
}
