package nifstream

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func le32(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

func f32(v float32) []byte {
	return le32(math.Float32bits(v))
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestStream_Primitives(t *testing.T) {
	require := require.New(t)

	data := cat(
		[]byte{0x7f, 0xff},
		[]byte{0x34, 0x12},
		le32(0xdeadbeef),
		le32(0xfffffffe),
		f32(1.5),
	)
	s := New(data)
	require.Equal(uint8(0x7f), s.Uint8())
	require.Equal(int8(-1), s.Int8())
	require.Equal(uint16(0x1234), s.Uint16())
	require.Equal(uint32(0xdeadbeef), s.Uint32())
	require.Equal(int32(-2), s.Int32())
	require.Equal(float32(1.5), s.Float32())
	require.NoError(s.Err())
	require.Equal(len(data), s.Tell())
	require.Zero(s.Remaining())
}

func TestStream_Aggregates(t *testing.T) {
	require := require.New(t)

	var data []byte
	for i := 1; i <= 9; i++ {
		data = append(data, f32(float32(i))...)
	}
	// quaternion w, x, y, z
	data = append(data, cat(f32(1), f32(2), f32(3), f32(4))...)

	s := New(data)
	m := s.Mat3()
	require.Equal(mgl32.Vec3{1, 2, 3}, m.Row(0))
	require.Equal(mgl32.Vec3{4, 5, 6}, m.Row(1))
	require.Equal(mgl32.Vec3{7, 8, 9}, m.Row(2))

	q := s.Quat()
	require.Equal(float32(1), q.W)
	require.Equal(mgl32.Vec3{2, 3, 4}, q.V)
	require.NoError(s.Err())
}

func TestStream_Strings(t *testing.T) {
	require := require.New(t)

	data := cat(
		le32(5), []byte("NiNode"[:5]),
		[]byte{4}, []byte("abc\x00"),
		[]byte("NetImmerse File Format, Version 4.0.0.2\n"),
		[]byte("pad\x00\x00"),
	)
	s := New(data)
	require.Equal("NiNod", s.LengthPrefixedString())
	require.Equal("abc", s.ShortString())
	require.Equal("NetImmerse File Format, Version 4.0.0.2", s.Line(128))
	require.Equal("pad", s.SizedString(5))
	require.NoError(s.Err())
	require.Zero(s.Remaining())
}

func TestStream_StickyEOF(t *testing.T) {
	require := require.New(t)

	s := New([]byte{1, 2, 3})
	require.Equal(uint16(0x0201), s.Uint16())
	require.Zero(s.Uint32())
	require.Error(s.Err())
	require.True(errors.Is(s.Err(), ErrUnexpectedEOF))

	var eof *EOFError
	require.True(errors.As(s.Err(), &eof))
	require.Equal(2, eof.Off)
	require.Equal(4, eof.Want)
	require.Equal(1, eof.Have)

	// later reads are no-ops
	require.Zero(s.Uint8())
	require.Equal(2, s.Tell())
}

func TestStream_ArrayCountGuard(t *testing.T) {
	require := require.New(t)

	s := New(cat(f32(1), f32(2)))
	require.Nil(s.Vec3s(1 << 30))
	require.True(errors.Is(s.Err(), ErrUnexpectedEOF))
	require.Zero(s.Tell())

	s = New(le32(0x7fffffff))
	require.Empty(s.LengthPrefixedString())
	require.True(errors.Is(s.Err(), ErrUnexpectedEOF))
}

func TestStream_LineWithoutNewline(t *testing.T) {
	s := New([]byte("no newline here"))
	require.Empty(t, s.Line(64))
	require.Error(t, s.Err())
}

func TestStream_SeekSkip(t *testing.T) {
	require := require.New(t)

	s := New(make([]byte, 10))
	s.Skip(4)
	require.Equal(4, s.Tell())
	s.Seek(9)
	require.Equal(1, s.Remaining())
	s.Skip(2)
	require.Error(s.Err())
	require.Equal(9, s.Tell())
}
