package nif

import (
	"encoding/binary"
	"math"
	"strings"
)

// encoder writes the little-endian primitives the reader consumes, gated by
// the same version triple.
type encoder struct {
	buf     []byte
	ctx     Context
	strings *[]string
}

func (e *encoder) u8(v uint8)   { e.buf = append(e.buf, v) }
func (e *encoder) u16(v uint16) { e.buf = binary.LittleEndian.AppendUint16(e.buf, v) }
func (e *encoder) u32(v uint32) { e.buf = binary.LittleEndian.AppendUint32(e.buf, v) }
func (e *encoder) i32(v int32)  { e.u32(uint32(v)) }
func (e *encoder) f32(v float32) {
	e.u32(math.Float32bits(v))
}

func (e *encoder) floats(v ...float32) {
	for _, f := range v {
		e.f32(f)
	}
}

func (e *encoder) bool(v bool) {
	var b uint8
	if v {
		b = 1
	}
	if e.ctx.Version < V4_1_0_0 {
		e.u32(uint32(b))
		return
	}
	e.u8(b)
}

func (e *encoder) lps(s string) {
	e.u32(uint32(len(s)))
	e.buf = append(e.buf, s...)
}

func (e *encoder) short(s string) {
	e.u8(uint8(len(s) + 1))
	e.buf = append(e.buf, s...)
	e.u8(0)
}

// str writes a string inline or as a string table index, adding it to the
// table when needed. The empty string is written as the no-string index.
func (e *encoder) str(s string) {
	if e.ctx.Version < V20_1_0_1 {
		e.lps(s)
		return
	}
	if s == "" {
		e.u32(0xFFFFFFFF)
		return
	}
	for i, have := range *e.strings {
		if have == s {
			e.u32(uint32(i))
			return
		}
	}
	*e.strings = append(*e.strings, s)
	e.u32(uint32(len(*e.strings) - 1))
}

func (e *encoder) refs(idx ...int32) {
	e.i32(int32(len(idx)))
	for _, i := range idx {
		e.i32(i)
	}
}

// identity writes a translation, an identity rotation and a unit scale.
func (e *encoder) identity(translation Vec3) {
	e.floats(translation[:]...)
	e.floats(1, 0, 0, 0, 1, 0, 0, 0, 1)
	e.f32(1)
}

// named writes the Named group. Before 10.0.1.0 only the first extra is
// stored, heading the chain.
func (e *encoder) named(name string, extras []int32, controller int32) {
	e.str(name)
	if e.ctx.Version < V10_0_1_0 {
		head := int32(-1)
		if len(extras) > 0 {
			head = extras[0]
		}
		e.i32(head)
	} else {
		e.refs(extras...)
	}
	e.i32(controller)
}

type avFields struct {
	name       string
	extras     []int32
	controller int32
	flags      uint32
	pos        Vec3
	properties []int32
	collision  int32
}

func (e *encoder) avObject(f avFields) {
	e.named(f.name, f.extras, f.controller)
	if e.ctx.BethVersion <= 26 {
		e.u16(uint16(f.flags))
	} else {
		e.u32(f.flags)
	}
	e.identity(f.pos)
	if e.ctx.Version <= V4_2_2_0 {
		e.floats(0, 0, 0)
	}
	if e.ctx.BethVersion <= BethFO3 {
		e.refs(f.properties...)
	}
	if e.ctx.Version <= V4_2_2_0 {
		e.bool(false)
	}
	if e.ctx.Version >= V10_0_1_0 {
		e.i32(f.collision)
	}
}

func (e *encoder) node(f avFields, children ...int32) {
	e.avObject(f)
	e.refs(children...)
	if e.ctx.BethVersion < BethFO4 {
		e.refs()
	}
}

// extra writes the Extra group. next is only stored before 4.2.2.0.
func (e *encoder) extra(name string, next int32, size uint32) {
	if e.ctx.Version >= V10_0_1_0 {
		e.str(name)
	} else if e.ctx.Version <= V4_2_2_0 {
		e.i32(next)
		e.u32(size)
	}
}

func (e *encoder) stringExtra(name string, next int32, value string) {
	e.extra(name, next, 0)
	e.str(value)
}

func (e *encoder) controller(next int32, target int32) {
	e.i32(next)
	e.u16(ControllerActive)
	e.floats(1, 0, 0, 1)
	e.i32(target)
}

// testRecord is a record body paired with its type name.
type testRecord struct {
	name string
	body func(e *encoder)
}

func rec(name string, body func(e *encoder)) testRecord {
	return testRecord{name: name, body: body}
}

// fileSpec describes a file for build.
type fileSpec struct {
	ctx     Context
	records []testRecord
	roots   []int32

	noFooter  bool
	trailing  []byte
	sizeDelta int // added to every stored record size
	separator int32
	magic     string
}

func (fs fileSpec) magicLine() string {
	if fs.magic != "" {
		return fs.magic
	}
	if fs.ctx.Version < V10_0_1_0 {
		return "NetImmerse File Format, Version " + fs.ctx.Version.String()
	}
	return "Gamebryo File Format, Version " + fs.ctx.Version.String()
}

// build encodes the whole file: header, records and footer.
func (fs fileSpec) build() []byte {
	var table []string
	bodies := make([][]byte, len(fs.records))
	for i, r := range fs.records {
		e := &encoder{ctx: fs.ctx, strings: &table}
		if r.body != nil {
			r.body(e)
		}
		bodies[i] = e.buf
	}

	ver := fs.ctx.Version
	h := &encoder{ctx: fs.ctx, strings: &table}
	h.buf = append(h.buf, fs.magicLine()+"\n"...)
	h.u32(uint32(ver))
	if ver >= V20_0_0_4 {
		h.u8(1)
	}
	if ver > V10_0_1_8 {
		h.u32(fs.ctx.UserVersion)
	}
	h.i32(int32(len(fs.records)))
	if hasBethesdaBlock(ver, fs.ctx.UserVersion) {
		h.u32(fs.ctx.BethVersion)
		h.short("tester")
		if fs.ctx.BethVersion > BethFO4 {
			h.u32(0)
		}
		h.short("process")
		h.short("export")
		if fs.ctx.BethVersion == BethFO4 {
			h.short("maxpath")
		}
	}
	if ver >= V5_0_0_1 {
		var names []string
		index := make([]uint16, len(fs.records))
		for i, r := range fs.records {
			j := indexOf(names, r.name)
			if j < 0 {
				names = append(names, r.name)
				j = len(names) - 1
			}
			index[i] = uint16(j)
		}
		h.u16(uint16(len(names)))
		for _, n := range names {
			h.lps(n)
		}
		for _, idx := range index {
			h.u16(idx)
		}
	}
	if ver >= V5_0_0_6 {
		if ver >= V20_2_0_5 {
			for _, b := range bodies {
				h.u32(uint32(len(b) + fs.sizeDelta))
			}
		}
		if ver >= V20_1_0_1 {
			h.u32(uint32(len(table)))
			longest := 0
			for _, s := range table {
				longest = max(longest, len(s))
			}
			h.u32(uint32(longest))
			for _, s := range table {
				h.lps(s)
			}
		}
		h.u32(0) // groups
	}

	for i, r := range fs.records {
		if ver < V5_0_0_1 {
			h.lps(r.name)
		}
		if ver >= V10_0_0_0 && ver < V10_2_0_0 && !strings.HasPrefix(r.name, "bhk") {
			h.i32(fs.separator)
		}
		h.buf = append(h.buf, bodies[i]...)
	}
	if !fs.noFooter {
		h.refs(fs.roots...)
	}
	h.buf = append(h.buf, fs.trailing...)
	return h.buf
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// Contexts of the common game generations.
var (
	ctxMorrowind = Context{Version: V4_0_0_2}
	ctxOblivion  = Context{Version: V20_0_0_5, UserVersion: 11, BethVersion: 11}
	ctxFallout3  = Context{Version: V20_2_0_7, UserVersion: 11, BethVersion: BethFO3}
	ctxSkyrim    = Context{Version: V20_2_0_7, UserVersion: 12, BethVersion: BethSKY}
)
