package scenewalk

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"nifgraph/internal/nif"
)

// mwWriter writes Morrowind (4.0.0.2) records.
type mwWriter struct{ buf []byte }

func (w *mwWriter) u8(v uint8)   { w.buf = append(w.buf, v) }
func (w *mwWriter) u16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }
func (w *mwWriter) u32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }
func (w *mwWriter) i32(v int32)  { w.u32(uint32(v)) }

func (w *mwWriter) f32(v ...float32) {
	for _, f := range v {
		w.u32(math.Float32bits(f))
	}
}

func (w *mwWriter) str(s string) {
	w.u32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *mwWriter) refs(idx ...int32) {
	w.i32(int32(len(idx)))
	for _, i := range idx {
		w.i32(i)
	}
}

func (w *mwWriter) record(name string) { w.str(name) }

func (w *mwWriter) avObject(name string, pos mgl32.Vec3, props ...int32) {
	w.str(name)
	w.i32(-1) // extra
	w.i32(-1) // controller
	w.u16(0)
	w.f32(pos[:]...)
	w.f32(1, 0, 0, 0, 1, 0, 0, 0, 1)
	w.f32(1)
	w.f32(0, 0, 0)
	w.refs(props...)
	w.u32(0) // no bounds
}

func (w *mwWriter) node(name string, pos mgl32.Vec3, children ...int32) {
	w.record("NiNode")
	w.avObject(name, pos)
	w.refs(children...)
	w.refs()
}

func (w *mwWriter) shape(name string, pos mgl32.Vec3, prop, data, skin int32) {
	w.record("NiTriShape")
	w.avObject(name, pos, prop)
	w.i32(data)
	w.i32(skin)
}

func (w *mwWriter) shapeData() {
	w.record("NiTriShapeData")
	w.u16(3)
	w.u32(1)
	w.f32(0, 0, 0, 1, 0, 0, 0, 1, 0)
	w.u32(0) // normals
	w.f32(0, 0, 0, 1)
	w.u32(0) // colours
	w.u16(0)
	w.u32(0) // uvs
	w.u16(1)
	w.u32(3)
	w.u16(0)
	w.u16(1)
	w.u16(2)
	w.u16(0)
}

func (w *mwWriter) texturing(source int32) {
	w.record("NiTexturingProperty")
	w.str("")
	w.i32(-1)
	w.i32(-1)
	w.u16(0)
	w.u32(2) // apply mode
	w.u32(1) // one slot
	w.u32(1) // enabled
	w.i32(source)
	w.u32(3) // clamp
	w.u32(2) // filter
	w.u32(0) // uv set
	w.u32(0)
	w.u16(0)
}

func (w *mwWriter) sourceTexture(file string) {
	w.record("NiSourceTexture")
	w.str("")
	w.i32(-1)
	w.i32(-1)
	w.u8(1) // external
	w.str(file)
	w.u32(6)
	w.u32(2)
	w.u32(3)
	w.u8(1)
}

func (w *mwWriter) skin(data, root int32, bones ...int32) {
	w.record("NiSkinInstance")
	w.i32(data)
	w.i32(root)
	w.refs(bones...)
}

func (w *mwWriter) skinData(bones int) {
	w.record("NiSkinData")
	w.f32(1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1)
	w.u32(uint32(bones))
	w.i32(-1)
	for i := 0; i < bones; i++ {
		w.f32(1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1)
		w.f32(0, 0, 0, 1)
		w.u16(0)
	}
}

// testScene is
//
//	0 Root (0,0,10) -> 1 Arm, 2 Body
//	1 Arm (1,0,0)   -> 3 Hand, 0 Root (cycle)
//	2 Body, 3 Hand  share texturing 4 and data 5; Body is skinned to Arm
func testScene(t *testing.T) *nif.File {
	w := &mwWriter{}
	w.buf = append(w.buf, "NetImmerse File Format, Version 4.0.0.2\n"...)
	w.u32(uint32(nif.V4_0_0_2))
	w.u32(9)
	w.node("Root", mgl32.Vec3{0, 0, 10}, 1, 2)
	w.node("Arm", mgl32.Vec3{1, 0, 0}, 3, 0)
	w.shape("Body", mgl32.Vec3{}, 4, 5, 7)
	w.shape("Hand", mgl32.Vec3{0, 2, 0}, 4, 5, -1)
	w.texturing(6)
	w.shapeData()
	w.sourceTexture(`textures\tx_body.tga`)
	w.skin(8, 0, 1)
	w.skinData(1)
	w.refs(0)

	f, err := nif.Parse("scene.nif", w.buf, nif.Options{Strict: true})
	require.NoError(t, err)
	return f
}

func TestWalk(t *testing.T) {
	require := require.New(t)

	scene := Walk(testScene(t))

	var paths []string
	for _, o := range scene.Objects {
		paths = append(paths, o.Path)
	}
	require.Equal([]string{"Root", "Root/Arm", "Root/Arm/Hand", "Root/Body"}, paths)
	require.Equal(2, scene.Objects[2].Depth)
	require.Equal("Hand", scene.Objects[2].Name())

	hand := scene.Objects[2].World.Col(3).Vec3()
	require.InDelta(1, hand[0], 1e-6)
	require.InDelta(2, hand[1], 1e-6)
	require.InDelta(10, hand[2], 1e-6)

	require.Len(scene.Geometry, 2)
	require.Equal([]string{`textures\tx_body.tga`}, scene.Textures)
	require.Empty(scene.Embedded)

	require.Len(scene.Skinned, 1)
	require.Equal("Body", scene.Skinned[0].Geometry.AVObjectBase().Name)
	require.Equal("Root", scene.Skinned[0].Root)
	require.Equal([]string{"Arm"}, scene.Skinned[0].Bones)
}

func TestLocalMatrix(t *testing.T) {
	require := require.New(t)

	m := LocalMatrix(nif.Transform{
		Translation: mgl32.Vec3{1, 2, 3},
		Rotation:    mgl32.Rotate3DZ(mgl32.DegToRad(90)),
		Scale:       2,
	})
	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	require.InDelta(1, p[0], 1e-5)
	require.InDelta(4, p[1], 1e-5)
	require.InDelta(3, p[2], 1e-5)
}
