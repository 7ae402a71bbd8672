package nif

import "fmt"

// GeometryData is the field group of vertex data records.
type GeometryData struct {
	GroupID     int32
	NumVertices uint16
	Vertices    []Vec3
	DataFlags   uint16
	MaterialCRC uint32
	Normals     []Vec3
	Tangents    []Vec3
	Bitangents  []Vec3
	Center      Vec3
	Radius      float32
	Colors      []Vec4
	UVSets      [][]Vec2
	Consistency uint16
}

func (g *GeometryData) GeometryDataBase() *GeometryData { return g }

func readGeometryData(r *Reader, g *GeometryData) {
	if r.ver >= V10_1_0_114 {
		g.GroupID = r.Int32()
	}
	// the count is stored even when the vertices themselves are absent
	g.NumVertices = r.Uint16()
	verts := int(g.NumVertices)
	if r.ver >= V10_1_0_0 {
		r.Skip(2) // keep flags, compress flags
	}
	if r.Bool() {
		g.Vertices = r.Vec3s(verts)
	}
	if r.ver >= V10_0_1_0 {
		g.DataFlags = r.Uint16()
	}
	if r.ver == V20_2_0_7 && r.beth > BethFO3 {
		g.MaterialCRC = r.Uint32()
	}
	if r.Bool() {
		g.Normals = r.Vec3s(verts)
		if g.DataFlags&0x1000 != 0 {
			g.Tangents = r.Vec3s(verts)
			g.Bitangents = r.Vec3s(verts)
		}
	}
	g.Center = r.Vec3()
	g.Radius = r.Float32()
	if r.Bool() {
		g.Colors = r.Vec4s(verts)
	}

	var numUVs int
	if r.ver <= V4_2_2_0 {
		g.DataFlags = r.Uint16()
		numUVs = int(g.DataFlags)
	} else {
		numUVs = int(g.DataFlags)
	}
	if r.ver > V4_0_0_2 {
		numUVs &= 0x3f
		if r.ver == V20_2_0_7 && r.beth > 0 {
			numUVs &= 0x1
		}
	}
	hasUVs := true
	if r.ver <= V4_0_0_2 {
		hasUVs = r.Bool()
	}
	if hasUVs && r.Ensure(numUVs, verts*8) {
		g.UVSets = make([][]Vec2, numUVs)
		for i := range g.UVSets {
			g.UVSets[i] = r.Vec2s(verts)
		}
	}
	if r.ver >= V10_0_1_0 {
		g.Consistency = r.Uint16()
	}
	if r.ver >= V20_0_0_4 {
		r.Skip(4) // additional data ref, never used
	}
}

// TriBasedGeomData adds the triangle count shared by shape and strip data.
type TriBasedGeomData struct {
	GeometryData
	NumTriangles uint16
}

func readTriBasedGeomData(r *Reader, g *TriBasedGeomData) {
	readGeometryData(r, &g.GeometryData)
	g.NumTriangles = r.Uint16()
}

type NiTriShapeData struct {
	RecordBase
	TriBasedGeomData
	// Triangles holds three vertex indices per triangle.
	Triangles   []uint16
	MatchGroups [][]uint16
}

func (d *NiTriShapeData) read(r *Reader) {
	readTriBasedGeomData(r, &d.TriBasedGeomData)
	n := int(r.Uint32())
	if r.ver > V10_0_1_2 && !r.Bool() {
		n = 0
	}
	d.Triangles = r.Uint16s(n)
	groups := int(r.Uint16())
	if !r.Ensure(groups, 2) {
		return
	}
	d.MatchGroups = make([][]uint16, groups)
	for i := range d.MatchGroups {
		d.MatchGroups[i] = r.Uint16s(int(r.Uint16()))
	}
}

type NiTriStripsData struct {
	RecordBase
	TriBasedGeomData
	Strips [][]uint16
}

func (d *NiTriStripsData) read(r *Reader) {
	readTriBasedGeomData(r, &d.TriBasedGeomData)
	n := int(r.Uint16())
	lengths := r.Uint16s(n)
	if r.ver > V10_0_1_2 && !r.Bool() {
		n = 0
	}
	if r.Err() != nil {
		return
	}
	d.Strips = make([][]uint16, n)
	for i := range d.Strips {
		d.Strips[i] = r.Uint16s(int(lengths[i]))
	}
}

type NiLinesData struct {
	RecordBase
	GeometryData
	// Connections tells for each vertex whether it joins the next one.
	Connections []bool
}

func (d *NiLinesData) read(r *Reader) {
	readGeometryData(r, &d.GeometryData)
	n := int(d.NumVertices)
	if !r.Ensure(n, 1) {
		return
	}
	d.Connections = make([]bool, n)
	for i := range d.Connections {
		d.Connections[i] = r.Uint8() != 0
	}
}

type NiParticlesData struct {
	RecordBase
	GeometryData
	NumParticles   uint16
	Radii          []float32
	ActiveCount    uint16
	Sizes          []float32
	Rotations      []Quat
	RotationAngles []float32
	RotationAxes   []Vec3

	SubtextureOffsets []Vec4
	AspectRatio       float32
	AspectFlags       uint16
	SpeedToAspect     Vec3
}

func readParticlesData(r *Reader, d *NiParticlesData) {
	readGeometryData(r, &d.GeometryData)
	n := int(d.NumVertices)
	bs202 := r.ver == V20_2_0_7 && r.beth != 0
	present := func() bool { return r.Bool() && !bs202 }

	if r.ver <= V4_0_0_2 {
		d.NumParticles = r.Uint16()
	}
	radii := 1
	if r.ver > V10_0_1_0 {
		radii = 0
		if present() {
			radii = n
		}
	}
	d.Radii = r.Float32s(radii)
	d.ActiveCount = r.Uint16()
	if present() {
		d.Sizes = r.Float32s(n)
	}
	if r.ver < V10_0_1_0 {
		return
	}
	if present() {
		d.Rotations = r.Quats(n)
	}
	if r.ver < V20_0_0_4 {
		return
	}
	if present() {
		d.RotationAngles = r.Float32s(n)
	}
	if present() {
		d.RotationAxes = r.Vec3s(n)
	}
	if !bs202 {
		return
	}
	r.Bool() // has texture indices
	var offsets int
	if r.beth <= BethFO3 {
		offsets = int(r.Uint8())
	} else {
		offsets = int(r.Uint32())
	}
	d.SubtextureOffsets = r.Vec4s(offsets)
	if r.beth > BethFO3 {
		d.AspectRatio = r.Float32()
		d.AspectFlags = r.Uint16()
		d.SpeedToAspect = r.Vec3()
	}
}

func (d *NiParticlesData) read(r *Reader) { readParticlesData(r, d) }

type NiRotatingParticlesData struct {
	NiParticlesData
}

func (d *NiRotatingParticlesData) read(r *Reader) {
	readParticlesData(r, &d.NiParticlesData)
	if r.ver <= V4_2_2_0 && r.Bool() {
		d.Rotations = r.Quats(int(d.NumVertices))
	}
}

// NiSkinInstance binds a geometry to a skeleton.
type NiSkinInstance struct {
	RecordBase
	Data       Ref[*NiSkinData]
	Partitions Ref[*NiSkinPartition]
	Root       Ref[NodeRecord]
	Bones      RefList[NodeRecord]
}

func (s *NiSkinInstance) read(r *Reader) {
	s.Data.read(r)
	if r.ver >= V10_1_0_101 {
		s.Partitions.read(r)
	}
	s.Root.read(r)
	s.Bones.read(r)
}

func (s *NiSkinInstance) resolve(rs *resolver) {
	s.Data.resolve(rs)
	s.Partitions.resolve(rs)
	s.Root.resolve(rs)
	s.Bones.resolve(rs)
	if rs.err != nil {
		return
	}
	if s.Data.Empty() || s.Root.Empty() {
		rs.fail(fmt.Errorf("%w: skin instance without root or data", ErrMissingRef))
		return
	}
	if len(s.Bones) != len(s.Data.Get().Bones) {
		rs.fail(fmt.Errorf("%w: skin instance has %d bones, skin data %d",
			ErrCountMismatch, len(s.Bones), len(s.Data.Get().Bones)))
		return
	}
	for i, bone := range s.Bones {
		if bone.Empty() {
			rs.fail(fmt.Errorf("%w: skin instance bone %d", ErrMissingRef, i))
			return
		}
	}
}

// SkinTransform is the rotation-first transform layout used by skin data.
type SkinTransform struct {
	Rotation    Mat3
	Translation Vec3
	Scale       float32
}

func readSkinTransform(r *Reader) SkinTransform {
	return SkinTransform{
		Rotation:    r.Mat3(),
		Translation: r.Vec3(),
		Scale:       r.Float32(),
	}
}

type VertexWeight struct {
	Vertex uint16
	Weight float32
}

type BoneInfo struct {
	Transform   SkinTransform
	BoundCenter Vec3
	BoundRadius float32
	NumVertices uint16
	Weights     []VertexWeight
}

type NiSkinData struct {
	RecordBase
	Transform  SkinTransform
	Partitions Ref[*NiSkinPartition]
	HasWeights bool
	Bones      []BoneInfo
}

func (d *NiSkinData) read(r *Reader) {
	d.Transform = readSkinTransform(r)
	// a bone without weights still takes 70 bytes
	bones := r.Count(70)
	if r.ver >= V4_0_0_2 && r.ver <= V10_1_0_0 {
		d.Partitions.read(r)
	}
	d.HasWeights = true
	if r.ver > V4_2_1_0 {
		d.HasWeights = r.Bool()
	}
	d.Bones = make([]BoneInfo, bones)
	for i := range d.Bones {
		b := &d.Bones[i]
		b.Transform = readSkinTransform(r)
		b.BoundCenter = r.Vec3()
		b.BoundRadius = r.Float32()
		b.NumVertices = r.Uint16()
		if !d.HasWeights || !r.Ensure(int(b.NumVertices), 6) {
			continue
		}
		b.Weights = make([]VertexWeight, b.NumVertices)
		for j := range b.Weights {
			b.Weights[j] = VertexWeight{Vertex: r.Uint16(), Weight: r.Float32()}
		}
	}
}

func (d *NiSkinData) resolve(rs *resolver) {
	d.Partitions.resolve(rs)
}

type SkinPartition struct {
	NumVertices    uint16
	NumTriangles   uint16
	BonesPerVertex uint16
	Bones          []uint16
	VertexMap      []uint16
	Weights        []float32
	Strips         [][]uint16
	Triangles      []uint16
	BoneIndices    []uint8
	LODLevel       uint8
	GlobalVB       bool
}

func readSkinPartition(r *Reader, p *SkinPartition) {
	p.NumVertices = r.Uint16()
	p.NumTriangles = r.Uint16()
	bones := int(r.Uint16())
	strips := int(r.Uint16())
	p.BonesPerVertex = r.Uint16()
	p.Bones = r.Uint16s(bones)

	flags := r.ver >= V10_1_0_0
	present := func() bool { return !flags || r.Bool() }
	verts := int(p.NumVertices)
	perVertex := verts * int(p.BonesPerVertex)

	if present() {
		p.VertexMap = r.Uint16s(verts)
	}
	if present() {
		p.Weights = r.Float32s(perVertex)
	}
	lengths := r.Uint16s(strips)
	if present() && r.Err() == nil {
		if strips != 0 {
			p.Strips = make([][]uint16, strips)
			for i := range p.Strips {
				p.Strips[i] = r.Uint16s(int(lengths[i]))
			}
		} else {
			p.Triangles = r.Uint16s(int(p.NumTriangles) * 3)
		}
	}
	if present() {
		p.BoneIndices = r.Uint8s(perVertex)
	}
	if r.beth > BethFO3 {
		p.LODLevel = r.Uint8()
		p.GlobalVB = r.Bool()
	}
}

type NiSkinPartition struct {
	RecordBase
	Partitions []SkinPartition
}

func (s *NiSkinPartition) read(r *Reader) {
	// the smallest partition is ten bytes of counts
	n := r.Count(10)
	if r.beth == BethSSE {
		r.Fail(fmt.Errorf("%w: skin partition vertex data of stream version %d", ErrUnknownValue, r.beth))
		return
	}
	s.Partitions = make([]SkinPartition, n)
	for i := range s.Partitions {
		readSkinPartition(r, &s.Partitions[i])
	}
}

// Pixel formats of NiPixelData.
const (
	PixelRGB8 uint32 = iota
	PixelRGBA8
	PixelPAL8
	PixelPALA8
	PixelBGR8
	PixelBGRA8
	PixelDXT1
	PixelDXT3
	PixelDXT5
)

type PixelChannel struct {
	Kind       uint32
	Convention uint32
	Bits       uint8
	Signed     bool
}

type PixelFormat struct {
	Format       uint32
	ColorMasks   [4]uint32
	BitsPerPixel uint32
	CompareBits  [2]uint32
	PixelTiling  uint32
	RendererHint uint8
	ExtraData    uint32
	Flags        uint8
	UseSRGB      bool
	Channels     [4]PixelChannel
}

func readPixelFormat(r *Reader, f *PixelFormat) {
	f.Format = r.Uint32()
	if r.ver <= V10_4_0_1 {
		for i := range f.ColorMasks {
			f.ColorMasks[i] = r.Uint32()
		}
		f.BitsPerPixel = r.Uint32()
		f.CompareBits[0] = r.Uint32()
		f.CompareBits[1] = r.Uint32()
		if r.ver >= V10_1_0_0 {
			f.PixelTiling = r.Uint32()
		}
		return
	}
	f.BitsPerPixel = uint32(r.Uint8())
	f.RendererHint = r.Uint8()
	f.ExtraData = r.Uint32()
	f.Flags = r.Uint8()
	f.PixelTiling = r.Uint32()
	if r.ver >= V20_3_0_4 {
		f.UseSRGB = r.Bool()
	}
	for i := range f.Channels {
		c := &f.Channels[i]
		c.Kind = r.Uint32()
		c.Convention = r.Uint32()
		c.Bits = r.Uint8()
		c.Signed = r.Bool()
	}
}

type Mipmap struct {
	Width  uint32
	Height uint32
	Offset uint32
}

// NiPixelData is an embedded texture image with its mip chain.
type NiPixelData struct {
	RecordBase
	PixelFormat
	Palette       Ref[*NiPalette]
	Mipmaps       []Mipmap
	BytesPerPixel uint32
	NumFaces      uint32
	Data          []byte
}

func (d *NiPixelData) read(r *Reader) {
	readPixelFormat(r, &d.PixelFormat)
	d.Palette.read(r)
	mips := r.Count(12)
	d.BytesPerPixel = r.Uint32()
	d.Mipmaps = make([]Mipmap, mips)
	for i := range d.Mipmaps {
		d.Mipmaps[i] = Mipmap{Width: r.Uint32(), Height: r.Uint32(), Offset: r.Uint32()}
	}
	pixels := int(r.Uint32())
	d.NumFaces = 1
	if r.ver >= V10_4_0_2 {
		d.NumFaces = r.Uint32()
	}
	if r.Err() == nil && d.NumFaces > 0 && pixels > r.Remaining()/int(d.NumFaces) {
		r.Ensure(pixels, int(d.NumFaces))
		return
	}
	d.Data = r.Bytes(pixels * int(d.NumFaces))
}

func (d *NiPixelData) resolve(rs *resolver) {
	d.Palette.resolve(rs)
}

// NiPalette holds 256 RGBA colors packed as little-endian u32.
type NiPalette struct {
	RecordBase
	UseAlpha bool
	Colors   []uint32
}

func (p *NiPalette) read(r *Reader) {
	p.UseAlpha = r.Uint8() != 0
	var alphaMask uint32 = 0xFF000000
	if p.UseAlpha {
		alphaMask = 0
	}
	n := r.Count(4)
	// short palettes are padded with black
	p.Colors = make([]uint32, max(n, 256))
	for i := 0; i < n; i++ {
		p.Colors[i] = r.Uint32() | alphaMask
	}
}
