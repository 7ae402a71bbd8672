package nif

import "fmt"

// Node is the field group of scene graph nodes.
type Node struct {
	AVObject
	Children RefList[AVObjectRecord]
	Effects  RefList[DynamicEffectRecord]
}

func (n *Node) NodeBase() *Node { return n }

func readNode(r *Reader, n *Node) {
	readAVObject(r, &n.AVObject)
	n.Children.read(r)
	if r.beth < BethFO4 {
		n.Effects.read(r)
	}
}

// resolveNode resolves the node's references and registers self as the parent
// of every non-empty child.
func resolveNode(rs *resolver, self NodeRecord, n *Node) {
	resolveAVObject(rs, &n.AVObject)
	n.Children.resolve(rs)
	n.Effects.resolve(rs)
	if rs.err != nil {
		return
	}
	for _, child := range n.Children {
		if !child.Resolved() {
			continue
		}
		av := child.Get().AVObjectBase()
		av.parents = append(av.parents, self)
	}
}

type NiNode struct {
	RecordBase
	Node
}

func (n *NiNode) read(r *Reader)       { readNode(r, &n.Node) }
func (n *NiNode) resolve(rs *resolver) { resolveNode(rs, n, &n.Node) }

type NiSwitchNode struct {
	RecordBase
	Node
	SwitchFlags  uint16
	InitialIndex uint32
}

func readSwitchNode(r *Reader, n *NiSwitchNode) {
	readNode(r, &n.Node)
	if r.ver >= V10_1_0_0 {
		n.SwitchFlags = r.Uint16()
	}
	n.InitialIndex = r.Uint32()
}

func (n *NiSwitchNode) read(r *Reader)       { readSwitchNode(r, n) }
func (n *NiSwitchNode) resolve(rs *resolver) { resolveNode(rs, n, &n.Node) }

type LODRange struct {
	MinRange float32
	MaxRange float32
}

type NiLODNode struct {
	NiSwitchNode
	LODCenter Vec3
	LODLevels []LODRange
	LODData   Ref[Record]
}

func (n *NiLODNode) read(r *Reader) {
	readSwitchNode(r, &n.NiSwitchNode)
	if r.ver >= V4_0_0_2 && r.ver <= V10_0_1_0 {
		n.LODCenter = r.Vec3()
	}
	if r.ver <= V10_0_1_0 {
		count := r.Count(8)
		n.LODLevels = make([]LODRange, count)
		for i := range n.LODLevels {
			n.LODLevels[i] = LODRange{MinRange: r.Float32(), MaxRange: r.Float32()}
		}
	} else {
		n.LODData.read(r)
	}
}

func (n *NiLODNode) resolve(rs *resolver) {
	resolveNode(rs, n, &n.Node)
	n.LODData.resolve(rs)
}

type NiFltAnimationNode struct {
	NiSwitchNode
	Duration float32
}

func (n *NiFltAnimationNode) read(r *Reader) {
	readSwitchNode(r, &n.NiSwitchNode)
	n.Duration = r.Float32()
}

func (n *NiFltAnimationNode) resolve(rs *resolver) { resolveNode(rs, n, &n.Node) }

// Billboard modes.
const (
	BillboardAlwaysFaceCamera = 0
	BillboardRotateAboutUp    = 1
	BillboardRigidFaceCamera  = 2
	BillboardAlwaysFaceCenter = 3
	BillboardRigidFaceCenter  = 4
)

type NiBillboardNode struct {
	RecordBase
	Node
	Mode uint16
}

func (n *NiBillboardNode) read(r *Reader) {
	readNode(r, &n.Node)
	if r.ver >= V10_1_0_0 {
		n.Mode = r.Uint16()
	} else {
		n.Mode = uint16(n.Flags>>5) & 0x3
	}
}

func (n *NiBillboardNode) resolve(rs *resolver) { resolveNode(rs, n, &n.Node) }

type NiSortAdjustNode struct {
	RecordBase
	Node
	Mode      uint32
	SubSorter Ref[AccumulatorRecord]
}

func (n *NiSortAdjustNode) read(r *Reader) {
	readNode(r, &n.Node)
	n.Mode = r.Uint32()
	if r.ver <= V20_0_0_3 {
		n.SubSorter.read(r)
	}
}

func (n *NiSortAdjustNode) resolve(rs *resolver) {
	resolveNode(rs, n, &n.Node)
	n.SubSorter.resolve(rs)
}

type NiCamera struct {
	RecordBase
	AVObject
	CameraFlags uint16

	FrustumLeft, FrustumRight, FrustumTop, FrustumBottom float32
	FrustumNear, FrustumFar                              float32
	Orthographic                                         bool

	ViewportLeft, ViewportRight, ViewportTop, ViewportBottom float32

	LODAdjust float32
	Scene     Ref[Record]
}

func (c *NiCamera) read(r *Reader) {
	readAVObject(r, &c.AVObject)
	if r.ver >= V10_1_0_0 {
		c.CameraFlags = r.Uint16()
	}
	c.FrustumLeft = r.Float32()
	c.FrustumRight = r.Float32()
	c.FrustumTop = r.Float32()
	c.FrustumBottom = r.Float32()
	c.FrustumNear = r.Float32()
	c.FrustumFar = r.Float32()
	if r.ver >= V10_1_0_0 {
		c.Orthographic = r.Bool()
	}
	c.ViewportLeft = r.Float32()
	c.ViewportRight = r.Float32()
	c.ViewportTop = r.Float32()
	c.ViewportBottom = r.Float32()
	c.LODAdjust = r.Float32()
	c.Scene.read(r)
	r.Skip(4) // screen polygon count
	if r.ver >= V4_2_1_0 {
		r.Skip(4) // screen texture count
	}
}

func (c *NiCamera) resolve(rs *resolver) {
	resolveAVObject(rs, &c.AVObject)
	c.Scene.resolve(rs)
}

// MaterialData lists the shader materials of a geometry (10.0.1.0 and later).
type MaterialData struct {
	Names       []string
	Extra       []int32
	Active      int32
	NeedsUpdate bool
}

func readMaterialData(r *Reader, m *MaterialData) {
	if r.ver <= V10_0_1_0 {
		return
	}
	var n int
	if r.ver <= V20_1_0_3 {
		if r.Bool() {
			n = 1
		}
	} else if r.ver >= V20_2_0_5 {
		n = r.Count(8)
	}
	m.Names = r.Strs(n)
	m.Extra = r.Int32s(n)
	if r.ver >= V20_2_0_5 {
		m.Active = r.Int32()
	}
	if r.ver >= V20_2_0_7 {
		m.NeedsUpdate = r.Bool()
	}
}

// Geometry is the field group of renderable shapes.
type Geometry struct {
	AVObject
	Data           Ref[GeometryDataRecord]
	Skin           Ref[*NiSkinInstance]
	Material       MaterialData
	ShaderProperty Ref[PropertyRecord]
	AlphaProperty  Ref[PropertyRecord]
}

func (g *Geometry) GeometryBase() *Geometry { return g }

func readGeometry(r *Reader, g *Geometry) {
	readAVObject(r, &g.AVObject)
	g.Data.read(r)
	if r.ver >= V3_3_0_13 {
		g.Skin.read(r)
	}
	readMaterialData(r, &g.Material)
	if r.ver == V20_2_0_7 && r.beth > BethFO3 {
		g.ShaderProperty.read(r)
		g.AlphaProperty.read(r)
	}
}

// geometryDataTypes lists the data record each geometry type accepts.
var geometryDataTypes = map[RecordType][]RecordType{
	RCNiTriShape:  {RCNiTriShapeData},
	RCNiTriStrips: {RCNiTriStripsData},
	RCNiLines:     {RCNiLinesData},
	RCNiParticles: {RCNiParticlesData, RCNiRotatingParticlesData, RCNiAutoNormalParticlesData},
}

func resolveGeometry(rs *resolver, self GeometryRecord, g *Geometry) {
	resolveAVObject(rs, &g.AVObject)
	g.Data.resolve(rs)
	g.Skin.resolve(rs)
	g.ShaderProperty.resolve(rs)
	g.AlphaProperty.resolve(rs)
	if rs.err != nil {
		return
	}
	if g.Data.Resolved() {
		want := geometryDataTypes[self.Type()]
		got := g.Data.Get().Type()
		ok := false
		for _, t := range want {
			if got == t {
				ok = true
				break
			}
		}
		if !ok {
			rs.fail(fmt.Errorf("%w: %s data is %s", ErrTypeMismatch, self.TypeName(), g.Data.Get().TypeName()))
			return
		}
	}
	if self.Type() != RCNiParticles && !g.Skin.Empty() {
		rs.useSkinning = true
	}
}

type NiTriShape struct {
	RecordBase
	Geometry
}

func (g *NiTriShape) read(r *Reader)       { readGeometry(r, &g.Geometry) }
func (g *NiTriShape) resolve(rs *resolver) { resolveGeometry(rs, g, &g.Geometry) }

type NiTriStrips struct {
	RecordBase
	Geometry
}

func (g *NiTriStrips) read(r *Reader)       { readGeometry(r, &g.Geometry) }
func (g *NiTriStrips) resolve(rs *resolver) { resolveGeometry(rs, g, &g.Geometry) }

type NiLines struct {
	RecordBase
	Geometry
}

func (g *NiLines) read(r *Reader)       { readGeometry(r, &g.Geometry) }
func (g *NiLines) resolve(rs *resolver) { resolveGeometry(rs, g, &g.Geometry) }

type NiParticles struct {
	RecordBase
	Geometry
}

func (g *NiParticles) read(r *Reader)       { readGeometry(r, &g.Geometry) }
func (g *NiParticles) resolve(rs *resolver) { resolveGeometry(rs, g, &g.Geometry) }
