package nif

// DynamicEffect is the field group of lights and texture effects.
type DynamicEffect struct {
	AVObject
	SwitchState bool
	// AffectedNodePointers holds the raw in-memory pointers old files stored
	// instead of references. They are meaningless after loading.
	AffectedNodePointers []uint32
	AffectedNodes        RefList[NodeRecord]
}

func (e *DynamicEffect) DynamicEffectBase() *DynamicEffect { return e }

func readDynamicEffect(r *Reader, e *DynamicEffect) {
	readAVObject(r, &e.AVObject)
	e.SwitchState = true
	if r.beth >= BethFO4 {
		return
	}
	if r.ver >= V10_1_0_106 {
		e.SwitchState = r.Bool()
	}
	if r.ver <= V4_0_0_2 {
		n := r.Count(4)
		e.AffectedNodePointers = r.Uint32s(n)
	} else if r.ver >= V10_1_0_0 {
		e.AffectedNodes.read(r)
	}
}

func resolveDynamicEffect(rs *resolver, e *DynamicEffect) {
	resolveAVObject(rs, &e.AVObject)
	e.AffectedNodes.resolve(rs)
}

// Light is shared by all light records.
type Light struct {
	DynamicEffect
	Dimmer   float32
	Ambient  Vec3
	Diffuse  Vec3
	Specular Vec3
}

func readLight(r *Reader, l *Light) {
	readDynamicEffect(r, &l.DynamicEffect)
	l.Dimmer = r.Float32()
	l.Ambient = r.Vec3()
	l.Diffuse = r.Vec3()
	l.Specular = r.Vec3()
}

// NiLight covers the ambient and directional lights, which add nothing to
// the common light fields.
type NiLight struct {
	RecordBase
	Light
}

func (l *NiLight) read(r *Reader)       { readLight(r, &l.Light) }
func (l *NiLight) resolve(rs *resolver) { resolveDynamicEffect(rs, &l.DynamicEffect) }

type NiPointLight struct {
	RecordBase
	Light
	Constant  float32
	Linear    float32
	Quadratic float32
}

func readPointLight(r *Reader, l *NiPointLight) {
	readLight(r, &l.Light)
	l.Constant = r.Float32()
	l.Linear = r.Float32()
	l.Quadratic = r.Float32()
}

func (l *NiPointLight) read(r *Reader)       { readPointLight(r, l) }
func (l *NiPointLight) resolve(rs *resolver) { resolveDynamicEffect(rs, &l.DynamicEffect) }

type NiSpotLight struct {
	NiPointLight
	OuterSpotAngle float32
	InnerSpotAngle float32
	Exponent       float32
}

func (l *NiSpotLight) read(r *Reader) {
	readPointLight(r, &l.NiPointLight)
	l.OuterSpotAngle = r.Float32()
	if r.ver >= V20_2_0_5 {
		l.InnerSpotAngle = r.Float32()
	}
	l.Exponent = r.Float32()
}

// Texture effect projection kinds.
const (
	TextureEffectProjectedLight  = 0
	TextureEffectProjectedShadow = 1
	TextureEffectEnvironmentMap  = 2
	TextureEffectFogMap          = 3
)

type NiTextureEffect struct {
	RecordBase
	DynamicEffect
	ProjectionRotation Mat3
	ProjectionPosition Vec3
	FilterMode         uint32
	MaxAnisotropy      uint16
	ClampMode          uint32
	TextureKind        uint32
	CoordGenKind       uint32
	Texture            Ref[*NiSourceTexture]
	EnableClipPlane    bool
	ClipPlane          Vec4
}

func (e *NiTextureEffect) read(r *Reader) {
	readDynamicEffect(r, &e.DynamicEffect)
	e.ProjectionRotation = r.Mat3()
	e.ProjectionPosition = r.Vec3()
	e.FilterMode = r.Uint32()
	if r.ver >= V20_5_0_4 {
		e.MaxAnisotropy = r.Uint16()
	}
	e.ClampMode = r.Uint32()
	e.TextureKind = r.Uint32()
	e.CoordGenKind = r.Uint32()
	e.Texture.read(r)
	e.EnableClipPlane = r.Uint8() != 0
	e.ClipPlane = r.Vec4()
	if r.ver <= V10_2_0_0 {
		r.Skip(4) // PS2 L and K
	}
	if r.ver <= V4_1_0_12 {
		r.Skip(2)
	}
}

func (e *NiTextureEffect) resolve(rs *resolver) {
	resolveDynamicEffect(rs, &e.DynamicEffect)
	e.Texture.resolve(rs)
}
