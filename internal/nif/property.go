package nif

// Property is the field group of rendering state records.
type Property struct {
	Named
}

func (p *Property) PropertyBase() *Property { return p }

func readProperty(r *Reader, p *Property) {
	readNamed(r, &p.Named)
}

func resolveProperty(rs *resolver, p *Property) {
	resolveNamed(rs, &p.Named)
}

// Texture slots of NiTexturingProperty.
const (
	BaseTexture = iota
	DarkTexture
	DetailTexture
	GlossTexture
	GlowTexture
	BumpTexture
	NormalTexture
	ParallaxTexture
	DecalTexture
)

// TextureTransform is the optional UV transform of a texture slot.
type TextureTransform struct {
	Translation Vec2
	Scale       Vec2
	Rotation    float32
	Method      uint32
	Center      Vec2
}

type TextureSlot struct {
	Enabled       bool
	Source        Ref[*NiSourceTexture]
	Clamp         uint32
	Filter        uint32
	MaxAnisotropy uint16
	UVSet         uint32
	HasTransform  bool
	Transform     TextureTransform
}

func readTextureSlot(r *Reader, t *TextureSlot) {
	t.Enabled = r.Bool()
	if !t.Enabled {
		return
	}
	if r.ver >= V3_3_0_13 {
		t.Source.read(r)
	}
	if r.ver <= V20_0_0_5 {
		t.Clamp = r.Uint32()
		t.Filter = r.Uint32()
	} else {
		flags := r.Uint16()
		t.Clamp = uint32(flags>>12) & 0xF
		t.Filter = uint32(flags>>8) & 0xF
	}
	if r.ver >= V20_5_0_4 {
		t.MaxAnisotropy = r.Uint16()
	}
	if r.ver <= V20_0_0_5 {
		t.UVSet = r.Uint32()
	}
	if r.ver <= V10_4_0_1 {
		r.Skip(4) // PS2 L and K
	}
	if r.ver <= V4_1_0_12 {
		r.Skip(2)
	}
	if r.ver >= V10_1_0_0 {
		t.HasTransform = r.Bool()
		if t.HasTransform {
			t.Transform.Translation = r.Vec2()
			t.Transform.Scale = r.Vec2()
			t.Transform.Rotation = r.Float32()
			t.Transform.Method = r.Uint32()
			t.Transform.Center = r.Vec2()
		}
	}
}

type ShaderTexture struct {
	TextureSlot
	MapID uint32
}

type NiTexturingProperty struct {
	RecordBase
	Property
	Flags     uint16
	ApplyMode uint32
	Textures  []TextureSlot

	// bump map parameters, set when the bump slot is enabled
	EnvMapLumaBias Vec2
	BumpMapMatrix  Vec4

	ParallaxOffset float32
	ShaderTextures []ShaderTexture
}

func (p *NiTexturingProperty) read(r *Reader) {
	readProperty(r, &p.Property)
	if r.ver <= V10_0_1_2 || r.ver >= V20_1_0_2 {
		p.Flags = r.Uint16()
	}
	if r.ver <= V20_1_0_1 {
		p.ApplyMode = r.Uint32()
	}
	// a disabled slot is a single boolean
	n := r.Count(1)
	p.Textures = make([]TextureSlot, n)
	for i := range p.Textures {
		readTextureSlot(r, &p.Textures[i])
		if r.Err() != nil {
			return
		}
		switch {
		case i == BumpTexture && p.Textures[i].Enabled:
			p.EnvMapLumaBias = r.Vec2()
			p.BumpMapMatrix = r.Vec4()
		case i == ParallaxTexture && p.Textures[i].Enabled && r.ver >= V20_2_0_5:
			p.ParallaxOffset = r.Float32()
		}
	}
	if r.ver >= V10_0_1_0 {
		n := r.Count(1)
		p.ShaderTextures = make([]ShaderTexture, n)
		for i := range p.ShaderTextures {
			readTextureSlot(r, &p.ShaderTextures[i].TextureSlot)
			if p.ShaderTextures[i].Enabled {
				p.ShaderTextures[i].MapID = r.Uint32()
			}
		}
	}
}

func (p *NiTexturingProperty) resolve(rs *resolver) {
	resolveProperty(rs, &p.Property)
	for i := range p.Textures {
		p.Textures[i].Source.resolve(rs)
	}
	for i := range p.ShaderTextures {
		p.ShaderTextures[i].Source.resolve(rs)
	}
}

// Slot returns texture slot i if it exists and is enabled.
func (p *NiTexturingProperty) Slot(i int) (TextureSlot, bool) {
	if i < 0 || i >= len(p.Textures) || !p.Textures[i].Enabled {
		return TextureSlot{}, false
	}
	return p.Textures[i], true
}

type NiFogProperty struct {
	RecordBase
	Property
	Flags    uint16
	FogDepth float32
	Color    Vec3
}

func (p *NiFogProperty) read(r *Reader) {
	readProperty(r, &p.Property)
	p.Flags = r.Uint16()
	p.FogDepth = r.Float32()
	p.Color = r.Vec3()
}

func (p *NiFogProperty) resolve(rs *resolver) { resolveProperty(rs, &p.Property) }

type NiMaterialProperty struct {
	RecordBase
	Property
	Flags        uint16
	Ambient      Vec3
	Diffuse      Vec3
	Specular     Vec3
	Emissive     Vec3
	Glossiness   float32
	Alpha        float32
	EmissiveMult float32
}

func (p *NiMaterialProperty) read(r *Reader) {
	readProperty(r, &p.Property)
	if r.ver <= V10_0_1_2 {
		p.Flags = r.Uint16()
	}
	p.Ambient = Vec3{1, 1, 1}
	p.Diffuse = Vec3{1, 1, 1}
	if r.beth < 26 {
		p.Ambient = r.Vec3()
		p.Diffuse = r.Vec3()
	}
	p.Specular = r.Vec3()
	p.Emissive = r.Vec3()
	p.Glossiness = r.Float32()
	p.Alpha = r.Float32()
	p.EmissiveMult = 1
	if r.beth >= 22 {
		p.EmissiveMult = r.Float32()
	}
}

func (p *NiMaterialProperty) resolve(rs *resolver) { resolveProperty(rs, &p.Property) }

type NiZBufferProperty struct {
	RecordBase
	Property
	Flags        uint16
	TestFunction uint32
}

func (p *NiZBufferProperty) read(r *Reader) {
	readProperty(r, &p.Property)
	p.Flags = r.Uint16()
	p.TestFunction = uint32(p.Flags>>2) & 0x7
	if r.ver >= V4_1_0_12 && r.ver <= V20_0_0_5 {
		p.TestFunction = r.Uint32()
	}
}

func (p *NiZBufferProperty) resolve(rs *resolver) { resolveProperty(rs, &p.Property) }

type NiAlphaProperty struct {
	RecordBase
	Property
	Flags     uint16
	Threshold uint8
}

func (p *NiAlphaProperty) read(r *Reader) {
	readProperty(r, &p.Property)
	p.Flags = r.Uint16()
	p.Threshold = r.Uint8()
}

func (p *NiAlphaProperty) resolve(rs *resolver) { resolveProperty(rs, &p.Property) }

// UseBlending reports whether alpha blending is enabled.
func (p *NiAlphaProperty) UseBlending() bool { return p.Flags&0x1 != 0 }

// UseTesting reports whether alpha testing is enabled.
func (p *NiAlphaProperty) UseTesting() bool { return p.Flags&0x200 != 0 }

type NiVertexColorProperty struct {
	RecordBase
	Property
	Flags        uint16
	VertexMode   uint32
	LightingMode uint32
}

func (p *NiVertexColorProperty) read(r *Reader) {
	readProperty(r, &p.Property)
	p.Flags = r.Uint16()
	if r.ver <= V20_0_0_5 {
		p.VertexMode = r.Uint32()
		p.LightingMode = r.Uint32()
	} else {
		p.VertexMode = uint32(p.Flags>>4) & 0x3
		p.LightingMode = uint32(p.Flags>>3) & 0x1
	}
}

func (p *NiVertexColorProperty) resolve(rs *resolver) { resolveProperty(rs, &p.Property) }

// NiFlagProperty covers the properties that are a single flags word:
// shade, dither, wireframe and specular.
type NiFlagProperty struct {
	RecordBase
	Property
	Flags uint16
}

func (p *NiFlagProperty) read(r *Reader) {
	readProperty(r, &p.Property)
	if p.Type() == RCNiShadeProperty && r.beth > BethFO3 {
		return
	}
	p.Flags = r.Uint16()
}

func (p *NiFlagProperty) resolve(rs *resolver) { resolveProperty(rs, &p.Property) }

type NiStencilProperty struct {
	RecordBase
	Property
	Flags        uint16
	Enabled      bool
	TestFunction uint32
	StencilRef   uint32
	StencilMask  uint32
	FailAction   uint32
	ZFailAction  uint32
	PassAction   uint32
	DrawMode     uint32
}

func (p *NiStencilProperty) read(r *Reader) {
	readProperty(r, &p.Property)
	if r.ver <= V10_0_1_2 {
		p.Flags = r.Uint16()
	}
	if r.ver <= V20_0_0_5 {
		p.Enabled = r.Uint8() != 0
		p.TestFunction = r.Uint32()
		p.StencilRef = r.Uint32()
		p.StencilMask = r.Uint32()
		p.FailAction = r.Uint32()
		p.ZFailAction = r.Uint32()
		p.PassAction = r.Uint32()
		p.DrawMode = r.Uint32()
		return
	}
	p.Flags = r.Uint16()
	p.StencilRef = r.Uint32()
	p.StencilMask = r.Uint32()
	p.Enabled = p.Flags&0x1 != 0
	p.FailAction = uint32(p.Flags>>1) & 0x7
	p.ZFailAction = uint32(p.Flags>>4) & 0x7
	p.PassAction = uint32(p.Flags>>7) & 0x7
	p.DrawMode = uint32(p.Flags>>10) & 0x3
	p.TestFunction = uint32(p.Flags>>12) & 0x7
}

func (p *NiStencilProperty) resolve(rs *resolver) { resolveProperty(rs, &p.Property) }
