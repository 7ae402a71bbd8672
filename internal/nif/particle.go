package nif

// ParticleModifier is the field group of the modifiers chained off a
// particle system controller.
type ParticleModifier struct {
	Next       Ref[ParticleModifierRecord]
	Controller Ref[ControllerRecord]
}

func (m *ParticleModifier) ParticleModifierBase() *ParticleModifier { return m }

func readParticleModifier(r *Reader, m *ParticleModifier) {
	m.Next.read(r)
	if r.ver >= V3_3_0_13 {
		m.Controller.read(r)
	}
}

func resolveParticleModifier(rs *resolver, m *ParticleModifier) {
	m.Next.resolve(rs)
	m.Controller.resolve(rs)
}

// Gravity force kinds.
const (
	GravityWind  = 0
	GravityPoint = 1
)

type NiGravity struct {
	RecordBase
	ParticleModifier
	Decay     float32
	Force     float32
	ForceKind uint32
	Position  Vec3
	Direction Vec3
}

func (g *NiGravity) read(r *Reader) {
	readParticleModifier(r, &g.ParticleModifier)
	if r.ver >= V4_0_0_2 {
		g.Decay = r.Float32()
	}
	g.Force = r.Float32()
	g.ForceKind = r.Uint32()
	g.Position = r.Vec3()
	g.Direction = r.Vec3()
}

func (g *NiGravity) resolve(rs *resolver) { resolveParticleModifier(rs, &g.ParticleModifier) }

type NiParticleGrowFade struct {
	RecordBase
	ParticleModifier
	GrowTime float32
	FadeTime float32
}

func (g *NiParticleGrowFade) read(r *Reader) {
	readParticleModifier(r, &g.ParticleModifier)
	g.GrowTime = r.Float32()
	g.FadeTime = r.Float32()
}

func (g *NiParticleGrowFade) resolve(rs *resolver) { resolveParticleModifier(rs, &g.ParticleModifier) }

type NiParticleColorModifier struct {
	RecordBase
	ParticleModifier
	Data Ref[*NiColorData]
}

func (m *NiParticleColorModifier) read(r *Reader) {
	readParticleModifier(r, &m.ParticleModifier)
	m.Data.read(r)
}

func (m *NiParticleColorModifier) resolve(rs *resolver) {
	resolveParticleModifier(rs, &m.ParticleModifier)
	m.Data.resolve(rs)
}

type NiParticleRotation struct {
	RecordBase
	ParticleModifier
	RandomInitialAxis bool
	InitialAxis       Vec3
	RotationSpeed     float32
}

func (m *NiParticleRotation) read(r *Reader) {
	readParticleModifier(r, &m.ParticleModifier)
	m.RandomInitialAxis = r.Uint8() != 0
	m.InitialAxis = r.Vec3()
	m.RotationSpeed = r.Float32()
}

func (m *NiParticleRotation) resolve(rs *resolver) { resolveParticleModifier(rs, &m.ParticleModifier) }

type NiParticleBomb struct {
	RecordBase
	ParticleModifier
	Range        float32
	Duration     float32
	Strength     float32
	StartTime    float32
	DecayKind    uint32
	SymmetryKind uint32
	Position     Vec3
	Direction    Vec3
}

func (b *NiParticleBomb) read(r *Reader) {
	readParticleModifier(r, &b.ParticleModifier)
	b.Range = r.Float32()
	b.Duration = r.Float32()
	b.Strength = r.Float32()
	b.StartTime = r.Float32()
	b.DecayKind = r.Uint32()
	if r.ver >= V4_1_0_12 {
		b.SymmetryKind = r.Uint32()
	}
	b.Position = r.Vec3()
	b.Direction = r.Vec3()
}

func (b *NiParticleBomb) resolve(rs *resolver) { resolveParticleModifier(rs, &b.ParticleModifier) }

// Collider is shared by the particle colliders.
type Collider struct {
	ParticleModifier
	BounceFactor   float32
	SpawnOnCollide bool
	DieOnCollide   bool
}

func readCollider(r *Reader, c *Collider) {
	readParticleModifier(r, &c.ParticleModifier)
	c.BounceFactor = r.Float32()
	if r.ver >= V4_2_0_2 {
		c.SpawnOnCollide = r.Bool()
		c.DieOnCollide = r.Bool()
	}
}

type NiPlanarCollider struct {
	RecordBase
	Collider
	Extents       Vec2
	Position      Vec3
	XVector       Vec3
	YVector       Vec3
	PlaneNormal   Vec3
	PlaneDistance float32
}

func (c *NiPlanarCollider) read(r *Reader) {
	readCollider(r, &c.Collider)
	c.Extents = r.Vec2()
	c.Position = r.Vec3()
	c.XVector = r.Vec3()
	c.YVector = r.Vec3()
	c.PlaneNormal = r.Vec3()
	c.PlaneDistance = r.Float32()
}

func (c *NiPlanarCollider) resolve(rs *resolver) { resolveParticleModifier(rs, &c.ParticleModifier) }

type NiSphericalCollider struct {
	RecordBase
	Collider
	Radius float32
	Center Vec3
}

func (c *NiSphericalCollider) read(r *Reader) {
	readCollider(r, &c.Collider)
	c.Radius = r.Float32()
	c.Center = r.Vec3()
}

func (c *NiSphericalCollider) resolve(rs *resolver) { resolveParticleModifier(rs, &c.ParticleModifier) }
