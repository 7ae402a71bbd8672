package nif

// NiKeyframeController animates a node transform. It also stands in for
// NiTransformController.
type NiKeyframeController struct {
	RecordBase
	InterpController
	Data Ref[*NiKeyframeData]
}

func (c *NiKeyframeController) read(r *Reader) {
	readInterpController(r, &c.InterpController)
	if hasLegacyData(r) {
		c.Data.read(r)
	}
}

func (c *NiKeyframeController) resolve(rs *resolver) {
	resolveInterpController(rs, &c.InterpController)
	c.Data.resolve(rs)
}

type NiVisController struct {
	RecordBase
	InterpController
	Data Ref[*NiVisData]
}

func (c *NiVisController) read(r *Reader) {
	readInterpController(r, &c.InterpController)
	if hasLegacyData(r) {
		c.Data.read(r)
	}
}

func (c *NiVisController) resolve(rs *resolver) {
	resolveInterpController(rs, &c.InterpController)
	c.Data.resolve(rs)
}

type NiAlphaController struct {
	RecordBase
	InterpController
	Data Ref[*NiFloatData]
}

func (c *NiAlphaController) read(r *Reader) {
	readInterpController(r, &c.InterpController)
	if hasLegacyData(r) {
		c.Data.read(r)
	}
}

func (c *NiAlphaController) resolve(rs *resolver) {
	resolveInterpController(rs, &c.InterpController)
	c.Data.resolve(rs)
}

// NiRollController always stores its data, whatever the version.
type NiRollController struct {
	RecordBase
	InterpController
	Data Ref[*NiFloatData]
}

func (c *NiRollController) read(r *Reader) {
	readInterpController(r, &c.InterpController)
	c.Data.read(r)
}

func (c *NiRollController) resolve(rs *resolver) {
	resolveInterpController(rs, &c.InterpController)
	c.Data.resolve(rs)
}

type NiUVController struct {
	RecordBase
	Controller
	UVSet uint16
	Data  Ref[*NiUVData]
}

func (c *NiUVController) read(r *Reader) {
	readController(r, &c.Controller)
	c.UVSet = r.Uint16()
	c.Data.read(r)
}

func (c *NiUVController) resolve(rs *resolver) {
	resolveController(rs, &c.Controller)
	c.Data.resolve(rs)
}

type NiPathController struct {
	RecordBase
	Controller
	PathFlags     uint16
	BankDirection int32
	MaxBankAngle  float32
	Smoothing     float32
	FollowAxis    uint16
	PathData      Ref[*NiPosData]
	PercentData   Ref[*NiFloatData]
}

func (c *NiPathController) read(r *Reader) {
	readController(r, &c.Controller)
	if r.ver >= V10_1_0_104 {
		c.PathFlags = r.Uint16()
	}
	c.BankDirection = r.Int32()
	c.MaxBankAngle = r.Float32()
	c.Smoothing = r.Float32()
	c.FollowAxis = r.Uint16()
	c.PathData.read(r)
	c.PercentData.read(r)
}

func (c *NiPathController) resolve(rs *resolver) {
	resolveController(rs, &c.Controller)
	c.PathData.resolve(rs)
	c.PercentData.resolve(rs)
}

// Material colors targeted by NiMaterialColorController.
const (
	MaterialColorAmbient  = 0
	MaterialColorDiffuse  = 1
	MaterialColorSpecular = 2
	MaterialColorEmissive = 3
)

type NiMaterialColorController struct {
	RecordBase
	InterpController
	TargetColor uint16
	Data        Ref[*NiPosData]
}

func (c *NiMaterialColorController) read(r *Reader) {
	readInterpController(r, &c.InterpController)
	if r.ver >= V10_1_0_0 {
		c.TargetColor = r.Uint16()
	} else {
		c.TargetColor = (c.Flags >> 4) & 3
	}
	if hasLegacyData(r) {
		c.Data.read(r)
	}
}

func (c *NiMaterialColorController) resolve(rs *resolver) {
	resolveInterpController(rs, &c.InterpController)
	c.Data.resolve(rs)
}

type NiFlipController struct {
	RecordBase
	InterpController
	TexSlot uint32
	Delta   float32
	Sources RefList[*NiSourceTexture]
}

func (c *NiFlipController) read(r *Reader) {
	readInterpController(r, &c.InterpController)
	c.TexSlot = r.Uint32()
	if r.ver <= V10_1_0_103 {
		c.Delta = r.Float32()
	}
	c.Sources.read(r)
}

func (c *NiFlipController) resolve(rs *resolver) {
	resolveInterpController(rs, &c.InterpController)
	c.Sources.resolve(rs)
}

type NiLookAtController struct {
	RecordBase
	Controller
	LookAtFlags uint16
	LookAt      Ref[AVObjectRecord]
}

func (c *NiLookAtController) read(r *Reader) {
	readController(r, &c.Controller)
	if r.ver >= V10_1_0_0 {
		c.LookAtFlags = r.Uint16()
	}
	c.LookAt.read(r)
}

func (c *NiLookAtController) resolve(rs *resolver) {
	resolveController(rs, &c.Controller)
	c.LookAt.resolve(rs)
}

type MorphWeight struct {
	Interpolator Ref[InterpolatorRecord]
	Weight       float32
}

type NiGeomMorpherController struct {
	RecordBase
	Controller
	ManagerControlled bool
	UpdateNormals     bool
	Data              Ref[*NiMorphData]
	AlwaysActive      bool
	Interpolators     RefList[InterpolatorRecord]
	Weights           []MorphWeight
}

func (c *NiGeomMorpherController) read(r *Reader) {
	readController(r, &c.Controller)
	if r.ver >= V10_1_0_104 && r.ver <= V10_1_0_108 {
		c.ManagerControlled = r.Bool()
	}
	if r.ver >= V10_0_1_2 {
		c.UpdateNormals = r.Uint16()&1 != 0
	}
	c.Data.read(r)
	if r.ver < V4_0_0_2 {
		return
	}
	c.AlwaysActive = r.Uint8() != 0
	if r.ver < V10_1_0_106 {
		return
	}
	if r.ver <= V20_0_0_5 {
		c.Interpolators.read(r)
		if r.ver >= V10_2_0_0 && r.beth > 9 {
			n := r.Count(4)
			r.Skip(4 * n)
		}
		return
	}
	n := r.Count(8)
	c.Weights = make([]MorphWeight, n)
	for i := range c.Weights {
		c.Weights[i].Interpolator.read(r)
		c.Weights[i].Weight = r.Float32()
	}
}

func (c *NiGeomMorpherController) resolve(rs *resolver) {
	resolveController(rs, &c.Controller)
	c.Data.resolve(rs)
	c.Interpolators.resolve(rs)
	for i := range c.Weights {
		c.Weights[i].Interpolator.resolve(rs)
	}
}

// MorphInterpolators returns the interpolators of the morph targets in either
// storage layout.
func (c *NiGeomMorpherController) MorphInterpolators() []InterpolatorRecord {
	if len(c.Weights) == 0 {
		return c.Interpolators.Records()
	}
	out := make([]InterpolatorRecord, 0, len(c.Weights))
	for _, w := range c.Weights {
		if w.Interpolator.Resolved() {
			out = append(out, w.Interpolator.Get())
		}
	}
	return out
}

type ParticleInfo struct {
	Velocity        Vec3
	RotationAxis    Vec3
	Age             float32
	Lifespan        float32
	LastUpdate      float32
	SpawnGeneration uint16
	Code            uint16
}

// NiParticleSystemController drives legacy particle systems. It also stands
// in for NiBSPArrayController.
type NiParticleSystemController struct {
	RecordBase
	Controller

	Speed                float32
	SpeedVariation       float32
	Declination          float32
	DeclinationVariation float32
	PlanarAngle          float32
	PlanarAngleVariation float32
	InitialNormal        Vec3
	InitialColor         Vec4
	InitialSize          float32
	EmitStartTime        float32
	EmitStopTime         float32
	ResetParticleSystem  bool
	BirthRate            float32
	Lifetime             float32
	LifetimeVariation    float32
	EmitFlags            uint16
	EmitterDimensions    Vec3
	Emitter              Ref[AVObjectRecord]
	NumSpawnGenerations  uint16
	PercentageSpawned    float32
	SpawnMultiplier      uint16
	SpawnSpeedChaos      float32
	SpawnDirChaos        float32
	NumValid             uint16
	Particles            []ParticleInfo
	Modifier             Ref[ParticleModifierRecord]
	Collider             Ref[ParticleModifierRecord]
	StaticTargetBound    uint8
}

// Emit flag bits.
const (
	EmitNoAutoAdjust = 0x1
)

func (c *NiParticleSystemController) read(r *Reader) {
	readController(r, &c.Controller)
	c.Speed = r.Float32()
	c.SpeedVariation = r.Float32()
	c.Declination = r.Float32()
	c.DeclinationVariation = r.Float32()
	c.PlanarAngle = r.Float32()
	c.PlanarAngleVariation = r.Float32()
	c.InitialNormal = r.Vec3()
	c.InitialColor = r.Vec4()
	c.InitialSize = r.Float32()
	c.EmitStartTime = r.Float32()
	c.EmitStopTime = r.Float32()
	c.ResetParticleSystem = r.Uint8() != 0
	c.BirthRate = r.Float32()
	c.Lifetime = r.Float32()
	c.LifetimeVariation = r.Float32()
	c.EmitFlags = r.Uint16()
	c.EmitterDimensions = r.Vec3()
	c.Emitter.read(r)
	c.NumSpawnGenerations = r.Uint16()
	c.PercentageSpawned = r.Float32()
	c.SpawnMultiplier = r.Uint16()
	c.SpawnSpeedChaos = r.Float32()
	c.SpawnDirChaos = r.Float32()
	n := int(r.Uint16())
	c.NumValid = r.Uint16()
	if !r.Ensure(n, 28) {
		return
	}
	c.Particles = make([]ParticleInfo, n)
	for i := range c.Particles {
		p := &c.Particles[i]
		p.Velocity = r.Vec3()
		if r.ver <= V10_4_0_1 {
			p.RotationAxis = r.Vec3()
		}
		p.Age = r.Float32()
		p.Lifespan = r.Float32()
		p.LastUpdate = r.Float32()
		p.SpawnGeneration = r.Uint16()
		p.Code = r.Uint16()
	}
	r.Skip(4) // emitter modifier link, unused
	c.Modifier.read(r)
	c.Collider.read(r)
	if r.ver >= V3_3_0_15 {
		c.StaticTargetBound = r.Uint8()
	}
}

func (c *NiParticleSystemController) resolve(rs *resolver) {
	resolveController(rs, &c.Controller)
	c.Emitter.resolve(rs)
	c.Modifier.resolve(rs)
	c.Collider.resolve(rs)
}

// Modifiers returns the modifier chain in order. A modifier seen twice ends
// the walk.
func (c *NiParticleSystemController) Modifiers() []ParticleModifierRecord {
	return walkModifiers(c.Modifier)
}

// Colliders returns the collider chain in order.
func (c *NiParticleSystemController) Colliders() []ParticleModifierRecord {
	return walkModifiers(c.Collider)
}

func walkModifiers(ref Ref[ParticleModifierRecord]) []ParticleModifierRecord {
	var out []ParticleModifierRecord
	seen := make(map[int]bool)
	for ref.Resolved() {
		rec := ref.Get()
		if seen[rec.Index()] {
			break
		}
		seen[rec.Index()] = true
		out = append(out, rec)
		ref = rec.ParticleModifierBase().Next
	}
	return out
}
