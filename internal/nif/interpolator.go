package nif

// Interpolators replace controller data from 10.1.0.104 on. Each holds a
// default value used when its data reference is empty.

type interpolator struct{}

func (interpolator) isInterpolator() {}

// QuatTransform is a transform with a quaternion rotation.
type QuatTransform struct {
	Translation Vec3
	Rotation    Quat
	Scale       float32
}

type NiTransformInterpolator struct {
	RecordBase
	interpolator
	Default QuatTransform
	Data    Ref[*NiKeyframeData]
}

func (i *NiTransformInterpolator) read(r *Reader) {
	i.Default.Translation = r.Vec3()
	i.Default.Rotation = r.Quat()
	i.Default.Scale = r.Float32()
	if r.ver <= V10_1_0_109 {
		r.Skip(3) // per-component validity flags
	}
	i.Data.read(r)
}

func (i *NiTransformInterpolator) resolve(rs *resolver) { i.Data.resolve(rs) }

type NiPoint3Interpolator struct {
	RecordBase
	interpolator
	Default Vec3
	Data    Ref[*NiPosData]
}

func (i *NiPoint3Interpolator) read(r *Reader) {
	i.Default = r.Vec3()
	i.Data.read(r)
}

func (i *NiPoint3Interpolator) resolve(rs *resolver) { i.Data.resolve(rs) }

type NiFloatInterpolator struct {
	RecordBase
	interpolator
	Default float32
	Data    Ref[*NiFloatData]
}

func (i *NiFloatInterpolator) read(r *Reader) {
	i.Default = r.Float32()
	i.Data.read(r)
}

func (i *NiFloatInterpolator) resolve(rs *resolver) { i.Data.resolve(rs) }

type NiBoolInterpolator struct {
	RecordBase
	interpolator
	Default bool
	Data    Ref[*NiBoolData]
}

func (i *NiBoolInterpolator) read(r *Reader) {
	i.Default = r.Bool()
	i.Data.read(r)
}

func (i *NiBoolInterpolator) resolve(rs *resolver) { i.Data.resolve(rs) }

type NiColorInterpolator struct {
	RecordBase
	interpolator
	Default Vec4
	Data    Ref[*NiColorData]
}

func (i *NiColorInterpolator) read(r *Reader) {
	i.Default = r.Vec4()
	i.Data.read(r)
}

func (i *NiColorInterpolator) resolve(rs *resolver) { i.Data.resolve(rs) }
