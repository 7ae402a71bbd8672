package nif

import "fmt"

// InterpolationKind tells how the keys of a KeyMap are stored and blended.
type InterpolationKind uint32

const (
	InterpolationUnknown   InterpolationKind = 0
	InterpolationLinear    InterpolationKind = 1
	InterpolationQuadratic InterpolationKind = 2
	InterpolationTBC       InterpolationKind = 3
	InterpolationXYZ       InterpolationKind = 4
	InterpolationConstant  InterpolationKind = 5
)

func (k InterpolationKind) String() string {
	switch k {
	case InterpolationUnknown:
		return "unknown"
	case InterpolationLinear:
		return "linear"
	case InterpolationQuadratic:
		return "quadratic"
	case InterpolationTBC:
		return "tbc"
	case InterpolationXYZ:
		return "xyz"
	case InterpolationConstant:
		return "constant"
	}
	return fmt.Sprintf("InterpolationKind(%d)", uint32(k))
}

// Key is one animation key. Forward and Backward are the tangents of
// quadratic keys; Tension, Bias and Continuity belong to TBC keys.
type Key[V any] struct {
	Time       float32
	Value      V
	Forward    V
	Backward   V
	Tension    float32
	Bias       float32
	Continuity float32
}

// KeyMap is a sequence of keys sharing one interpolation kind.
type KeyMap[V any] struct {
	Interpolation InterpolationKind
	Keys          []Key[V]

	// FrameName and LegacyWeight are only stored for morph targets.
	FrameName    string
	LegacyWeight float32
}

type keyOpts struct {
	morph bool
	// quadratic quaternion keys carry no tangents
	noTangents bool
}

func readKeyMap[V any](r *Reader, value func() V, valueSize int, opts keyOpts) KeyMap[V] {
	var m KeyMap[V]
	if opts.morph && r.ver >= V10_1_0_106 {
		m.FrameName = r.Str()
	}
	count := int(r.Uint32())
	if count != 0 || opts.morph {
		m.Interpolation = InterpolationKind(r.Uint32())
	}
	if r.Err() != nil {
		return m
	}
	read := func(extra int, fn func(k *Key[V])) {
		if !r.Ensure(count, 4+valueSize+extra) {
			return
		}
		m.Keys = make([]Key[V], count)
		for i := range m.Keys {
			k := &m.Keys[i]
			k.Time = r.Float32()
			k.Value = value()
			fn(k)
		}
	}
	switch m.Interpolation {
	case InterpolationLinear, InterpolationConstant:
		read(0, func(*Key[V]) {})
	case InterpolationQuadratic:
		if opts.noTangents {
			read(0, func(*Key[V]) {})
			break
		}
		read(2*valueSize, func(k *Key[V]) {
			k.Forward = value()
			k.Backward = value()
		})
	case InterpolationTBC:
		read(12, func(k *Key[V]) {
			k.Tension = r.Float32()
			k.Bias = r.Float32()
			k.Continuity = r.Float32()
		})
	case InterpolationXYZ:
		// the per-axis maps follow and are read by the owner
	case InterpolationUnknown:
		if count != 0 {
			r.Fail(fmt.Errorf("%w: interpolation type 0 with %d keys", ErrUnknownValue, count))
		}
	default:
		r.Fail(fmt.Errorf("%w: interpolation type %d", ErrUnknownValue, uint32(m.Interpolation)))
	}
	if opts.morph && r.ver >= V10_1_0_104 && r.ver <= V20_1_0_2 && r.beth < 10 {
		m.LegacyWeight = r.Float32()
	}
	return m
}

func readFloatKeys(r *Reader) KeyMap[float32] {
	return readKeyMap(r, r.Float32, 4, keyOpts{})
}

func readVec3Keys(r *Reader) KeyMap[Vec3] {
	return readKeyMap(r, r.Vec3, 12, keyOpts{})
}

func readVec4Keys(r *Reader) KeyMap[Vec4] {
	return readKeyMap(r, r.Vec4, 16, keyOpts{})
}

func readQuatKeys(r *Reader) KeyMap[Quat] {
	return readKeyMap(r, r.Quat, 16, keyOpts{noTangents: true})
}

func readByteKeys(r *Reader) KeyMap[uint8] {
	return readKeyMap(r, r.Uint8, 1, keyOpts{})
}

type NiFloatData struct {
	RecordBase
	Keys KeyMap[float32]
}

func (d *NiFloatData) read(r *Reader) { d.Keys = readFloatKeys(r) }

type NiPosData struct {
	RecordBase
	Keys KeyMap[Vec3]
}

func (d *NiPosData) read(r *Reader) { d.Keys = readVec3Keys(r) }

type NiColorData struct {
	RecordBase
	Keys KeyMap[Vec4]
}

func (d *NiColorData) read(r *Reader) { d.Keys = readVec4Keys(r) }

type NiBoolData struct {
	RecordBase
	Keys KeyMap[uint8]
}

func (d *NiBoolData) read(r *Reader) { d.Keys = readByteKeys(r) }

type VisKey struct {
	Time    float32
	Visible bool
}

type NiVisData struct {
	RecordBase
	Keys []VisKey
}

func (d *NiVisData) read(r *Reader) {
	n := r.Count(5)
	d.Keys = make([]VisKey, n)
	for i := range d.Keys {
		d.Keys[i] = VisKey{Time: r.Float32(), Visible: r.Uint8() != 0}
	}
}

type NiUVData struct {
	RecordBase
	// U translation, V translation, U scale, V scale
	Keys [4]KeyMap[float32]
}

func (d *NiUVData) read(r *Reader) {
	for i := range d.Keys {
		d.Keys[i] = readFloatKeys(r)
	}
}

// Axis orders of XYZ rotation keys.
const (
	AxisOrderXYZ = iota
	AxisOrderXZY
	AxisOrderYZX
	AxisOrderYXZ
	AxisOrderZXY
	AxisOrderZYX
	AxisOrderXYX
	AxisOrderYZY
	AxisOrderZXZ
)

// NiKeyframeData holds transform keys. When Rotations uses XYZ
// interpolation the rotation is given by the three per-axis maps instead.
type NiKeyframeData struct {
	RecordBase
	Rotations    KeyMap[Quat]
	AxisOrder    uint32
	XRotations   KeyMap[float32]
	YRotations   KeyMap[float32]
	ZRotations   KeyMap[float32]
	Translations KeyMap[Vec3]
	Scales       KeyMap[float32]
}

func (d *NiKeyframeData) read(r *Reader) {
	d.Rotations = readQuatKeys(r)
	if d.Rotations.Interpolation == InterpolationXYZ {
		if r.ver <= V10_1_0_0 {
			d.AxisOrder = r.Uint32()
		}
		d.XRotations = readFloatKeys(r)
		d.YRotations = readFloatKeys(r)
		d.ZRotations = readFloatKeys(r)
	}
	d.Translations = readVec3Keys(r)
	d.Scales = readFloatKeys(r)
}

type MorphTarget struct {
	Keys     KeyMap[float32]
	Vertices []Vec3
}

type NiMorphData struct {
	RecordBase
	RelativeTargets bool
	Morphs          []MorphTarget
}

func (d *NiMorphData) read(r *Reader) {
	morphs := int(r.Int32())
	verts := int(r.Int32())
	d.RelativeTargets = r.Uint8() != 0
	// every morph has at least its key count and interpolation kind
	if r.Err() != nil || !r.Ensure(morphs, 8) {
		return
	}
	d.Morphs = make([]MorphTarget, morphs)
	for i := range d.Morphs {
		d.Morphs[i].Keys = readKeyMap(r, r.Float32, 4, keyOpts{morph: true})
		d.Morphs[i].Vertices = r.Vec3s(verts)
	}
}
