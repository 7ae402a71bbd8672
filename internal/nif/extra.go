package nif

// NiExtraData is the generic extra data record. Old files store an opaque
// payload of RecordSize bytes after the header fields.
type NiExtraData struct {
	RecordBase
	Extra
	Data []byte
}

func (e *NiExtraData) read(r *Reader) {
	readExtra(r, &e.Extra)
	e.Data = r.Bytes(int(e.RecordSize))
}

func (e *NiExtraData) resolve(rs *resolver) { resolveExtra(rs, &e.Extra) }

type NiStringExtraData struct {
	RecordBase
	Extra
	Value string
}

func (e *NiStringExtraData) read(r *Reader) {
	readExtra(r, &e.Extra)
	e.Value = r.Str()
}

func (e *NiStringExtraData) resolve(rs *resolver) { resolveExtra(rs, &e.Extra) }

type TextKey struct {
	Time float32
	Text string
}

type NiTextKeyExtraData struct {
	RecordBase
	Extra
	Keys []TextKey
}

func (e *NiTextKeyExtraData) read(r *Reader) {
	readExtra(r, &e.Extra)
	n := r.Count(8)
	e.Keys = make([]TextKey, n)
	for i := range e.Keys {
		e.Keys[i].Time = r.Float32()
		e.Keys[i].Text = r.Str()
	}
}

func (e *NiTextKeyExtraData) resolve(rs *resolver) { resolveExtra(rs, &e.Extra) }

type NiVertWeightsExtraData struct {
	RecordBase
	Extra
	Weights []float32
}

func (e *NiVertWeightsExtraData) read(r *Reader) {
	readExtra(r, &e.Extra)
	e.Weights = r.Float32s(int(r.Uint16()))
}

func (e *NiVertWeightsExtraData) resolve(rs *resolver) { resolveExtra(rs, &e.Extra) }

// NiIntegerExtraData also stands in for BSXFlags.
type NiIntegerExtraData struct {
	RecordBase
	Extra
	Value uint32
}

func (e *NiIntegerExtraData) read(r *Reader) {
	readExtra(r, &e.Extra)
	e.Value = r.Uint32()
}

func (e *NiIntegerExtraData) resolve(rs *resolver) { resolveExtra(rs, &e.Extra) }

type NiIntegersExtraData struct {
	RecordBase
	Extra
	Values []uint32
}

func (e *NiIntegersExtraData) read(r *Reader) {
	readExtra(r, &e.Extra)
	e.Values = r.Uint32s(int(r.Uint32()))
}

func (e *NiIntegersExtraData) resolve(rs *resolver) { resolveExtra(rs, &e.Extra) }

type NiFloatExtraData struct {
	RecordBase
	Extra
	Value float32
}

func (e *NiFloatExtraData) read(r *Reader) {
	readExtra(r, &e.Extra)
	e.Value = r.Float32()
}

func (e *NiFloatExtraData) resolve(rs *resolver) { resolveExtra(rs, &e.Extra) }

type NiFloatsExtraData struct {
	RecordBase
	Extra
	Values []float32
}

func (e *NiFloatsExtraData) read(r *Reader) {
	readExtra(r, &e.Extra)
	e.Values = r.Float32s(int(r.Uint32()))
}

func (e *NiFloatsExtraData) resolve(rs *resolver) { resolveExtra(rs, &e.Extra) }

type NiBooleanExtraData struct {
	RecordBase
	Extra
	Value bool
}

func (e *NiBooleanExtraData) read(r *Reader) {
	readExtra(r, &e.Extra)
	e.Value = r.Uint8() != 0
}

func (e *NiBooleanExtraData) resolve(rs *resolver) { resolveExtra(rs, &e.Extra) }

// NiStringsExtraData stores its strings inline in every version.
type NiStringsExtraData struct {
	RecordBase
	Extra
	Values []string
}

func (e *NiStringsExtraData) read(r *Reader) {
	readExtra(r, &e.Extra)
	n := r.Count(4)
	e.Values = make([]string, n)
	for i := range e.Values {
		e.Values[i] = r.LengthPrefixedString()
	}
}

func (e *NiStringsExtraData) resolve(rs *resolver) { resolveExtra(rs, &e.Extra) }

type NiVectorExtraData struct {
	RecordBase
	Extra
	Value Vec4
}

func (e *NiVectorExtraData) read(r *Reader) {
	readExtra(r, &e.Extra)
	e.Value = r.Vec4()
}

func (e *NiVectorExtraData) resolve(rs *resolver) { resolveExtra(rs, &e.Extra) }

type BSBound struct {
	RecordBase
	Extra
	Center  Vec3
	Extents Vec3
}

func (e *BSBound) read(r *Reader) {
	readExtra(r, &e.Extra)
	e.Center = r.Vec3()
	e.Extents = r.Vec3()
}

func (e *BSBound) resolve(rs *resolver) { resolveExtra(rs, &e.Extra) }
