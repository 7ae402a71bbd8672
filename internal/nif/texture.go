package nif

// NiSourceTexture names an external image file or points at embedded pixel data.
type NiSourceTexture struct {
	RecordBase
	Named
	External bool
	File     string
	Data     Ref[*NiPixelData]

	PixelLayout  uint32
	UseMipmaps   uint32
	AlphaFormat  uint32
	IsStatic     bool
	DirectRender bool
	PersistData  bool
}

func (t *NiSourceTexture) read(r *Reader) {
	readNamed(r, &t.Named)
	t.External = r.Uint8() != 0
	hasData := r.ver >= V10_1_0_106
	if !hasData && !t.External {
		hasData = r.Uint8() != 0
	}
	if t.External || r.ver >= V10_1_0_0 {
		t.File = r.Str()
	}
	if hasData {
		t.Data.read(r)
	}
	t.PixelLayout = r.Uint32()
	t.UseMipmaps = r.Uint32()
	t.AlphaFormat = r.Uint32()
	t.IsStatic = r.Uint8() != 0
	if r.ver >= V10_1_0_103 {
		t.DirectRender = r.Bool()
	}
	if r.ver >= V20_2_0_4 {
		t.PersistData = r.Bool()
	}
}

func (t *NiSourceTexture) resolve(rs *resolver) {
	resolveNamed(rs, &t.Named)
	t.Data.resolve(rs)
}

// NiSequenceStreamHelper anchors the animation tracks of a keyframe file.
type NiSequenceStreamHelper struct {
	RecordBase
	Named
}

func (h *NiSequenceStreamHelper) read(r *Reader)       { readNamed(r, &h.Named) }
func (h *NiSequenceStreamHelper) resolve(rs *resolver) { resolveNamed(rs, &h.Named) }

// NiAccumulator covers the alpha and cluster sorters; neither stores any field.
type NiAccumulator struct {
	RecordBase
}

func (a *NiAccumulator) read(r *Reader) {}
func (a *NiAccumulator) isAccumulator() {}
