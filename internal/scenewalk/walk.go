// Package scenewalk flattens a loaded record graph into the placed objects,
// geometry and texture references a viewer or exporter needs.
package scenewalk

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"nifgraph/internal/nif"
)

// Object is a scene object with its accumulated world transform.
type Object struct {
	Record nif.AVObjectRecord
	Path   string
	Depth  int
	World  mgl32.Mat4
}

// Name returns the object's own name.
func (o Object) Name() string { return o.Record.AVObjectBase().Name }

// Skinned is a geometry bound to a skeleton.
type Skinned struct {
	Geometry nif.GeometryRecord
	Root     string
	Bones    []string
}

// Scene is the result of Walk.
type Scene struct {
	Objects  []Object
	Geometry []Object
	Skinned  []Skinned

	// Textures lists external texture file names in first-use order.
	Textures []string
	// Embedded lists source textures that carry their own pixel data.
	Embedded []*nif.NiSourceTexture
}

// LocalMatrix builds the translate * rotate * scale matrix of a transform.
func LocalMatrix(t nif.Transform) mgl32.Mat4 {
	r := t.Rotation.Mat4()
	s := mgl32.Scale3D(t.Scale, t.Scale, t.Scale)
	return mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).Mul4(r).Mul4(s)
}

type walker struct {
	scene    *Scene
	visited  map[int]bool
	textures map[int]bool
	names    map[string]bool
}

// Walk visits the file's roots depth first. Every record is visited once, so
// objects reachable through several parents or through a cycle appear under
// the first path that reaches them.
func Walk(f *nif.File) *Scene {
	w := &walker{
		scene:    &Scene{},
		visited:  make(map[int]bool),
		textures: make(map[int]bool),
		names:    make(map[string]bool),
	}
	for _, root := range f.RootRecords() {
		av, ok := root.(nif.AVObjectRecord)
		if !ok {
			continue
		}
		w.visit(av, "", 0, mgl32.Ident4())
	}
	return w.scene
}

func (w *walker) visit(rec nif.AVObjectRecord, parent string, depth int, parentWorld mgl32.Mat4) {
	if w.visited[rec.Index()] {
		return
	}
	w.visited[rec.Index()] = true

	av := rec.AVObjectBase()
	path := av.Name
	if parent != "" {
		path = parent + "/" + av.Name
	}
	obj := Object{
		Record: rec,
		Path:   path,
		Depth:  depth,
		World:  parentWorld.Mul4(LocalMatrix(av.Transform)),
	}
	w.scene.Objects = append(w.scene.Objects, obj)

	for _, prop := range av.Properties.Records() {
		w.property(prop)
	}

	if g, ok := rec.(nif.GeometryRecord); ok {
		w.scene.Geometry = append(w.scene.Geometry, obj)
		w.skin(g)
		if shader := g.GeometryBase().ShaderProperty; shader.Resolved() {
			w.property(shader.Get())
		}
	}
	if n, ok := rec.(nif.NodeRecord); ok {
		for _, child := range n.NodeBase().Children.Records() {
			w.visit(child, path, depth+1, obj.World)
		}
	}
}

func (w *walker) skin(g nif.GeometryRecord) {
	ref := g.GeometryBase().Skin
	if !ref.Resolved() {
		return
	}
	inst := ref.Get()
	s := Skinned{Geometry: g}
	if inst.Root.Resolved() {
		s.Root = inst.Root.Get().AVObjectBase().Name
	}
	for _, bone := range inst.Bones.Records() {
		s.Bones = append(s.Bones, bone.AVObjectBase().Name)
	}
	w.scene.Skinned = append(w.scene.Skinned, s)
}

func (w *walker) property(p nif.PropertyRecord) {
	tp, ok := p.(*nif.NiTexturingProperty)
	if !ok {
		return
	}
	for _, slot := range tp.Textures {
		w.source(slot.Source)
	}
	for _, slot := range tp.ShaderTextures {
		w.source(slot.Source)
	}
}

func (w *walker) source(ref nif.Ref[*nif.NiSourceTexture]) {
	if !ref.Resolved() {
		return
	}
	src := ref.Get()
	if w.textures[src.Index()] {
		return
	}
	w.textures[src.Index()] = true
	if src.External {
		key := strings.ToLower(src.File)
		if src.File != "" && !w.names[key] {
			w.names[key] = true
			w.scene.Textures = append(w.scene.Textures, src.File)
		}
		return
	}
	if src.Data.Resolved() {
		w.scene.Embedded = append(w.scene.Embedded, src)
	}
}
