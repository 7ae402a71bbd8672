package nif

import "fmt"

// Named is the field group of every object that carries a name, extra data
// and a controller chain.
//
// Extra data is stored as a single reference heading a next-linked chain
// before 10.0.1.0 and as a counted list from 10.0.1.0 on. Only one of Extra
// and ExtraList is populated for a given file; HasExtraList tells which.
// Consumers should use ExtraDataList, which hides the difference.
type Named struct {
	Name         string
	Extra        Ref[ExtraRecord]
	ExtraList    RefList[ExtraRecord]
	HasExtraList bool
	Controller   Ref[ControllerRecord]
}

func (n *Named) NamedBase() *Named { return n }

func readNamed(r *Reader, n *Named) {
	n.Name = r.Str()
	if r.ver < V10_0_1_0 {
		n.Extra.read(r)
	} else {
		n.ExtraList.read(r)
		n.HasExtraList = true
	}
	n.Controller.read(r)
}

func resolveNamed(rs *resolver, n *Named) {
	n.Extra.resolve(rs)
	n.ExtraList.resolve(rs)
	n.Controller.resolve(rs)
}

// ExtraDataList returns the attached extra data as one sequence regardless of
// whether the file stored a linked chain or a list. Chains are followed through
// their next references; a record seen twice ends the walk.
func (n *Named) ExtraDataList() []ExtraRecord {
	if n.HasExtraList {
		return n.ExtraList.Records()
	}
	var out []ExtraRecord
	seen := make(map[int]bool)
	for ref := n.Extra; ref.Resolved(); {
		rec := ref.Get()
		if seen[rec.Index()] {
			break
		}
		seen[rec.Index()] = true
		out = append(out, rec)
		ref = rec.ExtraBase().Next
	}
	return out
}

// Controllers returns the controller chain, following next references until
// an empty one or a repeat.
func (n *Named) Controllers() []ControllerRecord {
	var out []ControllerRecord
	seen := make(map[int]bool)
	for ref := n.Controller; ref.Resolved(); {
		rec := ref.Get()
		if seen[rec.Index()] {
			break
		}
		seen[rec.Index()] = true
		out = append(out, rec)
		ref = rec.ControllerBase().Next
	}
	return out
}

// Bounding volume kinds.
const (
	BoundBase      uint32 = 0xFFFFFFFF
	BoundSphere    uint32 = 0
	BoundBox       uint32 = 1
	BoundCapsule   uint32 = 2
	BoundLozenge   uint32 = 3
	BoundUnion     uint32 = 4
	BoundHalfSpace uint32 = 5
)

type BoundingVolume struct {
	Kind uint32

	Center Vec3
	Radius float32

	// box
	Axes    Mat3
	Extents Vec3

	// capsule
	Axis   Vec3
	Extent float32

	// lozenge
	Extent0, Extent1 float32
	Axis0, Axis1     Vec3

	// half space
	Plane Vec4

	Children []BoundingVolume
}

func readBoundingVolume(r *Reader, depth int) BoundingVolume {
	var bv BoundingVolume
	bv.Kind = r.Uint32()
	switch bv.Kind {
	case BoundBase:
	case BoundSphere:
		bv.Center = r.Vec3()
		bv.Radius = r.Float32()
	case BoundBox:
		bv.Center = r.Vec3()
		bv.Axes = r.Mat3()
		bv.Extents = r.Vec3()
	case BoundCapsule:
		bv.Center = r.Vec3()
		bv.Axis = r.Vec3()
		bv.Extent = r.Float32()
		bv.Radius = r.Float32()
	case BoundLozenge:
		bv.Radius = r.Float32()
		bv.Extent0 = r.Float32()
		bv.Extent1 = r.Float32()
		bv.Center = r.Vec3()
		bv.Axis0 = r.Vec3()
		bv.Axis1 = r.Vec3()
	case BoundUnion:
		// union members are at least four bytes each
		n := r.Count(4)
		if depth > 16 {
			r.Fail(fmt.Errorf("%w: bounding volume nesting too deep", ErrUnknownValue))
			return bv
		}
		for i := 0; i < n && r.Err() == nil; i++ {
			bv.Children = append(bv.Children, readBoundingVolume(r, depth+1))
		}
	case BoundHalfSpace:
		bv.Plane = r.Vec4()
		bv.Center = r.Vec3()
	default:
		r.Fail(fmt.Errorf("%w: bounding volume type %d", ErrUnknownValue, bv.Kind))
	}
	return bv
}

// AVObject is the field group of everything placed in the scene.
type AVObject struct {
	Named
	Flags      uint32
	Transform  Transform
	Velocity   Vec3
	Properties RefList[PropertyRecord]
	HasBounds  bool
	Bounds     BoundingVolume
	Collision  Ref[CollisionObjectRecord]

	parents []NodeRecord
}

func (a *AVObject) AVObjectBase() *AVObject { return a }

// Parents returns the nodes that list this object as a child.
func (a *AVObject) Parents() []NodeRecord { return a.parents }

func readAVObject(r *Reader, a *AVObject) {
	readNamed(r, &a.Named)
	if r.beth <= 26 {
		a.Flags = uint32(r.Uint16())
	} else {
		a.Flags = r.Uint32()
	}
	a.Transform = readTransform(r)
	if r.ver <= V4_2_2_0 {
		a.Velocity = r.Vec3()
	}
	if r.beth <= BethFO3 {
		a.Properties.read(r)
	}
	if r.ver <= V4_2_2_0 {
		a.HasBounds = r.Bool()
		if a.HasBounds {
			a.Bounds = readBoundingVolume(r, 0)
		}
	}
	if r.ver >= V10_0_1_0 {
		a.Collision.read(r)
	}
}

func resolveAVObject(rs *resolver, a *AVObject) {
	resolveNamed(rs, &a.Named)
	a.Properties.resolve(rs)
	a.Collision.resolve(rs)
}

// Extra is the field group of extra data records.
// Before 4.2.2.0 they form a chain through Next and carry their own size.
type Extra struct {
	Name       string
	Next       Ref[ExtraRecord]
	RecordSize uint32
}

func (e *Extra) ExtraBase() *Extra { return e }

func readExtra(r *Reader, e *Extra) {
	if r.ver >= V10_0_1_0 {
		e.Name = r.Str()
	} else if r.ver <= V4_2_2_0 {
		e.Next.read(r)
		e.RecordSize = r.Uint32()
	}
}

func resolveExtra(rs *resolver, e *Extra) {
	e.Next.resolve(rs)
}

// Controller is the field group of time controllers.
type Controller struct {
	Next      Ref[ControllerRecord]
	Flags     uint16
	Frequency float32
	Phase     float32
	TimeStart float32
	TimeStop  float32
	Target    Ref[NamedRecord]
}

func (c *Controller) ControllerBase() *Controller { return c }

// Controller flag bits.
const (
	ControllerActive     = 0x8
	ControllerExtrapMask = 0x6
)

func readController(r *Reader, c *Controller) {
	c.Next.read(r)
	c.Flags = r.Uint16()
	c.Frequency = r.Float32()
	c.Phase = r.Float32()
	c.TimeStart = r.Float32()
	c.TimeStop = r.Float32()
	c.Target.read(r)
}

func resolveController(rs *resolver, c *Controller) {
	c.Next.resolve(rs)
	c.Target.resolve(rs)
}

// InterpController is a controller that reads its keys from a data record in
// old files and from an interpolator from 10.1.0.104 on. Exactly one of the
// two references can be populated; consumers branch on which.
type InterpController struct {
	Controller
	ManagerControlled bool
	Interpolator      Ref[InterpolatorRecord]
}

func readInterpController(r *Reader, c *InterpController) {
	readController(r, &c.Controller)
	if r.ver >= V10_1_0_104 && r.ver <= V10_1_0_108 {
		c.ManagerControlled = r.Bool()
	}
	if r.ver >= V10_1_0_104 {
		c.Interpolator.read(r)
	}
}

func resolveInterpController(rs *resolver, c *InterpController) {
	resolveController(rs, &c.Controller)
	c.Interpolator.resolve(rs)
}

// hasLegacyData reports whether controllers of this version store a data reference.
func hasLegacyData(r *Reader) bool {
	return r.ver <= V10_1_0_103
}
