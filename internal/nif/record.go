package nif

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

type (
	Vec2 = mgl32.Vec2
	Vec3 = mgl32.Vec3
	Vec4 = mgl32.Vec4
	Quat = mgl32.Quat
	Mat3 = mgl32.Mat3
	Mat4 = mgl32.Mat4
)

// RecordType is the small integer tag the factory assigns to a record.
// Several type names may share a tag.
type RecordType uint16

const (
	RCMissing RecordType = iota
	RCNiNode
	RCNiSwitchNode
	RCNiLODNode
	RCNiFltAnimationNode
	RCNiBillboardNode
	RCNiSortAdjustNode
	RCAvoidNode
	RCNiCollisionSwitch
	RCNiBSAnimationNode
	RCNiBSParticleNode
	RCRootCollisionNode
	RCNiCamera
	RCNiTriShape
	RCNiTriStrips
	RCNiLines
	RCNiParticles
	RCNiLight
	RCNiPointLight
	RCNiSpotLight
	RCNiTextureEffect
	RCNiTexturingProperty
	RCNiFogProperty
	RCNiMaterialProperty
	RCNiZBufferProperty
	RCNiAlphaProperty
	RCNiVertexColorProperty
	RCNiShadeProperty
	RCNiDitherProperty
	RCNiWireframeProperty
	RCNiSpecularProperty
	RCNiStencilProperty
	RCNiVisController
	RCNiGeomMorpherController
	RCNiKeyframeController
	RCNiAlphaController
	RCNiRollController
	RCNiUVController
	RCNiPathController
	RCNiMaterialColorController
	RCNiBSPArrayController
	RCNiParticleSystemController
	RCNiFlipController
	RCNiLookAtController
	RCNiTransformInterpolator
	RCNiPoint3Interpolator
	RCNiFloatInterpolator
	RCNiBoolInterpolator
	RCNiColorInterpolator
	RCNiExtraData
	RCNiVertWeightsExtraData
	RCNiTextKeyExtraData
	RCNiStringExtraData
	RCNiIntegerExtraData
	RCNiIntegersExtraData
	RCNiFloatExtraData
	RCNiFloatsExtraData
	RCNiBooleanExtraData
	RCNiStringsExtraData
	RCNiVectorExtraData
	RCBSXFlags
	RCBSBound
	RCNiGravity
	RCNiPlanarCollider
	RCNiSphericalCollider
	RCNiParticleGrowFade
	RCNiParticleColorModifier
	RCNiParticleRotation
	RCNiParticleBomb
	RCNiFloatData
	RCNiTriShapeData
	RCNiTriStripsData
	RCNiLinesData
	RCNiVisData
	RCNiColorData
	RCNiPixelData
	RCNiMorphData
	RCNiKeyframeData
	RCNiSkinData
	RCNiUVData
	RCNiPosData
	RCNiBoolData
	RCNiParticlesData
	RCNiRotatingParticlesData
	RCNiAutoNormalParticlesData
	RCNiSequenceStreamHelper
	RCNiSourceTexture
	RCNiPalette
	RCNiSkinInstance
	RCNiSkinPartition
	RCNiAccumulator
	RCBhkCollisionObject
	RCBhkRigidBody
	RCBhkRigidBodyT
	RCBhkSimpleShapePhantom
	RCBhkMoppBvTreeShape
	RCBhkListShape
	RCBhkConvexVerticesShape
	RCBhkBoxShape
	RCBhkSphereShape
	RCBhkCapsuleShape
	RCBhkConvexTransformShape
	RCBhkNiTriStripsShape
	RCBhkPackedNiTriStripsShape
	RCHkPackedNiTriStripsData
	RCBhkRagdollConstraint
	RCBhkHingeConstraint
	RCBhkLimitedHingeConstraint
	numRecordTypes
)

var recordTypeNames [numRecordTypes]string

func (t RecordType) String() string {
	if t < numRecordTypes && recordTypeNames[t] != "" {
		return recordTypeNames[t]
	}
	return "RecordType(" + strconv.Itoa(int(t)) + ")"
}

// Record is one typed block of the file.
type Record interface {
	Type() RecordType
	TypeName() string
	Index() int
	Context() Context
	Version() Version
	UserVersion() uint32
	BethVersion() uint32

	base() *RecordBase
	read(r *Reader)
	resolve(rs *resolver)
}

// RecordBase carries what every record knows about itself. It is stamped once
// when the factory creates the record and never changes afterwards.
type RecordBase struct {
	typ     RecordType
	name    string
	index   int
	ctx     Context
	strings *StringTable
}

func (b *RecordBase) Type() RecordType    { return b.typ }
func (b *RecordBase) TypeName() string    { return b.name }
func (b *RecordBase) Index() int          { return b.index }
func (b *RecordBase) Context() Context    { return b.ctx }
func (b *RecordBase) Version() Version    { return b.ctx.Version }
func (b *RecordBase) UserVersion() uint32 { return b.ctx.UserVersion }
func (b *RecordBase) BethVersion() uint32 { return b.ctx.BethVersion }

// Strings returns the file's string table shared by all records.
func (b *RecordBase) Strings() *StringTable { return b.strings }

func (b *RecordBase) base() *RecordBase { return b }

// resolve is the default for records without references.
func (b *RecordBase) resolve(rs *resolver) {}

func (b *RecordBase) stamp(typ RecordType, name string, index int, ctx Context, strings *StringTable) {
	b.typ = typ
	b.name = name
	b.index = index
	b.ctx = ctx
	b.strings = strings
}

// Category interfaces used as expected reference targets.
type (
	NamedRecord interface {
		Record
		NamedBase() *Named
	}
	AVObjectRecord interface {
		Record
		AVObjectBase() *AVObject
	}
	NodeRecord interface {
		AVObjectRecord
		NodeBase() *Node
	}
	GeometryRecord interface {
		AVObjectRecord
		GeometryBase() *Geometry
	}
	DynamicEffectRecord interface {
		AVObjectRecord
		DynamicEffectBase() *DynamicEffect
	}
	PropertyRecord interface {
		Record
		PropertyBase() *Property
	}
	ControllerRecord interface {
		Record
		ControllerBase() *Controller
	}
	ExtraRecord interface {
		Record
		ExtraBase() *Extra
	}
	GeometryDataRecord interface {
		Record
		GeometryDataBase() *GeometryData
	}
	InterpolatorRecord interface {
		Record
		isInterpolator()
	}
	ParticleModifierRecord interface {
		Record
		ParticleModifierBase() *ParticleModifier
	}
	CollisionObjectRecord interface {
		Record
		CollisionObjectBase() *CollisionObject
	}
	ShapeRecord interface {
		Record
		isShape()
	}
	WorldObjectRecord interface {
		Record
		WorldObjectBase() *WorldObject
	}
	ConstraintRecord interface {
		Record
		ConstraintBase() *Constraint
	}
	AccumulatorRecord interface {
		Record
		isAccumulator()
	}
)
