package nif

import (
	"fmt"
	"sort"
)

type factoryEntry struct {
	create func() Record
	tag    RecordType
}

func newRecord[T any, P interface {
	*T
	Record
}]() Record {
	return P(new(T))
}

// registrations lists every known type name. The first name registered for a
// tag is the tag's canonical name.
var registrations = []struct {
	name   string
	tag    RecordType
	create func() Record
}{
	{"NiNode", RCNiNode, newRecord[NiNode]},
	{"BSFadeNode", RCNiNode, newRecord[NiNode]},
	{"AvoidNode", RCAvoidNode, newRecord[NiNode]},
	{"NiCollisionSwitch", RCNiCollisionSwitch, newRecord[NiNode]},
	{"NiBSAnimationNode", RCNiBSAnimationNode, newRecord[NiNode]},
	{"NiBSParticleNode", RCNiBSParticleNode, newRecord[NiNode]},
	{"RootCollisionNode", RCRootCollisionNode, newRecord[NiNode]},
	{"NiSwitchNode", RCNiSwitchNode, newRecord[NiSwitchNode]},
	{"NiLODNode", RCNiLODNode, newRecord[NiLODNode]},
	{"NiFltAnimationNode", RCNiFltAnimationNode, newRecord[NiFltAnimationNode]},
	{"NiBillboardNode", RCNiBillboardNode, newRecord[NiBillboardNode]},
	{"NiSortAdjustNode", RCNiSortAdjustNode, newRecord[NiSortAdjustNode]},
	{"NiCamera", RCNiCamera, newRecord[NiCamera]},

	{"NiTriShape", RCNiTriShape, newRecord[NiTriShape]},
	{"NiTriStrips", RCNiTriStrips, newRecord[NiTriStrips]},
	{"NiLines", RCNiLines, newRecord[NiLines]},
	{"NiParticles", RCNiParticles, newRecord[NiParticles]},
	{"NiRotatingParticles", RCNiParticles, newRecord[NiParticles]},
	{"NiAutoNormalParticles", RCNiParticles, newRecord[NiParticles]},

	{"NiLight", RCNiLight, newRecord[NiLight]},
	{"NiAmbientLight", RCNiLight, newRecord[NiLight]},
	{"NiDirectionalLight", RCNiLight, newRecord[NiLight]},
	{"NiPointLight", RCNiPointLight, newRecord[NiPointLight]},
	{"NiSpotLight", RCNiSpotLight, newRecord[NiSpotLight]},
	{"NiTextureEffect", RCNiTextureEffect, newRecord[NiTextureEffect]},

	{"NiTexturingProperty", RCNiTexturingProperty, newRecord[NiTexturingProperty]},
	{"NiFogProperty", RCNiFogProperty, newRecord[NiFogProperty]},
	{"NiMaterialProperty", RCNiMaterialProperty, newRecord[NiMaterialProperty]},
	{"NiZBufferProperty", RCNiZBufferProperty, newRecord[NiZBufferProperty]},
	{"NiAlphaProperty", RCNiAlphaProperty, newRecord[NiAlphaProperty]},
	{"NiVertexColorProperty", RCNiVertexColorProperty, newRecord[NiVertexColorProperty]},
	{"NiShadeProperty", RCNiShadeProperty, newRecord[NiFlagProperty]},
	{"NiDitherProperty", RCNiDitherProperty, newRecord[NiFlagProperty]},
	{"NiWireframeProperty", RCNiWireframeProperty, newRecord[NiFlagProperty]},
	{"NiSpecularProperty", RCNiSpecularProperty, newRecord[NiFlagProperty]},
	{"NiStencilProperty", RCNiStencilProperty, newRecord[NiStencilProperty]},

	{"NiVisController", RCNiVisController, newRecord[NiVisController]},
	{"NiGeomMorpherController", RCNiGeomMorpherController, newRecord[NiGeomMorpherController]},
	{"NiKeyframeController", RCNiKeyframeController, newRecord[NiKeyframeController]},
	{"NiTransformController", RCNiKeyframeController, newRecord[NiKeyframeController]},
	{"NiAlphaController", RCNiAlphaController, newRecord[NiAlphaController]},
	{"NiRollController", RCNiRollController, newRecord[NiRollController]},
	{"NiUVController", RCNiUVController, newRecord[NiUVController]},
	{"NiPathController", RCNiPathController, newRecord[NiPathController]},
	{"NiMaterialColorController", RCNiMaterialColorController, newRecord[NiMaterialColorController]},
	{"NiBSPArrayController", RCNiBSPArrayController, newRecord[NiParticleSystemController]},
	{"NiParticleSystemController", RCNiParticleSystemController, newRecord[NiParticleSystemController]},
	{"NiFlipController", RCNiFlipController, newRecord[NiFlipController]},
	{"NiLookAtController", RCNiLookAtController, newRecord[NiLookAtController]},

	{"NiTransformInterpolator", RCNiTransformInterpolator, newRecord[NiTransformInterpolator]},
	{"NiPoint3Interpolator", RCNiPoint3Interpolator, newRecord[NiPoint3Interpolator]},
	{"NiFloatInterpolator", RCNiFloatInterpolator, newRecord[NiFloatInterpolator]},
	{"NiBoolInterpolator", RCNiBoolInterpolator, newRecord[NiBoolInterpolator]},
	{"NiColorInterpolator", RCNiColorInterpolator, newRecord[NiColorInterpolator]},

	{"NiExtraData", RCNiExtraData, newRecord[NiExtraData]},
	{"NiVertWeightsExtraData", RCNiVertWeightsExtraData, newRecord[NiVertWeightsExtraData]},
	{"NiTextKeyExtraData", RCNiTextKeyExtraData, newRecord[NiTextKeyExtraData]},
	{"NiStringExtraData", RCNiStringExtraData, newRecord[NiStringExtraData]},
	{"NiIntegerExtraData", RCNiIntegerExtraData, newRecord[NiIntegerExtraData]},
	{"NiIntegersExtraData", RCNiIntegersExtraData, newRecord[NiIntegersExtraData]},
	{"NiFloatExtraData", RCNiFloatExtraData, newRecord[NiFloatExtraData]},
	{"NiFloatsExtraData", RCNiFloatsExtraData, newRecord[NiFloatsExtraData]},
	{"NiBooleanExtraData", RCNiBooleanExtraData, newRecord[NiBooleanExtraData]},
	{"NiStringsExtraData", RCNiStringsExtraData, newRecord[NiStringsExtraData]},
	{"NiVectorExtraData", RCNiVectorExtraData, newRecord[NiVectorExtraData]},
	{"BSXFlags", RCBSXFlags, newRecord[NiIntegerExtraData]},
	{"BSBound", RCBSBound, newRecord[BSBound]},

	{"NiGravity", RCNiGravity, newRecord[NiGravity]},
	{"NiPlanarCollider", RCNiPlanarCollider, newRecord[NiPlanarCollider]},
	{"NiSphericalCollider", RCNiSphericalCollider, newRecord[NiSphericalCollider]},
	{"NiParticleGrowFade", RCNiParticleGrowFade, newRecord[NiParticleGrowFade]},
	{"NiParticleColorModifier", RCNiParticleColorModifier, newRecord[NiParticleColorModifier]},
	{"NiParticleRotation", RCNiParticleRotation, newRecord[NiParticleRotation]},
	{"NiParticleBomb", RCNiParticleBomb, newRecord[NiParticleBomb]},

	{"NiFloatData", RCNiFloatData, newRecord[NiFloatData]},
	{"NiTriShapeData", RCNiTriShapeData, newRecord[NiTriShapeData]},
	{"NiTriStripsData", RCNiTriStripsData, newRecord[NiTriStripsData]},
	{"NiLinesData", RCNiLinesData, newRecord[NiLinesData]},
	{"NiVisData", RCNiVisData, newRecord[NiVisData]},
	{"NiColorData", RCNiColorData, newRecord[NiColorData]},
	{"NiPixelData", RCNiPixelData, newRecord[NiPixelData]},
	{"NiMorphData", RCNiMorphData, newRecord[NiMorphData]},
	{"NiKeyframeData", RCNiKeyframeData, newRecord[NiKeyframeData]},
	{"NiTransformData", RCNiKeyframeData, newRecord[NiKeyframeData]},
	{"NiSkinData", RCNiSkinData, newRecord[NiSkinData]},
	{"NiUVData", RCNiUVData, newRecord[NiUVData]},
	{"NiPosData", RCNiPosData, newRecord[NiPosData]},
	{"NiBoolData", RCNiBoolData, newRecord[NiBoolData]},
	{"NiParticlesData", RCNiParticlesData, newRecord[NiParticlesData]},
	{"NiRotatingParticlesData", RCNiRotatingParticlesData, newRecord[NiRotatingParticlesData]},
	{"NiAutoNormalParticlesData", RCNiAutoNormalParticlesData, newRecord[NiParticlesData]},

	{"NiSequenceStreamHelper", RCNiSequenceStreamHelper, newRecord[NiSequenceStreamHelper]},
	{"NiSourceTexture", RCNiSourceTexture, newRecord[NiSourceTexture]},
	{"NiPalette", RCNiPalette, newRecord[NiPalette]},
	{"NiSkinInstance", RCNiSkinInstance, newRecord[NiSkinInstance]},
	{"NiSkinPartition", RCNiSkinPartition, newRecord[NiSkinPartition]},
	{"NiAlphaAccumulator", RCNiAccumulator, newRecord[NiAccumulator]},
	{"NiClusterAccumulator", RCNiAccumulator, newRecord[NiAccumulator]},

	{"bhkCollisionObject", RCBhkCollisionObject, newRecord[BhkCollisionObject]},
	{"bhkRigidBody", RCBhkRigidBody, newRecord[BhkRigidBody]},
	{"bhkRigidBodyT", RCBhkRigidBodyT, newRecord[BhkRigidBody]},
	{"bhkSimpleShapePhantom", RCBhkSimpleShapePhantom, newRecord[BhkSimpleShapePhantom]},
	{"bhkMoppBvTreeShape", RCBhkMoppBvTreeShape, newRecord[BhkMoppBvTreeShape]},
	{"bhkListShape", RCBhkListShape, newRecord[BhkListShape]},
	{"bhkConvexVerticesShape", RCBhkConvexVerticesShape, newRecord[BhkConvexVerticesShape]},
	{"bhkBoxShape", RCBhkBoxShape, newRecord[BhkBoxShape]},
	{"bhkSphereShape", RCBhkSphereShape, newRecord[BhkSphereShape]},
	{"bhkCapsuleShape", RCBhkCapsuleShape, newRecord[BhkCapsuleShape]},
	{"bhkConvexTransformShape", RCBhkConvexTransformShape, newRecord[BhkConvexTransformShape]},
	{"bhkTransformShape", RCBhkConvexTransformShape, newRecord[BhkConvexTransformShape]},
	{"bhkNiTriStripsShape", RCBhkNiTriStripsShape, newRecord[BhkNiTriStripsShape]},
	{"bhkPackedNiTriStripsShape", RCBhkPackedNiTriStripsShape, newRecord[BhkPackedNiTriStripsShape]},
	{"hkPackedNiTriStripsData", RCHkPackedNiTriStripsData, newRecord[HkPackedNiTriStripsData]},
	{"bhkRagdollConstraint", RCBhkRagdollConstraint, newRecord[BhkRagdollConstraint]},
	{"bhkHingeConstraint", RCBhkHingeConstraint, newRecord[BhkHingeConstraint]},
	{"bhkLimitedHingeConstraint", RCBhkLimitedHingeConstraint, newRecord[BhkLimitedHingeConstraint]},
}

var factory = make(map[string]factoryEntry, len(registrations))

func init() {
	for _, reg := range registrations {
		if _, dup := factory[reg.name]; dup {
			panic("nif: duplicate record type " + reg.name)
		}
		factory[reg.name] = factoryEntry{create: reg.create, tag: reg.tag}
		if recordTypeNames[reg.tag] == "" {
			recordTypeNames[reg.tag] = reg.name
		}
	}
}

// Create constructs an empty record for a type name. The record carries its
// tag and name; index and version context are stamped by the loader.
func Create(name string) (Record, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty type name", ErrUnknownRecordType)
	}
	e, ok := factory[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRecordType, name)
	}
	rec := e.create()
	rec.base().stamp(e.tag, name, -1, Context{}, nil)
	return rec, nil
}

// KnownTypes returns the sorted list of type names the factory recognises.
func KnownTypes() []string {
	names := make([]string, 0, len(factory))
	for name := range factory {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
