package importer

import (
	"github.com/mandelsoft/ifcimport/pkg/runtime"
	"github.com/mandelsoft/ifcimport/pkg/schema"
)

// kinds is the closed dispatch table mapping entity type names
// to entity kinds.
var kinds = runtime.NewTypeScheme[Entity]()

// since holds the first schema version a kind is used for.
var since = map[string]schema.Version{}

func register[T any, P interface {
	*T
	Entity
}](typ string, v ...schema.Version) {
	runtime.MustRegisterFactory[Entity](kinds, typ, func() Entity { return P(new(T)) })
	if len(v) > 0 {
		since[typ] = v[0]
	}
}

func init() {
	register[Project]("IfcProject")
	register[Spatial]("IfcSite")
	register[Spatial]("IfcBuilding")
	register[Spatial]("IfcBuildingStorey")
	register[Space]("IfcSpace")

	register[Element]("IfcElement")
	register[ElementAssembly]("IfcElementAssembly")
	register[TypeObject]("IfcTypeObject")

	register[Group]("IfcGroup")
	register[Zone]("IfcZone")
	register[System]("IfcSystem")
	register[DistributionSystem]("IfcDistributionSystem", schema.IFC4Obsolete)

	register[PropertySet]("IfcPropertySet")
	register[PropertySingleValue]("IfcPropertySingleValue")
	register[PropertyEnumeratedValue]("IfcPropertyEnumeratedValue")

	register[Material]("IfcMaterial")
	register[MaterialLayer]("IfcMaterialLayer")
	register[MaterialLayerSet]("IfcMaterialLayerSet")
	register[MaterialLayerSetUsage]("IfcMaterialLayerSetUsage")
	register[MaterialProfile]("IfcMaterialProfile", schema.IFC4Obsolete)
	register[MaterialProfileSet]("IfcMaterialProfileSet", schema.IFC4Obsolete)
	register[MaterialProfileSetUsage]("IfcMaterialProfileSetUsage", schema.IFC4Obsolete)
	register[MaterialList]("IfcMaterialList")

	register[Classification]("IfcClassification")
	register[ClassificationReference]("IfcClassificationReference")

	register[LocalPlacement]("IfcLocalPlacement")
	register[Axis2Placement3D]("IfcAxis2Placement3D")
	register[CartesianPoint]("IfcCartesianPoint")
	register[Direction]("IfcDirection")
}

// Kinds provides the names of all entity types with a dedicated kind.
func Kinds() []string {
	return kinds.TypeNames()
}

// kindFor determines the most specific registered kind for an entity
// type by walking the supertype chain of the current schema version.
func (s *Session) kindFor(typ string) string {
	if k, ok := s.kinds[typ]; ok {
		return k
	}
	k := ""
	for t := typ; t != ""; t = s.file.Supertype(t) {
		if kinds.HasType(t) && s.tracker.AtLeast(since[t]) {
			k = t
			break
		}
	}
	s.kinds[typ] = k
	return k
}
