package ifcfile

import (
	"github.com/mandelsoft/ifcimport/pkg/schema"
)

// Default is the catalogue of the entity kinds supported by the importer.
// It covers the object hierarchy, the relations used to build the object
// graph, property sets, materials, classifications and placements.
var Default = NewCatalogue()

func def(name, super string, attrs ...Attr) *EntityDef {
	d := &EntityDef{Name: name, Attrs: attrs}
	if super != "" {
		d.Supers = []Super{{super, first, last}}
	}
	return d
}

func (d *EntityDef) inverse(attrs ...Attr) *EntityDef {
	d.Inverses = append(d.Inverses, attrs...)
	return d
}

func (d *EntityDef) since(v schema.Version) *EntityDef {
	d.Since = v
	return d
}

func (d *EntityDef) supers(s ...Super) *EntityDef {
	d.Supers = s
	return d
}

func inverse(rel, attr, name string) Inverse {
	return Inverse{rel, attr, name, first, last}
}

func inverseIn(rel, attr, name string, since, until schema.Version) Inverse {
	return Inverse{rel, attr, name, since, until}
}

func init() {
	c := Default

	// roots
	c.Define(def("IfcRoot", "", attr("GlobalId"), attr("OwnerHistory"), attr("Name"), attr("Description")))
	c.Define(def("IfcObjectDefinition", "IfcRoot").inverse(
		attr("HasAssignments"), attr("IsDecomposedBy"), attr("Decomposes"), attr("HasAssociations"),
		since("IsNestedBy", schema.IFC4Obsolete), since("Nests", schema.IFC4Obsolete),
	))
	c.Define(def("IfcObject", "IfcObjectDefinition", attr("ObjectType")).inverse(
		attr("IsDefinedBy"), since("IsTypedBy", schema.IFC4Obsolete),
	))
	c.Define(def("IfcContext", "IfcObjectDefinition",
		attr("ObjectType"), attr("LongName"), attr("Phase"), attr("RepresentationContexts"), attr("UnitsInContext"),
	).since(schema.IFC4Obsolete).inverse(attr("IsDefinedBy")))
	c.Define(def("IfcProject", "",
		until("LongName", schema.IFC2x3TC1), until("Phase", schema.IFC2x3TC1),
		until("RepresentationContexts", schema.IFC2x3TC1), until("UnitsInContext", schema.IFC2x3TC1),
	).supers(Super{"IfcObject", first, schema.IFC2x3TC1}, Super{"IfcContext", schema.IFC4Obsolete, last}))

	// products
	c.Define(def("IfcProduct", "IfcObject", attr("ObjectPlacement"), attr("Representation")))
	c.Define(def("IfcSpatialStructureElement", "IfcProduct", attr("LongName"), attr("CompositionType")).inverse(
		attr("ContainsElements"),
	))
	c.Define(def("IfcSite", "IfcSpatialStructureElement",
		attr("RefLatitude"), attr("RefLongitude"), attr("RefElevation"), attr("LandTitleNumber"), attr("SiteAddress"),
	))
	c.Define(def("IfcBuilding", "IfcSpatialStructureElement",
		attr("ElevationOfRefHeight"), attr("ElevationOfTerrain"), attr("BuildingAddress"),
	))
	c.Define(def("IfcBuildingStorey", "IfcSpatialStructureElement", attr("Elevation")))
	c.Define(def("IfcSpace", "IfcSpatialStructureElement",
		until("InteriorOrExteriorSpace", schema.IFC2x3TC1), since("PredefinedType", schema.IFC4Obsolete),
		attr("ElevationWithFlooring"),
	))

	c.Define(def("IfcElement", "IfcProduct", attr("Tag")).inverse(attr("ContainedInStructure")))
	c.Define(def("IfcBuildingElement", "IfcElement"))
	c.Define(def("IfcWall", "IfcBuildingElement", since("PredefinedType", schema.IFC4Obsolete)))
	c.Define(def("IfcWallStandardCase", "IfcWall"))
	c.Define(def("IfcSlab", "IfcBuildingElement", attr("PredefinedType")))
	c.Define(def("IfcColumn", "IfcBuildingElement", since("PredefinedType", schema.IFC4Obsolete)))
	c.Define(def("IfcBeam", "IfcBuildingElement", since("PredefinedType", schema.IFC4Obsolete)))
	c.Define(def("IfcRoof", "IfcBuildingElement", until("ShapeType", schema.IFC2x3TC1), since("PredefinedType", schema.IFC4Obsolete)))
	c.Define(def("IfcStair", "IfcBuildingElement", until("ShapeType", schema.IFC2x3TC1), since("PredefinedType", schema.IFC4Obsolete)))
	c.Define(def("IfcRailing", "IfcBuildingElement", attr("PredefinedType")))
	c.Define(def("IfcCovering", "IfcBuildingElement", attr("PredefinedType")))
	c.Define(def("IfcDoor", "IfcBuildingElement",
		attr("OverallHeight"), attr("OverallWidth"),
		since("PredefinedType", schema.IFC4Obsolete), since("OperationType", schema.IFC4Obsolete),
		since("UserDefinedOperationType", schema.IFC4Obsolete),
	))
	c.Define(def("IfcWindow", "IfcBuildingElement",
		attr("OverallHeight"), attr("OverallWidth"),
		since("PredefinedType", schema.IFC4Obsolete), since("PartitioningType", schema.IFC4Obsolete),
		since("UserDefinedPartitioningType", schema.IFC4Obsolete),
	))
	c.Define(def("IfcBuildingElementProxy", "IfcBuildingElement",
		until("CompositionType", schema.IFC2x3TC1), since("PredefinedType", schema.IFC4Obsolete),
	))
	c.Define(def("IfcFurnishingElement", "IfcElement"))
	c.Define(def("IfcFurniture", "IfcFurnishingElement", since("PredefinedType", schema.IFC4Obsolete)).since(schema.IFC4Obsolete))
	c.Define(def("IfcElementAssembly", "IfcElement", attr("AssemblyPlace"), attr("PredefinedType")))
	c.Define(def("IfcDistributionElement", "IfcElement"))
	c.Define(def("IfcDistributionFlowElement", "IfcDistributionElement"))
	c.Define(def("IfcFlowSegment", "IfcDistributionFlowElement"))
	c.Define(def("IfcFlowTerminal", "IfcDistributionFlowElement"))
	c.Define(def("IfcFeatureElement", "IfcElement"))
	c.Define(def("IfcFeatureElementSubtraction", "IfcFeatureElement"))
	c.Define(def("IfcOpeningElement", "IfcFeatureElementSubtraction", since("PredefinedType", schema.IFC4Obsolete)))

	// type objects
	c.Define(def("IfcTypeObject", "",
		attr("ApplicableOccurrence"), attr("HasPropertySets"),
	).supers(
		Super{"IfcPropertyDefinition", first, schema.IFC2x2},
		Super{"IfcObjectDefinition", schema.IFC2x3, last},
	).inverse(until("ObjectTypeOf", schema.IFC2x3TC1), since("Types", schema.IFC4Obsolete)))
	c.Define(def("IfcTypeProduct", "IfcTypeObject", attr("RepresentationMaps"), attr("Tag")))
	c.Define(def("IfcElementType", "IfcTypeProduct", attr("ElementType")))
	c.Define(def("IfcBuildingElementType", "IfcElementType"))
	c.Define(def("IfcWallType", "IfcBuildingElementType", attr("PredefinedType")))
	c.Define(def("IfcSlabType", "IfcBuildingElementType", attr("PredefinedType")))
	c.Define(def("IfcColumnType", "IfcBuildingElementType", attr("PredefinedType")))
	c.Define(def("IfcBeamType", "IfcBuildingElementType", attr("PredefinedType")))
	c.Define(def("IfcBuildingElementProxyType", "IfcBuildingElementType", attr("PredefinedType")))

	// groups
	c.Define(def("IfcGroup", "IfcObject").inverse(attr("IsGroupedBy")))
	c.Define(def("IfcZone", "IfcGroup", since("LongName", schema.IFC4Obsolete)))
	c.Define(def("IfcSystem", "IfcGroup"))
	c.Define(def("IfcDistributionSystem", "IfcSystem",
		since("LongName", schema.IFC4Obsolete), since("PredefinedType", schema.IFC4Obsolete),
	).since(schema.IFC4Obsolete))
	c.Define(def("IfcBuildingSystem", "IfcSystem",
		since("PredefinedType", schema.IFC4Obsolete), since("LongName", schema.IFC4Add1Obsolete),
	).since(schema.IFC4Obsolete))

	// relations
	c.Define(def("IfcRelationship", "IfcRoot"))
	c.Define(def("IfcRelDecomposes", "IfcRelationship"))
	c.Define(def("IfcRelAggregates", "IfcRelDecomposes", attr("RelatingObject"), attr("RelatedObjects")))
	c.Define(def("IfcRelNests", "IfcRelDecomposes", attr("RelatingObject"), attr("RelatedObjects")))
	c.Define(def("IfcRelConnects", "IfcRelationship"))
	c.Define(def("IfcRelContainedInSpatialStructure", "IfcRelConnects", attr("RelatedElements"), attr("RelatingStructure")))
	c.Define(def("IfcRelAssociates", "IfcRelationship", attr("RelatedObjects")))
	c.Define(def("IfcRelAssociatesMaterial", "IfcRelAssociates", attr("RelatingMaterial")))
	c.Define(def("IfcRelAssociatesClassification", "IfcRelAssociates", attr("RelatingClassification")))
	c.Define(def("IfcRelAssigns", "IfcRelationship", attr("RelatedObjects"), attr("RelatedObjectsType")))
	c.Define(def("IfcRelAssignsToGroup", "IfcRelAssigns", attr("RelatingGroup")))
	c.Define(def("IfcRelDefines", "IfcRelationship"))
	c.Define(def("IfcRelDefinesByProperties", "IfcRelDefines", attr("RelatedObjects"), attr("RelatingPropertyDefinition")))
	c.Define(def("IfcRelDefinesByType", "IfcRelDefines", attr("RelatedObjects"), attr("RelatingType")))

	// properties
	c.Define(def("IfcPropertyDefinition", "IfcRoot").inverse(until("HasAssociations", schema.IFC2x2)))
	c.Define(def("IfcPropertySetDefinition", "IfcPropertyDefinition"))
	c.Define(def("IfcPropertySet", "IfcPropertySetDefinition", attr("HasProperties")))
	c.Define(def("IfcProperty", "", attr("Name"), attr("Description")))
	c.Define(def("IfcSimpleProperty", "IfcProperty"))
	c.Define(def("IfcPropertySingleValue", "IfcSimpleProperty", attr("NominalValue"), attr("Unit")))
	c.Define(def("IfcPropertyEnumeratedValue", "IfcSimpleProperty", attr("EnumerationValues"), attr("EnumerationReference")))

	// materials
	c.Define(def("IfcMaterial", "", attr("Name"), since("Description", schema.IFC4Obsolete), since("Category", schema.IFC4Obsolete)))
	c.Define(def("IfcMaterialLayer", "",
		attr("Material"), attr("LayerThickness"), attr("IsVentilated"),
		since("Name", schema.IFC4Obsolete), since("Description", schema.IFC4Obsolete),
		since("Category", schema.IFC4Obsolete), since("Priority", schema.IFC4Add2),
	))
	c.Define(def("IfcMaterialLayerSet", "", attr("MaterialLayers"), attr("LayerSetName"), since("Description", schema.IFC4Obsolete)))
	c.Define(def("IfcMaterialLayerSetUsage", "",
		attr("ForLayerSet"), attr("LayerSetDirection"), attr("DirectionSense"), attr("OffsetFromReferenceLine"),
		since("ReferenceExtent", schema.IFC4Obsolete),
	))
	c.Define(def("IfcMaterialProfile", "",
		attr("Name"), attr("Description"), attr("Material"), attr("Profile"),
		since("Priority", schema.IFC4Add2), attr("Category"),
	).since(schema.IFC4Obsolete))
	c.Define(def("IfcMaterialProfileSet", "",
		attr("Name"), attr("Description"), attr("MaterialProfiles"), attr("CompositeProfile"),
	).since(schema.IFC4Obsolete))
	c.Define(def("IfcMaterialProfileSetUsage", "",
		attr("ForProfileSet"), attr("CardinalPoint"), attr("ReferenceExtent"),
	).since(schema.IFC4Obsolete))
	c.Define(def("IfcMaterialList", "", attr("Materials")))

	// classification
	c.Define(def("IfcClassification", "",
		attr("Source"), attr("Edition"), attr("EditionDate"), attr("Name"),
		since("Description", schema.IFC4Obsolete),
		Attr{"Location", schema.IFC4Obsolete, schema.IFC4x2}, since("Specification", schema.IFC4x3RC1),
		since("ReferenceTokens", schema.IFC4Obsolete),
	))
	c.Define(def("IfcClassificationReference", "",
		attr("Location"), until("ItemReference", schema.IFC2x3TC1), since("Identification", schema.IFC4Obsolete),
		attr("Name"), attr("ReferencedSource"),
		since("Description", schema.IFC4Obsolete), since("Sort", schema.IFC4Obsolete),
	))

	// placement and representation
	c.Define(def("IfcCartesianPoint", "", attr("Coordinates")))
	c.Define(def("IfcDirection", "", attr("DirectionRatios")))
	c.Define(def("IfcAxis2Placement3D", "", attr("Location"), attr("Axis"), attr("RefDirection")))
	c.Define(def("IfcLocalPlacement", "", attr("PlacementRelTo"), attr("RelativePlacement")))
	c.Define(def("IfcProductDefinitionShape", "", attr("Name"), attr("Description"), attr("Representations")))
	c.Define(def("IfcShapeRepresentation", "",
		attr("ContextOfItems"), attr("RepresentationIdentifier"), attr("RepresentationType"), attr("Items"),
	))

	c.DefineInverse(
		inverse("IfcRelAggregates", "RelatingObject", "IsDecomposedBy"),
		inverse("IfcRelAggregates", "RelatedObjects", "Decomposes"),
		inverseIn("IfcRelNests", "RelatingObject", "IsDecomposedBy", first, schema.IFC2x3TC1),
		inverseIn("IfcRelNests", "RelatedObjects", "Decomposes", first, schema.IFC2x3TC1),
		inverseIn("IfcRelNests", "RelatingObject", "IsNestedBy", schema.IFC4Obsolete, last),
		inverseIn("IfcRelNests", "RelatedObjects", "Nests", schema.IFC4Obsolete, last),
		inverse("IfcRelContainedInSpatialStructure", "RelatingStructure", "ContainsElements"),
		inverse("IfcRelContainedInSpatialStructure", "RelatedElements", "ContainedInStructure"),
		inverse("IfcRelAssociates", "RelatedObjects", "HasAssociations"),
		inverse("IfcRelAssigns", "RelatedObjects", "HasAssignments"),
		inverse("IfcRelAssignsToGroup", "RelatingGroup", "IsGroupedBy"),
		inverse("IfcRelDefinesByProperties", "RelatedObjects", "IsDefinedBy"),
		inverseIn("IfcRelDefinesByType", "RelatedObjects", "IsDefinedBy", first, schema.IFC2x3TC1),
		inverseIn("IfcRelDefinesByType", "RelatingType", "ObjectTypeOf", first, schema.IFC2x3TC1),
		inverseIn("IfcRelDefinesByType", "RelatedObjects", "IsTypedBy", schema.IFC4Obsolete, last),
		inverseIn("IfcRelDefinesByType", "RelatingType", "Types", schema.IFC4Obsolete, last),
	)
}
