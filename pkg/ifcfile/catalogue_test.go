package ifcfile_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	me "github.com/mandelsoft/ifcimport/pkg/ifcfile"
	"github.com/mandelsoft/ifcimport/pkg/schema"
)

var _ = Describe("catalogue", func() {
	c := me.Default

	It("canonicalizes type names", func() {
		Expect(c.Canonical("IFCWALLSTANDARDCASE")).To(Equal("IfcWallStandardCase"))
		Expect(c.Canonical("IfcUnknownThing")).To(Equal("IFCUNKNOWNTHING"))
	})

	It("provides inherited attributes in order", func() {
		Expect(c.Attributes("IfcWall", schema.IFC2x3)).To(Equal([]string{
			"GlobalId", "OwnerHistory", "Name", "Description", "ObjectType", "ObjectPlacement", "Representation", "Tag",
		}))
		Expect(c.Attributes("IfcWall", schema.IFC4)).To(HaveLen(9))
		Expect(c.AttributeIndex("IfcWall", "PredefinedType", schema.IFC4)).To(Equal(8))
		Expect(c.AttributeIndex("IfcWall", "PredefinedType", schema.IFC2x3)).To(Equal(-1))
	})

	It("gates renamed attributes", func() {
		Expect(c.AttributeIndex("IfcClassificationReference", "ItemReference", schema.IFC2x3)).To(Equal(1))
		Expect(c.AttributeIndex("IfcClassificationReference", "Identification", schema.IFC2x3)).To(Equal(-1))
		Expect(c.AttributeIndex("IfcClassificationReference", "Identification", schema.IFC4)).To(Equal(1))
	})

	It("shifts positions by addendum attributes", func() {
		Expect(c.AttributeIndex("IfcMaterialProfile", "Category", schema.IFC4)).To(Equal(5))
		Expect(c.AttributeIndex("IfcMaterialProfile", "Category", schema.IFC4Add1Obsolete)).To(Equal(4))
	})

	It("uses version dependent supertypes", func() {
		Expect(c.IsSubtypeOf("IfcWallType", "IfcObjectDefinition", schema.IFC2x3)).To(BeTrue())
		Expect(c.IsSubtypeOf("IfcWallType", "IfcObjectDefinition", schema.IFC2x2)).To(BeFalse())
		Expect(c.HasInverse("IfcWallType", "IsDecomposedBy", schema.IFC2x3)).To(BeTrue())
		Expect(c.HasInverse("IfcWallType", "IsDecomposedBy", schema.IFC2x2)).To(BeFalse())
		Expect(c.Supertype("IfcProject", schema.IFC4)).To(Equal("IfcContext"))
		Expect(c.Supertype("IfcProject", schema.IFC2x3)).To(Equal("IfcObject"))
	})

	It("keeps project layout across versions", func() {
		Expect(c.Attributes("IfcProject", schema.IFC2x3)).To(Equal(c.Attributes("IfcProject", schema.IFC4)))
	})
})
