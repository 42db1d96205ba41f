package schema_test

import (
	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	me "github.com/mandelsoft/ifcimport/pkg/schema"
)

var _ = Describe("schema versions", func() {
	Context("parse", func() {
		It("maps header identifiers", func() {
			Expect(Must(me.Parse("IFC2X3"))).To(Equal(me.IFC2x3))
			Expect(Must(me.Parse("ifc2x3_tc1"))).To(Equal(me.IFC2x3TC1))
			Expect(Must(me.Parse("'IFC4X3_ADD2'"))).To(Equal(me.IFC4x3Add2))
			Expect(Must(me.Parse("IFC2X2_FINAL"))).To(Equal(me.IFC2x2))
		})

		It("maps plain IFC4 to the newest dialect", func() {
			Expect(Must(me.Parse("IFC4"))).To(Equal(me.IFC4))
		})

		It("rejects unknown schemas", func() {
			_, err := me.Parse("IFC5")
			Expect(err).To(MatchError(me.ErrUnknownSchema))
		})
	})

	It("orders versions", func() {
		Expect(me.IFC4.AtLeast(me.IFC4Add2)).To(BeTrue())
		Expect(me.IFC2x3.AtLeast(me.IFC4)).To(BeFalse())
		Expect(me.Versions()).To(HaveLen(14))
		Expect(me.IFC4x1.String()).To(Equal("IFC4x1"))
	})

	Context("downgrade", func() {
		It("moves backwards inside the ambiguous tier", func() {
			t := me.NewTracker(me.IFC4)
			MustBeSuccessful(t.DowngradeTo(me.IFC4Add1Obsolete))
			Expect(t.Version()).To(Equal(me.IFC4Add1Obsolete))
			Expect(t.Detected()).To(Equal(me.IFC4))
			Expect(t.Downgraded()).To(BeTrue())
			Expect(t.AtLeast(me.IFC4Add2)).To(BeFalse())
		})

		It("rejects upgrades", func() {
			t := me.NewTracker(me.IFC4Add2)
			Expect(t.DowngradeTo(me.IFC4)).To(MatchError(me.ErrInvalidDowngrade))
			Expect(t.Version()).To(Equal(me.IFC4Add2))
		})

		It("rejects downgrades outside of the tier", func() {
			Expect(me.NewTracker(me.IFC4x3).DowngradeTo(me.IFC4)).To(MatchError(me.ErrInvalidDowngrade))
			Expect(me.NewTracker(me.IFC4).DowngradeTo(me.IFC2x3)).To(MatchError(me.ErrInvalidDowngrade))
		})

		It("provides the previous dialect", func() {
			t := me.NewTracker(me.IFC4)
			v, ok := t.Previous()
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(me.IFC4Add2))
			t = me.NewTracker(me.IFC4Obsolete)
			_, ok = t.Previous()
			Expect(ok).To(BeFalse())
		})
	})
})
