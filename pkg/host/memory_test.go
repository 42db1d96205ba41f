package host_test

import (
	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	me "github.com/mandelsoft/ifcimport/pkg/host"
)

var _ = Describe("memory document", func() {
	var doc *me.MemoryDocument

	BeforeEach(func() {
		doc = me.NewMemoryDocument("test")
	})

	It("requires a transaction", func() {
		_, err := doc.CreateElement(me.KIND_SHAPE, "IfcWall", nil, 4)
		Expect(err).To(MatchError(me.ErrNoTransaction))
	})

	It("rejects nested transactions", func() {
		tx := Must(doc.Begin("import"))
		defer tx.Rollback()
		_, err := doc.Begin("other")
		Expect(err).To(MatchError(me.ErrTransactionActive))
	})

	It("commits elements", func() {
		tx := Must(doc.Begin("import"))
		id := Must(doc.CreateElement(me.KIND_SHAPE, "IfcWall", nil, 4))
		MustBeSuccessful(doc.SetParameter(id, "", "IfcName", me.StringValue("Wall"), 4))
		MustBeSuccessful(doc.SetParameter(id, "", "IfcName", me.StringValue("Wall 2"), 4))
		MustBeSuccessful(tx.Commit())
		MustBeSuccessful(tx.Rollback())

		e := Must(doc.LookupElement(id))
		Expect(e.Kind).To(Equal(me.KIND_SHAPE))
		Expect(e.Owner).To(Equal(4))
		Expect(e.Parameters).To(HaveLen(1))
		Expect(e.Parameter("IfcName").Text()).To(Equal("Wall 2"))
	})

	It("discards elements on rollback", func() {
		tx := Must(doc.Begin("import"))
		id := Must(doc.CreateElement(me.KIND_SHAPE, "IfcWall", nil, 4))
		Expect(Must(doc.Elements())).To(HaveLen(1))
		MustBeSuccessful(tx.Rollback())

		Expect(Must(doc.LookupElement(id))).To(BeNil())
		Expect(Must(doc.Elements())).To(BeEmpty())
	})

	It("modifies committed elements", func() {
		tx := Must(doc.Begin("first"))
		id := Must(doc.CreateElement(me.KIND_GROUP, "IfcGroup", nil, 7))
		MustBeSuccessful(tx.Commit())

		tx = Must(doc.Begin("second"))
		MustBeSuccessful(doc.SetParameter(id, "", "IfcName", me.StringValue("Group"), 7))
		MustBeSuccessful(tx.Rollback())
		Expect(Must(doc.LookupElement(id)).Parameters).To(BeEmpty())

		Expect(doc.SetParameter(id, "", "IfcName", me.StringValue("Group"), 7)).To(MatchError(me.ErrNoTransaction))
		tx = Must(doc.Begin("third"))
		Expect(doc.SetParameter("unknown", "", "IfcName", me.StringValue("Group"), 7)).To(MatchError(me.ErrUnknownElement))
		MustBeSuccessful(tx.Rollback())
	})
})
