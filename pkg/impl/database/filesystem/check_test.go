package filesystem_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/ifcimport/pkg/database"
	"github.com/mandelsoft/ifcimport/pkg/impl/database/filesystem"
)

var _ = Describe("database", func() {

	Context("name check", func() {
		It("names", func() {
			Expect(filesystem.CheckName("A")).To(BeTrue())
			Expect(filesystem.CheckName("Abc")).To(BeTrue())
			Expect(filesystem.CheckName("A12")).To(BeTrue())
			Expect(filesystem.CheckName("A-_12-")).To(BeTrue())
			Expect(filesystem.CheckName("2f1c7a10-0a3b-4f55-9d5c-6a8a1e6e1f00")).To(BeTrue())

			Expect(filesystem.CheckName("-A-_12-")).To(BeFalse())
			Expect(filesystem.CheckName("")).To(BeFalse())
			Expect(filesystem.CheckName("a/b")).To(BeFalse())
		})

		It("namespace", func() {
			Expect(filesystem.CheckNamespace("A")).To(BeTrue())
			Expect(filesystem.CheckNamespace("A-_12-")).To(BeTrue())
			Expect(filesystem.CheckNamespace("-A-_12-")).To(BeFalse())

			Expect(filesystem.CheckNamespace("a/A")).To(BeTrue())
			Expect(filesystem.CheckNamespace("a/A-_12-")).To(BeTrue())
			Expect(filesystem.CheckNamespace("a/-A-_12-")).To(BeFalse())
			Expect(filesystem.CheckNamespace("a/A/b")).To(BeTrue())
			Expect(filesystem.CheckNamespace("a//b")).To(BeFalse())
		})

		It("ids", func() {
			Expect(filesystem.CheckId(database.NewObjectId("Element", "model", "e1"))).To(Succeed())
			Expect(filesystem.CheckId(database.NewObjectId("Element", "", "e1"))).To(Succeed())
			Expect(filesystem.CheckId(database.NewObjectId("Element", "model", "../e1"))).NotTo(Succeed())
		})
	})
})
