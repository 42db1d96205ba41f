package importer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/ifcimport/pkg/host"
	me "github.com/mandelsoft/ifcimport/pkg/importer"
	"github.com/mandelsoft/ifcimport/pkg/ifcfile"
)

var _ = Describe("options", func() {
	It("validates categories", func() {
		opts := me.DefaultOptions()
		Expect(opts.DuplicateContainerGeometry).To(BeTrue())
		opts.Exclude = []string{"IfcWall", "ifcslab.ROOF", "IfcOpeningElement"}
		Expect(opts.Validate()).To(Succeed())

		opts.Exclude = []string{"IfcWall.SHEAR.X"}
		Expect(opts.Validate()).NotTo(Succeed())
		opts.Exclude = []string{"Wall"}
		Expect(opts.Validate()).NotTo(Succeed())
	})
})

var _ = Describe("parameter values", func() {
	DescribeTable("maps attribute values",
		func(v ifcfile.Value, exp host.ParameterValue) {
			p, ok := me.ParameterValue(v)
			Expect(ok).To(BeTrue())
			Expect(p).To(Equal(exp))
		},
		Entry("label", ifcfile.Typed("IFCLABEL", ifcfile.String("EI60")), host.StringValue("EI60")),
		Entry("boolean", ifcfile.Typed("IFCBOOLEAN", ifcfile.Enum("T")), host.BoolValue(true)),
		Entry("logical", ifcfile.Typed("IFCLOGICAL", ifcfile.Enum("F")), host.BoolValue(false)),
		Entry("integer", ifcfile.Typed("IFCINTEGER", ifcfile.Integer(3)), host.IntValue(3)),
		Entry("real", ifcfile.Typed("IFCLENGTHMEASURE", ifcfile.Real(2.5)), host.DoubleValue(2.5)),
		Entry("enum", ifcfile.Enum("NOTDEFINED"), host.StringValue("NOTDEFINED")),
	)

	It("rejects references", func() {
		_, ok := me.ParameterValue(ifcfile.Ref(3))
		Expect(ok).To(BeFalse())
	})
})
