package progress_test

import (
	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	me "github.com/mandelsoft/ifcimport/pkg/progress"
)

var _ = Describe("progress", func() {
	It("counts", func() {
		c := me.NewCounter()
		c.Pass(2)
		c.Processed("IfcWall")
		c.Processed("IfcWall")
		c.Created("shape")
		c.Created("container")
		c.Diagnostic("warning")

		Expect(c.CurrentPass()).To(Equal(2))
		Expect(c.ProcessedCount("IfcWall")).To(Equal(2))
		Expect(c.ProcessedCount("IfcSlab")).To(Equal(0))
		Expect(c.TotalCreated()).To(Equal(2))
		Expect(c.DiagnosticCount("warning")).To(Equal(1))
	})

	It("forwards to multiple sinks", func() {
		a := me.NewCounter()
		b := me.NewCounter()
		m := me.Multi(a, nil, b)
		m.Created("shape")
		Expect(a.CreatedCount("shape")).To(Equal(1))
		Expect(b.CreatedCount("shape")).To(Equal(1))

		Expect(me.Multi()).To(Equal(me.Nop))
		Expect(me.Multi(nil, a)).To(BeIdenticalTo(a))
	})

	It("exports prometheus metrics", func() {
		reg := prometheus.NewRegistry()
		m := me.NewMetrics(reg)
		m.Pass(3)
		m.Processed("IfcWall")
		m.Created("shape")
		m.Created("shape")
		m.Diagnostic("error")
		families := Must(reg.Gather())
		names := []string{}
		for _, f := range families {
			names = append(names, f.GetName())
		}
		Expect(names).To(ConsistOf(
			"ifcimport_pass",
			"ifcimport_entities_processed_total",
			"ifcimport_elements_created_total",
			"ifcimport_diagnostics_total",
		))
		Expect(Must(testutil.GatherAndCount(reg, "ifcimport_elements_created_total"))).To(Equal(1))
	})
})
