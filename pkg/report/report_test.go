package report_test

import (
	"bytes"

	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/logging/logrusl"

	me "github.com/mandelsoft/ifcimport/pkg/report"
)

type listener struct {
	list []me.Diagnostic
}

func (l *listener) Diagnostic(d me.Diagnostic) {
	l.list = append(l.list, d)
}

var _ = Describe("report", func() {
	var buf *bytes.Buffer
	var ctx logging.Context

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		ctx = logrusl.Human().WithWriter(buf).New()
	})

	It("counts and logs diagnostics", func() {
		l := &listener{}
		r := me.New(ctx.Logger(), l)
		r.Warn(4, "IfcWall", "duplicate geometry for %s", "W-01")
		r.Error(5, "IfcSlab", "creation failed")
		r.Info(0, "", "import started")

		Expect(r.Errors()).To(Equal(1))
		Expect(r.Warnings()).To(Equal(1))
		Expect(r.Count(me.INFO)).To(Equal(1))
		Expect(r.ForEntity(4)).To(ConsistOf(me.Diagnostic{me.WARNING, 4, "IfcWall", "duplicate geometry for W-01"}))
		Expect(l.list).To(HaveLen(3))

		Expect(buf.String()).To(ContainSubstring("duplicate geometry for W-01"))
		Expect(buf.String()).To(ContainSubstring("creation failed"))
	})

	It("reports once", func() {
		r := me.New(nil)
		Expect(r.Once("excluded:IfcSpace", me.INFO, 7, "IfcSpace", "excluded")).To(BeTrue())
		Expect(r.Once("excluded:IfcSpace", me.INFO, 8, "IfcSpace", "excluded")).To(BeFalse())
		Expect(r.Diagnostics()).To(HaveLen(1))
	})

	It("writes a summary", func() {
		r := me.New(nil)
		r.Error(5, "IfcSlab", "creation failed")
		r.Warn(0, "", "several projects")
		r.Info(1, "IfcProject", "processed")

		out := &bytes.Buffer{}
		MustBeSuccessful(r.Write(out))
		Expect(out.String()).To(Equal("errors: 1, warnings: 1\n  warning: several projects\n  error: #5(IfcSlab): creation failed\n"))
	})
})
