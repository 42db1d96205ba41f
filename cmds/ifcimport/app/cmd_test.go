package app_test

import (
	"bytes"
	"strings"

	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"

	"github.com/mandelsoft/ifcimport/cmds/ifcimport/app"
	"github.com/mandelsoft/ifcimport/pkg/testutils"
)

var _ = Describe("ifcimport", func() {
	var fs vfs.FileSystem
	var buf *bytes.Buffer

	BeforeEach(func() {
		fs = Must(testutils.Fixtures("../../../pkg/ifcfile/testdata"))
		buf = bytes.NewBuffer(nil)
	})

	AfterEach(func() {
		vfs.Cleanup(fs)
	})

	command := func(args ...string) *cobra.Command {
		cmd := app.New(fs)
		cmd.SetOut(buf)
		cmd.SetErr(bytes.NewBuffer(nil))
		cmd.SetArgs(args)
		return cmd
	}

	It("shows the schema", func() {
		MustBeSuccessful(command("schema", "/testdata/simple.ifc").Execute())
		Expect(buf.String()).To(HavePrefix("/testdata/simple.ifc: IFC2x3 ("))
	})

	It("imports into memory", func() {
		MustBeSuccessful(command("import", "/testdata/simple.ifc").Execute())
		Expect(buf.String()).To(ContainSubstring("errors: 0, warnings: 0\n"))
		Expect(buf.String()).To(ContainSubstring("4 elements\n"))
	})

	It("imports into a document and lists it", func() {
		MustBeSuccessful(command("import", "/testdata/simple.ifc", "-d", "/doc", "--events", "--metrics", "/metrics.txt").Execute())
		Expect(strings.Count(buf.String(), "stored ")).To(Equal(4))

		metrics := string(Must(vfs.ReadFile(fs, "/metrics.txt")))
		Expect(metrics).To(ContainSubstring(`ifcimport_elements_created_total{kind="Shape"} 1`))

		buf.Reset()
		MustBeSuccessful(command("list", "/doc", "--kind", "shape").Execute())
		Expect(strings.Split(strings.TrimSpace(buf.String()), "\n")).To(HaveLen(1))
		Expect(buf.String()).To(ContainSubstring("IfcWallStandardCase"))
	})

	It("rejects invalid categories", func() {
		Expect(command("import", "/testdata/simple.ifc", "-x", "Wall").Execute()).NotTo(Succeed())
	})

	It("fails for missing inputs", func() {
		Expect(command("import", "/missing.ifc").Execute()).NotTo(Succeed())
	})
})
