package config_test

import (
	"os"

	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-test/deep"
	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	me "github.com/mandelsoft/ifcimport/pkg/config"
	"github.com/mandelsoft/ifcimport/pkg/importer"
)

const CONFIG = `
import:
  exclude:
  - IfcSpace
  - ${TEST_IFCIMPORT_EXCLUDE:-IfcOpeningElement}
  plainPropertyNames: true
document: ${TEST_IFCIMPORT_DOC}
log:
  level: debug
  debug:
  - ifcimport/importer
`

func setenv(name, value string) {
	MustBeSuccessful(os.Setenv(name, value))
	DeferCleanup(os.Unsetenv, name)
}

var _ = Describe("config", func() {
	var fs vfs.FileSystem

	BeforeEach(func() {
		fs = memoryfs.New()
		MustBeSuccessful(vfs.WriteFile(fs, "/config.yaml", []byte(CONFIG), 0o600))
	})

	It("provides defaults", func() {
		c := Must(me.Load(""))
		Expect(c.Import).To(Equal(importer.DefaultOptions()))
		Expect(c.Log.Level).To(Equal("info"))
		Expect(c.S3.Region).To(Equal("us-east-1"))
	})

	It("reads a config file with environment substitution", func() {
		setenv("TEST_IFCIMPORT_DOC", "/tmp/doc")

		c := Must(me.Load("/config.yaml", fs))
		exp := &me.Config{
			Import: importer.Options{
				Exclude:                    []string{"IfcSpace", "IfcOpeningElement"},
				DuplicateContainerGeometry: true,
				PlainPropertyNames:         true,
			},
			Document: "/tmp/doc",
			Log: me.LogConfig{
				Level: "debug",
				Debug: []string{"ifcimport/importer"},
			},
			S3: me.S3Config{
				Region: "us-east-1",
			},
		}
		Expect(deep.Equal(c, exp)).To(BeNil())
	})

	It("applies environment overrides", func() {
		setenv("TEST_IFCIMPORT_EXCLUDE", "IfcSlab.ROOF")
		setenv("IFCIMPORT_IMPORT_DUPLICATECONTAINERGEOMETRY", "false")
		setenv("IFCIMPORT_S3_ENDPOINT", "http://localhost:9000")

		c := Must(me.Load("/config.yaml", fs))
		Expect(c.Import.Exclude).To(Equal([]string{"IfcSpace", "IfcSlab.ROOF"}))
		Expect(c.Import.DuplicateContainerGeometry).To(BeFalse())
		Expect(c.S3.Endpoint).To(Equal("http://localhost:9000"))
	})

	It("rejects invalid categories", func() {
		MustBeSuccessful(vfs.WriteFile(fs, "/bad.yaml", []byte("import:\n  exclude: [Wall]\n"), 0o600))
		_, err := me.Load("/bad.yaml", fs)
		Expect(err).To(HaveOccurred())
	})

	It("fails on missing files", func() {
		_, err := me.Load("/missing.yaml", fs)
		Expect(err).To(HaveOccurred())
	})
})
