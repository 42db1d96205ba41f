package ifcfile_test

import (
	"archive/zip"
	"bytes"

	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	me "github.com/mandelsoft/ifcimport/pkg/ifcfile"
	"github.com/mandelsoft/ifcimport/pkg/schema"
)

func zipped(entries map[string][]byte) []byte {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for n, data := range entries {
		f := Must(w.Create(n))
		Must(f.Write(data))
	}
	MustBeSuccessful(w.Close())
	return buf.Bytes()
}

var _ = Describe("open", func() {
	var fs vfs.FileSystem
	var step []byte

	BeforeEach(func() {
		fs = memoryfs.New()
		step = Must(vfs.ReadFile(osfs.OsFs, "testdata/simple.ifc"))
	})

	It("detects formats", func() {
		Expect(me.DetectFormat("a/b.IFC")).To(Equal(me.FORMAT_STEP))
		Expect(me.DetectFormat("b.ifcXML")).To(Equal(me.FORMAT_XML))
		Expect(me.DetectFormat("b.ifczip")).To(Equal(me.FORMAT_ZIP))
		_, err := me.DetectFormat("b.dwg")
		Expect(err).To(MatchError(me.ErrUnknownFormat))
	})

	It("reads from a virtual filesystem", func() {
		MustBeSuccessful(vfs.WriteFile(fs, "model.ifc", step, 0o644))
		m := Must(me.Open("model.ifc", fs))
		Expect(m.Schema()).To(Equal(schema.IFC2x3))
		Expect(m.Name()).To(Equal("model.ifc"))
	})

	It("reads ZIP containers", func() {
		MustBeSuccessful(vfs.WriteFile(fs, "model.ifczip", zipped(map[string][]byte{"inner/model.ifc": step}), 0o644))
		m := Must(me.Open("model.ifczip", fs))
		Expect(m.Schema()).To(Equal(schema.IFC2x3))
		Expect(m.Name()).To(Equal("model.ifc"))
		Expect(m.Instance(4).Type()).To(Equal("IfcWallStandardCase"))
	})

	It("rejects ZIP containers with several entries", func() {
		MustBeSuccessful(vfs.WriteFile(fs, "model.ifczip", zipped(map[string][]byte{"a.ifc": step, "b.ifc": step}), 0o644))
		_, err := me.Open("model.ifczip", fs)
		Expect(err).To(HaveOccurred())
	})

	It("rejects ZIP containers with unsupported entries", func() {
		MustBeSuccessful(vfs.WriteFile(fs, "model.ifczip", zipped(map[string][]byte{"a.txt": step}), 0o644))
		_, err := me.Open("model.ifczip", fs)
		Expect(err).To(MatchError(me.ErrUnknownFormat))
	})
})
