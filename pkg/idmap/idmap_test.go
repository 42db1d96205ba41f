package idmap_test

import (
	"context"
	"path/filepath"
	"strings"

	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/ifcimport/pkg/host"

	me "github.com/mandelsoft/ifcimport/pkg/idmap"
)

func behaves(store func() me.Store) {
	It("records and looks up ids", func() {
		s := store()
		defer s.Close()

		_, ok := Must2(s.Lookup("src", "g1"))
		Expect(ok).To(BeFalse())

		MustBeSuccessful(s.Record("src", "g1", "e1"))
		MustBeSuccessful(s.Record("other", "g1", "e2"))
		id, ok := Must2(s.Lookup("src", "g1"))
		Expect(ok).To(BeTrue())
		Expect(id).To(Equal(host.ElementId("e1")))

		MustBeSuccessful(s.Record("src", "g1", "e3"))
		id, _ = Must2(s.Lookup("src", "g1"))
		Expect(id).To(Equal(host.ElementId("e3")))
	})
}

var _ = Describe("id mapping", func() {
	It("digests sources", func() {
		d1 := Must(me.Digest(strings.NewReader("ISO-10303-21;")))
		Expect(d1).To(HaveLen(64))
		Expect(Must(me.Digest(strings.NewReader("ISO-10303-21;")))).To(Equal(d1))
		Expect(Must(me.Digest(strings.NewReader("ISO-10303-21; ")))).NotTo(Equal(d1))

		fs := memoryfs.New()
		MustBeSuccessful(vfs.WriteFile(fs, "model.ifc", []byte("ISO-10303-21;"), 0o600))
		Expect(Must(me.DigestFile(fs, "model.ifc"))).To(Equal(d1))
	})

	Context("memory", func() {
		behaves(func() me.Store { return me.NewMemory() })
	})

	Context("sqlite", func() {
		behaves(func() me.Store {
			return Must(me.Open(context.Background(), filepath.Join(GinkgoT().TempDir(), "idmap.db")))
		})

		It("persists mappings", func() {
			path := filepath.Join(GinkgoT().TempDir(), "idmap.db")
			s := Must(me.Open(context.Background(), path))
			MustBeSuccessful(s.Record("src", "g1", "e1"))
			MustBeSuccessful(s.Close())

			s = Must(me.Open(context.Background(), path))
			defer s.Close()
			id, ok := Must2(s.Lookup("src", "g1"))
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(host.ElementId("e1")))
		})
	})

	It("rejects unknown drivers", func() {
		_, err := me.OpenSQL(context.Background(), "oracle", "x")
		Expect(err).To(HaveOccurred())
	})
})
