package utils_test

import (
	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	me "github.com/mandelsoft/ifcimport/pkg/utils"
)

type spec struct {
	Kind     string `json:"kind"`
	Category string `json:"category"`
}

var _ = Describe("spec digest", func() {
	It("ignores field order", func() {
		a := Must(me.SpecDigest(&spec{Kind: "Shape", Category: "IfcWall"}))
		b := Must(me.SpecDigest(map[string]string{"category": "IfcWall", "kind": "Shape"}))
		Expect(a).To(Equal(b))
		Expect(a).To(HaveLen(64))
	})

	It("distinguishes content", func() {
		a := me.MustSpecDigest(&spec{Kind: "Shape", Category: "IfcWall"})
		b := me.MustSpecDigest(&spec{Kind: "Shape", Category: "IfcSlab"})
		Expect(a).NotTo(Equal(b))
	})

	It("digests raw data as it is", func() {
		Expect(me.MustSpecDigest("abc")).To(Equal(me.MustSpecDigest([]byte("abc"))))
	})

	It("handles nil", func() {
		var s *spec
		Expect(me.MustSpecDigest(s)).To(Equal(""))
	})

	It("reports unserializable specs", func() {
		_, err := me.SpecDigest(map[string]interface{}{"f": func() {}})
		Expect(err).To(HaveOccurred())
	})
})
