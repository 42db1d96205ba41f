package host_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	me "github.com/mandelsoft/ifcimport/pkg/host"
)

const eps = 1e-9

var _ = Describe("geometry", func() {
	rotated := me.NewTransform(me.Vector{1, 2, 3}, nil, &me.Vector{0, 1, 0})

	It("creates orthonormal transforms", func() {
		Expect(rotated.X).To(Equal(me.Vector{0, 1, 0}))
		Expect(rotated.Y).To(Equal(me.Vector{-1, 0, 0}))
		Expect(rotated.Z).To(Equal(me.Vector{0, 0, 1}))
		Expect(rotated.Apply(me.Vector{1, 0, 0})).To(Equal(me.Vector{1, 3, 3}))
	})

	It("inverts transforms", func() {
		Expect(rotated.Multiply(rotated.Inverse()).AlmostEqual(me.Identity, eps)).To(BeTrue())
		Expect(rotated.Inverse().Multiply(rotated).AlmostEqual(me.Identity, eps)).To(BeTrue())
	})

	It("clones geometry into another placement", func() {
		g := me.NewGeometry(rotated, me.Shape{Source: 4, Representation: "Body", Transform: me.Identity})
		c := g.Clone(me.NewTransform(me.Vector{1, 0, 0}, nil, nil))
		Expect(c.Shapes).To(HaveLen(1))
		Expect(c.Shapes[0].Transform.Origin).To(Equal(me.Vector{0, 2, 3}))
		Expect(c.Placement.Multiply(c.Shapes[0].Transform).AlmostEqual(rotated, eps)).To(BeTrue())
		Expect(g.Shapes[0].Transform).To(Equal(me.Identity))
	})

	It("appends geometry", func() {
		g := me.NewGeometry(me.Identity)
		Expect(g.IsEmpty()).To(BeTrue())
		g.Append(me.NewGeometry(rotated, me.Shape{Source: 4, Transform: me.Identity}))
		g.Append(nil)
		Expect(g.Shapes).To(HaveLen(1))
		Expect(g.Shapes[0].Transform.AlmostEqual(rotated, eps)).To(BeTrue())
	})
})
