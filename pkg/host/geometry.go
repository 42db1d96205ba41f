package host

import (
	"math"
)

type Vector [3]float64

func (v Vector) Add(o Vector) Vector {
	return Vector{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vector) Scale(f float64) Vector {
	return Vector{v[0] * f, v[1] * f, v[2] * f}
}

func (v Vector) Dot(o Vector) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

func (v Vector) Cross(o Vector) Vector {
	return Vector{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

func (v Vector) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector, or the zero vector
// for a zero length vector.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l == 0 {
		return Vector{}
	}
	return v.Scale(1 / l)
}

// Transform is a rigid transformation given by an origin and
// orthonormal axes.
type Transform struct {
	Origin Vector `json:"origin"`
	X      Vector `json:"x"`
	Y      Vector `json:"y"`
	Z      Vector `json:"z"`
}

var Identity = Transform{
	X: Vector{1, 0, 0},
	Y: Vector{0, 1, 0},
	Z: Vector{0, 0, 1},
}

// NewTransform creates a transform from an origin, the z axis and
// a reference direction for the x axis. Missing axes are defaulted.
func NewTransform(origin Vector, axis, ref *Vector) Transform {
	z := Vector{0, 0, 1}
	if axis != nil && axis.Length() > 0 {
		z = axis.Normalize()
	}
	x := Vector{1, 0, 0}
	if ref != nil && ref.Length() > 0 {
		x = *ref
	} else if math.Abs(z.Dot(x)) > 0.999 {
		x = Vector{0, 0, -1}
	}
	// project x into the plane orthogonal to z
	x = x.Sub(z.Scale(x.Dot(z))).Normalize()
	return Transform{Origin: origin, X: x, Y: z.Cross(x), Z: z}
}

func (t Transform) Apply(p Vector) Vector {
	return t.Origin.Add(t.ApplyVector(p))
}

func (t Transform) ApplyVector(v Vector) Vector {
	return t.X.Scale(v[0]).Add(t.Y.Scale(v[1])).Add(t.Z.Scale(v[2]))
}

// Multiply returns t*o, first applying o and then t.
func (t Transform) Multiply(o Transform) Transform {
	return Transform{
		Origin: t.Apply(o.Origin),
		X:      t.ApplyVector(o.X),
		Y:      t.ApplyVector(o.Y),
		Z:      t.ApplyVector(o.Z),
	}
}

func (t Transform) Inverse() Transform {
	// the inverse rotation is the transposed axis matrix
	r := Transform{
		X: Vector{t.X[0], t.Y[0], t.Z[0]},
		Y: Vector{t.X[1], t.Y[1], t.Z[1]},
		Z: Vector{t.X[2], t.Y[2], t.Z[2]},
	}
	r.Origin = r.ApplyVector(t.Origin).Scale(-1)
	return r
}

func (t Transform) AlmostEqual(o Transform, eps float64) bool {
	for _, p := range [][2]Vector{{t.Origin, o.Origin}, {t.X, o.X}, {t.Y, o.Y}, {t.Z, o.Z}} {
		if p[0].Sub(p[1]).Length() > eps {
			return false
		}
	}
	return true
}

// Shape references a shape representation of an entity.
// The transform is relative to the placement of the geometry.
type Shape struct {
	Source         int       `json:"source"`
	Representation string    `json:"representation,omitempty"`
	Transform      Transform `json:"transform"`
}

// Geometry describes the geometry of an element by shape references
// placed relative to the element placement.
// Tessellation is done by the host.
type Geometry struct {
	Placement Transform `json:"placement"`
	Shapes    []Shape   `json:"shapes,omitempty"`
}

func NewGeometry(placement Transform, shapes ...Shape) *Geometry {
	return &Geometry{Placement: placement, Shapes: shapes}
}

func (g *Geometry) IsEmpty() bool {
	return g == nil || len(g.Shapes) == 0
}

func (g *Geometry) Copy() *Geometry {
	if g == nil {
		return nil
	}
	c := *g
	c.Shapes = append([]Shape(nil), g.Shapes...)
	return &c
}

// Clone provides the shapes of the geometry re-expressed relative
// to another placement.
func (g *Geometry) Clone(into Transform) *Geometry {
	r := &Geometry{Placement: into}
	if g == nil {
		return r
	}
	rel := into.Inverse().Multiply(g.Placement)
	for _, s := range g.Shapes {
		s.Transform = rel.Multiply(s.Transform)
		r.Shapes = append(r.Shapes, s)
	}
	return r
}

// Append adds the shapes of another geometry, re-expressed relative
// to the placement of this geometry.
func (g *Geometry) Append(o *Geometry) {
	if o.IsEmpty() {
		return
	}
	g.Shapes = append(g.Shapes, o.Clone(g.Placement).Shapes...)
}
