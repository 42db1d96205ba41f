package importer

import (
	"fmt"

	"github.com/mandelsoft/ifcimport/pkg/host"
	"github.com/mandelsoft/ifcimport/pkg/ifcfile"
)

type CartesianPoint struct {
	EntityBase
}

func (p *CartesianPoint) Process(s *Session) Result {
	if _, ok := s.Point(p.handle); !ok {
		return Failed(fmt.Errorf("%w Coordinates", ErrMissingAttribute))
	}
	return Imported
}

func (p *CartesianPoint) Vector(s *Session) host.Vector {
	v, _ := s.Point(p.handle)
	return v
}

type Direction struct {
	EntityBase
}

func (d *Direction) Process(s *Session) Result {
	if _, ok := s.Direction(d.handle); !ok {
		return Failed(fmt.Errorf("%w DirectionRatios", ErrMissingAttribute))
	}
	return Imported
}

func (d *Direction) Vector(s *Session) host.Vector {
	v, _ := s.Direction(d.handle)
	return v
}

type Axis2Placement3D struct {
	EntityBase
	location *CartesianPoint
	axis     *Direction
	ref      *Direction
}

func (a *Axis2Placement3D) Process(s *Session) Result {
	h := a.handle
	var r Result
	a.location, r = MaterializeAs[*CartesianPoint](s, s.Ref(h, "Location"), "IfcCartesianPoint")
	if !r.IsImported() {
		return Failed(fmt.Errorf("%w Location", ErrMissingAttribute))
	}
	a.axis, _ = MaterializeAs[*Direction](s, s.Ref(h, "Axis"), "IfcDirection")
	a.ref, _ = MaterializeAs[*Direction](s, s.Ref(h, "RefDirection"), "IfcDirection")
	return Imported
}

func (a *Axis2Placement3D) Transform(s *Session) host.Transform {
	if t, ok := s.placements[a.id]; ok {
		return t
	}
	var axis, ref *host.Vector
	if a.axis != nil {
		v := a.axis.Vector(s)
		axis = &v
	}
	if a.ref != nil {
		v := a.ref.Vector(s)
		ref = &v
	}
	t := host.NewTransform(a.location.Vector(s), axis, ref)
	s.placements[a.id] = t
	return t
}

// LocalPlacement is a placement relative to another placement.
type LocalPlacement struct {
	EntityBase
	relTo    *LocalPlacement
	relative *Axis2Placement3D
}

func (p *LocalPlacement) Process(s *Session) Result {
	h := p.handle
	p.relTo, _ = MaterializeAs[*LocalPlacement](s, s.Ref(h, "PlacementRelTo"), "IfcLocalPlacement")
	p.relative, _ = MaterializeAs[*Axis2Placement3D](s, s.Ref(h, "RelativePlacement"), "IfcAxis2Placement3D")
	return Imported
}

// Transform provides the absolute placement. A cyclic placement
// chain is cut at the first repetition.
func (p *LocalPlacement) Transform(s *Session) host.Transform {
	if t, ok := s.placements[p.id]; ok {
		return t
	}
	s.placements[p.id] = host.Identity
	t := host.Identity
	if p.relative != nil {
		t = p.relative.Transform(s)
	}
	if p.relTo != nil {
		t = p.relTo.Transform(s).Multiply(t)
	}
	s.placements[p.id] = t
	return t
}

////////////////////////////////////////////////////////////////////////////////
// dedup caches

// Point provides the coordinates of a cartesian point.
func (s *Session) Point(h ifcfile.Handle) (host.Vector, bool) {
	return s.vector(s.points, h, "Coordinates")
}

// Direction provides the ratios of a direction.
func (s *Session) Direction(h ifcfile.Handle) (host.Vector, bool) {
	return s.vector(s.directions, h, "DirectionRatios")
}

func (s *Session) vector(cache map[int]host.Vector, h ifcfile.Handle, attr string) (host.Vector, bool) {
	if v, ok := cache[h.StepId()]; ok {
		return v, true
	}
	c := s.Reals(h, attr)
	if len(c) == 0 {
		return host.Vector{}, false
	}
	var v host.Vector
	copy(v[:], c)
	cache[h.StepId()] = v
	return v, true
}
