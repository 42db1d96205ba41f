package importer

import (
	"github.com/mandelsoft/ifcimport/pkg/host"
	"github.com/mandelsoft/ifcimport/pkg/schema"
)

// Project is the root of the object tree.
// Units and representation contexts are not imported.
type Project struct {
	ObjectDefinitionBase
}

func (p *Project) Create(s *Session, doc host.Document) (host.ElementId, error) {
	return s.createContainer(doc, p, host.KIND_PROJECT, nil, p.composed)
}

////////////////////////////////////////////////////////////////////////////////

// Product is the base for all entities with a placement
// and a shape representation.
type Product struct {
	ObjectDefinitionBase
	placement *LocalPlacement
}

func (p *Product) Process(s *Session) Result {
	return p.processProduct(s)
}

func (p *Product) processProduct(s *Session) Result {
	if r := p.processDefinition(s); !r.IsImported() {
		return r
	}
	p.product = true
	if pl, r := MaterializeAs[*LocalPlacement](s, s.Ref(p.handle, "ObjectPlacement"), "IfcLocalPlacement"); r.IsImported() {
		p.placement = pl
	}
	return Imported
}

// Placement provides the absolute placement of the product.
func (p *Product) Placement(s *Session) host.Transform {
	if p.placement == nil {
		return host.Identity
	}
	return p.placement.Transform(s)
}

// ProductGeometry provides the geometry given by the shape
// representations of the product.
func (p *Product) ProductGeometry(s *Session) *host.Geometry {
	g := host.NewGeometry(p.Placement(s))
	rep := s.Ref(p.handle, "Representation")
	if rep == nil {
		return g
	}
	for _, r := range s.Refs(rep, "Representations") {
		g.Shapes = append(g.Shapes, host.Shape{
			Source:         r.StepId(),
			Representation: s.Text(r, "RepresentationIdentifier"),
			Transform:      host.Identity,
		})
	}
	return g
}

////////////////////////////////////////////////////////////////////////////////

// Spatial is a spatial structure element. Contained elements are
// composed children.
type Spatial struct {
	Product
}

func (p *Spatial) Process(s *Session) Result {
	if r := p.processProduct(s); !r.IsImported() {
		return r
	}
	for _, rel := range s.Refs(p.handle, "ContainsElements") {
		p.addComposed(s, s.ProcessRelatedObjects(p, rel, "RelatedElements")...)
	}
	return Imported
}

func (p *Spatial) Create(s *Session, doc host.Document) (host.ElementId, error) {
	return s.createContainer(doc, p, host.KIND_SPATIAL, p.ProductGeometry(s), p.composed)
}

type Space struct {
	Spatial
}

////////////////////////////////////////////////////////////////////////////////

// Element is a physical building element.
type Element struct {
	Product
}

func (e *Element) Create(s *Session, doc host.Document) (host.ElementId, error) {
	return s.createContainer(doc, e, host.KIND_SHAPE, e.ProductGeometry(s), e.composed)
}

// ElementAssembly is an element composed of other elements. It is
// created as container duplicating the geometry of its parts.
type ElementAssembly struct {
	Element
}

func (e *ElementAssembly) CanContainRelatedEntities(s *Session) bool {
	return true
}

func (e *ElementAssembly) Create(s *Session, doc host.Document) (host.ElementId, error) {
	return s.createContainer(doc, e, host.KIND_CONTAINER, e.ProductGeometry(s), e.composed)
}

////////////////////////////////////////////////////////////////////////////////

// TypeObject describes the type of object occurrences.
// Before IFC2x3 type objects are property definitions without
// decomposition and assignment relations.
type TypeObject struct {
	ObjectDefinitionBase
}

func (t *TypeObject) carriesObjectRelations(s *Session) bool {
	return s.SchemaVersionAtLeast(schema.IFC2x3)
}

func (t *TypeObject) Process(s *Session) Result {
	if r := t.processDefinition(s); !r.IsImported() {
		return r
	}
	for _, p := range MaterializeAll[*PropertySet](s, s.Refs(t.handle, "HasPropertySets"), "") {
		t.addPropertySet(p)
	}
	return Imported
}

func (t *TypeObject) Create(s *Session, doc host.Document) (host.ElementId, error) {
	return s.createHostElement(doc, t, host.KIND_TYPE, nil)
}
