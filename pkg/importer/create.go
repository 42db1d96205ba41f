package importer

import (
	"strings"

	"github.com/mandelsoft/goutils/sliceutils"

	"github.com/mandelsoft/ifcimport/pkg/host"
)

// CreateElement creates the host element for an object definition.
// Type objects and composed children are created first. An entity is
// created at most once. If creation fails, the entity is marked as
// invalid for creation and never retried.
func (s *Session) CreateElement(doc host.Document, o ObjectDefinition) host.ElementId {
	d := o.definition()
	if !d.created.IsNone() || d.invalid {
		return d.created
	}
	switch d.state {
	case STATE_CREATED, STATE_CREATION_FAILED:
		return d.created
	case STATE_CREATING:
		log.Debug("cyclic composition reached {{entity}}", "entity", d)
		return host.NoElement
	}
	d.state = STATE_CREATING

	for _, t := range d.types {
		s.CreateElement(doc, t)
	}

	if o.CanContainRelatedEntities(s) {
		if id, ok := s.reuse(doc, o); ok {
			d.created = id
			d.state = STATE_CREATED
			return id
		}
	}

	id, err := o.Create(s, doc)
	if err == nil && !id.IsNone() {
		d.created = id
		err = o.CreateParameters(s, doc)
	}
	if err != nil {
		d.invalid = true
		d.state = STATE_CREATION_FAILED
		s.report.Error(d.id, d.typ, "creation failed: %s", err)
		return d.created
	}
	d.state = STATE_CREATED
	if !id.IsNone() {
		s.progress.Created(string(d.kind))
		if d.globalId != "" {
			if err := s.ids.Record(s.source, d.globalId, id); err != nil {
				s.report.Warn(d.id, d.typ, "cannot record id mapping: %s", err)
			}
		}
		log.Debug("created {{entity}} as {{element}}", "entity", d, "element", id)
	}
	return id
}

// reuse looks up a host element created for the entity by a
// former import of the same source. A reused container stands for
// its whole subtree: its children are not traversed and neither its
// sub elements nor its parameters are refreshed.
func (s *Session) reuse(doc host.Document, o ObjectDefinition) (host.ElementId, bool) {
	d := o.definition()
	if d.globalId == "" {
		return host.NoElement, false
	}
	id, ok, err := s.ids.Lookup(s.source, d.globalId)
	if err != nil {
		s.report.Warn(d.id, d.typ, "id mapping lookup failed: %s", err)
		return host.NoElement, false
	}
	if !ok {
		return host.NoElement, false
	}
	e, err := doc.LookupElement(id)
	if err != nil || e == nil {
		return host.NoElement, false
	}
	d.kind = e.Kind
	d.category = e.Category
	d.geometry = e.Geometry
	s.report.Info(d.id, d.typ, "reusing existing element %s", id)
	return id, true
}

// TraverseSubElements creates the given children of a container.
// If the container groups its sub elements, the geometry of the
// filtered children is cloned into the placement of the container.
func (s *Session) TraverseSubElements(doc host.Document, container ObjectDefinition, placement host.Transform, children []ObjectDefinition) (*host.Geometry, []host.ElementId) {
	var geom *host.Geometry
	if s.options.DuplicateContainerGeometry && container.CanContainRelatedEntities(s) && container.ContainerDuplicatesGeometry(s) {
		geom = host.NewGeometry(placement)
	}
	var ids []host.ElementId
	for _, c := range children {
		id := s.CreateElement(doc, c)
		if id.IsNone() {
			continue
		}
		ids = append(ids, id)
		if geom != nil && container.ContainerFilteredEntity(s, c) {
			geom.Append(c.definition().geometry)
		}
	}
	return geom, ids
}

// createContainer creates the children first and then the element
// for the container. If both the container and its sub elements
// provide geometry, both are kept.
func (s *Session) createContainer(doc host.Document, o ObjectDefinition, kind host.Kind, own *host.Geometry, children []ObjectDefinition) (host.ElementId, error) {
	d := o.definition()
	placement := host.Identity
	if own != nil {
		placement = own.Placement
	}
	sub, ids := s.TraverseSubElements(doc, o, placement, children)
	d.subElements = ids

	geom := own
	if !sub.IsEmpty() {
		if !own.IsEmpty() {
			s.report.Warn(d.id, d.typ, "container and sub elements provide geometry, both are kept")
			geom = own.Copy()
			geom.Append(sub)
		} else {
			geom = sub
		}
	}
	return s.createHostElement(doc, o, kind, geom)
}

func (s *Session) createHostElement(doc host.Document, o ObjectDefinition, kind host.Kind, geom *host.Geometry) (host.ElementId, error) {
	d := o.definition()
	d.kind = kind
	d.category = d.typ
	d.geometry = geom
	return doc.CreateElement(kind, d.category, geom, d.id)
}

////////////////////////////////////////////////////////////////////////////////

// CreateParameters sets the parameters of the created element.
func (d *ObjectDefinitionBase) CreateParameters(s *Session, doc host.Document) error {
	p := &parameters{doc: doc, id: d.created, category: d.category, source: d.id}

	p.text("IfcName", d.name)
	p.text("IfcDescription", d.description)
	p.text("IfcGUID", d.globalId)
	p.text("IfcExportAs", d.typ)
	p.text("IfcObjectType", d.objectType)
	p.text("IfcTag", d.tag)
	p.text("IfcPredefinedType", d.predefinedType)

	if d.material != nil {
		p.text("IfcMaterial", strings.Join(d.material.MaterialNames(), ";"))
	}

	var groups, systems []string
	for _, g := range d.groups {
		if g.Name() == "" {
			continue
		}
		if g.IsSystem() {
			systems = sliceutils.AppendUnique(systems, g.Name())
		} else {
			groups = sliceutils.AppendUnique(groups, g.Name())
		}
	}
	p.text("IfcGroup", strings.Join(groups, ";"))
	p.text("IfcSystem", strings.Join(systems, ";"))

	if len(d.types) > 0 {
		p.text("IfcType", d.types[0].Name())
	}
	if w := d.NestsWhole(s); w != nil {
		p.text("IfcNestedIn", w.GlobalId())
	}
	if len(d.subElements) > 0 {
		p.text("IfcSubElements", strings.Join(sliceutils.Transform(d.subElements, host.ElementId.String), ";"))
	}

	for _, ps := range d.psets {
		for _, prop := range ps.Properties() {
			if v, ok := prop.Value(); ok {
				p.set(ps.ParameterName(s, prop), v, prop.Id())
			}
		}
	}
	for _, a := range d.parameters {
		p.set(a.Name, a.Value, a.Source)
	}
	return p.err
}

// parameters sets parameters on an element until the first error.
type parameters struct {
	doc      host.Document
	id       host.ElementId
	category string
	source   int
	err      error
}

func (p *parameters) text(name, value string) {
	if value != "" {
		p.set(name, host.StringValue(value), p.source)
	}
}

func (p *parameters) set(name string, value host.ParameterValue, source int) {
	if p.err != nil {
		return
	}
	p.err = p.doc.SetParameter(p.id, p.category, name, value, source)
}
