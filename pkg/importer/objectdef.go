package importer

import (
	"fmt"
	"sort"

	"github.com/mandelsoft/goutils/sliceutils"

	"github.com/mandelsoft/ifcimport/pkg/host"
	"github.com/mandelsoft/ifcimport/pkg/report"
)

// ObjectDefinition is an entity composable into the object tree
// which may be created as host element.
type ObjectDefinition interface {
	Entity

	// Create creates the host element. Entities not represented
	// in the host document return host.NoElement.
	Create(s *Session, doc host.Document) (host.ElementId, error)
	CreateParameters(s *Session, doc host.Document) error

	// CanContainRelatedEntities decides whether the entity may be
	// created as container for its related entities.
	CanContainRelatedEntities(s *Session) bool
	// ContainerDuplicatesGeometry decides whether a container
	// clones the geometry of its sub elements.
	ContainerDuplicatesGeometry(s *Session) bool
	// ContainerFilteredEntity decides whether a sub element
	// contributes to the geometry of the container.
	ContainerFilteredEntity(s *Session, e ObjectDefinition) bool

	// carriesObjectRelations decides whether decomposition and
	// assignment relations are defined for the entity.
	carriesObjectRelations(s *Session) bool

	definition() *ObjectDefinitionBase
}

type lazyRef struct {
	resolved bool
	id       int
}

// ObjectDefinitionBase provides the relations common to all
// object definitions.
type ObjectDefinitionBase struct {
	EntityBase
	self ObjectDefinition

	objectType     string
	predefinedType string
	tag            string
	product        bool

	composed   []ObjectDefinition
	decomposes int
	nested     bool
	nests      lazyRef

	groups     []GroupKind
	material   MaterialSelect
	psets      []*PropertySet
	types      []*TypeObject
	parameters []host.Parameter
	classified int

	kind        host.Kind
	category    string
	geometry    *host.Geometry
	subElements []host.ElementId
}

func (d *ObjectDefinitionBase) definition() *ObjectDefinitionBase {
	return d
}

func (d *ObjectDefinitionBase) ObjectType() string {
	return d.objectType
}

func (d *ObjectDefinitionBase) PredefinedType() string {
	return d.predefinedType
}

func (d *ObjectDefinitionBase) Tag() string {
	return d.tag
}

// ComposedObjectDefinitions provides the child entities ordered by id.
func (d *ObjectDefinitionBase) ComposedObjectDefinitions() []ObjectDefinition {
	return d.composed
}

// Decomposes looks up the parent this entity is composed into.
func (d *ObjectDefinitionBase) Decomposes(s *Session) ObjectDefinition {
	if d.decomposes == 0 {
		return nil
	}
	p, _ := s.Entity(d.decomposes).(ObjectDefinition)
	return p
}

// NestsWhole provides the entity nesting this one. The relation
// is resolved on first access and then looked up in the session.
func (d *ObjectDefinitionBase) NestsWhole(s *Session) ObjectDefinition {
	if !d.nests.resolved {
		d.nests.resolved = true
		if s.file.HasAttribute(d.handle, "Nests") {
			for _, rel := range s.Refs(d.handle, "Nests") {
				if w := s.ProcessRelatingObject(rel, "RelatingObject"); w != nil {
					d.nests.id = w.Id()
					break
				}
			}
		}
	}
	if d.nests.id == 0 {
		return nil
	}
	w, _ := s.Entity(d.nests.id).(ObjectDefinition)
	return w
}

func (d *ObjectDefinitionBase) AssignmentGroups() []GroupKind {
	return d.groups
}

func (d *ObjectDefinitionBase) MaterialSelect() MaterialSelect {
	return d.material
}

func (d *ObjectDefinitionBase) PropertySets() []*PropertySet {
	return d.psets
}

func (d *ObjectDefinitionBase) TypeObjects() []*TypeObject {
	return d.types
}

// AdditionalParameters provides the parameters accumulated from
// auxiliary relations.
func (d *ObjectDefinitionBase) AdditionalParameters() []host.Parameter {
	return d.parameters
}

// AddParameter adds or replaces an additional parameter.
func (d *ObjectDefinitionBase) AddParameter(name string, v host.ParameterValue) {
	for i, p := range d.parameters {
		if p.Name == name {
			d.parameters[i].Value = v
			return
		}
	}
	d.parameters = append(d.parameters, host.Parameter{Name: name, Value: v, Source: d.id})
}

// Geometry provides the geometry of the created host element.
func (d *ObjectDefinitionBase) Geometry() *host.Geometry {
	return d.geometry
}

func (d *ObjectDefinitionBase) SubElements() []host.ElementId {
	return d.subElements
}

func (d *ObjectDefinitionBase) CanContainRelatedEntities(s *Session) bool {
	return false
}

func (d *ObjectDefinitionBase) ContainerDuplicatesGeometry(s *Session) bool {
	return true
}

func (d *ObjectDefinitionBase) ContainerFilteredEntity(s *Session, e ObjectDefinition) bool {
	return e.definition().product
}

func (d *ObjectDefinitionBase) carriesObjectRelations(s *Session) bool {
	return true
}

func (d *ObjectDefinitionBase) Process(s *Session) Result {
	return d.processDefinition(s)
}

func (d *ObjectDefinitionBase) PostProcess(s *Session) error {
	d.NestsWhole(s)
	return nil
}

func (d *ObjectDefinitionBase) Create(s *Session, doc host.Document) (host.ElementId, error) {
	return host.NoElement, nil
}

// processDefinition extracts the attributes and relations shared by
// all object definitions. Excluded categories are skipped before any
// relation is followed.
func (d *ObjectDefinitionBase) processDefinition(s *Session) Result {
	if r := d.processRoot(s); !r.IsImported() {
		return r
	}
	h := d.handle
	if s.file.HasAttribute(h, "PredefinedType") {
		d.predefinedType = s.Enum(h, "PredefinedType")
	}
	if c, ok := s.Excluded(d.typ, d.predefinedType); ok {
		s.report.Once("excluded:"+c, report.INFO, d.id, d.typ, "category %s excluded from import", c)
		return Skipped("category %s excluded", c)
	}
	if s.file.HasAttribute(h, "ObjectType") {
		d.objectType = s.Text(h, "ObjectType")
	}
	if s.file.HasAttribute(h, "Tag") {
		d.tag = s.Text(h, "Tag")
	}

	if d.self.carriesObjectRelations(s) {
		for _, rel := range s.Refs(h, "IsDecomposedBy") {
			d.addComposed(s, s.ProcessRelatedObjects(d.self, rel, "RelatedObjects")...)
		}
		if s.file.HasAttribute(h, "IsNestedBy") {
			for _, rel := range s.Refs(h, "IsNestedBy") {
				d.addNested(s.ProcessRelatedObjects(d.self, rel, "RelatedObjects")...)
			}
		}
		for _, rel := range s.Refs(h, "HasAssignments") {
			if !s.file.IsSubtypeOf(rel, "IfcRelAssignsToGroup") {
				continue
			}
			if g, r := MaterializeAs[GroupKind](s, s.Ref(rel, "RelatingGroup"), "IfcGroup"); r.IsImported() {
				d.addGroup(g)
			}
		}
	}
	d.processAssociations(s)
	d.processDefinedBy(s)
	return Imported
}

func (d *ObjectDefinitionBase) processAssociations(s *Session) {
	h := d.handle
	if !s.file.HasAttribute(h, "HasAssociations") {
		return
	}
	for _, rel := range s.Refs(h, "HasAssociations") {
		switch {
		case s.file.IsSubtypeOf(rel, "IfcRelAssociatesMaterial"):
			m, r := MaterializeAs[MaterialSelect](s, s.Ref(rel, "RelatingMaterial"), "")
			if !r.IsImported() {
				continue
			}
			if d.material != nil && d.material != m {
				s.report.Warn(d.id, d.typ, "multiple material associations, using %s", describe(d.material))
				continue
			}
			d.material = m
		case s.file.IsSubtypeOf(rel, "IfcRelAssociatesClassification"):
			e, r := s.Materialize(s.Ref(rel, "RelatingClassification"), "")
			if !r.IsImported() {
				continue
			}
			if c, ok := e.(classifier); ok {
				d.addClassification(c.Code())
			}
		}
	}
}

func (d *ObjectDefinitionBase) processDefinedBy(s *Session) {
	h := d.handle
	for _, attr := range []string{"IsDefinedBy", "IsTypedBy"} {
		if !s.file.HasAttribute(h, attr) {
			continue
		}
		for _, rel := range s.Refs(h, attr) {
			switch {
			case s.file.IsSubtypeOf(rel, "IfcRelDefinesByProperties"):
				if p, r := MaterializeAs[*PropertySet](s, s.Ref(rel, "RelatingPropertyDefinition"), ""); r.IsImported() {
					d.addPropertySet(p)
				}
			case s.file.IsSubtypeOf(rel, "IfcRelDefinesByType"):
				if t, r := MaterializeAs[*TypeObject](s, s.Ref(rel, "RelatingType"), "IfcTypeObject"); r.IsImported() {
					d.addType(t)
				}
			}
		}
	}
}

// addComposed adds children and sets their weak back reference.
// A decomposition replaces a composition taken from a nesting.
func (d *ObjectDefinitionBase) addComposed(s *Session, children ...ObjectDefinition) {
	for _, c := range children {
		if c.Id() == d.id || containsEntity(d.composed, c) {
			continue
		}
		cd := c.definition()
		if cd.decomposes != 0 && cd.decomposes != d.id {
			if !cd.nested {
				s.report.Warn(c.Id(), c.EntityType(), "already decomposes #%d, ignoring composition into #%d", cd.decomposes, d.id)
				continue
			}
			if w, ok := s.Entity(cd.decomposes).(ObjectDefinition); ok {
				w.definition().removeComposed(c)
			}
		}
		cd.decomposes = d.id
		cd.nested = false
		d.composed = append(d.composed, c)
	}
	sortEntities(d.composed)
}

// addNested adds nested parts as children as long as they are
// not composed into another entity.
func (d *ObjectDefinitionBase) addNested(parts ...ObjectDefinition) {
	for _, c := range parts {
		cd := c.definition()
		if c.Id() == d.id || cd.decomposes != 0 {
			continue
		}
		cd.decomposes = d.id
		cd.nested = true
		d.composed = append(d.composed, c)
	}
	sortEntities(d.composed)
}

func (d *ObjectDefinitionBase) removeComposed(c ObjectDefinition) {
	d.composed = sliceutils.Filter(d.composed, func(e ObjectDefinition) bool { return e.Id() != c.Id() })
}

func (d *ObjectDefinitionBase) addGroup(g GroupKind) {
	if !containsEntity(d.groups, g) {
		d.groups = append(d.groups, g)
	}
}

func (d *ObjectDefinitionBase) addPropertySet(p *PropertySet) {
	if !containsEntity(d.psets, p) {
		d.psets = append(d.psets, p)
	}
}

func (d *ObjectDefinitionBase) addType(t *TypeObject) {
	if !containsEntity(d.types, t) {
		d.types = append(d.types, t)
	}
}

func (d *ObjectDefinitionBase) addClassification(code string) {
	if code == "" {
		return
	}
	d.classified++
	name := "ClassificationCode"
	if d.classified > 1 {
		name = fmt.Sprintf("ClassificationCode(%d)", d.classified)
	}
	d.AddParameter(name, host.StringValue(code))
}

func containsEntity[T Entity](list []T, e T) bool {
	for _, c := range list {
		if c.Id() == e.Id() {
			return true
		}
	}
	return false
}

func sortEntities[T Entity](list []T) {
	sort.Slice(list, func(i, j int) bool { return list[i].Id() < list[j].Id() })
}
