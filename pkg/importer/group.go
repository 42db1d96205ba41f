package importer

import (
	"github.com/mandelsoft/ifcimport/pkg/host"
)

// GroupKind is implemented by all group like entities.
type GroupKind interface {
	ObjectDefinition
	group() *Group
	// IsSystem decides whether memberships are reported as system.
	IsSystem() bool
}

// Group is a logical collection of objects. Plain groups are
// not created as host elements, they are only visible as
// membership parameter of their members.
type Group struct {
	ObjectDefinitionBase
	related []ObjectDefinition
}

func (g *Group) group() *Group {
	return g
}

func (g *Group) IsSystem() bool {
	return false
}

// RelatedObjects provides the members of the group ordered by id.
func (g *Group) RelatedObjects() []ObjectDefinition {
	return g.related
}

func (g *Group) Process(s *Session) Result {
	if r := g.processDefinition(s); !r.IsImported() {
		return r
	}
	for _, rel := range s.Refs(g.handle, "IsGroupedBy") {
		for _, o := range s.ProcessRelatedObjects(g, rel, "RelatedObjects") {
			if !containsEntity(g.related, o) {
				g.related = append(g.related, o)
			}
		}
	}
	sortEntities(g.related)
	return Imported
}

func (g *Group) Create(s *Session, doc host.Document) (host.ElementId, error) {
	if !g.self.CanContainRelatedEntities(s) {
		return host.NoElement, nil
	}
	return s.createContainer(doc, g.self, host.KIND_GROUP, nil, g.related)
}

// Zone is a group of spaces. It duplicates the geometry of its spaces.
type Zone struct {
	Group
}

func (z *Zone) CanContainRelatedEntities(s *Session) bool {
	return true
}

func (z *Zone) ContainerFilteredEntity(s *Session, e ObjectDefinition) bool {
	_, ok := e.(*Space)
	return ok
}

// System is a group of elements serving a common purpose.
type System struct {
	Group
}

func (y *System) IsSystem() bool {
	return true
}

func (y *System) CanContainRelatedEntities(s *Session) bool {
	return true
}

func (y *System) ContainerFilteredEntity(s *Session, e ObjectDefinition) bool {
	switch e.(type) {
	case *Element, *ElementAssembly:
		return true
	}
	return false
}

// DistributionSystem is a system only referencing its members.
type DistributionSystem struct {
	System
}

func (y *DistributionSystem) ContainerDuplicatesGeometry(s *Session) bool {
	return false
}
