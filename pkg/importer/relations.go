package importer

import (
	"github.com/mandelsoft/ifcimport/pkg/ifcfile"
)

// ProcessRelatedObjects materializes the objects referenced by the
// aggregate attribute of a relation. Objects which cannot be
// materialized are omitted.
func (s *Session) ProcessRelatedObjects(owner ObjectDefinition, rel ifcfile.Handle, attr string) []ObjectDefinition {
	var r []ObjectDefinition
	for _, h := range s.Refs(rel, attr) {
		if owner != nil && h.StepId() == owner.Id() {
			continue
		}
		if o, res := MaterializeAs[ObjectDefinition](s, h, ""); res.IsImported() {
			r = append(r, o)
		}
	}
	return r
}

// ProcessRelatingObject materializes the single object referenced
// by an attribute of a relation.
func (s *Session) ProcessRelatingObject(rel ifcfile.Handle, attr string) ObjectDefinition {
	o, _ := MaterializeAs[ObjectDefinition](s, s.Ref(rel, attr), "")
	return o
}
