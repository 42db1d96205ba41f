package importer

import (
	"github.com/mandelsoft/goutils/sliceutils"

	"github.com/mandelsoft/ifcimport/pkg/schema"
)

// MaterialSelect is a material association of an object.
type MaterialSelect interface {
	Entity
	// MaterialNames provides the names of all materials used,
	// in order of their first occurrence.
	MaterialNames() []string
}

func materialNames[T MaterialSelect](list ...T) []string {
	var r []string
	for _, m := range list {
		r = sliceutils.AppendUnique(r, m.MaterialNames()...)
	}
	return r
}

type Material struct {
	EntityBase
	category string
}

func (m *Material) Process(s *Session) Result {
	m.name = s.Text(m.handle, "Name")
	if s.SchemaVersionAtLeast(schema.IFC4Obsolete) {
		m.description = s.Text(m.handle, "Description")
		m.category = s.Text(m.handle, "Category")
	}
	return Imported
}

func (m *Material) Category() string {
	return m.category
}

func (m *Material) MaterialNames() []string {
	if m.name == "" {
		return nil
	}
	return []string{m.name}
}

////////////////////////////////////////////////////////////////////////////////

type MaterialLayer struct {
	EntityBase
	material  *Material
	thickness float64
	priority  int64
	// prioritized is set if the dialect defines a layer priority.
	prioritized bool
}

func (m *MaterialLayer) Process(s *Session) Result {
	h := m.handle
	m.material, _ = MaterializeAs[*Material](s, s.Ref(h, "Material"), "IfcMaterial")
	m.thickness, _ = s.Real(h, "LayerThickness")
	if s.SchemaVersionAtLeast(schema.IFC4Obsolete) {
		m.name = s.Text(h, "Name")
	}
	if s.SchemaVersionAtLeast(schema.IFC4Add2) {
		m.priority, m.prioritized = s.Integer(h, "Priority")
	}
	return Imported
}

func (m *MaterialLayer) Thickness() float64 {
	return m.thickness
}

func (m *MaterialLayer) Priority() (int64, bool) {
	return m.priority, m.prioritized
}

func (m *MaterialLayer) MaterialNames() []string {
	if m.material == nil {
		return nil
	}
	return m.material.MaterialNames()
}

type MaterialLayerSet struct {
	EntityBase
	layers []*MaterialLayer
}

func (m *MaterialLayerSet) Process(s *Session) Result {
	m.name = s.Text(m.handle, "LayerSetName")
	m.layers = MaterializeAll[*MaterialLayer](s, s.Refs(m.handle, "MaterialLayers"), "IfcMaterialLayer")
	return Imported
}

func (m *MaterialLayerSet) Layers() []*MaterialLayer {
	return m.layers
}

func (m *MaterialLayerSet) MaterialNames() []string {
	return materialNames(m.layers...)
}

type MaterialLayerSetUsage struct {
	EntityBase
	set *MaterialLayerSet
}

func (m *MaterialLayerSetUsage) Process(s *Session) Result {
	m.set, _ = MaterializeAs[*MaterialLayerSet](s, s.Ref(m.handle, "ForLayerSet"), "IfcMaterialLayerSet")
	return Imported
}

func (m *MaterialLayerSetUsage) MaterialNames() []string {
	if m.set == nil {
		return nil
	}
	return m.set.MaterialNames()
}

////////////////////////////////////////////////////////////////////////////////

type MaterialProfile struct {
	EntityBase
	material *Material
	category string
}

func (m *MaterialProfile) Process(s *Session) Result {
	h := m.handle
	m.name = s.Text(h, "Name")
	m.material, _ = MaterializeAs[*Material](s, s.Ref(h, "Material"), "IfcMaterial")
	m.category = s.Text(h, "Category")
	return Imported
}

func (m *MaterialProfile) Category() string {
	return m.category
}

func (m *MaterialProfile) MaterialNames() []string {
	if m.material == nil {
		return nil
	}
	return m.material.MaterialNames()
}

type MaterialProfileSet struct {
	EntityBase
	profiles []*MaterialProfile
}

func (m *MaterialProfileSet) Process(s *Session) Result {
	m.name = s.Text(m.handle, "Name")
	m.profiles = MaterializeAll[*MaterialProfile](s, s.Refs(m.handle, "MaterialProfiles"), "IfcMaterialProfile")
	return Imported
}

func (m *MaterialProfileSet) MaterialNames() []string {
	return materialNames(m.profiles...)
}

type MaterialProfileSetUsage struct {
	EntityBase
	set *MaterialProfileSet
}

func (m *MaterialProfileSetUsage) Process(s *Session) Result {
	m.set, _ = MaterializeAs[*MaterialProfileSet](s, s.Ref(m.handle, "ForProfileSet"), "IfcMaterialProfileSet")
	return Imported
}

func (m *MaterialProfileSetUsage) MaterialNames() []string {
	if m.set == nil {
		return nil
	}
	return m.set.MaterialNames()
}

////////////////////////////////////////////////////////////////////////////////

type MaterialList struct {
	EntityBase
	materials []*Material
}

func (m *MaterialList) Process(s *Session) Result {
	m.materials = MaterializeAll[*Material](s, s.Refs(m.handle, "Materials"), "IfcMaterial")
	return Imported
}

func (m *MaterialList) MaterialNames() []string {
	return materialNames(m.materials...)
}
