package importer_test

import (
	"fmt"

	"github.com/mandelsoft/goutils/maputils"
	. "github.com/mandelsoft/goutils/testutils"

	"github.com/mandelsoft/ifcimport/pkg/host"
	"github.com/mandelsoft/ifcimport/pkg/ifcfile"
	"github.com/mandelsoft/ifcimport/pkg/schema"
)

type attrs = map[string]ifcfile.Value

// builder creates test models with named attributes.
type builder struct {
	m    *ifcfile.Model
	next int
}

func newBuilder(v schema.Version) *builder {
	return &builder{m: ifcfile.NewModel("test.ifc", v), next: 1}
}

func (b *builder) add(typ string, a attrs) int {
	id := b.next
	b.next++
	Must(b.m.AddNamed(id, typ, a))
	return id
}

// rooted adds a record with global id and name.
func (b *builder) rooted(typ, name string, a ...attrs) int {
	m := attrs{}
	for _, e := range a {
		for k, v := range e {
			m[k] = v
		}
	}
	m["GlobalId"] = ifcfile.String(fmt.Sprintf("G%021d", b.next))
	if name != "" {
		m["Name"] = ifcfile.String(name)
	}
	return b.add(typ, m)
}

func (b *builder) aggregate(whole int, parts ...int) int {
	return b.rooted("IfcRelAggregates", "", attrs{"RelatingObject": ifcfile.Ref(whole), "RelatedObjects": ifcfile.Refs(parts...)})
}

func (b *builder) nest(whole int, parts ...int) int {
	return b.rooted("IfcRelNests", "", attrs{"RelatingObject": ifcfile.Ref(whole), "RelatedObjects": ifcfile.Refs(parts...)})
}

func (b *builder) contain(structure int, elems ...int) int {
	return b.rooted("IfcRelContainedInSpatialStructure", "", attrs{"RelatingStructure": ifcfile.Ref(structure), "RelatedElements": ifcfile.Refs(elems...)})
}

func (b *builder) associateMaterial(material int, objs ...int) int {
	return b.rooted("IfcRelAssociatesMaterial", "", attrs{"RelatingMaterial": ifcfile.Ref(material), "RelatedObjects": ifcfile.Refs(objs...)})
}

func (b *builder) material(name string) int {
	return b.add("IfcMaterial", attrs{"Name": ifcfile.String(name)})
}

func (b *builder) pset(name string, props map[string]ifcfile.Value, objs ...int) int {
	var ids []int
	for _, n := range maputils.OrderedKeys(props) {
		ids = append(ids, b.add("IfcPropertySingleValue", attrs{"Name": ifcfile.String(n), "NominalValue": props[n]}))
	}
	p := b.rooted("IfcPropertySet", name, attrs{"HasProperties": ifcfile.Refs(ids...)})
	b.rooted("IfcRelDefinesByProperties", "", attrs{"RelatingPropertyDefinition": ifcfile.Ref(p), "RelatedObjects": ifcfile.Refs(objs...)})
	return p
}

func (b *builder) group(typ, name string, members ...int) int {
	g := b.rooted(typ, name)
	b.rooted("IfcRelAssignsToGroup", "", attrs{"RelatingGroup": ifcfile.Ref(g), "RelatedObjects": ifcfile.Refs(members...)})
	return g
}

func (b *builder) placement(x, y, z float64) int {
	pt := b.add("IfcCartesianPoint", attrs{"Coordinates": ifcfile.List(ifcfile.Real(x), ifcfile.Real(y), ifcfile.Real(z))})
	ax := b.add("IfcAxis2Placement3D", attrs{"Location": ifcfile.Ref(pt)})
	return b.add("IfcLocalPlacement", attrs{"RelativePlacement": ifcfile.Ref(ax)})
}

func (b *builder) shape(identifier string) int {
	r := b.add("IfcShapeRepresentation", attrs{"RepresentationIdentifier": ifcfile.String(identifier), "RepresentationType": ifcfile.String("Brep")})
	return b.add("IfcProductDefinitionShape", attrs{"Representations": ifcfile.Refs(r)})
}

// project adds a project with one building.
func (b *builder) project() (int, int) {
	p := b.rooted("IfcProject", "Project")
	bl := b.rooted("IfcBuilding", "Building")
	b.aggregate(p, bl)
	return p, bl
}

////////////////////////////////////////////////////////////////////////////////

// elementFor finds the element created for an entity.
func elementFor(doc host.Document, owner int) *host.Element {
	for _, e := range Must(doc.Elements()) {
		if e.Owner == owner {
			return e
		}
	}
	return nil
}

func param(e *host.Element, name string) string {
	if e == nil {
		return "<no element>"
	}
	if p := e.Parameter(name); p != nil {
		return p.Text()
	}
	return ""
}

// failingDocument fails the creation of elements for given entities.
type failingDocument struct {
	host.Document
	owners map[int]bool
}

func newFailingDocument(owners ...int) *failingDocument {
	d := &failingDocument{Document: host.NewMemoryDocument("failing"), owners: map[int]bool{}}
	for _, o := range owners {
		d.owners[o] = true
	}
	return d
}

func (d *failingDocument) CreateElement(kind host.Kind, category string, geometry *host.Geometry, owner int) (host.ElementId, error) {
	if d.owners[owner] {
		return host.NoElement, fmt.Errorf("cannot create element for #%d", owner)
	}
	return d.Document.CreateElement(kind, category, geometry, owner)
}
