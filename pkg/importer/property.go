package importer

import (
	"fmt"
	"strings"

	"github.com/mandelsoft/ifcimport/pkg/host"
	"github.com/mandelsoft/ifcimport/pkg/ifcfile"
)

// Property is a property providing a single parameter value.
type Property interface {
	Entity
	Value() (host.ParameterValue, bool)
}

// PropertySet is a named set of properties shared by the objects
// it is assigned to.
type PropertySet struct {
	EntityBase
	properties []Property
}

func (p *PropertySet) Properties() []Property {
	return p.properties
}

func (p *PropertySet) Process(s *Session) Result {
	if r := p.processRoot(s); !r.IsImported() {
		return r
	}
	if p.name == "" {
		return Failed(fmt.Errorf("%w Name", ErrMissingAttribute))
	}
	p.properties = MaterializeAll[Property](s, s.Refs(p.handle, "HasProperties"), "IfcProperty")
	return Imported
}

// ParameterName provides the parameter name for a property.
func (p *PropertySet) ParameterName(s *Session, prop Property) string {
	if s.options.PlainPropertyNames {
		return prop.Name()
	}
	return p.name + "." + prop.Name()
}

type property struct {
	EntityBase
}

func (p *property) processProperty(s *Session) Result {
	p.name = s.Text(p.handle, "Name")
	if p.name == "" {
		return Failed(fmt.Errorf("%w Name", ErrMissingAttribute))
	}
	p.description = s.Text(p.handle, "Description")
	return Imported
}

type PropertySingleValue struct {
	property
	value ifcfile.Value
}

func (p *PropertySingleValue) Process(s *Session) Result {
	if r := p.processProperty(s); !r.IsImported() {
		return r
	}
	p.value = s.Value(p.handle, "NominalValue")
	return Imported
}

func (p *PropertySingleValue) Value() (host.ParameterValue, bool) {
	return ParameterValue(p.value)
}

type PropertyEnumeratedValue struct {
	property
	values []string
}

func (p *PropertyEnumeratedValue) Process(s *Session) Result {
	if r := p.processProperty(s); !r.IsImported() {
		return r
	}
	l, _ := s.Value(p.handle, "EnumerationValues").List()
	for _, v := range l {
		if t, ok := v.Text(); ok {
			p.values = append(p.values, t)
		}
	}
	return Imported
}

func (p *PropertyEnumeratedValue) Value() (host.ParameterValue, bool) {
	if len(p.values) == 0 {
		return host.ParameterValue{}, false
	}
	return host.StringValue(strings.Join(p.values, ";")), true
}

// ParameterValue maps an attribute value to a parameter value.
// Booleans are recognized by their value or their defined type.
func ParameterValue(v ifcfile.Value) (host.ParameterValue, bool) {
	u := v.Underlying()
	switch strings.ToUpper(v.TypeName()) {
	case "IFCBOOLEAN", "IFCLOGICAL":
		if b, ok := u.Bool(); ok {
			return host.BoolValue(b), true
		}
	}
	switch u.Kind() {
	case ifcfile.KindInteger:
		i, _ := u.Integer()
		return host.IntValue(i), true
	case ifcfile.KindReal:
		f, _ := u.Real()
		return host.DoubleValue(f), true
	case ifcfile.KindBoolean:
		b, _ := u.Bool()
		return host.BoolValue(b), true
	case ifcfile.KindString, ifcfile.KindEnum:
		t, _ := u.Text()
		return host.StringValue(t), true
	}
	return host.ParameterValue{}, false
}
