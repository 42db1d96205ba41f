package ifcfile

import (
	"strings"
	"sync"

	"github.com/mandelsoft/ifcimport/pkg/schema"
)

const (
	first = schema.IFC2x
	last  = schema.IFC4x3Add2
)

// Attr describes an explicit attribute of an entity definition,
// present for all schema versions in [Since, Until].
type Attr struct {
	Name  string
	Since schema.Version
	Until schema.Version
}

func (a Attr) In(v schema.Version) bool {
	return v >= a.Since && v <= a.Until
}

func attr(name string) Attr {
	return Attr{name, first, last}
}

func since(name string, v schema.Version) Attr {
	return Attr{name, v, last}
}

func until(name string, v schema.Version) Attr {
	return Attr{name, first, v}
}

// Super describes a supertype valid for a range of schema versions.
type Super struct {
	Name  string
	Since schema.Version
	Until schema.Version
}

// Inverse describes a relation record attribute whose references
// are reflected as inverse attribute on the referenced record.
type Inverse struct {
	Relation  string
	Attribute string
	Name      string
	Since     schema.Version
	Until     schema.Version
}

// EntityDef describes an entity type of the catalogue.
type EntityDef struct {
	Name     string
	Supers   []Super
	Attrs    []Attr
	Inverses []Attr
	Since    schema.Version
}

// Catalogue is the set of entity definitions known for reading files.
type Catalogue struct {
	lock     sync.Mutex
	defs     map[string]*EntityDef
	upper    map[string]string
	inverses []Inverse
	attrs    map[attrKey][]string
}

type attrKey struct {
	typ     string
	version schema.Version
}

func NewCatalogue() *Catalogue {
	return &Catalogue{
		defs:  map[string]*EntityDef{},
		upper: map[string]string{},
		attrs: map[attrKey][]string{},
	}
}

func (c *Catalogue) Define(d *EntityDef) *Catalogue {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.defs[d.Name] = d
	c.upper[strings.ToUpper(d.Name)] = d.Name
	c.attrs = map[attrKey][]string{}
	return c
}

func (c *Catalogue) DefineInverse(i ...Inverse) *Catalogue {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.inverses = append(c.inverses, i...)
	return c
}

// Canonical maps a type name in any case to its catalogue name.
// Unknown names are returned in upper case.
func (c *Catalogue) Canonical(name string) string {
	u := strings.ToUpper(name)
	if n, ok := c.upper[u]; ok {
		return n
	}
	return u
}

func (c *Catalogue) Known(name string) bool {
	_, ok := c.defs[name]
	return ok
}

// Supertype returns the direct supertype of a type for a schema version.
func (c *Catalogue) Supertype(name string, v schema.Version) string {
	d := c.defs[name]
	if d == nil {
		return ""
	}
	for _, s := range d.Supers {
		if v >= s.Since && v <= s.Until {
			return s.Name
		}
	}
	return ""
}

// IsSubtypeOf checks whether typ is super or one of its subtypes.
func (c *Catalogue) IsSubtypeOf(typ, super string, v schema.Version) bool {
	for t := typ; t != ""; t = c.Supertype(t, v) {
		if t == super {
			return true
		}
	}
	return false
}

// Attributes returns the ordered explicit attribute names of a type,
// including inherited ones, for a schema version.
func (c *Catalogue) Attributes(name string, v schema.Version) []string {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.attributes(name, v)
}

func (c *Catalogue) attributes(name string, v schema.Version) []string {
	key := attrKey{name, v}
	if r, ok := c.attrs[key]; ok {
		return r
	}
	d := c.defs[name]
	if d == nil || v < d.Since {
		return nil
	}
	var r []string
	if s := c.Supertype(name, v); s != "" {
		r = append(r, c.attributes(s, v)...)
	}
	for _, a := range d.Attrs {
		if a.In(v) {
			r = append(r, a.Name)
		}
	}
	c.attrs[key] = r
	return r
}

// AttributeIndex returns the position of an explicit attribute.
func (c *Catalogue) AttributeIndex(typ, attr string, v schema.Version) int {
	for i, n := range c.Attributes(typ, v) {
		if n == attr {
			return i
		}
	}
	return -1
}

// HasInverse checks whether a type declares (or inherits) an inverse
// attribute for a schema version.
func (c *Catalogue) HasInverse(typ, name string, v schema.Version) bool {
	for t := typ; t != ""; t = c.Supertype(t, v) {
		d := c.defs[t]
		if d == nil {
			return false
		}
		for _, a := range d.Inverses {
			if a.Name == name && a.In(v) {
				return true
			}
		}
	}
	return false
}

// InverseSources returns the relation attributes feeding inverse
// attributes for a schema version.
func (c *Catalogue) InverseSources(v schema.Version) []Inverse {
	var r []Inverse
	for _, i := range c.inverses {
		if v >= i.Since && v <= i.Until {
			r = append(r, i)
		}
	}
	return r
}

// Types returns the names of all defined types.
func (c *Catalogue) Types() []string {
	c.lock.Lock()
	defer c.lock.Unlock()
	r := make([]string, 0, len(c.defs))
	for n := range c.defs {
		r = append(r, n)
	}
	return r
}
