package ifcfile

import (
	"fmt"
	"slices"
	"sync"

	"github.com/mandelsoft/goutils/errors"
	"github.com/mandelsoft/goutils/general"

	"github.com/mandelsoft/ifcimport/pkg/schema"
)

var (
	ErrAttributeUndefined = errors.New("attribute undefined")
	ErrUnknownInstance    = errors.New("unknown instance")
	ErrNoAggregate        = errors.New("attribute is no aggregate")
)

// Handle is an opaque reference to a raw record of a parsed file.
type Handle interface {
	StepId() int
	Type() string
}

// File is the parsed file abstraction consumed by the import engine.
type File interface {
	Name() string
	Schema() schema.Version
	// SetSchema changes the schema version used to interpret
	// attribute names.
	SetSchema(v schema.Version)

	Instances(typ string, includeSubtypes bool) []Handle
	Instance(id int) Handle
	Size() int

	Attribute(h Handle, name string) (Value, error)
	Aggregate(h Handle, name string) ([]Value, error)
	EnumeratedSet(h Handle, name string) ([]string, error)

	IsSubtypeOf(h Handle, typ string) bool
	EntityType(h Handle) string
	// Supertype returns the direct supertype of a type for the
	// current schema version, or "" for root types.
	Supertype(typ string) string
	// HasAttribute checks whether an explicit or inverse attribute is
	// defined for the type of a record in the current schema version.
	HasAttribute(h Handle, name string) bool

	Close() error
}

// Record is a raw record with positional attribute values.
type Record struct {
	id   int
	typ  string
	args []Value
}

var _ Handle = (*Record)(nil)

func (r *Record) StepId() int {
	return r.id
}

func (r *Record) Type() string {
	return r.typ
}

func (r *Record) Args() []Value {
	return r.args
}

func (r *Record) String() string {
	return fmt.Sprintf("#%d=%s", r.id, r.typ)
}

// Model is the in-memory representation of a parsed file.
type Model struct {
	lock      sync.Mutex
	name      string
	catalogue *Catalogue
	version   schema.Version
	records   map[int]*Record
	order     []int
	inverses  map[int]map[string][]int
	closed    bool
}

var _ File = (*Model)(nil)

func NewModel(name string, v schema.Version, cat ...*Catalogue) *Model {
	return &Model{
		name:      name,
		catalogue: general.OptionalDefaulted(Default, cat...),
		version:   v,
		records:   map[int]*Record{},
	}
}

func (m *Model) Name() string {
	return m.name
}

func (m *Model) Catalogue() *Catalogue {
	return m.catalogue
}

func (m *Model) Schema() schema.Version {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.version
}

func (m *Model) SetSchema(v schema.Version) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.version != v {
		log.Debug("schema of {{file}} changed from {{old}} to {{new}}", "file", m.name, "old", m.version, "new", v)
		m.version = v
		m.inverses = nil
	}
}

func (m *Model) Size() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.records)
}

// Add adds a record with positional attribute values.
// The type name is mapped to its catalogue name.
func (m *Model) Add(id int, typ string, args ...Value) *Record {
	m.lock.Lock()
	defer m.lock.Unlock()
	r := &Record{id: id, typ: m.catalogue.Canonical(typ), args: args}
	if _, ok := m.records[id]; !ok {
		m.order = append(m.order, id)
	}
	m.records[id] = r
	m.inverses = nil
	return r
}

// AddNamed adds a record with named attribute values. Positions
// are taken from the catalogue for the current schema version.
func (m *Model) AddNamed(id int, typ string, attrs map[string]Value) (*Record, error) {
	typ = m.catalogue.Canonical(typ)
	names := m.catalogue.Attributes(typ, m.Schema())
	if names == nil && len(attrs) > 0 {
		return nil, fmt.Errorf("no attribute definitions for type %s", typ)
	}
	args := make([]Value, len(names))
	for n, v := range attrs {
		i := slices.Index(names, n)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s.%s for schema %s", ErrAttributeUndefined, typ, n, m.Schema())
		}
		args[i] = v
	}
	return m.Add(id, typ, args...), nil
}

func (m *Model) Instance(id int) Handle {
	m.lock.Lock()
	defer m.lock.Unlock()
	if r := m.records[id]; r != nil {
		return r
	}
	return nil
}

func (m *Model) Instances(typ string, includeSubtypes bool) []Handle {
	m.lock.Lock()
	defer m.lock.Unlock()

	typ = m.catalogue.Canonical(typ)
	var r []Handle
	for _, id := range m.order {
		rec := m.records[id]
		if rec.typ == typ || (includeSubtypes && m.catalogue.IsSubtypeOf(rec.typ, typ, m.version)) {
			r = append(r, rec)
		}
	}
	return r
}

func (m *Model) IsSubtypeOf(h Handle, typ string) bool {
	r, err := m.record(h)
	if err != nil {
		return false
	}
	return m.catalogue.IsSubtypeOf(r.typ, m.catalogue.Canonical(typ), m.Schema())
}

func (m *Model) EntityType(h Handle) string {
	r, err := m.record(h)
	if err != nil {
		return ""
	}
	return r.typ
}

func (m *Model) Supertype(typ string) string {
	return m.catalogue.Supertype(m.catalogue.Canonical(typ), m.Schema())
}

func (m *Model) HasAttribute(h Handle, name string) bool {
	r, err := m.record(h)
	if err != nil {
		return false
	}
	v := m.Schema()
	return m.catalogue.HasInverse(r.typ, name, v) || m.catalogue.AttributeIndex(r.typ, name, v) >= 0
}

func (m *Model) record(h Handle) (*Record, error) {
	if h == nil {
		return nil, ErrUnknownInstance
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	r := m.records[h.StepId()]
	if r == nil {
		return nil, fmt.Errorf("%w #%d", ErrUnknownInstance, h.StepId())
	}
	return r, nil
}

// Attribute returns the value of an explicit or inverse attribute.
// Inverse attributes are returned as list of references to the
// relation records.
// Names not defined for the type in the current schema version, and
// defined attributes missing in a short record, yield ErrAttributeUndefined.
func (m *Model) Attribute(h Handle, name string) (Value, error) {
	r, err := m.record(h)
	if err != nil {
		return Unset, err
	}
	v := m.Schema()
	if m.catalogue.HasInverse(r.typ, name, v) {
		return Refs(m.inverse(r.id, name)...), nil
	}
	idx := m.catalogue.AttributeIndex(r.typ, name, v)
	if idx < 0 {
		return Unset, fmt.Errorf("%w: %s.%s for schema %s", ErrAttributeUndefined, r.typ, name, v)
	}
	if idx >= len(r.args) {
		return Unset, fmt.Errorf("%w: %s.%s not present in record #%d for schema %s", ErrAttributeUndefined, r.typ, name, r.id, v)
	}
	return r.args[idx], nil
}

func (m *Model) Aggregate(h Handle, name string) ([]Value, error) {
	v, err := m.Attribute(h, name)
	if err != nil {
		return nil, err
	}
	if v.IsUnset() {
		return nil, nil
	}
	l, ok := v.List()
	if !ok {
		return nil, fmt.Errorf("%w: %s of #%d", ErrNoAggregate, name, h.StepId())
	}
	return l, nil
}

func (m *Model) EnumeratedSet(h Handle, name string) ([]string, error) {
	l, err := m.Aggregate(h, name)
	if err != nil {
		return nil, err
	}
	var r []string
	for _, e := range l {
		if s, ok := e.Text(); ok {
			r = append(r, s)
		}
	}
	return r, nil
}

func (m *Model) Close() error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	m.records = map[int]*Record{}
	m.order = nil
	m.inverses = nil
	return nil
}

func (m *Model) inverse(id int, name string) []int {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.inverses == nil {
		m.inverses = m.buildInverses()
	}
	return m.inverses[id][name]
}

// buildInverses indexes all relation records for the current
// schema version. It must be called with the lock held.
func (m *Model) buildInverses() map[int]map[string][]int {
	index := map[int]map[string][]int{}
	add := func(target int, name string, rel int) {
		e := index[target]
		if e == nil {
			e = map[string][]int{}
			index[target] = e
		}
		e[name] = append(e[name], rel)
	}

	sources := m.catalogue.InverseSources(m.version)
	for _, id := range m.order {
		r := m.records[id]
		for _, src := range sources {
			if !m.catalogue.IsSubtypeOf(r.typ, src.Relation, m.version) {
				continue
			}
			idx := m.catalogue.AttributeIndex(r.typ, src.Attribute, m.version)
			if idx < 0 || idx >= len(r.args) {
				continue
			}
			val := r.args[idx]
			if ref, ok := val.Ref(); ok {
				add(ref, src.Name, r.id)
				continue
			}
			if l, ok := val.List(); ok {
				for _, e := range l {
					if ref, ok := e.Ref(); ok {
						add(ref, src.Name, r.id)
					}
				}
			}
		}
	}
	log.Trace("indexed inverse attributes of {{file}} for schema {{schema}}", "file", m.name, "schema", m.version)
	return index
}
