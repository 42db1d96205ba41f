package host

import (
	"fmt"
	"strconv"

	"github.com/mandelsoft/goutils/errors"
	"github.com/mandelsoft/goutils/generics"
)

var (
	ErrNoTransaction     = errors.New("no active transaction")
	ErrTransactionActive = errors.New("transaction already active")
	ErrUnknownElement    = errors.New("unknown element")
)

// ElementId identifies an element of a host document.
type ElementId string

// NoElement is the id used before an element has been created.
const NoElement ElementId = ""

func (id ElementId) IsNone() bool {
	return id == NoElement
}

func (id ElementId) String() string {
	if id == NoElement {
		return "<none>"
	}
	return string(id)
}

type Kind string

const (
	KIND_SHAPE     Kind = "Shape"
	KIND_TYPE      Kind = "Type"
	KIND_CONTAINER Kind = "Container"
	KIND_GROUP     Kind = "Group"
	KIND_PROJECT   Kind = "ProjectInfo"
	KIND_SPATIAL   Kind = "Spatial"
)

// ParameterValue is a typed parameter value. Exactly one field is set.
type ParameterValue struct {
	String  *string  `json:"string,omitempty"`
	Integer *int64   `json:"integer,omitempty"`
	Double  *float64 `json:"double,omitempty"`
	Bool    *bool    `json:"bool,omitempty"`
}

func StringValue(s string) ParameterValue {
	return ParameterValue{String: generics.Pointer(s)}
}

func IntValue(i int64) ParameterValue {
	return ParameterValue{Integer: generics.Pointer(i)}
}

func DoubleValue(f float64) ParameterValue {
	return ParameterValue{Double: generics.Pointer(f)}
}

func BoolValue(b bool) ParameterValue {
	return ParameterValue{Bool: generics.Pointer(b)}
}

func (v ParameterValue) IsEmpty() bool {
	return v.String == nil && v.Integer == nil && v.Double == nil && v.Bool == nil
}

func (v ParameterValue) Text() string {
	switch {
	case v.String != nil:
		return *v.String
	case v.Integer != nil:
		return strconv.FormatInt(*v.Integer, 10)
	case v.Double != nil:
		return strconv.FormatFloat(*v.Double, 'g', -1, 64)
	case v.Bool != nil:
		return strconv.FormatBool(*v.Bool)
	}
	return ""
}

// Parameter is a parameter value set on an element.
type Parameter struct {
	Category string         `json:"category,omitempty"`
	Name     string         `json:"name"`
	Value    ParameterValue `json:"value"`
	// Source is the id of the entity the value stems from.
	Source int `json:"source,omitempty"`
}

// Element is a snapshot of a host element.
type Element struct {
	Id         ElementId   `json:"id"`
	Kind       Kind        `json:"kind"`
	Category   string      `json:"category,omitempty"`
	Geometry   *Geometry   `json:"geometry,omitempty"`
	Owner      int         `json:"owner,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty"`
}

// Parameter returns the value of a parameter or nil.
func (e *Element) Parameter(name string) *ParameterValue {
	for i := range e.Parameters {
		if e.Parameters[i].Name == name {
			return &e.Parameters[i].Value
		}
	}
	return nil
}

// SetParameter adds or replaces a parameter.
func (e *Element) SetParameter(p Parameter) {
	for i := range e.Parameters {
		if e.Parameters[i].Name == p.Name {
			e.Parameters[i] = p
			return
		}
	}
	e.Parameters = append(e.Parameters, p)
}

func (e *Element) Copy() *Element {
	if e == nil {
		return nil
	}
	c := *e
	c.Geometry = e.Geometry.Copy()
	c.Parameters = append([]Parameter(nil), e.Parameters...)
	return &c
}

func (e *Element) String() string {
	return fmt.Sprintf("%s[%s/%s]", e.Id, e.Kind, e.Category)
}

// Document is the collaborator interface consumed by the importer.
type Document interface {
	Name() string

	// Begin starts the transaction all modifications are done in.
	Begin(name string) (Transaction, error)

	CreateElement(kind Kind, category string, geometry *Geometry, owner int) (ElementId, error)
	SetParameter(id ElementId, category, name string, value ParameterValue, source int) error

	// LookupElement returns nil if the element does not exist.
	LookupElement(id ElementId) (*Element, error)
	Elements() ([]*Element, error)
}

// Transaction is a scoped transaction. Rollback after
// Commit is a no-op, so it can always be deferred.
type Transaction interface {
	Name() string
	Commit() error
	Rollback() error
}
