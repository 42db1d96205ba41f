package dbdoc

import (
	"github.com/mandelsoft/ifcimport/pkg/database"
	"github.com/mandelsoft/ifcimport/pkg/host"
	"github.com/mandelsoft/ifcimport/pkg/utils"
)

const TYPE_ELEMENT = "Element"

type Object interface {
	database.Object
	database.GenerationAccess
}

var Scheme = database.NewScheme[Object]()

func init() {
	database.MustRegisterType[Element, *Element, Object](Scheme, TYPE_ELEMENT)
}

// Element is the persisted form of a host element.
type Element struct {
	database.GenerationObjectMeta `json:",inline"`

	Spec ElementSpec `json:"spec"`
	Hash string      `json:"hash,omitempty"`
}

type ElementSpec struct {
	Kind       host.Kind        `json:"kind"`
	Category   string           `json:"category,omitempty"`
	Geometry   *host.Geometry   `json:"geometry,omitempty"`
	Owner      int              `json:"owner,omitempty"`
	Parameters []host.Parameter `json:"parameters,omitempty"`
}

var _ Object = (*Element)(nil)

func NewElement(ns string, e *host.Element) *Element {
	o := &Element{
		GenerationObjectMeta: database.NewGenerationObjectMeta(TYPE_ELEMENT, ns, string(e.Id)),
	}
	o.SetSpec(e)
	return o
}

func (e *Element) SetSpec(h *host.Element) {
	e.Spec = ElementSpec{
		Kind:       h.Kind,
		Category:   h.Category,
		Geometry:   h.Geometry.Copy(),
		Owner:      h.Owner,
		Parameters: append([]host.Parameter(nil), h.Parameters...),
	}
	e.Hash = utils.MustSpecDigest(e.Spec)
}

func (e *Element) HostElement() *host.Element {
	return &host.Element{
		Id:         host.ElementId(e.GetName()),
		Kind:       e.Spec.Kind,
		Category:   e.Spec.Category,
		Geometry:   e.Spec.Geometry.Copy(),
		Owner:      e.Spec.Owner,
		Parameters: append([]host.Parameter(nil), e.Spec.Parameters...),
	}
}
