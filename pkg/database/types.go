package database

import (
	"fmt"

	"github.com/mandelsoft/goutils/errors"

	"github.com/mandelsoft/ifcimport/pkg/runtime"
)

var (
	ErrModified = errors.New("object modified")
	ErrNotExist = errors.New("object not found")
)

type Encoding[O Object] interface {
	runtime.Encoding[O]
}

// NewScheme provides a YAML scheme for the object types of a store.
func NewScheme[O Object]() runtime.Scheme[O] {
	return runtime.NewYAMLScheme[O]()
}

// ObjectId identifies a stored object by type, namespace and name.
// For element documents the namespace is the document name.
type ObjectId interface {
	runtime.TypeAccessor
	GetNamespace() string
	GetName() string
}

type Object interface {
	ObjectId
	runtime.Object
	SetName(string)
	SetNamespace(string)
}

// GenerationAccess is implemented by objects featuring a
// generation number used to detect concurrent modifications.
type GenerationAccess interface {
	GetGeneration() int64
	SetGeneration(int64)
}

// GetGeneration provides the generation of an object, or -1
// if it does not feature one.
func GetGeneration(o Object) int64 {
	if g, ok := o.(GenerationAccess); ok {
		return g.GetGeneration()
	}
	return -1
}

// ObjectMeta is the serialized identity of a stored object.
type ObjectMeta struct {
	runtime.TypeMeta `json:",inline"`
	Namespace        string `json:"namespace"`
	Name             string `json:"name"`
}

var _ Object = (*ObjectMeta)(nil)

func (o *ObjectMeta) GetName() string {
	return o.Name
}

func (o *ObjectMeta) GetNamespace() string {
	return o.Namespace
}

func (o *ObjectMeta) SetName(name string) {
	o.Name = name
}

func (o *ObjectMeta) SetNamespace(ns string) {
	o.Namespace = ns
}

func (o *ObjectMeta) String() string {
	return StringId(o)
}

// GenerationObjectMeta is an ObjectMeta with a generation.
type GenerationObjectMeta struct {
	ObjectMeta `json:",inline"`
	Generation int64 `json:"generation"`
}

var _ GenerationAccess = (*GenerationObjectMeta)(nil)

func NewGenerationObjectMeta(typ, ns, name string) GenerationObjectMeta {
	return GenerationObjectMeta{ObjectMeta: ObjectMeta{runtime.TypeMeta{Type: typ}, ns, name}}
}

func (g *GenerationObjectMeta) GetGeneration() int64 {
	return g.Generation
}

func (g *GenerationObjectMeta) SetGeneration(i int64) {
	g.Generation = i
}

type objectid struct {
	kind      string
	namespace string
	name      string
}

func (o objectid) GetName() string {
	return o.name
}

func (o objectid) GetNamespace() string {
	return o.namespace
}

func (o objectid) GetType() string {
	return o.kind
}

func (o objectid) String() string {
	return StringId(o)
}

// NewObjectId provides a comparable object id.
func NewObjectId(typ, ns, name string) ObjectId {
	return objectid{typ, ns, name}
}

// NewObjectIdFor provides a comparable copy of an id.
func NewObjectIdFor(id ObjectId) ObjectId {
	return objectid{id.GetType(), id.GetNamespace(), id.GetName()}
}

func EqualObjectId(a, b ObjectId) bool {
	return a.GetType() == b.GetType() &&
		a.GetNamespace() == b.GetNamespace() &&
		a.GetName() == b.GetName()
}

func StringId(a ObjectId) string {
	return fmt.Sprintf("%s/%s/%s", a.GetType(), a.GetNamespace(), a.GetName())
}

type pointer[P any] interface {
	Object
	*P
}

func MustRegisterType[T any, P pointer[T], O Object](s runtime.TypeScheme[O], name string) {
	runtime.MustRegister[T, P, O](s, name)
}
