package runtime

// TypeAccessor provides the type name of a typed object.
type TypeAccessor interface {
	GetType() string
}

// Object is a typed object. Its type name is set by the
// scheme creating it.
type Object interface {
	TypeAccessor
	SetType(string)
}

// TypeMeta is the serialized type information of an Object.
type TypeMeta struct {
	Type string `json:"type"`
}

var _ Object = (*TypeMeta)(nil)

func (m *TypeMeta) GetType() string { return m.Type }

func (m *TypeMeta) SetType(t string) { m.Type = t }
