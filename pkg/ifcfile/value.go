package ifcfile

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	KindUnset Kind = iota
	KindDerived
	KindReference
	KindString
	KindInteger
	KindReal
	KindBoolean
	KindEnum
	KindList
	KindTyped
)

var kindNames = map[Kind]string{
	KindUnset:     "unset",
	KindDerived:   "derived",
	KindReference: "reference",
	KindString:    "string",
	KindInteger:   "integer",
	KindReal:      "real",
	KindBoolean:   "boolean",
	KindEnum:      "enum",
	KindList:      "list",
	KindTyped:     "typed",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Value is a single attribute value of a raw record.
// The zero value is an unset value.
type Value struct {
	kind Kind
	ref  int
	str  string
	i    int64
	f    float64
	b    bool
	list []Value
}

var Unset = Value{}
var Derived = Value{kind: KindDerived}

func Ref(id int) Value {
	return Value{kind: KindReference, ref: id}
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func Integer(i int64) Value {
	return Value{kind: KindInteger, i: i}
}

func Real(f float64) Value {
	return Value{kind: KindReal, f: f}
}

func Boolean(b bool) Value {
	return Value{kind: KindBoolean, b: b}
}

// Enum creates an enumeration value. The dots used by the STEP
// encoding are not part of the name.
func Enum(e string) Value {
	return Value{kind: KindEnum, str: strings.ToUpper(e)}
}

func List(elems ...Value) Value {
	return Value{kind: KindList, list: elems}
}

func Refs(ids ...int) Value {
	l := make([]Value, len(ids))
	for i, id := range ids {
		l[i] = Ref(id)
	}
	return List(l...)
}

// Typed creates a typed (defined type) value like IFCLABEL('x').
func Typed(typ string, v Value) Value {
	return Value{kind: KindTyped, str: typ, list: []Value{v}}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsUnset() bool {
	return v.kind == KindUnset || v.kind == KindDerived
}

// Underlying strips typed value wrappers.
func (v Value) Underlying() Value {
	for v.kind == KindTyped && len(v.list) == 1 {
		v = v.list[0]
	}
	return v
}

// TypeName returns the defined type name of a typed value.
func (v Value) TypeName() string {
	if v.kind == KindTyped {
		return v.str
	}
	return ""
}

func (v Value) Ref() (int, bool) {
	v = v.Underlying()
	if v.kind == KindReference {
		return v.ref, true
	}
	return 0, false
}

func (v Value) Text() (string, bool) {
	v = v.Underlying()
	switch v.kind {
	case KindString, KindEnum:
		return v.str, true
	case KindInteger:
		return strconv.FormatInt(v.i, 10), true
	case KindReal:
		return strconv.FormatFloat(v.f, 'g', -1, 64), true
	case KindBoolean:
		return strconv.FormatBool(v.b), true
	}
	return "", false
}

func (v Value) Integer() (int64, bool) {
	v = v.Underlying()
	switch v.kind {
	case KindInteger:
		return v.i, true
	case KindReal:
		return int64(v.f), true
	case KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(v.str), 10, 64)
		return i, err == nil
	}
	return 0, false
}

func (v Value) Real() (float64, bool) {
	v = v.Underlying()
	switch v.kind {
	case KindReal:
		return v.f, true
	case KindInteger:
		return float64(v.i), true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		return f, err == nil
	}
	return 0, false
}

// Bool interprets booleans, STEP logical enumerations (T, F) and
// textual booleans used by ifcXML.
func (v Value) Bool() (bool, bool) {
	v = v.Underlying()
	switch v.kind {
	case KindBoolean:
		return v.b, true
	case KindEnum:
		switch v.str {
		case "T", "TRUE":
			return true, true
		case "F", "FALSE":
			return false, true
		}
	case KindString:
		b, err := strconv.ParseBool(strings.TrimSpace(v.str))
		return b, err == nil
	}
	return false, false
}

func (v Value) Enum() (string, bool) {
	v = v.Underlying()
	switch v.kind {
	case KindEnum:
		return v.str, true
	case KindString:
		return strings.ToUpper(v.str), true
	}
	return "", false
}

func (v Value) List() ([]Value, bool) {
	v = v.Underlying()
	if v.kind == KindList {
		return v.list, true
	}
	return nil, false
}

func (v Value) Format() string {
	switch v.kind {
	case KindUnset:
		return "$"
	case KindDerived:
		return "*"
	case KindReference:
		return fmt.Sprintf("#%d", v.ref)
	case KindString:
		e := strings.ReplaceAll(v.str, `\`, `\\`)
		return "'" + strings.ReplaceAll(e, "'", "''") + "'"
	case KindReal:
		r := strconv.FormatFloat(v.f, 'G', -1, 64)
		if !strings.Contains(r, ".") {
			if i := strings.Index(r, "E"); i >= 0 {
				r = r[:i] + "." + r[i:]
			} else {
				r += "."
			}
		}
		return r
	case KindEnum:
		return "." + v.str + "."
	case KindBoolean:
		if v.b {
			return ".T."
		}
		return ".F."
	case KindTyped:
		return strings.ToUpper(v.str) + "(" + v.list[0].Format() + ")"
	case KindList:
		s := make([]string, len(v.list))
		for i, e := range v.list {
			s[i] = e.Format()
		}
		return "(" + strings.Join(s, ",") + ")"
	}
	r, _ := v.Text()
	return r
}
