package schema

import (
	"fmt"
	"strings"
)

// Version is an IFC schema revision. Versions are totally ordered
// by their release, so comparisons can be used to gate behaviour.
type Version int

const (
	IFC2x Version = iota
	IFC2x2
	IFC2x3
	IFC2x3TC1
	IFC4Obsolete
	IFC4Add1Obsolete
	IFC4Add2
	IFC4
	IFC4x1
	IFC4x2
	IFC4x3RC1
	IFC4x3RC4
	IFC4x3
	IFC4x3Add2
)

var ErrUnknownSchema = fmt.Errorf("unknown schema")

var names = map[Version]string{
	IFC2x:            "IFC2x",
	IFC2x2:           "IFC2x2",
	IFC2x3:           "IFC2x3",
	IFC2x3TC1:        "IFC2x3TC1",
	IFC4Obsolete:     "IFC4Obsolete",
	IFC4Add1Obsolete: "IFC4Add1Obsolete",
	IFC4Add2:         "IFC4Add2",
	IFC4:             "IFC4",
	IFC4x1:           "IFC4x1",
	IFC4x2:           "IFC4x2",
	IFC4x3RC1:        "IFC4x3RC1",
	IFC4x3RC4:        "IFC4x3RC4",
	IFC4x3:           "IFC4x3",
	IFC4x3Add2:       "IFC4x3Add2",
}

// identifiers maps normalized header identifiers to versions.
// Plain IFC4 cannot be told apart from its addenda, so it maps
// to the newest dialect.
var identifiers = map[string]Version{
	"IFC2X":          IFC2x,
	"IFC2X_FINAL":    IFC2x,
	"IFC2X2":         IFC2x2,
	"IFC2X2_FINAL":   IFC2x2,
	"IFC2X3":         IFC2x3,
	"IFC2X3_FINAL":   IFC2x3,
	"IFC2X3_TC1":     IFC2x3TC1,
	"IFC2X3TC1":      IFC2x3TC1,
	"IFC4":           IFC4,
	"IFC4_ADD2_TC1":  IFC4,
	"IFC4_ADD2":      IFC4Add2,
	"IFC4ADD2":       IFC4Add2,
	"IFC4_ADD1":      IFC4Add1Obsolete,
	"IFC4ADD1":       IFC4Add1Obsolete,
	"IFC4RC4":        IFC4Obsolete,
	"IFC4_RC4":       IFC4Obsolete,
	"IFC4X1":         IFC4x1,
	"IFC4X1_FINAL":   IFC4x1,
	"IFC4X2":         IFC4x2,
	"IFC4X2_FINAL":   IFC4x2,
	"IFC4X3_RC1":     IFC4x3RC1,
	"IFC4X3RC1":      IFC4x3RC1,
	"IFC4X3_RC4":     IFC4x3RC4,
	"IFC4X3RC4":      IFC4x3RC4,
	"IFC4X3":         IFC4x3,
	"IFC4X3_TC1":     IFC4x3,
	"IFC4X3_ADD2":    IFC4x3Add2,
	"IFC4X3ADD2":     IFC4x3Add2,
	"IFC4X3_ADD2_TC": IFC4x3Add2,
}

func (v Version) String() string {
	if n, ok := names[v]; ok {
		return n
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

var headers = map[Version]string{
	IFC2x:            "IFC2X",
	IFC2x2:           "IFC2X2_FINAL",
	IFC2x3:           "IFC2X3",
	IFC2x3TC1:        "IFC2X3_TC1",
	IFC4Obsolete:     "IFC4_RC4",
	IFC4Add1Obsolete: "IFC4_ADD1",
	IFC4Add2:         "IFC4_ADD2",
	IFC4:             "IFC4",
	IFC4x1:           "IFC4X1",
	IFC4x2:           "IFC4X2",
	IFC4x3RC1:        "IFC4X3_RC1",
	IFC4x3RC4:        "IFC4X3_RC4",
	IFC4x3:           "IFC4X3",
	IFC4x3Add2:       "IFC4X3_ADD2",
}

// Identifier returns the schema identifier used in file headers.
func (v Version) Identifier() string {
	return headers[v]
}

func (v Version) AtLeast(o Version) bool {
	return v >= o
}

func (v Version) Valid() bool {
	return v >= IFC2x && v <= IFC4x3Add2
}

// Versions returns all supported versions in ascending order.
func Versions() []Version {
	r := make([]Version, 0, len(names))
	for v := IFC2x; v <= IFC4x3Add2; v++ {
		r = append(r, v)
	}
	return r
}

// Parse maps a schema identifier as found in a file header
// to a schema version.
func Parse(name string) (Version, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.Trim(n, "'\"")
	if v, ok := identifiers[n]; ok {
		return v, nil
	}
	for v, s := range names {
		if strings.EqualFold(s, n) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownSchema, name)
}
