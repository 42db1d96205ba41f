package ifcfile

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/mandelsoft/ifcimport/pkg/schema"
)

// stepLexer tokenizes ISO-10303-21 exchange files.
// Order matters: enumerations and reals must be matched before
// keywords and integers.
var stepLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `/\*([^*]|\*+[^*/])*\*+/`},
	{Name: "String", Pattern: `'(?:[^']|'')*'`},
	{Name: "Binary", Pattern: `"[0-9A-Fa-f]*"`},
	{Name: "Ref", Pattern: `#[0-9]+`},
	{Name: "Enum", Pattern: `\.[A-Za-z_][A-Za-z0-9_]*\.`},
	{Name: "Real", Pattern: `[-+]?[0-9]+\.[0-9]*(?:[eE][-+]?[0-9]+)?`},
	{Name: "Integer", Pattern: `[-+]?[0-9]+`},
	{Name: "Section", Pattern: `(?:ENDSEC|END-ISO-10303-21)\b`},
	{Name: "Keyword", Pattern: `[A-Za-z_][A-Za-z0-9_]*(?:-[A-Za-z0-9_]+)*`},
	{Name: "Punct", Pattern: `[()=,;$*]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

type stepFile struct {
	Header []*stepEntity   `"ISO-10303-21" ";" "HEADER" ";" ( @@ ";" )* "ENDSEC" ";"`
	Data   []*stepInstance `"DATA" ";" ( @@ ";" )* "ENDSEC" ";" "END-ISO-10303-21" ";"`
}

type stepInstance struct {
	Id     string      `@Ref "="`
	Entity *stepEntity `@@`
}

type stepEntity struct {
	Type   string       `@Keyword`
	Params []*stepParam `"(" ( @@ ( "," @@ )* )? ")"`
}

type stepParam struct {
	Ref     *string      `  @Ref`
	String  *string      `| @( String | Binary )`
	Enum    *string      `| @Enum`
	Real    *float64     `| @Real`
	Integer *int64       `| @Integer`
	Unset   bool         `| @"$"`
	Derived bool         `| @"*"`
	IsList  bool         `| @"("`
	Items   []*stepParam `  ( @@ ( "," @@ )* )? ")"`
	Typed   *stepEntity  `| @@`
}

var stepParser = participle.MustBuild[stepFile](
	participle.Lexer(stepLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(2),
)

// ReadSTEP parses an ISO-10303-21 file. The schema version is taken
// from the FILE_SCHEMA header entry.
func ReadSTEP(name string, r io.Reader, cat ...*Catalogue) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := stepParser.ParseBytes(name, data)
	if err != nil {
		return nil, fmt.Errorf("parsing STEP file %s: %w", name, err)
	}
	v, err := stepSchema(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	m := NewModel(name, v, cat...)
	for _, inst := range f.Data {
		id, err := parseRef(inst.Id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		args := make([]Value, len(inst.Entity.Params))
		for i, p := range inst.Entity.Params {
			args[i], err = p.value()
			if err != nil {
				return nil, fmt.Errorf("%s: #%d: %w", name, id, err)
			}
		}
		m.Add(id, inst.Entity.Type, args...)
	}
	log.Debug("read {{amount}} records from {{file}} with schema {{schema}}", "amount", len(f.Data), "file", name, "schema", v)
	return m, nil
}

// stepSchema extracts the schema version from the FILE_SCHEMA header entry.
func stepSchema(f *stepFile) (schema.Version, error) {
	for _, h := range f.Header {
		if !strings.EqualFold(h.Type, "FILE_SCHEMA") || len(h.Params) == 0 {
			continue
		}
		p := h.Params[0]
		if p.IsList && len(p.Items) > 0 && p.Items[0].String != nil {
			return schema.Parse(decodeSTEPString(*p.Items[0].String))
		}
		if p.String != nil {
			return schema.Parse(decodeSTEPString(*p.String))
		}
	}
	return 0, fmt.Errorf("%w: no FILE_SCHEMA header", schema.ErrUnknownSchema)
}

func parseRef(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid instance reference %q", s)
	}
	return id, nil
}

func (p *stepParam) value() (Value, error) {
	switch {
	case p.Ref != nil:
		id, err := parseRef(*p.Ref)
		if err != nil {
			return Unset, err
		}
		return Ref(id), nil
	case p.String != nil:
		s := *p.String
		if strings.HasPrefix(s, `"`) {
			return String(strings.Trim(s, `"`)), nil
		}
		return String(decodeSTEPString(s)), nil
	case p.Enum != nil:
		e := strings.Trim(*p.Enum, ".")
		switch strings.ToUpper(e) {
		case "T":
			return Boolean(true), nil
		case "F":
			return Boolean(false), nil
		}
		return Enum(e), nil
	case p.Real != nil:
		return Real(*p.Real), nil
	case p.Integer != nil:
		return Integer(*p.Integer), nil
	case p.Unset:
		return Unset, nil
	case p.Derived:
		return Derived, nil
	case p.IsList:
		l := make([]Value, len(p.Items))
		for i, e := range p.Items {
			v, err := e.value()
			if err != nil {
				return Unset, err
			}
			l[i] = v
		}
		return List(l...), nil
	case p.Typed != nil:
		if len(p.Typed.Params) != 1 {
			return Unset, fmt.Errorf("typed value %s requires exactly one parameter", p.Typed.Type)
		}
		v, err := p.Typed.Params[0].value()
		if err != nil {
			return Unset, err
		}
		return Typed(Default.Canonical(p.Typed.Type), v), nil
	}
	return Unset, fmt.Errorf("invalid parameter")
}
