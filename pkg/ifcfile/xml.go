package ifcfile

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/mandelsoft/ifcimport/pkg/schema"
)

var (
	xmlEntities = xpath.MustCompile("//*[@id]")
	xmlSchemaID = regexp.MustCompile(`(?i)ifc(?:2x[0-9]?|4(?:x[0-9])?)(?:[/_](?:add[0-9]|rc[0-9]|tc[0-9]|final))*`)
)

// xmlAggregates are the attributes encoded as element sequences or
// whitespace separated attribute lists.
var xmlAggregates = map[string]bool{
	"RelatedObjects":         true,
	"RelatedElements":        true,
	"HasProperties":          true,
	"HasPropertySets":        true,
	"MaterialLayers":         true,
	"MaterialProfiles":       true,
	"Materials":              true,
	"Coordinates":            true,
	"DirectionRatios":        true,
	"Representations":        true,
	"RepresentationMaps":     true,
	"RepresentationContexts": true,
	"Items":                  true,
	"EnumerationValues":      true,
	"ReferenceTokens":        true,
}

type xmlReader struct {
	model *Model
	ids   map[string]int
	taken map[int]bool
	next  int
}

// ReadXML parses an ifcXML document. The schema version is taken from
// the namespace or the unit of serialization configuration.
func ReadXML(name string, r io.Reader, cat ...*Catalogue) (*Model, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing ifcXML file %s: %w", name, err)
	}
	v, err := xmlSchema(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	rd := &xmlReader{model: NewModel(name, v, cat...), ids: map[string]int{}, taken: map[int]bool{}}
	nodes := xmlquery.QuerySelectorAll(doc, xmlEntities)
	for _, n := range nodes {
		rd.id(n.SelectAttr("id"))
	}
	for _, n := range nodes {
		if _, err := rd.entity(n); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	log.Debug("read {{amount}} records from {{file}} with schema {{schema}}", "amount", rd.model.Size(), "file", name, "schema", v)
	return rd.model, nil
}

func xmlSchema(doc *xmlquery.Node) (schema.Version, error) {
	var candidates []string
	if uos := xmlquery.FindOne(doc, "//*[local-name()='uos']"); uos != nil {
		candidates = append(candidates, uos.SelectAttr("configuration"))
	}
	if root := doc.SelectElement("*"); root != nil {
		candidates = append(candidates, root.NamespaceURI)
		for _, a := range root.Attr {
			candidates = append(candidates, a.Value)
		}
	}
	for _, c := range candidates {
		if m := xmlSchemaID.FindString(c); m != "" {
			id := strings.ToUpper(strings.ReplaceAll(m, "/", "_"))
			id = strings.TrimSuffix(id, "_FINAL")
			return schema.Parse(id)
		}
	}
	return 0, fmt.Errorf("%w: no schema identifier found", schema.ErrUnknownSchema)
}

func (r *xmlReader) id(s string) int {
	if id, ok := r.ids[s]; ok {
		return id
	}
	id, err := strconv.Atoi(strings.TrimLeft(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"))
	if err != nil || id <= 0 || r.used(id) {
		id = r.fresh()
	}
	r.ids[s] = id
	r.taken[id] = true
	if id > r.next {
		r.next = id
	}
	return id
}

func (r *xmlReader) used(id int) bool {
	return r.taken[id]
}

func (r *xmlReader) fresh() int {
	r.next++
	for r.used(r.next) {
		r.next++
	}
	r.taken[r.next] = true
	return r.next
}

// entity adds the record for an entity element and returns its id.
func (r *xmlReader) entity(n *xmlquery.Node) (int, error) {
	var id int
	if s := n.SelectAttr("id"); s != "" {
		id = r.id(s)
	} else {
		id = r.fresh()
	}
	typ := r.model.catalogue.Canonical(n.Data)
	attrs := map[string]Value{}
	for _, a := range n.Attr {
		if a.Name.Space != "" || a.Name.Local == "id" {
			continue
		}
		attrs[a.Name.Local] = r.scalar(a.Name.Local, a.Value)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		v, err := r.attribute(c)
		if err != nil {
			return 0, fmt.Errorf("%s.%s: %w", typ, c.Data, err)
		}
		attrs[c.Data] = v
	}
	if _, err := r.model.AddNamed(id, typ, r.known(typ, attrs)); err != nil {
		return 0, err
	}
	return id, nil
}

// known drops attributes not defined for the schema, ifcXML documents
// frequently carry derived or inverse attributes.
func (r *xmlReader) known(typ string, attrs map[string]Value) map[string]Value {
	names := r.model.catalogue.Attributes(typ, r.model.Schema())
	result := map[string]Value{}
	for _, n := range names {
		if v, ok := attrs[n]; ok {
			result[n] = v
		}
	}
	for n := range attrs {
		if _, ok := result[n]; !ok {
			log.Trace("ignoring attribute {{attr}} of {{type}}", "attr", n, "type", typ)
		}
	}
	return result
}

func (r *xmlReader) scalar(name, s string) Value {
	if xmlAggregates[name] {
		var l []Value
		for _, f := range strings.Fields(s) {
			l = append(l, String(f))
		}
		return List(l...)
	}
	return String(s)
}

func (r *xmlReader) attribute(n *xmlquery.Node) (Value, error) {
	if ref := n.SelectAttr("ref"); ref != "" {
		return Ref(r.id(ref)), nil
	}
	var elems []Value
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		v, err := r.element(c)
		if err != nil {
			return Unset, err
		}
		elems = append(elems, v)
	}
	if xmlAggregates[n.Data] {
		if len(elems) == 0 {
			return r.scalar(n.Data, n.InnerText()), nil
		}
		return List(elems...), nil
	}
	switch len(elems) {
	case 0:
		return String(strings.TrimSpace(n.InnerText())), nil
	case 1:
		return elems[0], nil
	}
	return List(elems...), nil
}

// element converts a value element, which is either a reference,
// an inline entity or a typed value.
func (r *xmlReader) element(n *xmlquery.Node) (Value, error) {
	if ref := n.SelectAttr("ref"); ref != "" {
		return Ref(r.id(ref)), nil
	}
	if id := n.SelectAttr("id"); id != "" {
		return Ref(r.id(id)), nil
	}
	typ := r.model.catalogue.Canonical(n.Data)
	if r.model.catalogue.Known(typ) {
		id, err := r.entity(n)
		if err != nil {
			return Unset, err
		}
		return Ref(id), nil
	}
	return Typed(n.Data, String(strings.TrimSpace(n.InnerText()))), nil
}
