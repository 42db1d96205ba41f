package importer

import (
	"fmt"

	"github.com/mandelsoft/ifcimport/pkg/schema"
)

// classifier is implemented by entities providing a classification code.
type classifier interface {
	Entity
	Code() string
}

type Classification struct {
	EntityBase
	source  string
	edition string
}

func (c *Classification) Process(s *Session) Result {
	c.name = s.Text(c.handle, "Name")
	c.source = s.Text(c.handle, "Source")
	c.edition = s.Text(c.handle, "Edition")
	return Imported
}

func (c *Classification) Source() string {
	return c.source
}

func (c *Classification) Edition() string {
	return c.edition
}

func (c *Classification) Code() string {
	return c.name
}

// ClassificationReference references an item of a classification.
// The item code is named ItemReference before IFC4.
type ClassificationReference struct {
	EntityBase
	identification string
	source         classifier
}

func (c *ClassificationReference) Process(s *Session) Result {
	h := c.handle
	if s.SchemaVersionAtLeast(schema.IFC4Obsolete) {
		c.identification = s.Text(h, "Identification")
	} else {
		c.identification = s.Text(h, "ItemReference")
	}
	c.name = s.Text(h, "Name")
	if e, r := s.Materialize(s.Ref(h, "ReferencedSource"), ""); r.IsImported() {
		c.source, _ = e.(classifier)
	}
	return Imported
}

func (c *ClassificationReference) Identification() string {
	return c.identification
}

// Code provides the classification code in the form
// [source] identification:name.
func (c *ClassificationReference) Code() string {
	code := c.identification
	if c.name != "" {
		if code != "" {
			code += ":"
		}
		code += c.name
	}
	if code == "" {
		return ""
	}
	if c.source != nil {
		if src := c.sourceName(); src != "" {
			code = fmt.Sprintf("[%s] %s", src, code)
		}
	}
	return code
}

func (c *ClassificationReference) sourceName() string {
	if cl, ok := c.source.(*Classification); ok {
		return cl.Name()
	}
	return ""
}
