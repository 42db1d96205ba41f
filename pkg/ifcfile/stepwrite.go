package ifcfile

import (
	"fmt"
	"io"
	"strings"
)

// WriteSTEP serializes the model as ISO-10303-21 text.
func (m *Model) WriteSTEP(w io.Writer) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	_, err := fmt.Fprintf(w, "ISO-10303-21;\nHEADER;\nFILE_DESCRIPTION(('ViewDefinition [CoordinationView]'),'2;1');\nFILE_NAME('%s','',(''),(''),'','','');\nFILE_SCHEMA(('%s'));\nENDSEC;\nDATA;\n",
		m.name, m.version.Identifier())
	if err != nil {
		return err
	}
	for _, id := range m.order {
		r := m.records[id]
		_, err = fmt.Fprintf(w, "#%d=%s%s;\n", r.id, strings.ToUpper(r.typ), List(r.args...).Format())
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprint(w, "ENDSEC;\nEND-ISO-10303-21;\n")
	return err
}
