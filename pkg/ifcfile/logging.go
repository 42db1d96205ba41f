package ifcfile

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("ifcimport/ifcfile", "IFC file access")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
