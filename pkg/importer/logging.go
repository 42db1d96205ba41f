package importer

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("ifcimport/importer", "IFC import engine")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
