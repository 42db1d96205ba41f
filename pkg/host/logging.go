package host

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("ifcimport/host", "host document")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
