package database

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("ifcimport/database", "element document store")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
