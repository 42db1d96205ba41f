package filesystem

import (
	"github.com/mandelsoft/logging"

	"github.com/mandelsoft/ifcimport/pkg/database"
)

var log = logging.DynamicLogger(logging.DefaultContext(), database.REALM)
