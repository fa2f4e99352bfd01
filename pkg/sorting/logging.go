package sorting

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("datacontainer/sorting", "model sorting")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
