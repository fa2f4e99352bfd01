package pool

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("datacontainer/pool", "background worker pool")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
