package collector

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("datacontainer/collector", "model collector")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
