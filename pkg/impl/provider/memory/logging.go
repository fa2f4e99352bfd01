package memory

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("datacontainer/provider/memory", "in-memory data provider")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
