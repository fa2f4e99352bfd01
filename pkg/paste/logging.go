package paste

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("datacontainer/paste", "moving models")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
