package relationship

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("datacontainer/relationship", "model relationships")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
