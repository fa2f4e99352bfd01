package container

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("datacontainer/container", "data container setup")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
