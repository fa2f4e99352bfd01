package provider

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("datacontainer/provider", "generic data provider support")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
