package server

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("datacontainer/server", "http server")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
