package service

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("datacontainer/service", "http access to models")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
