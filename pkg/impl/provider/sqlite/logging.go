package sqlite

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("datacontainer/provider/sqlite", "sqlite based data provider")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
