package filesystem

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("datacontainer/provider/filesystem", "file system based data provider")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
