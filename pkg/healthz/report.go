package healthz

import (
	"fmt"
	"sync"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("datacontainer/healthz", "server health monitoring")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

// Check probes a resource, for example a model store.
type Check func() error

var (
	checks = map[string]Check{}
	lock   sync.Mutex
)

func Register(key string, c Check) {
	lock.Lock()
	defer lock.Unlock()

	checks[key] = c
}

func Unregister(key string) {
	lock.Lock()
	defer lock.Unlock()

	delete(checks, key)
}

func IsHealthy() bool {
	ok, _ := HealthInfo()
	return ok
}

// HealthInfo runs all checks in key order and reports
// their results.
func HealthInfo() (bool, string) {
	lock.Lock()
	defer lock.Unlock()

	ok := true
	info := ""
	for _, key := range sets.List(sets.KeySet(checks)) {
		if err := checks[key](); err != nil {
			log.Warn("health check {{key}} failed", "key", key, "error", err)
			info = fmt.Sprintf("%s%s: %s\n", info, key, err)
			ok = false
		} else {
			log.Debug("health check {{key}} succeeded", "key", key)
			info = fmt.Sprintf("%s%s: ok\n", info, key)
		}
	}
	return ok, info
}
