package main

import (
	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/logging/logrusl"
	"github.com/mandelsoft/logging/logrusr"
)

var REALM = logging.NewRealm("dcfake")

var log logging.Logger

func init() {
	logcfg := logrusl.Human(true)
	lctx := logging.DefaultContext()
	lctx.SetBaseLogger(logrusr.New(logcfg.NewLogrus()))

	lctx.AddRule(logging.NewConditionRule(logging.InfoLevel, logging.NewRealmPrefix("dcfake")))
	log = lctx.Logger(REALM)
}
