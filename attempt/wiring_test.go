package attempt_test

import (
	"techquiz-core/attempt"
	"techquiz-core/event"
	"techquiz-core/gateway"
)

// Production wiring: the gateway client submits attempts and the AMQP
// publisher carries lifecycle events.
var (
	_ attempt.Submitter = (*gateway.Client)(nil)
	_ attempt.Publisher = (*event.Publisher)(nil)
)
