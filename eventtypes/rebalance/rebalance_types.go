package rebalance

import "portsim/eventtypes/event"

// Event marks the point within a simulated day where corporate actions have
// been applied and capital allocation plus signal generation may run
type Event struct {
	event.Base
}
