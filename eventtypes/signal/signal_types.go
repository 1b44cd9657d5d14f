package signal

import "portsim/eventtypes/event"

// Type is a strategy's directional intent for a single asset, prior to
// sizing
type Type string

const (
	// Long indicates intent to hold or increase a long position
	Long Type = "LONG"
	// Short indicates intent to open or increase a short position
	Short Type = "SHORT"
	// Exit indicates intent to close the current position entirely
	Exit Type = "EXIT"
	// Rebalance indicates intent to move the position to its target weight
	Rebalance Type = "REBALANCE"
)

// Event holds every directional intent a strategy emitted for one date
type Event struct {
	event.Base
	Directions map[string]Type
}
