package event

import "time"

// Base is embedded by every concrete event moving through the simulation
// queue
type Base struct {
	Time     time.Time `json:"time"`
	Strategy string    `json:"strategy,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}

// GetTime returns the simulated date the event belongs to
func (b *Base) GetTime() time.Time {
	return b.Time
}

// GetStrategyName returns the owning strategy, empty for portfolio-level
// events such as market ticks and corporate actions
func (b *Base) GetStrategyName() string {
	return b.Strategy
}

// GetReason returns the stored explanation for the event's existence
func (b *Base) GetReason() string {
	return b.Reason
}

// AppendReason appends a human readable explanation to the event
func (b *Base) AppendReason(s string) {
	if b.Reason == "" {
		b.Reason = s
		return
	}
	b.Reason += ". " + s
}
