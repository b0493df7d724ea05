package notify

import (
	"fmt"
	"sync"
)

// Failure records a failed delivery.
type Failure struct {
	Recipient string `json:"recipient"`
	Reason    string `json:"reason"`
}

// Report aggregates per-recipient delivery outcomes. Deliveries that fail
// never affect committed state; they are only recorded here.
type Report struct {
	mtx sync.Mutex

	Delivered []string  `json:"delivered,omitempty"`
	Simulated []string  `json:"simulated,omitempty"`
	Failed    []Failure `json:"failed,omitempty"`
}

// Record adds one delivery outcome to the report. It is safe for concurrent
// use.
func (r *Report) Record(recipient string, outcome Outcome, err error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if err != nil {
		r.Failed = append(r.Failed, Failure{Recipient: recipient, Reason: err.Error()})
		return
	}

	switch outcome {
	case OutcomeSimulated:
		r.Simulated = append(r.Simulated, recipient)
	default:
		r.Delivered = append(r.Delivered, recipient)
	}
}

// Sent returns the number of successful deliveries, simulated included.
func (r *Report) Sent() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return len(r.Delivered) + len(r.Simulated)
}

// String returns a short human-readable summary.
func (r *Report) String() string {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return fmt.Sprintf("%d delivered, %d simulated, %d failed",
		len(r.Delivered), len(r.Simulated), len(r.Failed))
}
