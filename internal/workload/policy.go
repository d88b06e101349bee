package workload

import "time"

// Policy bundles the SLA windows, urgency weights and scoring factors that
// drive workload computation. Values are injected rather than hardcoded so
// the policy can be tuned and tested independently of the aggregation
// logic.
type Policy struct {
	// AtRiskWindow is how close to its due date a ticket must be before it
	// is classified at_risk.
	AtRiskWindow   time.Duration
	DueSoonWindow  time.Duration
	NearTermWindow time.Duration
	WeekWindow     time.Duration

	// Ticket weights by remaining time to due date.
	TicketBreachedWeight int
	TicketAtRiskWeight   int
	TicketDueSoonWeight  int
	TicketNearTermWeight int
	TicketBaseWeight     int

	// Task weights by remaining time to deadline. Coarser than tickets.
	TaskOverdueWeight  int
	TaskDueSoonWeight  int
	TaskNearTermWeight int
	TaskBaseWeight     int

	// Score composition. Each sub-score is factor*input capped at its cap;
	// the caps sum to 100.
	ItemScoreFactor  float64
	ItemScoreCap     float64
	SLAScoreFactor   float64
	SLAScoreCap      float64
	HoursScoreFactor float64
	HoursScoreCap    float64

	// Level thresholds, inclusive on the lower bound of each band.
	MediumThreshold     int
	HighThreshold       int
	OverloadedThreshold int
}

// DefaultPolicy returns the stock policy.
func DefaultPolicy() Policy {
	return Policy{
		AtRiskWindow:   4 * time.Hour,
		DueSoonWindow:  24 * time.Hour,
		NearTermWindow: 72 * time.Hour,
		WeekWindow:     168 * time.Hour,

		TicketBreachedWeight: 10,
		TicketAtRiskWeight:   7,
		TicketDueSoonWeight:  5,
		TicketNearTermWeight: 3,
		TicketBaseWeight:     1,

		TaskOverdueWeight:  8,
		TaskDueSoonWeight:  5,
		TaskNearTermWeight: 3,
		TaskBaseWeight:     1,

		ItemScoreFactor:  2,
		ItemScoreCap:     50,
		SLAScoreFactor:   1.5,
		SLAScoreCap:      30,
		HoursScoreFactor: 0.5,
		HoursScoreCap:    20,

		MediumThreshold:     30,
		HighThreshold:       60,
		OverloadedThreshold: 80,
	}
}
