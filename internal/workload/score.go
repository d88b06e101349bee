package workload

import "math"

// Level is the discrete workload band derived from the score.
type Level string

const (
	LevelLow        Level = "low"
	LevelMedium     Level = "medium"
	LevelHigh       Level = "high"
	LevelOverloaded Level = "overloaded"
)

// ScoreWorkload combines item count, SLA-weighted urgency and estimated
// effort into a bounded 0-100 score. Each component is capped so no single
// factor can saturate the score on its own.
func ScoreWorkload(ticketCount, taskCount, totalWeight int, estimatedHours float64, policy Policy) int {
	itemScore := math.Min(policy.ItemScoreCap, float64(ticketCount+taskCount)*policy.ItemScoreFactor)
	slaScore := math.Min(policy.SLAScoreCap, float64(totalWeight)*policy.SLAScoreFactor)
	hoursScore := math.Min(policy.HoursScoreCap, estimatedHours*policy.HoursScoreFactor)

	score := math.Min(100, math.Round(itemScore+slaScore+hoursScore))
	return int(score)
}

// LevelForScore maps a score to its workload level. Band boundaries are
// inclusive on the lower bound.
func LevelForScore(score int, policy Policy) Level {
	switch {
	case score >= policy.OverloadedThreshold:
		return LevelOverloaded
	case score >= policy.HighThreshold:
		return LevelHigh
	case score >= policy.MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}
