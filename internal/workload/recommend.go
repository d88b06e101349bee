package workload

import "fmt"

// RecommendationType grades the urgency of an advisory.
type RecommendationType string

const (
	RecommendationCritical RecommendationType = "critical"
	RecommendationUrgent   RecommendationType = "urgent"
	RecommendationWarning  RecommendationType = "warning"
	RecommendationInfo     RecommendationType = "info"
)

// Recommendation is a human-readable advisory with a machine-usable action.
type Recommendation struct {
	Type    RecommendationType `json:"type"`
	Message string             `json:"message"`
	Action  string             `json:"action"`
}

// BuildRecommendations derives advisories from the score and metric
// breakdowns. Rules are evaluated independently; zero or more may fire, and
// emission order is fixed for deterministic output.
func BuildRecommendations(score int, ticketMetrics TicketMetrics, taskMetrics TaskMetrics, policy Policy) []Recommendation {
	recommendations := []Recommendation{}

	if score >= policy.OverloadedThreshold {
		recommendations = append(recommendations, Recommendation{
			Type:    RecommendationCritical,
			Message: "User is overloaded. Consider reassigning some tickets or tasks.",
			Action:  "reassign_items",
		})
	}
	if ticketMetrics.BySLA.Breached > 0 {
		recommendations = append(recommendations, Recommendation{
			Type:    RecommendationUrgent,
			Message: fmt.Sprintf("%d ticket(s) have breached SLA. Immediate action required.", ticketMetrics.BySLA.Breached),
			Action:  "resolve_breached_tickets",
		})
	}
	if ticketMetrics.BySLA.AtRisk > 0 {
		recommendations = append(recommendations, Recommendation{
			Type:    RecommendationWarning,
			Message: fmt.Sprintf("%d ticket(s) at risk of breaching SLA within %d hours.", ticketMetrics.BySLA.AtRisk, int(policy.AtRiskWindow.Hours())),
			Action:  "prioritize_at_risk_tickets",
		})
	}
	if taskMetrics.Overdue > 0 {
		recommendations = append(recommendations, Recommendation{
			Type:    RecommendationWarning,
			Message: fmt.Sprintf("%d task(s) are overdue.", taskMetrics.Overdue),
			Action:  "complete_overdue_tasks",
		})
	}
	if score < policy.MediumThreshold {
		recommendations = append(recommendations, Recommendation{
			Type:    RecommendationInfo,
			Message: "User has capacity for additional work.",
			Action:  "assign_more_items",
		})
	}

	return recommendations
}
