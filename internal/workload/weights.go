package workload

import (
	"math"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// WeightedLoad is the SLA-weighted urgency signal across a user's tickets
// and tasks. It is a heuristic priority signal, not a guaranteed SLA
// predictor.
type WeightedLoad struct {
	TotalWeight   int     `json:"total_weight"`
	CriticalItems int     `json:"critical_items"`
	UrgentItems   int     `json:"urgent_items"`
	AverageWeight float64 `json:"average_weight"`
}

// CalculateWeightedLoad assigns each item a weight from its remaining time
// to deadline and combines them. Items past their deadline count as
// critical; items within the due-soon horizon count as urgent.
func CalculateWeightedLoad(tickets []domain.Ticket, tasks []domain.Task, now time.Time, policy Policy) WeightedLoad {
	var load WeightedLoad

	for i := range tickets {
		ticket := &tickets[i]
		if ticket.DueDate == nil {
			load.TotalWeight += policy.TicketBaseWeight
			continue
		}
		remaining := ticket.DueDate.Sub(now)
		switch {
		case remaining < 0:
			load.TotalWeight += policy.TicketBreachedWeight
			load.CriticalItems++
		case remaining < policy.AtRiskWindow:
			load.TotalWeight += policy.TicketAtRiskWeight
			load.UrgentItems++
		case remaining < policy.DueSoonWindow:
			load.TotalWeight += policy.TicketDueSoonWeight
			load.UrgentItems++
		case remaining < policy.NearTermWindow:
			load.TotalWeight += policy.TicketNearTermWeight
		default:
			load.TotalWeight += policy.TicketBaseWeight
		}
	}

	for i := range tasks {
		task := &tasks[i]
		if task.Deadline == nil {
			load.TotalWeight += policy.TaskBaseWeight
			continue
		}
		remaining := task.Deadline.Sub(now)
		switch {
		case remaining < 0:
			load.TotalWeight += policy.TaskOverdueWeight
			load.CriticalItems++
		case remaining < policy.DueSoonWindow:
			load.TotalWeight += policy.TaskDueSoonWeight
			load.UrgentItems++
		case remaining < policy.NearTermWindow:
			load.TotalWeight += policy.TaskNearTermWeight
		default:
			load.TotalWeight += policy.TaskBaseWeight
		}
	}

	if total := len(tickets) + len(tasks); total > 0 {
		load.AverageWeight = roundTo(float64(load.TotalWeight)/float64(total), 2)
	}
	return load
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
