package workload

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// TicketStatusCounts breaks active tickets down by status. Every field is
// declared and zero-filled so reports never carry missing buckets.
type TicketStatusCounts struct {
	Open       int `json:"open"`
	Assigned   int `json:"assigned"`
	InProgress int `json:"in_progress"`
}

// TaskStatusCounts breaks active tasks down by status.
type TaskStatusCounts struct {
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Review     int `json:"review"`
}

// PriorityCounts breaks items down by priority.
type PriorityCounts struct {
	Urgent int `json:"urgent"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// SLACounts buckets active tickets by SLA state. Met never appears here
// because metrics operate on active tickets only.
type SLACounts struct {
	Breached int `json:"breached"`
	AtRisk   int `json:"at_risk"`
	OnTrack  int `json:"on_track"`
	Unknown  int `json:"unknown"`
}

// TicketMetrics aggregates a user's active tickets.
type TicketMetrics struct {
	Total          int                `json:"total"`
	ByStatus       TicketStatusCounts `json:"by_status"`
	ByPriority     PriorityCounts     `json:"by_priority"`
	BySLA          SLACounts          `json:"by_sla"`
	Overdue        int                `json:"overdue"`
	DueWithin24h   int                `json:"due_within_24h"`
	DueWithin7Days int                `json:"due_within_7_days"`
}

// TaskMetrics aggregates a user's active tasks.
type TaskMetrics struct {
	Total               int              `json:"total"`
	ByStatus            TaskStatusCounts `json:"by_status"`
	ByPriority          PriorityCounts   `json:"by_priority"`
	Overdue             int              `json:"overdue"`
	DueWithin24h        int              `json:"due_within_24h"`
	DueWithin7Days      int              `json:"due_within_7_days"`
	TotalEstimatedHours float64          `json:"total_estimated_hours"`
}

// AggregateTicketMetrics reduces active tickets into per-status,
// per-priority and per-SLA counts. Unrecognized status or priority values
// are skipped rather than rejected so malformed records never block score
// computation.
func AggregateTicketMetrics(tickets []domain.Ticket, now time.Time, policy Policy) TicketMetrics {
	metrics := TicketMetrics{Total: len(tickets)}

	for i := range tickets {
		ticket := &tickets[i]

		switch ticket.Status {
		case domain.TicketStatusOpen:
			metrics.ByStatus.Open++
		case domain.TicketStatusAssigned:
			metrics.ByStatus.Assigned++
		case domain.TicketStatusInProgress:
			metrics.ByStatus.InProgress++
		}

		countPriority(&metrics.ByPriority, string(ticket.Priority))

		switch ClassifySLA(ticket, now, policy) {
		case SLABreached:
			metrics.BySLA.Breached++
			metrics.Overdue++
		case SLAAtRisk:
			metrics.BySLA.AtRisk++
		case SLAOnTrack:
			metrics.BySLA.OnTrack++
		case SLAUnknown:
			metrics.BySLA.Unknown++
		}

		if ticket.DueDate != nil {
			remaining := ticket.DueDate.Sub(now)
			switch {
			case remaining < 0:
			case remaining < policy.DueSoonWindow:
				metrics.DueWithin24h++
			case remaining < policy.WeekWindow:
				metrics.DueWithin7Days++
			}
		}
	}

	return metrics
}

// AggregateTaskMetrics mirrors AggregateTicketMetrics for tasks, keyed on
// the task deadline, and sums estimated hours.
func AggregateTaskMetrics(tasks []domain.Task, now time.Time, policy Policy) TaskMetrics {
	metrics := TaskMetrics{Total: len(tasks)}

	for i := range tasks {
		task := &tasks[i]

		switch task.Status {
		case domain.TaskStatusTodo:
			metrics.ByStatus.Todo++
		case domain.TaskStatusInProgress:
			metrics.ByStatus.InProgress++
		case domain.TaskStatusReview:
			metrics.ByStatus.Review++
		}

		countPriority(&metrics.ByPriority, string(task.Priority))

		if task.EstimatedHours > 0 {
			metrics.TotalEstimatedHours += task.EstimatedHours
		}

		if task.Deadline != nil {
			remaining := task.Deadline.Sub(now)
			switch {
			case remaining < 0:
				metrics.Overdue++
			case remaining < policy.DueSoonWindow:
				metrics.DueWithin24h++
			case remaining < policy.WeekWindow:
				metrics.DueWithin7Days++
			}
		}
	}

	return metrics
}

func countPriority(counts *PriorityCounts, priority string) {
	switch priority {
	case string(domain.TicketPriorityUrgent):
		counts.Urgent++
	case string(domain.TicketPriorityHigh):
		counts.High++
	case string(domain.TicketPriorityMedium):
		counts.Medium++
	case string(domain.TicketPriorityLow):
		counts.Low++
	}
}
