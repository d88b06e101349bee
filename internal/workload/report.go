package workload

import (
	"math"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// Summary is the headline block of a workload report.
type Summary struct {
	TotalTickets   int     `json:"total_tickets"`
	TotalTasks     int     `json:"total_tasks"`
	TotalItems     int     `json:"total_items"`
	EstimatedHours float64 `json:"estimated_hours"`
	Score          int     `json:"workload_score"`
	Level          Level   `json:"workload_level"`
}

// PrioritySplit pairs ticket and task counts for one priority.
type PrioritySplit struct {
	Tickets int `json:"tickets"`
	Tasks   int `json:"tasks"`
}

// PriorityBreakdown splits items by priority and kind.
type PriorityBreakdown struct {
	Urgent PrioritySplit `json:"urgent"`
	High   PrioritySplit `json:"high"`
	Medium PrioritySplit `json:"medium"`
	Low    PrioritySplit `json:"low"`
}

// StatusBreakdown splits items by status and kind.
type StatusBreakdown struct {
	Tickets TicketStatusCounts `json:"tickets"`
	Tasks   TaskStatusCounts   `json:"tasks"`
}

// BucketedTicket identifies a ticket inside an SLA bucket listing.
// HoursRemaining is absent for tickets without a due date.
type BucketedTicket struct {
	ID             string                `json:"id"`
	Number         string                `json:"number"`
	Subject        string                `json:"subject"`
	Priority       domain.TicketPriority `json:"priority"`
	DueDate        *time.Time            `json:"due_date,omitempty"`
	HoursRemaining *float64              `json:"hours_remaining,omitempty"`
}

// SLABuckets lists active tickets per SLA state.
type SLABuckets struct {
	Breached []BucketedTicket `json:"breached"`
	AtRisk   []BucketedTicket `json:"at_risk"`
	OnTrack  []BucketedTicket `json:"on_track"`
	Unknown  []BucketedTicket `json:"unknown"`
}

// Breakdown groups the report's detailed views.
type Breakdown struct {
	ByPriority PriorityBreakdown `json:"by_priority"`
	ByStatus   StatusBreakdown   `json:"by_status"`
	BySLA      SLABuckets        `json:"by_sla"`
}

// Report is the per-user workload report. It is a pure function of the
// ticket/task snapshot and the clock: constructed fresh on each request,
// never cached, never persisted.
type Report struct {
	UserID          string           `json:"user_id"`
	Summary         Summary          `json:"summary"`
	Tickets         TicketMetrics    `json:"tickets"`
	Tasks           TaskMetrics      `json:"tasks"`
	SLA             WeightedLoad     `json:"sla"`
	Breakdown       Breakdown        `json:"breakdown"`
	Recommendations []Recommendation `json:"recommendations"`
}

// TeamMember is one row of a team workload report.
type TeamMember struct {
	UserID        string `json:"user_id"`
	Score         int    `json:"workload_score"`
	Level         Level  `json:"workload_level"`
	TotalItems    int    `json:"total_items"`
	CriticalItems int    `json:"critical_items"`
	UrgentItems   int    `json:"urgent_items"`
}

// TeamStats summarizes a team workload report.
type TeamStats struct {
	TotalMembers      int `json:"total_members"`
	TotalTickets      int `json:"total_tickets"`
	TotalTasks        int `json:"total_tasks"`
	AverageScore      int `json:"average_workload_score"`
	OverloadedMembers int `json:"overloaded_members"`
	CapacityMembers   int `json:"capacity_members"`
}

// TeamReport aggregates per-user reports with no shared state between them.
type TeamReport struct {
	Stats   TeamStats    `json:"team_stats"`
	Members []TeamMember `json:"members"`
}

// BuildReport assembles a user's workload report from a snapshot of their
// active tickets and tasks, evaluated at a single instant.
func BuildReport(userID string, tickets []domain.Ticket, tasks []domain.Task, now time.Time, policy Policy) *Report {
	ticketMetrics := AggregateTicketMetrics(tickets, now, policy)
	taskMetrics := AggregateTaskMetrics(tasks, now, policy)
	load := CalculateWeightedLoad(tickets, tasks, now, policy)
	estimatedHours := totalEstimatedHours(tickets, tasks)

	score := ScoreWorkload(ticketMetrics.Total, taskMetrics.Total, load.TotalWeight, estimatedHours, policy)
	level := LevelForScore(score, policy)

	return &Report{
		UserID: userID,
		Summary: Summary{
			TotalTickets:   len(tickets),
			TotalTasks:     len(tasks),
			TotalItems:     len(tickets) + len(tasks),
			EstimatedHours: estimatedHours,
			Score:          score,
			Level:          level,
		},
		Tickets: ticketMetrics,
		Tasks:   taskMetrics,
		SLA:     load,
		Breakdown: Breakdown{
			ByPriority: breakdownByPriority(tickets, tasks),
			ByStatus: StatusBreakdown{
				Tickets: ticketMetrics.ByStatus,
				Tasks:   taskMetrics.ByStatus,
			},
			BySLA: breakdownBySLA(tickets, now, policy),
		},
		Recommendations: BuildRecommendations(score, ticketMetrics, taskMetrics, policy),
	}
}

// BuildTeamReport reduces per-user reports into team totals. The member
// order follows the input order.
func BuildTeamReport(reports []*Report) *TeamReport {
	team := &TeamReport{
		Stats:   TeamStats{TotalMembers: len(reports)},
		Members: make([]TeamMember, 0, len(reports)),
	}

	scoreSum := 0
	for _, report := range reports {
		team.Stats.TotalTickets += report.Summary.TotalTickets
		team.Stats.TotalTasks += report.Summary.TotalTasks
		scoreSum += report.Summary.Score
		switch report.Summary.Level {
		case LevelOverloaded:
			team.Stats.OverloadedMembers++
		case LevelLow:
			team.Stats.CapacityMembers++
		}
		team.Members = append(team.Members, TeamMember{
			UserID:        report.UserID,
			Score:         report.Summary.Score,
			Level:         report.Summary.Level,
			TotalItems:    report.Summary.TotalItems,
			CriticalItems: report.SLA.CriticalItems,
			UrgentItems:   report.SLA.UrgentItems,
		})
	}

	if len(reports) > 0 {
		team.Stats.AverageScore = int(math.Round(float64(scoreSum) / float64(len(reports))))
	}
	return team
}

func totalEstimatedHours(tickets []domain.Ticket, tasks []domain.Task) float64 {
	total := 0.0
	for i := range tickets {
		if tickets[i].EstimatedResolutionTime != nil {
			total += *tickets[i].EstimatedResolutionTime
		}
	}
	for i := range tasks {
		if tasks[i].EstimatedHours > 0 {
			total += tasks[i].EstimatedHours
		}
	}
	return roundTo(total, 1)
}

func breakdownByPriority(tickets []domain.Ticket, tasks []domain.Task) PriorityBreakdown {
	var breakdown PriorityBreakdown
	for i := range tickets {
		if split := breakdown.split(string(tickets[i].Priority)); split != nil {
			split.Tickets++
		}
	}
	for i := range tasks {
		if split := breakdown.split(string(tasks[i].Priority)); split != nil {
			split.Tasks++
		}
	}
	return breakdown
}

func (b *PriorityBreakdown) split(priority string) *PrioritySplit {
	switch priority {
	case string(domain.TicketPriorityUrgent):
		return &b.Urgent
	case string(domain.TicketPriorityHigh):
		return &b.High
	case string(domain.TicketPriorityMedium):
		return &b.Medium
	case string(domain.TicketPriorityLow):
		return &b.Low
	}
	return nil
}

func breakdownBySLA(tickets []domain.Ticket, now time.Time, policy Policy) SLABuckets {
	buckets := SLABuckets{
		Breached: []BucketedTicket{},
		AtRisk:   []BucketedTicket{},
		OnTrack:  []BucketedTicket{},
		Unknown:  []BucketedTicket{},
	}

	for i := range tickets {
		ticket := &tickets[i]
		entry := BucketedTicket{
			ID:       ticket.ID,
			Number:   ticket.Number,
			Subject:  ticket.Subject,
			Priority: ticket.Priority,
		}
		if ticket.DueDate != nil {
			due := *ticket.DueDate
			entry.DueDate = &due
			hours := roundTo(due.Sub(now).Hours(), 1)
			entry.HoursRemaining = &hours
		}

		switch ClassifySLA(ticket, now, policy) {
		case SLABreached:
			buckets.Breached = append(buckets.Breached, entry)
		case SLAAtRisk:
			buckets.AtRisk = append(buckets.AtRisk, entry)
		case SLAOnTrack:
			buckets.OnTrack = append(buckets.OnTrack, entry)
		default:
			buckets.Unknown = append(buckets.Unknown, entry)
		}
	}
	return buckets
}
