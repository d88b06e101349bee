package workload

import (
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildReportEndToEnd(t *testing.T) {
	policy := DefaultPolicy()
	tickets := []domain.Ticket{{
		ID:                      "tk-1",
		Number:                  "TCK-0001",
		Subject:                 "login broken",
		Status:                  domain.TicketStatusInProgress,
		Priority:                domain.TicketPriorityHigh,
		DueDate:                 timePtr(testNow.Add(2 * time.Hour)),
		EstimatedResolutionTime: floatPtr(24),
	}}
	tasks := []domain.Task{{
		ID:             "ts-1",
		Title:          "write runbook",
		Status:         domain.TaskStatusTodo,
		Priority:       domain.TaskPriorityMedium,
		EstimatedHours: 8,
	}}

	report := BuildReport("user-1", tickets, tasks, testNow, policy)

	if report.SLA.TotalWeight != 8 {
		t.Fatalf("total weight = %d, want 8 (at-risk ticket 7 + deadline-less task 1)", report.SLA.TotalWeight)
	}
	if report.Summary.EstimatedHours != 32 {
		t.Fatalf("estimated hours = %v, want 32", report.Summary.EstimatedHours)
	}
	if report.Summary.Score != 32 {
		t.Fatalf("score = %d, want 32", report.Summary.Score)
	}
	if report.Summary.Level != LevelMedium {
		t.Fatalf("level = %q, want medium", report.Summary.Level)
	}

	// The at-risk ticket fires exactly the at-risk warning.
	if len(report.Recommendations) != 1 || report.Recommendations[0].Action != "prioritize_at_risk_tickets" {
		t.Fatalf("recommendations = %+v", report.Recommendations)
	}

	if len(report.Breakdown.BySLA.AtRisk) != 1 {
		t.Fatalf("at-risk bucket = %+v", report.Breakdown.BySLA.AtRisk)
	}
	entry := report.Breakdown.BySLA.AtRisk[0]
	if entry.Number != "TCK-0001" || entry.HoursRemaining == nil || *entry.HoursRemaining != 2 {
		t.Fatalf("bucket entry = %+v", entry)
	}

	if report.Breakdown.ByPriority.High != (PrioritySplit{Tickets: 1}) {
		t.Fatalf("priority breakdown = %+v", report.Breakdown.ByPriority)
	}
}

func TestBuildReportNoDueDates(t *testing.T) {
	policy := DefaultPolicy()
	tickets := make([]domain.Ticket, 12)
	for i := range tickets {
		tickets[i] = domain.Ticket{Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityLow}
	}

	report := BuildReport("user-2", tickets, nil, testNow, policy)

	if report.SLA.TotalWeight != 12 {
		t.Fatalf("total weight = %d, want 12", report.SLA.TotalWeight)
	}
	if report.Summary.Score != 42 {
		t.Fatalf("score = %d, want 42 (items 24 + sla 18)", report.Summary.Score)
	}
	if report.Summary.Level != LevelMedium {
		t.Fatalf("level = %q, want medium", report.Summary.Level)
	}
	if len(report.Breakdown.BySLA.Unknown) != 12 {
		t.Fatalf("unknown bucket size = %d, want 12", len(report.Breakdown.BySLA.Unknown))
	}
}

func TestBuildReportEmptySnapshot(t *testing.T) {
	report := BuildReport("user-3", nil, nil, testNow, DefaultPolicy())

	if report.Summary.Score != 0 || report.Summary.Level != LevelLow {
		t.Fatalf("summary = %+v, want score 0 level low", report.Summary)
	}
	if len(report.Recommendations) != 1 || report.Recommendations[0].Type != RecommendationInfo {
		t.Fatalf("recommendations = %+v, want capacity advisory", report.Recommendations)
	}
}

func TestBuildTeamReport(t *testing.T) {
	reports := []*Report{
		{
			UserID:  "u-1",
			Summary: Summary{TotalTickets: 3, TotalTasks: 1, TotalItems: 4, Score: 85, Level: LevelOverloaded},
			SLA:     WeightedLoad{CriticalItems: 2, UrgentItems: 1},
		},
		{
			UserID:  "u-2",
			Summary: Summary{TotalTickets: 1, TotalTasks: 0, TotalItems: 1, Score: 10, Level: LevelLow},
		},
	}

	team := BuildTeamReport(reports)

	want := TeamStats{
		TotalMembers:      2,
		TotalTickets:      4,
		TotalTasks:        1,
		AverageScore:      48, // round(95/2)
		OverloadedMembers: 1,
		CapacityMembers:   1,
	}
	if team.Stats != want {
		t.Fatalf("stats = %+v, want %+v", team.Stats, want)
	}
	if len(team.Members) != 2 || team.Members[0].UserID != "u-1" || team.Members[0].CriticalItems != 2 {
		t.Fatalf("members = %+v", team.Members)
	}
}
